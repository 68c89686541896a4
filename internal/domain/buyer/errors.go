package buyer

import "errors"

var (
	ErrNotFound                  = errors.New("buyer not found")
	ErrPreferencesNotFound       = errors.New("buyer preferences not found")
	ErrTransactionNotFound       = errors.New("buyer transaction not found")
	ErrInvalidQualificationStage = errors.New("unknown qualification stage")
	ErrInvalidQualTransition     = errors.New("invalid qualification transition")
)
