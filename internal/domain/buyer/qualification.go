package buyer

import (
	"fmt"
	"time"
)

// QualificationStage is the buyer-side onboarding state. It is persisted on
// the buyer row; each stage also maps onto the coarser status field.
type QualificationStage string

const (
	QualNew         QualificationStage = "new"
	QualContacted   QualificationStage = "contacted"
	QualPOFReceived QualificationStage = "pof_received"
	QualVerified    QualificationStage = "verified"
	QualQualified   QualificationStage = "qualified"
)

var qualTransitions = map[QualificationStage][]QualificationStage{
	QualNew:         {QualContacted},
	QualContacted:   {QualPOFReceived, QualNew},
	QualPOFReceived: {QualVerified, QualContacted},
	QualVerified:    {QualQualified, QualPOFReceived},
	QualQualified:   {QualVerified},
}

var qualToStatus = map[QualificationStage]Status{
	QualNew:         StatusInactive,
	QualContacted:   StatusActive,
	QualPOFReceived: StatusActive,
	QualVerified:    StatusActive,
	QualQualified:   StatusQualified,
}

func ValidQualificationStage(s QualificationStage) bool {
	_, ok := qualToStatus[s]
	return ok
}

func IsValidQualTransition(from, to QualificationStage) bool {
	for _, next := range qualTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// StatusForQualification maps a qualification stage to the persisted buyer
// status.
func StatusForQualification(s QualificationStage) (Status, error) {
	st, ok := qualToStatus[s]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrInvalidQualificationStage, s)
	}
	return st, nil
}

// Qualification returns the buyer's workflow stage. Rows written before the
// stage column existed fall back to the status-derived stage.
func (b *Buyer) Qualification() QualificationStage {
	if b.QualStage != "" {
		return b.QualStage
	}
	return QualificationForStatus(b.Status)
}

// QualificationForStatus maps a persisted status back to the stage a buyer
// re-enters the workflow at. Lossy: active covers three stages and maps to
// the earliest of them.
func QualificationForStatus(st Status) QualificationStage {
	switch st {
	case StatusQualified:
		return QualQualified
	case StatusActive:
		return QualContacted
	default: // inactive, unqualified
		return QualNew
	}
}

// AdvanceQualification validates the move and returns the status to persist.
func AdvanceQualification(from, to QualificationStage) (Status, error) {
	if !ValidQualificationStage(from) || !ValidQualificationStage(to) {
		return "", fmt.Errorf("%w: %s -> %s", ErrInvalidQualificationStage, from, to)
	}
	if !IsValidQualTransition(from, to) {
		return "", fmt.Errorf("%w: cannot move from %s to %s", ErrInvalidQualTransition, from, to)
	}
	return qualToStatus[to], nil
}

const attentionAfter = 7 * 24 * time.Hour

// NeedsAttention flags buyers early in the workflow (new or contacted) that
// have had no contact for more than seven days.
func NeedsAttention(stage QualificationStage, lastContact *time.Time, now time.Time) bool {
	if stage != QualNew && stage != QualContacted {
		return false
	}
	if lastContact == nil {
		return true
	}
	return now.Sub(*lastContact) > attentionAfter
}
