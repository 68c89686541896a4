package activity

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "dealflow-backend/internal/domain/activity"
	dealDomain "dealflow-backend/internal/domain/deal"
	"dealflow-backend/pkg/id"

	"gorm.io/gorm"
)

// Usecase is the append-only ledger over deal activities. Records are never
// mutated or deleted once written.
type Usecase struct {
	deals dealDomain.Repository
	acts  domain.Repository
}

func NewUsecase(deals dealDomain.Repository, acts domain.Repository) *Usecase {
	return &Usecase{deals: deals, acts: acts}
}

type LogInput struct {
	UserID      string
	DealID      string
	Type        domain.Type
	Description string
	Metadata    domain.Metadata
}

type ActivityDTO struct {
	ActivityID  string          `json:"activity_id"`
	ActorID     string          `json:"actor_id"`
	Type        string          `json:"activity_type"`
	Description string          `json:"description"`
	Metadata    domain.Metadata `json:"metadata,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Log is the primitive every typed wrapper funnels through.
func (u *Usecase) Log(ctx context.Context, in LogInput) (*ActivityDTO, error) {
	if !domain.ValidType(in.Type) {
		return nil, fmt.Errorf("invalid activity type %q", in.Type)
	}
	d, err := u.deals.GetByDealID(ctx, in.UserID, in.DealID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, dealDomain.ErrNotFound
		}
		return nil, err
	}

	a := &domain.Activity{
		ActivityID:  id.NewID32(),
		DealID:      d.ID,
		ActorID:     in.UserID,
		Type:        in.Type,
		Description: in.Description,
		Metadata:    in.Metadata,
	}
	if err := u.acts.Create(ctx, a); err != nil {
		return nil, err
	}
	return toDTO(a), nil
}

func (u *Usecase) LogCall(ctx context.Context, userID, dealID, outcome string) (*ActivityDTO, error) {
	return u.Log(ctx, LogInput{
		UserID:      userID,
		DealID:      dealID,
		Type:        domain.TypeCall,
		Description: "Call: " + outcome,
		Metadata:    domain.Metadata{"outcome": outcome},
	})
}

func (u *Usecase) LogNote(ctx context.Context, userID, dealID, note string) (*ActivityDTO, error) {
	return u.Log(ctx, LogInput{
		UserID:      userID,
		DealID:      dealID,
		Type:        domain.TypeNote,
		Description: note,
	})
}

func (u *Usecase) LogStageChange(ctx context.Context, userID, dealID string, from, to dealDomain.Stage) (*ActivityDTO, error) {
	return u.Log(ctx, LogInput{
		UserID:      userID,
		DealID:      dealID,
		Type:        domain.TypeStageChange,
		Description: fmt.Sprintf("Stage changed from %s to %s", from, to),
		Metadata: domain.Metadata{
			"previous_stage": string(from),
			"new_stage":      string(to),
		},
	})
}

func (u *Usecase) List(ctx context.Context, userID, dealID string, limit int) ([]ActivityDTO, error) {
	d, err := u.deals.GetByDealID(ctx, userID, dealID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, dealDomain.ErrNotFound
		}
		return nil, err
	}
	rows, err := u.acts.ListByDealID(ctx, d.ID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]ActivityDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *toDTO(&rows[i]))
	}
	return out, nil
}

// Summary delegates the aggregation to the store.
func (u *Usecase) Summary(ctx context.Context, userID, dealID string) (*domain.Summary, error) {
	d, err := u.deals.GetByDealID(ctx, userID, dealID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, dealDomain.ErrNotFound
		}
		return nil, err
	}
	return u.acts.Summarize(ctx, d.ID)
}

func toDTO(a *domain.Activity) *ActivityDTO {
	return &ActivityDTO{
		ActivityID:  a.ActivityID,
		ActorID:     a.ActorID,
		Type:        string(a.Type),
		Description: a.Description,
		Metadata:    a.Metadata,
		CreatedAt:   a.CreatedAt,
	}
}
