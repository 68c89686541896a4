package deal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dealflow-backend/internal/domain/activity"
	"dealflow-backend/internal/domain/buyer"
	domain "dealflow-backend/internal/domain/deal"
	"dealflow-backend/internal/domain/uow"
	"dealflow-backend/pkg/id"

	"gorm.io/gorm"
)

type Usecase struct {
	deals  domain.Repository
	buyers buyer.Repository
	uow    uow.UnitOfWork
}

// NewUsecase: the buyer repo is only used for read-time denormalization; the
// UoW carries every repo the transition flow touches.
func NewUsecase(deals domain.Repository, buyers buyer.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{deals: deals, buyers: buyers, uow: tx}
}

func (u *Usecase) Create(ctx context.Context, in CreateDealInput) (*DealDTO, error) {
	if len(in.UserID) != 32 || in.PropertyAddress == "" {
		return nil, errors.New("invalid input")
	}

	now := time.Now().UTC()
	d := &domain.Deal{
		DealID:           id.NewID32(),
		UserID:           in.UserID,
		PropertyID:       in.PropertyID,
		PropertyAddress:  in.PropertyAddress,
		Stage:            domain.StageLead,
		Status:           domain.StatusActive,
		SellerName:       in.SellerName,
		SellerPhone:      in.SellerPhone,
		SellerEmail:      in.SellerEmail,
		AskingPrice:      in.AskingPrice,
		EstimatedARV:     in.EstimatedARV,
		EstimatedRepairs: in.EstimatedRepairs,
		Notes:            in.Notes,
		StageUpdatedAt:   now,
	}
	if err := u.deals.Create(ctx, d); err != nil {
		return nil, err
	}
	return u.toDTO(ctx, d), nil
}

func (u *Usecase) Get(ctx context.Context, userID, dealID string) (*DealDTO, error) {
	d, err := u.deals.GetByDealID(ctx, userID, dealID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return u.toDTO(ctx, d), nil
}

func (u *Usecase) List(ctx context.Context, userID string, f domain.ListFilter) ([]DealDTO, error) {
	deals, err := u.deals.List(ctx, userID, f)
	if err != nil {
		return nil, err
	}
	out := make([]DealDTO, 0, len(deals))
	for i := range deals {
		out = append(out, *toDTOShallow(&deals[i]))
	}
	return out, nil
}

// Update applies field edits and, when the payload changes the stage, runs
// the transition flow inside one transaction: lock the row, apply edits,
// validate against the updated snapshot, persist, append a stage_change
// activity. Nothing is written when validation fails.
func (u *Usecase) Update(ctx context.Context, userID, dealID string, in UpdateDealInput) (*DealDTO, error) {
	var updated *domain.Deal

	err := u.uow.WithinDealTx(ctx, userID, dealID, func(r uow.Repos, d *domain.Deal) error {
		applyUpdates(d, in)

		if in.Stage != nil && *in.Stage != d.Stage {
			from := d.Stage
			to := *in.Stage
			if err := domain.ValidateTransition(from, to, *d); err != nil {
				return err
			}

			now := time.Now().UTC()
			d.Stage = to
			d.StageUpdatedAt = now
			switch to {
			case domain.StageClosed:
				d.Status = domain.StatusCompleted
			case domain.StageLost:
				d.Status = domain.StatusCancelled
			}

			if err := r.Deals.Save(ctx, d); err != nil {
				return err
			}
			// The activity record is appended only after the primary write
			// succeeded, inside the same transaction.
			return r.Activities.Create(ctx, &activity.Activity{
				ActivityID:  id.NewID32(),
				DealID:      d.ID,
				ActorID:     userID,
				Type:        activity.TypeStageChange,
				Description: fmt.Sprintf("Stage changed from %s to %s", from, to),
				Metadata: activity.Metadata{
					"previous_stage": string(from),
					"new_stage":      string(to),
				},
			})
		}

		if err := r.Deals.Save(ctx, d); err != nil {
			return err
		}
		updated = d
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if updated == nil {
		// stage-change path: re-read outside the tx for the fresh snapshot
		return u.Get(ctx, userID, dealID)
	}
	return u.toDTO(ctx, updated), nil
}

// GetDealsByStage buckets a user's active deals into the nine stage buckets
// for board-style display. Every stage appears, empty or not, in display
// order.
func (u *Usecase) GetDealsByStage(ctx context.Context, userID string) ([]StageBucket, error) {
	deals, err := u.deals.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	byStage := make(map[domain.Stage][]DealDTO)
	for i := range deals {
		d := &deals[i]
		byStage[d.Stage] = append(byStage[d.Stage], *toDTOShallow(d))
	}

	buckets := make([]StageBucket, 0, len(domain.OrderedStages()))
	for _, s := range domain.OrderedStages() {
		info, _ := domain.Info(s)
		bucket := StageBucket{Stage: s, Label: info.Label, Deals: byStage[s]}
		if bucket.Deals == nil {
			bucket.Deals = []DealDTO{}
		}
		buckets = append(buckets, bucket)
	}
	return buckets, nil
}

func (u *Usecase) GetPipelineStats(ctx context.Context, userID string) (*PipelineStats, error) {
	agg, err := u.deals.Aggregate(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats := &PipelineStats{
		CountsByStage:  make(map[domain.Stage]int64, len(agg.StageCounts)),
		PipelineValue:  agg.PipelineValue,
		ClosedValue:    agg.ClosedValue,
		AvgDaysToClose: agg.AvgDaysToClose,
	}
	for _, sc := range agg.StageCounts {
		stats.CountsByStage[sc.Stage] = sc.Count
		stats.TotalDeals += sc.Count
	}
	return stats, nil
}

func applyUpdates(d *domain.Deal, in UpdateDealInput) {
	if in.Status != nil {
		d.Status = *in.Status
	}
	if in.PropertyID != nil {
		d.PropertyID = in.PropertyID
	}
	if in.PropertyAddress != nil {
		d.PropertyAddress = *in.PropertyAddress
	}
	if in.SellerName != nil {
		d.SellerName = in.SellerName
	}
	if in.SellerPhone != nil {
		d.SellerPhone = in.SellerPhone
	}
	if in.SellerEmail != nil {
		d.SellerEmail = in.SellerEmail
	}
	if in.AskingPrice != nil {
		d.AskingPrice = in.AskingPrice
	}
	if in.OfferPrice != nil {
		d.OfferPrice = in.OfferPrice
	}
	if in.ContractPrice != nil {
		d.ContractPrice = in.ContractPrice
	}
	if in.AssignmentFee != nil {
		d.AssignmentFee = in.AssignmentFee
	}
	if in.EstimatedARV != nil {
		d.EstimatedARV = in.EstimatedARV
	}
	if in.EstimatedRepairs != nil {
		d.EstimatedRepairs = in.EstimatedRepairs
	}
	if in.AssignedBuyerID != nil {
		d.AssignedBuyerID = in.AssignedBuyerID
	}
	if in.Notes != nil {
		d.Notes = *in.Notes
	}
}

// toDTO denormalizes the assigned buyer's name. A missing buyer is not an
// error for a read.
func (u *Usecase) toDTO(ctx context.Context, d *domain.Deal) *DealDTO {
	dto := toDTOShallow(d)
	if d.AssignedBuyerID != nil && u.buyers != nil {
		if b, err := u.buyers.GetByBuyerID(ctx, d.UserID, *d.AssignedBuyerID); err == nil {
			dto.AssignedBuyerName = &b.Name
		}
	}
	return dto
}

func toDTOShallow(d *domain.Deal) *DealDTO {
	return &DealDTO{
		DealID:           d.DealID,
		UserID:           d.UserID,
		PropertyID:       d.PropertyID,
		PropertyAddress:  d.PropertyAddress,
		Stage:            string(d.Stage),
		Status:           string(d.Status),
		SellerName:       d.SellerName,
		SellerPhone:      d.SellerPhone,
		SellerEmail:      d.SellerEmail,
		AskingPrice:      d.AskingPrice,
		OfferPrice:       d.OfferPrice,
		ContractPrice:    d.ContractPrice,
		AssignmentFee:    d.AssignmentFee,
		EstimatedARV:     d.EstimatedARV,
		EstimatedRepairs: d.EstimatedRepairs,
		AssignedBuyerID:  d.AssignedBuyerID,
		Notes:            d.Notes,
		DaysInStage:      d.DaysInStage(time.Now().UTC()),
		StageUpdatedAt:   d.StageUpdatedAt,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}
