package buyer

import (
	"context"
	"errors"
	"time"

	domain "dealflow-backend/internal/domain/buyer"
	"dealflow-backend/pkg/id"

	"gorm.io/gorm"
)

type Usecase struct {
	buyers domain.Repository
	prefs  domain.PreferencesRepository
	txs    domain.TransactionRepository
}

func NewUsecase(buyers domain.Repository, prefs domain.PreferencesRepository, txs domain.TransactionRepository) *Usecase {
	return &Usecase{buyers: buyers, prefs: prefs, txs: txs}
}

func (u *Usecase) Create(ctx context.Context, in CreateBuyerInput) (*BuyerDTO, error) {
	if len(in.UserID) != 32 || in.Name == "" {
		return nil, errors.New("invalid input")
	}
	b := &domain.Buyer{
		BuyerID:   id.NewID32(),
		UserID:    in.UserID,
		Name:      in.Name,
		Company:   in.Company,
		Email:     in.Email,
		Phone:     in.Phone,
		BuyerType: in.BuyerType,
		Status:    domain.StatusInactive,
		QualStage: domain.QualNew,
		Tier:      domain.TierC,
		Notes:     in.Notes,
	}
	if err := u.buyers.Create(ctx, b); err != nil {
		return nil, err
	}
	return toDTO(b), nil
}

func (u *Usecase) Get(ctx context.Context, userID, buyerID string) (*BuyerDTO, error) {
	b, err := u.load(ctx, userID, buyerID)
	if err != nil {
		return nil, err
	}
	return toDTO(b), nil
}

func (u *Usecase) List(ctx context.Context, userID string, f domain.CandidateFilter) ([]BuyerDTO, error) {
	buyers, err := u.buyers.ListByUser(ctx, userID, f)
	if err != nil {
		return nil, err
	}
	out := make([]BuyerDTO, 0, len(buyers))
	for i := range buyers {
		out = append(out, *toDTO(&buyers[i]))
	}
	return out, nil
}

func (u *Usecase) Update(ctx context.Context, userID, buyerID string, in UpdateBuyerInput) (*BuyerDTO, error) {
	b, err := u.load(ctx, userID, buyerID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		b.Name = *in.Name
	}
	if in.Company != nil {
		b.Company = in.Company
	}
	if in.Email != nil {
		b.Email = in.Email
	}
	if in.Phone != nil {
		b.Phone = in.Phone
	}
	if in.BuyerType != nil {
		b.BuyerType = in.BuyerType
	}
	if in.Notes != nil {
		b.Notes = *in.Notes
	}
	if in.VerifiedPOF != nil {
		b.VerifiedPOF = *in.VerifiedPOF
	}
	if in.LastContactAt != nil {
		b.LastContactAt = in.LastContactAt
	}
	if err := u.buyers.Save(ctx, b); err != nil {
		return nil, err
	}
	return toDTO(b), nil
}

// SetPreferences creates or replaces the buyer's single preferences row.
func (u *Usecase) SetPreferences(ctx context.Context, userID, buyerID string, in PreferencesInput) (*domain.Preferences, error) {
	b, err := u.load(ctx, userID, buyerID)
	if err != nil {
		return nil, err
	}
	p := &domain.Preferences{
		BuyerID:            b.ID,
		PropertyTypes:      in.PropertyTypes,
		PriceRangeMin:      in.PriceRangeMin,
		PriceRangeMax:      in.PriceRangeMax,
		BedroomsMin:        in.BedroomsMin,
		BedroomsMax:        in.BedroomsMax,
		TargetMarkets:      in.TargetMarkets,
		ConditionTolerance: in.ConditionTolerance,
		MaxRehabBudget:     in.MaxRehabBudget,
		PreferredROI:       in.PreferredROI,
	}
	if err := u.prefs.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (u *Usecase) GetPreferences(ctx context.Context, userID, buyerID string) (*domain.Preferences, error) {
	b, err := u.load(ctx, userID, buyerID)
	if err != nil {
		return nil, err
	}
	p, err := u.prefs.GetByBuyerID(ctx, b.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPreferencesNotFound
		}
		return nil, err
	}
	return p, nil
}

// Qualify moves the buyer through the qualification workflow. The stage is
// stored as-is; the persisted status is derived from it, so consecutive
// advances validate against the real stage and not the lossy status mapping.
func (u *Usecase) Qualify(ctx context.Context, userID, buyerID string, target domain.QualificationStage) (*BuyerDTO, error) {
	b, err := u.load(ctx, userID, buyerID)
	if err != nil {
		return nil, err
	}
	status, err := domain.AdvanceQualification(b.Qualification(), target)
	if err != nil {
		return nil, err
	}
	b.QualStage = target
	b.Status = status
	if target == domain.QualContacted {
		now := time.Now().UTC()
		b.LastContactAt = &now
	}
	if err := u.buyers.Save(ctx, b); err != nil {
		return nil, err
	}
	return toDTO(b), nil
}

// NeedsAttention lists buyers early in the workflow that have gone quiet.
func (u *Usecase) NeedsAttention(ctx context.Context, userID string) ([]BuyerDTO, error) {
	buyers, err := u.buyers.ListByUser(ctx, userID, domain.CandidateFilter{})
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	out := make([]BuyerDTO, 0)
	for i := range buyers {
		b := &buyers[i]
		if domain.NeedsAttention(b.Qualification(), b.LastContactAt, now) {
			out = append(out, *toDTO(b))
		}
	}
	return out, nil
}

// Rescore recomputes the buyer's score from transaction history, engagement
// rates and profile completeness, and persists the derived tier.
func (u *Usecase) Rescore(ctx context.Context, userID, buyerID string, in RescoreInput) (*domain.ScoreResult, error) {
	b, err := u.load(ctx, userID, buyerID)
	if err != nil {
		return nil, err
	}

	txs, err := u.txs.ListByBuyerID(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	analysis := domain.AnalyzeTransactions(txs, time.Now().UTC())

	hasPrefs := true
	if _, err := u.prefs.GetByBuyerID(ctx, b.ID); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		hasPrefs = false
	}

	result := domain.CalculateScore(*b, domain.ScoreInput{
		Analysis:       analysis,
		ResponseRate:   in.ResponseRate,
		ClosingRate:    in.ClosingRate,
		VerifiedPOF:    b.VerifiedPOF,
		HasPreferences: hasPrefs,
	})

	if result.Tier != b.Tier {
		b.Tier = result.Tier
		if err := u.buyers.Save(ctx, b); err != nil {
			return nil, err
		}
	}
	return &result, nil
}

func (u *Usecase) load(ctx context.Context, userID, buyerID string) (*domain.Buyer, error) {
	b, err := u.buyers.GetByBuyerID(ctx, userID, buyerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}
