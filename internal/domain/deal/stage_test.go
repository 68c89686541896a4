package deal

import (
	"errors"
	"testing"
)

func strptr(s string) *string   { return &s }
func f64ptr(f float64) *float64 { return &f }
func allStages() []Stage        { return OrderedStages() }
func emptySnapshot() Deal       { return Deal{} }

func fullSnapshot() Deal {
	return Deal{
		SellerPhone:     strptr("+15550001111"),
		OfferPrice:      f64ptr(180_000),
		ContractPrice:   f64ptr(185_000),
		AssignedBuyerID: strptr("bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"),
	}
}

func TestValidateTransition_RejectsEveryPairOutsideAdjacency(t *testing.T) {
	snap := fullSnapshot()
	for _, from := range allStages() {
		for _, to := range allStages() {
			err := ValidateTransition(from, to, snap)
			if IsValidTransition(from, to) {
				if err != nil {
					t.Errorf("%s -> %s: want success, got %v", from, to, err)
				}
				continue
			}
			if !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("%s -> %s: want ErrInvalidTransition, got %v", from, to, err)
			}
		}
	}
}

func TestValidateTransition_TargetPreconditions(t *testing.T) {
	tests := []struct {
		name       string
		from, to   Stage
		snapshot   Deal
		wantErr    error
		wantReason string
		wantAction string
	}{
		{
			name: "contacted requires seller phone",
			from: StageLead, to: StageContacted,
			snapshot:   emptySnapshot(),
			wantErr:    ErrPreconditionNotMet,
			wantReason: "Seller phone number required",
			wantAction: "add_seller_phone",
		},
		{
			name: "empty string phone is treated as absent",
			from: StageLead, to: StageContacted,
			snapshot:   Deal{SellerPhone: strptr("")},
			wantErr:    ErrPreconditionNotMet,
			wantReason: "Seller phone number required",
		},
		{
			name: "offer requires offer price",
			from: StageContacted, to: StageOffer,
			snapshot:   Deal{SellerPhone: strptr("+15550001111")},
			wantErr:    ErrPreconditionNotMet,
			wantReason: "Offer price required",
			wantAction: "set_offer_price",
		},
		{
			name: "contract requires contract price",
			from: StageOffer, to: StageContract,
			snapshot:   Deal{OfferPrice: f64ptr(180_000)},
			wantErr:    ErrPreconditionNotMet,
			wantReason: "Contract price required",
			wantAction: "set_contract_price",
		},
		{
			name: "assigned requires a buyer",
			from: StageContract, to: StageAssigned,
			snapshot:   Deal{ContractPrice: f64ptr(250_000)},
			wantErr:    ErrPreconditionNotMet,
			wantReason: "Buyer assignment required",
			wantAction: "assign_buyer",
		},
		{
			name: "appointment has no precondition",
			from: StageContacted, to: StageAppointment,
			snapshot: emptySnapshot(),
		},
		{
			name: "closing has no precondition",
			from: StageContract, to: StageClosing,
			snapshot: emptySnapshot(),
		},
		{
			name: "closed has no precondition",
			from: StageClosing, to: StageClosed,
			snapshot: emptySnapshot(),
		},
		{
			name: "lost has no precondition",
			from: StageOffer, to: StageLost,
			snapshot: emptySnapshot(),
		},
		{
			name: "precondition satisfied",
			from: StageContract, to: StageAssigned,
			snapshot: fullSnapshot(),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateTransition(tc.from, tc.to, tc.snapshot)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("want success, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("want %v, got %v", tc.wantErr, err)
			}
			var te *TransitionError
			if !errors.As(err, &te) {
				t.Fatalf("want *TransitionError, got %T", err)
			}
			if tc.wantReason != "" && te.Reason != tc.wantReason {
				t.Errorf("reason = %q, want %q", te.Reason, tc.wantReason)
			}
			if tc.wantAction != "" && te.RequiresAction != tc.wantAction {
				t.Errorf("requiresAction = %q, want %q", te.RequiresAction, tc.wantAction)
			}
		})
	}
}

func TestValidateTransition_UnknownStages(t *testing.T) {
	if err := ValidateTransition("bogus", StageLead, emptySnapshot()); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("unknown from: got %v", err)
	}
	if err := ValidateTransition(StageLead, "bogus", emptySnapshot()); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("unknown to: got %v", err)
	}
}

func TestTerminalStages(t *testing.T) {
	if got := len(stageTransitions[StageClosed]); got != 0 {
		t.Errorf("closed has %d outgoing transitions, want 0", got)
	}
	if got := stageTransitions[StageLost]; len(got) != 1 || got[0] != StageLead {
		t.Errorf("lost transitions = %v, want [lead]", got)
	}
	info, _ := Info(StageClosed)
	if !info.Terminal {
		t.Error("closed must be terminal")
	}
}

func TestOrderedStages(t *testing.T) {
	want := []Stage{
		StageLead, StageContacted, StageAppointment, StageOffer,
		StageContract, StageAssigned, StageClosing, StageClosed, StageLost,
	}
	got := OrderedStages()
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("stage[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestActiveStages_ExcludesClosedAndLost(t *testing.T) {
	for _, s := range ActiveStages() {
		if s == StageClosed || s == StageLost {
			t.Errorf("active stages must not include %s", s)
		}
	}
	if got := len(ActiveStages()); got != 7 {
		t.Errorf("len(ActiveStages()) = %d, want 7", got)
	}
}

func TestIsDealStale(t *testing.T) {
	tests := []struct {
		stage Stage
		days  int
		want  bool
	}{
		{StageContract, 15, true},
		{StageContract, 14, false},
		{StageLead, 8, true},
		{StageLead, 7, false},
		{StageAppointment, 4, true},
		{StageClosing, 30, false},
		{StageClosing, 31, true},
		{StageClosed, 1000, false},
		{StageLost, 1000, false},
	}
	for _, tc := range tests {
		if got := IsDealStale(tc.stage, tc.days); got != tc.want {
			t.Errorf("IsDealStale(%s, %d) = %v, want %v", tc.stage, tc.days, got, tc.want)
		}
	}
}
