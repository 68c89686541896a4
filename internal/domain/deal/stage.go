package deal

// StageInfo is static per-stage metadata. Order is for display only and
// carries no transition semantics.
type StageInfo struct {
	Label    string
	Order    int
	Terminal bool
}

var stageInfo = map[Stage]StageInfo{
	StageLead:        {Label: "Lead", Order: 0},
	StageContacted:   {Label: "Contacted", Order: 1},
	StageAppointment: {Label: "Appointment", Order: 2},
	StageOffer:       {Label: "Offer", Order: 3},
	StageContract:    {Label: "Contract", Order: 4},
	StageAssigned:    {Label: "Assigned", Order: 5},
	StageClosing:     {Label: "Closing", Order: 6},
	StageClosed:      {Label: "Closed", Order: 7, Terminal: true},
	StageLost:        {Label: "Lost", Order: 8},
}

// stageTransitions is the directed adjacency table. closed has no outgoing
// edges; lost can only re-enter the pipeline as a fresh lead.
var stageTransitions = map[Stage][]Stage{
	StageLead:        {StageContacted, StageLost},
	StageContacted:   {StageAppointment, StageOffer, StageLost},
	StageAppointment: {StageOffer, StageContacted, StageLost},
	StageOffer:       {StageContract, StageAppointment, StageLost},
	StageContract:    {StageAssigned, StageClosing, StageLost},
	StageAssigned:    {StageClosing, StageContract, StageLost},
	StageClosing:     {StageClosed, StageLost},
	StageClosed:      {},
	StageLost:        {StageLead},
}

// staleAfterDays: a deal that has sat in a stage longer than its threshold
// needs attention. Stages absent from the table are never stale.
var staleAfterDays = map[Stage]int{
	StageLead:        7,
	StageContacted:   5,
	StageAppointment: 3,
	StageOffer:       7,
	StageContract:    14,
	StageAssigned:    7,
	StageClosing:     30,
}

func ValidStage(s Stage) bool {
	_, ok := stageInfo[s]
	return ok
}

func Info(s Stage) (StageInfo, bool) {
	info, ok := stageInfo[s]
	return info, ok
}

// OrderedStages returns all stages in display order.
func OrderedStages() []Stage {
	out := make([]Stage, len(stageInfo))
	for s, info := range stageInfo {
		out[info.Order] = s
	}
	return out
}

// ActiveStages returns the stages a live deal can sit in (everything except
// closed and lost).
func ActiveStages() []Stage {
	out := make([]Stage, 0, len(stageInfo)-2)
	for _, s := range OrderedStages() {
		if s == StageClosed || s == StageLost {
			continue
		}
		out = append(out, s)
	}
	return out
}

func IsValidTransition(from, to Stage) bool {
	for _, next := range stageTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsDealStale reports whether daysInStage exceeds the stage's threshold.
// The boundary is exclusive: a contract deal is stale at 15 days, not at 14.
func IsDealStale(s Stage, daysInStage int) bool {
	limit, ok := staleAfterDays[s]
	if !ok {
		return false
	}
	return daysInStage > limit
}

// ValidateTransition checks an attempted stage change against the adjacency
// table and then against the target stage's precondition on the deal
// snapshot. It is pure: the snapshot is read only, no I/O. A nil return
// means the transition may be persisted as-is.
func ValidateTransition(from, to Stage, snapshot Deal) error {
	if !ValidStage(from) || !ValidStage(to) {
		return invalidTransition(from, to)
	}
	if !IsValidTransition(from, to) {
		return invalidTransition(from, to)
	}

	// Preconditions apply to the target stage only.
	switch to {
	case StageContacted:
		if !present(snapshot.SellerPhone) {
			return preconditionNotMet(from, to, "Seller phone number required", "add_seller_phone")
		}
	case StageOffer:
		if snapshot.OfferPrice == nil {
			return preconditionNotMet(from, to, "Offer price required", "set_offer_price")
		}
	case StageContract:
		if snapshot.ContractPrice == nil {
			return preconditionNotMet(from, to, "Contract price required", "set_contract_price")
		}
	case StageAssigned:
		if !present(snapshot.AssignedBuyerID) {
			return preconditionNotMet(from, to, "Buyer assignment required", "assign_buyer")
		}
	}
	return nil
}

func present(s *string) bool { return s != nil && *s != "" }
