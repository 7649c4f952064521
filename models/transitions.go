package models

// Status transitions are enforced centrally here instead of in handler
// conditionals. A transition absent from the map is illegal.

var projectTransitions = map[ProjectStatus][]ProjectStatus{
	ProjectOpen:       {ProjectAwarded, ProjectCancelled},
	ProjectAwarded:    {ProjectInProgress, ProjectCompleted, ProjectCancelled},
	ProjectInProgress: {ProjectCompleted, ProjectCancelled},
}

var proposalTransitions = map[ProposalStatus][]ProposalStatus{
	ProposalSubmitted:   {ProposalShortlisted, ProposalAccepted, ProposalRejected, ProposalWithdrawn},
	ProposalShortlisted: {ProposalSubmitted, ProposalAccepted, ProposalRejected, ProposalWithdrawn},
}

var contractTransitions = map[ContractStatus][]ContractStatus{
	ContractActive: {ContractCompleted, ContractTerminated},
}

var milestoneTransitions = map[MilestoneStatus][]MilestoneStatus{
	MilestonePending:  {MilestoneFunded},
	MilestoneFunded:   {MilestoneInReview, MilestoneDisputed},
	MilestoneInReview: {MilestoneReleased, MilestoneDisputed},
	MilestoneDisputed: {MilestoneReleased},
}

func contains[S ~string](states []S, s S) bool {
	for _, candidate := range states {
		if candidate == s {
			return true
		}
	}
	return false
}

// CanTransition reports whether a project may move from its current status
// to the target.
func (s ProjectStatus) CanTransition(to ProjectStatus) bool {
	return contains(projectTransitions[s], to)
}

// CanTransition reports whether a proposal may move to the target status.
// Accepted, rejected and withdrawn are terminal.
func (s ProposalStatus) CanTransition(to ProposalStatus) bool {
	return contains(proposalTransitions[s], to)
}

// CanTransition reports whether a contract may move to the target status.
func (s ContractStatus) CanTransition(to ContractStatus) bool {
	return contains(contractTransitions[s], to)
}

// CanTransition reports whether a milestone may move to the target status.
func (s MilestoneStatus) CanTransition(to MilestoneStatus) bool {
	return contains(milestoneTransitions[s], to)
}
