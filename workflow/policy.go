package workflow

// Iteration budgets. Automatic refinements are bounded separately from
// the combined total of automatic and human-triggered refinements.
const (
	MaxAutoRefines     = 3
	MaxTotalIterations = 10
)

// Action is the policy's verdict after a critique has been recorded.
type Action string

const (
	ActionAutoRefine Action = "auto_refine"
	ActionSuspend    Action = "suspend_for_approval"
	ActionCap        Action = "terminate_max_iterations"
)

// IterationPolicy decides what follows a critique, based only on the
// counters and the critic's decision.
type IterationPolicy struct {
	AutoMax  int
	TotalMax int
}

// NewIterationPolicy builds a policy with the standard budgets.
func NewIterationPolicy() IterationPolicy {
	return IterationPolicy{AutoMax: MaxAutoRefines, TotalMax: MaxTotalIterations}
}

// NextAction applies the rules in order:
//  1. total budget exhausted → cap, regardless of decision
//  2. FAIL with auto budget remaining → auto-refine
//  3. otherwise → suspend for human approval (covers PASS and
//     FAIL-with-auto-budget-exhausted; a human always gets the final say)
func (p IterationPolicy) NextAction(state PitchState) Action {
	if state.TotalIterationCount >= p.TotalMax {
		return ActionCap
	}
	if state.Critique.Decision == DecisionFail && state.AutoRefineCount < p.AutoMax {
		return ActionAutoRefine
	}
	return ActionSuspend
}

// AllowHumanRefine reports whether a human-triggered refinement may be
// accepted under the total-iteration budget.
func (p IterationPolicy) AllowHumanRefine(state PitchState) bool {
	return state.TotalIterationCount < p.TotalMax
}
