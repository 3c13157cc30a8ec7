package workflow

// DefaultPassThreshold is the critique score at or above which a pitch
// passes the quality gate.
const DefaultPassThreshold = 7.5

// ScoreGate maps a critique to a PASS/FAIL decision.
type ScoreGate struct {
	threshold float64
}

// NewScoreGate builds a gate with the given threshold; values <= 0 fall
// back to DefaultPassThreshold.
func NewScoreGate(threshold float64) ScoreGate {
	if threshold <= 0 {
		threshold = DefaultPassThreshold
	}
	return ScoreGate{threshold: threshold}
}

// Decide returns PASS iff the overall score meets the threshold. The
// boundary value itself passes.
func (g ScoreGate) Decide(c Critique) Decision {
	if c.Overall >= g.threshold {
		return DecisionPass
	}
	return DecisionFail
}

// Threshold exposes the configured pass threshold.
func (g ScoreGate) Threshold() float64 {
	return g.threshold
}
