package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoresMean(t *testing.T) {
	s := Scores{Clarity: 8, Problem: 7, Solution: 9, Uniqueness: 6, Traction: 8, Engagement: 7}
	assert.InDelta(t, 7.5, s.Mean(), 1e-9)
	assert.Equal(t, 0.0, Scores{}.Mean())
}

func TestPitchStateCloneIsDeep(t *testing.T) {
	original := PitchState{
		Description: "an app",
		Pitch:       "draft",
		Critique: Critique{
			Weaknesses: []string{"vague"},
		},
		FinalPackage: &FinalPackage{
			ElevatorPitch:        "short",
			CompetitiveAdvantage: []string{"speed"},
			FundingAsk: FundingAsk{
				UseOfFunds: map[string]string{"eng": "60%"},
				Milestones: []string{"launch"},
			},
			AnticipatedQuestions: []QA{{Question: "Moat?", Answer: "Data."}},
		},
		Phase: PhaseDone,
	}

	clone := original.Clone()
	require.Equal(t, original, clone)

	clone.Critique.Weaknesses[0] = "changed"
	clone.FinalPackage.CompetitiveAdvantage[0] = "changed"
	clone.FinalPackage.FundingAsk.UseOfFunds["eng"] = "changed"
	clone.FinalPackage.FundingAsk.Milestones[0] = "changed"
	clone.FinalPackage.AnticipatedQuestions[0].Answer = "changed"
	clone.FinalPackage.ElevatorPitch = "changed"

	assert.Equal(t, "vague", original.Critique.Weaknesses[0])
	assert.Equal(t, "speed", original.FinalPackage.CompetitiveAdvantage[0])
	assert.Equal(t, "60%", original.FinalPackage.FundingAsk.UseOfFunds["eng"])
	assert.Equal(t, "launch", original.FinalPackage.FundingAsk.Milestones[0])
	assert.Equal(t, "Data.", original.FinalPackage.AnticipatedQuestions[0].Answer)
	assert.Equal(t, "short", original.FinalPackage.ElevatorPitch)
}

func TestSessionCloneIsDeep(t *testing.T) {
	sess := &Session{ID: "s1", State: PitchState{Pitch: "draft"}}
	clone := sess.Clone()
	clone.State.Pitch = "changed"
	assert.Equal(t, "draft", sess.State.Pitch)
}
