package workflow

// Phase identifies where a pitch run currently sits in the state machine.
type Phase string

const (
	PhaseStart            Phase = "started"
	PhaseContextDone      Phase = "context_done"
	PhaseGenerated        Phase = "generated"
	PhaseCritiqued        Phase = "critiqued"
	PhaseAutoRefining     Phase = "auto_refining"
	PhaseAwaitingApproval Phase = "awaiting_approval"
	PhaseRefining         Phase = "refining"
	PhaseReadyForFinal    Phase = "ready_for_final"
	PhaseDone             Phase = "done"
	PhaseCapped           Phase = "capped"
)

// Terminal reports whether no further transitions are possible.
func (p Phase) Terminal() bool {
	return p == PhaseDone || p == PhaseCapped
}

// Decision is the critic's verdict on a pitch draft.
type Decision string

const (
	DecisionPass Decision = "PASS"
	DecisionFail Decision = "FAIL"
)

// Scores holds the six critique criteria, each in [0,10].
type Scores struct {
	Clarity    float64 `json:"clarity"`
	Problem    float64 `json:"problem"`
	Solution   float64 `json:"solution"`
	Uniqueness float64 `json:"uniqueness"`
	Traction   float64 `json:"traction"`
	Engagement float64 `json:"engagement"`
}

// Mean returns the unweighted average of the six sub-scores.
func (s Scores) Mean() float64 {
	return (s.Clarity + s.Problem + s.Solution + s.Uniqueness + s.Traction + s.Engagement) / 6
}

// Critique is the structured evaluation of one pitch draft.
type Critique struct {
	Scores     Scores   `json:"scores"`
	Overall    float64  `json:"overall_score"`
	Decision   Decision `json:"decision"`
	Feedback   string   `json:"feedback"`
	Strengths  []string `json:"strengths,omitempty"`
	Weaknesses []string `json:"weaknesses,omitempty"`
}

func (c Critique) clone() Critique {
	out := c
	out.Strengths = cloneStrings(c.Strengths)
	out.Weaknesses = cloneStrings(c.Weaknesses)
	return out
}

// TractionMetrics summarizes evidence that the product works.
type TractionMetrics struct {
	Users        string   `json:"users"`
	Revenue      string   `json:"revenue"`
	Growth       string   `json:"growth"`
	OtherMetrics []string `json:"other_metrics"`
}

// MarketOpportunity sizes the market a pitch addresses.
type MarketOpportunity struct {
	TAM           string `json:"tam"`
	SAM           string `json:"sam"`
	TargetSegment string `json:"target_segment"`
}

// BusinessModel describes how the product makes money.
type BusinessModel struct {
	RevenueStreams []string `json:"revenue_streams"`
	Pricing        string   `json:"pricing"`
	UnitEconomics  string   `json:"unit_economics"`
}

// FundingAsk states the requested amount and its planned use.
type FundingAsk struct {
	Amount     string            `json:"amount"`
	UseOfFunds map[string]string `json:"use_of_funds"`
	Milestones []string          `json:"milestones"`
}

// QA pairs an anticipated investor question with a suggested answer.
type QA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// DeliveryTips carries presentation guidance for the final pitch.
type DeliveryTips struct {
	Tone           string   `json:"tone"`
	Pacing         string   `json:"pacing"`
	EmphasisPoints []string `json:"emphasis_points"`
}

// FinalPackage is the structured deliverable produced when a run
// finishes. Every field is always populated; values the backend did not
// supply are filled with an explicit placeholder so consumers can rely
// on the shape.
type FinalPackage struct {
	ElevatorPitch          string            `json:"elevator_pitch"`
	ExecutiveSummary       string            `json:"executive_summary"`
	ProblemStatement       string            `json:"problem_statement"`
	Solution               string            `json:"solution"`
	UniqueValueProposition string            `json:"unique_value_proposition"`
	TractionMetrics        TractionMetrics   `json:"traction_metrics"`
	MarketOpportunity      MarketOpportunity `json:"market_opportunity"`
	BusinessModel          BusinessModel     `json:"business_model"`
	CompetitiveAdvantage   []string          `json:"competitive_advantage"`
	TeamHighlights         string            `json:"team_highlights"`
	FundingAsk             FundingAsk        `json:"funding_ask"`
	KeyTalkingPoints       []string          `json:"key_talking_points"`
	AnticipatedQuestions   []QA              `json:"anticipated_questions"`
	DeliveryTips           DeliveryTips      `json:"delivery_tips"`
	// Capped marks a best-effort package produced when the iteration
	// budget ran out before the pitch was approved.
	Capped bool `json:"capped,omitempty"`
}

// PitchState is the single record threaded through every agent step.
type PitchState struct {
	Description         string        `json:"mvp_description"`
	Context             string        `json:"context,omitempty"`
	Pitch               string        `json:"pitch,omitempty"`
	Critique            Critique      `json:"critique"`
	AutoRefineCount     int           `json:"auto_refine_count"`
	TotalIterationCount int           `json:"iteration_count"`
	HumanFeedback       string        `json:"human_feedback,omitempty"`
	FinalPackage        *FinalPackage `json:"final_pitch_package,omitempty"`
	Phase               Phase         `json:"status"`
}

// Clone returns a deep copy so callers can mutate freely without
// aliasing stored state.
func (s PitchState) Clone() PitchState {
	out := s
	out.Critique = s.Critique.clone()
	if s.FinalPackage != nil {
		fp := *s.FinalPackage
		fp.TractionMetrics.OtherMetrics = cloneStrings(fp.TractionMetrics.OtherMetrics)
		fp.BusinessModel.RevenueStreams = cloneStrings(fp.BusinessModel.RevenueStreams)
		fp.CompetitiveAdvantage = cloneStrings(fp.CompetitiveAdvantage)
		fp.KeyTalkingPoints = cloneStrings(fp.KeyTalkingPoints)
		fp.DeliveryTips.EmphasisPoints = cloneStrings(fp.DeliveryTips.EmphasisPoints)
		if fp.FundingAsk.UseOfFunds != nil {
			uses := make(map[string]string, len(fp.FundingAsk.UseOfFunds))
			for k, v := range fp.FundingAsk.UseOfFunds {
				uses[k] = v
			}
			fp.FundingAsk.UseOfFunds = uses
		}
		fp.FundingAsk.Milestones = cloneStrings(fp.FundingAsk.Milestones)
		if fp.AnticipatedQuestions != nil {
			qs := make([]QA, len(fp.AnticipatedQuestions))
			copy(qs, fp.AnticipatedQuestions)
			fp.AnticipatedQuestions = qs
		}
		out.FinalPackage = &fp
	}
	return out
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
