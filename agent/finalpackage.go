package agent

import (
	"encoding/json"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"pitch_agent_service/workflow"
)

// PlaceholderText fills final-package fields the backend failed to
// produce, keeping the schema complete for downstream consumers.
const PlaceholderText = "not provided"

// Required string-valued paths of the final package schema.
var requiredStringPaths = []string{
	"elevator_pitch",
	"executive_summary",
	"problem_statement",
	"solution",
	"unique_value_proposition",
	"traction_metrics.users",
	"traction_metrics.revenue",
	"traction_metrics.growth",
	"market_opportunity.tam",
	"market_opportunity.sam",
	"market_opportunity.target_segment",
	"business_model.pricing",
	"business_model.unit_economics",
	"team_highlights",
	"funding_ask.amount",
	"delivery_tips.tone",
	"delivery_tips.pacing",
}

// Required array-valued paths of the final package schema.
var requiredArrayPaths = []string{
	"traction_metrics.other_metrics",
	"business_model.revenue_streams",
	"competitive_advantage",
	"funding_ask.milestones",
	"key_talking_points",
	"anticipated_questions",
	"delivery_tips.emphasis_points",
}

// DecodeFinalPackage parses the readiness response, filling any missing
// schema field with an explicit placeholder. A malformed response
// degrades to a placeholder-only package built around the pitch text.
func DecodeFinalPackage(raw, pitch string) *workflow.FinalPackage {
	doc := stripFences(raw)
	if !gjson.Valid(doc) || !gjson.Parse(doc).IsObject() {
		return FallbackFinalPackage(pitch)
	}

	doc = fillSchema(doc)

	var pkg workflow.FinalPackage
	if err := json.Unmarshal([]byte(doc), &pkg); err != nil {
		return FallbackFinalPackage(pitch)
	}
	if pkg.FundingAsk.UseOfFunds == nil {
		pkg.FundingAsk.UseOfFunds = map[string]string{}
	}
	return &pkg
}

// fillSchema sets placeholders on every required path absent from doc.
func fillSchema(doc string) string {
	for _, path := range requiredStringPaths {
		if !gjson.Get(doc, path).Exists() {
			doc, _ = sjson.Set(doc, path, PlaceholderText)
		}
	}
	for _, path := range requiredArrayPaths {
		if !gjson.Get(doc, path).IsArray() {
			doc, _ = sjson.SetRaw(doc, path, "[]")
		}
	}
	if !gjson.Get(doc, "funding_ask.use_of_funds").IsObject() {
		doc, _ = sjson.SetRaw(doc, "funding_ask.use_of_funds", "{}")
	}
	return doc
}

// FallbackFinalPackage builds the degraded package used when the
// backend response was unusable: the pitch itself fills the narrative
// fields, everything else is an explicit placeholder.
func FallbackFinalPackage(pitch string) *workflow.FinalPackage {
	elevator := pitch
	if len(elevator) > 200 {
		elevator = elevator[:200]
	}
	return &workflow.FinalPackage{
		ElevatorPitch:          elevator,
		ExecutiveSummary:       pitch,
		ProblemStatement:       PlaceholderText,
		Solution:               PlaceholderText,
		UniqueValueProposition: PlaceholderText,
		TractionMetrics: workflow.TractionMetrics{
			Users:        PlaceholderText,
			Revenue:      PlaceholderText,
			Growth:       PlaceholderText,
			OtherMetrics: []string{},
		},
		MarketOpportunity: workflow.MarketOpportunity{
			TAM:           PlaceholderText,
			SAM:           PlaceholderText,
			TargetSegment: PlaceholderText,
		},
		BusinessModel: workflow.BusinessModel{
			RevenueStreams: []string{},
			Pricing:        PlaceholderText,
			UnitEconomics:  PlaceholderText,
		},
		CompetitiveAdvantage: []string{},
		TeamHighlights:       PlaceholderText,
		FundingAsk: workflow.FundingAsk{
			Amount:     PlaceholderText,
			UseOfFunds: map[string]string{},
			Milestones: []string{},
		},
		KeyTalkingPoints:     []string{},
		AnticipatedQuestions: []workflow.QA{},
		DeliveryTips: workflow.DeliveryTips{
			Tone:           PlaceholderText,
			Pacing:         PlaceholderText,
			EmphasisPoints: []string{},
		},
	}
}
