package service

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/fernhq/fern/api/internal/model"
)

// Questionnaire compression: a compact, token-budget-friendly snapshot of the
// user's answers plus footprint breakdown. The compact summary is LLM context
// only; no other component parses it.

type areaPrefix struct {
	area   string
	prefix string
}

// Areas in catalog order. Prefix matching partitions answers by question id.
var areaPrefixes = []areaPrefix{
	{area: "transport", prefix: "q_transport_"},
	{area: "home", prefix: "q_home_"},
	{area: "diet", prefix: "q_diet_"},
	{area: "consumption", prefix: "q_consumption_"},
	{area: "waste", prefix: "q_waste_"},
}

var (
	parentheticalRe = regexp.MustCompile(`\([^)]*\)`)
	nonAlnumRe      = regexp.MustCompile(`[^a-z0-9]+`)
)

// compactStringToken slugifies an option label: parentheticals stripped,
// lower-cased, non-alphanumerics collapsed to underscores, at most 8 words.
func compactStringToken(value string) string {
	s := parentheticalRe.ReplaceAllString(value, " ")
	s = strings.ToLower(s)
	s = nonAlnumRe.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if s == "" {
		return ""
	}
	words := strings.Split(s, "_")
	if len(words) > 8 {
		words = words[:8]
	}
	return strings.Join(words, "_")
}

func answerToken(value interface{}) interface{} {
	switch v := value.(type) {
	case bool:
		if v {
			return 1
		}
		return 0
	case float64:
		rounded := Round1(v)
		if math.IsNaN(rounded) || math.IsInf(rounded, 0) {
			return float64(0)
		}
		return rounded
	case string:
		if token := compactStringToken(v); token != "" {
			return token
		}
		return "unknown"
	}
	return "unknown"
}

// topEmissionArea picks the breakdown component with the largest value.
// Ties resolve in transport, home, diet order.
func topEmissionArea(breakdown model.FootprintBreakdown) string {
	ordered := []struct {
		area string
		kg   float64
	}{
		{area: "transport", kg: breakdown.TransportKg},
		{area: "home", kg: breakdown.HomeKg},
		{area: "diet", kg: breakdown.DietKg},
	}

	top := ordered[0]
	for _, candidate := range ordered[1:] {
		if candidate.kg > top.kg {
			top = candidate
		}
	}
	return top.area
}

func formatAreaSummary(area string, answers map[string]interface{}) string {
	if len(answers) == 0 {
		return area + "{}"
	}
	// Iterate in catalog order for a stable summary string
	parts := make([]string, 0, len(answers))
	for _, question := range model.QuestionnaireV1.Questions {
		for _, ap := range areaPrefixes {
			if ap.area != area || !strings.HasPrefix(question.ID, ap.prefix) {
				continue
			}
			key := strings.TrimPrefix(question.ID, ap.prefix)
			if value, ok := answers[key]; ok {
				parts = append(parts, fmt.Sprintf("%s=%v", key, value))
			}
		}
	}
	return fmt.Sprintf("%s{%s}", area, strings.Join(parts, ","))
}

// BuildCompression derives the stored compression record from validated
// answers, the rounded footprint, and its breakdown.
func BuildCompression(answers map[string]interface{}, initialFootprintKg float64, breakdown model.FootprintBreakdown) *model.QuestionnaireCompression {
	answersByArea := map[string]map[string]interface{}{
		"transport":   {},
		"home":        {},
		"diet":        {},
		"consumption": {},
		"waste":       {},
	}

	for _, question := range model.QuestionnaireV1.Questions {
		raw, ok := answers[question.ID]
		if !ok {
			continue
		}
		for _, ap := range areaPrefixes {
			if !strings.HasPrefix(question.ID, ap.prefix) {
				continue
			}
			key := strings.TrimPrefix(question.ID, ap.prefix)
			answersByArea[ap.area][key] = answerToken(raw)
			break
		}
	}

	top := topEmissionArea(breakdown)
	summary := strings.Join([]string{
		fmt.Sprintf("fp=%d", int(math.Round(initialFootprintKg))),
		fmt.Sprintf("top=%s", top),
		fmt.Sprintf("br=transport:%d,home:%d,diet:%d",
			int(math.Round(breakdown.TransportKg)),
			int(math.Round(breakdown.HomeKg)),
			int(math.Round(breakdown.DietKg))),
		formatAreaSummary("transport", answersByArea["transport"]),
		formatAreaSummary("home", answersByArea["home"]),
		formatAreaSummary("diet", answersByArea["diet"]),
		formatAreaSummary("consumption", answersByArea["consumption"]),
		formatAreaSummary("waste", answersByArea["waste"]),
	}, "|")

	return &model.QuestionnaireCompression{
		Version:            model.QuestionnaireVersionV1,
		FootprintKgPerYear: int(math.Round(initialFootprintKg)),
		BreakdownKgPerYear: model.CompressedBreakdown{
			Transport: int(math.Round(breakdown.TransportKg)),
			Home:      int(math.Round(breakdown.HomeKg)),
			Diet:      int(math.Round(breakdown.DietKg)),
		},
		TopEmissionArea: top,
		AnswersByArea:   answersByArea,
		CompactSummary:  summary,
	}
}
