package service

import (
	"context"
	"errors"
	"testing"

	"github.com/fernhq/fern/api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock implementations

type mockGenerator struct {
	suggestion *model.Suggestion
	err        error
	lastInput  *SuggestionContext
}

func (m *mockGenerator) GenerateSuggestions(ctx context.Context, input *SuggestionContext) (*model.Suggestion, error) {
	m.lastInput = input
	return m.suggestion, m.err
}

func newSuggestionService(gen *mockGenerator) *SuggestionService {
	return NewSuggestionService(SuggestionServiceConfig{Generator: gen})
}

// ============================================================================
// Suggest Tests
// ============================================================================

func TestSuggest_PassesComputedContext(t *testing.T) {
	t.Parallel()

	gen := &mockGenerator{suggestion: &model.Suggestion{
		Summary: "Drive less, eat greener.",
		TopActions: []model.SuggestedAction{
			{Title: "Bike to work", EstimatedReductionKgPerYear: 200, Difficulty: model.DifficultyMedium},
		},
	}}
	svc := newSuggestionService(gen)

	suggestion, err := svc.Suggest(context.Background(), &model.SuggestionRequest{
		QuestionnaireVersion: model.QuestionnaireVersionV1,
		Answers: map[string]interface{}{
			"q_transport_km_per_week":  float64(100),
			"q_transport_fuel_type":    "Gasoline/Petrol",
			"q_home_electricity_usage": "Very low (minimal appliances, LED lights, unplug when not in use)",
			"q_diet_meat_frequency":    "Never (vegetarian/vegan)",
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "Drive less, eat greener.", suggestion.Summary)

	input := gen.lastInput
	require.NotNil(t, input)
	assert.Equal(t, "transport", input.TopEmissionArea)
	assert.Positive(t, input.FootprintKgPerYear)
	assert.NotEmpty(t, input.CompactSummary)
	assert.InDelta(t, 998.4, input.Breakdown.TransportKg, 0.001)
}

func TestSuggest_EmptyVersionDefaultsToV1(t *testing.T) {
	t.Parallel()

	gen := &mockGenerator{suggestion: &model.Suggestion{Summary: "ok"}}
	svc := newSuggestionService(gen)

	_, err := svc.Suggest(context.Background(), &model.SuggestionRequest{
		Answers: map[string]interface{}{},
	})

	require.NoError(t, err)
}

func TestSuggest_UnsupportedVersion(t *testing.T) {
	t.Parallel()

	gen := &mockGenerator{}
	svc := newSuggestionService(gen)

	_, err := svc.Suggest(context.Background(), &model.SuggestionRequest{
		QuestionnaireVersion: "v9",
		Answers:              map[string]interface{}{},
	})

	assert.ErrorIs(t, err, ErrUnsupportedVersion)
	assert.Nil(t, gen.lastInput)
}

func TestSuggest_InvalidAnswersRejected(t *testing.T) {
	t.Parallel()

	gen := &mockGenerator{}
	svc := newSuggestionService(gen)

	_, err := svc.Suggest(context.Background(), &model.SuggestionRequest{
		Answers: map[string]interface{}{"q_nonsense": 1},
	})

	var ve *AnswerValidationError
	require.ErrorAs(t, err, &ve)
	assert.Nil(t, gen.lastInput)
}

func TestSuggest_GeneratorFailure(t *testing.T) {
	t.Parallel()

	svc := newSuggestionService(&mockGenerator{err: errors.New("model overloaded")})

	_, err := svc.Suggest(context.Background(), &model.SuggestionRequest{
		Answers: map[string]interface{}{},
	})

	assert.ErrorIs(t, err, ErrSuggestionFailed)
}

func TestSuggest_NilSuggestionTreatedAsFailure(t *testing.T) {
	t.Parallel()

	svc := newSuggestionService(&mockGenerator{})

	_, err := svc.Suggest(context.Background(), &model.SuggestionRequest{
		Answers: map[string]interface{}{},
	})

	assert.ErrorIs(t, err, ErrSuggestionFailed)
}
