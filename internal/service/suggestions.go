package service

import (
	"context"

	"github.com/fernhq/fern/api/internal/model"
)

// SuggestionContext is the computed footprint snapshot handed to the
// suggestion service in place of the raw answer map.
type SuggestionContext struct {
	CompactSummary     string
	FootprintKgPerYear float64
	Breakdown          model.FootprintBreakdown
	TopEmissionArea    string
}

// SuggestionGenerator produces structured reduction advice
type SuggestionGenerator interface {
	GenerateSuggestions(ctx context.Context, input *SuggestionContext) (*model.Suggestion, error)
}

// SuggestionService handles personalized reduction advice
type SuggestionService struct {
	generator SuggestionGenerator
}

// SuggestionServiceConfig holds configuration for the suggestion service
type SuggestionServiceConfig struct {
	Generator SuggestionGenerator
}

// NewSuggestionService creates a new suggestion service
func NewSuggestionService(cfg SuggestionServiceConfig) *SuggestionService {
	return &SuggestionService{
		generator: cfg.Generator,
	}
}

// Suggest validates the submitted answers, computes the footprint, and asks
// the suggestion service for advice grounded in the compact summary. Nothing
// is persisted; a failed generation surfaces as ErrSuggestionFailed.
func (s *SuggestionService) Suggest(ctx context.Context, req *model.SuggestionRequest) (*model.Suggestion, error) {
	version := req.QuestionnaireVersion
	if version == "" {
		version = model.QuestionnaireVersionV1
	}
	if version != model.QuestionnaireVersionV1 {
		return nil, ErrUnsupportedVersion
	}

	validation, err := ValidateAnswers(&model.QuestionnaireV1, req.Answers)
	if err != nil {
		return nil, err
	}

	mapping := MapAnswersToFootprintInput(validation.ValidAnswers)
	result := CalculateFootprint(mapping.CalculatorInput)
	footprintKg := Round1(result.TotalKgPerYear)
	compression := BuildCompression(validation.ValidAnswers, footprintKg, result.Breakdown)

	suggestion, err := s.generator.GenerateSuggestions(ctx, &SuggestionContext{
		CompactSummary:     compression.CompactSummary,
		FootprintKgPerYear: footprintKg,
		Breakdown:          result.Breakdown,
		TopEmissionArea:    compression.TopEmissionArea,
	})
	if err != nil || suggestion == nil {
		return nil, ErrSuggestionFailed
	}

	return suggestion, nil
}
