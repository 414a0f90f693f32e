package service

import (
	"context"

	"github.com/fernhq/fern/api/internal/model"
)

// QuestionnaireRepository defines the interface for questionnaire storage
type QuestionnaireRepository interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
	SaveQuestionnaire(ctx context.Context, userID string, save *model.QuestionnaireSave) error
	ResetQuestionnaire(ctx context.Context, userID string) error
}

// QuestionnaireService handles questionnaire business logic
type QuestionnaireService struct {
	repo QuestionnaireRepository
}

// QuestionnaireServiceConfig holds configuration for the questionnaire service
type QuestionnaireServiceConfig struct {
	Repo QuestionnaireRepository
}

// NewQuestionnaireService creates a new questionnaire service
func NewQuestionnaireService(cfg QuestionnaireServiceConfig) *QuestionnaireService {
	return &QuestionnaireService{
		repo: cfg.Repo,
	}
}

// Catalog returns the active questionnaire definition
func (s *QuestionnaireService) Catalog() *model.Questionnaire {
	return &model.QuestionnaireV1
}

// Submit validates a full answer set, computes the initial footprint, and
// persists answers, footprint, and the derived compression in one save.
// Resubmitting recomputes and overwrites the previous snapshot.
func (s *QuestionnaireService) Submit(ctx context.Context, userID string, req *model.SubmitQuestionnaireRequest) (*model.SubmitQuestionnaireResponse, error) {
	version := req.QuestionnaireVersion
	if version == "" {
		version = model.QuestionnaireVersionV1
	}
	if version != model.QuestionnaireVersionV1 {
		return nil, ErrUnsupportedVersion
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	validation, err := ValidateAnswers(&model.QuestionnaireV1, req.Answers)
	if err != nil {
		return nil, err
	}

	mapping := MapAnswersToFootprintInput(validation.ValidAnswers)
	result := CalculateFootprint(mapping.CalculatorInput)

	// Rounded exactly once; the same value is stored and returned
	initialFootprintKg := Round1(result.TotalKgPerYear)

	compression := BuildCompression(validation.ValidAnswers, initialFootprintKg, result.Breakdown)

	save := &model.QuestionnaireSave{
		Version:            version,
		Answers:            validation.ValidAnswers,
		InitialFootprintKg: initialFootprintKg,
		Compression:        compression,
	}
	if err := s.repo.SaveQuestionnaire(ctx, userID, save); err != nil {
		return nil, err
	}

	return &model.SubmitQuestionnaireResponse{
		InitialFootprintKg: initialFootprintKg,
		Assumptions:        mapping.Assumptions,
	}, nil
}

// Reset clears the stored questionnaire state so the user can start over.
// Completion history and streaks are untouched.
func (s *QuestionnaireService) Reset(ctx context.Context, userID string) error {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	return s.repo.ResetQuestionnaire(ctx, userID)
}
