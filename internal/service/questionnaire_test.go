package service

import (
	"context"
	"testing"

	"github.com/fernhq/fern/api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock implementations

type mockQuestionnaireRepo struct {
	user *model.User

	saveErr    error
	lastSave   *model.QuestionnaireSave
	resetCalls int
}

func (m *mockQuestionnaireRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	if m.user == nil || m.user.ID != id {
		return nil, nil
	}
	return m.user, nil
}

func (m *mockQuestionnaireRepo) SaveQuestionnaire(ctx context.Context, userID string, save *model.QuestionnaireSave) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.lastSave = save
	return nil
}

func (m *mockQuestionnaireRepo) ResetQuestionnaire(ctx context.Context, userID string) error {
	m.resetCalls++
	return nil
}

func newQuestionnaireService(repo *mockQuestionnaireRepo) *QuestionnaireService {
	if repo == nil {
		repo = &mockQuestionnaireRepo{}
	}
	return NewQuestionnaireService(QuestionnaireServiceConfig{Repo: repo})
}

// ============================================================================
// Catalog Tests
// ============================================================================

func TestCatalog_ServesV1(t *testing.T) {
	t.Parallel()

	catalog := newQuestionnaireService(nil).Catalog()

	assert.Equal(t, model.QuestionnaireVersionV1, catalog.Version)
	assert.NotEmpty(t, catalog.Questions)
}

// ============================================================================
// Submit Tests
// ============================================================================

func TestSubmit_ComputesAndPersistsFootprint(t *testing.T) {
	t.Parallel()

	repo := &mockQuestionnaireRepo{user: &model.User{ID: "user:alice"}}
	svc := newQuestionnaireService(repo)

	resp, err := svc.Submit(context.Background(), "user:alice", &model.SubmitQuestionnaireRequest{
		QuestionnaireVersion: model.QuestionnaireVersionV1,
		Answers: map[string]interface{}{
			"q_transport_km_per_week":  float64(100),
			"q_transport_fuel_type":    "Gasoline/Petrol",
			"q_home_electricity_usage": "Average (typical household usage)",
			"q_diet_meat_frequency":    "A few times per week",
			"q_diet_primary_meat_type": "Mix of different meats",
		},
	})

	require.NoError(t, err)
	// 100 km/wk gas + 350 kWh/mo + 3 servings/wk
	assert.InDelta(t, 998.4+1680+780, resp.InitialFootprintKg, 0.1)

	save := repo.lastSave
	require.NotNil(t, save)
	assert.Equal(t, model.QuestionnaireVersionV1, save.Version)
	assert.Equal(t, resp.InitialFootprintKg, save.InitialFootprintKg)
	require.NotNil(t, save.Compression)
	assert.Equal(t, "home", save.Compression.TopEmissionArea)
	// Defaults back-filled the unanswered questions before saving
	assert.Len(t, save.Answers, len(model.QuestionnaireV1.Questions))
}

func TestSubmit_EmptyVersionDefaultsToV1(t *testing.T) {
	t.Parallel()

	repo := &mockQuestionnaireRepo{user: &model.User{ID: "user:alice"}}
	svc := newQuestionnaireService(repo)

	_, err := svc.Submit(context.Background(), "user:alice", &model.SubmitQuestionnaireRequest{
		Answers: map[string]interface{}{},
	})

	require.NoError(t, err)
	assert.Equal(t, model.QuestionnaireVersionV1, repo.lastSave.Version)
}

func TestSubmit_UnsupportedVersion(t *testing.T) {
	t.Parallel()

	repo := &mockQuestionnaireRepo{user: &model.User{ID: "user:alice"}}
	svc := newQuestionnaireService(repo)

	_, err := svc.Submit(context.Background(), "user:alice", &model.SubmitQuestionnaireRequest{
		QuestionnaireVersion: "v2",
		Answers:              map[string]interface{}{},
	})

	assert.ErrorIs(t, err, ErrUnsupportedVersion)
	assert.Nil(t, repo.lastSave)
}

func TestSubmit_InvalidAnswersNotPersisted(t *testing.T) {
	t.Parallel()

	repo := &mockQuestionnaireRepo{user: &model.User{ID: "user:alice"}}
	svc := newQuestionnaireService(repo)

	_, err := svc.Submit(context.Background(), "user:alice", &model.SubmitQuestionnaireRequest{
		Answers: map[string]interface{}{
			"q_made_up_question": true,
		},
	})

	var ve *AnswerValidationError
	require.ErrorAs(t, err, &ve)
	assert.Nil(t, repo.lastSave)
}

func TestSubmit_UnknownUser(t *testing.T) {
	t.Parallel()

	svc := newQuestionnaireService(&mockQuestionnaireRepo{})

	_, err := svc.Submit(context.Background(), "user:ghost", &model.SubmitQuestionnaireRequest{
		Answers: map[string]interface{}{},
	})

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSubmit_ReportsAssumptions(t *testing.T) {
	t.Parallel()

	repo := &mockQuestionnaireRepo{user: &model.User{ID: "user:alice"}}
	svc := newQuestionnaireService(repo)

	// Empty input means every answer the mapper consults is a default
	resp, err := svc.Submit(context.Background(), "user:alice", &model.SubmitQuestionnaireRequest{
		Answers: map[string]interface{}{},
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Assumptions, "defaults substituted by validation are not assumptions")
}

// ============================================================================
// Reset Tests
// ============================================================================

func TestReset_ClearsQuestionnaireState(t *testing.T) {
	t.Parallel()

	repo := &mockQuestionnaireRepo{user: &model.User{ID: "user:alice"}}
	svc := newQuestionnaireService(repo)

	err := svc.Reset(context.Background(), "user:alice")

	require.NoError(t, err)
	assert.Equal(t, 1, repo.resetCalls)
}

func TestReset_UnknownUser(t *testing.T) {
	t.Parallel()

	svc := newQuestionnaireService(&mockQuestionnaireRepo{})

	err := svc.Reset(context.Background(), "user:ghost")

	assert.ErrorIs(t, err, ErrUserNotFound)
}
