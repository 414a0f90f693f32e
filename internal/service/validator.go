package service

import (
	"math"

	"github.com/fernhq/fern/api/internal/model"
)

// AnswerValidation is the result of a successful validation pass
type AnswerValidation struct {
	// ValidAnswers holds the accepted subset, with unanswered questions
	// filled from the documented defaults.
	ValidAnswers map[string]interface{}
	// MissingQuestionIDs lists catalog questions absent from the input,
	// before default substitution.
	MissingQuestionIDs []string
}

// ValidateAnswers checks a raw answer map against the questionnaire catalog.
// Unknown ids are rejected so client and server catalogs cannot drift
// silently. Every problem is collected, not just the first.
func ValidateAnswers(questionnaire *model.Questionnaire, raw map[string]interface{}) (*AnswerValidation, error) {
	byID := questionnaire.QuestionByID()
	var details []model.FieldError
	valid := make(map[string]interface{}, len(raw))

	for answerID, value := range raw {
		question, ok := byID[answerID]
		if !ok {
			details = append(details, model.FieldError{Field: answerID, Message: "unknown question id"})
			continue
		}

		normalized, ok := normalizeAnswerValue(question, value)
		if !ok {
			details = append(details, model.FieldError{Field: answerID, Message: "invalid answer for question"})
			continue
		}

		valid[answerID] = normalized
	}

	if len(details) > 0 {
		return nil, &AnswerValidationError{Details: details}
	}

	var missing []string
	for _, question := range questionnaire.Questions {
		if _, ok := valid[question.ID]; !ok {
			missing = append(missing, question.ID)
		}
	}

	for _, questionID := range missing {
		if fallback, ok := model.DefaultAnswers[questionID]; ok {
			valid[questionID] = fallback
		}
	}

	return &AnswerValidation{
		ValidAnswers:       valid,
		MissingQuestionIDs: missing,
	}, nil
}

// normalizeAnswerValue checks a value against its question's declared type.
// Booleans stay booleans, numbers normalize to float64 (finite, non-negative),
// singles must match one of the question's enumerated options exactly.
func normalizeAnswerValue(question model.Question, value interface{}) (interface{}, bool) {
	switch question.Type {
	case model.QuestionTypeBoolean:
		b, ok := value.(bool)
		return b, ok

	case model.QuestionTypeNumber:
		var n float64
		switch v := value.(type) {
		case float64:
			n = v
		case int:
			n = float64(v)
		default:
			return nil, false
		}
		if math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
			return nil, false
		}
		return n, true

	case model.QuestionTypeSingle:
		s, ok := value.(string)
		if !ok {
			return nil, false
		}
		for _, option := range question.Options {
			if option == s {
				return s, true
			}
		}
		return nil, false
	}

	return nil, false
}
