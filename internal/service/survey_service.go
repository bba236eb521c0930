package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"fryegg/api/internal/apperr"
	"fryegg/api/internal/models"
	"fryegg/api/internal/repository"
	"fryegg/api/internal/survey"
)

type SurveyService struct {
	surveys SurveyStore
	log     zerolog.Logger
}

func NewSurveyService(surveys SurveyStore, log zerolog.Logger) *SurveyService {
	return &SurveyService{surveys: surveys, log: log}
}

type SubmitInput struct {
	Author      string
	Title       string
	Description string
	Questions   []survey.Question
}

// Submit serializes the draft into the wire form and writes the author's
// single survey row, inserting on first submit and updating in place
// afterwards. A storage failure reports the error without touching the
// caller's draft.
func (s *SurveyService) Submit(ctx context.Context, input SubmitInput) (models.Survey, error) {
	questions, err := survey.EncodeQuestions(input.Questions)
	if err != nil {
		return models.Survey{}, apperr.New(apperr.KindBadInput, err)
	}

	row := models.Survey{
		Author:        input.Author,
		Title:         input.Title,
		TitleContents: input.Description,
		Questions:     questions,
	}

	existing, err := s.surveys.FindByAuthor(ctx, input.Author)
	if err != nil {
		if !errors.Is(err, repository.ErrSurveyNotFound) {
			return models.Survey{}, apperr.New(apperr.KindUnknown, err)
		}
		created, err := s.surveys.Insert(ctx, row)
		if err != nil {
			return models.Survey{}, apperr.New(apperr.KindUnknown, err)
		}
		return created, nil
	}

	row.ID = existing.ID
	row.CreatedAt = existing.CreatedAt
	if err := s.surveys.Update(ctx, row); err != nil {
		return models.Survey{}, apperr.New(apperr.KindUnknown, err)
	}
	return row, nil
}

// MySurvey loads the author's stored survey back into draft questions.
func (s *SurveyService) MySurvey(ctx context.Context, author string) (models.Survey, []survey.Question, error) {
	stored, err := s.surveys.FindByAuthor(ctx, author)
	if err != nil {
		if errors.Is(err, repository.ErrSurveyNotFound) {
			return models.Survey{}, nil, apperr.New(apperr.KindNotFound, err)
		}
		return models.Survey{}, nil, apperr.New(apperr.KindUnknown, err)
	}

	questions, err := survey.DecodeQuestions(stored.Questions)
	if err != nil {
		return models.Survey{}, nil, apperr.New(apperr.KindUnknown, err)
	}
	return stored, questions, nil
}
