package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fryegg/api/internal/apperr"
	"fryegg/api/internal/survey"
)

func TestSubmitStoresExactWireShape(t *testing.T) {
	store := newFakeSurveyStore()
	svc := NewSurveyService(store, zerolog.Nop())

	row, err := svc.Submit(context.Background(), SubmitInput{
		Author: "author-1",
		Title:  "설문",
		Questions: []survey.Question{
			{Title: "Q1", Kind: survey.KindShortAnswer, Content: "hello"},
		},
	})
	require.NoError(t, err)

	// An optional question serializes without a required field at all.
	assert.JSONEq(t, `[{"title":"Q1","type":"one","content":"hello"}]`, string(row.Questions))
}

func TestSubmitInsertsThenUpdatesInPlace(t *testing.T) {
	store := newFakeSurveyStore()
	svc := NewSurveyService(store, zerolog.Nop())
	ctx := context.Background()

	first, err := svc.Submit(ctx, SubmitInput{
		Author:    "author-1",
		Title:     "v1",
		Questions: []survey.Question{{Title: "Q1", Kind: survey.KindEssay}},
	})
	require.NoError(t, err)

	second, err := svc.Submit(ctx, SubmitInput{
		Author: "author-1",
		Title:  "v2",
		Questions: []survey.Question{
			{Title: "Q1", Kind: survey.KindEssay},
			{Title: "Q2", Kind: survey.KindSingleChoice, Content: []string{"A안", "B안"}, Required: true},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "resubmit replaces the same row")
	assert.Equal(t, first.CreatedAt, second.CreatedAt)

	stored, questions, err := svc.MySurvey(ctx, "author-1")
	require.NoError(t, err)
	assert.Equal(t, "v2", stored.Title)
	require.Len(t, questions, 2)
	assert.Equal(t, survey.KindSingleChoice, questions[1].Kind)
	assert.True(t, questions[1].Required)
}

func TestSubmitRejectsUnknownKind(t *testing.T) {
	store := newFakeSurveyStore()
	svc := NewSurveyService(store, zerolog.Nop())

	_, err := svc.Submit(context.Background(), SubmitInput{
		Author:    "author-1",
		Title:     "설문",
		Questions: []survey.Question{{Title: "Q1", Kind: "teleport"}},
	})
	assert.Equal(t, apperr.KindBadInput, apperr.KindOf(err))
}

func TestSubmitStoreFailureLeavesNothingBehind(t *testing.T) {
	store := newFakeSurveyStore()
	store.failInsert = errStoreDown
	svc := NewSurveyService(store, zerolog.Nop())

	_, err := svc.Submit(context.Background(), SubmitInput{
		Author:    "author-1",
		Title:     "설문",
		Questions: []survey.Question{{Title: "Q1", Kind: survey.KindShortAnswer}},
	})
	require.Error(t, err)

	_, _, err = svc.MySurvey(context.Background(), "author-1")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestMySurveyMissing(t *testing.T) {
	svc := NewSurveyService(newFakeSurveyStore(), zerolog.Nop())

	_, _, err := svc.MySurvey(context.Background(), "nobody")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
