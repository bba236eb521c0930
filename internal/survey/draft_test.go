package survey

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func kindPtr(k Kind) *Kind { return &k }

func TestAddQuestionDefaults(t *testing.T) {
	d := NewDraft("T", "")
	index := d.AddQuestion()

	require.Equal(t, 0, index)
	q := d.Questions[0]
	assert.Equal(t, DefaultKind, q.Kind)
	assert.Empty(t, q.Title)
	assert.Nil(t, q.Content)
	assert.False(t, q.Required)
}

func TestKindChangeResetsContent(t *testing.T) {
	d := NewDraft("T", "")
	d.AddQuestion()

	require.NoError(t, d.UpdateQuestion(0, QuestionPatch{
		Title:      strPtr("Q1"),
		Content:    "hello",
		SetContent: true,
	}))
	require.Equal(t, "hello", d.Questions[0].Content)

	// switching kinds must never leak the old payload under the new kind
	require.NoError(t, d.UpdateQuestion(0, QuestionPatch{Kind: kindPtr(KindMultiChoice)}))
	assert.Equal(t, KindMultiChoice, d.Questions[0].Kind)
	assert.Nil(t, d.Questions[0].Content)
	assert.Equal(t, "Q1", d.Questions[0].Title, "unrelated fields survive a kind change")
}

func TestUpdateQuestionValidatesContentAgainstKind(t *testing.T) {
	d := NewDraft("T", "")
	d.AddQuestion()

	err := d.UpdateQuestion(0, QuestionPatch{
		Content:    []Option{{Label: "a"}},
		SetContent: true,
	})
	assert.ErrorIs(t, err, ErrContentShape, "option list under shortAnswer is rejected")
	assert.Nil(t, d.Questions[0].Content)

	err = d.UpdateQuestion(0, QuestionPatch{
		Kind:       kindPtr(KindDropdown),
		Content:    []Option{{Label: "a"}},
		SetContent: true,
	})
	assert.NoError(t, err, "content is validated against the patched kind")
}

func TestUpdateQuestionIndexOutOfRange(t *testing.T) {
	d := NewDraft("T", "")
	assert.ErrorIs(t, d.UpdateQuestion(0, QuestionPatch{}), ErrQuestionIndex)
	assert.ErrorIs(t, d.RemoveQuestion(0), ErrQuestionIndex)
}

func TestRemoveQuestionShiftsOrdinals(t *testing.T) {
	d := NewDraft("T", "")
	for i := 0; i < 3; i++ {
		d.AddQuestion()
		require.NoError(t, d.UpdateQuestion(i, QuestionPatch{Title: strPtr(string(rune('a' + i)))}))
	}

	require.NoError(t, d.RemoveQuestion(1))
	require.Len(t, d.Questions, 2)
	assert.Equal(t, "a", d.Questions[0].Title)
	assert.Equal(t, "c", d.Questions[1].Title, "later questions shift down")
}

func TestRemoveOptionFloor(t *testing.T) {
	d := NewDraft("T", "")
	d.AddQuestion()
	require.NoError(t, d.UpdateQuestion(0, QuestionPatch{Kind: kindPtr(KindMultiChoice)}))
	require.NoError(t, d.AddOption(0, "only"))

	err := d.RemoveOption(0, 0)
	assert.ErrorIs(t, err, ErrOptionFloor)
	options, ok := asOptionSlice(d.Questions[0].Content)
	require.True(t, ok)
	assert.Len(t, options, 1, "a rejected removal leaves the list unchanged")

	require.NoError(t, d.AddOption(0, "second"))
	require.NoError(t, d.RemoveOption(0, 0))
	options, _ = asOptionSlice(d.Questions[0].Content)
	require.Len(t, options, 1)
	assert.Equal(t, "second", options[0].Label)
}

func TestRemoveOptionFloorSingleChoice(t *testing.T) {
	d := NewDraft("T", "")
	d.AddQuestion()
	require.NoError(t, d.UpdateQuestion(0, QuestionPatch{Kind: kindPtr(KindSingleChoice)}))
	require.NoError(t, d.AddOption(0, "a"))

	assert.ErrorIs(t, d.RemoveOption(0, 0), ErrOptionFloor)

	require.NoError(t, d.AddOption(0, "b"))
	require.NoError(t, d.RemoveOption(0, 1))
	choices, _ := asStringSlice(d.Questions[0].Content)
	assert.Equal(t, []string{"a"}, choices)
}

func TestRemoveOptionOnNonChoiceKind(t *testing.T) {
	d := NewDraft("T", "")
	d.AddQuestion()
	assert.ErrorIs(t, d.RemoveOption(0, 0), ErrContentShape)
}

func TestEncodeDecodeQuestions(t *testing.T) {
	questions := []Question{
		{Title: "Q1", Kind: KindShortAnswer, Content: "hello"},
		{Title: "Q2", Kind: KindMultiChoice, Content: []Option{{Label: "a", Checked: true}}, Required: true},
		{Title: "Q3", Kind: KindImageList, Content: []string{"https://img.example.com/1.png"}},
	}

	raw, err := EncodeQuestions(questions)
	require.NoError(t, err)

	var wire []WireQuestion
	require.NoError(t, json.Unmarshal(raw, &wire))
	require.Len(t, wire, 3)
	assert.Equal(t, "one", wire[0].Type)
	assert.Equal(t, "four", wire[1].Type)
	assert.Equal(t, "eight", wire[2].Type)

	decoded, err := DecodeQuestions(raw)
	require.NoError(t, err)
	require.Len(t, decoded, 3)
	for i, q := range decoded {
		assert.Equalf(t, questions[i].Kind, q.Kind, "question %d kind survives the round trip", i)
		assert.Equal(t, questions[i].Title, q.Title)
		assert.Equal(t, questions[i].Required, q.Required)
	}
}

func TestEncodeQuestionsRejectsMismatchedContent(t *testing.T) {
	_, err := EncodeQuestions([]Question{
		{Title: "Q1", Kind: KindShortAnswer, Content: []string{"not", "a", "string"}},
	})
	assert.ErrorIs(t, err, ErrContentShape)
}
