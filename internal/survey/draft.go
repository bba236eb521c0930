package survey

import (
	"errors"
	"fmt"
)

// Question is one entry of a survey draft. Content is kind-dependent:
// a string, a []string, or a []Option.
type Question struct {
	Title    string
	Kind     Kind
	Content  any
	Required bool
}

// Draft is the mutable authoring state of one author's survey. Ordinals
// are implicit: a question's index is its position in Questions.
type Draft struct {
	Title       string
	Description string
	Questions   []Question
}

var (
	ErrQuestionIndex = errors.New("question index out of range")
	ErrOptionIndex   = errors.New("option index out of range")
	ErrOptionFloor   = errors.New("choice questions keep at least one option")
)

func NewDraft(title, description string) *Draft {
	return &Draft{Title: title, Description: description}
}

// AddQuestion appends an empty, optional question of the default kind
// and returns its index.
func (d *Draft) AddQuestion() int {
	d.Questions = append(d.Questions, Question{Kind: DefaultKind})
	return len(d.Questions) - 1
}

// QuestionPatch carries the fields of a partial question update. Content
// is only applied when SetContent is true, so a nil content write can be
// told apart from an absent field.
type QuestionPatch struct {
	Title      *string
	Kind       *Kind
	Content    any
	SetContent bool
	Required   *bool
}

// UpdateQuestion merges patch into the question at index. Changing the
// kind always clears the content first: a payload from the previous kind
// must never survive under the new one.
func (d *Draft) UpdateQuestion(index int, patch QuestionPatch) error {
	if index < 0 || index >= len(d.Questions) {
		return fmt.Errorf("%w: %d", ErrQuestionIndex, index)
	}
	q := &d.Questions[index]

	if patch.Title != nil {
		q.Title = *patch.Title
	}
	if patch.Required != nil {
		q.Required = *patch.Required
	}
	if patch.Kind != nil && *patch.Kind != q.Kind {
		if _, err := patch.Kind.Wire(); err != nil {
			return err
		}
		q.Kind = *patch.Kind
		q.Content = nil
	}
	if patch.SetContent {
		if err := ValidateContent(q.Kind, patch.Content); err != nil {
			return err
		}
		q.Content = patch.Content
	}
	return nil
}

// RemoveQuestion drops the question at index; later questions shift
// down, regenerating their ordinals from position.
func (d *Draft) RemoveQuestion(index int) error {
	if index < 0 || index >= len(d.Questions) {
		return fmt.Errorf("%w: %d", ErrQuestionIndex, index)
	}
	d.Questions = append(d.Questions[:index], d.Questions[index+1:]...)
	return nil
}

// AddOption appends an option to a choice-type question.
func (d *Draft) AddOption(index int, label string) error {
	if index < 0 || index >= len(d.Questions) {
		return fmt.Errorf("%w: %d", ErrQuestionIndex, index)
	}
	q := &d.Questions[index]

	switch q.Kind {
	case KindSingleChoice:
		options, _ := asStringSlice(q.Content)
		q.Content = append(options, label)
	case KindMultiChoice, KindDropdown:
		options, _ := asOptionSlice(q.Content)
		q.Content = append(options, Option{Label: label})
	default:
		return fmt.Errorf("%w: %s has no option list", ErrContentShape, q.Kind)
	}
	return nil
}

// RemoveOption drops one option from a choice-type question. The list
// never shrinks below a single entry; such removals are rejected and
// leave the list unchanged.
func (d *Draft) RemoveOption(index, optionIndex int) error {
	if index < 0 || index >= len(d.Questions) {
		return fmt.Errorf("%w: %d", ErrQuestionIndex, index)
	}
	q := &d.Questions[index]

	switch q.Kind {
	case KindSingleChoice:
		options, ok := asStringSlice(q.Content)
		if !ok || optionIndex < 0 || optionIndex >= len(options) {
			return fmt.Errorf("%w: %d", ErrOptionIndex, optionIndex)
		}
		if len(options) <= 1 {
			return ErrOptionFloor
		}
		q.Content = append(options[:optionIndex], options[optionIndex+1:]...)
	case KindMultiChoice, KindDropdown:
		options, ok := asOptionSlice(q.Content)
		if !ok || optionIndex < 0 || optionIndex >= len(options) {
			return fmt.Errorf("%w: %d", ErrOptionIndex, optionIndex)
		}
		if len(options) <= 1 {
			return ErrOptionFloor
		}
		q.Content = append(options[:optionIndex], options[optionIndex+1:]...)
	default:
		return fmt.Errorf("%w: %s has no option list", ErrContentShape, q.Kind)
	}
	return nil
}
