package survey

import (
	"encoding/json"
	"fmt"
)

// WireQuestion is the stored form of a question inside the survey row's
// jsonb column. Type holds the legacy wire identifier, not the kind label.
type WireQuestion struct {
	Title    string `json:"title"`
	Type     string `json:"type"`
	Content  any    `json:"content"`
	Required bool   `json:"required,omitempty"`
}

// EncodeQuestions validates each question and serializes the list into
// the stored wire form, mapping kind labels to wire identifiers.
func EncodeQuestions(questions []Question) (json.RawMessage, error) {
	wire := make([]WireQuestion, 0, len(questions))
	for i, q := range questions {
		id, err := q.Kind.Wire()
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
		if err := ValidateContent(q.Kind, q.Content); err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
		wire = append(wire, WireQuestion{
			Title:    q.Title,
			Type:     id,
			Content:  q.Content,
			Required: q.Required,
		})
	}

	raw, err := json.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("marshal questions: %w", err)
	}
	return raw, nil
}

// DecodeQuestions parses a stored question array back into draft
// questions, mapping wire identifiers to kind labels.
func DecodeQuestions(raw json.RawMessage) ([]Question, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var wire []WireQuestion
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("unmarshal questions: %w", err)
	}

	questions := make([]Question, 0, len(wire))
	for i, wq := range wire {
		kind, err := KindFromWire(wq.Type)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
		questions = append(questions, Question{
			Title:    wq.Title,
			Kind:     kind,
			Content:  wq.Content,
			Required: wq.Required,
		})
	}
	return questions, nil
}
