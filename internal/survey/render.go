package survey

import (
	"encoding/json"
	"fmt"
	"strings"
)

// View is the display category a stored answer resolves to.
type View string

const (
	ViewNoAnswer  View = "noAnswer"
	ViewText      View = "text"
	ViewChecklist View = "checklist"
	ViewChoices   View = "choices"
	ViewLink      View = "link"
	ViewImages    View = "images"
	ViewDump      View = "dump"
)

const (
	// NoAnswerText is the placeholder shown for questions without content.
	NoAnswerText = "답변 없음"
	// FallbackImage replaces image entries that cannot be displayed.
	FallbackImage = "/fallback.png"
)

// Rendered is the displayable form of one stored question's content.
type Rendered struct {
	View      View     `json:"view"`
	Text      string   `json:"text,omitempty"`
	Checklist []Option `json:"checklist,omitempty"`
	Choices   []string `json:"choices,omitempty"`
	URL       string   `json:"url,omitempty"`
	Images    []string `json:"images,omitempty"`
	Dump      string   `json:"dump,omitempty"`
}

// Render maps a stored question to its display representation. Decision
// order: nil content renders the placeholder; string content is parsed
// as JSON with the raw string as fallback; any array of {label, checked}
// objects renders as a checklist regardless of the declared type (stored
// rows predate the kind/content consistency checks, so the shape wins
// over the tag); everything else dispatches on the wire type, with a
// pretty-printed dump as the universal fallback.
func Render(q WireQuestion) Rendered {
	if q.Content == nil {
		return Rendered{View: ViewNoAnswer, Text: NoAnswerText}
	}

	content := q.Content
	if s, ok := content.(string); ok {
		var parsed any
		if err := json.Unmarshal([]byte(s), &parsed); err == nil {
			content = parsed
		}
	}

	if options, ok := sniffChecklist(content); ok {
		return Rendered{View: ViewChecklist, Checklist: options}
	}

	switch q.Type {
	case "one", "two":
		return Rendered{View: ViewText, Text: asText(content)}
	case "seven":
		return Rendered{View: ViewLink, Text: asText(content), URL: asText(content)}
	case "three":
		if choices, ok := asStringSlice(content); ok {
			return Rendered{View: ViewChoices, Choices: choices}
		}
		return Rendered{View: ViewText, Text: asText(content)}
	case "eight":
		if urls, ok := asStringSlice(content); ok {
			return Rendered{View: ViewImages, Images: imageGrid(urls)}
		}
	}

	return Rendered{View: ViewDump, Dump: dump(content)}
}

// sniffChecklist detects the {label, checked} array shape. Unlike
// ValidateContent it only inspects the first element, matching how the
// stored rows were read before kinds were validated.
func sniffChecklist(content any) ([]Option, bool) {
	items, ok := content.([]any)
	if !ok || len(items) == 0 {
		if options, ok := content.([]Option); ok && len(options) > 0 {
			return options, true
		}
		return nil, false
	}

	first, ok := items[0].(map[string]any)
	if !ok {
		return nil, false
	}
	if _, hasLabel := first["label"]; !hasLabel {
		return nil, false
	}
	if _, hasChecked := first["checked"]; !hasChecked {
		return nil, false
	}

	options := make([]Option, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			options = append(options, Option{Label: asText(item)})
			continue
		}
		label, _ := m["label"].(string)
		checked, _ := m["checked"].(bool)
		options = append(options, Option{Label: label, Checked: checked})
	}
	return options, true
}

func imageGrid(urls []string) []string {
	images := make([]string, 0, len(urls))
	for _, u := range urls {
		if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			images = append(images, FallbackImage)
			continue
		}
		images = append(images, u)
	}
	return images
}

func asText(content any) string {
	if s, ok := content.(string); ok {
		return s
	}
	return fmt.Sprint(content)
}

func dump(content any) string {
	pretty, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return asText(content)
	}
	return string(pretty)
}
