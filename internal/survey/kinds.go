package survey

import (
	"errors"
	"fmt"
)

// Kind is the answer-format category of a question. Internally questions
// carry these labels; the stored rows use the legacy wire identifiers
// ("one".."eight") that the first client shipped with.
type Kind string

const (
	KindShortAnswer  Kind = "shortAnswer"
	KindEssay        Kind = "essay"
	KindSingleChoice Kind = "singleChoice"
	KindMultiChoice  Kind = "multiChoice"
	KindDropdown     Kind = "dropdown"
	KindFileUpload   Kind = "fileUpload"
	KindLinkList     Kind = "linkList"
	KindImageList    Kind = "imageList"
)

// DefaultKind is what a freshly added question starts as.
const DefaultKind = KindShortAnswer

var ErrUnknownKind = errors.New("unknown question kind")

var kindToWire = map[Kind]string{
	KindShortAnswer:  "one",
	KindEssay:        "two",
	KindSingleChoice: "three",
	KindMultiChoice:  "four",
	KindDropdown:     "five",
	KindFileUpload:   "six",
	KindLinkList:     "seven",
	KindImageList:    "eight",
}

var wireToKind = func() map[string]Kind {
	m := make(map[string]Kind, len(kindToWire))
	for k, id := range kindToWire {
		m[id] = k
	}
	return m
}()

// Kinds lists all kinds in wire order.
func Kinds() []Kind {
	return []Kind{
		KindShortAnswer, KindEssay, KindSingleChoice, KindMultiChoice,
		KindDropdown, KindFileUpload, KindLinkList, KindImageList,
	}
}

// Wire returns the stored identifier for a kind.
func (k Kind) Wire() (string, error) {
	id, ok := kindToWire[k]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, k)
	}
	return id, nil
}

// KindFromWire resolves a stored identifier back to its kind label.
func KindFromWire(id string) (Kind, error) {
	k, ok := wireToKind[id]
	if !ok {
		return "", fmt.Errorf("%w: wire id %q", ErrUnknownKind, id)
	}
	return k, nil
}

// IsChoice reports whether the kind carries an option list.
func (k Kind) IsChoice() bool {
	switch k {
	case KindSingleChoice, KindMultiChoice, KindDropdown:
		return true
	}
	return false
}

// Option is one entry of a multi-choice or dropdown option list.
type Option struct {
	Label   string `json:"label"`
	Checked bool   `json:"checked"`
}

var ErrContentShape = errors.New("content does not match question kind")

// ValidateContent checks that a non-nil content payload has the shape the
// kind expects. Nil content is always valid; it renders as "no answer".
func ValidateContent(kind Kind, content any) error {
	if content == nil {
		return nil
	}

	switch kind {
	case KindShortAnswer, KindEssay, KindLinkList:
		if _, ok := content.(string); !ok {
			return fmt.Errorf("%w: %s expects a string", ErrContentShape, kind)
		}
	case KindSingleChoice:
		if _, ok := asStringSlice(content); !ok {
			return fmt.Errorf("%w: %s expects a list of option strings", ErrContentShape, kind)
		}
	case KindMultiChoice, KindDropdown:
		if _, ok := asOptionSlice(content); !ok {
			return fmt.Errorf("%w: %s expects a list of {label, checked} options", ErrContentShape, kind)
		}
	case KindImageList:
		if _, ok := asStringSlice(content); !ok {
			return fmt.Errorf("%w: %s expects a list of image URLs", ErrContentShape, kind)
		}
	case KindFileUpload:
		// upload answers are not implemented; only empty content is stored
		return fmt.Errorf("%w: %s does not store content", ErrContentShape, kind)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return nil
}

func asStringSlice(content any) ([]string, bool) {
	switch v := content.(type) {
	case []string:
		return v, true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

func asOptionSlice(content any) ([]Option, bool) {
	switch v := content.(type) {
	case []Option:
		return v, true
	case []any:
		out := make([]Option, 0, len(v))
		for _, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, false
			}
			label, hasLabel := m["label"].(string)
			checked, hasChecked := m["checked"].(bool)
			if !hasLabel || !hasChecked {
				return nil, false
			}
			out = append(out, Option{Label: label, Checked: checked})
		}
		return out, true
	}
	return nil, false
}
