package survey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindWireRoundTrip(t *testing.T) {
	for _, kind := range Kinds() {
		id, err := kind.Wire()
		require.NoErrorf(t, err, "kind %s", kind)

		back, err := KindFromWire(id)
		require.NoErrorf(t, err, "wire id %s", id)
		assert.Equalf(t, kind, back, "round trip through wire id %s", id)
	}
}

func TestKindWireRejectsUnknown(t *testing.T) {
	_, err := Kind("checkbox").Wire()
	assert.ErrorIs(t, err, ErrUnknownKind)

	_, err = KindFromWire("nine")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestValidateContentShapes(t *testing.T) {
	tests := []struct {
		name    string
		kind    Kind
		content any
		ok      bool
	}{
		{"short answer string", KindShortAnswer, "hello", true},
		{"short answer list", KindShortAnswer, []string{"a"}, false},
		{"essay string", KindEssay, "long text", true},
		{"link string", KindLinkList, "https://blog.example.com", true},
		{"single choice strings", KindSingleChoice, []string{"a", "b"}, true},
		{"single choice decoded json", KindSingleChoice, []any{"a", "b"}, true},
		{"single choice options", KindSingleChoice, []Option{{Label: "a"}}, false},
		{"multi choice options", KindMultiChoice, []Option{{Label: "a", Checked: true}}, true},
		{"multi choice decoded json", KindMultiChoice, []any{map[string]any{"label": "a", "checked": false}}, true},
		{"multi choice strings", KindMultiChoice, []string{"a"}, false},
		{"dropdown options", KindDropdown, []Option{{Label: "a"}}, true},
		{"image urls", KindImageList, []string{"https://img.example.com/1.png"}, true},
		{"image non-strings", KindImageList, []any{1, 2}, false},
		{"file upload content", KindFileUpload, "file.png", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateContent(tt.kind, tt.content)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrContentShape)
			}
		})
	}
}

func TestValidateContentNilAlwaysValid(t *testing.T) {
	for _, kind := range Kinds() {
		assert.NoErrorf(t, ValidateContent(kind, nil), "nil content for kind %s", kind)
	}
}
