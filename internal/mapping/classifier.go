package mapping

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Kind is the detected type of a piece of content
type Kind int

const (
	KindUnknown Kind = iota
	KindColor
	KindNumber
	KindText
)

var kindNames = map[Kind]string{
	KindUnknown: "unknown",
	KindColor:   "color",
	KindNumber:  "number",
	KindText:    "text",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MarshalText encodes the kind by name
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name
func (k *Kind) UnmarshalText(b []byte) error {
	for kind, name := range kindNames {
		if name == string(b) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown content kind %q", string(b))
}

var (
	colorPattern  = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	numberPattern = regexp.MustCompile(`^-?[0-9]+(\.[0-9]*)?$`)
)

// Classification is the result of content detection. Exactly one of Text or
// Number is meaningful, selected by Kind.
type Classification struct {
	Kind   Kind
	Raw    string
	Text   string  // KindColor, KindText
	Number float64 // KindNumber
}

// Value returns the parsed value, or nil for unknown content
func (c Classification) Value() any {
	switch c.Kind {
	case KindColor, KindText:
		return c.Text
	case KindNumber:
		return c.Number
	case KindUnknown:
		return nil
	default:
		return nil
	}
}

type classificationJSON struct {
	Type  Kind `json:"type"`
	Value any  `json:"value"`
}

// MarshalJSON encodes as {"type": ..., "value": ...}
func (c Classification) MarshalJSON() ([]byte, error) {
	return json.Marshal(classificationJSON{Type: c.Kind, Value: c.Value()})
}

// Classify detects whether content is a hex color, a number, or free text.
// Color is tested before number so that "#123" is never read as text and plain
// digits are never read as a color.
func Classify(content string) Classification {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return Classification{Kind: KindUnknown, Raw: content}
	}

	if colorPattern.MatchString(trimmed) {
		return Classification{Kind: KindColor, Raw: content, Text: trimmed}
	}

	if numberPattern.MatchString(trimmed) {
		n, err := strconv.ParseFloat(trimmed, 64)
		if err == nil {
			return Classification{Kind: KindNumber, Raw: content, Number: n}
		}
		// Out of float64 range; fall through to text.
	}

	return Classification{Kind: KindText, Raw: content, Text: trimmed}
}
