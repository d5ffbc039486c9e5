package mapping

import (
	"encoding/json"
	"fmt"
)

// AutoResult pairs a classification with the mapping for its kind.
// Exactly one of Text, Color, Number is set.
type AutoResult struct {
	Detected Classification
	Text     *TextMapping
	Color    *ColorMapping
	Number   *NumberMapping
}

// Mapping returns whichever mapping is set
func (r AutoResult) Mapping() any {
	switch r.Detected.Kind {
	case KindText:
		return r.Text
	case KindColor:
		return r.Color
	case KindNumber:
		return r.Number
	case KindUnknown:
		return nil
	default:
		return nil
	}
}

// MarshalJSON encodes as {"detected": ..., "mapping": ...}
func (r AutoResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Detected Classification `json:"detected"`
		Mapping  any            `json:"mapping"`
	}{
		Detected: r.Detected,
		Mapping:  r.Mapping(),
	})
}

// MapAuto classifies content and runs the matching mapper. Unknown content is
// an error; no default kind is substituted.
func MapAuto(content string, opts TextOptions) (AutoResult, error) {
	detected := Classify(content)
	result := AutoResult{Detected: detected}

	switch detected.Kind {
	case KindText:
		m := MapText(detected.Text, opts)
		result.Text = &m
	case KindColor:
		m, err := MapColor(detected.Text)
		if err != nil {
			return result, fmt.Errorf("map detected color: %w", err)
		}
		result.Color = &m
	case KindNumber:
		m, err := MapNumber(detected.Number)
		if err != nil {
			return result, fmt.Errorf("map detected number: %w", err)
		}
		result.Number = &m
	case KindUnknown:
		return result, newInputError("auto", content, ErrUnrecognizedContent)
	default:
		return result, newInputError("auto", content, fmt.Errorf("%w: kind %s", ErrUnrecognizedContent, detected.Kind))
	}

	return result, nil
}
