// Package stepcontent is the single canonical encode/decode pair for step
// ledger content. Structured inputs (belief nodes, metric rows, flow steps)
// are serialized as JSON inside the step's string content; freeform answers
// are stored as-is. Decode never fails: anything that does not parse as JSON
// is treated as raw text, which is what preserves early freeform input when a
// toolkit later switches to structured capture.
package stepcontent

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

type Kind int

const (
	KindRaw Kind = iota
	KindStructured
)

// Value is the tagged variant for one step's content.
type Value struct {
	Kind       Kind
	Raw        string      // original string, always set
	Structured interface{} // decoded JSON, set only when Kind == KindStructured
}

// Decode interprets a ledger string. Only content that looks like a JSON
// object or array is treated as structured; scalars stay raw text so a user
// typing "42" is not mistaken for structured input.
func Decode(raw string) Value {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		var decoded interface{}
		if err := json.Unmarshal([]byte(trimmed), &decoded); err == nil {
			return Value{Kind: KindStructured, Raw: raw, Structured: decoded}
		}
	}
	return Value{Kind: KindRaw, Raw: raw}
}

// Encode serializes a structured value for storage through the step ledger.
func Encode(v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode step content: %w", err)
	}
	return string(data), nil
}

// IsEmpty reports whether the value carries no usable content.
func (v Value) IsEmpty() bool {
	return strings.TrimSpace(v.Flatten()) == ""
}

// Flatten renders the value as human-readable text. Raw text passes through
// unchanged; structured content is re-flattened to label/value lines so the
// generation endpoint never receives raw JSON as context.
func (v Value) Flatten() string {
	if v.Kind == KindRaw {
		return v.Raw
	}
	return flatten(v.Structured)
}

func flatten(node interface{}) string {
	switch val := node.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if val {
			return "yes"
		}
		return "no"
	case float64:
		return trimFloat(val)
	case []interface{}:
		lines := make([]string, 0, len(val))
		for _, item := range val {
			text := flatten(item)
			if strings.TrimSpace(text) == "" {
				continue
			}
			lines = append(lines, "- "+text)
		}
		return strings.Join(lines, "\n")
	case map[string]interface{}:
		return flattenObject(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// preferredKeys are rendered first so the most meaningful field leads the
// line regardless of JSON key order.
var preferredKeys = []string{"label", "name", "title", "text", "content", "value", "description"}

func flattenObject(obj map[string]interface{}) string {
	parts := make([]string, 0, len(obj))
	seen := make(map[string]bool, len(obj))

	for _, key := range preferredKeys {
		if raw, ok := obj[key]; ok {
			seen[key] = true
			if text := strings.TrimSpace(flatten(raw)); text != "" {
				parts = append(parts, text)
			}
		}
	}

	rest := make([]string, 0, len(obj))
	for key := range obj {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)

	for _, key := range rest {
		if text := strings.TrimSpace(flatten(obj[key])); text != "" {
			parts = append(parts, key+": "+text)
		}
	}

	return strings.Join(parts, ", ")
}

func trimFloat(val float64) string {
	if val == float64(int64(val)) {
		return fmt.Sprintf("%d", int64(val))
	}
	return fmt.Sprintf("%g", val)
}
