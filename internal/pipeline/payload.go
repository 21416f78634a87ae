package pipeline

import (
	"encoding/json"
	"math"
	"strconv"
)

// Payload is the decoded "data" object of a request body. Numbers arrive as
// float64 from encoding/json and structpb, or as json.Number when the
// decoder was asked to keep them.
type Payload map[string]any

// Has reports whether field is present. A null value or an empty string
// counts as missing; numeric zero and false are present.
func (p Payload) Has(field string) bool {
	v, ok := p[field]
	if !ok || v == nil {
		return false
	}
	if s, isString := v.(string); isString && s == "" {
		return false
	}
	return true
}

func (p Payload) String(field string) string {
	return Text(p[field])
}

func (p Payload) Integer(field string) (int, bool) {
	return Integer(p[field])
}

func (p Payload) List(field string) ([]any, bool) {
	list, ok := p[field].([]any)
	return list, ok
}

// Object converts a nested JSON object to a Payload.
func Object(v any) (Payload, bool) {
	switch m := v.(type) {
	case Payload:
		return m, true
	case map[string]any:
		return Payload(m), true
	default:
		return nil, false
	}
}

// Scalar reports whether v is a string, number or bool.
func Scalar(v any) bool {
	switch v.(type) {
	case string, float64, json.Number, int, int64, bool:
		return true
	default:
		return false
	}
}

// Text renders a scalar the way a client would have written it, so that the
// number 7 and the string "7" compare equal as identifiers. Objects and lists
// render as "".
func Text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// Integer returns v as an int when it is a whole number.
func Integer(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) || t != math.Trunc(t) {
			return 0, false
		}
		if t >= math.MaxInt64 || t < math.MinInt64 {
			return 0, false
		}
		return int(t), true
	case json.Number:
		i, err := t.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	default:
		return 0, false
	}
}
