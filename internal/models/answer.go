package models

import (
	"encoding/json"
	"strconv"
)

// AnswerKind discriminates the shapes a submitted answer can take.
type AnswerKind int

const (
	AnswerAbsent AnswerKind = iota
	AnswerScalar
	AnswerList
	AnswerMapping
)

// UserAnswer is an untyped submission coerced into one of four shapes.
// Graders match on Kind and treat anything unexpected as incorrect, so a
// malformed submission can never fail a quiz.
//
// Mapping values are themselves UserAnswers: scenario sub-answers carry full
// shapes, while matching and drag_drop read mapping values as scalars.
type UserAnswer struct {
	Kind    AnswerKind
	Scalar  string
	List    []string
	Mapping map[string]UserAnswer
}

func AbsentAnswer() UserAnswer {
	return UserAnswer{Kind: AnswerAbsent}
}

func ScalarAnswer(s string) UserAnswer {
	return UserAnswer{Kind: AnswerScalar, Scalar: s}
}

func ListAnswer(items ...string) UserAnswer {
	return UserAnswer{Kind: AnswerList, List: items}
}

func MappingAnswer(m map[string]UserAnswer) UserAnswer {
	return UserAnswer{Kind: AnswerMapping, Mapping: m}
}

// ScalarMappingAnswer builds a mapping of plain string values, the shape
// matching and drag_drop submissions arrive in.
func ScalarMappingAnswer(m map[string]string) UserAnswer {
	out := make(map[string]UserAnswer, len(m))
	for k, v := range m {
		out[k] = ScalarAnswer(v)
	}
	return MappingAnswer(out)
}

// IsAbsent reports whether no usable answer was submitted.
func (a UserAnswer) IsAbsent() bool {
	return a.Kind == AnswerAbsent
}

// DecodeAnswer coerces an arbitrary JSON-decoded value into a UserAnswer.
// Strings, numbers and booleans become scalars; arrays become lists of
// scalars; objects become mappings. Anything else degrades to absent.
func DecodeAnswer(v any) UserAnswer {
	switch val := v.(type) {
	case nil:
		return AbsentAnswer()
	case string:
		return ScalarAnswer(val)
	case bool:
		return ScalarAnswer(strconv.FormatBool(val))
	case float64:
		return ScalarAnswer(formatNumber(val))
	case json.Number:
		return ScalarAnswer(val.String())
	case []any:
		items := make([]string, 0, len(val))
		for _, item := range val {
			if sub := DecodeAnswer(item); sub.Kind == AnswerScalar {
				items = append(items, sub.Scalar)
			}
		}
		return ListAnswer(items...)
	case map[string]any:
		m := make(map[string]UserAnswer, len(val))
		for k, item := range val {
			m[k] = DecodeAnswer(item)
		}
		return MappingAnswer(m)
	default:
		return AbsentAnswer()
	}
}

// Value returns the natural Go representation, suitable for JSON encoding
// and for echoing the submission back in response records.
func (a UserAnswer) Value() any {
	switch a.Kind {
	case AnswerScalar:
		return a.Scalar
	case AnswerList:
		return a.List
	case AnswerMapping:
		m := make(map[string]any, len(a.Mapping))
		for k, v := range a.Mapping {
			m[k] = v.Value()
		}
		return m
	default:
		return nil
	}
}

func (a UserAnswer) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Value())
}

func (a *UserAnswer) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*a = DecodeAnswer(v)
	return nil
}

func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
