// Package validation checks inbound request bodies and reports structured
// issues in the shape clients of the echo endpoint already consume.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"unicode/utf16"

	"github.com/go-playground/validator/v10"
)

// Issue codes.
const (
	CodeInvalidType = "invalid_type"
	CodeTooSmall    = "too_small"
	CodeTooBig      = "too_big"
	CodeCustom      = "custom"
)

// Echo message bounds, in UTF-16 code units as browsers count string length.
const (
	MinMessageLength = 1
	MaxMessageLength = 500
)

// Issue describes one failed check. Path is the field path from the body
// root and is never nil.
type Issue struct {
	Code      string   `json:"code"`
	Expected  string   `json:"expected,omitempty"`
	Received  string   `json:"received,omitempty"`
	Minimum   *int     `json:"minimum,omitempty"`
	Maximum   *int     `json:"maximum,omitempty"`
	Type      string   `json:"type,omitempty"`
	Inclusive *bool    `json:"inclusive,omitempty"`
	Exact     *bool    `json:"exact,omitempty"`
	Path      []string `json:"path"`
	Message   string   `json:"message"`
}

var validate = validator.New()

var messageRule = fmt.Sprintf("min=%d,max=%d", MinMessageLength, MaxMessageLength)

// ParseEchoRequest validates body against {message: string(1..500)} and
// returns the message, or the list of issues when validation fails. An
// empty body is treated as an empty object.
func ParseEchoRequest(body []byte) (string, []Issue) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		body = []byte("{}")
	}

	var root interface{}
	if err := json.Unmarshal(body, &root); err != nil {
		return "", []Issue{{
			Code:    CodeCustom,
			Path:    []string{},
			Message: "Malformed JSON body",
		}}
	}

	obj, ok := root.(map[string]interface{})
	if !ok {
		return "", []Issue{invalidType("object", root, []string{})}
	}

	raw, ok := obj["message"]
	if !ok {
		return "", []Issue{{
			Code:     CodeInvalidType,
			Expected: "string",
			Received: "undefined",
			Path:     []string{"message"},
			Message:  "Required",
		}}
	}

	message, ok := raw.(string)
	if !ok {
		return "", []Issue{invalidType("string", raw, []string{"message"})}
	}

	if err := validate.Var(MessageLength(message), messageRule); err != nil {
		return "", lengthIssues(err, []string{"message"})
	}
	return message, nil
}

// MessageLength returns the length of s in UTF-16 code units. Characters
// outside the Basic Multilingual Plane count twice.
func MessageLength(s string) int {
	return len(utf16.Encode([]rune(s)))
}

func invalidType(expected string, value interface{}, path []string) Issue {
	received := typeName(value)
	return Issue{
		Code:     CodeInvalidType,
		Expected: expected,
		Received: received,
		Path:     path,
		Message:  fmt.Sprintf("Expected %s, received %s", expected, received),
	}
}

func lengthIssues(err error, path []string) []Issue {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []Issue{{Code: CodeCustom, Path: path, Message: err.Error()}}
	}

	inclusive, exact := true, false
	issues := make([]Issue, 0, len(verrs))
	for _, fe := range verrs {
		bound, _ := strconv.Atoi(fe.Param())
		issue := Issue{
			Type:      "string",
			Inclusive: &inclusive,
			Exact:     &exact,
			Path:      path,
		}
		switch fe.Tag() {
		case "min":
			issue.Code = CodeTooSmall
			issue.Minimum = &bound
			issue.Message = fmt.Sprintf("String must contain at least %d character(s)", bound)
		case "max":
			issue.Code = CodeTooBig
			issue.Maximum = &bound
			issue.Message = fmt.Sprintf("String must contain at most %d character(s)", bound)
		default:
			issue = Issue{Code: CodeCustom, Path: path, Message: fe.Error()}
		}
		issues = append(issues, issue)
	}
	return issues
}

func typeName(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []interface{}:
		return "array"
	case map[string]interface{}:
		return "object"
	default:
		return "unknown"
	}
}
