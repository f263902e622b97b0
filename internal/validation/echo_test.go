package validation

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEchoRequest_Valid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"single char", `{"message":"a"}`, "a"},
		{"max length", `{"message":"` + strings.Repeat("x", 500) + `"}`, strings.Repeat("x", 500)},
		{"extra fields ignored", `{"message":"hi","other":1}`, "hi"},
		{"BMP multibyte counts once", `{"message":"` + strings.Repeat("é", 500) + `"}`, strings.Repeat("é", 500)},
		{"astral at the limit", `{"message":"` + strings.Repeat("😀", 250) + `"}`, strings.Repeat("😀", 250)},
		{"surrounding whitespace", "  {\"message\":\"hi\"}\n", "hi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, issues := ParseEchoRequest([]byte(tt.body))
			require.Empty(t, issues)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseEchoRequest_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		code     string
		path     []string
		message  string
		received string
	}{
		{"empty string", `{"message":""}`, CodeTooSmall, []string{"message"}, "String must contain at least 1 character(s)", ""},
		{"too long", `{"message":"` + strings.Repeat("x", 501) + `"}`, CodeTooBig, []string{"message"}, "String must contain at most 500 character(s)", ""},
		{"number", `{"message":42}`, CodeInvalidType, []string{"message"}, "Expected string, received number", "number"},
		{"null", `{"message":null}`, CodeInvalidType, []string{"message"}, "Expected string, received null", "null"},
		{"array", `{"message":["a"]}`, CodeInvalidType, []string{"message"}, "Expected string, received array", "array"},
		{"missing", `{}`, CodeInvalidType, []string{"message"}, "Required", "undefined"},
		{"empty body", ``, CodeInvalidType, []string{"message"}, "Required", "undefined"},
		{"root array", `[]`, CodeInvalidType, []string{}, "Expected object, received array", "array"},
		{"root string", `"hi"`, CodeInvalidType, []string{}, "Expected object, received string", "string"},
		{"malformed", `{"message":`, CodeCustom, []string{}, "Malformed JSON body", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, issues := ParseEchoRequest([]byte(tt.body))
			assert.Empty(t, got)
			require.Len(t, issues, 1)
			assert.Equal(t, tt.code, issues[0].Code)
			assert.Equal(t, tt.path, issues[0].Path)
			assert.Equal(t, tt.message, issues[0].Message)
			assert.Equal(t, tt.received, issues[0].Received)
		})
	}
}

func TestParseEchoRequest_AstralCountsTwice(t *testing.T) {
	assert.Equal(t, 2, MessageLength("😀"))
	assert.Equal(t, 1, MessageLength("é"))
	assert.Equal(t, 0, MessageLength(""))

	_, issues := ParseEchoRequest([]byte(`{"message":"` + strings.Repeat("😀", 300) + `"}`))
	require.Len(t, issues, 1)
	assert.Equal(t, CodeTooBig, issues[0].Code)
	require.NotNil(t, issues[0].Maximum)
	assert.Equal(t, MaxMessageLength, *issues[0].Maximum)

	_, issues = ParseEchoRequest([]byte(`{"message":"` + strings.Repeat("😀", 251) + `"}`))
	require.Len(t, issues, 1)
	assert.Equal(t, CodeTooBig, issues[0].Code)
}

func TestParseEchoRequest_LengthIssueShape(t *testing.T) {
	_, issues := ParseEchoRequest([]byte(`{"message":""}`))
	require.Len(t, issues, 1)

	raw, err := json.Marshal(issues[0])
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, "too_small", decoded["code"])
	assert.Equal(t, float64(1), decoded["minimum"])
	assert.Equal(t, "string", decoded["type"])
	assert.Equal(t, true, decoded["inclusive"])
	assert.Equal(t, false, decoded["exact"])
	assert.Equal(t, []interface{}{"message"}, decoded["path"])
	assert.NotContains(t, decoded, "maximum")
}
