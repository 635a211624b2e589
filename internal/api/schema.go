package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// failureSchemaJSON describes the structured error body the backend sends
// alongside a non-success status.
const failureSchemaJSON = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["message"],
	"properties": {
		"message": {"type": "string"},
		"severity": {"enum": ["error", "warning", "success", "fatal"]}
	}
}`

var failureSchema = jsonschema.MustCompileString("failure.json", failureSchemaJSON)

// ErrorResponse is the plain {"error": "..."} body some backends send instead
// of a structured failure.
type ErrorResponse struct {
	Error string `json:"error"`
}

// decodeFailure turns a non-success response into a Failure. A body that
// matches the failure schema is taken verbatim.
func decodeFailure(status int, body []byte) *Failure {
	var doc any
	if err := json.Unmarshal(body, &doc); err == nil {
		if failureSchema.Validate(doc) == nil {
			var f Failure
			if err := json.Unmarshal(body, &f); err == nil {
				return ServerFailure(status, f.Message, f.Severity)
			}
		}
		var errResp ErrorResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
			return ServerFailure(status, errResp.Error, SeverityError)
		}
	}

	text := strings.TrimSpace(string(body))
	if text == "" {
		text = http.StatusText(status)
	}
	text = truncateText(text, maxFailureText)
	return ServerFailure(status, fmt.Sprintf("server error (%d): %s", status, text), SeverityError)
}

// truncateText cuts text to at most n bytes on a rune boundary.
func truncateText(text string, n int) string {
	if len(text) <= n {
		return text
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "..."
}
