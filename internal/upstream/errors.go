package upstream

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// APIError carries an upstream failure through the wrapper unchanged.
// Message is the most specific text the response body offered.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.StatusCode, e.Message)
}

// extractMessage digs the human-readable error out of a DRF-style
// response body. Priority: detail, message, non_field_errors, then
// field-keyed validation errors joined per field.
func extractMessage(status int, body []byte) string {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err == nil && len(payload) > 0 {
		if msg := stringField(payload, "detail"); msg != "" {
			return msg
		}
		if msg := stringField(payload, "message"); msg != "" {
			return msg
		}
		if raw, ok := payload["non_field_errors"]; ok {
			if msg := flatten(raw); msg != "" {
				return msg
			}
		}

		// Field-specific validation errors, in stable order.
		fields := make([]string, 0, len(payload))
		for field := range payload {
			fields = append(fields, field)
		}
		sort.Strings(fields)

		var parts []string
		for _, field := range fields {
			if msg := flatten(payload[field]); msg != "" {
				parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, "; ")
		}
	}

	return http.StatusText(status)
}

func stringField(payload map[string]json.RawMessage, key string) string {
	raw, ok := payload[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// flatten renders a string or an array of strings as one message.
func flatten(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.Join(list, " ")
	}
	return ""
}
