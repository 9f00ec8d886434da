// Package logging provides helpers that keep credentials out of log output:
// header redaction, JSON field masking and form body masking.
package logging

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// Redacted replaces any value that must never reach a log line.
const Redacted = "[REDACTED]"

// SensitiveFields are the body fields this client exchanges that carry secrets.
var SensitiveFields = []string{"password", "access_token"}

// MaskHeader redacts sensitive header values based on header name.
//
// Rules:
// - Password/secret headers: "[REDACTED]" (no partial reveal)
// - Cookie headers: "[REDACTED]" (the session token lives in a cookie)
// - Authorization headers: "****" + last4chars (e.g., "****ab3f")
// - Other headers: returned unchanged
func MaskHeader(name, value string) string {
	lowerName := strings.ToLower(name)

	if strings.Contains(lowerName, "password") ||
		strings.Contains(lowerName, "secret") ||
		lowerName == "cookie" ||
		lowerName == "set-cookie" {
		return Redacted
	}

	if lowerName == "authorization" || lowerName == "x-api-key" {
		if len(value) < 4 {
			return "****"
		}
		return "****" + value[len(value)-4:]
	}

	return value
}

// MaskJSONBody redacts non-allowlisted fields in a JSON body.
//
// If allowlist is nil, returns the body unchanged (everything allowed).
// If allowlist is non-nil, only fields in the allowlist are preserved.
// Returns the original body if it is not valid JSON.
func MaskJSONBody(body []byte, allowlist []string) []byte {
	if allowlist == nil || len(body) == 0 {
		return body
	}

	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return body
	}

	allowed := make(map[string]bool, len(allowlist))
	for _, field := range allowlist {
		allowed[field] = true
	}

	result, err := json.Marshal(maskJSONValue(data, func(key string) bool { return !allowed[key] }))
	if err != nil {
		return body
	}
	return result
}

// RedactJSONFields redacts only the named fields in a JSON body, at any depth.
// Returns the original body if it is not valid JSON.
func RedactJSONFields(body []byte, fields []string) []byte {
	if len(fields) == 0 || len(body) == 0 {
		return body
	}

	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return body
	}

	denied := make(map[string]bool, len(fields))
	for _, field := range fields {
		denied[strings.ToLower(field)] = true
	}

	result, err := json.Marshal(maskJSONValue(data, func(key string) bool { return denied[strings.ToLower(key)] }))
	if err != nil {
		return body
	}
	return result
}

// maskJSONValue walks value and replaces primitive values whose key matches redact.
// Objects and arrays are always descended into.
func maskJSONValue(value any, redact func(key string) bool) any {
	switch v := value.(type) {
	case map[string]any:
		result := make(map[string]any, len(v))
		for key, val := range v {
			switch val.(type) {
			case map[string]any, []any:
				result[key] = maskJSONValue(val, redact)
			default:
				if redact(key) {
					result[key] = Redacted
				} else {
					result[key] = val
				}
			}
		}
		return result
	case []any:
		result := make([]any, len(v))
		for i, item := range v {
			result[i] = maskJSONValue(item, redact)
		}
		return result
	default:
		return value
	}
}

// MaskFormBody redacts the named fields of an application/x-www-form-urlencoded body.
// Bodies that do not parse are returned unchanged.
func MaskFormBody(body []byte, fields []string) []byte {
	if len(body) == 0 || len(fields) == 0 {
		return body
	}

	values, err := url.ParseQuery(string(body))
	if err != nil {
		return body
	}

	for _, field := range fields {
		if _, ok := values[field]; ok {
			values.Set(field, Redacted)
		}
	}
	return []byte(values.Encode())
}

// FormatBinaryData formats binary data for logging.
// Returns a human-readable size indicator.
func FormatBinaryData(data []byte) string {
	return fmt.Sprintf("[BINARY: %d bytes]", len(data))
}
