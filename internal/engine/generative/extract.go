package generative

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	jsonFence = "```json"
	bareFence = "```"
)

// extractJSON strips a ```json fence, else a bare ``` fence, else returns the trimmed reply.
// An unterminated fence runs to the end of the reply.
func extractJSON(reply string) string {
	for _, fence := range []string{jsonFence, bareFence} {
		start := strings.Index(reply, fence)
		if start < 0 {
			continue
		}
		body := reply[start+len(fence):]
		if end := strings.Index(body, bareFence); end >= 0 {
			body = body[:end]
		}
		return strings.TrimSpace(body)
	}
	return strings.TrimSpace(reply)
}

// canonicalize parses raw JSON and re-serializes it in compact form.
func canonicalize(raw string) ([]byte, error) {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	out, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("re-encode JSON: %w", err)
	}
	return out, nil
}
