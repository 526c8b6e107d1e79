package common

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	jsonFence = "```json"
	fence     = "```"
)

// UnwrapJSONCodeBlock returns the body of the first fenced code block in s.
// A ```json opener is preferred over a bare ``` one. Without an opener or a
// matching closer the input is returned unchanged.
func UnwrapJSONCodeBlock(s string) string {
	opener := jsonFence
	start := strings.Index(s, opener)
	if start == -1 {
		opener = fence
		start = strings.Index(s, opener)
		if start == -1 {
			return s
		}
	}

	bodyStart := start + len(opener)
	end := strings.Index(s[bodyStart:], fence)
	if end == -1 {
		return s
	}
	return s[bodyStart : bodyStart+end]
}

// ParseJSON unwraps a fenced block and unmarshals the first JSON object found into T.
// It handles common LLM quirks like surrounding markdown or a sentence before the object.
func ParseJSON[T any](response string) (T, error) {
	var zero T
	jsonStr := UnwrapJSONCodeBlock(response)

	start := strings.IndexByte(jsonStr, '{')
	end := strings.LastIndexByte(jsonStr, '}')
	if start == -1 {
		return zero, fmt.Errorf("no JSON object found in response (missing '{')")
	}
	if end > start {
		jsonStr = jsonStr[start : end+1]
	}

	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return zero, fmt.Errorf("failed to unmarshal JSON: %w\nData: %s", err, jsonStr)
	}

	return result, nil
}
