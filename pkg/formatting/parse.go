package formatting

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrParseFailed is returned when no JSON value for T can be recovered.
var ErrParseFailed = errors.New("failed to parse response")

var fence = regexp.MustCompile("(?s)```(?:json|JSON)?\\s*(.*?)\\s*```")

// Parse decodes content as JSON into T. Model responses often wrap the
// JSON in a markdown fence or surround it with prose, so Parse also tries
// each fenced block and then the outermost {...} span.
func Parse[T any](content string) (T, error) {
	var result T
	content = strings.TrimSpace(content)

	candidates := []string{content}
	for _, m := range fence.FindAllStringSubmatch(content, -1) {
		candidates = append(candidates, m[1])
	}
	if start, end := strings.Index(content, "{"), strings.LastIndex(content, "}"); start >= 0 && end > start {
		candidates = append(candidates, content[start:end+1])
	}

	for _, c := range candidates {
		if err := json.Unmarshal([]byte(c), &result); err == nil {
			return result, nil
		}
		var zero T
		result = zero
	}
	return result, fmt.Errorf("%w: %s", ErrParseFailed, truncate(content, 200))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
