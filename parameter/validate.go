package parameter

import (
	"fmt"
	"strings"
)

func Clean(param string) string {
	return strings.ToLower(strings.TrimSpace(param))
}

// Validate checks param against validOptions (case-insensitively) and
// returns the canonical spelling on a match.
func Validate(param string, validOptions []string) (string, error) {
	cleanParam := Clean(param)

	for _, option := range validOptions {
		if strings.EqualFold(cleanParam, option) {
			return option, nil
		}
	}

	validParamStr := strings.Join(validOptions, ", ")
	return "", fmt.Errorf("invalid param %q: Expected one of: %s", cleanParam, validParamStr)
}
