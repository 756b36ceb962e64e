package utils

import (
	"fmt"

	"github.com/sethvargo/go-password/password"
)

// GenerateAPIKey returns a random alphanumeric key suitable for the
// X-Api-Key header. Symbols are excluded so the key pastes cleanly into
// URLs and config files.
func GenerateAPIKey() (string, error) {
	key, err := password.Generate(40, 10, 0, false, true)
	if err != nil {
		return "", fmt.Errorf("generate api key: %w", err)
	}
	return key, nil
}
