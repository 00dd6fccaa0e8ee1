package lib

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateOauthState generates the random state nonce used to guard the
// OAuth authorization callback against replay.
func GenerateOauthState() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
