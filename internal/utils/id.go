package utils

import "github.com/google/uuid"

// GenerateID returns a new analysis record identifier.
func GenerateID() string {
	return uuid.NewString()
}
