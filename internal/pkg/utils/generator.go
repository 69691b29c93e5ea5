package utils

import (
	"strings"
	"tawjih-service/internal/pkg/constvars"

	"github.com/google/uuid"
)

func GenerateID() string {
	return uuid.NewString()
}

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// GenerateStableID derives the same id from the same name, so a redelivered message maps to one record.
func GenerateStableID(name string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String()
}
