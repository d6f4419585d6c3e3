package utils

import (
	"carepulse-service/internal/pkg/constvars"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + uuid.NewString()
}

// GenerateObjectName builds a collision-free storage object name that keeps
// the extension of the uploaded file.
func GenerateObjectName(fileName string) string {
	return uuid.NewString() + strings.ToLower(filepath.Ext(fileName))
}
