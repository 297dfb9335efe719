package utils

import (
	"fmt"
	"path/filepath"
	"strings"
	"telehealth-service/internal/pkg/constvars"
	"time"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + uuid.New().String()
}

// GenerateObjectKey builds the bucket key for an uploaded document under folder/owner.
func GenerateObjectKey(folder, ownerID, fileName string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return fmt.Sprintf("%s/%s/%s_%s%s", folder, ownerID, now.UTC().Format("20060102_150405"), uuid.New().String()[:8], ext)
}
