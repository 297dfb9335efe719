package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"telehealth-service/internal/app/config"
	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/pkg/constvars"
	"telehealth-service/internal/pkg/exceptions"
	"time"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

type minioStorage struct {
	MinioClient   *minio.Client
	Log           *zap.Logger
	bucketName    string
	publicBaseURL string
}

func NewMinioStorage(minioClient *minio.Client, logger *zap.Logger, storageConfig config.AppStorage) contracts.StorageService {
	return &minioStorage{
		MinioClient:   minioClient,
		Log:           logger,
		bucketName:    storageConfig.BucketName,
		publicBaseURL: strings.TrimRight(storageConfig.PublicBaseUrl, "/"),
	}
}

// Upload puts the object and returns its public URL, which is what callers persist.
func (m *minioStorage) Upload(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	m.Log.Info("minioStorage.Upload called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBucketKey, m.bucketName),
		zap.String(constvars.LoggingObjectKey, objectKey),
	)

	_, err := m.MinioClient.PutObject(ctx, m.bucketName, objectKey, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", exceptions.ErrMinioCreateObject(err, m.bucketName)
	}
	return m.GetPublicURL(objectKey), nil
}

func (m *minioStorage) Delete(ctx context.Context, objectKey string) error {
	err := m.MinioClient.RemoveObject(ctx, m.bucketName, objectKey, minio.RemoveObjectOptions{})
	if err != nil {
		return exceptions.ErrMinioDeleteObject(err, m.bucketName)
	}
	return nil
}

func (m *minioStorage) GetSignedURL(ctx context.Context, objectKey string, ttl time.Duration, downloadName string) (string, error) {
	params := url.Values{}
	if downloadName != "" {
		params.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", downloadName))
	}

	signed, err := m.MinioClient.PresignedGetObject(ctx, m.bucketName, objectKey, ttl, params)
	if err != nil {
		return "", exceptions.ErrMinioFindObjectPresignedURL(err, m.bucketName)
	}
	return signed.String(), nil
}

func (m *minioStorage) GetPublicURL(objectKey string) string {
	return fmt.Sprintf("%s%s%s/%s", m.publicBaseURL, constvars.StorageObjectPublicMarker, m.bucketName, strings.TrimLeft(objectKey, "/"))
}

func (m *minioStorage) StoragePath(storedURL string) (string, bool) {
	return ExtractStoragePath(storedURL, m.bucketName)
}

// ExtractStoragePath finds the object key after a public or signed bucket
// marker. The input is returned unchanged with false when neither marker is present.
func ExtractStoragePath(storedURL, bucketName string) (string, bool) {
	for _, marker := range []string{constvars.StorageObjectPublicMarker, constvars.StorageObjectSignMarker} {
		prefix := marker + bucketName + "/"
		idx := strings.Index(storedURL, prefix)
		if idx < 0 {
			continue
		}
		key := storedURL[idx+len(prefix):]
		if q := strings.IndexAny(key, "?#"); q >= 0 {
			key = key[:q]
		}
		if unescaped, err := url.PathUnescape(key); err == nil {
			key = unescaped
		}
		if key == "" {
			return storedURL, false
		}
		return key, true
	}
	return storedURL, false
}
