package contracts

import (
	"context"
	"time"
)

type Storage interface {
	UploadFile(ctx context.Context, content []byte, contentType, fileName, bucketName string) (string, error)
	GetObjectUrlWithExpiryTime(ctx context.Context, bucketName, objectName string, expiryTime time.Duration) (string, error)
	DeleteFile(ctx context.Context, bucketName, objectName string) error
}
