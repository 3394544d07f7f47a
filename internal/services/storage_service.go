// internal/services/storage_service.go
package services

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/artstylelab/backend/internal/config"
	"github.com/artstylelab/backend/internal/i18n"
)

// StorageService persists uploaded files. With AWS credentials configured it
// writes to S3; otherwise files land on the local disk under the uploads
// directory and are served statically.
type StorageService struct {
	config   *config.Config
	s3Client *s3.S3
}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	svc := &StorageService{config: cfg}

	if cfg.AWS.AccessKeyID != "" && cfg.AWS.SecretAccessKey != "" {
		sess, err := session.NewSession(&aws.Config{
			Region: aws.String(cfg.AWS.Region),
			Credentials: credentials.NewStaticCredentials(
				cfg.AWS.AccessKeyID,
				cfg.AWS.SecretAccessKey,
				"",
			),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create AWS session: %w", err)
		}
		svc.s3Client = s3.New(sess)
		logrus.WithField("bucket", cfg.AWS.S3Bucket).Info("Storage backed by S3")
	} else {
		if err := os.MkdirAll(cfg.Uploads.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create uploads dir: %w", err)
		}
		logrus.WithField("dir", cfg.Uploads.Dir).Info("Storage backed by local disk")
	}

	return svc, nil
}

// SaveFile stores the data under a generated name derived from the original
// filename's extension and returns the public URL.
func (s *StorageService) SaveFile(data []byte, originalName string) (string, error) {
	return s.SaveNamed(data, s.generateFileName(originalName))
}

// SaveNamed stores the data under the exact filename given and returns the
// public URL.
func (s *StorageService) SaveNamed(data []byte, filename string) (string, error) {
	if max := s.config.Uploads.MaxSizeMB * 1024 * 1024; max > 0 && int64(len(data)) > max {
		return "", badRequestError(i18n.KeyArtworkUploadInput)
	}

	if s.s3Client != nil {
		return s.saveToS3(data, filename)
	}
	return s.saveToDisk(data, filename)
}

// DeleteByURL removes a previously stored file given its public URL. URLs
// outside this service's namespace are ignored.
func (s *StorageService) DeleteByURL(url string) error {
	if url == "" {
		return nil
	}

	if s.s3Client != nil {
		key, ok := s.s3Key(url)
		if !ok {
			return nil
		}
		_, err := s.s3Client.DeleteObject(&s3.DeleteObjectInput{
			Bucket: aws.String(s.config.AWS.S3Bucket),
			Key:    aws.String(key),
		})
		return err
	}

	prefix := s.config.Uploads.BaseURL + "/"
	if !strings.HasPrefix(url, prefix) {
		return nil
	}
	filename := filepath.Base(strings.TrimPrefix(url, prefix))
	path := filepath.Join(s.config.Uploads.Dir, filename)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *StorageService) saveToS3(data []byte, filename string) (string, error) {
	key := "uploads/" + filename
	_, err := s.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(s.config.AWS.S3Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentTypeFor(filename)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	if s.config.AWS.CloudFrontURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimSuffix(s.config.AWS.CloudFrontURL, "/"), key), nil
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.config.AWS.S3Bucket, s.config.AWS.Region, key), nil
}

func (s *StorageService) saveToDisk(data []byte, filename string) (string, error) {
	path := filepath.Join(s.config.Uploads.Dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return s.config.Uploads.BaseURL + "/" + filename, nil
}

func (s *StorageService) s3Key(url string) (string, bool) {
	idx := strings.Index(url, "/uploads/")
	if idx < 0 {
		return "", false
	}
	return url[idx+1:], true
}

func (s *StorageService) generateFileName(originalName string) string {
	ext := filepath.Ext(originalName)
	if ext == "" {
		ext = ".jpg"
	}
	id := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return fmt.Sprintf("%s_%s%s", time.Now().Format("20060102150405"), id, ext)
}

func contentTypeFor(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
