package file

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/employee-records-api/internal/domain"
	"github.com/employee-records-api/internal/pkg/id"
)

type UploadInput struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
	EmployeeID  string
	Kind        string // domain.FileKindPicture | domain.FileKindResume
}

type Service interface {
	Upload(ctx context.Context, input UploadInput) (*domain.File, error)
	Download(ctx context.Context, fileID string) (io.ReadCloser, *domain.File, error)
	PresignURL(ctx context.Context, fileID string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, fileID string) error
}

type objectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

type fileStore interface {
	Put(ctx context.Context, f *domain.File) error
	Get(ctx context.Context, fileID string) (*domain.File, error)
	SoftDelete(ctx context.Context, fileID string) error
}

type service struct {
	objects  objectStore
	fileRepo fileStore
}

func NewService(objects objectStore, fileRepo fileStore) Service {
	return &service{objects: objects, fileRepo: fileRepo}
}

func (s *service) Upload(ctx context.Context, input UploadInput) (*domain.File, error) {
	if input.Kind != domain.FileKindPicture && input.Kind != domain.FileKindResume {
		return nil, fmt.Errorf("unknown file kind %q: %w", input.Kind, domain.ErrBadRequest)
	}
	safeName := sanitizeFilename(input.Filename)
	key := fmt.Sprintf("employees/%s/%s/%s", input.EmployeeID, input.Kind, safeName)
	contentType := input.ContentType
	if contentType == "" {
		contentType = contentTypeFromName(safeName)
	}
	hasher := sha256.New()
	tee := io.TeeReader(input.Reader, hasher)
	url, err := s.objects.Upload(ctx, key, tee, contentType)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	f := &domain.File{
		FileID:     id.New(),
		EmployeeID: input.EmployeeID,
		Kind:       input.Kind,
		Object:     key,
		Size:       input.Size,
		Type:       contentType,
		Name:       safeName,
		Hash:       hex.EncodeToString(hasher.Sum(nil)),
		URL:        url,
		Enable:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.fileRepo.Put(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *service) Download(ctx context.Context, fileID string) (io.ReadCloser, *domain.File, error) {
	f, err := s.fileRepo.Get(ctx, fileID)
	if err != nil {
		return nil, nil, err
	}
	if !f.Enable {
		return nil, nil, fmt.Errorf("file not found: %w", domain.ErrNotFound)
	}
	rc, err := s.objects.Download(ctx, f.Object)
	if err != nil {
		return nil, nil, err
	}
	return rc, f, nil
}

// PresignURL returns a time-limited download URL clients can use without
// routing the bytes through the API.
func (s *service) PresignURL(ctx context.Context, fileID string, ttl time.Duration) (string, error) {
	f, err := s.fileRepo.Get(ctx, fileID)
	if err != nil {
		return "", err
	}
	if !f.Enable {
		return "", fmt.Errorf("file not found: %w", domain.ErrNotFound)
	}
	return s.objects.PresignedURL(ctx, f.Object, ttl)
}

func (s *service) Delete(ctx context.Context, fileID string) error {
	f, err := s.fileRepo.Get(ctx, fileID)
	if err != nil {
		return err
	}
	if !f.Enable {
		return fmt.Errorf("file not found: %w", domain.ErrNotFound)
	}
	if err := s.objects.Delete(ctx, f.Object); err != nil {
		return err
	}
	return s.fileRepo.SoftDelete(ctx, fileID)
}

func contentTypeFromName(filename string) string {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".jpg") || strings.HasSuffix(lower, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(lower, ".png"):
		return "image/png"
	case strings.HasSuffix(lower, ".pdf"):
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

// sanitizeFilename strips directory components and keeps only safe characters
// (alphanumeric, dot, dash, underscore) to prevent path traversal in S3 keys.
func sanitizeFilename(name string) string {
	name = path.Base(name) // drop any leading path components / traversal sequences
	var b strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r == '.' || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	if result := b.String(); result != "" && result != "." {
		return result
	}
	return "_"
}
