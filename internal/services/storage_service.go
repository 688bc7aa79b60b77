package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nfnt/resize"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"gorent/internal/utils"
	"gorent/pkg/logger"
)

// Uploader is the piece of object storage this service needs; pkg/storage's
// S3 client satisfies it.
type Uploader interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

type StorageService interface {
	// UploadCarImage downscales the photo and stores it, returning the
	// public URL to persist on the car record.
	UploadCarImage(ctx context.Context, file multipart.File, filename string) (string, error)
}

type storageService struct {
	uploader  Uploader
	localPath string
	localURL  string
	logger    *logger.Logger
}

// NewStorageService builds an S3-backed service when an uploader is given,
// falling back to local-disk storage for development.
func NewStorageService(uploader Uploader, localPath, localURL string, log *logger.Logger) StorageService {
	return &storageService{
		uploader:  uploader,
		localPath: localPath,
		localURL:  localURL,
		logger:    log,
	}
}

func (s *storageService) UploadCarImage(ctx context.Context, file multipart.File, filename string) (string, error) {
	img, _, err := image.Decode(file)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	// Downscale wide uploads; height follows the aspect ratio.
	if img.Bounds().Dx() > utils.CarImageWidth {
		img = resize.Resize(utils.CarImageWidth, 0, img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}

	key := fmt.Sprintf("cars/%d_%s.jpg", time.Now().Unix(), sanitizeFilename(filename))

	if s.uploader != nil {
		url, err := s.uploader.Upload(ctx, key, bytes.NewReader(buf.Bytes()), "image/jpeg")
		if err != nil {
			return "", err
		}
		s.logger.WithField("key", key).Debug("Car image uploaded")
		return url, nil
	}

	return s.storeLocal(key, buf.Bytes())
}

func (s *storageService) storeLocal(key string, data []byte) (string, error) {
	path := filepath.Join(s.localPath, key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	return s.localURL + "/" + key, nil
}

func sanitizeFilename(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, base)
	if base == "" {
		base = primitive.NewObjectID().Hex()
	}
	return base
}
