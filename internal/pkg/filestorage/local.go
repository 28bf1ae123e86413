package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/witlog/witlog/internal/pkg/logger"
)

// ImageStorage saves uploaded post images on the local filesystem.
type ImageStorage interface {
	// SaveImage stores an uploaded image and returns the path it is
	// served under.
	SaveImage(fileHeader *multipart.FileHeader) (string, error)

	// DeleteImage removes a stored image. Deleting a missing image is
	// not an error.
	DeleteImage(imagePath string) error
}

// Extensions accepted for post images.
var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath string // root directory where files are stored
	baseURL  string // URL prefix the stored files are served under
}

// NewLocalStorage creates a new LocalStorage instance.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}

	return &LocalStorage{
		basePath: basePath,
		baseURL:  baseURL,
	}, nil
}

// SaveImage stores an uploaded image under a collision-free name and
// returns the path it is served under. A nil header means no image was
// submitted and yields an empty path.
func (ls *LocalStorage) SaveImage(fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader == nil {
		return "", nil
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedImageExtensions[ext] {
		return "", fmt.Errorf("unsupported image type %q", ext)
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	uniqueFilename := uuid.New().String() + ext
	dstPath := filepath.Join(ls.basePath, uniqueFilename)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	accessiblePath := strings.TrimRight(ls.baseURL, "/") + "/" + uniqueFilename
	logger.Info().Str("filename", fileHeader.Filename).Str("saved_as", uniqueFilename).Msg("Image saved")
	return accessiblePath, nil
}

// DeleteImage removes a stored image by its served path. Missing files
// are treated as already deleted.
func (ls *LocalStorage) DeleteImage(imagePath string) error {
	if imagePath == "" {
		return nil
	}

	filename := filepath.Base(imagePath)
	if filename == "" || filename == "." || filename == "/" {
		return fmt.Errorf("invalid image path: %s", imagePath)
	}

	physicalPath := filepath.Join(ls.basePath, filename)

	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete image")
		return fmt.Errorf("failed to delete image: %w", err)
	}

	return nil
}
