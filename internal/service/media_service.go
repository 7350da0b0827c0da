package service

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"proconnect/internal/config"
	"proconnect/internal/models"
	"proconnect/internal/observability"

	"github.com/chai2010/webp"
	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

const (
	DefaultUploadDir          = "uploads"
	DefaultMediaMaxUploadMB   = 5
	DefaultProfilePictureSize = 512
	ProfilePictureWebPQuality = 80
)

// MediaService stores uploaded post media and profile pictures on disk.
// Stored files get opaque UUID names; the original filename only contributes
// its extension.
type MediaService struct {
	uploadDir          string
	maxUploadSizeBytes int64
	profilePictureSize int
}

// NewMediaService returns a new MediaService rooted at the configured upload
// directory.
func NewMediaService(cfg *config.Config) *MediaService {
	uploadDir := DefaultUploadDir
	maxUploadMB := DefaultMediaMaxUploadMB
	pictureSize := DefaultProfilePictureSize

	if cfg != nil {
		if cfg.UploadDir != "" {
			uploadDir = cfg.UploadDir
		}
		if cfg.MediaMaxUploadMB > 0 {
			maxUploadMB = cfg.MediaMaxUploadMB
		}
		if cfg.ProfilePictureSize > 0 {
			pictureSize = cfg.ProfilePictureSize
		}
	}

	return &MediaService{
		uploadDir:          uploadDir,
		maxUploadSizeBytes: int64(maxUploadMB) * 1024 * 1024,
		profilePictureSize: pictureSize,
	}
}

// UploadDir returns the directory stored files are served from.
func (s *MediaService) UploadDir() string {
	return s.uploadDir
}

// StoredMedia describes a file written to the upload directory.
type StoredMedia struct {
	Filename string
	FileType string
}

// SavePostMedia validates and stores an uploaded post attachment as-is.
func (s *MediaService) SavePostMedia(filename, contentType string, content []byte) (*StoredMedia, error) {
	if len(content) == 0 {
		return nil, models.NewValidationError("No file uploaded")
	}
	if int64(len(content)) > s.maxUploadSizeBytes {
		return nil, models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxUploadSizeBytes/(1024*1024)))
	}

	detectedType := http.DetectContentType(content)
	if !isAllowedMediaMIME(detectedType) {
		return nil, models.NewValidationError("Unsupported media type")
	}

	stored := uuid.NewString() + extensionFor(filename, detectedType)
	if err := writeMediaFile(filepath.Join(s.uploadDir, stored), content); err != nil {
		return nil, models.NewInternalError(err)
	}

	observability.MediaUploads.WithLabelValues("post").Inc()
	return &StoredMedia{Filename: stored, FileType: detectedType}, nil
}

// SaveProfilePicture validates an uploaded image, scales it down to the
// configured square bound and stores it as WebP.
func (s *MediaService) SaveProfilePicture(content []byte) (string, error) {
	if len(content) == 0 {
		return "", models.NewValidationError("No file uploaded")
	}
	if int64(len(content)) > s.maxUploadSizeBytes {
		return "", models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxUploadSizeBytes/(1024*1024)))
	}

	detectedType := http.DetectContentType(content)
	if !strings.HasPrefix(detectedType, "image/") {
		return "", models.NewValidationError("Profile picture must be an image")
	}

	decoded, _, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return "", models.NewValidationError("Invalid image file")
	}

	resized := scaleToFit(decoded, s.profilePictureSize, s.profilePictureSize)
	buf := bytes.NewBuffer(nil)
	if err := webp.Encode(buf, resized, &webp.Options{Quality: ProfilePictureWebPQuality}); err != nil {
		return "", models.NewInternalError(err)
	}

	stored := uuid.NewString() + ".webp"
	if err := writeMediaFile(filepath.Join(s.uploadDir, stored), buf.Bytes()); err != nil {
		return "", models.NewInternalError(err)
	}

	observability.MediaUploads.WithLabelValues("profile_picture").Inc()
	return stored, nil
}

// Remove deletes a stored file. The default profile picture and empty names
// are left alone, as are names that escape the upload directory.
func (s *MediaService) Remove(filename string) {
	if filename == "" || filename == "default.png" {
		return
	}
	if filepath.Base(filename) != filename {
		return
	}
	_ = os.Remove(filepath.Join(s.uploadDir, filename))
}

func scaleToFit(src image.Image, maxWidth, maxHeight int) image.Image {
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w <= 0 || h <= 0 || (w <= maxWidth && h <= maxHeight) {
		return src
	}

	scale := float64(maxWidth) / float64(w)
	if s := float64(maxHeight) / float64(h); s < scale {
		scale = s
	}
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

func isAllowedMediaMIME(contentType string) bool {
	switch normalizeMediaType(contentType) {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp", "application/pdf":
		return true
	default:
		return false
	}
}

func normalizeMediaType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}

func extensionFor(filename, contentType string) string {
	if ext := strings.ToLower(filepath.Ext(filename)); ext != "" && len(ext) <= 5 {
		return ext
	}
	switch normalizeMediaType(contentType) {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "application/pdf":
		return ".pdf"
	default:
		return ""
	}
}

func writeMediaFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
