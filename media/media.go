package media

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mixmasters/globals"
	"mixmasters/utils"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
)

// Upload directories, vars so tests can point them at a scratch dir.
var (
	UploadDir = "uploads"
	ThumbDir  = filepath.Join("uploads", "thumb")
)

const (
	// MaxUploadSize is the per-file ceiling.
	MaxUploadSize = 80 << 20

	uploadField = "media"
	thumbWidth  = 300
)

var allowedMimeTypes = map[string]bool{
	"video/mp4":       true,
	"video/webm":      true,
	"video/quicktime": true,
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"image/avif":      true,
}

var allowedExtensions = map[string]bool{
	".mp4":  true,
	".webm": true,
	".mov":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".avif": true,
}

func EnsureDirs() error {
	if err := os.MkdirAll(UploadDir, 0o755); err != nil {
		return err
	}
	return os.MkdirAll(ThumbDir, 0o755)
}

// AllowedUpload rejects a file only when both the declared MIME type and the
// filename extension fall outside the allow-lists.
func AllowedUpload(mimeType, ext string) bool {
	return allowedMimeTypes[mimeType] || allowedExtensions[strings.ToLower(ext)]
}

// NewStoredName builds the on-disk filename: millisecond timestamp plus a
// random UUID, keeping the original extension.
func NewStoredName(ext string) string {
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), ext)
}

func ThumbPath(storedName string) string {
	base := strings.TrimSuffix(storedName, filepath.Ext(storedName))
	return filepath.Join(ThumbDir, base+".jpg")
}

// Upload accepts exactly one file under the "media" form field, stores it
// under a random name and returns the public URL. Images get a best-effort
// thumbnail alongside; the response never waits for it.
func Upload(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize+4096)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "File exceeds the 80MB limit or the form is malformed")
		return
	}

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !AllowedUpload(mimeType, ext) {
		utils.RespondWithError(w, http.StatusBadRequest, "Unsupported file type: "+mimeType)
		return
	}

	storedName := NewStoredName(ext)
	destPath := filepath.Join(UploadDir, storedName)

	out, err := os.Create(destPath)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store file")
		return
	}
	size, err := io.Copy(out, file)
	closeErr := out.Close()
	if err != nil || closeErr != nil {
		os.Remove(destPath)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store file")
		return
	}

	if strings.HasPrefix(mimeType, "image/") {
		go makeThumbnail(destPath, storedName)
	}

	relativePath := "/uploads/" + storedName
	utils.RespondWithJSON(w, http.StatusCreated, map[string]any{
		"fileName": header.Filename,
		"mimeType": mimeType,
		"size":     size,
		"path":     relativePath,
		"url":      publicBaseURL(r) + relativePath,
	})
}

func publicBaseURL(r *http.Request) string {
	if globals.PublicURL != "" {
		return globals.PublicURL
	}
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

func makeThumbnail(srcPath, storedName string) {
	img, err := imaging.Open(srcPath)
	if err != nil {
		// Formats imaging cannot decode (webp, avif) just skip the thumbnail.
		return
	}
	thumb := imaging.Resize(img, thumbWidth, 0, imaging.Lanczos)
	if err := imaging.Save(thumb, ThumbPath(storedName)); err != nil {
		log.Printf("thumbnail for %s failed: %v", storedName, err)
	}
}
