package media

import (
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// RecordMediaFields are the record keys that may reference locally stored
// uploads and are cleaned up when their record is deleted or the URL is
// replaced.
var RecordMediaFields = []string{"mediaUrl", "posterUrl", "image", "url", "poster", "demoFile"}

// LocalPath maps a media URL (absolute or path-only) onto the local uploads
// directory. URLs that do not point under /uploads/ are not ours to delete.
func LocalPath(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}

	path := raw
	if u, err := url.Parse(raw); err == nil && u.Path != "" {
		path = u.Path
	}
	if !strings.HasPrefix(path, "/uploads/") {
		return "", false
	}

	name := filepath.Base(path)
	if name == "." || name == "/" || name == "thumb" {
		return "", false
	}
	return filepath.Join(UploadDir, name), true
}

// RemoveByURL deletes the stored file behind a media URL, plus its thumbnail.
// Failures are logged, never surfaced.
func RemoveByURL(raw string) {
	path, ok := LocalPath(raw)
	if !ok {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("failed to remove %s: %v", path, err)
	}
	if err := os.Remove(ThumbPath(filepath.Base(path))); err != nil && !os.IsNotExist(err) {
		log.Printf("failed to remove thumbnail for %s: %v", path, err)
	}
}

// ScheduleRemoval removes files in the background so responses never block on
// disk cleanup.
func ScheduleRemoval(urls ...string) {
	go func() {
		for _, u := range urls {
			RemoveByURL(u)
		}
	}()
}

// ScheduleRecordCleanup removes every locally stored file a deleted record
// references.
func ScheduleRecordCleanup(rec map[string]any) {
	urls := make([]string, 0, len(RecordMediaFields))
	for _, field := range RecordMediaFields {
		if s, ok := rec[field].(string); ok && s != "" {
			urls = append(urls, s)
		}
	}
	if len(urls) > 0 {
		ScheduleRemoval(urls...)
	}
}
