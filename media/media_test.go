package media

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"mixmasters/globals"
)

func useTempDirs(t *testing.T) {
	t.Helper()
	base := t.TempDir()
	oldUpload, oldThumb := UploadDir, ThumbDir
	UploadDir = filepath.Join(base, "uploads")
	ThumbDir = filepath.Join(base, "uploads", "thumb")
	t.Cleanup(func() {
		UploadDir, ThumbDir = oldUpload, oldThumb
	})
	if err := EnsureDirs(); err != nil {
		t.Fatal(err)
	}
}

func TestAllowedUpload(t *testing.T) {
	cases := []struct {
		mime, ext string
		want      bool
	}{
		{"video/mp4", ".mp4", true},
		{"image/png", ".png", true},
		// one of the two checks passing is enough
		{"application/octet-stream", ".mp4", true},
		{"video/webm", ".bin", true},
		{"image/png", ".EXE", true},
		{"application/octet-stream", ".exe", false},
		{"text/html", ".html", false},
		{"", "", false},
	}
	for _, c := range cases {
		if got := AllowedUpload(c.mime, c.ext); got != c.want {
			t.Errorf("AllowedUpload(%q, %q) = %v, want %v", c.mime, c.ext, got, c.want)
		}
	}
}

func TestNewStoredName(t *testing.T) {
	name := NewStoredName(".mp4")
	if !strings.HasSuffix(name, ".mp4") {
		t.Errorf("name = %q, want .mp4 suffix", name)
	}
	pattern := regexp.MustCompile(`^\d+-[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\.mp4$`)
	if !pattern.MatchString(name) {
		t.Errorf("name = %q, want <millis>-<uuid>.mp4", name)
	}
	if name == NewStoredName(".mp4") {
		t.Error("stored names must be unique")
	}
}

func TestLocalPath(t *testing.T) {
	useTempDirs(t)

	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"https://cdn.example.com/banner.jpg", "", false},
		{"https://site.example.com/uploads/a.jpg", filepath.Join(UploadDir, "a.jpg"), true},
		{"/uploads/b.mp4", filepath.Join(UploadDir, "b.mp4"), true},
		{"/other/c.mp4", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, ok := LocalPath(c.in)
		if ok != c.ok || got != c.want {
			t.Errorf("LocalPath(%q) = %q, %v; want %q, %v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestRemoveByURL(t *testing.T) {
	useTempDirs(t)

	stored := "123-abc.jpg"
	path := filepath.Join(UploadDir, stored)
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(ThumbPath(stored), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	RemoveByURL("/uploads/" + stored)

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("original not removed")
	}
	if _, err := os.Stat(ThumbPath(stored)); !os.IsNotExist(err) {
		t.Error("thumbnail not removed")
	}

	// foreign URLs and already-missing files are silently ignored
	RemoveByURL("https://cdn.example.com/keep.jpg")
	RemoveByURL("/uploads/" + stored)
}

func multipartBody(t *testing.T, field, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, mw.FormDataContentType()
}

func TestUploadStoresFile(t *testing.T) {
	useTempDirs(t)
	globals.PublicURL = ""

	body, contentType := multipartBody(t, "media", "demo set.mp4", "video/mp4", []byte("fake video bytes"))
	r := httptest.NewRequest(http.MethodPost, "http://example.com/api/upload", body)
	r.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	Upload(w, r, nil)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		FileName string `json:"fileName"`
		MimeType string `json:"mimeType"`
		Size     int64  `json:"size"`
		Path     string `json:"path"`
		URL      string `json:"url"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.FileName != "demo set.mp4" || resp.MimeType != "video/mp4" {
		t.Errorf("resp = %+v", resp)
	}
	if resp.Size != int64(len("fake video bytes")) {
		t.Errorf("size = %d", resp.Size)
	}
	if !strings.HasPrefix(resp.Path, "/uploads/") || !strings.HasSuffix(resp.Path, ".mp4") {
		t.Errorf("path = %q", resp.Path)
	}
	if resp.URL != "http://example.com"+resp.Path {
		t.Errorf("url = %q", resp.URL)
	}

	stored := filepath.Join(UploadDir, filepath.Base(resp.Path))
	data, err := os.ReadFile(stored)
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if string(data) != "fake video bytes" {
		t.Error("stored content mismatch")
	}
}

func TestUploadUsesConfiguredPublicURL(t *testing.T) {
	useTempDirs(t)
	globals.PublicURL = "https://mixmasters.club"
	defer func() { globals.PublicURL = "" }()

	body, contentType := multipartBody(t, "media", "a.png", "image/png", []byte{0x89, 'P', 'N', 'G'})
	r := httptest.NewRequest(http.MethodPost, "http://internal:4000/api/upload", body)
	r.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	Upload(w, r, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d", w.Code)
	}

	var resp map[string]any
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	url, _ := resp["url"].(string)
	if !strings.HasPrefix(url, "https://mixmasters.club/uploads/") {
		t.Errorf("url = %q", url)
	}
}

func TestUploadRejectsUnsupportedType(t *testing.T) {
	useTempDirs(t)

	body, contentType := multipartBody(t, "media", "payload.exe", "application/octet-stream", []byte("MZ"))
	r := httptest.NewRequest(http.MethodPost, "http://example.com/api/upload", body)
	r.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	Upload(w, r, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}

	entries, err := os.ReadDir(UploadDir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if !e.IsDir() {
			t.Errorf("rejected upload left file %s behind", e.Name())
		}
	}
}

func TestUploadRequiresFile(t *testing.T) {
	useTempDirs(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("caption", "no file here")
	mw.Close()

	r := httptest.NewRequest(http.MethodPost, "http://example.com/api/upload", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()

	Upload(w, r, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
