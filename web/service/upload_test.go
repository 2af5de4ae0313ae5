package service

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowedFile(t *testing.T) {
	service := UploadService{}

	tests := []struct {
		filename string
		expected bool
	}{
		{"photo.png", true},
		{"photo.PNG", true},
		{"photo.jpg", true},
		{"photo.jpeg", true},
		{"animation.gif", true},
		{"payload.exe", false},
		{"archive.tar.gz", false},
		{"noextension", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := service.AllowedFile(tt.filename); got != tt.expected {
				t.Errorf("AllowedFile(%q) = %v, expected %v", tt.filename, got, tt.expected)
			}
		})
	}
}

func TestSecureFilename(t *testing.T) {
	service := UploadService{}

	tests := []struct {
		filename string
		expected string
	}{
		{"photo.png", "photo.png"},
		{"my photo.png", "my_photo.png"},
		{"../../etc/passwd", "passwd"},
		{"..\\..\\boot.ini", "boot.ini"},
		{"über.png", "ber.png"},
		{"...", ""},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := service.SecureFilename(tt.filename); got != tt.expected {
				t.Errorf("SecureFilename(%q) = %q, expected %q", tt.filename, got, tt.expected)
			}
		})
	}
}

func uploadFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	part.Write(content)
	writer.Close()

	req := httptest.NewRequest("POST", "/add_blog", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	_, header, err := req.FormFile("image")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	return header
}

func TestSaveImageAllowed(t *testing.T) {
	uploadDir := t.TempDir()
	t.Setenv("GOBLOG_UPLOAD_FOLDER", uploadDir)

	service := UploadService{}
	header := uploadFileHeader(t, "photo.png", []byte("fake png bytes"))

	filename, err := service.SaveImage(header)
	assert.NoError(t, err)
	assert.Equal(t, "photo.png", filename)

	data, err := os.ReadFile(filepath.Join(uploadDir, "photo.png"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("fake png bytes"), data)
}

func TestSaveImageSilentDrop(t *testing.T) {
	uploadDir := t.TempDir()
	t.Setenv("GOBLOG_UPLOAD_FOLDER", uploadDir)

	service := UploadService{}
	header := uploadFileHeader(t, "payload.exe", []byte("mz"))

	// disallowed extension is dropped, not an error
	filename, err := service.SaveImage(header)
	assert.NoError(t, err)
	assert.Empty(t, filename)

	entries, err := os.ReadDir(uploadDir)
	assert.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSaveImageDisabled(t *testing.T) {
	uploadDir := t.TempDir()
	t.Setenv("GOBLOG_UPLOAD_FOLDER", uploadDir)
	t.Setenv("GOBLOG_UPLOADS", "false")

	service := UploadService{}
	header := uploadFileHeader(t, "photo.png", []byte("fake png bytes"))

	filename, err := service.SaveImage(header)
	assert.NoError(t, err)
	assert.Empty(t, filename)
}
