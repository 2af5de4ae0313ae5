package service

import (
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"goblog/config"
	"goblog/logger"
	"goblog/util/common"
)

// allowedExtensions is the fixed allow-list gating upload acceptance,
// matched case-insensitively on the file suffix.
var allowedExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
}

type UploadService struct{}

// Enabled reports whether the optional image capability is on.
func (s *UploadService) Enabled() bool {
	return config.IsUploadsEnabled()
}

// AllowedFile reports whether the filename carries an allow-listed
// extension.
func (s *UploadService) AllowedFile(filename string) bool {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return false
	}
	return allowedExtensions[strings.ToLower(filename[idx+1:])]
}

// SecureFilename strips any path components and reduces the name to a safe
// ASCII subset. Returns "" when nothing safe remains.
func (s *UploadService) SecureFilename(filename string) string {
	filename = filepath.Base(filepath.ToSlash(filename))

	var b strings.Builder
	for _, r := range filename {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	name := strings.Trim(b.String(), "._")
	return name
}

// SaveImage persists an uploaded image to the configured upload directory
// and returns the stored filename. A missing file or a disallowed extension
// yields "" with no error: the post is still created, just without an image
// reference. Identically-named concurrent uploads race; last write wins.
func (s *UploadService) SaveImage(file *multipart.FileHeader) (string, error) {
	if !config.IsUploadsEnabled() || file == nil || file.Filename == "" {
		return "", nil
	}
	if !s.AllowedFile(file.Filename) {
		logger.Debugf("upload of %q dropped: extension not allowed", file.Filename)
		return "", nil
	}

	filename := s.SecureFilename(file.Filename)
	if filename == "" {
		return "", nil
	}

	uploadDir := config.GetUploadFolderPath()
	if err := os.MkdirAll(uploadDir, fs.ModePerm); err != nil {
		return "", common.NewErrorf("create upload dir %s: %v", uploadDir, err)
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(uploadDir, filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return filename, nil
}
