package filehandler

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// SupportedImageFormats is a map of file extensions to their format names
var SupportedImageFormats = map[string]string{
	".bmp": "bmp",
}

// DefaultStem is the base name used for a recovered file when the user does
// not supply one.
const DefaultStem = "decoded"

// DetectFileFormat detects the format of a file by extension, falling back
// to content sniffing when the extension is not recognized.
func DetectFileFormat(filePath string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filePath))
	if format, ok := SupportedImageFormats[ext]; ok {
		return format, nil
	}

	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	// Read first 512 bytes to detect content type
	buffer := make([]byte, 512)
	_, err = file.Read(buffer)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	contentType := http.DetectContentType(buffer)
	if strings.Contains(contentType, "image/bmp") {
		return "bmp", nil
	}
	return "", fmt.Errorf("unsupported file format: %s", contentType)
}

// IsImageFile checks if a file is a supported image based on extension
func IsImageFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	_, ok := SupportedImageFormats[ext]
	return ok
}

// GetFileSize returns the size of a file in bytes
func GetFileSize(filePath string) (int64, error) {
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return 0, err
	}
	return fileInfo.Size(), nil
}

// FileExtension returns the suffix of path from the last period onward,
// including the period. Empty when the name has no period.
func FileExtension(path string) string {
	return filepath.Ext(path)
}

// ResolveOutputName builds the filename a recovered secret file is written
// under. The user-supplied base name loses everything from its first period
// on; an empty base, or one whose stem is empty (e.g. just "."), falls back
// to DefaultStem. The decoded extension already carries its leading dot.
func ResolveOutputName(base, decodedExt string) string {
	stem := DefaultStem
	if base != "" {
		stem = base
		if i := strings.Index(base, "."); i >= 0 {
			stem = base[:i]
		}
		if stem == "" {
			stem = DefaultStem
		}
	}
	return stem + decodedExt
}
