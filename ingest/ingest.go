// Package ingest normalizes uploaded files into text or base64 image
// content ready for prompting. Type detection is by file extension; the
// supported set mirrors the upload surface: PDF, DOCX, XLSX, CSV, JSON,
// Markdown, PNG and JPEG.
package ingest

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileData is one normalized uploaded file. Content holds UTF-8 text for
// documents and base64-encoded bytes for images. Instances are never
// mutated after creation.
type FileData struct {
	Name     string `json:"name"`
	MIMEType string `json:"mimeType"`
	Content  string `json:"content"`
	IsImage  bool   `json:"isImage"`
}

// UnsupportedTypeError is returned for extensions outside the supported set.
type UnsupportedTypeError struct {
	Extension string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported file type: %s", e.Extension)
}

// mimeTypes maps supported extensions to MIME types.
var mimeTypes = map[string]string{
	".pdf":  "application/pdf",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".csv":  "text/csv",
	".json": "application/json",
	".md":   "text/markdown",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
}

// SupportedExtensions lists the accepted file extensions.
var SupportedExtensions = []string{
	".pdf", ".docx", ".xlsx", ".csv", ".json", ".md", ".png", ".jpg", ".jpeg",
}

// IsSupported reports whether a path's extension is in the supported set.
func IsSupported(path string) bool {
	_, ok := mimeTypes[strings.ToLower(filepath.Ext(path))]
	return ok
}

// ParseFile reads one file and produces its normalized FileData.
func ParseFile(path string) (FileData, error) {
	ext := strings.ToLower(filepath.Ext(path))
	mimeType, ok := mimeTypes[ext]
	if !ok {
		return FileData{}, &UnsupportedTypeError{Extension: ext}
	}

	name := filepath.Base(path)

	var content string
	var isImage bool
	var err error

	switch ext {
	case ".pdf":
		content, err = extractPDF(path)
	case ".docx":
		content, err = extractDocx(path)
	case ".xlsx":
		content, err = extractXLSX(path)
	case ".csv", ".json", ".md":
		content, err = readText(path)
	case ".png", ".jpg", ".jpeg":
		content, err = readBase64(path)
		isImage = true
	}
	if err != nil {
		return FileData{}, fmt.Errorf("%s: %w", name, err)
	}

	if content == "" {
		return FileData{}, fmt.Errorf("%s: no content extracted", name)
	}

	return FileData{
		Name:     name,
		MIMEType: mimeType,
		Content:  content,
		IsImage:  isImage,
	}, nil
}

// ParseAll parses a batch of files concurrently. The batch is atomic: any
// failure returns an error and no partial result, so the caller's prior
// file state can stay untouched.
func ParseAll(ctx context.Context, paths []string) ([]FileData, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no files to parse")
	}

	results := make([]FileData, len(paths))
	errs := make([]error, len(paths))

	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return
			}
			results[i], errs[i] = ParseFile(path)
		}(i, path)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// readText reads a file as UTF-8 text.
func readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// readBase64 reads a file and encodes its bytes as base64.
func readBase64(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", fmt.Errorf("file is empty")
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
