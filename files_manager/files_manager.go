package files_manager

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var declaredFormats = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".bmp":  "image/bmp",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".svg":  "image/svg+xml",
	".pdf":  "application/pdf",
}

// DeclaredFormat maps a file name to the MIME-like format string the
// upload flow would declare for it.
func DeclaredFormat(path string) (string, bool) {
	format, ok := declaredFormats[strings.ToLower(filepath.Ext(path))]
	return format, ok
}

// GetImagePaths walks dir and collects every supported upload, skipping
// directories, dotfiles and AppleDouble leftovers. Returns the paths
// and their total size.
func GetImagePaths(dir string) ([]string, int64, error) {
	var files []string
	var size int64

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		name := info.Name()
		if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "._") {
			return nil
		}
		if _, ok := DeclaredFormat(name); !ok {
			return nil
		}
		files = append(files, path)
		size += info.Size()
		return nil
	})
	if err != nil {
		return nil, size, fmt.Errorf("scanning directory: %w", err)
	}
	return files, size, nil
}

// ResolveInput accepts either a single supported file or a directory
// and returns the files to analyze.
func ResolveInput(inputPath string) ([]string, int64, error) {
	if inputPath == "" {
		return nil, 0, fmt.Errorf("input path required")
	}
	stat, err := os.Stat(inputPath)
	if err != nil {
		return nil, 0, fmt.Errorf("input path: %w", err)
	}
	if stat.IsDir() {
		return GetImagePaths(inputPath)
	}
	if _, ok := DeclaredFormat(inputPath); !ok {
		return nil, 0, fmt.Errorf("unsupported file type: %s", filepath.Ext(inputPath))
	}
	return []string{inputPath}, stat.Size(), nil
}
