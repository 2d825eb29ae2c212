package internal

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// Extensions recognized as playable video.
var videoExtensions = []string{
	".mp4", ".mkv", ".avi", ".mov", ".wmv", ".flv", ".webm", ".m4v",
}

func IsVideoFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, videoExt := range videoExtensions {
		if ext == videoExt {
			return true
		}
	}
	return false
}

// FindLargestVideo walks dir recursively and returns the biggest video file
// in it. Multi-file torrents ship samples and extras next to the feature, so
// largest wins.
func FindLargestVideo(dir string) (string, int64, error) {
	var bestPath string
	var bestSize int64

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// A partially written tree is expected mid-download.
			return nil
		}
		if d.IsDir() || !IsVideoFile(path) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.Size() > bestSize {
			bestPath = path
			bestSize = info.Size()
		}
		return nil
	})
	if err != nil {
		return "", 0, err
	}
	if bestPath == "" {
		return "", 0, fmt.Errorf("no video file found in %s", dir)
	}
	return bestPath, bestSize, nil
}

// FormatSize converts bytes to human readable string with appropriate unit
func FormatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
