package internal

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIsVideoFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"movie.mkv", true},
		{"movie.MP4", true},
		{"show/s01e01.webm", true},
		{"movie.m4v", true},
		{"notes.txt", false},
		{"movie.srt", false},
		{"archive.mpg", false},
		{"noextension", false},
	}

	for _, tt := range tests {
		if got := IsVideoFile(tt.path); got != tt.want {
			t.Errorf("IsVideoFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, make([]byte, size), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestFindLargestVideo(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "sample.mkv"), 100)
	writeFile(t, filepath.Join(dir, "sub", "feature.mp4"), 5000)
	writeFile(t, filepath.Join(dir, "readme.txt"), 9000)

	path, size, err := FindLargestVideo(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Base(path) != "feature.mp4" {
		t.Errorf("largest video = %s, want feature.mp4", path)
	}
	if size != 5000 {
		t.Errorf("size = %d, want 5000", size)
	}
}

func TestFindLargestVideoNoVideos(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "readme.txt"), 100)

	if _, _, err := FindLargestVideo(dir); err == nil {
		t.Fatal("expected an error for a directory with no videos")
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{500, "500 B"},
		{2048, "2.00 KB"},
		{5 * 1024 * 1024 * 1024, "5.00 GB"},
	}

	for _, tt := range tests {
		if got := FormatSize(tt.bytes); got != tt.want {
			t.Errorf("FormatSize(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}
