package internal

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// WatchEntry is one previously played stream.
type WatchEntry struct {
	StreamURL    string
	FileIndex    int
	PlaybackTime int
	Title        string
}

// HistoryStore persists watch history as a pipe-delimited file so "Continue
// Watching" survives restarts.
type HistoryStore struct {
	path string
}

func NewHistoryStore(cfg *ProgramConfig) *HistoryStore {
	return &HistoryStore{
		path: filepath.Join(os.ExpandEnv(cfg.StoragePath), "watch_history"),
	}
}

// All returns every recorded entry. A missing or empty file is an empty
// history, not an error.
func (s *HistoryStore) All() []WatchEntry {
	entries := []WatchEntry{}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		Debug("failed to create history directory: %v", err)
		return entries
	}

	file, err := os.OpenFile(s.path, os.O_RDONLY|os.O_CREATE, 0644)
	if err != nil {
		Debug("failed to open history file: %v", err)
		return entries
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil || info.Size() == 0 {
		return entries
	}

	reader := csv.NewReader(file)
	reader.Comma = '|'
	reader.FieldsPerRecord = 4

	records, err := reader.ReadAll()
	if err != nil {
		Debug("failed to read history file: %v", err)
		return entries
	}

	for _, row := range records {
		if entry := parseHistoryRow(row); entry != nil {
			entries = append(entries, *entry)
		}
	}

	return entries
}

func parseHistoryRow(row []string) *WatchEntry {
	if len(row) < 4 {
		Debug("invalid history row: %v", row)
		return nil
	}

	fileIndex, _ := strconv.Atoi(row[1])
	playbackTime, _ := strconv.Atoi(row[2])

	return &WatchEntry{
		StreamURL:    row[0],
		FileIndex:    fileIndex,
		PlaybackTime: playbackTime,
		Title:        row[3],
	}
}

// Record upserts an entry keyed by stream URL.
func (s *HistoryStore) Record(entry WatchEntry) error {
	entries := s.All()

	updated := false
	for i := range entries {
		if entries[i].StreamURL == entry.StreamURL {
			entries[i] = entry
			updated = true
			break
		}
	}
	if !updated {
		entries = append(entries, entry)
	}

	file, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("failed to write history file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	writer.Comma = '|'
	defer writer.Flush()

	for _, e := range entries {
		record := []string{
			e.StreamURL,
			strconv.Itoa(e.FileIndex),
			strconv.Itoa(e.PlaybackTime),
			e.Title,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write history record: %w", err)
		}
	}

	return nil
}

// Find returns the entry for a stream URL, or nil.
func (s *HistoryStore) Find(streamURL string) *WatchEntry {
	for _, entry := range s.All() {
		if entry.StreamURL == streamURL {
			return &entry
		}
	}
	return nil
}
