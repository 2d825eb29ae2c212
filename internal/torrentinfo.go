package internal

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/anacrolix/torrent"
	"github.com/anacrolix/torrent/storage"
	"github.com/dustin/go-humanize"
)

// TorrentEntry is one video file inside a torrent.
type TorrentEntry struct {
	Index int
	Path  string
	Size  int64
}

func (e TorrentEntry) Label() string {
	return fmt.Sprintf("%s (%s)", e.Path, humanize.Bytes(uint64(e.Size)))
}

// ListTorrentVideos resolves a magnet's metadata and returns its video files,
// so the user can pick an episode out of a season pack before peerflix starts.
func ListTorrentVideos(ctx context.Context, magnetURI string) ([]TorrentEntry, error) {
	tmpDir, err := os.MkdirTemp("", "deckflix-meta-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	cfg := torrent.NewDefaultClientConfig()
	cfg.DataDir = tmpDir
	cfg.DefaultStorage = storage.NewFile(tmpDir)

	client, err := torrent.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create torrent client: %w", err)
	}
	defer client.Close()

	t, err := client.AddMagnet(magnetURI)
	if err != nil {
		return nil, fmt.Errorf("failed to add magnet: %w", err)
	}

	select {
	case <-t.GotInfo():
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	entries := make([]TorrentEntry, 0)
	for i, file := range t.Files() {
		if IsVideoFile(file.Path()) {
			entries = append(entries, TorrentEntry{
				Index: i,
				Path:  file.Path(),
				Size:  file.Length(),
			})
		}
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("no video files found in torrent")
	}

	return entries, nil
}

// Matches s01e01, s1e1, 1x01 and friends.
var seasonEpRegex = regexp.MustCompile(`(?i)s(\d{1,2})e(\d{1,2})|(\d{1,2})x(\d{1,2})`)

// SortEpisodes orders entries by season and episode number parsed from their
// paths. Entries with no recognizable episode marker keep their original
// order at the end.
func SortEpisodes(entries []TorrentEntry) []TorrentEntry {
	type episode struct {
		entry   TorrentEntry
		season  int
		episode int
	}

	var episodes []episode
	var rest []TorrentEntry

	for _, entry := range entries {
		matches := seasonEpRegex.FindStringSubmatch(strings.ToLower(entry.Path))
		if matches == nil {
			rest = append(rest, entry)
			continue
		}
		var season, ep int
		if matches[1] != "" {
			season, _ = strconv.Atoi(matches[1])
			ep, _ = strconv.Atoi(matches[2])
		} else {
			season, _ = strconv.Atoi(matches[3])
			ep, _ = strconv.Atoi(matches[4])
		}
		episodes = append(episodes, episode{entry: entry, season: season, episode: ep})
	}

	sort.Slice(episodes, func(i, j int) bool {
		if episodes[i].season != episodes[j].season {
			return episodes[i].season < episodes[j].season
		}
		return episodes[i].episode < episodes[j].episode
	})

	sorted := make([]TorrentEntry, 0, len(entries))
	for _, ep := range episodes {
		sorted = append(sorted, ep.entry)
	}
	return append(sorted, rest...)
}
