package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

type streamResponse struct {
	Streams []json.RawMessage `json:"streams"`
}

// Fixed patterns for torrentio-style titles that embed swarm stats in the
// text ("👤 12 💾 5.09 GB").
var (
	titleSizeRegex    = regexp.MustCompile(`💾\s*([0-9.]+\s*[KMGT]?B)|([0-9.]+\s*[KMGT]?B)`)
	titleSeedersRegex = regexp.MustCompile(`👤\s*([0-9]+)`)
)

// ResolveStreams fetches and ranks stream candidates for a piece of content
// from every stream-capable source. Metadata-only sources are skipped.
func (c *AddonClient) ResolveStreams(ctx context.Context, contentID string) ([]StreamCandidate, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var all []StreamCandidate
	var lastErr error
	attempted, failed := 0, 0

	for _, src := range StreamSources(c.sources) {
		attempted++

		endpoint := fmt.Sprintf("%s/stream/movie/%s.json", src.BaseURL, contentID)
		var resp streamResponse
		if err := c.fetcher.GetJSON(ctx, endpoint, &resp); err != nil {
			failed++
			lastErr = err
			Debug("failed to fetch streams from %s: %v", src.Name, err)
			continue
		}
		if resp.Streams == nil {
			failed++
			lastErr = &FetchError{URL: endpoint, Kind: fetchBadBody, Err: fmt.Errorf("missing 'streams' field")}
			continue
		}

		candidates := parseStreams(&resp)
		Info("found %d streams from %s", len(candidates), src.Name)
		all = append(all, candidates...)
	}

	if len(all) == 0 {
		if attempted > 0 && failed == attempted {
			return nil, &AggregateError{Op: "fetch streams: all torrent addons failed", Last: lastErr}
		}
		return nil, &AggregateError{Op: "fetch streams: addons responded but had nothing for this title", Last: lastErr}
	}

	sort.SliceStable(all, func(i, j int) bool {
		return Score(&all[i]) > Score(&all[j])
	})

	return all, nil
}

// parseStreams converts raw stream entries into candidates. Torrent entries
// go through a two-pass filter: when one info-hash appears with several
// distinct file indices, the fileIdx 0 entry is dropped so multi-file
// torrents (season packs) don't default to an arbitrary first file. A
// single-entry torrent keeps its fileIdx 0.
func parseStreams(resp *streamResponse) []StreamCandidate {
	type rawStream struct {
		meta     map[string]interface{}
		infoHash string
		fileIdx  int
		hasIdx   bool
	}

	raws := make([]rawStream, 0, len(resp.Streams))
	indicesByHash := make(map[string]map[int]struct{})

	for _, raw := range resp.Streams {
		var meta map[string]interface{}
		if err := json.Unmarshal(raw, &meta); err != nil {
			Debug("skipping stream entry: %v", err)
			continue
		}
		rs := rawStream{meta: meta, infoHash: jsonString(meta, "infoHash")}
		rs.fileIdx, rs.hasIdx = jsonIntOpt(meta, "fileIdx")
		if rs.infoHash != "" && rs.hasIdx {
			set, ok := indicesByHash[rs.infoHash]
			if !ok {
				set = make(map[int]struct{})
				indicesByHash[rs.infoHash] = set
			}
			set[rs.fileIdx] = struct{}{}
		}
		raws = append(raws, rs)
	}

	candidates := make([]StreamCandidate, 0, len(raws))
	for _, rs := range raws {
		if rs.infoHash != "" && rs.hasIdx && rs.fileIdx == 0 {
			if len(indicesByHash[rs.infoHash]) > 1 {
				Debug("skipping fileIdx 0 from multi-file torrent %s", rs.infoHash)
				continue
			}
		}
		cand, err := parseSingleStream(rs.meta)
		if err != nil {
			Debug("skipping stream entry: %v", err)
			continue
		}
		candidates = append(candidates, cand)
	}

	return candidates
}

func parseSingleStream(meta map[string]interface{}) (StreamCandidate, error) {
	title := jsonString(meta, "title")
	if title == "" {
		title = "Unknown Stream"
	}

	var streamURL, source string
	if direct := jsonString(meta, "url"); direct != "" {
		streamURL = direct
		source = jsonString(meta, "source")
		if source == "" {
			source = "direct"
		}
	} else if infoHash := jsonString(meta, "infoHash"); infoHash != "" {
		fileIdx, _ := jsonIntOpt(meta, "fileIdx")
		streamURL = BuildMagnet(infoHash, fileIdx)
		source = "torrent"
	} else {
		return StreamCandidate{}, fmt.Errorf("missing stream url or infoHash")
	}

	cand := StreamCandidate{
		Title:     title,
		Name:      jsonString(meta, "name"),
		URL:       streamURL,
		Quality:   ExtractQuality(title),
		Source:    source,
		Language:  jsonString(meta, "language"),
		Subtitles: jsonStringSlice(meta, "subtitles"),
	}

	if size := jsonString(meta, "size"); size != "" {
		cand.Size = size
	} else {
		cand.Size = extractSizeFromTitle(title)
	}

	if seeders, ok := jsonIntOpt(meta, "seeders"); ok {
		cand.Seeders = &seeders
	} else if seeders, ok := extractSeedersFromTitle(title); ok {
		cand.Seeders = &seeders
	}
	if leechers, ok := jsonIntOpt(meta, "leechers"); ok {
		cand.Leechers = &leechers
	}

	return cand, nil
}

func extractSizeFromTitle(title string) string {
	match := titleSizeRegex.FindString(title)
	if match == "" {
		return ""
	}
	return strings.TrimSpace(strings.ReplaceAll(match, "💾", ""))
}

func extractSeedersFromTitle(title string) (int, bool) {
	m := titleSeedersRegex.FindStringSubmatch(title)
	if m == nil {
		return 0, false
	}
	var n int
	if _, err := fmt.Sscanf(m[1], "%d", &n); err != nil {
		return 0, false
	}
	return n, true
}

func jsonIntOpt(meta map[string]interface{}, key string) (int, bool) {
	if f, ok := meta[key].(float64); ok {
		return int(f), true
	}
	return 0, false
}
