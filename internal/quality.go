package internal

import (
	"strings"

	"github.com/dustin/go-humanize"
)

// qualityTable is the single ordered ranking table for quality tags. Order is
// precedence: most specific pattern first, first match wins. Score is the base
// used by Score for that tag.
var qualityTable = []struct {
	Pattern string
	Score   float64
}{
	// 4K variants
	{"2160P", 60},
	{"4K", 60},
	{"UHD", 60},
	// High quality 1080p variants
	{"1080P BLURAY", 55},
	{"1080P REMUX", 55},
	{"1080P", 45},
	// 720p variants
	{"720P BLURAY", 40},
	{"720P", 35},
	// Other formats
	{"BLURAY", 42},
	{"WEBDL", 30},
	{"WEBRIP", 25},
	{"HDRIP", 25},
	{"BRRIP", 25},
	{"480P", 15},
	{"DVDRIP", 15},
	// Low quality
	{"CAM", 5},
	{"TS", 5},
	{"HDTS", 5},
	{"SCREENER", 5},
}

// Encoding tags, used both as fallback quality tags when no resolution
// pattern matched and as an additive bonus on top of a resolution tag.
const (
	hevcBaseScore = 35
	h264BaseScore = 30
	hevcBonus     = 10
	h264Bonus     = 6
)

// ExtractQuality scans a torrent title for the best matching quality tag.
// Returns "" when nothing matches.
func ExtractQuality(title string) string {
	upper := strings.ToUpper(title)

	for _, q := range qualityTable {
		if strings.Contains(upper, q.Pattern) {
			return q.Pattern
		}
	}

	if hasHEVC(upper) {
		return "H265"
	}
	if hasH264(upper) {
		return "H264"
	}

	return ""
}

// Score maps a stream candidate to a sort key: quality tag base, encoding
// bonus, seeder/leecher health and a file-size preference. Higher is better.
func Score(s *StreamCandidate) float64 {
	score := 0.0

	switch s.Quality {
	case "":
		// untagged, no base
	case "H265":
		score += hevcBaseScore
	case "H264":
		score += h264BaseScore
	default:
		base := 20.0
		for _, q := range qualityTable {
			if q.Pattern == s.Quality {
				base = q.Score
				break
			}
		}
		score += base

		// Encoding contributes on top of the resolution tag.
		upper := strings.ToUpper(s.Title)
		if hasHEVC(upper) {
			score += hevcBonus
		} else if hasH264(upper) {
			score += h264Bonus
		}
	}

	if s.Seeders != nil {
		seeders := *s.Seeders
		if s.Leechers != nil && *s.Leechers > 0 {
			ratio := float64(seeders) / float64(*s.Leechers)
			if ratio > 10 {
				ratio = 10
			}
			score += ratio
		} else if seeders > 0 {
			score += 10
		}
	}

	if s.Size != "" {
		if gb, err := parseSizeGB(s.Size); err == nil {
			switch {
			case gb >= 1.0 && gb <= 8.0:
				score += 5
			case gb > 8.0 && gb <= 15.0:
				score += 2
			case gb < 0.5:
				score -= 5
			}
		}
	}

	return score
}

// parseSizeGB converts a size string ("4.5 GB", "732 MB", "1.2 TB" or bare
// bytes) to gigabytes.
func parseSizeGB(size string) (float64, error) {
	bytes, err := humanize.ParseBytes(size)
	if err != nil {
		return 0, err
	}
	return float64(bytes) / float64(humanize.GiByte), nil
}

func hasHEVC(upper string) bool {
	return strings.Contains(upper, "X265") || strings.Contains(upper, "H265") ||
		strings.Contains(upper, "HEVC")
}

func hasH264(upper string) bool {
	return strings.Contains(upper, "X264") || strings.Contains(upper, "H264")
}
