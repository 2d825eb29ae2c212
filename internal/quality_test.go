package internal

import "testing"

func TestExtractQuality(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Movie.2160p.WEB.x265", "2160P"},
		{"Movie 4K HDR", "4K"},
		{"Movie 1080p BluRay DTS", "1080P BLURAY"},
		{"Movie 1080p WEBRip", "1080P"}, // resolution outranks rip tag
		{"Movie 720p BluRay", "720P BLURAY"},
		{"Movie x265 rip", "H265"},
		{"Movie H264 rip", "H264"},
		{"Plain old movie", ""},
	}

	for _, tt := range tests {
		if got := ExtractQuality(tt.title); got != tt.want {
			t.Errorf("ExtractQuality(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestScoreQualityOrdering(t *testing.T) {
	uhd := &StreamCandidate{Title: "Movie 2160p", Quality: "2160P"}
	hd := &StreamCandidate{Title: "Movie 720p", Quality: "720P"}
	cam := &StreamCandidate{Title: "Movie CAM", Quality: "CAM"}

	if Score(uhd) <= Score(hd) {
		t.Errorf("2160p (%f) should outscore 720p (%f)", Score(uhd), Score(hd))
	}
	if Score(hd) <= Score(cam) {
		t.Errorf("720p (%f) should outscore CAM (%f)", Score(hd), Score(cam))
	}
}

func TestScoreEncodingBonus(t *testing.T) {
	plain := &StreamCandidate{Title: "Movie 1080p", Quality: "1080P"}
	hevc := &StreamCandidate{Title: "Movie 1080p x265", Quality: "1080P"}

	if got, want := Score(hevc)-Score(plain), float64(hevcBonus); got != want {
		t.Errorf("HEVC bonus = %f, want %f", got, want)
	}

	// A bare encoding tag is a base score, not a bonus.
	bare := &StreamCandidate{Title: "Movie x265", Quality: "H265"}
	if got := Score(bare); got != hevcBaseScore {
		t.Errorf("bare H265 score = %f, want %d", got, hevcBaseScore)
	}
}

func TestScoreSwarmHealth(t *testing.T) {
	seeders, leechers := 100, 2
	capped := &StreamCandidate{Seeders: &seeders, Leechers: &leechers}
	if got := Score(capped); got != 10 {
		t.Errorf("ratio should cap at 10, got %f", got)
	}

	healthy := 5
	zero := 0
	noLeechers := &StreamCandidate{Seeders: &healthy, Leechers: &zero}
	if got := Score(noLeechers); got != 10 {
		t.Errorf("seeders with zero leechers should score flat 10, got %f", got)
	}

	dead := &StreamCandidate{Seeders: &zero}
	if got := Score(dead); got != 0 {
		t.Errorf("dead swarm should add nothing, got %f", got)
	}
}

func TestScoreSizePreference(t *testing.T) {
	ideal := &StreamCandidate{Title: "Movie 1080p", Quality: "1080P", Size: "4.5 GB"}
	tiny := &StreamCandidate{Title: "Movie 1080p", Quality: "1080P", Size: "100 MB"}
	huge := &StreamCandidate{Title: "Movie 1080p", Quality: "1080P", Size: "12 GB"}

	if got := Score(ideal) - Score(tiny); got != 10 {
		t.Errorf("ideal vs tiny size delta = %f, want 10", got)
	}
	if got := Score(ideal) - Score(huge); got != 3 {
		t.Errorf("ideal vs oversized delta = %f, want 3", got)
	}

	garbage := &StreamCandidate{Title: "Movie 1080p", Quality: "1080P", Size: "around two gigs"}
	if got := Score(garbage); got != Score(&StreamCandidate{Title: "Movie 1080p", Quality: "1080P"}) {
		t.Errorf("unparseable size should contribute nothing, got %f", got)
	}
}
