package internal

import "testing"

func TestSortEpisodes(t *testing.T) {
	entries := []TorrentEntry{
		{Index: 0, Path: "Show/Show.S02E01.mkv"},
		{Index: 1, Path: "Show/Show.S01E02.mkv"},
		{Index: 2, Path: "Show/show 1x01.mkv"},
		{Index: 3, Path: "Show/Extras/behind-the-scenes.mkv"},
	}

	sorted := SortEpisodes(entries)
	if len(sorted) != 4 {
		t.Fatalf("got %d entries, want 4", len(sorted))
	}

	wantOrder := []int{2, 1, 0, 3}
	for i, want := range wantOrder {
		if sorted[i].Index != want {
			t.Errorf("position %d: got index %d, want %d", i, sorted[i].Index, want)
		}
	}
}

func TestSortEpisodesNoMarkers(t *testing.T) {
	entries := []TorrentEntry{
		{Index: 0, Path: "Movie.Part.One.mkv"},
		{Index: 1, Path: "Movie.Part.Two.mkv"},
	}

	sorted := SortEpisodes(entries)
	if sorted[0].Index != 0 || sorted[1].Index != 1 {
		t.Errorf("entries without markers should keep their order: %+v", sorted)
	}
}

func TestTorrentEntryLabel(t *testing.T) {
	entry := TorrentEntry{Index: 0, Path: "Show/episode.mkv", Size: 1 << 30}
	label := entry.Label()
	if label == "Show/episode.mkv" {
		t.Errorf("label should include a human readable size, got %q", label)
	}
}
