package internal

import "testing"

func TestIsAnime(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        bool
	}{
		{"Attack on Titan", "", true},
		{"Some Show", "a gripping anime about pirates", true},
		{"Castle Tale", "produced by Studio Ghibli", true},
		{"The Animation Story", "made in japan with love", true},
		{"The Godfather", "an offer he can't refuse", false},
		{"Tokyo Drift", "street racing movie", false},
	}

	for _, tt := range tests {
		if got := IsAnime(tt.name, tt.description); got != tt.want {
			t.Errorf("IsAnime(%q, %q) = %v, want %v", tt.name, tt.description, got, tt.want)
		}
	}
}

func TestClassifyAnime(t *testing.T) {
	results := []SearchResult{
		{Id: "tt1", Name: "Naruto", Kind: KindSeries},
		{Id: "tt2", Name: "The Office", Kind: KindSeries},
		{Id: "tt3", Name: "Already Tagged", Kind: KindAnime},
	}

	ClassifyAnime(results)

	if results[0].Kind != KindAnime {
		t.Errorf("Naruto should be reclassified, got %q", results[0].Kind)
	}
	if results[1].Kind != KindSeries {
		t.Errorf("The Office should stay a series, got %q", results[1].Kind)
	}
	if results[2].Kind != KindAnime {
		t.Errorf("existing anime tag should survive, got %q", results[2].Kind)
	}
}

func TestIsAnimeMovieUsesNarrowKeywords(t *testing.T) {
	broad := ContentRecord{Name: "Lost in Translation", Description: "an american in japan"}
	if isAnimeMovie(broad) {
		t.Errorf("bare 'japan' should not qualify a movie as anime")
	}

	narrow := ContentRecord{Name: "Spirited Away", Description: ""}
	if !isAnimeMovie(narrow) {
		t.Errorf("Spirited Away should qualify as an anime movie")
	}
}
