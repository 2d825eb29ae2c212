package internal

import "strings"

// Keyword and title tables for anime detection. Matching is lower-cased
// substring matching, same as the addon metadata itself uses.
var animeKeywords = []string{
	"anime", "manga", "japanese", "japan", "studio ghibli", "toei", "madhouse",
	"pierrot", "bones", "wit studio", "mappa", "sunrise", "a-1 pictures",
	"production i.g", "shaft", "gainax", "trigger", "kyoto animation",
}

var popularAnimeTitles = []string{
	"one piece", "naruto", "bleach", "dragon ball", "pokemon", "detective conan",
	"attack on titan", "demon slayer", "death note", "fullmetal alchemist",
	"spirited away", "my neighbor totoro", "princess mononoke", "howl's moving castle",
	"sword art online", "tokyo ghoul", "jujutsu kaisen", "my hero academia",
	"hunter x hunter", "fairy tail", "black clover", "violet evergarden",
	"cowboy bebop", "neon genesis evangelion", "akira", "ghost in the shell",
}

// IsAnime decides whether a generic search result is actually anime based on
// its name and description. Pure and deterministic.
func IsAnime(name, description string) bool {
	nameLower := strings.ToLower(name)
	descLower := strings.ToLower(description)

	for _, keyword := range animeKeywords {
		if strings.Contains(nameLower, keyword) || strings.Contains(descLower, keyword) {
			return true
		}
	}

	for _, title := range popularAnimeTitles {
		if strings.Contains(nameLower, title) {
			return true
		}
	}

	// Japanese production plus an animation mention is good enough.
	if strings.Contains(descLower, "japan") &&
		(strings.Contains(nameLower, "animation") || strings.Contains(descLower, "animated")) {
		return true
	}

	return false
}

// ClassifyAnime rewrites the kind of any search result the heuristic flags.
// Called once on the merged result set, before it is returned.
func ClassifyAnime(results []SearchResult) {
	for i := range results {
		if results[i].Kind == KindAnime {
			continue
		}
		if IsAnime(results[i].Name, results[i].Description) {
			Debug("detected anime content: %s", results[i].Name)
			results[i].Kind = KindAnime
		}
	}
}

// animeCatalogKeywords is the narrower set used when filtering a movie catalog
// down to anime movies; broad words like "japan" would sweep in too much here.
var animeCatalogKeywords = []string{
	"anime", "manga", "japanese animation", "studio ghibli", "miyazaki",
	"pokemon", "naruto", "dragon ball", "one piece", "spirited away",
}

func isAnimeMovie(rec ContentRecord) bool {
	nameLower := strings.ToLower(rec.Name)
	descLower := strings.ToLower(rec.Description)
	for _, keyword := range animeCatalogKeywords {
		if strings.Contains(nameLower, keyword) || strings.Contains(descLower, keyword) {
			return true
		}
	}
	return false
}
