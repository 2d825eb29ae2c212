package internal

// Shared data types for catalog aggregation and stream resolution.

const (
	KindMovie  = "movie"
	KindSeries = "series"
	KindAnime  = "anime"
)

// ContentRecord is one catalog entry from a provider. Only Id, Name and Kind
// are guaranteed; everything else is whatever the provider supplied.
type ContentRecord struct {
	Id          string   `json:"id"`
	Name        string   `json:"name"`
	Poster      string   `json:"poster,omitempty"`
	Background  string   `json:"background,omitempty"`
	Description string   `json:"description,omitempty"`
	Year        string   `json:"year,omitempty"`
	Rating      string   `json:"imdbRating,omitempty"`
	Genre       []string `json:"genre,omitempty"`
	Kind        string   `json:"type"`
	Director    []string `json:"director,omitempty"`
	Cast        []string `json:"cast,omitempty"`
	Runtime     string   `json:"runtime,omitempty"`
	Country     string   `json:"country,omitempty"`
	Language    string   `json:"language,omitempty"`

	// series fields
	Seasons  int    `json:"seasons,omitempty"`
	Episodes int    `json:"episodes,omitempty"`
	Status   string `json:"status,omitempty"`
	Network  string `json:"network,omitempty"`

	// anime fields
	Studio    string `json:"studio,omitempty"`
	MalRating string `json:"malRating,omitempty"`
	AnimeType string `json:"animeType,omitempty"`
}

// SearchResult is the slim record returned by Search. Kind starts out as
// whatever endpoint it came from and may be reclassified to anime once.
type SearchResult struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	Poster      string `json:"poster,omitempty"`
	Year        string `json:"year,omitempty"`
	Rating      string `json:"imdbRating,omitempty"`
	Kind        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// StreamCandidate is one playable option for a piece of content. URL is either
// a direct http(s) link or a magnet URI synthesized from the provider's
// infoHash. Seeders/Leechers are nil when the provider gave us nothing.
type StreamCandidate struct {
	Title     string   `json:"title"`
	Name      string   `json:"name,omitempty"`
	URL       string   `json:"url"`
	Quality   string   `json:"quality,omitempty"`
	Size      string   `json:"size,omitempty"`
	Seeders   *int     `json:"seeders,omitempty"`
	Leechers  *int     `json:"leechers,omitempty"`
	Source    string   `json:"source,omitempty"`
	Language  string   `json:"language,omitempty"`
	Subtitles []string `json:"subtitles,omitempty"`
}
