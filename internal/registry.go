package internal

// Capabilities marks which endpoints a source actually serves. Cinemeta only
// has metadata; asking it for streams just wastes a request.
type Capabilities struct {
	Catalog bool
	Search  bool
	Stream  bool
}

// Source is one upstream addon. Order in the registry is priority order: the
// first catalog-capable source is the primary and short-circuits catalog
// fetches when it returns anything.
type Source struct {
	Name         string
	BaseURL      string
	Capabilities Capabilities
}

// DefaultSources returns the built-in addon list. Only the two most reliable
// torrent sources are kept; more sources mostly means more fake or mislabeled
// torrents.
func DefaultSources() []Source {
	return []Source{
		{
			Name:         "cinemeta",
			BaseURL:      "https://v3-cinemeta.strem.io",
			Capabilities: Capabilities{Catalog: true, Search: true},
		},
		{
			Name:         "torrentio",
			BaseURL:      "https://torrentio.strem.fun",
			Capabilities: Capabilities{Catalog: true, Search: true, Stream: true},
		},
		{
			Name:         "thepiratebay+",
			BaseURL:      "https://thepiratebay-plus.strem.fun",
			Capabilities: Capabilities{Catalog: true, Search: true, Stream: true},
		},
	}
}

// StreamSources filters a source list down to the stream-capable ones,
// preserving order.
func StreamSources(sources []Source) []Source {
	out := make([]Source, 0, len(sources))
	for _, s := range sources {
		if s.Capabilities.Stream {
			out = append(out, s)
		}
	}
	return out
}
