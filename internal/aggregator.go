package internal

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"sync"
)

const (
	maxMovies        = 50
	maxSeries        = 100
	maxAnime         = 100
	maxSearchResults = 100
)

// AddonClient aggregates catalog, search and stream data across the addon
// registry. One shared instance per app; operations serialize on the mutex so
// no two fetches run concurrently against the same client.
type AddonClient struct {
	mu      sync.Mutex
	fetcher *Fetcher
	sources []Source
}

func NewAddonClient(sources []Source) *AddonClient {
	return &AddonClient{
		fetcher: NewFetcher(),
		sources: sources,
	}
}

// FetchCatalog returns the deduplicated catalog of the given kind. Sources
// are tried in priority order; when the primary source returns anything the
// remaining sources are skipped to save bandwidth.
func (c *AddonClient) FetchCatalog(ctx context.Context, kind, catalogName string) ([]ContentRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var all []ContentRecord
	var lastErr error

	for i, src := range c.sources {
		if !src.Capabilities.Catalog {
			continue
		}
		records, err := c.fetchCatalogFromSource(ctx, src, kind, catalogName)
		if err != nil {
			lastErr = err
			Debug("failed to fetch %s catalog from %s: %v", kind, src.Name, err)
			continue
		}
		Info("fetched %d %s records from %s", len(records), kind, src.Name)
		all = append(all, records...)

		// Primary source succeeded, that's sufficient.
		if i == 0 && len(all) > 0 {
			Debug("got %s catalog from primary source, stopping here", kind)
			break
		}
	}

	if len(all) == 0 {
		return nil, &AggregateError{Op: "fetch " + kind + " catalog", Last: lastErr}
	}

	all = dedupRecords(all)
	all = truncateRecords(all, catalogCap(kind))
	return all, nil
}

// Search queries every source's movie and series endpoints and returns the
// merged, anime-classified, deduplicated result set. Queries shorter than two
// characters return nothing without touching the network.
func (c *AddonClient) Search(ctx context.Context, query string) ([]SearchResult, error) {
	if len(query) < 2 {
		Debug("query %q too short, returning empty results", query)
		return []SearchResult{}, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var all []SearchResult
	for _, src := range c.sources {
		if !src.Capabilities.Search {
			continue
		}
		for _, kind := range []string{KindMovie, KindSeries} {
			results, err := c.searchFromSource(ctx, src, kind, query)
			if err != nil {
				Debug("failed to search %s on %s: %v", kind, src.Name, err)
				continue
			}
			all = append(all, results...)
		}
	}

	ClassifyAnime(all)

	sort.SliceStable(all, func(i, j int) bool { return all[i].Id < all[j].Id })
	all = compactResults(all)
	if len(all) > maxSearchResults {
		all = all[:maxSearchResults]
	}

	Info("search %q: %d results after deduplication", query, len(all))
	return all, nil
}

func (c *AddonClient) fetchCatalogFromSource(ctx context.Context, src Source, kind, catalogName string) ([]ContentRecord, error) {
	if kind == KindAnime {
		return c.fetchAnimeFromSource(ctx, src, catalogName)
	}

	endpoint := fmt.Sprintf("%s/catalog/%s/%s.json", src.BaseURL, kind, catalogName)
	var resp catalogResponse
	if err := c.fetcher.GetJSON(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	if resp.Metas == nil {
		return nil, &FetchError{URL: endpoint, Kind: fetchBadBody, Err: fmt.Errorf("missing 'metas' field")}
	}
	return ParseCatalog(&resp, kind), nil
}

// fetchAnimeFromSource pulls the series catalog as anime plus the movie
// catalog filtered down to actual anime movies. Either endpoint failing alone
// is fine as long as one yields something.
func (c *AddonClient) fetchAnimeFromSource(ctx context.Context, src Source, catalogName string) ([]ContentRecord, error) {
	var all []ContentRecord
	var lastErr error

	endpoint := fmt.Sprintf("%s/catalog/series/%s.json", src.BaseURL, catalogName)
	var resp catalogResponse
	if err := c.fetcher.GetJSON(ctx, endpoint, &resp); err != nil {
		lastErr = err
		Debug("failed to fetch anime series from %s: %v", src.Name, err)
	} else if resp.Metas == nil {
		lastErr = &FetchError{URL: endpoint, Kind: fetchBadBody, Err: fmt.Errorf("missing 'metas' field")}
	} else {
		all = append(all, ParseCatalog(&resp, KindAnime)...)
	}

	endpoint = fmt.Sprintf("%s/catalog/movie/%s.json", src.BaseURL, catalogName)
	var movieResp catalogResponse
	if err := c.fetcher.GetJSON(ctx, endpoint, &movieResp); err != nil {
		lastErr = err
		Debug("failed to fetch anime movies from %s: %v", src.Name, err)
	} else if movieResp.Metas != nil {
		for _, rec := range ParseCatalog(&movieResp, KindAnime) {
			if isAnimeMovie(rec) {
				all = append(all, rec)
			}
		}
	}

	if len(all) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return all, nil
}

func (c *AddonClient) searchFromSource(ctx context.Context, src Source, kind, query string) ([]SearchResult, error) {
	endpoint := fmt.Sprintf("%s/catalog/%s/top/search=%s.json", src.BaseURL, kind, url.QueryEscape(query))
	var resp catalogResponse
	if err := c.fetcher.GetJSON(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	if resp.Metas == nil {
		return nil, &FetchError{URL: endpoint, Kind: fetchBadBody, Err: fmt.Errorf("missing 'metas' field")}
	}
	return ParseSearchResults(&resp, kind), nil
}

func catalogCap(kind string) int {
	switch kind {
	case KindMovie:
		return maxMovies
	case KindSeries:
		return maxSeries
	default:
		return maxAnime
	}
}

// dedupRecords sorts by id and collapses adjacent duplicates, keeping the
// first occurrence. Running it twice is a no-op.
func dedupRecords(records []ContentRecord) []ContentRecord {
	sort.SliceStable(records, func(i, j int) bool { return records[i].Id < records[j].Id })
	out := records[:0]
	for _, rec := range records {
		if len(out) > 0 && out[len(out)-1].Id == rec.Id {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func truncateRecords(records []ContentRecord, limit int) []ContentRecord {
	if len(records) > limit {
		return records[:limit]
	}
	return records
}

func compactResults(results []SearchResult) []SearchResult {
	out := results[:0]
	for _, r := range results {
		if len(out) > 0 && out[len(out)-1].Id == r.Id {
			continue
		}
		out = append(out, r)
	}
	return out
}
