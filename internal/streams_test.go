package internal

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const (
	packHash   = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	singleHash = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
)

func TestParseStreamsMultiFileFilter(t *testing.T) {
	resp := &streamResponse{Streams: []json.RawMessage{
		// Season pack: fileIdx 0 alongside a real episode index.
		json.RawMessage(`{"title":"Pack S01 720p","infoHash":"` + packHash + `","fileIdx":0}`),
		json.RawMessage(`{"title":"Pack S01E02 720p","infoHash":"` + packHash + `","fileIdx":2}`),
		// Single-file torrent keeps its fileIdx 0.
		json.RawMessage(`{"title":"Movie 1080p","infoHash":"` + singleHash + `","fileIdx":0}`),
		// Direct URL entry.
		json.RawMessage(`{"title":"Direct 1080p","url":"https://cdn.example.com/movie.mp4"}`),
		// Useless entry with neither URL nor hash.
		json.RawMessage(`{"title":"Broken"}`),
	}}

	candidates := parseStreams(resp)
	if len(candidates) != 3 {
		t.Fatalf("got %d candidates, want 3: %+v", len(candidates), candidates)
	}

	for _, cand := range candidates {
		if cand.Title == "Pack S01 720p" {
			t.Errorf("fileIdx 0 from a multi-file torrent should be dropped")
		}
		if cand.Title == "Pack S01E02 720p" && !strings.Contains(cand.URL, "&so=1") {
			t.Errorf("fileIdx 2 should map to selection so=1, got %s", cand.URL)
		}
		if cand.Title == "Movie 1080p" && !strings.Contains(cand.URL, singleHash) {
			t.Errorf("single-file torrent lost its magnet: %s", cand.URL)
		}
		if cand.Title == "Direct 1080p" {
			if cand.Source != "direct" {
				t.Errorf("direct URL source = %q, want direct", cand.Source)
			}
			if cand.URL != "https://cdn.example.com/movie.mp4" {
				t.Errorf("direct URL must pass through verbatim, got %s", cand.URL)
			}
		}
	}
}

func TestParseStreamsTitleExtraction(t *testing.T) {
	resp := &streamResponse{Streams: []json.RawMessage{
		json.RawMessage(`{"title":"Movie 1080p\n👤 42 💾 5.09 GB","infoHash":"` + singleHash + `"}`),
	}}

	candidates := parseStreams(resp)
	if len(candidates) != 1 {
		t.Fatalf("got %d candidates, want 1", len(candidates))
	}
	cand := candidates[0]
	if cand.Size != "5.09 GB" {
		t.Errorf("size = %q, want 5.09 GB", cand.Size)
	}
	if cand.Seeders == nil || *cand.Seeders != 42 {
		t.Errorf("seeders = %v, want 42", cand.Seeders)
	}
	if cand.Quality != "1080P" {
		t.Errorf("quality = %q, want 1080P", cand.Quality)
	}
}

func streamSource(name, baseURL string) Source {
	return Source{Name: name, BaseURL: baseURL, Capabilities: Capabilities{Stream: true}}
}

func TestResolveStreamsAllAddonsFailed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewAddonClient([]Source{streamSource("a", server.URL), streamSource("b", server.URL)})

	_, err := client.ResolveStreams(context.Background(), "tt0111161")
	var aggErr *AggregateError
	if !errors.As(err, &aggErr) {
		t.Fatalf("want AggregateError, got %v", err)
	}
	if !strings.Contains(aggErr.Op, "all torrent addons failed") {
		t.Errorf("unexpected op: %s", aggErr.Op)
	}

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) || fetchErr.Status != http.StatusInternalServerError {
		t.Errorf("aggregate should carry the last fetch failure, got %v", err)
	}
}

func TestResolveStreamsNothingFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"streams":[]}`))
	}))
	defer server.Close()

	client := NewAddonClient([]Source{streamSource("a", server.URL)})

	_, err := client.ResolveStreams(context.Background(), "tt0111161")
	var aggErr *AggregateError
	if !errors.As(err, &aggErr) {
		t.Fatalf("want AggregateError, got %v", err)
	}
	if !strings.Contains(aggErr.Op, "had nothing for this title") {
		t.Errorf("unexpected op: %s", aggErr.Op)
	}
}

func TestResolveStreamsSkipsMetadataOnlySources(t *testing.T) {
	var hits int
	metaServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`{"streams":[]}`))
	}))
	defer metaServer.Close()

	streamServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"streams":[{"title":"Movie 1080p","infoHash":"` + singleHash + `"}]}`))
	}))
	defer streamServer.Close()

	metaOnly := Source{Name: "meta", BaseURL: metaServer.URL, Capabilities: Capabilities{Catalog: true, Search: true}}
	client := NewAddonClient([]Source{metaOnly, streamSource("torrents", streamServer.URL)})

	candidates, err := client.ResolveStreams(context.Background(), "tt0111161")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("got %d candidates, want 1", len(candidates))
	}
	if hits != 0 {
		t.Errorf("metadata-only source was queried %d times", hits)
	}
}

func TestResolveStreamsRankedByScore(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"streams":[
			{"title":"Movie CAM","infoHash":"` + packHash + `"},
			{"title":"Movie 2160p","infoHash":"` + singleHash + `"}
		]}`))
	}))
	defer server.Close()

	client := NewAddonClient([]Source{streamSource("a", server.URL)})

	candidates, err := client.ResolveStreams(context.Background(), "tt0111161")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("got %d candidates, want 2", len(candidates))
	}
	if candidates[0].Quality != "2160P" {
		t.Errorf("best candidate should come first, got %q", candidates[0].Quality)
	}
}
