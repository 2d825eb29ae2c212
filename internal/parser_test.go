package internal

import (
	"encoding/json"
	"testing"
)

func TestParseCatalogSkipsBadEntries(t *testing.T) {
	resp := &catalogResponse{Metas: []json.RawMessage{
		json.RawMessage(`{"id":"tt1","name":"Good Movie","year":"1999","imdbRating":"8.7","genre":["Action","Sci-Fi"]}`),
		json.RawMessage(`42`),
		json.RawMessage(`{"id":"tt2"}`),
		json.RawMessage(`{"name":"No Id"}`),
	}}

	records := ParseCatalog(resp, KindMovie)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}

	rec := records[0]
	if rec.Id != "tt1" || rec.Name != "Good Movie" {
		t.Errorf("unexpected record: %+v", rec)
	}
	if rec.Rating != "8.7" {
		t.Errorf("rating = %q, want 8.7", rec.Rating)
	}
	if rec.Kind != KindMovie {
		t.Errorf("kind = %q, want %q", rec.Kind, KindMovie)
	}
	if len(rec.Genre) != 2 {
		t.Errorf("genre = %v, want two entries", rec.Genre)
	}
}

func TestParseCatalogWrongFieldTypesReadAsAbsent(t *testing.T) {
	resp := &catalogResponse{Metas: []json.RawMessage{
		json.RawMessage(`{"id":"tt1","name":"Show","seasons":"five","year":2010}`),
	}}

	records := ParseCatalog(resp, KindSeries)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Seasons != 0 {
		t.Errorf("string seasons should read as 0, got %d", records[0].Seasons)
	}
	if records[0].Year != "" {
		t.Errorf("numeric year should read as empty, got %q", records[0].Year)
	}
}

func TestParseSearchResultsDefaultsKind(t *testing.T) {
	resp := &catalogResponse{Metas: []json.RawMessage{
		json.RawMessage(`{"id":"tt1","name":"Typed","type":"series"}`),
		json.RawMessage(`{"id":"tt2","name":"Untyped"}`),
	}}

	results := ParseSearchResults(resp, KindMovie)
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Kind != KindSeries {
		t.Errorf("explicit type should win, got %q", results[0].Kind)
	}
	if results[1].Kind != KindMovie {
		t.Errorf("missing type should default to endpoint kind, got %q", results[1].Kind)
	}
}
