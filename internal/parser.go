package internal

import (
	"encoding/json"
	"fmt"
)

// catalogResponse is the raw addon catalog/search payload. Items are kept raw
// so that one malformed entry can be dropped without losing the batch.
type catalogResponse struct {
	Metas []json.RawMessage `json:"metas"`
}

// ParseCatalog converts a decoded catalog response into content records of the
// given kind. Entries missing id or name are skipped individually.
func ParseCatalog(resp *catalogResponse, kind string) []ContentRecord {
	records := make([]ContentRecord, 0, len(resp.Metas))
	for _, raw := range resp.Metas {
		rec, err := parseMeta(raw, kind)
		if err != nil {
			Debug("skipping catalog entry: %v", err)
			continue
		}
		records = append(records, rec)
	}
	return records
}

// ParseSearchResults converts a catalog response into slim search results,
// defaulting Kind to the endpoint's type when the entry doesn't carry one.
func ParseSearchResults(resp *catalogResponse, kind string) []SearchResult {
	results := make([]SearchResult, 0, len(resp.Metas))
	for _, raw := range resp.Metas {
		var meta map[string]interface{}
		if err := json.Unmarshal(raw, &meta); err != nil {
			Debug("skipping search entry: %v", err)
			continue
		}
		id := jsonString(meta, "id")
		name := jsonString(meta, "name")
		if id == "" || name == "" {
			Debug("skipping search entry: missing id or name")
			continue
		}
		r := SearchResult{
			Id:          id,
			Name:        name,
			Poster:      jsonString(meta, "poster"),
			Year:        jsonString(meta, "year"),
			Rating:      jsonString(meta, "imdbRating"),
			Kind:        jsonString(meta, "type"),
			Description: jsonString(meta, "description"),
		}
		if r.Kind == "" {
			r.Kind = kind
		}
		results = append(results, r)
	}
	return results
}

func parseMeta(raw json.RawMessage, kind string) (ContentRecord, error) {
	var meta map[string]interface{}
	if err := json.Unmarshal(raw, &meta); err != nil {
		return ContentRecord{}, err
	}

	id := jsonString(meta, "id")
	if id == "" {
		return ContentRecord{}, fmt.Errorf("missing id")
	}
	name := jsonString(meta, "name")
	if name == "" {
		return ContentRecord{}, fmt.Errorf("missing name for %s", id)
	}

	rec := ContentRecord{
		Id:          id,
		Name:        name,
		Poster:      jsonString(meta, "poster"),
		Background:  jsonString(meta, "background"),
		Description: jsonString(meta, "description"),
		Year:        jsonString(meta, "year"),
		Rating:      jsonString(meta, "imdbRating"),
		Genre:       jsonStringSlice(meta, "genre"),
		Kind:        kind,
		Director:    jsonStringSlice(meta, "director"),
		Cast:        jsonStringSlice(meta, "cast"),
		Runtime:     jsonString(meta, "runtime"),
		Country:     jsonString(meta, "country"),
		Language:    jsonString(meta, "language"),
	}

	switch kind {
	case KindSeries:
		rec.Seasons = jsonInt(meta, "seasons")
		rec.Episodes = jsonInt(meta, "episodes")
		rec.Status = jsonString(meta, "status")
		rec.Network = jsonString(meta, "network")
	case KindAnime:
		rec.Seasons = jsonInt(meta, "seasons")
		rec.Episodes = jsonInt(meta, "episodes")
		rec.Status = jsonString(meta, "status")
		rec.Studio = jsonString(meta, "studio")
		rec.MalRating = jsonString(meta, "malRating")
		rec.AnimeType = jsonString(meta, "animeType")
	}

	return rec, nil
}

// Providers are inconsistent about field types, so optional fields are pulled
// out defensively: wrong type reads the same as absent.

func jsonString(meta map[string]interface{}, key string) string {
	if s, ok := meta[key].(string); ok {
		return s
	}
	return ""
}

func jsonStringSlice(meta map[string]interface{}, key string) []string {
	arr, ok := meta[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, v := range arr {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func jsonInt(meta map[string]interface{}, key string) int {
	if f, ok := meta[key].(float64); ok {
		return int(f)
	}
	return 0
}
