package internal

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// Static tracker hints embedded in every synthesized magnet URI.
var magnetTrackers = []string{
	"udp%3A%2F%2Ftracker.opentrackr.org%3A1337%2Fannounce",
	"udp%3A%2F%2Fopen.demonii.com%3A1337%2Fannounce",
}

// BuildMagnet synthesizes a magnet URI for an info-hash. fileIdx is the
// provider's file index; anything above zero is passed along as the
// zero-based `so` selection parameter.
func BuildMagnet(infoHash string, fileIdx int) string {
	var b strings.Builder
	b.WriteString("magnet:?xt=urn:btih:")
	b.WriteString(infoHash)
	for _, tr := range magnetTrackers {
		b.WriteString("&tr=")
		b.WriteString(tr)
	}
	if fileIdx > 0 {
		fmt.Fprintf(&b, "&so=%d", fileIdx-1)
	}
	return b.String()
}

// ParseMagnet extracts the info-hash and optional zero-based file index from
// a magnet URI. The hash must be 32 (base32) or 40 (hex) characters;
// fileIndex is -1 when no selection parameter is present.
func ParseMagnet(magnetURI string) (infoHash string, fileIndex int, err error) {
	fileIndex = -1

	idx := strings.Index(magnetURI, "btih:")
	if idx < 0 {
		return "", -1, fmt.Errorf("%w: no btih hash in %q", ErrInvalidMagnet, magnetURI)
	}
	infoHash = magnetURI[idx+len("btih:"):]
	if amp := strings.IndexByte(infoHash, '&'); amp >= 0 {
		infoHash = infoHash[:amp]
	}
	if len(infoHash) != 32 && len(infoHash) != 40 {
		return "", -1, fmt.Errorf("%w: hash length %d", ErrInvalidMagnet, len(infoHash))
	}

	for _, param := range strings.Split(magnetURI, "&") {
		if val, ok := strings.CutPrefix(param, "so="); ok {
			if n, convErr := strconv.Atoi(val); convErr == nil && n >= 0 {
				fileIndex = n
			}
			break
		}
	}

	return infoHash, fileIndex, nil
}

// ScrapeMagnetURI fetches a torrent detail page and pulls the first magnet
// link out of it, for sources that hand back a page URL instead of a magnet.
func ScrapeMagnetURI(pageURL string) (string, error) {
	resp, err := http.Get(pageURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch torrent page: %w", err)
	}
	defer resp.Body.Close()

	tokenizer := html.NewTokenizer(resp.Body)
	for {
		tokenType := tokenizer.Next()
		switch tokenType {
		case html.ErrorToken:
			return "", fmt.Errorf("magnet link not found")
		case html.StartTagToken, html.SelfClosingTagToken:
			token := tokenizer.Token()
			if token.Data == "a" {
				for _, attr := range token.Attr {
					if attr.Key == "href" && strings.HasPrefix(attr.Val, "magnet:?xt=") {
						return attr.Val, nil
					}
				}
			}
		}
	}
}
