package serializer

import (
	"fmt"

	"github.com/MohamedSadiq102/context.Orion-LD/vocabulary"
)

// HeaderWriter receives the @context references a plain JSON response must
// carry in Link headers. An empty url marks a context that has no URL yet
// (an inline context awaiting server-side publishing).
type HeaderWriter interface {
	AddContextLink(url string)
}

// LinkHeaders collects context links, dropping duplicates.
type LinkHeaders struct {
	urls    []string
	seen    map[string]bool
	pending int
}

var _ HeaderWriter = (*LinkHeaders)(nil)

// AddContextLink implements HeaderWriter.
func (h *LinkHeaders) AddContextLink(url string) {
	if url == "" {
		h.pending++
		return
	}
	if h.seen == nil {
		h.seen = make(map[string]bool)
	}
	if h.seen[url] {
		return
	}
	h.seen[url] = true
	h.urls = append(h.urls, url)
}

// URLs returns the collected context URLs in order.
func (h *LinkHeaders) URLs() []string {
	out := make([]string, len(h.urls))
	copy(out, h.urls)
	return out
}

// Pending returns how many placeholder links were added.
func (h *LinkHeaders) Pending() int { return h.pending }

// Values returns one Link header value per URL.
func (h *LinkHeaders) Values() []string {
	out := make([]string, 0, len(h.urls))
	for _, u := range h.urls {
		out = append(out, FormatLink(u))
	}
	return out
}

// FormatLink formats a JSON-LD context Link header value.
func FormatLink(url string) string {
	return fmt.Sprintf(`<%s>; rel="%s"; type="%s"`, url, vocabulary.JSONLDContextRel, vocabulary.MimeTypeJSONLD)
}

type discardHeaders struct{}

func (discardHeaders) AddContextLink(string) {}
