package models

import (
	"strings"
	"sync"
)

// DefaultPhotoSize is used by PhotoURL when no size is given.
const DefaultPhotoSize = "square"

// flagCopyright is the flag text that marks suspected infringement.
const flagCopyright = "copyright infringement"

// longEdges is the long edge in pixels of each standard photo size.
var longEdges = map[string]int{
	"square":   75,
	"thumb":    100,
	"small":    240,
	"medium":   500,
	"large":    1024,
	"original": 2048,
}

// Dimensions is a width and height in pixels.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Flag is a moderation flag on a record.
type Flag struct {
	ID       int    `json:"id"`
	Flag     string `json:"flag"`
	Resolved bool   `json:"resolved"`
}

// Photo is an image attached to an observation or taxon.
type Photo struct {
	ID                 int         `json:"id"`
	URL                string      `json:"url"`
	Preview            string      `json:"preview"`
	ProcessingURL      string      `json:"processing_url"`
	Attribution        string      `json:"attribution"`
	LicenseCode        string      `json:"license_code"`
	OriginalDimensions *Dimensions `json:"original_dimensions"`
	Flags              []Flag      `json:"flags"`
	SquareURL          string      `json:"square_url"`
	ThumbURL           string      `json:"thumb_url"`
	SmallURL           string      `json:"small_url"`
	MediumURL          string      `json:"medium_url"`
	LargeURL           string      `json:"large_url"`
	OriginalURL        string      `json:"original_url"`

	// Extra holds fields without a struct field, such as other size URLs.
	Extra map[string]any `json:",remain"`

	mu     sync.Mutex
	cached map[string]string
}

// sizeURL returns the explicit "<size>_url" field, if any.
func (p *Photo) sizeURL(size string) string {
	switch size {
	case "square":
		return p.SquareURL
	case "thumb":
		return p.ThumbURL
	case "small":
		return p.SmallURL
	case "medium":
		return p.MediumURL
	case "large":
		return p.LargeURL
	case "original":
		return p.OriginalURL
	}
	if s, ok := p.Extra[size+"_url"].(string); ok {
		return s
	}
	return ""
}

// PhotoURL returns the URL of the photo at size ("square" when empty). An
// explicit "<size>_url" field wins. Otherwise the preview is used, then the
// url with "square" swapped for size, then the processing url with "large"
// swapped for size. Derived URLs are remembered per size. An empty string
// means no URL is known.
func (p *Photo) PhotoURL(size string) string {
	if size == "" {
		size = DefaultPhotoSize
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if u, ok := p.cached[size]; ok {
		return u
	}
	if u := p.sizeURL(size); u != "" {
		return u
	}

	var u string
	switch {
	case p.Preview != "":
		u = p.Preview
	case p.URL != "":
		u = strings.Replace(p.URL, "square", size, 1)
	case p.ProcessingURL != "":
		u = strings.Replace(p.ProcessingURL, "large", size, 1)
	default:
		return ""
	}

	if p.cached == nil {
		p.cached = make(map[string]string)
	}
	p.cached[size] = u
	return u
}

// FlaggedAsCopyrighted reports whether any unresolved flag claims copyright
// infringement.
func (p *Photo) FlaggedAsCopyrighted() bool {
	for _, f := range p.Flags {
		if !f.Resolved && f.Flag == flagCopyright {
			return true
		}
	}
	return false
}

// Dimensions returns the size of the photo scaled to size's long edge. It
// returns the original dimensions for "original", unknown sizes, or when
// no original dimensions are known, and nil when the original is smaller
// than the requested long edge.
func (p *Photo) Dimensions(size string) *Dimensions {
	edge, ok := longEdges[size]
	if !ok || size == "original" || p.OriginalDimensions == nil {
		return p.OriginalDimensions
	}

	w, h := p.OriginalDimensions.Width, p.OriginalDimensions.Height
	if max(w, h) < edge {
		return nil
	}
	if w < h {
		return &Dimensions{
			Width:  int(float64(edge) / float64(h) * float64(w)),
			Height: edge,
		}
	}
	return &Dimensions{
		Width:  edge,
		Height: int(float64(edge) / float64(w) * float64(h)),
	}
}
