package content

import (
	"encoding/base64"
	"fmt"
	"html"
	"html/template"
	"strings"
)

// Placeholder describes the inline SVG shown when no image source loads.
type Placeholder struct {
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
}

// ImageChain is an ordered list of image sources ending in a generated placeholder.
type ImageChain struct {
	Alt         string      `yaml:"alt"`
	Candidates  []string    `yaml:"candidates"`
	Placeholder Placeholder `yaml:"placeholder"`
}

// Resolve picks the first candidate for which exists reports true. The
// candidates after it are returned as browser-side fallbacks. With no usable
// candidate the placeholder is returned and there is nothing left to fall
// back to.
func (c ImageChain) Resolve(exists func(src string) bool) (template.URL, []string) {
	for i, src := range c.Candidates {
		if exists == nil || exists(src) {
			rest := make([]string, len(c.Candidates[i+1:]))
			copy(rest, c.Candidates[i+1:])
			return template.URL(src), rest
		}
	}
	return c.Placeholder.DataURI(), nil
}

// DataURI renders the placeholder as a base64 SVG data URI.
func (p Placeholder) DataURI() template.URL {
	w, h := p.Width, p.Height
	if w <= 0 {
		w = 640
	}
	if h <= 0 {
		h = 860
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`, w, h, w, h)
	b.WriteString(`<defs><linearGradient id="g" x1="0" y1="0" x2="1" y2="1">`)
	b.WriteString(`<stop offset="0%" stop-color="#111C2A"/><stop offset="100%" stop-color="#070C12"/>`)
	b.WriteString(`</linearGradient></defs>`)
	fmt.Fprintf(&b, `<rect width="%d" height="%d" fill="url(#g)"/>`, w, h)
	fmt.Fprintf(&b, `<circle cx="%d" cy="%d" r="%d" fill="#1AC6FF" fill-opacity="0.18"/>`, w*72/100, h*22/100, w/4)
	fmt.Fprintf(&b, `<circle cx="%d" cy="%d" r="%d" fill="#F59E0B" fill-opacity="0.15"/>`, w*20/100, h*80/100, w*3/10)
	if p.Title != "" {
		fmt.Fprintf(&b, `<text x="48" y="%d" fill="#ECF2F8" font-family="Arial" font-size="36">%s</text>`, h-100, html.EscapeString(p.Title))
	}
	if p.Subtitle != "" {
		fmt.Fprintf(&b, `<text x="48" y="%d" fill="#91A2B7" font-family="Arial" font-size="20">%s</text>`, h-58, html.EscapeString(p.Subtitle))
	}
	b.WriteString(`</svg>`)

	return template.URL("data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(b.String())))
}
