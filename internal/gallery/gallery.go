// Package gallery lays out the photo grid and drives the lightbox.
//
// Lightbox is the reference model for the lightbox in web/static/js/site.js:
// the server renders its open state for ?photo=N and the script mirrors its
// wrapping navigation and key handling.
package gallery

import (
	"html/template"
	"slices"
	"strings"

	"github.com/sam24eer/portfolio/internal/content"
)

const (
	// NarrowBreakpoint is the viewport width below which the compact grid is used.
	NarrowBreakpoint = 1180
	NarrowTiles      = 6
	WideTiles        = 9
)

var wideLayout = []string{
	"col-start-1 col-span-2 row-start-1 row-span-2",
	"col-start-3 col-span-1 row-start-1 row-span-2",
	"col-start-4 col-span-1 row-start-1 row-span-1",
	"col-start-5 col-span-1 row-start-1 row-span-2",
	"col-start-1 col-span-1 row-start-3 row-span-1",
	"col-start-2 col-span-1 row-start-3 row-span-1",
	"col-start-3 col-span-2 row-start-3 row-span-1",
	"col-start-4 col-span-1 row-start-2 row-span-1",
	"col-start-5 col-span-1 row-start-3 row-span-1",
}

var narrowLayout = []string{
	"col-start-1 col-span-2 row-start-1 row-span-2",
	"col-start-3 col-span-1 row-start-1 row-span-1",
	"col-start-3 col-span-1 row-start-2 row-span-1",
	"col-start-1 col-span-1 row-start-3 row-span-1",
	"col-start-2 col-span-1 row-start-3 row-span-1",
	"col-start-3 col-span-1 row-start-3 row-span-1",
}

// ThumbSrc maps an original photo path to its grid thumbnail.
func ThumbSrc(src string) string {
	return strings.Replace(strings.Replace(src, "/photography/", "/photography/thumbs/", 1), ".jpg", ".webp", 1)
}

// DisplaySrc maps an original photo path to its lightbox rendition.
func DisplaySrc(src string) string {
	return strings.Replace(strings.Replace(src, "/photography/", "/photography/display/", 1), ".jpg", ".webp", 1)
}

// Placeholder is the generated image a photo ends at once its thumbnail and
// original have both failed.
func Placeholder(p content.Photo) content.Placeholder {
	return content.Placeholder{Width: p.Width, Height: p.Height, Title: "Photography", Subtitle: p.Caption}
}

// Tile is one visible grid cell. More is the "+N" count shown on the last
// visible tile, zero on the others.
type Tile struct {
	Index       int
	Photo       content.Photo
	Thumb       string
	Placeholder template.URL
	Class       string
	More        int
}

// Slide is a photo in the shape the browser lightbox reads.
type Slide struct {
	Src         string       `json:"src"`
	Display     string       `json:"display"`
	Alt         string       `json:"alt"`
	Caption     string       `json:"caption"`
	Placeholder template.URL `json:"placeholder"`
}

func Slides(photos []content.Photo) []Slide {
	slides := make([]Slide, len(photos))
	for i, p := range photos {
		slides[i] = Slide{
			Src:         p.Src,
			Display:     DisplaySrc(p.Src),
			Alt:         p.Alt,
			Caption:     p.Caption,
			Placeholder: Placeholder(p).DataURI(),
		}
	}
	return slides
}

// Grid is the visible subset of the photos for a viewport width.
type Grid struct {
	Narrow bool
	Tiles  []Tile
	Hidden int
}

func IsNarrow(viewportWidth int) bool {
	return viewportWidth > 0 && viewportWidth < NarrowBreakpoint
}

// Layout computes the grid. A non-positive width is treated as wide.
func Layout(photos []content.Photo, viewportWidth int) Grid {
	narrow := IsNarrow(viewportWidth)
	limit, classes := WideTiles, wideLayout
	if narrow {
		limit, classes = NarrowTiles, narrowLayout
	}
	visible := min(limit, len(photos))

	g := Grid{Narrow: narrow, Hidden: len(photos) - visible}
	for i := 0; i < visible; i++ {
		t := Tile{
			Index:       i,
			Photo:       photos[i],
			Thumb:       ThumbSrc(photos[i].Src),
			Placeholder: Placeholder(photos[i]).DataURI(),
		}
		if i < len(classes) {
			t.Class = classes[i]
		}
		if i == visible-1 {
			t.More = g.Hidden
		}
		g.Tiles = append(g.Tiles, t)
	}
	return g
}

// Lightbox tracks the enlarged photo. Navigation wraps in both directions.
type Lightbox struct {
	count  int
	active int
	open   bool
}

func NewLightbox(count int) *Lightbox {
	return &Lightbox{count: count}
}

// Active returns the open index, if any.
func (l *Lightbox) Active() (int, bool) {
	return l.active, l.open
}

// Open shows photo i. Out-of-range indexes are ignored.
func (l *Lightbox) Open(i int) bool {
	if i < 0 || i >= l.count {
		return false
	}
	l.active, l.open = i, true
	return true
}

func (l *Lightbox) Close() {
	l.active, l.open = 0, false
}

func (l *Lightbox) Next() (int, bool) {
	if !l.open {
		return 0, false
	}
	l.active = Wrap(l.active+1, l.count)
	return l.active, true
}

func (l *Lightbox) Prev() (int, bool) {
	if !l.open {
		return 0, false
	}
	l.active = Wrap(l.active-1, l.count)
	return l.active, true
}

// HandleKey applies a keyboard shortcut and reports whether it was consumed.
func (l *Lightbox) HandleKey(key string) bool {
	if !l.open {
		return false
	}
	switch key {
	case "Escape":
		l.Close()
	case "ArrowLeft":
		l.Prev()
	case "ArrowRight":
		l.Next()
	default:
		return false
	}
	return true
}

// Neighbors returns the circular previous and next indexes of i.
func Neighbors(i, count int) (prev, next int) {
	return Wrap(i-1, count), Wrap(i+1, count)
}

// Prefetch lists the display sources to warm for the open photo: the photo
// itself, then its previous and next neighbours.
func (l *Lightbox) Prefetch(photos []content.Photo) []string {
	if !l.open || len(photos) == 0 {
		return nil
	}
	prev, next := Neighbors(l.active, len(photos))
	srcs := []string{DisplaySrc(photos[l.active].Src)}
	for _, i := range []int{prev, next} {
		s := DisplaySrc(photos[i].Src)
		if !slices.Contains(srcs, s) {
			srcs = append(srcs, s)
		}
	}
	return srcs
}

// Wrap maps i into [0, count).
func Wrap(i, count int) int {
	if count <= 0 {
		return 0
	}
	return ((i % count) + count) % count
}
