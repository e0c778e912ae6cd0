// Package content holds the immutable portfolio data every section renders from.
package content

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"os"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"gopkg.in/yaml.v3"
)

//go:embed site.yaml
var defaultSite []byte

// Meta is the document-level metadata used for <head>.
type Meta struct {
	BaseURL       string   `yaml:"base_url"`
	Title         string   `yaml:"title"`
	Description   string   `yaml:"description"`
	OGDescription string   `yaml:"og_description"`
	Keywords      []string `yaml:"keywords"`
}

type Hero struct {
	Name        string     `yaml:"name"`
	Headline    []string   `yaml:"headline"`
	Tagline     string     `yaml:"tagline"`
	Badge       string     `yaml:"badge"`
	BadgeDetail string     `yaml:"badge_detail"`
	Portrait    ImageChain `yaml:"portrait"`
}

type About struct {
	Eyebrow    string     `yaml:"eyebrow"`
	Title      string     `yaml:"title"`
	Subtitle   string     `yaml:"subtitle"`
	Portrait   ImageChain `yaml:"portrait"`
	Highlights []string   `yaml:"highlights"`
}

// Layer is one tier of the case-study architecture. Details is markdown.
type Layer struct {
	Name        string        `yaml:"name"`
	Details     string        `yaml:"details"`
	DetailsHTML template.HTML `yaml:"-"`
}

type Persona struct {
	Title string `yaml:"title"`
	Need  string `yaml:"need"`
}

// CaseStudy is the single detailed project writeup.
type CaseStudy struct {
	Title       string        `yaml:"title"`
	Problem     string        `yaml:"problem"`
	ProblemHTML template.HTML `yaml:"-"`
	Layers      []Layer       `yaml:"layers"`
	Personas    []Persona     `yaml:"personas"`
	Metrics     []string      `yaml:"metrics"`
	Workflows   []string      `yaml:"workflows"`
	Incidents   []string      `yaml:"incidents"`
	Releases    []string      `yaml:"releases"`
	Stack       []string      `yaml:"stack"`
}

type Project struct {
	Title   string   `yaml:"title"`
	Summary string   `yaml:"summary"`
	Details []string `yaml:"details"`
	Stack   []string `yaml:"stack"`
}

type Role struct {
	Role    string   `yaml:"role"`
	Org     string   `yaml:"org"`
	Period  string   `yaml:"period"`
	Bullets []string `yaml:"bullets"`
}

type SkillGroup struct {
	Label string   `yaml:"label"`
	Items []string `yaml:"items"`
}

// Photo is a gallery entry. Its index in Site.Photos defines adjacency.
type Photo struct {
	Src     string `yaml:"src"`
	Alt     string `yaml:"alt"`
	Caption string `yaml:"caption"`
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
}

type Contact struct {
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
	Pitch    string `yaml:"pitch"`
}

type Link struct {
	Title string `yaml:"title"`
	Href  string `yaml:"href"`
}

// Site is the whole content store.
type Site struct {
	Meta       Meta         `yaml:"meta"`
	Hero       Hero         `yaml:"hero"`
	About      About        `yaml:"about"`
	CaseStudy  CaseStudy    `yaml:"case_study"`
	Projects   []Project    `yaml:"projects"`
	Experience []Role       `yaml:"experience"`
	Skills     []SkillGroup `yaml:"skills"`
	Photos     []Photo      `yaml:"photos"`
	Contact    Contact      `yaml:"contact"`
	Socials    []Link       `yaml:"socials"`
}

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
)

// Default returns the content compiled into the binary.
func Default() (*Site, error) {
	return Parse(defaultSite)
}

// LoadFile parses a content file from disk.
func LoadFile(path string) (*Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading content file %s: %w", path, err)
	}
	site, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("content file %s: %w", path, err)
	}
	return site, nil
}

// Parse decodes a YAML content document and renders its markdown fields.
func Parse(data []byte) (*Site, error) {
	var site Site
	if err := yaml.Unmarshal(data, &site); err != nil {
		return nil, fmt.Errorf("decoding content: %w", err)
	}
	if err := site.validate(); err != nil {
		return nil, err
	}

	var err error
	if site.CaseStudy.ProblemHTML, err = Markdown(site.CaseStudy.Problem); err != nil {
		return nil, fmt.Errorf("rendering case study problem: %w", err)
	}
	for i := range site.CaseStudy.Layers {
		l := &site.CaseStudy.Layers[i]
		if l.DetailsHTML, err = Markdown(l.Details); err != nil {
			return nil, fmt.Errorf("rendering layer %q: %w", l.Name, err)
		}
	}
	return &site, nil
}

// Markdown renders a markdown fragment to HTML.
func Markdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func (s *Site) validate() error {
	if s.Hero.Name == "" {
		return fmt.Errorf("hero.name is required")
	}
	for i, p := range s.Photos {
		if p.Src == "" {
			return fmt.Errorf("photos[%d]: src is required", i)
		}
		if p.Width <= 0 || p.Height <= 0 {
			return fmt.Errorf("photos[%d]: width and height must be positive", i)
		}
	}
	return nil
}
