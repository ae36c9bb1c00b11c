package content

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"
)

//go:embed pages/*.md
var pagesFS embed.FS

// Page is the rendered content of one static page. Body is sanitized HTML.
type Page struct {
	Key         string
	Title       string
	Summary     string
	Hero        Hero
	Body        string
	Highlights  []Highlight
	ShowDemoCTA bool
}

// Hero is the banner at the top of a page
type Hero struct {
	Eyebrow  string
	Headline string
	Subhead  string
}

// Highlight is a short feature card
type Highlight struct {
	Title       string
	Description string
	Icon        string
}

type frontMatter struct {
	Title   string `yaml:"title"`
	Summary string `yaml:"summary"`
	Hero    struct {
		Eyebrow  string `yaml:"eyebrow"`
		Headline string `yaml:"headline"`
		Subhead  string `yaml:"subhead"`
	} `yaml:"hero"`
	Highlights []struct {
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
		Icon        string `yaml:"icon"`
	} `yaml:"highlights"`
	DemoCTA *bool `yaml:"demo_cta"`
}

// Library holds every page, keyed by file name without extension
type Library struct {
	pages map[string]Page
}

var (
	markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))
	policy   = bluemonday.UGCPolicy()
)

// Load parses all embedded pages
func Load() (*Library, error) {
	return LoadFS(pagesFS, "pages")
}

// LoadFS parses every .md file in dir of fsys
func LoadFS(fsys fs.FS, dir string) (*Library, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read content dir: %w", err)
	}

	lib := &Library{pages: make(map[string]Page, len(entries))}
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".md" {
			continue
		}
		raw, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", entry.Name(), err)
		}
		key := strings.TrimSuffix(entry.Name(), ".md")
		page, err := Parse(key, raw)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", entry.Name(), err)
		}
		lib.pages[key] = page
	}
	return lib, nil
}

// Page returns the page stored under key
func (l *Library) Page(key string) (Page, bool) {
	p, ok := l.pages[key]
	return p, ok
}

// Parse renders a markdown document with a YAML front matter block
func Parse(key string, raw []byte) (Page, error) {
	meta, body, err := splitFrontMatter(raw)
	if err != nil {
		return Page{}, err
	}

	var fm frontMatter
	if len(meta) > 0 {
		if err := yaml.Unmarshal(meta, &fm); err != nil {
			return Page{}, fmt.Errorf("front matter: %w", err)
		}
	}
	if fm.Title == "" {
		return Page{}, errors.New("front matter: title is required")
	}

	var buf bytes.Buffer
	if err := markdown.Convert(body, &buf); err != nil {
		return Page{}, fmt.Errorf("markdown: %w", err)
	}

	page := Page{
		Key:     key,
		Title:   fm.Title,
		Summary: fm.Summary,
		Hero: Hero{
			Eyebrow:  fm.Hero.Eyebrow,
			Headline: fm.Hero.Headline,
			Subhead:  fm.Hero.Subhead,
		},
		Body:        string(policy.SanitizeBytes(buf.Bytes())),
		ShowDemoCTA: fm.DemoCTA == nil || *fm.DemoCTA,
	}
	if page.Hero.Headline == "" {
		page.Hero.Headline = fm.Title
	}
	for _, h := range fm.Highlights {
		page.Highlights = append(page.Highlights, Highlight{Title: h.Title, Description: h.Description, Icon: h.Icon})
	}
	return page, nil
}

func splitFrontMatter(raw []byte) (meta, body []byte, err error) {
	raw = bytes.ReplaceAll(raw, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(raw, []byte("---\n")) {
		return nil, raw, nil
	}
	rest := raw[len("---\n"):]
	end := bytes.Index(rest, []byte("\n---\n"))
	if end < 0 {
		if bytes.HasSuffix(rest, []byte("\n---")) {
			return rest[:len(rest)-len("\n---")], nil, nil
		}
		return nil, nil, errors.New("front matter is not terminated")
	}
	return rest[:end], rest[end+len("\n---\n"):], nil
}
