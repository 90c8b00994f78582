package draft

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/go-shiori/go-readability"
)

// Page is the readable part of a web page.
type Page struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	Excerpt  string `json:"excerpt"`
	Content  string `json:"content"`
	Author   string `json:"author"`
	ImageURL string `json:"image_url"`
}

// Extractor extracts the readable part of an HTML page.
type Extractor struct{}

var spaces = regexp.MustCompile(`\s+`)

// Extract extracts the page from an HTML document.
func (e Extractor) Extract(rd io.Reader) (Page, error) {
	doc, err := readability.FromReader(rd, nil)
	if err != nil {
		return Page{}, fmt.Errorf("parse html: %w", err)
	}

	return Page{
		Title:    strings.TrimSpace(doc.Title),
		Excerpt:  e.sanitize(doc.Excerpt),
		Content:  e.sanitize(doc.TextContent),
		Author:   doc.Byline,
		ImageURL: doc.Image,
	}, nil
}

func (e Extractor) sanitize(s string) string {
	// nbsp
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.TrimSpace(spaces.ReplaceAllString(s, " "))
}
