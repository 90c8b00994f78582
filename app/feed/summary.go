package feed

import (
	"time"

	"github.com/Semior001/politicalfeed/app/remote"
)

// Summary is an article prepared for display in the feed.
type Summary struct {
	ID       int
	Title    string
	Excerpt  string
	ImageURL string
	Category string
	Date     string
}

const (
	rawDateLayout     = "2006-01-02T15:04:05"
	displayDateLayout = "January 02, 2006"
)

// Summarize converts the raw article into the feed entry.
func Summarize(a remote.Article, imageURL func(id int) string) Summary {
	return Summary{
		ID:       a.ID,
		Title:    a.Title,
		Excerpt:  a.Summary,
		ImageURL: imageURL(a.ID),
		Category: a.Category,
		Date:     FormatDate(a.Date),
	}
}

// FormatDate reformats the backend date for display. Fractional seconds and
// zone suffix are ignored, unparsable dates are returned as is.
func FormatDate(s string) string {
	raw := s
	if len(raw) > len(rawDateLayout) {
		raw = raw[:len(rawDateLayout)]
	}

	t, err := time.Parse(rawDateLayout, raw)
	if err != nil {
		return s
	}
	return t.Format(displayDateLayout)
}
