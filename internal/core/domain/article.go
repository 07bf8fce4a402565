package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Article is a published article as served to the front end.
type Article struct {
	ID        int64     `json:"id"`
	Headline  string    `json:"headline"`
	CreatedAt time.Time `json:"created_at"`
	Body      string    `json:"body"`
	Summary   string    `json:"summary"`
	Author    string    `json:"author"`
	Image     *string   `json:"image,omitempty"`
}

// ArticleSummary is the listing projection of an Article: everything but the body.
type ArticleSummary struct {
	ID        int64     `json:"id"`
	Headline  string    `json:"headline"`
	CreatedAt time.Time `json:"created_at"`
	Summary   string    `json:"summary"`
	Author    string    `json:"author"`
	Image     *string   `json:"image,omitempty"`
}

// ToSummary projects a onto its listing form.
func (a Article) ToSummary() ArticleSummary {
	return ArticleSummary{
		ID:        a.ID,
		Headline:  a.Headline,
		CreatedAt: a.CreatedAt,
		Summary:   a.Summary,
		Author:    a.Author,
		Image:     a.Image,
	}
}

// InProgressArticleSummary describes unpublished work. Headline is nil
// until the draft has been titled.
type InProgressArticleSummary struct {
	ID        uuid.UUID `json:"id"`
	Headline  *string   `json:"headline"`
	CreatedAt time.Time `json:"created_at"`
}

// ResolveAuthor returns the name shown as an article's author: the display
// name when one is set, otherwise the username.
func ResolveAuthor(displayName *string, username string) string {
	if displayName != nil && strings.TrimSpace(*displayName) != "" {
		return *displayName
	}
	return username
}
