package domain

import "testing"

func TestResolveAuthor(t *testing.T) {
	name := "Alice Liddell"
	blank := "   "

	if got := ResolveAuthor(&name, "alice"); got != "Alice Liddell" {
		t.Fatalf("expected display name, got %q", got)
	}
	if got := ResolveAuthor(nil, "alice"); got != "alice" {
		t.Fatalf("expected username fallback, got %q", got)
	}
	if got := ResolveAuthor(&blank, "alice"); got != "alice" {
		t.Fatalf("expected username fallback for blank name, got %q", got)
	}
}

func TestArticle_ToSummary(t *testing.T) {
	a := Article{ID: 3, Headline: "H", Body: "long body", Summary: "short", Author: "bob"}
	s := a.ToSummary()
	if s.ID != 3 || s.Headline != "H" || s.Summary != "short" || s.Author != "bob" {
		t.Fatalf("unexpected summary: %+v", s)
	}
}
