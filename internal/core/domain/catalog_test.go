package domain

import (
	"testing"
	"time"
)

func TestCatalogPlayableSkipsNonVideoResults(t *testing.T) {
	c := Catalog{
		{ID: "a", Kind: KindVideo},
		{Kind: KindChannel, Title: "the channel"},
		{ID: "b", Kind: KindVideo},
		{Kind: KindPlaylist},
	}

	got := c.Playable()
	if len(got) != 2 {
		t.Fatalf("expected 2 playable videos, got %d", len(got))
	}
	if got[0].ID != "a" || got[1].ID != "b" {
		t.Fatalf("expected upstream order [a b], got [%s %s]", got[0].ID, got[1].ID)
	}
}

func TestCatalogFind(t *testing.T) {
	c := Catalog{{ID: "a", Title: "A"}, {Kind: KindChannel}}

	if v, ok := c.Find("a"); !ok || v.Title != "A" {
		t.Fatalf("expected to find a, got %+v %v", v, ok)
	}
	if _, ok := c.Find(""); ok {
		t.Fatal("empty id must never match a channel result")
	}
	if _, ok := c.Find("zzz"); ok {
		t.Fatal("unexpected match for unknown id")
	}
}

func TestParsePlayerState(t *testing.T) {
	s, err := ParsePlayerState(0)
	if err != nil || s != PlayerEnded {
		t.Fatalf("expected ended, got %v %v", s, err)
	}
	if _, err := ParsePlayerState(4); err == nil {
		t.Fatal("expected error for unknown code 4")
	}
	if PlayerCued.String() != "cued" {
		t.Fatalf("unexpected string %q", PlayerCued.String())
	}
}

func TestSessionExpired(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	if (Session{}).Expired(now) {
		t.Fatal("session without expiry must not be expired")
	}
	if !(Session{ExpiresAt: now}).Expired(now) {
		t.Fatal("session expiring now must be expired")
	}
	if (Session{ExpiresAt: now.Add(time.Minute)}).Expired(now) {
		t.Fatal("future expiry must not be expired")
	}
}
