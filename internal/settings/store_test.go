package settings_test

import (
	"context"
	"testing"
	"time"

	"switchyard/internal/overlay"
	"switchyard/internal/testsupport"
)

func TestOverlayDefaultsWhenEmpty(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))

	got := store.Overlay(context.Background())
	want := overlay.DefaultSettings()
	if got.Fullscreen.Mode != want.Fullscreen.Mode || got.Banner.Show {
		t.Fatalf("empty store returned %+v, want defaults", got)
	}
}

func TestOverlayRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	s := overlay.DefaultSettings()
	s.Banner.Show = true
	s.Banner.Text = "Back at :05"
	s.Countdown.Target = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.Bullets.Lists = []overlay.BulletList{{ID: "agenda", Title: "Agenda", Items: "intro\ndemo"}}
	s.Bullets.ActiveID = "agenda"

	if err := store.SaveOverlay(ctx, s); err != nil {
		t.Fatalf("SaveOverlay: %v", err)
	}

	got := store.Overlay(ctx)
	if !got.Banner.Show || got.Banner.Text != "Back at :05" {
		t.Fatalf("banner did not round-trip: %+v", got.Banner)
	}
	if !got.Countdown.Target.Equal(s.Countdown.Target) {
		t.Fatalf("countdown target = %v, want %v", got.Countdown.Target, s.Countdown.Target)
	}
	list, ok := got.Bullets.ActiveList()
	if !ok || list.Title != "Agenda" {
		t.Fatalf("bullet list did not round-trip: %+v", got.Bullets)
	}
}

func TestOverlaySurvivesReopen(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	ctx := context.Background()

	first := testsupport.MustOpenStore(t, cfg)
	s := overlay.DefaultSettings()
	s.Ticker.Show = true
	s.Ticker.Text = "breaking"
	if err := first.SaveOverlay(ctx, s); err != nil {
		t.Fatalf("SaveOverlay: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second := testsupport.MustOpenStore(t, cfg)
	got := second.Overlay(ctx)
	if !got.Ticker.Show || got.Ticker.Text != "breaking" {
		t.Fatalf("ticker lost across reopen: %+v", got.Ticker)
	}
}

func TestStageLayoutRoundTrip(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	if got := store.StageLayout(ctx, "solo"); got != "solo" {
		t.Fatalf("StageLayout fallback = %q, want solo", got)
	}
	if err := store.SaveStageLayout(ctx, "side-by-side"); err != nil {
		t.Fatalf("SaveStageLayout: %v", err)
	}
	if got := store.StageLayout(ctx, "solo"); got != "side-by-side" {
		t.Fatalf("StageLayout = %q, want side-by-side", got)
	}
}
