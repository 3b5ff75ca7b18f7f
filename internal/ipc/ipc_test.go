package ipc_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"switchyard/internal/ipc"
	"switchyard/internal/logging"
	"switchyard/internal/session"
	"switchyard/internal/testsupport"
)

func startServer(t *testing.T) (*ipc.Client, *session.Session) {
	t.Helper()
	cfg := testsupport.NewConfig(t, testsupport.WithSim(1, 1, true))

	sess, err := session.New(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	if err := sess.Start(ctx); err != nil {
		t.Fatalf("session.Start: %v", err)
	}
	t.Cleanup(sess.Stop)

	server, err := ipc.NewServer(ctx, cfg.SocketPath(), sess, cancel, logging.NewNop())
	if err != nil {
		t.Fatalf("ipc.NewServer: %v", err)
	}
	server.Serve()
	t.Cleanup(server.Close)

	client, err := ipc.Dial(cfg.SocketPath())
	if err != nil {
		t.Fatalf("ipc.Dial: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client, sess
}

func TestStatusRoundTrip(t *testing.T) {
	client, _ := startServer(t)

	status, err := client.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if !status.Running {
		t.Fatal("status reports not running")
	}
	if status.Sources != 2 {
		t.Fatalf("status.Sources = %d, want 2", status.Sources)
	}
}

func TestSourcesAndStageControl(t *testing.T) {
	client, _ := startServer(t)

	sources, err := client.Sources()
	if err != nil {
		t.Fatalf("Sources: %v", err)
	}
	if len(sources.Sources) != 2 {
		t.Fatalf("got %d sources, want 2", len(sources.Sources))
	}

	staged, err := client.SetStage([]string{sources.Sources[0].ID})
	if err != nil {
		t.Fatalf("SetStage: %v", err)
	}
	if len(staged.Staged) != 1 || staged.Staged[0] != sources.Sources[0].ID {
		t.Fatalf("staged = %v, want just %s", staged.Staged, sources.Sources[0].ID)
	}

	if _, err := client.SetStage([]string{"ghost"}); err == nil {
		t.Fatal("SetStage accepted an unknown id")
	}
}

func TestLayoutControl(t *testing.T) {
	client, _ := startServer(t)

	resp, err := client.SetLayout("pip")
	if err != nil {
		t.Fatalf("SetLayout: %v", err)
	}
	if resp.Layout != "pip" {
		t.Fatalf("layout = %q, want pip", resp.Layout)
	}
	if _, err := client.SetLayout("diagonal"); err == nil {
		t.Fatal("SetLayout accepted an unknown mode")
	}
}

func TestOverlayToggleRoundTrip(t *testing.T) {
	client, _ := startServer(t)

	if _, err := client.OverlayToggle("banner", true); err != nil {
		t.Fatalf("OverlayToggle: %v", err)
	}
	got, err := client.OverlayGet()
	if err != nil {
		t.Fatalf("OverlayGet: %v", err)
	}
	if !got.Settings.Banner.Show {
		t.Fatal("banner toggle did not stick")
	}

	if _, err := client.OverlayToggle("marquee", true); err == nil {
		t.Fatal("OverlayToggle accepted an unknown element")
	}
}

func TestMuteOverIPC(t *testing.T) {
	client, _ := startServer(t)

	sources, err := client.Sources()
	if err != nil {
		t.Fatalf("Sources: %v", err)
	}
	var withAudio string
	for _, src := range sources.Sources {
		if src.HasAudio {
			withAudio = src.ID
			break
		}
	}
	if withAudio == "" {
		t.Fatal("no audio-bearing source in sim")
	}

	if _, err := client.SetMuted(withAudio, true); err != nil {
		t.Fatalf("SetMuted: %v", err)
	}
	sources, err = client.Sources()
	if err != nil {
		t.Fatalf("Sources: %v", err)
	}
	for _, src := range sources.Sources {
		if src.ID == withAudio && !src.Muted {
			t.Fatal("mute did not stick")
		}
	}
}

func TestGainOverIPC(t *testing.T) {
	client, sess := startServer(t)

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) && len(sess.Taps()) == 0 {
		time.Sleep(10 * time.Millisecond)
	}

	sources, err := client.Sources()
	if err != nil {
		t.Fatalf("Sources: %v", err)
	}
	var staged string
	for _, src := range sources.Sources {
		if src.Staged && src.HasAudio {
			staged = src.ID
			break
		}
	}
	if staged == "" {
		t.Fatal("no staged audio-bearing source in sim")
	}

	if _, err := client.SetGain(staged, 0.25); err != nil {
		t.Fatalf("SetGain: %v", err)
	}
	taps, err := client.Taps()
	if err != nil {
		t.Fatalf("Taps: %v", err)
	}
	if len(taps.Taps) != 1 || taps.Taps[0].Gain != 0.25 {
		t.Fatalf("taps = %+v, want one tap at gain 0.25", taps.Taps)
	}

	if _, err := client.SetGain("ghost", 1); err == nil {
		t.Fatal("SetGain accepted an unknown source id")
	}
}

func TestSnapshotOverIPC(t *testing.T) {
	client, sess := startServer(t)

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) && sess.Status().Ticks < 2 {
		time.Sleep(10 * time.Millisecond)
	}

	path := filepath.Join(t.TempDir(), "frame.png")
	resp, err := client.Snapshot(path)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if resp.Path != path {
		t.Fatalf("snapshot path = %q, want %q", resp.Path, path)
	}
}
