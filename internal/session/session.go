package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"switchyard/internal/assets"
	"switchyard/internal/audiograph"
	"switchyard/internal/compositor"
	"switchyard/internal/config"
	"switchyard/internal/layout"
	"switchyard/internal/logging"
	"switchyard/internal/metrics"
	"switchyard/internal/muxer"
	"switchyard/internal/overlay"
	"switchyard/internal/services"
	"switchyard/internal/settings"
	"switchyard/internal/source"
)

// Session owns the live production: the source registry, the compositor, the
// audio graph, and the single tick loop that drives them. One session runs
// per state directory, enforced with a file lock.
type Session struct {
	cfg    *config.Config
	logger *slog.Logger

	registry *source.Registry
	graph    *audiograph.Graph
	comp     *compositor.Compositor
	assets   *assets.Library
	store    *settings.Store
	sink     muxer.Muxer
	preview  *muxer.Preview
	met      *metrics.Metrics
	lock     *flock.Flock
	hotplug  *source.HotplugWatcher

	mu       sync.Mutex
	stage    compositor.Stage
	overlays overlay.Settings
	events   []source.HotplugEvent

	started time.Time
	ticks   atomic.Uint64
	cancel  context.CancelFunc
	done    chan struct{}
	running atomic.Bool
}

// New wires a session from configuration. Acquiring the render target, the
// mix bus, or the instance lock can fail; those errors abort startup.
func New(cfg *config.Config, logger *slog.Logger) (*Session, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	lock := flock.New(cfg.LockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire session lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another session already holds %s", cfg.LockPath())
	}

	store, err := settings.NewStore(cfg, logger)
	if err != nil {
		_ = lock.Unlock()
		return nil, err
	}

	lib := assets.NewLibrary(logger)
	met := metrics.New()
	lib.SetFailureHook(func(string) { met.AssetFailuresTotal.Inc() })

	overlayRenderer, err := overlay.NewRenderer(lib, logger)
	if err != nil {
		_ = store.Close()
		_ = lock.Unlock()
		return nil, err
	}

	comp, err := compositor.New(cfg.Video.Width, cfg.Video.Height, overlayRenderer, logger)
	if err != nil {
		_ = store.Close()
		_ = lock.Unlock()
		return nil, err
	}

	graph := audiograph.New(logger)
	if err := graph.EnsureBus(cfg.Audio.SampleRate, cfg.Audio.Channels); err != nil {
		_ = store.Close()
		_ = lock.Unlock()
		return nil, err
	}

	ctxLoad := context.Background()
	mode, err := layout.Parse(store.StageLayout(ctxLoad, cfg.Stage.DefaultLayout))
	if err != nil {
		mode = layout.ModeSolo
	}

	preview := muxer.NewPreview()
	s := &Session{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "session"),
		registry: source.NewRegistry(logger),
		graph:    graph,
		comp:     comp,
		assets:   lib,
		store:    store,
		sink:     preview,
		preview:  preview,
		met:      met,
		lock:     lock,
		stage:    compositor.Stage{Layout: mode},
		overlays: store.Overlay(ctxLoad),
	}

	s.registry.SetRemoveHook(graph.DisconnectSource)

	if cfg.Hotplug.Enabled {
		s.hotplug = source.NewHotplugWatcher(logger, cfg.Hotplug.DevicePrefix, s.recordHotplug)
	}
	return s, nil
}

// SetMuxer replaces the output sink before Start. Snapshots keep working
// only while the preview sink is attached.
func (s *Session) SetMuxer(m muxer.Muxer) {
	s.sink = m
	if p, ok := m.(*muxer.Preview); ok {
		s.preview = p
	} else {
		s.preview = nil
	}
}

// Start launches the tick loop and the supporting services, returning once
// they are running.
func (s *Session) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("session already started")
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	s.started = time.Now()

	if s.cfg.Simulate.Cameras > 0 || s.cfg.Simulate.Screens > 0 {
		ids := source.StartSim(runCtx, s.registry, source.SimOptions{
			Cameras:    s.cfg.Simulate.Cameras,
			Screens:    s.cfg.Simulate.Screens,
			Tone:       s.cfg.Simulate.Tone,
			Width:      s.cfg.Video.Width,
			Height:     s.cfg.Video.Height,
			FPS:        s.cfg.Video.FPS,
			SampleRate: s.cfg.Audio.SampleRate,
			Channels:   s.cfg.Audio.Channels,
		}, s.logger)
		s.autoStage(ids)
	}

	if s.hotplug != nil {
		if err := s.hotplug.Start(runCtx); err != nil {
			s.logger.Warn("hotplug watcher unavailable", logging.Error(err))
		}
	}
	if s.cfg.Metrics.Enabled {
		go s.met.Serve(runCtx, s.cfg.Metrics.Bind, s.logger)
	}

	go s.run(runCtx)
	s.logger.Info("session started",
		logging.Int("width", s.cfg.Video.Width),
		logging.Int("height", s.cfg.Video.Height),
		logging.Int("fps", s.cfg.Video.FPS),
		logging.String(logging.FieldLayout, string(s.stage.Layout)),
	)
	return nil
}

// autoStage fills empty stage slots with the first simulated sources so a
// demo session shows video immediately.
func (s *Session) autoStage(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.stage.Staged) > 0 {
		return
	}
	if len(ids) > 2 {
		ids = ids[:2]
	}
	s.stage.Staged = append([]string(nil), ids...)
}

// Stop halts the loop and releases every resource. Safe to call once.
func (s *Session) Stop() {
	if !s.running.CompareAndSwap(true, false) {
		return
	}
	s.cancel()
	<-s.done

	if s.hotplug != nil {
		s.hotplug.Stop()
	}
	s.graph.Close()
	if err := s.sink.Close(); err != nil {
		s.logger.Warn("closing output sink", logging.Error(err))
	}
	if err := s.store.Close(); err != nil {
		s.logger.Warn("closing settings store", logging.Error(err))
	}
	if err := s.lock.Unlock(); err != nil {
		s.logger.Warn("releasing session lock", logging.Error(err))
	}
	s.logger.Info("session stopped", logging.Duration("uptime", time.Since(s.started)))
}

func (s *Session) run(ctx context.Context) {
	defer close(s.done)

	fps := s.cfg.Video.FPS
	interval := time.Second / time.Duration(fps)
	quantum := s.cfg.Audio.SampleRate * s.cfg.Audio.Channels / fps
	audioBuf := make([]float32, quantum)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.tick(audioBuf); err != nil {
				s.logger.Error("fatal tick failure, stopping loop", logging.Error(err))
				return
			}
		}
	}
}

// tick renders one frame and mixes one audio quantum. Taps are reconciled
// against the staged ids, so only on-stage audio reaches the program mix.
// Only fatal resource failures escape; everything else degrades within the
// tick.
func (s *Session) tick(audioBuf []float32) error {
	sources := s.registry.List()

	s.mu.Lock()
	stage := compositor.Stage{
		Layout: s.stage.Layout,
		Staged: append([]string(nil), s.stage.Staged...),
	}
	overlaySnap := s.overlays
	s.mu.Unlock()

	if overlaySnap.Countdown.Show && !overlaySnap.Countdown.Target.IsZero() {
		overlaySnap.Countdown.Remaining = time.Until(overlaySnap.Countdown.Target)
	}

	start := time.Now()
	frame := s.comp.RenderFrame(compositor.Input{
		Sources: sources,
		Stage:   stage,
		Overlay: overlaySnap,
	})
	s.met.RenderDuration.Observe(time.Since(start).Seconds())
	s.met.FramesRendered.Inc()
	if len(stage.Staged) == 0 {
		s.met.FramesStandby.Inc()
	}

	staged := make([]*source.Source, 0, len(stage.Staged))
	for _, id := range stage.Staged {
		if src, ok := s.registry.Get(id); ok {
			staged = append(staged, src)
		}
	}
	s.graph.Reconcile(staged)
	s.graph.MixInto(audioBuf)

	s.met.ActiveSources.Set(float64(len(sources)))
	s.met.LiveTaps.Set(float64(len(s.graph.Taps())))

	if err := s.sink.WriteFrame(frame); err != nil {
		if services.IsFatal(err) {
			return err
		}
		s.logger.Warn("frame write failed", logging.Error(err))
	}
	if err := s.sink.WriteAudio(audioBuf); err != nil {
		if services.IsFatal(err) {
			return err
		}
		s.logger.Warn("audio write failed", logging.Error(err))
	}

	s.ticks.Add(1)
	return nil
}

func (s *Session) recordHotplug(ev source.HotplugEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	if len(s.events) > 16 {
		s.events = s.events[len(s.events)-16:]
	}
}
