package source

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/pilebones/go-udev/netlink"

	"switchyard/internal/logging"
)

// HotplugEvent describes a camera device appearing or disappearing.
type HotplugEvent struct {
	Device string
	Added  bool
}

// HotplugWatcher listens for udev netlink events on video devices so the
// session can surface camera availability without polling /dev. Actual device
// capture stays outside the core; the watcher only reports add/remove.
type HotplugWatcher struct {
	logger  *slog.Logger
	prefix  string
	handler func(HotplugEvent)

	mu      sync.Mutex
	conn    *netlink.UEventConn
	quit    chan struct{}
	running bool
}

// NewHotplugWatcher creates a watcher for devices whose DEVNAME starts with
// prefix (typically /dev/video). The handler runs on the watcher goroutine
// and must not block.
func NewHotplugWatcher(logger *slog.Logger, prefix string, handler func(HotplugEvent)) *HotplugWatcher {
	return &HotplugWatcher{
		logger:  logging.NewComponentLogger(logger, "hotplug"),
		prefix:  strings.TrimSpace(prefix),
		handler: handler,
	}
}

// Start begins listening for udev events. Connection failures are non-fatal:
// sources can still be managed over IPC, so the watcher logs and stands down.
func (w *HotplugWatcher) Start(ctx context.Context) error {
	if w == nil {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	conn := new(netlink.UEventConn)
	if err := conn.Connect(netlink.UdevEvent); err != nil {
		w.logger.Warn("failed to connect to netlink socket; camera hotplug detection unavailable",
			logging.Error(err),
			logging.String(logging.FieldEvent, "netlink_connect_failed"),
		)
		return nil
	}

	w.conn = conn
	w.quit = make(chan struct{})
	w.running = true

	quit := w.quit
	go w.monitorLoop(ctx, quit)

	w.logger.Info("hotplug watcher started", logging.String("prefix", w.prefix))
	return nil
}

// Stop shuts down the watcher.
func (w *HotplugWatcher) Stop() {
	if w == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return
	}
	if w.quit != nil {
		close(w.quit)
		w.quit = nil
	}
	if w.conn != nil {
		_ = w.conn.Close()
		w.conn = nil
	}
	w.running = false
	w.logger.Info("hotplug watcher stopped")
}

// Running reports whether the watcher is active.
func (w *HotplugWatcher) Running() bool {
	if w == nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *HotplugWatcher) monitorLoop(ctx context.Context, quit <-chan struct{}) {
	queue := make(chan netlink.UEvent)
	errs := make(chan error)

	w.mu.Lock()
	conn := w.conn
	w.mu.Unlock()
	if conn == nil {
		return
	}

	monitorQuit := conn.Monitor(queue, errs, w.buildMatcher())
	for {
		select {
		case <-ctx.Done():
			close(monitorQuit)
			return
		case <-quit:
			close(monitorQuit)
			return
		case uevent := <-queue:
			w.handleEvent(uevent)
		case err := <-errs:
			w.logger.Warn("netlink monitor error",
				logging.Error(err),
				logging.String(logging.FieldEvent, "netlink_monitor_error"),
			)
		}
	}
}

func (w *HotplugWatcher) buildMatcher() netlink.Matcher {
	action := "add|remove"
	rules := &netlink.RuleDefinitions{}
	rules.AddRule(netlink.RuleDefinition{
		Action: &action,
		Env: map[string]string{
			"SUBSYSTEM": "video4linux",
		},
	})
	return rules
}

func (w *HotplugWatcher) handleEvent(uevent netlink.UEvent) {
	devname := strings.TrimSpace(uevent.Env["DEVNAME"])
	if devname == "" {
		return
	}
	if !strings.HasPrefix(devname, "/") {
		devname = "/dev/" + devname
	}
	if w.prefix != "" && !strings.HasPrefix(devname, w.prefix) {
		return
	}

	added := uevent.Action == netlink.ADD
	w.logger.Info("camera device event",
		logging.String("device", devname),
		logging.Bool("added", added),
	)
	if w.handler != nil {
		w.handler(HotplugEvent{Device: devname, Added: added})
	}
}
