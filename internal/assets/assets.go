package assets

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"switchyard/internal/logging"
)

// State tracks a handle's lifecycle.
type State int

const (
	StatePending State = iota
	StateReady
	StateFailed
)

// Handle is the pollable result of an asset resolution. Render code asks
// Ready every tick and silently skips handles that are not there yet; a
// failed decode simply never becomes ready.
type Handle struct {
	mu    sync.Mutex
	state State
	img   image.Image
	err   error
}

// Ready returns the decoded image when resolution has finished successfully.
func (h *Handle) Ready() (image.Image, bool) {
	if h == nil {
		return nil, false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state != StateReady {
		return nil, false
	}
	return h.img, true
}

// State returns the current lifecycle state.
func (h *Handle) State() State {
	if h == nil {
		return StateFailed
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Err returns the failure cause, if any.
func (h *Handle) Err() error {
	if h == nil {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

func (h *Handle) complete(img image.Image, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err != nil {
		h.state = StateFailed
		h.err = err
		return
	}
	h.state = StateReady
	h.img = img
}

// Library resolves asset references (file paths or http URLs) into decoded
// images. Resolution runs out-of-band on its own goroutine; callers are
// never blocked and only see completed results on a later tick. Handles are
// cached per reference for the library's lifetime.
type Library struct {
	logger  *slog.Logger
	timeout time.Duration

	mu        sync.Mutex
	byRef     map[string]*Handle
	client    *http.Client
	onFailure func(ref string)
}

// NewLibrary constructs an empty asset library.
func NewLibrary(logger *slog.Logger) *Library {
	return &Library{
		logger:  logging.NewComponentLogger(logger, "assets"),
		timeout: 15 * time.Second,
		byRef:   make(map[string]*Handle),
	}
}

// SetFailureHook registers a callback invoked whenever a resolution fails,
// for failure accounting. Must be set before the first Image call.
func (l *Library) SetFailureHook(fn func(ref string)) {
	l.mu.Lock()
	l.onFailure = fn
	l.mu.Unlock()
}

// Image returns the handle for ref, scheduling a decode on first sight. The
// returned handle may not be ready yet.
func (l *Library) Image(ref string) *Handle {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil
	}

	l.mu.Lock()
	if h, ok := l.byRef[ref]; ok {
		l.mu.Unlock()
		return h
	}
	h := &Handle{}
	l.byRef[ref] = h
	l.mu.Unlock()

	go l.resolve(ref, h)
	return h
}

// Forget drops the cached handle so the next Image call re-resolves it.
func (l *Library) Forget(ref string) {
	l.mu.Lock()
	delete(l.byRef, strings.TrimSpace(ref))
	l.mu.Unlock()
}

func (l *Library) resolve(ref string, h *Handle) {
	img, err := l.decode(ref)
	h.complete(img, err)
	if err != nil {
		l.logger.Warn("asset resolution failed",
			logging.String("ref", ref),
			logging.Error(err),
		)
		l.mu.Lock()
		hook := l.onFailure
		l.mu.Unlock()
		if hook != nil {
			hook(ref)
		}
		return
	}
	l.logger.Debug("asset ready",
		logging.String("ref", ref),
		logging.Int("width", img.Bounds().Dx()),
		logging.Int("height", img.Bounds().Dy()),
	)
}

func (l *Library) decode(ref string) (image.Image, error) {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		client := l.client
		if client == nil {
			client = &http.Client{Timeout: l.timeout}
		}
		resp, err := client.Get(ref)
		if err != nil {
			return nil, fmt.Errorf("fetch asset: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetch asset: unexpected status %s", resp.Status)
		}
		img, _, err := image.Decode(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("decode asset: %w", err)
		}
		return img, nil
	}

	file, err := os.Open(ref)
	if err != nil {
		return nil, fmt.Errorf("open asset: %w", err)
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode asset: %w", err)
	}
	return img, nil
}
