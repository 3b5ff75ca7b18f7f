package ipc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"strings"
	"sync"

	"log/slog"

	"switchyard/internal/logging"
	"switchyard/internal/overlay"
	"switchyard/internal/session"
)

// Server exposes session control via JSON-RPC over a Unix domain socket.
type Server struct {
	path      string
	logger    *slog.Logger
	listener  net.Listener
	rpcServer *rpc.Server

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewServer configures the IPC server at the given socket path. shutdown is
// invoked when a client requests Stop; it should cancel the process context.
func NewServer(ctx context.Context, path string, sess *session.Session, shutdown func(), logger *slog.Logger) (*Server, error) {
	if sess == nil {
		return nil, errors.New("ipc server requires a session")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	if err := os.RemoveAll(path); err != nil {
		return nil, fmt.Errorf("remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen on socket: %w", err)
	}

	rpcServer := rpc.NewServer()
	srv := &service{session: sess, shutdown: shutdown, logger: logger}
	if err := rpcServer.RegisterName("Switchyard", srv); err != nil {
		listener.Close()
		return nil, fmt.Errorf("register rpc service: %w", err)
	}

	serverCtx, cancel := context.WithCancel(ctx)
	return &Server{
		path:      path,
		logger:    logging.NewComponentLogger(logger, "ipc"),
		listener:  listener,
		rpcServer: rpcServer,
		ctx:       serverCtx,
		cancel:    cancel,
	}, nil
}

// Serve starts accepting RPC connections until the context is canceled.
func (s *Server) Serve() {
	s.logger.Debug("IPC server listening", logging.String("socket", s.path))
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			conn, err := s.listener.Accept()
			if err != nil {
				select {
				case <-s.ctx.Done():
					return
				default:
				}
				s.logger.Warn("accept failed", logging.Error(err))
				continue
			}
			s.wg.Add(1)
			go func(c net.Conn) {
				defer s.wg.Done()
				s.rpcServer.ServeCodec(jsonrpc.NewServerCodec(c))
			}(conn)
		}
	}()
}

// Close stops the server and removes the socket file.
func (s *Server) Close() {
	s.cancel()
	if s.listener != nil {
		_ = s.listener.Close()
	}
	s.wg.Wait()
	if err := os.RemoveAll(s.path); err != nil {
		s.logger.Warn("failed to remove socket",
			logging.String("socket", s.path),
			logging.Error(err))
	}
}

type service struct {
	session  *session.Session
	shutdown func()
	logger   *slog.Logger
}

func (s *service) log() *slog.Logger {
	if s.logger == nil {
		return logging.NewNop()
	}
	return s.logger.With(logging.String(logging.FieldComponent, "ipc"))
}

func (s *service) Status(_ StatusRequest, resp *StatusResponse) error {
	status := s.session.Status()
	resp.Running = status.Running
	resp.UptimeMillis = status.Uptime.Milliseconds()
	resp.Ticks = status.Ticks
	resp.Layout = status.Layout
	resp.Staged = status.Staged
	resp.Sources = status.Sources
	resp.Taps = status.Taps
	resp.Width = status.Width
	resp.Height = status.Height
	resp.FPS = status.FPS
	resp.Hotplug = status.Hotplug
	resp.LastEvent = status.LastEvent
	return nil
}

func (s *service) Sources(_ SourcesRequest, resp *SourcesResponse) error {
	list := s.session.Sources()
	resp.Sources = make([]SourceRow, 0, len(list))
	for _, src := range list {
		resp.Sources = append(resp.Sources, SourceRow(src))
	}
	return nil
}

func (s *service) Taps(_ TapsRequest, resp *TapsResponse) error {
	taps := s.session.Taps()
	resp.Taps = make([]TapRow, 0, len(taps))
	for _, tap := range taps {
		resp.Taps = append(resp.Taps, TapRow(tap))
	}
	return nil
}

func (s *service) SetLayout(req SetLayoutRequest, resp *SetLayoutResponse) error {
	if err := s.session.SetLayout(req.Mode); err != nil {
		return err
	}
	resp.Layout = s.session.Status().Layout
	s.log().Info("layout changed via IPC", logging.String(logging.FieldLayout, resp.Layout))
	return nil
}

func (s *service) SetStage(req SetStageRequest, resp *SetStageResponse) error {
	if err := s.session.SetStage(req.IDs); err != nil {
		return err
	}
	resp.Staged = s.session.Stage().Staged
	return nil
}

func (s *service) SetMuted(req SetMutedRequest, resp *AckResponse) error {
	if err := s.session.SetMuted(req.ID, req.Muted); err != nil {
		return err
	}
	resp.OK = true
	return nil
}

func (s *service) SetBlur(req SetBlurRequest, resp *AckResponse) error {
	if err := s.session.SetBlur(req.ID, req.Blur); err != nil {
		return err
	}
	resp.OK = true
	return nil
}

func (s *service) SetGain(req SetGainRequest, resp *AckResponse) error {
	if err := s.session.SetGain(req.ID, req.Gain); err != nil {
		return err
	}
	resp.OK = true
	return nil
}

func (s *service) OverlayGet(_ OverlayGetRequest, resp *OverlayGetResponse) error {
	resp.Settings = s.session.Overlay()
	return nil
}

func (s *service) OverlaySet(req OverlaySetRequest, resp *AckResponse) error {
	if err := s.session.UpdateOverlay(func(o *overlay.Settings) {
		*o = req.Settings
	}); err != nil {
		return err
	}
	resp.OK = true
	return nil
}

func (s *service) OverlayToggle(req OverlayToggleRequest, resp *AckResponse) error {
	element := strings.ToLower(strings.TrimSpace(req.Element))
	switch element {
	case "logo", "banner", "lower-third", "ticker", "countdown", "text", "bullets":
	default:
		return fmt.Errorf("unknown overlay element %q", req.Element)
	}
	err := s.session.UpdateOverlay(func(o *overlay.Settings) {
		switch element {
		case "logo":
			o.Logo.Show = req.Show
		case "banner":
			o.Banner.Show = req.Show
		case "lower-third":
			o.LowerThird.Show = req.Show
		case "ticker":
			o.Ticker.Show = req.Show
		case "countdown":
			o.Countdown.Show = req.Show
		case "text":
			o.Text.Show = req.Show
		case "bullets":
			o.Bullets.Show = req.Show
		}
	})
	if err != nil {
		return err
	}
	resp.OK = true
	return nil
}

func (s *service) Snapshot(req SnapshotRequest, resp *SnapshotResponse) error {
	if strings.TrimSpace(req.Path) == "" {
		return errors.New("snapshot requires a path")
	}
	if err := s.session.Snapshot(req.Path); err != nil {
		return err
	}
	resp.Path = req.Path
	return nil
}

func (s *service) Stop(_ StopRequest, resp *StopResponse) error {
	s.log().Info("shutdown requested via IPC")
	if s.shutdown != nil {
		go s.shutdown()
	}
	resp.Stopped = true
	return nil
}
