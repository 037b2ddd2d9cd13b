// Package push is the background half of the shell: an actor that owns
// the worker lifecycle and turns push messages into displayed
// notifications. It shares no state with the foreground; everything
// crosses its boundary as a message or through the Clients port.
package push

import (
	"context"
	"errors"
	"sync/atomic"

	"go.uber.org/zap"
)

// State is the worker lifecycle. SkipWaiting short-circuits Waiting;
// ClientsClaim makes activation take over open clients immediately.
type State int32

const (
	StateInstalling State = iota
	StateWaiting
	StateActivating
	StateActivated
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateInstalling:
		return "installing"
	case StateWaiting:
		return "waiting"
	case StateActivating:
		return "activating"
	case StateActivated:
		return "activated"
	default:
		return "stopped"
	}
}

// Notifier displays a system notification. Delivery failure is silent;
// the worker only logs it.
type Notifier interface {
	Show(ctx context.Context, n Notification) error
}

// Client is one open foreground window.
type Client interface {
	Path() string
	Focus(ctx context.Context) error
}

// Clients models the platform client list the worker can focus or
// extend. Cancellation of an in-flight platform call is not supported
// by the underlying contract and is not simulated here.
type Clients interface {
	List(ctx context.Context) ([]Client, error)
	OpenWindow(ctx context.Context, url string) error
}

// Source delivers raw push message bodies.
type Source interface {
	ReadMessage(ctx context.Context) ([]byte, error)
	Close() error
}

type Worker struct {
	src      Source
	notifier Notifier
	clients  Clients
	log      *zap.Logger

	state atomic.Int32

	skipWaiting  bool
	clientsClaim bool
	onInstall    func(ctx context.Context) error
	onActivate   func(ctx context.Context) error
	release      chan struct{}
}

type Option func(*Worker)

// SkipWaiting activates a new worker without waiting for a release.
func SkipWaiting() Option {
	return func(w *Worker) { w.skipWaiting = true }
}

// ClientsClaim takes control of already-open clients on activation.
func ClientsClaim() Option {
	return func(w *Worker) { w.clientsClaim = true }
}

// OnInstall runs during the installing phase; the shell precaches its
// manifest here.
func OnInstall(fn func(ctx context.Context) error) Option {
	return func(w *Worker) { w.onInstall = fn }
}

// OnActivate runs during activation; the shell purges outdated cache
// entries here.
func OnActivate(fn func(ctx context.Context) error) Option {
	return func(w *Worker) { w.onActivate = fn }
}

func NewWorker(src Source, notifier Notifier, clients Clients, log *zap.Logger, opts ...Option) *Worker {
	if log == nil {
		log = zap.NewNop()
	}
	w := &Worker{
		src:      src,
		notifier: notifier,
		clients:  clients,
		log:      log,
		release:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Worker) State() State {
	return State(w.state.Load())
}

func (w *Worker) setState(s State) {
	w.state.Store(int32(s))
	w.log.Info("worker state", zap.String("state", s.String()))
}

// Release moves a waiting worker on to activation. With SkipWaiting
// set it is never needed.
func (w *Worker) Release() {
	select {
	case <-w.release:
	default:
		close(w.release)
	}
}

// Run drives the lifecycle and then consumes push messages until ctx
// is cancelled or the source fails.
func (w *Worker) Run(ctx context.Context) error {
	defer w.setState(StateStopped)

	w.setState(StateInstalling)
	if w.onInstall != nil {
		if err := w.onInstall(ctx); err != nil {
			return err
		}
	}

	if !w.skipWaiting {
		w.setState(StateWaiting)
		select {
		case <-w.release:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	w.setState(StateActivating)
	if w.onActivate != nil {
		if err := w.onActivate(ctx); err != nil {
			return err
		}
	}
	w.setState(StateActivated)

	if w.clientsClaim {
		w.claim(ctx)
	}

	// Without a push source the worker only owns the lifecycle.
	if w.src == nil {
		<-ctx.Done()
		return ctx.Err()
	}

	for {
		data, err := w.src.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return ctx.Err()
			}
			return err
		}
		w.HandlePush(ctx, data)
	}
}

// claim logs the takeover; open clients start routing through this
// worker without a reload.
func (w *Worker) claim(ctx context.Context) {
	if w.clients == nil {
		return
	}
	clients, err := w.clients.List(ctx)
	if err != nil {
		w.log.Debug("claim: listing clients failed", zap.Error(err))
		return
	}
	w.log.Info("claimed open clients", zap.Int("count", len(clients)))
}

// HandlePush parses the payload and raises the notification. Failures
// never propagate; display failure is silent at this level.
func (w *Worker) HandlePush(ctx context.Context, data []byte) {
	n := ParsePayload(data).Notification()
	if err := w.notifier.Show(ctx, n); err != nil {
		w.log.Debug("notification display failed", zap.Error(err))
	}
}

// HandleClick resolves a notification click: an already-open client at
// the root path is focused, otherwise a new window opens at the
// notification's stored URL.
func (w *Worker) HandleClick(ctx context.Context, n Notification) error {
	clients, err := w.clients.List(ctx)
	if err != nil {
		return err
	}
	for _, c := range clients {
		if c.Path() == "/" {
			return c.Focus(ctx)
		}
	}
	return w.clients.OpenWindow(ctx, n.URL)
}
