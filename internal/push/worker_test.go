package push

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeNotifier struct {
	mu    sync.Mutex
	shown []Notification
	err   error
}

func (n *fakeNotifier) Show(ctx context.Context, notif Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.shown = append(n.shown, notif)
	return n.err
}

func (n *fakeNotifier) last(t *testing.T) Notification {
	t.Helper()
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.shown) == 0 {
		t.Fatal("no notification shown")
	}
	return n.shown[len(n.shown)-1]
}

func (n *fakeNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.shown)
}

type fakeClient struct {
	path    string
	focused bool
}

func (c *fakeClient) Path() string { return c.path }
func (c *fakeClient) Focus(ctx context.Context) error {
	c.focused = true
	return nil
}

type fakeClients struct {
	clients []Client
	opened  []string
}

func (f *fakeClients) List(ctx context.Context) ([]Client, error) { return f.clients, nil }
func (f *fakeClients) OpenWindow(ctx context.Context, url string) error {
	f.opened = append(f.opened, url)
	return nil
}

type chanSource struct {
	ch chan []byte
}

func (s *chanSource) ReadMessage(ctx context.Context) ([]byte, error) {
	select {
	case m := <-s.ch:
		return m, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *chanSource) Close() error { return nil }

func TestParsePayload(t *testing.T) {
	p := ParsePayload([]byte(`{"title":"T","body":"B","url":"/x"}`))
	assert.Equal(t, "T", p.Title)
	assert.Equal(t, "B", p.Body)
	assert.Equal(t, "/x", p.URL)

	// Empty body falls back entirely.
	p = ParsePayload(nil)
	assert.Equal(t, FallbackTitle, p.Title)
	assert.Equal(t, FallbackBody, p.Body)
	assert.Equal(t, "/", p.URL)

	// Partial payload fills only the gaps.
	p = ParsePayload([]byte(`{"title":"Pago verificado"}`))
	assert.Equal(t, "Pago verificado", p.Title)
	assert.Equal(t, FallbackBody, p.Body)

	// Malformed JSON is treated like an empty push.
	p = ParsePayload([]byte(`{{{`))
	assert.Equal(t, FallbackTitle, p.Title)
}

func TestHandlePush_DisplaysNotification(t *testing.T) {
	notifier := &fakeNotifier{}
	w := NewWorker(nil, notifier, nil, nil)

	w.HandlePush(context.Background(), []byte(`{"title":"T","body":"B","url":"/x"}`))

	n := notifier.last(t)
	assert.Equal(t, "T", n.Title)
	assert.Equal(t, "B", n.Body)
	assert.Equal(t, "/x", n.URL)
	assert.NotEmpty(t, n.Icon)
	assert.NotEmpty(t, n.Badge)
}

func TestHandlePush_DisplayFailureIsSilent(t *testing.T) {
	notifier := &fakeNotifier{err: errors.New("display broken")}
	w := NewWorker(nil, notifier, nil, nil)

	assert.NotPanics(t, func() {
		w.HandlePush(context.Background(), []byte(`{"title":"T"}`))
	})
}

func TestHandleClick_FocusesRootClient(t *testing.T) {
	root := &fakeClient{path: "/"}
	other := &fakeClient{path: "/orders"}
	clients := &fakeClients{clients: []Client{other, root}}

	w := NewWorker(nil, &fakeNotifier{}, clients, nil)
	err := w.HandleClick(context.Background(), Notification{URL: "/orders/5"})

	assert.NoError(t, err)
	assert.True(t, root.focused)
	assert.False(t, other.focused)
	assert.Empty(t, clients.opened, "no new window when a root client exists")
}

func TestHandleClick_OpensWindowWhenNoRootClient(t *testing.T) {
	clients := &fakeClients{clients: []Client{&fakeClient{path: "/orders"}}}

	w := NewWorker(nil, &fakeNotifier{}, clients, nil)
	err := w.HandleClick(context.Background(), Notification{URL: "/payments/3"})

	assert.NoError(t, err)
	assert.Equal(t, []string{"/payments/3"}, clients.opened)
}

func TestLifecycle_WaitsForRelease(t *testing.T) {
	src := &chanSource{ch: make(chan []byte, 1)}
	w := NewWorker(src, &fakeNotifier{}, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	assert.Eventually(t, func() bool { return w.State() == StateWaiting }, time.Second, 5*time.Millisecond)

	w.Release()
	assert.Eventually(t, func() bool { return w.State() == StateActivated }, time.Second, 5*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	assert.Equal(t, StateStopped, w.State())
}

func TestLifecycle_SkipWaiting(t *testing.T) {
	var installed, activated bool
	src := &chanSource{ch: make(chan []byte, 1)}
	notifier := &fakeNotifier{}

	w := NewWorker(src, notifier, &fakeClients{}, nil,
		SkipWaiting(),
		ClientsClaim(),
		OnInstall(func(ctx context.Context) error { installed = true; return nil }),
		OnActivate(func(ctx context.Context) error { activated = true; return nil }),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Never passes through waiting; goes straight to activated.
	assert.Eventually(t, func() bool { return w.State() == StateActivated }, time.Second, 5*time.Millisecond)
	assert.True(t, installed)
	assert.True(t, activated)

	// Push messages flow once activated.
	src.ch <- []byte(`{"title":"Nuevo pedido","url":"/orders/9"}`)
	assert.Eventually(t, func() bool { return notifier.count() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "Nuevo pedido", notifier.last(t).Title)

	cancel()
	<-done
}

func TestLifecycle_InstallFailureStops(t *testing.T) {
	w := NewWorker(nil, &fakeNotifier{}, nil, nil,
		SkipWaiting(),
		OnInstall(func(ctx context.Context) error { return errors.New("manifest unreachable") }),
	)

	err := w.Run(context.Background())
	assert.EqualError(t, err, "manifest unreachable")
	assert.Equal(t, StateStopped, w.State())
}
