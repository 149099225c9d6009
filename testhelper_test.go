package discordlogin_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
)

// fakeLocation is an in-memory Location with recorded Replace calls.
type fakeLocation struct {
	mu         sync.Mutex
	origin     string
	path       string
	query      string
	fragment   string
	replaced   []string
	replaceErr error
}

func (f *fakeLocation) Origin() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.origin
}

func (f *fakeLocation) Path() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.path
}

func (f *fakeLocation) Query() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.query
}

func (f *fakeLocation) Fragment() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fragment
}

func (f *fakeLocation) Replace(ref string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.replaceErr != nil {
		return f.replaceErr
	}
	u, err := url.Parse(ref)
	if err != nil {
		return err
	}
	f.replaced = append(f.replaced, ref)
	f.path = u.Path
	f.query = u.RawQuery
	f.fragment = u.EscapedFragment()
	return nil
}

func (f *fakeLocation) setQuery(q string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.query = q
}

func (f *fakeLocation) replaceCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.replaced...)
}

// fakeNotifier is a hand-driven Notifier that counts subscriptions and
// cancellations.
type fakeNotifier struct {
	mu         sync.Mutex
	ch         chan struct{}
	subscribes int
	cancels    int
}

func (n *fakeNotifier) Subscribe() (<-chan struct{}, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.subscribes++
	n.ch = make(chan struct{}, 8)
	return n.ch, func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		n.cancels++
	}
}

func (n *fakeNotifier) notify() {
	n.mu.Lock()
	ch := n.ch
	n.mu.Unlock()
	ch <- struct{}{}
}

func (n *fakeNotifier) stats() (subscribes, cancels int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.subscribes, n.cancels
}

// discordRewriteTransport intercepts requests to the Discord API and routes
// them to a local handler instead.
type discordRewriteTransport struct {
	base    http.RoundTripper
	handler http.Handler
}

func (t *discordRewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if strings.Contains(req.URL.Host, "discord.com") {
		recorder := httptest.NewRecorder()
		t.handler.ServeHTTP(recorder, req)
		return recorder.Result(), nil
	}
	return t.base.RoundTrip(req)
}

// errorTransport fails every request with a fixed error.
type errorTransport struct {
	err error
}

func (t *errorTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, t.err
}

// statusTransport answers every request with a fixed status line and an
// empty body, bypassing the status-text normalization httptest applies.
type statusTransport struct {
	status     string
	statusCode int
}

func (t *statusTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return &http.Response{
		Status:     t.status,
		StatusCode: t.statusCode,
		Header:     make(http.Header),
		Body:       io.NopCloser(strings.NewReader("")),
		Request:    req,
	}, nil
}
