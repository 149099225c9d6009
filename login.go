package discordlogin

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"sync/atomic"
)

// callbackError is the error code reported to the failure handler when the
// failure originates inside the callback machinery rather than from the
// provider.
const callbackError = "callback_error"

// Login coordinates the client side of the Discord OAuth flow: it builds the
// authorization URL, watches an injected Location for callback parameters,
// resolves tokens into user profiles, and dispatches the registered
// success/failure handlers.
//
// A Login is safe for concurrent use. Evaluations triggered by overlapping
// navigation notifications run independently; no lock serializes them.
type Login struct {
	cfg        Config
	loc        Location
	notifier   Notifier
	httpClient *http.Client
	log        *slog.Logger
	onSuccess  SuccessFunc
	onFailure  FailureFunc

	closed  atomic.Bool
	started atomic.Bool
	active  atomic.Int32
	done    chan struct{}
}

// New creates a Login for the given config. ClientID is required; every
// other config field is defaulted, with RedirectURI falling back to the
// configured location's origin. Returns ErrMissingLocation when neither a
// redirect URI nor a location to derive one from is available.
func New(cfg Config, opts ...Option) (*Login, error) {
	l := &Login{
		httpClient: http.DefaultClient,
		log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}

	if cfg.ClientID == "" {
		return nil, ErrMissingClientID
	}

	var origin string
	if l.loc != nil {
		origin = l.loc.Origin()
	}
	if cfg.RedirectURI == "" && origin == "" {
		return nil, ErrMissingLocation
	}
	l.cfg = cfg.withDefaults(origin)

	return l, nil
}

// Config returns a copy of the fully defaulted configuration.
func (l *Login) Config() Config {
	cfg := l.cfg
	cfg.Scopes = slices.Clone(cfg.Scopes)
	return cfg
}

// BuildURL returns the Discord authorization URL for the configured flow.
// It is a pure derivation from the config: calling it repeatedly yields
// identical strings and has no side effects.
func (l *Login) BuildURL() string {
	return buildAuthURL(l.cfg)
}

// IsLoading reports whether at least one callback evaluation is in flight.
func (l *Login) IsLoading() bool {
	return l.active.Load() > 0
}

// FetchUser exchanges the token for the current user's profile with a
// single authenticated request against the Discord API.
func (l *Login) FetchUser(ctx context.Context, token TokenResult) (*User, error) {
	return fetchUser(ctx, l.httpClient, token.TokenType, token.AccessToken)
}

// Start runs an initial evaluation of the current location and, when a
// Notifier is configured, subscribes to navigation changes for the lifetime
// of the Login. The subscription is released by Close or when ctx is done.
// Start is a no-op when called again on a started Login.
func (l *Login) Start(ctx context.Context) error {
	if l.closed.Load() {
		return ErrClosed
	}
	if l.loc == nil {
		return ErrMissingLocation
	}
	if l.started.Swap(true) {
		return nil
	}

	l.evaluate(ctx)

	if l.notifier == nil {
		return nil
	}
	ch, cancel := l.notifier.Subscribe()
	go l.watch(ctx, ch, cancel)
	return nil
}

// Close marks the Login as torn down and releases the navigation
// subscription. Handlers are never invoked after Close returns; an
// in-flight profile fetch is not aborted, but its outcome is dropped.
// Close is idempotent.
func (l *Login) Close() {
	if l.closed.Swap(true) {
		return
	}
	close(l.done)
}

// Handle runs one evaluation of the current location. It is the entry point
// for callers that drive evaluations themselves, for example a server-side
// redirect handler. Callback failures are reported through the failure
// handler, never returned.
func (l *Login) Handle(ctx context.Context) error {
	if l.closed.Load() {
		return ErrClosed
	}
	if l.loc == nil {
		return ErrMissingLocation
	}
	l.evaluate(ctx)
	return nil
}

// watch owns the subscription: cancel runs exactly once, on whichever exit
// path ends the watch, so teardown via Close and teardown via context
// cancellation both release the listener.
func (l *Login) watch(ctx context.Context, ch <-chan struct{}, cancel func()) {
	defer cancel()
	for {
		select {
		case <-ctx.Done():
			return
		case <-l.done:
			return
		case _, ok := <-ch:
			if !ok || l.closed.Load() {
				return
			}
			// Each notification gets its own evaluation; overlapping
			// evaluations are allowed and run unserialized.
			go l.evaluate(ctx)
		}
	}
}

// evaluate runs the callback-handling sequence once: detect, parse, scrub
// the visible URL, dispatch handlers, and always settle the busy flag.
func (l *Login) evaluate(ctx context.Context) {
	if l.closed.Load() {
		return
	}
	if !IsCallback(l.loc) {
		return
	}
	result := ParseCallback(l.loc)
	if result.Type == CallbackNone {
		return
	}

	l.active.Add(1)
	defer l.active.Add(-1)
	defer func() {
		if r := recover(); r != nil {
			l.fail(ctx, ErrorResult{Error: callbackError, Description: panicMessage(r)})
		}
	}()

	l.scrubLocation(ctx)

	switch result.Type {
	case CallbackError:
		l.fail(ctx, *result.Error)
	case CallbackCode:
		l.succeed(ctx, result)
	case CallbackToken:
		user, err := fetchUser(ctx, l.httpClient, result.Token.TokenType, result.Token.AccessToken)
		if err != nil {
			l.fail(ctx, ErrorResult{Error: callbackError, Description: err.Error()})
			return
		}
		result.Token.User = user
		l.succeed(ctx, result)
	}
}

// scrubLocation removes consumed OAuth parameters from the visible URL,
// preserving the path and any unrelated query or fragment content. A query
// or fragment holding none of the scrub keys is kept byte-for-byte, so
// non-parameter fragments like "#section-3" survive untouched. The replace
// is best-effort: a location that cannot be mutated is not an error.
func (l *Login) scrubLocation(ctx context.Context) {
	if l.closed.Load() {
		return
	}
	query := scrubParams(l.loc.Query())
	fragment := scrubParams(strings.TrimPrefix(l.loc.Fragment(), "#"))

	var ref strings.Builder
	ref.WriteString(l.loc.Path())
	if query != "" {
		ref.WriteString("?")
		ref.WriteString(query)
	}
	if fragment != "" {
		ref.WriteString("#")
		ref.WriteString(fragment)
	}

	if err := l.loc.Replace(ref.String()); err != nil {
		l.log.DebugContext(ctx, "location replace failed", slog.Any("error", err))
	}
}

// scrubParams strips the OAuth keys from an encoded parameter string,
// returning the input unchanged when no key is present.
func scrubParams(raw string) string {
	params, _ := url.ParseQuery(raw)
	scrubbed := false
	for _, key := range oauthParams {
		if params.Has(key) {
			params.Del(key)
			scrubbed = true
		}
	}
	if !scrubbed {
		return raw
	}
	return params.Encode()
}

func (l *Login) succeed(ctx context.Context, result CallbackResult) {
	if l.closed.Load() {
		l.log.DebugContext(ctx, "success dropped after close")
		return
	}
	if l.onSuccess == nil {
		return
	}
	if err := l.onSuccess(ctx, result); err != nil {
		l.fail(ctx, ErrorResult{Error: callbackError, Description: errMessage(err)})
	}
}

// fail is the terminal safety net: it never propagates an error or panic
// out of the callback machinery.
func (l *Login) fail(ctx context.Context, failure ErrorResult) {
	defer func() {
		if r := recover(); r != nil {
			l.log.DebugContext(ctx, "failure handler panicked", slog.Any("panic", r))
		}
	}()
	if l.closed.Load() {
		l.log.DebugContext(ctx, "failure dropped after close",
			slog.String("error", failure.Error))
		return
	}
	if l.onFailure == nil {
		l.log.DebugContext(ctx, "unhandled login failure",
			slog.String("error", failure.Error),
			slog.String("description", failure.Description))
		return
	}
	if err := l.onFailure(ctx, failure); err != nil {
		l.log.DebugContext(ctx, "failure handler error", slog.Any("error", err))
	}
}

func errMessage(err error) string {
	if err == nil || err.Error() == "" {
		return "Unknown error occurred"
	}
	return err.Error()
}

func panicMessage(v any) string {
	if err, ok := v.(error); ok {
		return errMessage(err)
	}
	if s := fmt.Sprint(v); s != "" && s != "<nil>" {
		return s
	}
	return "Unknown error occurred"
}
