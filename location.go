package discordlogin

import (
	"net/url"
	"sync"
)

// Location is the injected view of the environment's current address.
// It replaces direct access to process-wide location state so the callback
// machinery stays deterministic and testable.
type Location interface {
	// Origin returns scheme://host of the current address.
	Origin() string

	// Path returns the current path.
	Path() string

	// Query returns the raw query string without the leading "?".
	Query() string

	// Fragment returns the raw fragment without the leading "#".
	Fragment() string

	// Replace swaps the visible address for the given URL reference
	// without triggering a navigation. Implementations that cannot
	// mutate the address should return an error; the caller treats
	// replacement as best-effort.
	Replace(ref string) error
}

// Notifier delivers navigation-change notifications. Subscribe returns a
// channel that receives a signal on every change and a cancel function that
// releases the subscription. Each Subscribe call is an independent
// subscription; cancel must be safe to call more than once.
type Notifier interface {
	Subscribe() (<-chan struct{}, func())
}

// StaticLocation is a Location backed by a parsed URL. It is used to feed a
// concrete request URL into the callback machinery, for example on a
// server-side redirect handler or in tests. It is safe for concurrent use.
type StaticLocation struct {
	mu sync.Mutex
	u  *url.URL
}

// NewStaticLocation parses rawURL into a StaticLocation.
func NewStaticLocation(rawURL string) (*StaticLocation, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	return &StaticLocation{u: u}, nil
}

// Origin returns scheme://host of the underlying URL.
func (l *StaticLocation) Origin() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	o := url.URL{Scheme: l.u.Scheme, Host: l.u.Host}
	return o.String()
}

// Path returns the underlying URL's path.
func (l *StaticLocation) Path() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.u.Path
}

// Query returns the underlying URL's raw query.
func (l *StaticLocation) Query() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.u.RawQuery
}

// Fragment returns the underlying URL's fragment in escaped form, so
// parameter pairs embedded in it survive round-tripping.
func (l *StaticLocation) Fragment() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.u.EscapedFragment()
}

// Replace resolves ref against the current URL and swaps it in. Relative
// references keep the current scheme and host.
func (l *StaticLocation) Replace(ref string) error {
	parsed, err := url.Parse(ref)
	if err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.u = l.u.ResolveReference(parsed)
	return nil
}

// Current returns the full current URL.
func (l *StaticLocation) Current() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.u.String()
}
