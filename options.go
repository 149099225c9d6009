package discordlogin

import (
	"context"
	"log/slog"
	"net/http"
)

// SuccessFunc receives the outcome of a successful callback. The result's
// Type is CallbackCode or CallbackToken; for tokens, Token.User is already
// populated. Returning an error routes it through the failure path.
type SuccessFunc func(ctx context.Context, result CallbackResult) error

// FailureFunc receives provider-reported OAuth errors and internal failures
// converted to the "callback_error" shape.
type FailureFunc func(ctx context.Context, failure ErrorResult) error

// Option configures a Login.
type Option func(*Login)

// WithHTTPClient sets a custom HTTP client for the profile fetch.
// This is useful for testing with httptest servers or injecting
// custom transports.
func WithHTTPClient(client *http.Client) Option {
	return func(l *Login) {
		if client != nil {
			l.httpClient = client
		}
	}
}

// WithLogger sets the diagnostic logger. Dropped failures and swallowed
// location-replace errors are logged at debug level. Defaults to a
// discard logger.
func WithLogger(log *slog.Logger) Option {
	return func(l *Login) {
		if log != nil {
			l.log = log
		}
	}
}

// WithLocation sets the location source the Login reads callback
// parameters from and scrubs them back out of.
func WithLocation(loc Location) Option {
	return func(l *Login) {
		l.loc = loc
	}
}

// WithNotifier sets the navigation-change source Start subscribes to.
// Without one, only the initial evaluation runs.
func WithNotifier(n Notifier) Option {
	return func(l *Login) {
		l.notifier = n
	}
}

// WithOnSuccess registers the success handler.
func WithOnSuccess(fn SuccessFunc) Option {
	return func(l *Login) {
		l.onSuccess = fn
	}
}

// WithOnFailure registers the failure handler.
func WithOnFailure(fn FailureFunc) Option {
	return func(l *Login) {
		l.onFailure = fn
	}
}
