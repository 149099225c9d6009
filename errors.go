package discordlogin

import "errors"

var (
	// ErrMissingClientID is returned when the OAuth client ID is not provided.
	ErrMissingClientID = errors.New("discordlogin: missing client ID")

	// ErrMissingLocation is returned when no location source is available
	// to resolve the redirect URI or to read callback parameters from.
	ErrMissingLocation = errors.New("discordlogin: no location configured")

	// ErrClosed is returned when an operation is attempted on a closed Login.
	ErrClosed = errors.New("discordlogin: login closed")

	// ErrUserFetch is the prefix of every profile-fetch failure. The message
	// text is part of the public contract and is matched verbatim by callers,
	// hence the non-standard capitalization.
	ErrUserFetch = errors.New("Failed to fetch user data")
)
