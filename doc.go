// Package discordlogin implements the client side of Discord's OAuth2
// authorization code and implicit flows.
//
// A Login builds the authorization URL for a Discord application, detects
// and parses the provider's redirect callback from an injected Location,
// resolves implicit-flow tokens into user profiles via the Discord API, and
// dispatches registered success/failure handlers. The ambient browser state
// (current address, navigation events) is modeled as the Location and
// Notifier interfaces rather than process-wide globals, so the whole flow
// is deterministic under test.
//
// # Features
//
//   - Authorization URL construction for the "code" and "token" flows
//   - Callback classification into a discriminated result (none, error,
//     code, token), with fragment parameters taking precedence over query
//     parameters
//   - Profile fetch against /users/@me with uniform error wrapping
//   - Best-effort scrubbing of consumed OAuth parameters from the visible
//     URL
//   - Teardown guarding: no handler runs after Close
//   - Functional options for HTTP client, logger, location, notifier, and
//     handlers
//
// # Usage
//
//	loc, err := discordlogin.NewStaticLocation("https://app.example.com/")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	login, err := discordlogin.New(
//		discordlogin.Config{ClientID: "my-client-id"},
//		discordlogin.WithLocation(loc),
//		discordlogin.WithOnSuccess(func(ctx context.Context, result discordlogin.CallbackResult) error {
//			switch result.Type {
//			case discordlogin.CallbackCode:
//				// hand result.Code.Code to the backend for exchange
//			case discordlogin.CallbackToken:
//				// result.Token.User is already populated
//			}
//			return nil
//		}),
//		discordlogin.WithOnFailure(func(ctx context.Context, failure discordlogin.ErrorResult) error {
//			// failure.Error, failure.Description
//			return nil
//		}),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer login.Close()
//
//	// Point the user at the authorization page.
//	url := login.BuildURL()
//
//	// Evaluate the current location once (e.g., after a redirect).
//	if err := login.Handle(ctx); err != nil {
//		log.Fatal(err)
//	}
//
// With a Notifier configured, Start subscribes to navigation changes and
// re-evaluates the location on every notification until Close:
//
//	if err := login.Start(ctx); err != nil {
//		log.Fatal(err)
//	}
//
// # Scope
//
// The library deliberately stops at the callback boundary: it performs no
// code-for-token exchange, no token refresh or storage, no state-parameter
// validation, and no PKCE. Exchanging an authorization code is the
// caller's (typically a backend's) responsibility.
package discordlogin
