package discordlogin

// Response types supported by the Discord authorization endpoint.
const (
	// ResponseTypeCode requests the authorization code flow: the callback
	// delivers a short-lived code to be exchanged server-side.
	ResponseTypeCode = "code"

	// ResponseTypeToken requests the implicit flow: the callback delivers
	// a usable access token in the URL fragment.
	ResponseTypeToken = "token"
)

// DefaultScopes returns the scopes requested when none are configured.
func DefaultScopes() []string {
	return []string{"identify"}
}

// Config holds Discord OAuth configuration. Only ClientID is required;
// the remaining fields are defaulted during construction.
type Config struct {
	// ClientID is the Discord application's client ID.
	ClientID string

	// RedirectURI is where Discord redirects after authorization.
	// Defaults to the configured location's origin.
	RedirectURI string

	// ResponseType selects the flow, ResponseTypeCode or ResponseTypeToken.
	// Defaults to ResponseTypeCode.
	ResponseType string

	// Scopes are the OAuth scopes to request. Defaults to DefaultScopes.
	Scopes []string
}

// withDefaults returns a copy of the config with every optional field
// resolved. origin fills RedirectURI when the caller left it empty.
func (c Config) withDefaults(origin string) Config {
	if c.RedirectURI == "" {
		c.RedirectURI = origin
	}
	if c.ResponseType == "" {
		c.ResponseType = ResponseTypeCode
	}
	if len(c.Scopes) == 0 {
		c.Scopes = DefaultScopes()
	}
	return c
}
