package discordlogin

import (
	"golang.org/x/oauth2"
)

// Discord API endpoints.
const (
	authorizeURL = "https://discord.com/api/oauth2/authorize"
	tokenURL     = "https://discord.com/api/oauth2/token"
	userURL      = "https://discord.com/api/users/@me"
)

// discordEndpoint describes Discord's OAuth2 endpoints for golang.org/x/oauth2.
var discordEndpoint = oauth2.Endpoint{
	AuthURL:  authorizeURL,
	TokenURL: tokenURL,
}

// buildAuthURL constructs the authorization URL for a fully defaulted config.
// The state parameter is intentionally omitted; this library performs no
// state validation.
func buildAuthURL(cfg Config) string {
	oc := oauth2.Config{
		ClientID:    cfg.ClientID,
		RedirectURL: cfg.RedirectURI,
		Scopes:      cfg.Scopes,
		Endpoint:    discordEndpoint,
	}

	var opts []oauth2.AuthCodeOption
	if cfg.ResponseType != ResponseTypeCode {
		opts = append(opts, oauth2.SetAuthURLParam("response_type", cfg.ResponseType))
	}
	return oc.AuthCodeURL("", opts...)
}
