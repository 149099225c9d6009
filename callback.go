package discordlogin

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// CallbackType discriminates the outcome of parsing the current location.
type CallbackType string

// Callback classifications, in detection priority order.
const (
	CallbackNone  CallbackType = ""
	CallbackError CallbackType = "error"
	CallbackCode  CallbackType = "code"
	CallbackToken CallbackType = "token"
)

// ErrorResult carries a provider-reported OAuth error, or a locally caught
// failure when Error is "callback_error". Absent provider parameters coerce
// to the empty string.
type ErrorResult struct {
	Error       string
	Description string
}

// CodeResult carries the authorization code delivered by the code flow.
// Exchanging it for a token is the caller's responsibility.
type CodeResult struct {
	Code string
}

// TokenResult carries the access token delivered by the implicit flow.
type TokenResult struct {
	TokenType   string
	AccessToken string

	// ExpiresIn is the token lifetime in seconds. It is NaN when the
	// expires_in parameter was absent or not numeric; the parser does not
	// reject such callbacks.
	ExpiresIn float64

	// Scope is the granted scope list, split on single spaces. An absent
	// scope parameter yields a one-element slice holding the empty string.
	Scope []string

	// User is populated after a successful profile fetch, nil until then.
	User *User
}

// CallbackResult is a discriminated union over the possible callback
// outcomes. Exactly the field matching Type is non-nil; all fields are nil
// when Type is CallbackNone.
type CallbackResult struct {
	Type  CallbackType
	Error *ErrorResult
	Code  *CodeResult
	Token *TokenResult
}

// oauthParams are the keys scrubbed from the visible URL once a callback
// has been consumed.
var oauthParams = []string{
	"code",
	"state",
	"error",
	"error_description",
	"access_token",
	"token_type",
	"expires_in",
	"scope",
}

// mergedParams parses the location's query and fragment and merges them,
// fragment values overriding query values for identical keys. Malformed
// pairs are skipped rather than failing the whole parse.
func mergedParams(loc Location) url.Values {
	merged, _ := url.ParseQuery(loc.Query())
	if merged == nil {
		merged = url.Values{}
	}
	fragment := strings.TrimPrefix(loc.Fragment(), "#")
	overrides, _ := url.ParseQuery(fragment)
	for key, values := range overrides {
		merged[key] = values
	}
	return merged
}

// IsCallback reports whether the current location carries OAuth callback
// parameters at all. It is the cheap pre-check that lets ordinary page
// loads skip callback handling.
func IsCallback(loc Location) bool {
	params := mergedParams(loc)
	return params.Has("code") || params.Has("error") || params.Has("token_type")
}

// ParseCallback classifies the current location into a CallbackResult.
// Classification priority: error, token, code, none. The function reads the
// location without consuming it and is safe to call repeatedly.
func ParseCallback(loc Location) CallbackResult {
	params := mergedParams(loc)

	switch {
	case params.Has("error") || params.Has("error_description"):
		return CallbackResult{
			Type: CallbackError,
			Error: &ErrorResult{
				Error:       params.Get("error"),
				Description: params.Get("error_description"),
			},
		}
	case params.Has("token_type"):
		return CallbackResult{
			Type: CallbackToken,
			Token: &TokenResult{
				TokenType:   params.Get("token_type"),
				AccessToken: params.Get("access_token"),
				ExpiresIn:   parseExpiry(params.Get("expires_in")),
				Scope:       strings.Split(params.Get("scope"), " "),
			},
		}
	case params.Has("code"):
		return CallbackResult{
			Type: CallbackCode,
			Code: &CodeResult{Code: params.Get("code")},
		}
	default:
		return CallbackResult{Type: CallbackNone}
	}
}

func parseExpiry(raw string) float64 {
	seconds, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return math.NaN()
	}
	return seconds
}
