package discordlogin

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// User is the Discord profile returned by the /users/@me endpoint. Fields
// are passed through as received; no validation is applied.
type User struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Discriminator string `json:"discriminator"`
	GlobalName    string `json:"global_name"`
	Avatar        string `json:"avatar"`
	Banner        string `json:"banner"`
	AccentColor   int    `json:"accent_color"`
	Locale        string `json:"locale"`
	Verified      bool   `json:"verified"`
	Email         string `json:"email"`
	Flags         int    `json:"flags"`
	PremiumType   int    `json:"premium_type"`
	PublicFlags   int    `json:"public_flags"`
}

// fetchUser exchanges a bearer token for the current user's profile with a
// single authenticated GET. Every failure mode is wrapped under ErrUserFetch
// so callers see one uniform error shape.
func fetchUser(ctx context.Context, client *http.Client, tokenType, accessToken string) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, userURL, nil)
	if err != nil {
		return nil, wrapUserFetchErr(err)
	}
	req.Header.Set("Authorization", tokenType+" "+accessToken)

	resp, err := client.Do(req)
	if err != nil {
		return nil, wrapUserFetchErr(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		// resp.Status keeps the provider's own reason phrase.
		status := resp.Status
		if status == "" {
			status = fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
		}
		return nil, fmt.Errorf("%w: Discord API responded with status: %s", ErrUserFetch, status)
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, wrapUserFetchErr(err)
	}
	return &user, nil
}

func wrapUserFetchErr(err error) error {
	message := "Unknown error occurred"
	if err != nil && err.Error() != "" {
		message = err.Error()
	}
	return fmt.Errorf("%w: %s", ErrUserFetch, message)
}
