package discordlogin_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	discordlogin "github.com/angelxmoreno/react-discord-login"
)

func newTestLogin(t *testing.T, transport http.RoundTripper) *discordlogin.Login {
	t.Helper()
	login, err := discordlogin.New(
		discordlogin.Config{
			ClientID:    "client-1",
			RedirectURI: "https://app.example.com",
		},
		discordlogin.WithHTTPClient(&http.Client{Transport: transport}),
	)
	require.NoError(t, err)
	return login
}

func TestLogin_FetchUser(t *testing.T) {
	t.Parallel()

	token := discordlogin.TokenResult{TokenType: "Bearer", AccessToken: "tok1"}

	t.Run("successful fetch", func(t *testing.T) {
		t.Parallel()

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/users/@me", r.URL.Path)
			require.Equal(t, "Bearer tok1", r.Header.Get("Authorization"))
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id":            "80351110224678912",
				"username":      "nelly",
				"discriminator": "1337",
				"global_name":   "Nelly",
				"avatar":        "8342729096ea3675442027381ff50dfe",
				"locale":        "en-US",
				"verified":      true,
				"email":         "nelly@example.com",
			})
		})
		transport := &discordRewriteTransport{base: http.DefaultTransport, handler: handler}

		login := newTestLogin(t, transport)
		user, err := login.FetchUser(context.Background(), token)
		require.NoError(t, err)
		require.Equal(t, "80351110224678912", user.ID)
		require.Equal(t, "nelly", user.Username)
		require.Equal(t, "1337", user.Discriminator)
		require.Equal(t, "Nelly", user.GlobalName)
		require.Equal(t, "en-US", user.Locale)
		require.True(t, user.Verified)
		require.Equal(t, "nelly@example.com", user.Email)
	})

	t.Run("unauthorized", func(t *testing.T) {
		t.Parallel()

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
		transport := &discordRewriteTransport{base: http.DefaultTransport, handler: handler}

		login := newTestLogin(t, transport)
		user, err := login.FetchUser(context.Background(), token)
		require.Nil(t, user)
		require.ErrorIs(t, err, discordlogin.ErrUserFetch)
		require.Contains(t, err.Error(), "Failed to fetch user data: Discord API responded with status: 401 Unauthorized")
	})

	t.Run("non-standard reason phrase surfaced", func(t *testing.T) {
		t.Parallel()

		transport := &statusTransport{status: "401 Token Revoked", statusCode: http.StatusUnauthorized}

		login := newTestLogin(t, transport)
		user, err := login.FetchUser(context.Background(), token)
		require.Nil(t, user)
		require.ErrorIs(t, err, discordlogin.ErrUserFetch)
		require.Contains(t, err.Error(), "Discord API responded with status: 401 Token Revoked")
	})

	t.Run("transport failure", func(t *testing.T) {
		t.Parallel()

		transport := &errorTransport{err: errors.New("connection refused")}

		login := newTestLogin(t, transport)
		user, err := login.FetchUser(context.Background(), token)
		require.Nil(t, user)
		require.ErrorIs(t, err, discordlogin.ErrUserFetch)
		require.Contains(t, err.Error(), "Failed to fetch user data: ")
		require.Contains(t, err.Error(), "connection refused")
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not-json"))
		})
		transport := &discordRewriteTransport{base: http.DefaultTransport, handler: handler}

		login := newTestLogin(t, transport)
		user, err := login.FetchUser(context.Background(), token)
		require.Nil(t, user)
		require.ErrorIs(t, err, discordlogin.ErrUserFetch)
		require.Contains(t, err.Error(), "Failed to fetch user data: ")
	})
}
