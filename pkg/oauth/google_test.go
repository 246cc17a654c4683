package oauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func fakeGoogle(t *testing.T, verified bool) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.PostForm.Get("code") != "good-code" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at-1","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer at-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if verified {
			_, _ = w.Write([]byte(`{"id":"g-42","email":"Dona@Loja.Test","verified_email":true,"name":"Dona"}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":"g-42","email":"dona@loja.test","verified_email":false}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestGoogle(srv *httptest.Server) *Google {
	return NewGoogle(GoogleConfig{
		ClientID:     "client",
		ClientSecret: "secret",
		RedirectURL:  "http://localhost/callback",
		StateSecret:  "state-secret",
		Endpoint:     oauth2.Endpoint{AuthURL: srv.URL + "/auth", TokenURL: srv.URL + "/token", AuthStyle: oauth2.AuthStyleInParams},
		UserInfoURL:  srv.URL + "/userinfo",
	})
}

func stateOf(t *testing.T, g *Google) string {
	t.Helper()
	raw, err := g.AuthURL()
	require.NoError(t, err)
	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "client", u.Query().Get("client_id"))
	return u.Query().Get("state")
}

func TestGoogleIdentify(t *testing.T) {
	g := newTestGoogle(fakeGoogle(t, true))
	ctx := context.Background()

	id, err := g.Identify(ctx, "good-code", stateOf(t, g))
	require.NoError(t, err)
	assert.Equal(t, &Identity{Subject: "g-42", Email: "dona@loja.test", Name: "Dona"}, id)

	_, err = g.Identify(ctx, "bad-code", stateOf(t, g))
	assert.ErrorIs(t, err, ErrInvalidCode)

	_, err = g.Identify(ctx, "good-code", "forged")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestGoogleRejectsExpiredState(t *testing.T) {
	g := newTestGoogle(fakeGoogle(t, true))
	old, err := g.signState(time.Now().Add(-time.Hour))
	require.NoError(t, err)

	_, err = g.Identify(context.Background(), "good-code", old)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestGoogleRejectsUnverifiedEmail(t *testing.T) {
	g := newTestGoogle(fakeGoogle(t, false))
	_, err := g.Identify(context.Background(), "good-code", stateOf(t, g))
	assert.ErrorIs(t, err, ErrUnverified)
}

func TestGoogleNotConfigured(t *testing.T) {
	g := NewGoogle(GoogleConfig{})
	assert.False(t, g.Configured())
	_, err := g.AuthURL()
	assert.ErrorIs(t, err, ErrNotConfigured)
}
