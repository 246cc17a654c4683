// Package oauth signs staff in with their Google account. Google only proves
// the e-mail address; the account itself must already exist in a store.
package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

var (
	ErrNotConfigured = errors.New("google sign-in is not configured")
	ErrInvalidState  = errors.New("invalid or expired sign-in state")
	ErrInvalidCode   = errors.New("invalid authorization code")
	ErrUserInfo      = errors.New("failed to get user info from Google")
	ErrUnverified    = errors.New("google account e-mail is not verified")
)

const (
	defaultUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
	stateIssuer        = "optica-api/google-state"
)

// Identity is the verified Google profile of the person signing in.
type Identity struct {
	Subject string
	Email   string
	Name    string
}

type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
}

// GoogleConfig holds the Google client settings. Endpoint and UserInfoURL
// default to Google's own.
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	StateSecret  string
	StateTTL     time.Duration
	Endpoint     oauth2.Endpoint
	UserInfoURL  string
}

// Google runs the authorization code flow. The state parameter is a short
// lived signed token, so no server-side session is needed between the
// redirect and the callback.
type Google struct {
	config      *oauth2.Config
	userInfoURL string
	stateKey    []byte
	stateTTL    time.Duration
}

// NewGoogle creates the Google sign-in client
func NewGoogle(cfg GoogleConfig) *Google {
	endpoint := cfg.Endpoint
	if endpoint.AuthURL == "" {
		endpoint = google.Endpoint
	}
	userInfoURL := cfg.UserInfoURL
	if userInfoURL == "" {
		userInfoURL = defaultUserInfoURL
	}
	ttl := cfg.StateTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}

	return &Google{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: endpoint,
		},
		userInfoURL: userInfoURL,
		stateKey:    []byte(cfg.StateSecret),
		stateTTL:    ttl,
	}
}

// Configured reports whether client credentials are present
func (g *Google) Configured() bool {
	return g.config.ClientID != "" && g.config.ClientSecret != "" && len(g.stateKey) > 0
}

// AuthURL returns the consent page to redirect the browser to
func (g *Google) AuthURL() (string, error) {
	if !g.Configured() {
		return "", ErrNotConfigured
	}
	state, err := g.signState(time.Now())
	if err != nil {
		return "", err
	}
	return g.config.AuthCodeURL(state, oauth2.AccessTypeOnline), nil
}

func (g *Google) signState(now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    stateIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(g.stateTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.stateKey)
}

func (g *Google) checkState(state string) error {
	_, err := jwt.ParseWithClaims(state, &jwt.RegisteredClaims{},
		func(*jwt.Token) (interface{}, error) { return g.stateKey, nil },
		jwt.WithIssuer(stateIssuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	return nil
}

// Identify validates the callback state, exchanges the code and returns the
// Google profile. Unverified addresses are rejected.
func (g *Google) Identify(ctx context.Context, code, state string) (*Identity, error) {
	if !g.Configured() {
		return nil, ErrNotConfigured
	}
	if err := g.checkState(state); err != nil {
		return nil, err
	}
	if code == "" {
		return nil, ErrInvalidCode
	}

	token, err := g.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCode, err)
	}

	resp, err := g.config.Client(ctx, token).Get(g.userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUserInfo, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d, body: %s", ErrUserInfo, resp.StatusCode, string(body))
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUserInfo, err)
	}
	if !info.VerifiedEmail || info.Email == "" {
		return nil, ErrUnverified
	}

	return &Identity{
		Subject: info.ID,
		Email:   strings.ToLower(strings.TrimSpace(info.Email)),
		Name:    info.Name,
	}, nil
}
