package google

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
)

// RefreshThreshold is how long before the recorded expiry a token is already
// treated as expired. It matches the threshold used by Google's own auth
// libraries, which write the files this package reads.
const RefreshThreshold = 3*time.Minute + 45*time.Second

// expiryLayout is the layout written back to disk (UTC, microseconds, "Z").
const expiryLayout = "2006-01-02T15:04:05.000000Z"

// Keys of the authorized-user JSON document.
const (
	keyToken        = "token"
	keyRefreshToken = "refresh_token"
	keyTokenURI     = "token_uri"
	keyClientID     = "client_id"
	keyClientSecret = "client_secret"
	keyScopes       = "scopes"
	keyExpiry       = "expiry"
)

// Credential is an authorized-user OAuth credential as persisted on disk.
type Credential struct {
	AccessToken  string
	RefreshToken string
	Expiry       time.Time
	TokenURI     string
	ClientID     string
	ClientSecret string

	// Scopes are the scopes recorded in the file as granted.
	Scopes []string

	// RequestedScopes are the scopes the caller asked for at load time.
	// They are informational and are never checked against Scopes.
	RequestedScopes []string

	// extra keeps keys this package does not interpret so a rewrite
	// does not drop them.
	extra map[string]json.RawMessage
}

// ParseCredential decodes an authorized-user JSON document.
func ParseCredential(data []byte) (*Credential, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("credential document is not a JSON object")
	}

	c := &Credential{extra: make(map[string]json.RawMessage)}
	for key, value := range raw {
		var err error
		switch key {
		case keyToken:
			err = decodeOptionalString(value, &c.AccessToken)
		case keyRefreshToken:
			err = decodeOptionalString(value, &c.RefreshToken)
		case keyTokenURI:
			err = decodeOptionalString(value, &c.TokenURI)
		case keyClientID:
			err = decodeOptionalString(value, &c.ClientID)
		case keyClientSecret:
			err = decodeOptionalString(value, &c.ClientSecret)
		case keyScopes:
			c.Scopes, err = decodeScopes(value)
		case keyExpiry:
			var s string
			if err = decodeOptionalString(value, &s); err == nil && s != "" {
				c.Expiry, err = parseExpiry(s)
			}
		default:
			c.extra[key] = value
		}
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}
	}

	return c, nil
}

// Marshal encodes the credential back into the authorized-user JSON document,
// preserving unknown keys.
func (c *Credential) Marshal() ([]byte, error) {
	out := make(map[string]any, len(c.extra)+7)
	for k, v := range c.extra {
		out[k] = v
	}

	out[keyToken] = nullableString(c.AccessToken)
	out[keyRefreshToken] = nullableString(c.RefreshToken)
	for key, value := range map[string]string{
		keyTokenURI:     c.TokenURI,
		keyClientID:     c.ClientID,
		keyClientSecret: c.ClientSecret,
	} {
		if value != "" {
			out[key] = value
		}
	}
	if c.Scopes != nil {
		out[keyScopes] = c.Scopes
	}
	if c.Expiry.IsZero() {
		delete(out, keyExpiry)
	} else {
		out[keyExpiry] = c.Expiry.UTC().Format(expiryLayout)
	}

	return json.Marshal(out)
}

// Expired reports whether the access token is expired, or will be within
// RefreshThreshold, at the given time. A credential without an expiry never expires.
func (c *Credential) Expired(now time.Time) bool {
	if c.Expiry.IsZero() {
		return false
	}
	return !now.Add(RefreshThreshold).Before(c.Expiry)
}

// Valid reports whether the credential carries a usable access token at now.
func (c *Credential) Valid(now time.Time) bool {
	return c.AccessToken != "" && !c.Expired(now)
}

// Token returns the credential as an oauth2 bearer token.
func (c *Credential) Token() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  c.AccessToken,
		TokenType:    "Bearer",
		RefreshToken: c.RefreshToken,
		Expiry:       c.Expiry,
	}
}

// TokenSource returns a static token source for the already-resolved credential.
// Refresh happens once at load time, never mid-request.
func (c *Credential) TokenSource() oauth2.TokenSource {
	return oauth2.StaticTokenSource(c.Token())
}

// oauthConfig builds the client configuration used for the refresh exchange.
func (c *Credential) oauthConfig() *oauth2.Config {
	tokenURL := c.TokenURI
	if tokenURL == "" {
		tokenURL = googleoauth.Endpoint.TokenURL
	}
	return &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:   googleoauth.Endpoint.AuthURL,
			TokenURL:  tokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
		Scopes: c.Scopes,
	}
}

// apply copies a freshly minted token into the credential.
func (c *Credential) apply(tok *oauth2.Token) {
	c.AccessToken = tok.AccessToken
	if tok.RefreshToken != "" {
		c.RefreshToken = tok.RefreshToken
	}
	c.Expiry = tok.Expiry.UTC()
	if scope, ok := tok.Extra("scope").(string); ok && scope != "" {
		c.Scopes = strings.Fields(scope)
	}
}

func decodeOptionalString(raw json.RawMessage, dst *string) error {
	var s *string
	if err := json.Unmarshal(raw, &s); err != nil {
		return err
	}
	if s != nil {
		*dst = *s
	}
	return nil
}

// decodeScopes accepts either a list of scopes or a space separated string.
func decodeScopes(raw json.RawMessage) ([]string, error) {
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}
	var s *string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	if s == nil {
		return nil, nil
	}
	return strings.Fields(*s), nil
}

// parseExpiry accepts RFC 3339 timestamps and naive ISO timestamps, which are read as UTC.
func parseExpiry(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.ParseInLocation("2006-01-02T15:04:05.999999999", s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized expiry %q", s)
	}
	return t, nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
