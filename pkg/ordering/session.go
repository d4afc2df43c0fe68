package ordering

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
)

// Session is one authenticated conversation with the backend: its cookie jar
// plus the anti-forgery token the backend issued for it. Sessions are not
// safe for reuse after Close.
type Session struct {
	token  string
	client *http.Client
}

// Token exposes the anti-forgery token, mainly for tests.
func (s *Session) Token() string {
	if s == nil {
		return ""
	}
	return s.token
}

type tokenResponse struct {
	Token string `json:"token"`
}

// fetchToken performs the anti-forgery handshake with the given jar-backed
// client and returns the issued token. Session cookies land in the jar as a
// side effect.
func (c *Client) fetchToken(ctx context.Context, client *http.Client) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(tokenPath), nil)
	if err != nil {
		return "", pkgerr("build token request", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", pkgerr("execute token request", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", statusError(resp, "token")
	}

	var payload tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", pkgerr("decode token response", err)
	}
	if payload.Token == "" {
		return "", pkgerr("token response", fmt.Errorf("empty token"))
	}
	return payload.Token, nil
}

// OpenSession establishes a fresh backend session: a new cookie jar and an
// anti-forgery token bound to it. Every submission gets its own session so
// concurrent submissions cannot share cart state.
func (c *Client) OpenSession(ctx context.Context) (*Session, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, pkgerr("create cookie jar", err)
	}

	sessionClient := *c.httpClient
	sessionClient.Jar = jar

	token, err := c.fetchToken(ctx, &sessionClient)
	if err != nil {
		return nil, err
	}

	c.log(ctx, "open_session", "done")
	return &Session{token: token, client: &sessionClient}, nil
}

// CloseSession tears the backend session down. Callers treat failures as
// non-fatal: the backend expires abandoned sessions on its own, teardown
// only reclaims them early.
func (c *Client) CloseSession(ctx context.Context, session *Session) error {
	form := url.Values{}
	form.Set("_token", session.Token())

	resp, err := c.postForm(ctx, session, sessionClosePath, form, "close_session")
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	c.log(ctx, "close_session", "done")
	return nil
}
