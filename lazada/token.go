package lazada

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/oauth2"
)

// TokenCreateAPI exchanges an authorization code for a seller access token.
const TokenCreateAPI = "/auth/token/create"

// CreateToken exchanges an authorization code for an access token.
func (c *Client) CreateToken(ctx context.Context, code string) (*Response, error) {
	req := NewRequest(TokenCreateAPI)
	req.AddParam("code", code)
	return c.Execute(ctx, req, "")
}

// Token decodes the common token fields of a /auth/token/create reply. Every
// top-level field of the body, including account and country, is available
// through the token's Extra method.
func (r *Response) Token() (*oauth2.Token, error) {
	var raw struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		ExpiresIn    int64  `json:"expires_in"`
	}
	if err := json.Unmarshal(r.Body, &raw); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}
	if raw.AccessToken == "" {
		return nil, errors.New("decode token: missing access_token")
	}

	var extra map[string]any
	if err := json.Unmarshal(r.Body, &extra); err != nil {
		return nil, fmt.Errorf("decode token extras: %w", err)
	}

	issued := r.ReceivedAt
	if issued.IsZero() {
		issued = time.Now()
	}

	tok := &oauth2.Token{
		AccessToken:  raw.AccessToken,
		TokenType:    "Bearer",
		RefreshToken: raw.RefreshToken,
		ExpiresIn:    raw.ExpiresIn,
	}
	if raw.ExpiresIn > 0 {
		tok.Expiry = issued.Add(time.Duration(raw.ExpiresIn) * time.Second)
	}
	return tok.WithExtra(extra), nil
}
