package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/christophergyman/teamboard/internal/taskboard"
)

// VerifyToken exchanges the stored token for the identity it belongs to.
func (c *Client) VerifyToken(ctx context.Context) (taskboard.Identity, error) {
	var id taskboard.Identity
	err := c.do(ctx, request{
		op:     "verify token",
		method: http.MethodPost,
		path:   "/verify-token",
	}, &id)
	if err != nil {
		return taskboard.Identity{}, err
	}
	if id.Username == "" || id.TeamID == 0 {
		return taskboard.Identity{}, &taskboard.FetchError{
			Op:  "verify token",
			Err: errors.New("incomplete identity in response"),
		}
	}
	return id, nil
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registration struct {
	Username             string `json:"username"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"passwordConfirmation"`
	InviteCode           string `json:"inviteCode,omitempty"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Login authenticates with username and password and stores the issued token.
func (c *Client) Login(ctx context.Context, username, password string) error {
	var resp tokenResponse
	err := c.do(ctx, request{
		op:        "login",
		method:    http.MethodPost,
		path:      "/login",
		body:      credentials{Username: username, Password: password},
		anonymous: true,
	}, &resp)
	if err != nil {
		return err
	}
	return c.storeToken("login", resp.Token)
}

// Register creates an account, optionally joining the team behind
// inviteCode, and stores the issued token.
func (c *Client) Register(ctx context.Context, username, password, confirmation, inviteCode string) error {
	var resp tokenResponse
	err := c.do(ctx, request{
		op:     "register",
		method: http.MethodPost,
		path:   "/register",
		body: registration{
			Username:             username,
			Password:             password,
			PasswordConfirmation: confirmation,
			InviteCode:           inviteCode,
		},
		anonymous: true,
	}, &resp)
	if err != nil {
		return err
	}
	return c.storeToken("register", resp.Token)
}

// Logout forgets the stored token.
func (c *Client) Logout() error {
	return c.tokens.Clear()
}

func (c *Client) storeToken(op, token string) error {
	if token == "" {
		return &taskboard.FetchError{Op: op, Err: errors.New("no token in response")}
	}
	if err := c.tokens.Save(token); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
