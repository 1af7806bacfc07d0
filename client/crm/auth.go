package crm

import (
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/oauth2"

	"github.com/sporadisk/worklog/session"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string          `json:"token"`
	TokenType string          `json:"token_type"`
	ExpiresIn int64           `json:"expires_in"`
	User      session.Profile `json:"user"`
}

// Login exchanges credentials for a bearer token and attaches the resulting
// session to the client. Persisting it is the caller's call.
func (c *Client) Login(email, password string) (*session.Session, error) {
	resp, err := c.PostRequest("auth/login", loginRequest{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("c.PostRequest(auth/login): %w", err)
	}
	if err := respError(resp); err != nil {
		return nil, err
	}

	var lr loginResponse
	if err := json.Unmarshal(resp.Body, &lr); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}
	if lr.Token == "" {
		return nil, fmt.Errorf("login response carried no token")
	}

	token := &oauth2.Token{AccessToken: lr.Token, TokenType: lr.TokenType}
	if lr.ExpiresIn > 0 {
		token.Expiry = time.Now().Add(time.Duration(lr.ExpiresIn) * time.Second)
	}

	sess := &session.Session{Token: token, User: lr.User}
	c.session = sess
	return sess, nil
}

type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Register creates a new account. Self-registration always gets the User
// role, matching the public registration form.
func (c *Client) Register(email, username, password string) error {
	req := registerRequest{
		Email:    email,
		Username: username,
		Password: password,
		Role:     "User",
	}

	resp, err := c.PostRequest("auth/register", req)
	if err != nil {
		return fmt.Errorf("c.PostRequest(auth/register): %w", err)
	}
	return respError(resp)
}

// Me fetches the profile behind the current token, which doubles as a token
// check.
func (c *Client) Me() (*session.Profile, error) {
	var envelope struct {
		User session.Profile `json:"user"`
	}
	if err := c.getJSON("auth/me", nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope.User, nil
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (c *Client) ChangePassword(oldPassword, newPassword string) error {
	if err := c.prep(); err != nil {
		return err
	}

	req := changePasswordRequest{OldPassword: oldPassword, NewPassword: newPassword}
	resp, err := c.PostRequest("auth/change-password", req)
	if err != nil {
		return fmt.Errorf("c.PostRequest(auth/change-password): %w", err)
	}
	return respError(resp)
}
