package crm

import (
	"encoding/json"
	"fmt"
)

// User is an account row from the admin panel.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

// ListUsers fetches all accounts. Admin only; the server does no filtering,
// so callers narrow the list themselves.
func (c *Client) ListUsers() ([]User, error) {
	var users []User
	if err := c.getJSON("users/", nil, &users); err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

// Assignee is the reduced user shape the assignment form works with: only
// active accounts, no role or status fields.
type Assignee struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// AssignableUsers lists the active accounts a task can be assigned to. Unlike
// the rest of the user surface this needs no admin role.
func (c *Client) AssignableUsers() ([]Assignee, error) {
	var users []Assignee
	if err := c.getJSON("users/assignable", nil, &users); err != nil {
		return nil, fmt.Errorf("listing assignable users: %w", err)
	}
	return users, nil
}

// NewUser carries the admin create-user form. The server generates a
// temporary password and returns it once.
type NewUser struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role,omitempty"`
}

// CreateUser creates an account and returns its temporary password.
func (c *Client) CreateUser(u NewUser) (string, error) {
	if err := c.prep(); err != nil {
		return "", err
	}

	resp, err := c.PostRequest("users/", u)
	if err != nil {
		return "", fmt.Errorf("c.PostRequest(users/): %w", err)
	}
	if err := respError(resp); err != nil {
		return "", err
	}

	var created struct {
		TempPassword string `json:"temp_password"`
	}
	if err := json.Unmarshal(resp.Body, &created); err != nil {
		return "", fmt.Errorf("json.Unmarshal: %w", err)
	}
	return created.TempPassword, nil
}

func (c *Client) DeleteUser(id int) error {
	if err := c.prep(); err != nil {
		return err
	}

	resp, err := c.DeleteRequest(fmt.Sprintf("users/%d", id))
	if err != nil {
		return fmt.Errorf("c.DeleteRequest(users/%d): %w", id, err)
	}
	return respError(resp)
}

// ResetPassword resets the account to a server-chosen password and returns
// it.
func (c *Client) ResetPassword(id int) (string, error) {
	if err := c.prep(); err != nil {
		return "", err
	}

	resp, err := c.PostRequest(fmt.Sprintf("users/%d/reset", id), nil)
	if err != nil {
		return "", fmt.Errorf("c.PostRequest(users/%d/reset): %w", id, err)
	}
	if err := respError(resp); err != nil {
		return "", err
	}

	var reset struct {
		NewPassword string `json:"new_password"`
	}
	if err := json.Unmarshal(resp.Body, &reset); err != nil {
		return "", fmt.Errorf("json.Unmarshal: %w", err)
	}
	return reset.NewPassword, nil
}

func (c *Client) DisableUser(id int) error {
	if err := c.prep(); err != nil {
		return err
	}

	resp, err := c.PostRequest(fmt.Sprintf("users/%d/disable", id), nil)
	if err != nil {
		return fmt.Errorf("c.PostRequest(users/%d/disable): %w", id, err)
	}
	return respError(resp)
}

func (c *Client) EnableUser(id int) error {
	if err := c.prep(); err != nil {
		return err
	}

	resp, err := c.PatchRequest(fmt.Sprintf("users/%d/enable", id), nil)
	if err != nil {
		return fmt.Errorf("c.PatchRequest(users/%d/enable): %w", id, err)
	}
	return respError(resp)
}
