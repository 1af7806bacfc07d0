package crm

import (
	"errors"
	"strings"
	"time"

	"github.com/sporadisk/worklog/client"
	"github.com/sporadisk/worklog/session"
)

// DefaultEndpoint matches the backend's development default.
const DefaultEndpoint = "http://localhost:5000/api"

var ErrNotLoggedIn = errors.New("not logged in")

// Client talks to the CRM task/timesheet API. The session is injected, never
// read from ambient state; auth endpoints work without one and Login fills
// it in.
type Client struct {
	// Configuration
	Endpoint string

	// State
	HttpClient *client.HttpClient
	session    *session.Session
}

func New(endpoint string, sess *session.Session) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		Endpoint:   strings.TrimRight(endpoint, "/"),
		HttpClient: client.NewHttpClient(10 * time.Second),
		session:    sess,
	}
}

// Session returns the session currently attached to the client. May be nil.
func (c *Client) Session() *session.Session {
	return c.session
}

// prep needs to be run prior to making authenticated API calls, to verify
// that a usable token is attached.
func (c *Client) prep() error {
	if !c.session.LoggedIn() {
		return ErrNotLoggedIn
	}
	return nil
}

func (c *Client) apiURL(endpoint string) string {
	return c.Endpoint + "/" + strings.TrimLeft(endpoint, "/")
}
