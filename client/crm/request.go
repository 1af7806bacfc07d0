package crm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sporadisk/worklog/client"
)

// APIError is a non-2xx response from the API, carrying the server's error
// message when one was present.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Code, e.Message)
}

// SessionExpired reports whether the server rejected the request because the
// bearer token has run out. The backend signals this as a 401 with "expired"
// in the message.
func (e *APIError) SessionExpired() bool {
	return e.Code == http.StatusUnauthorized &&
		strings.Contains(strings.ToLower(e.Message), "expired")
}

// errorEnvelope is the error shape used across all of the API's endpoints.
// Most return {"error": ...}; a few return {"message": ...}.
type errorEnvelope struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// respError turns a non-2xx response into an *APIError. 2xx responses map to
// nil.
func respError(resp *client.Resp) error {
	if resp.OK() {
		return nil
	}

	var envelope errorEnvelope
	msg := ""
	if err := json.Unmarshal(resp.Body, &envelope); err == nil {
		msg = envelope.Error
		if msg == "" {
			msg = envelope.Message
		}
	}
	if msg == "" {
		msg = "request failed"
	}

	return &APIError{Code: resp.Code, Message: msg}
}

func (c *Client) GetRequest(endpoint string, params map[string]string) (*client.Resp, error) {
	return c.request(http.MethodGet, endpoint, params, nil)
}

func (c *Client) PostRequest(endpoint string, body any) (*client.Resp, error) {
	return c.request(http.MethodPost, endpoint, nil, body)
}

func (c *Client) PatchRequest(endpoint string, body any) (*client.Resp, error) {
	return c.request(http.MethodPatch, endpoint, nil, body)
}

func (c *Client) DeleteRequest(endpoint string) (*client.Resp, error) {
	return c.request(http.MethodDelete, endpoint, nil, nil)
}

func (c *Client) request(method, endpoint string, params map[string]string, body any) (*client.Resp, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("json.Marshal: %w", err)
		}
		bodyReader = bytes.NewBuffer(bodyBytes)
	}

	req, err := http.NewRequest(method, c.apiURL(endpoint), bodyReader)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequest: %w", err)
	}

	if len(params) > 0 {
		q := url.Values{}
		for k, v := range params {
			q.Add(k, v)
		}
		req.URL.RawQuery = q.Encode()
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer := c.session.Bearer(); bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	return c.HttpClient.Do(req)
}

func unmarshal(body []byte, out any) error {
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("json.Unmarshal: %w", err)
	}
	return nil
}

// getJSON runs an authenticated GET and decodes the response into out.
func (c *Client) getJSON(endpoint string, params map[string]string, out any) error {
	if err := c.prep(); err != nil {
		return err
	}

	resp, err := c.GetRequest(endpoint, params)
	if err != nil {
		return fmt.Errorf("c.GetRequest(%s): %w", endpoint, err)
	}
	if err := respError(resp); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("json.Unmarshal: %w", err)
	}
	return nil
}
