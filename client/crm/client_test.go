package crm

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/oauth2"

	"github.com/sporadisk/worklog/session"
	"github.com/sporadisk/worklog/timesheet"
)

func testSession() *session.Session {
	return &session.Session{
		Token: &oauth2.Token{AccessToken: "tok-123", Expiry: time.Now().Add(time.Hour)},
		User:  session.Profile{ID: 1, Username: "somchai", Role: "User"},
	}
}

func TestBearerHeaderAttached(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		io.WriteString(w, `{"id":1,"title":"fix login"}`)
	}))
	defer srv.Close()

	c := New(srv.URL, testSession())
	if _, err := c.GetTask(1); err != nil {
		t.Errorf("GetTask: %s", err.Error())
		return
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("authorization header mismatch: got %q", gotAuth)
	}
}

func TestAuthenticatedCallsNeedSession(t *testing.T) {
	c := New("http://127.0.0.1:1", nil)
	if _, err := c.GetTask(1); !errors.Is(err, ErrNotLoggedIn) {
		t.Errorf("expected ErrNotLoggedIn, got %v", err)
	}
	if err := c.PostEntry(1, 1.5, ""); !errors.Is(err, ErrNotLoggedIn) {
		t.Errorf("expected ErrNotLoggedIn, got %v", err)
	}
}

func TestErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"error":"entries (list) is required"}`)
	}))
	defer srv.Close()

	c := New(srv.URL, testSession())
	err := c.PostEntryBatch([]timesheet.SubmissionEntry{{TaskID: 1}})
	if err == nil {
		t.Errorf("expected an error, got none")
		return
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Errorf("expected an *APIError in the chain, got: %s", err.Error())
		return
	}
	if apiErr.Code != http.StatusBadRequest || apiErr.Message != "entries (list) is required" {
		t.Errorf("unexpected APIError: %#v", apiErr)
	}
	if apiErr.SessionExpired() {
		t.Errorf("a 400 must not count as session expiry")
	}
}

func TestSessionExpired(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"error":"Token expired"}`)
	}))
	defer srv.Close()

	c := New(srv.URL, testSession())
	_, err := c.ListEntries(0)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Errorf("expected an *APIError, got %v", err)
		return
	}
	if !apiErr.SessionExpired() {
		t.Errorf("expected SessionExpired for 401 %q", apiErr.Message)
	}

	// A plain 401 is not expiry.
	plain := &APIError{Code: http.StatusUnauthorized, Message: "Invalid token"}
	if plain.SessionExpired() {
		t.Errorf("invalid-token 401 must not count as session expiry")
	}
}

func TestLoginBuildsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "somchai@example.com" || body["password"] != "hunter22" {
			t.Errorf("unexpected login body: %v", body)
		}
		io.WriteString(w, `{
			"token": "tok-456",
			"token_type": "Bearer",
			"expires_in": 3600,
			"user": {"id": 7, "username": "somchai", "email": "somchai@example.com", "role": "Admin"}
		}`)
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	sess, err := c.Login("somchai@example.com", "hunter22")
	if err != nil {
		t.Errorf("Login: %s", err.Error())
		return
	}
	if sess.Bearer() != "tok-456" || sess.User.ID != 7 {
		t.Errorf("unexpected session: %#v", sess)
	}
	if !sess.LoggedIn() || !sess.IsAdmin() {
		t.Errorf("expected a logged-in admin session")
	}
	if sess.Token.Expiry.Before(time.Now().Add(time.Minute)) {
		t.Errorf("expected expiry to honor expires_in, got %s", sess.Token.Expiry)
	}
	if c.Session() != sess {
		t.Errorf("expected the client to adopt the new session")
	}
}

func TestListTasksQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tasks/" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("sort") != "-created_at" || q.Get("page_size") != "200" || q.Get("priority") != "High" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		io.WriteString(w, `{"data":[{"id":1,"title":"a"},{"id":2,"title":"b"}],"page":1,"page_size":200,"total":2}`)
	}))
	defer srv.Close()

	c := New(srv.URL, testSession())
	page, err := c.ListTasks(TaskQuery{Sort: "-created_at", PageSize: 200, Priority: "High"})
	if err != nil {
		t.Errorf("ListTasks: %s", err.Error())
		return
	}
	if len(page.Data) != 2 || page.Total != 2 {
		t.Errorf("unexpected page: %#v", page)
	}
}

func TestPostEntryBatchBody(t *testing.T) {
	var got entryBatchRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/timesheet/bulk" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		io.WriteString(w, `{"created":1}`)
	}))
	defer srv.Close()

	c := New(srv.URL, testSession())
	entries := []timesheet.SubmissionEntry{
		{TaskID: 5, WorkDate: "2024-01-01", StartTime: "09:00", EndTime: "10:00", Note: "design"},
	}
	if err := c.PostEntryBatch(entries); err != nil {
		t.Errorf("PostEntryBatch: %s", err.Error())
		return
	}
	if len(got.Entries) != 1 || got.Entries[0] != entries[0] {
		t.Errorf("unexpected batch body: %#v", got)
	}
}

func TestCompleteTaskPath(t *testing.T) {
	var gotPath, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		io.WriteString(w, `{"message":"ok"}`)
	}))
	defer srv.Close()

	c := New(srv.URL, testSession())
	if err := c.CompleteTask(12); err != nil {
		t.Errorf("CompleteTask: %s", err.Error())
		return
	}
	if gotMethod != http.MethodPost || gotPath != "/timesheet/tasks/12/complete" {
		t.Errorf("unexpected request: %s %s", gotMethod, gotPath)
	}
}

func TestResetPassword(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/3/reset" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		io.WriteString(w, `{"new_password":"welcome123"}`)
	}))
	defer srv.Close()

	c := New(srv.URL, testSession())
	pw, err := c.ResetPassword(3)
	if err != nil {
		t.Errorf("ResetPassword: %s", err.Error())
		return
	}
	if pw != "welcome123" {
		t.Errorf("password mismatch: got %q", pw)
	}
}
