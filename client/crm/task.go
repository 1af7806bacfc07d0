package crm

import (
	"fmt"
	"strconv"
)

// Task statuses as the backend spells them.
const (
	StatusOpen       = "Open"
	StatusInProgress = "In Progress"
	StatusComplete   = "Complete"
	StatusCancelled  = "Cancelled"
)

// Task is read-only on this side of the wire: the server owns every
// transition, including the Open -> In Progress flip after a timesheet save.
type Task struct {
	ID           int    `json:"id"`
	TaskCode     string `json:"task_code"`
	Title        string `json:"title"`
	Details      string `json:"details"`
	Status       string `json:"status"`
	Priority     string `json:"priority"`
	DueDate      string `json:"due_date"`
	AssigneeID   int    `json:"assignee_id"`
	AssigneeName string `json:"assignee_name"`
	CreatedAt    string `json:"created_at"`
}

// Completed reports whether the "mark complete" action should be offered.
func (t *Task) Completed() bool {
	return t.Status == StatusComplete
}

// Code returns the display code, falling back to the TS-0000 form the web
// front end synthesizes for tasks without one.
func (t *Task) Code() string {
	if t.TaskCode != "" {
		return t.TaskCode
	}
	return fmt.Sprintf("TS-%04d", t.ID)
}

// TaskQuery narrows down the task list. Zero values mean "no filter".
type TaskQuery struct {
	Sort       string
	Priority   string
	Search     string
	Status     string
	PageSize   int
	Page       int
	AssigneeID int
}

func (q TaskQuery) params() map[string]string {
	params := map[string]string{}
	if q.Sort != "" {
		params["sort"] = q.Sort
	}
	if q.Priority != "" {
		params["priority"] = q.Priority
	}
	if q.Search != "" {
		params["search"] = q.Search
	}
	if q.Status != "" {
		params["status"] = q.Status
	}
	if q.PageSize > 0 {
		params["page_size"] = strconv.Itoa(q.PageSize)
	}
	if q.Page > 0 {
		params["page"] = strconv.Itoa(q.Page)
	}
	if q.AssigneeID > 0 {
		params["assignee_id"] = strconv.Itoa(q.AssigneeID)
	}
	return params
}

// TaskPage is the paginated task list envelope.
type TaskPage struct {
	Data     []Task `json:"data"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Total    int    `json:"total"`
}

func (c *Client) ListTasks(q TaskQuery) (*TaskPage, error) {
	var page TaskPage
	if err := c.getJSON("tasks/", q.params(), &page); err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	return &page, nil
}

func (c *Client) GetTask(id int) (*Task, error) {
	var t Task
	if err := c.getJSON(fmt.Sprintf("tasks/%d", id), nil, &t); err != nil {
		return nil, fmt.Errorf("fetching task %d: %w", id, err)
	}
	if t.ID == 0 {
		return nil, fmt.Errorf("task %d not found", id)
	}
	return &t, nil
}

// NewTask carries the fields of the assignment form.
type NewTask struct {
	Title      string `json:"title"`
	AssigneeID int    `json:"assignee_id"`
	DueDate    string `json:"due_date,omitempty"`
	Priority   string `json:"priority,omitempty"`
	Details    string `json:"details,omitempty"`
}

func (c *Client) CreateTask(t NewTask) (*Task, error) {
	if err := c.prep(); err != nil {
		return nil, err
	}

	resp, err := c.PostRequest("tasks/", t)
	if err != nil {
		return nil, fmt.Errorf("c.PostRequest(tasks/): %w", err)
	}
	if err := respError(resp); err != nil {
		return nil, err
	}
	return c.decodeTask(resp.Body)
}

// UpdateTask patches the given fields. Passing {"status": StatusComplete} is
// an alternate way to complete a task; CompleteTask is the canonical one.
func (c *Client) UpdateTask(id int, fields map[string]any) error {
	if err := c.prep(); err != nil {
		return err
	}

	resp, err := c.PatchRequest(fmt.Sprintf("tasks/%d", id), fields)
	if err != nil {
		return fmt.Errorf("c.PatchRequest(tasks/%d): %w", id, err)
	}
	return respError(resp)
}

func (c *Client) DeleteTask(id int) error {
	if err := c.prep(); err != nil {
		return err
	}

	resp, err := c.DeleteRequest(fmt.Sprintf("tasks/%d", id))
	if err != nil {
		return fmt.Errorf("c.DeleteRequest(tasks/%d): %w", id, err)
	}
	return respError(resp)
}

// CompleteTask marks the task done via the timesheet-side endpoint.
func (c *Client) CompleteTask(id int) error {
	if err := c.prep(); err != nil {
		return err
	}

	resp, err := c.PostRequest(fmt.Sprintf("timesheet/tasks/%d/complete", id), nil)
	if err != nil {
		return fmt.Errorf("c.PostRequest(timesheet/tasks/%d/complete): %w", id, err)
	}
	return respError(resp)
}

// ReopenTask flips a completed task back to Open. The server only allows
// this for Admin and HR accounts.
func (c *Client) ReopenTask(id int) error {
	if err := c.prep(); err != nil {
		return err
	}

	resp, err := c.PostRequest(fmt.Sprintf("timesheet/tasks/%d/reopen", id), nil)
	if err != nil {
		return fmt.Errorf("c.PostRequest(timesheet/tasks/%d/reopen): %w", id, err)
	}
	return respError(resp)
}

func (c *Client) decodeTask(body []byte) (*Task, error) {
	var t Task
	if err := unmarshal(body, &t); err != nil {
		return nil, err
	}
	if t.ID == 0 {
		return nil, fmt.Errorf("response carried no task")
	}
	return &t, nil
}
