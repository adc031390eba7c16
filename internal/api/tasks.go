package api

import (
	"context"
	"net/http"

	"github.com/christophergyman/teamboard/internal/taskboard"
)

type newTaskBody struct {
	ColumnID    int64    `json:"column"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Subtasks    []string `json:"subtasks"`
}

type taskCreatedResponse struct {
	ID int64 `json:"task_id"`
}

type subtaskBody struct {
	Title  string `json:"title"`
	Order  int    `json:"order"`
	IsDone bool   `json:"done"`
}

type taskPatchBody struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Subtasks    []subtaskBody `json:"subtasks"`
}

type subtaskPatchBody struct {
	ID   int64 `json:"id"`
	Data struct {
		IsDone bool `json:"done"`
	} `json:"data"`
}

// CreateTask adds a task at the top of a column and returns its id. Subtasks
// are given by title and keep the order they are listed in.
func (c *Client) CreateTask(ctx context.Context, columnID int64, title, description string, subtasks []string) (int64, error) {
	if subtasks == nil {
		subtasks = []string{}
	}
	var resp taskCreatedResponse
	err := c.do(ctx, request{
		op:     "create task",
		method: http.MethodPost,
		path:   "/tasks",
		body: newTaskBody{
			ColumnID:    columnID,
			Title:       title,
			Description: description,
			Subtasks:    subtasks,
		},
	}, &resp)
	if err != nil {
		return 0, err
	}
	return resp.ID, nil
}

// EditTask replaces a task's title, description and subtasks with those of
// task. The service swaps the whole subtask list.
func (c *Client) EditTask(ctx context.Context, task taskboard.Task) error {
	body := taskPatchBody{
		Title:       task.Title,
		Description: task.Description,
		Subtasks:    make([]subtaskBody, 0, len(task.Subtasks)),
	}
	for _, st := range task.Subtasks {
		body.Subtasks = append(body.Subtasks, subtaskBody{Title: st.Title, Order: st.Order, IsDone: st.IsDone})
	}
	return c.do(ctx, request{
		op:     "edit task",
		method: http.MethodPatch,
		path:   "/tasks",
		query:  idQuery("id", task.ID),
		body:   body,
	}, nil)
}

// DeleteTask removes a task with its subtasks.
func (c *Client) DeleteTask(ctx context.Context, taskID int64) error {
	return c.do(ctx, request{
		op:     "delete task",
		method: http.MethodDelete,
		path:   "/tasks",
		query:  idQuery("id", taskID),
	}, nil)
}

// ToggleSubtask marks a subtask done or not done.
func (c *Client) ToggleSubtask(ctx context.Context, subtaskID int64, done bool) error {
	body := subtaskPatchBody{ID: subtaskID}
	body.Data.IsDone = done
	return c.do(ctx, request{
		op:     "toggle subtask",
		method: http.MethodPatch,
		path:   "/subtasks",
		body:   body,
	}, nil)
}
