package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/christophergyman/teamboard/internal/taskboard"
)

// FetchTeamBoards lists the boards of a team.
func (c *Client) FetchTeamBoards(ctx context.Context, teamID int64) ([]taskboard.BoardSummary, error) {
	var boards []taskboard.BoardSummary
	err := c.do(ctx, request{
		op:     "fetch team boards",
		method: http.MethodGet,
		path:   "/boards",
		query:  idQuery("teamID", teamID),
	}, &boards)
	if err != nil {
		return nil, err
	}
	if boards == nil {
		boards = []taskboard.BoardSummary{}
	}
	return boards, nil
}

// FetchBoard retrieves a board with its columns and tasks.
func (c *Client) FetchBoard(ctx context.Context, boardID int64) (taskboard.Board, error) {
	var board taskboard.Board
	err := c.do(ctx, request{
		op:     "fetch board",
		method: http.MethodGet,
		path:   "/boards",
		query:  idQuery("id", boardID),
	}, &board)
	if err != nil {
		return taskboard.Board{}, err
	}
	if board.ID != boardID {
		return taskboard.Board{}, &taskboard.FetchError{
			Op:  "fetch board",
			Err: errors.New("response is for a different board"),
		}
	}
	return board, nil
}

type boardBody struct {
	TeamID int64  `json:"teamID,omitempty"`
	Name   string `json:"name"`
}

type createdResponse struct {
	ID int64 `json:"id"`
}

// CreateBoard creates a board for the team and returns its id.
func (c *Client) CreateBoard(ctx context.Context, teamID int64, name string) (int64, error) {
	var resp createdResponse
	err := c.do(ctx, request{
		op:     "create board",
		method: http.MethodPost,
		path:   "/boards",
		body:   boardBody{TeamID: teamID, Name: name},
	}, &resp)
	if err != nil {
		return 0, err
	}
	return resp.ID, nil
}

// RenameBoard changes a board's name.
func (c *Client) RenameBoard(ctx context.Context, boardID int64, name string) error {
	return c.do(ctx, request{
		op:     "rename board",
		method: http.MethodPatch,
		path:   "/boards",
		query:  idQuery("id", boardID),
		body:   boardBody{Name: name},
	}, nil)
}

// DeleteBoard deletes a board and everything on it.
func (c *Client) DeleteBoard(ctx context.Context, boardID int64) error {
	return c.do(ctx, request{
		op:     "delete board",
		method: http.MethodDelete,
		path:   "/boards",
		query:  idQuery("id", boardID),
	}, nil)
}

type membershipBody struct {
	Username string `json:"username"`
	Include  bool   `json:"include"`
}

// SetBoardMember includes or excludes a team member from a board.
func (c *Client) SetBoardMember(ctx context.Context, boardID int64, username string, include bool) error {
	return c.do(ctx, request{
		op:     "set board member",
		method: http.MethodPatch,
		path:   "/boards/members",
		query:  idQuery("id", boardID),
		body:   membershipBody{Username: username, Include: include},
	}, nil)
}
