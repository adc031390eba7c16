package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/christophergyman/teamboard/internal/taskboard"
)

// FetchMembers lists the members of a team.
func (c *Client) FetchMembers(ctx context.Context, teamID int64) ([]taskboard.Member, error) {
	var members []taskboard.Member
	err := c.do(ctx, request{
		op:     "fetch members",
		method: http.MethodGet,
		path:   "/users",
		query:  idQuery("teamID", teamID),
	}, &members)
	if err != nil {
		return nil, err
	}
	if members == nil {
		members = []taskboard.Member{}
	}
	return members, nil
}

type inviteBody struct {
	TeamID int64 `json:"teamID"`
}

type inviteResponse struct {
	InviteCode string `json:"inviteCode"`
}

// InviteMember asks the service for an invite code to the team.
func (c *Client) InviteMember(ctx context.Context, teamID int64) (string, error) {
	var resp inviteResponse
	err := c.do(ctx, request{
		op:     "invite member",
		method: http.MethodPost,
		path:   "/invites",
		body:   inviteBody{TeamID: teamID},
	}, &resp)
	if err != nil {
		return "", err
	}
	if resp.InviteCode == "" {
		return "", &taskboard.FetchError{Op: "invite member", Err: errors.New("no invite code in response")}
	}
	return resp.InviteCode, nil
}

// DeleteMember removes a user from the team.
func (c *Client) DeleteMember(ctx context.Context, username string) error {
	return c.do(ctx, request{
		op:     "delete member",
		method: http.MethodDelete,
		path:   "/users",
		query:  url.Values{"username": []string{username}},
	}, nil)
}
