// Package session owns the signed-in session: who the user is, their team's
// members and boards, and the one board on display.
//
// # Bootstrap Pipeline
//
// LoadBoard runs a strictly ordered pipeline, each step feeding the next:
//
//	verify token → team boards → team members → resolve id → board detail
//
// State is published after every successful step. A failure stops the
// pipeline and leaves whatever earlier steps stored; nothing is rolled back.
//
// # Overlapping Loads
//
// Only one LoadBoard runs at a time. A call made while another is in flight
// returns ErrLoadInProgress without touching state. Callers that must not
// lose their load, such as the refresh after a mutation, Wait for the one in
// flight and try again.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/christophergyman/teamboard/internal/taskboard"
)

// ErrLoadInProgress is returned by LoadBoard while another load runs
var ErrLoadInProgress = errors.New("board load already in progress")

// Verifier exchanges the stored credential for an identity
type Verifier interface {
	VerifyToken(ctx context.Context) (taskboard.Identity, error)
}

// BoardFetcher reads boards from the board service
type BoardFetcher interface {
	FetchTeamBoards(ctx context.Context, teamID int64) ([]taskboard.BoardSummary, error)
	FetchBoard(ctx context.Context, boardID int64) (taskboard.Board, error)
}

// MemberFetcher reads team members from the board service
type MemberFetcher interface {
	FetchMembers(ctx context.Context, teamID int64) ([]taskboard.Member, error)
}

// Remote is everything the bootstrap pipeline needs from the service
type Remote interface {
	Verifier
	BoardFetcher
	MemberFetcher
}

// Controller is the single owner of session state
type Controller struct {
	remote Remote
	log    *zap.Logger

	mu    sync.RWMutex
	state State
	// gen is bumped by Reset so an in-flight load cannot resurrect a
	// session that was dropped under it
	gen uint64
	// idle is closed when the load in flight finishes; nil when none runs
	idle chan struct{}
}

// NewController creates a controller with an empty, unauthenticated session
func NewController(remote Remote, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{remote: remote, log: log}
}

// State returns a snapshot of the session
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.clone()
}

// Loading reports whether a LoadBoard is in flight
func (c *Controller) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.Loading
}

// Wait blocks until no load is in flight or ctx is done.
func (c *Controller) Wait(ctx context.Context) error {
	c.mu.RLock()
	idle := c.idle
	c.mu.RUnlock()
	if idle == nil {
		return nil
	}
	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Reset drops the session, e.g. on logout. A load in flight keeps running
// but its results are discarded.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.state = State{Loading: c.state.Loading}
}

// LoadBoard authenticates the session, refreshes the team's boards and
// members, and loads the board to display. hint is the board the user asked
// for, zero for none. Errors are logged here and returned so the caller
// can decide where to navigate; AuthError means the session is gone.
func (c *Controller) LoadBoard(ctx context.Context, hint int64) error {
	gen, release, ok := c.acquire()
	if !ok {
		c.log.Debug("load board ignored, another load is in flight", zap.Int64("hint", hint))
		return ErrLoadInProgress
	}
	defer release()

	err := c.load(ctx, gen, hint)
	c.update(gen, func(s *State) { s.LastError = err })

	switch {
	case err == nil:
	case taskboard.IsAuth(err):
		c.log.Warn("session not authenticated", zap.Error(err))
	default:
		c.log.Error("load board failed", zap.Int64("hint", hint), zap.Error(err))
	}
	return err
}

// acquire sets the loading flag. The returned release clears it and must
// run on every exit path.
func (c *Controller) acquire() (uint64, func(), bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Loading {
		return 0, nil, false
	}
	c.state.Loading = true
	idle := make(chan struct{})
	c.idle = idle
	return c.gen, func() {
		c.mu.Lock()
		c.state.Loading = false
		c.idle = nil
		c.mu.Unlock()
		close(idle)
	}, true
}

// update applies fn unless the session was reset since gen was taken
func (c *Controller) update(gen uint64, fn func(*State)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return false
	}
	fn(&c.state)
	return true
}

func (c *Controller) load(ctx context.Context, gen uint64, hint int64) error {
	identity, err := c.verify(ctx, gen)
	if err != nil {
		return err
	}

	boards, err := c.teamBoards(ctx, gen, identity.TeamID)
	if err != nil {
		return err
	}

	if err := c.teamMembers(ctx, gen, identity.TeamID); err != nil {
		return err
	}

	c.mu.RLock()
	current := c.state.ActiveBoard.ID
	c.mu.RUnlock()

	boardID := ResolveBoardID(boards, hint, current)
	if boardID == 0 {
		c.log.Debug("no board to display", zap.Int("team_boards", len(boards)))
		return nil
	}
	if !taskboard.ContainsBoard(boards, boardID) {
		return fmt.Errorf("board %d: %w", boardID, taskboard.ErrBoardNotInTeam)
	}

	return c.activeBoard(ctx, gen, boardID)
}

// verify authenticates the session. An AuthError flips the user to
// unauthenticated; any other failure leaves the session as it was.
func (c *Controller) verify(ctx context.Context, gen uint64) (taskboard.Identity, error) {
	identity, err := c.remote.VerifyToken(ctx)
	if err != nil {
		if taskboard.IsAuth(err) {
			c.update(gen, func(s *State) { s.User.IsAuthenticated = false })
		}
		return taskboard.Identity{}, fmt.Errorf("verify session: %w", err)
	}

	c.update(gen, func(s *State) {
		if s.User.TeamID != 0 && s.User.TeamID != identity.TeamID {
			// another team's data must not outlive the switch
			*s = State{Loading: s.Loading}
		}
		s.User = taskboard.User{Identity: identity, IsAuthenticated: true}
	})
	return identity, nil
}

func (c *Controller) teamBoards(ctx context.Context, gen uint64, teamID int64) ([]taskboard.BoardSummary, error) {
	boards, err := c.remote.FetchTeamBoards(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("load team boards: %w", err)
	}

	c.update(gen, func(s *State) {
		s.Boards = boards
		if !s.ActiveBoard.IsZero() && !taskboard.ContainsBoard(boards, s.ActiveBoard.ID) {
			c.log.Info("active board left the team", zap.Int64("board_id", s.ActiveBoard.ID))
			s.ActiveBoard = taskboard.Board{}
		}
	})
	return boards, nil
}

func (c *Controller) teamMembers(ctx context.Context, gen uint64, teamID int64) error {
	members, err := c.remote.FetchMembers(ctx, teamID)
	if err != nil {
		return fmt.Errorf("load team members: %w", err)
	}
	c.update(gen, func(s *State) { s.Members = members })
	return nil
}

func (c *Controller) activeBoard(ctx context.Context, gen uint64, boardID int64) error {
	board, err := c.remote.FetchBoard(ctx, boardID)
	if err != nil {
		return fmt.Errorf("load board %d: %w", boardID, err)
	}
	c.update(gen, func(s *State) { s.ActiveBoard = board })
	return nil
}
