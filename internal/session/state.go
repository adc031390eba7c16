package session

import "github.com/christophergyman/teamboard/internal/taskboard"

// State is a read-only snapshot of the session. Views receive it by value
// and never write back; changes go through Controller.LoadBoard.
type State struct {
	User        taskboard.User
	Members     []taskboard.Member
	Boards      []taskboard.BoardSummary
	ActiveBoard taskboard.Board
	Loading     bool
	LastError   error
}

// IsActiveBoard reports whether id is the board on display.
func (s State) IsActiveBoard(id int64) bool {
	return id != 0 && s.ActiveBoard.ID == id
}

// clone copies the slices so a snapshot cannot alias controller state
func (s State) clone() State {
	out := s
	out.Members = append([]taskboard.Member(nil), s.Members...)
	out.Boards = append([]taskboard.BoardSummary(nil), s.Boards...)
	out.ActiveBoard.Columns = append([]taskboard.Column(nil), s.ActiveBoard.Columns...)
	return out
}
