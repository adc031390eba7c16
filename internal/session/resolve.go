package session

import "github.com/christophergyman/teamboard/internal/taskboard"

// ResolveBoardID picks the board to display. Precedence, highest first:
//
//  1. a team with exactly one board always shows it, whatever the hint;
//  2. a non-zero hint;
//  3. the currently active board, which makes a hint-less call a refresh.
//
// Zero means there is nothing to show.
func ResolveBoardID(boards []taskboard.BoardSummary, hint, current int64) int64 {
	if len(boards) == 1 {
		return boards[0].ID
	}
	if hint != 0 {
		return hint
	}
	return current
}
