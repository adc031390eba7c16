package taskboard

import "sort"

// Identity is what the board service reports for a verified credential
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	TeamID   int64  `json:"teamID"`
	IsAdmin  bool   `json:"isAdmin"`
}

// User is the session's view of the signed-in user.
// IsAuthenticated is derived each session and never persisted.
type User struct {
	Identity
	IsAuthenticated bool `json:"-"`
}

// Member is a user belonging to the current team
type Member struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	IsActive bool   `json:"isActive"` // included in the active board
}

// BoardSummary is a board as listed for a team
type BoardSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Board is the full nested content of a single board
type Board struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
}

// Column holds the tasks of one board column, ordered by Order
type Column struct {
	ID    int64  `json:"id"`
	Order int    `json:"order"`
	Tasks []Task `json:"tasks"`
}

// Task is a single card on the board
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Order       int       `json:"order"`
	Subtasks    []Subtask `json:"subtasks"`
}

// Subtask is a checklist item of a task
type Subtask struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Order  int    `json:"order"`
	IsDone bool   `json:"done"`
}

// MaxTitle is the longest task or subtask title the service accepts
const MaxTitle = 50

// ColumnNames are the fixed column headings, indexed by Column.Order
var ColumnNames = []string{"INBOX", "READY", "GO", "DONE"}

// ColumnName returns the heading for a column order, or "" when unknown.
func ColumnName(order int) string {
	if order < 0 || order >= len(ColumnNames) {
		return ""
	}
	return ColumnNames[order]
}

// Summary strips the nested content of a board.
func (b Board) Summary() BoardSummary {
	return BoardSummary{ID: b.ID, Name: b.Name}
}

// IsZero reports whether no board is loaded.
func (b Board) IsZero() bool {
	return b.ID == 0
}

// Ordered returns a copy of the columns sorted by Order, each with its
// tasks sorted by Order.
func (b Board) Ordered() []Column {
	columns := make([]Column, len(b.Columns))
	for i, col := range b.Columns {
		col.Tasks = append([]Task(nil), col.Tasks...)
		sort.SliceStable(col.Tasks, func(i, j int) bool { return col.Tasks[i].Order < col.Tasks[j].Order })
		columns[i] = col
	}
	sort.SliceStable(columns, func(i, j int) bool { return columns[i].Order < columns[j].Order })
	return columns
}

// OrderedSubtasks returns a copy of the subtasks sorted by Order.
func (t Task) OrderedSubtasks() []Subtask {
	out := append([]Subtask(nil), t.Subtasks...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// ContainsBoard reports whether id is one of the listed boards.
func ContainsBoard(boards []BoardSummary, id int64) bool {
	for _, b := range boards {
		if b.ID == id {
			return true
		}
	}
	return false
}
