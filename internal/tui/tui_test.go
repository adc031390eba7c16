package tui

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/christophergyman/teamboard/internal/route"
	"github.com/christophergyman/teamboard/internal/session"
	"github.com/christophergyman/teamboard/internal/taskboard"
	"github.com/christophergyman/teamboard/internal/window"
)

// fakeBackend is an in-memory board service
type fakeBackend struct {
	mu       sync.Mutex
	identity taskboard.Identity
	loggedIn bool
	failNext error // returned by the next mutation
	boards   []taskboard.BoardSummary
	members  []taskboard.Member
	nextID   int64
	fetched  []int64 // board detail fetches, in order
	content  map[int64][]taskboard.Column
	// gate, when set, holds VerifyToken until it is closed
	gate chan struct{}
}

func newBackend(admin bool, boards ...taskboard.BoardSummary) *fakeBackend {
	return &fakeBackend{
		identity: taskboard.Identity{ID: 1, Username: "bob", TeamID: 9, IsAdmin: admin},
		loggedIn: true,
		boards:   boards,
		members: []taskboard.Member{
			{ID: 1, Username: "bob", IsActive: true},
			{ID: 2, Username: "amy"},
		},
		nextID:  100,
		content: map[int64][]taskboard.Column{},
	}
}

func (f *fakeBackend) VerifyToken(context.Context) (taskboard.Identity, error) {
	f.mu.Lock()
	gate := f.gate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.loggedIn {
		return taskboard.Identity{}, &taskboard.AuthError{Reason: taskboard.AuthMissing}
	}
	return f.identity, nil
}

func (f *fakeBackend) FetchTeamBoards(context.Context, int64) ([]taskboard.BoardSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]taskboard.BoardSummary(nil), f.boards...), nil
}

func (f *fakeBackend) FetchBoard(_ context.Context, id int64) (taskboard.Board, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetched = append(f.fetched, id)
	for _, b := range f.boards {
		if b.ID == id {
			return taskboard.Board{ID: b.ID, Name: b.Name, Columns: copyColumns(f.columns(id))}, nil
		}
	}
	return taskboard.Board{}, &taskboard.FetchError{Op: "fetch board", Status: http.StatusNotFound, Err: errors.New("not found")}
}

func (f *fakeBackend) FetchMembers(context.Context, int64) ([]taskboard.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]taskboard.Member(nil), f.members...), nil
}

func (f *fakeBackend) Login(_ context.Context, username, password string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if password != "pw" {
		return &taskboard.FetchError{Op: "login", Status: http.StatusUnauthorized, Err: errors.New("invalid credentials")}
	}
	f.identity.Username = username
	f.loggedIn = true
	return nil
}

func (f *fakeBackend) Register(ctx context.Context, username, password, _, _ string) error {
	return f.Login(ctx, username, password)
}

func (f *fakeBackend) Logout() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loggedIn = false
	return nil
}

func (f *fakeBackend) mutate(fn func()) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failNext; err != nil {
		f.failNext = nil
		return err
	}
	fn()
	return nil
}

func (f *fakeBackend) CreateBoard(_ context.Context, _ int64, name string) (int64, error) {
	var id int64
	err := f.mutate(func() {
		f.nextID++
		id = f.nextID
		f.boards = append(f.boards, taskboard.BoardSummary{ID: id, Name: name})
	})
	return id, err
}

func (f *fakeBackend) RenameBoard(_ context.Context, id int64, name string) error {
	return f.mutate(func() {
		for i := range f.boards {
			if f.boards[i].ID == id {
				f.boards[i].Name = name
			}
		}
	})
}

func (f *fakeBackend) DeleteBoard(_ context.Context, id int64) error {
	return f.mutate(func() {
		kept := f.boards[:0]
		for _, b := range f.boards {
			if b.ID != id {
				kept = append(kept, b)
			}
		}
		f.boards = kept
	})
}

func (f *fakeBackend) SetBoardMember(_ context.Context, _ int64, username string, include bool) error {
	return f.mutate(func() {
		for i := range f.members {
			if f.members[i].Username == username {
				f.members[i].IsActive = include
			}
		}
	})
}

func (f *fakeBackend) InviteMember(context.Context, int64) (string, error) {
	return "inv-1", f.mutate(func() {})
}

func (f *fakeBackend) DeleteMember(_ context.Context, username string) error {
	return f.mutate(func() {
		kept := f.members[:0]
		for _, m := range f.members {
			if m.Username != username {
				kept = append(kept, m)
			}
		}
		f.members = kept
	})
}

// columns returns the stored content of a board, seeding new boards with
// one task in INBOX
func (f *fakeBackend) columns(boardID int64) []taskboard.Column {
	if cols, ok := f.content[boardID]; ok {
		return cols
	}
	cols := []taskboard.Column{
		{ID: boardID * 10, Order: 0, Tasks: []taskboard.Task{{
			ID:    boardID * 100,
			Title: "write tests",
			Subtasks: []taskboard.Subtask{
				{ID: boardID * 1000, Title: "unit", Order: 0},
				{ID: boardID*1000 + 1, Title: "ui", Order: 1},
			},
		}}},
		{ID: boardID*10 + 1, Order: 1},
	}
	f.content[boardID] = cols
	return cols
}

func copyColumns(cols []taskboard.Column) []taskboard.Column {
	out := make([]taskboard.Column, len(cols))
	for i, col := range cols {
		col.Tasks = append([]taskboard.Task(nil), col.Tasks...)
		for j := range col.Tasks {
			col.Tasks[j].Subtasks = append([]taskboard.Subtask(nil), col.Tasks[j].Subtasks...)
		}
		out[i] = col
	}
	return out
}

// eachTask calls fn with a pointer to every stored task
func (f *fakeBackend) eachTask(fn func(col *taskboard.Column, i int)) {
	for _, cols := range f.content {
		for c := range cols {
			for i := range cols[c].Tasks {
				fn(&cols[c], i)
			}
		}
	}
}

func (f *fakeBackend) CreateTask(_ context.Context, columnID int64, title, description string, subtasks []string) (int64, error) {
	var id int64
	err := f.mutate(func() {
		f.nextID++
		id = f.nextID
		for _, cols := range f.content {
			for c := range cols {
				if cols[c].ID != columnID {
					continue
				}
				task := taskboard.Task{ID: id, Title: title, Description: description}
				for i, st := range subtasks {
					f.nextID++
					task.Subtasks = append(task.Subtasks, taskboard.Subtask{ID: f.nextID, Title: st, Order: i})
				}
				for i := range cols[c].Tasks {
					cols[c].Tasks[i].Order++
				}
				cols[c].Tasks = append(cols[c].Tasks, task)
			}
		}
	})
	return id, err
}

func (f *fakeBackend) EditTask(_ context.Context, task taskboard.Task) error {
	return f.mutate(func() {
		f.eachTask(func(col *taskboard.Column, i int) {
			if col.Tasks[i].ID != task.ID {
				return
			}
			stored := &col.Tasks[i]
			stored.Title = task.Title
			stored.Description = task.Description
			stored.Subtasks = nil
			for _, st := range task.Subtasks {
				f.nextID++
				st.ID = f.nextID
				stored.Subtasks = append(stored.Subtasks, st)
			}
		})
	})
}

func (f *fakeBackend) DeleteTask(_ context.Context, taskID int64) error {
	return f.mutate(func() {
		for _, cols := range f.content {
			for c := range cols {
				kept := cols[c].Tasks[:0]
				for _, task := range cols[c].Tasks {
					if task.ID != taskID {
						kept = append(kept, task)
					}
				}
				cols[c].Tasks = kept
			}
		}
	})
}

func (f *fakeBackend) ToggleSubtask(_ context.Context, subtaskID int64, done bool) error {
	return f.mutate(func() {
		f.eachTask(func(col *taskboard.Column, i int) {
			for j := range col.Tasks[i].Subtasks {
				if col.Tasks[i].Subtasks[j].ID == subtaskID {
					col.Tasks[i].Subtasks[j].IsDone = done
				}
			}
		})
	})
}

func (f *fakeBackend) setGate(gate chan struct{}) {
	f.mu.Lock()
	f.gate = gate
	f.mu.Unlock()
}

func (f *fakeBackend) boardCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.boards)
}

// waitingSession calls onWait when a refresh starts waiting for a load
// already in flight
type waitingSession struct {
	*session.Controller
	onWait func()
}

func (s *waitingSession) Wait(ctx context.Context) error {
	s.onWait()
	return s.Controller.Wait(ctx)
}

func summary(id int64, name string) taskboard.BoardSummary {
	return taskboard.BoardSummary{ID: id, Name: name}
}

// settle runs cmd and feeds the model's own async results back into it
func settle(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case loadedMsg, authDoneMsg, mutationDoneMsg, invitedMsg, loggedOutMsg:
			next, nextCmd := m.Update(msg)
			m = next.(Model)
			queue = append(queue, nextCmd)
		}
	}
	return m
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

// press sends keys one by one, running the commands they return
func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		next, cmd := m.Update(keyMsg(k))
		m = settle(t, next.(Model), cmd)
	}
	return m
}

// typeText sends keys without running their commands (cursor blinks sleep)
func typeText(m Model, keys ...string) Model {
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		m = next.(Model)
	}
	return m
}

func newTestModel(t *testing.T, be *fakeBackend) (Model, *session.Controller) {
	t.Helper()
	ctrl := session.NewController(be, zaptest.NewLogger(t))
	m := New(Deps{Session: ctrl, Service: be, Logger: zaptest.NewLogger(t)})
	require.True(t, m.booting)
	return settle(t, m, m.Init()), ctrl
}

func TestBootstrapSingleBoard(t *testing.T) {
	be := newBackend(false, summary(1, "Main"))
	m, _ := newTestModel(t, be)

	require.False(t, m.booting)
	require.Equal(t, route.Home, m.Route())
	require.Equal(t, int64(1), m.state.ActiveBoard.ID)
	require.NoError(t, m.err)
	require.Contains(t, m.View(), "write tests")
}

func TestBootstrapWithoutSessionShowsLogin(t *testing.T) {
	be := newBackend(false, summary(1, "Main"))
	be.loggedIn = false
	m, _ := newTestModel(t, be)

	require.Equal(t, route.Login, m.Route())
	require.NoError(t, m.err, "a missing session is not an error")
	require.Contains(t, m.View(), "Sign in")
}

func TestLoginThenRegisterSwitch(t *testing.T) {
	be := newBackend(false, summary(1, "Main"))
	be.loggedIn = false
	m, _ := newTestModel(t, be)

	m = press(t, m, "ctrl+r")
	require.Equal(t, route.Register, m.Route())
	m = press(t, m, "ctrl+r")
	require.Equal(t, route.Login, m.Route())

	m = typeText(m, "b", "o", "b", "tab", "x")
	m = press(t, m, "enter")
	require.Equal(t, route.Login, m.Route())
	require.ErrorContains(t, m.err, "invalid credentials")

	m.authForm = m.authForm.setValue(1, "pw")
	m = press(t, m, "enter")
	require.Equal(t, route.Home, m.Route())
	require.True(t, m.state.User.IsAuthenticated)
	require.Equal(t, int64(1), m.state.ActiveBoard.ID)
}

func TestLoginValidation(t *testing.T) {
	be := newBackend(false)
	be.loggedIn = false
	m, _ := newTestModel(t, be)

	m = press(t, m, "enter")
	require.ErrorContains(t, m.err, "username")
	require.False(t, m.busy)
}

func TestControlWindowsAreExclusive(t *testing.T) {
	m, _ := newTestModel(t, newBackend(false, summary(1, "Main")))

	m = press(t, m, "t")
	require.Equal(t, window.Team, m.ActiveWindow())
	m = press(t, m, "t")
	require.Equal(t, window.None, m.ActiveWindow())
	m = press(t, m, "?")
	require.Equal(t, window.Help, m.ActiveWindow())
	m = press(t, m, "b")
	require.Equal(t, window.Boards, m.ActiveWindow())
	require.Contains(t, m.View(), "Boards")
	m = press(t, m, "esc")
	require.Equal(t, window.None, m.ActiveWindow())
}

func TestSwitchBoardFromList(t *testing.T) {
	be := newBackend(false, summary(1, "A"), summary(2, "B"))
	m, _ := newTestModel(t, be)
	require.True(t, m.state.ActiveBoard.IsZero())
	require.Contains(t, m.View(), "Press b")

	m = press(t, m, "b", "down", "enter")
	require.Equal(t, window.None, m.ActiveWindow())
	require.Equal(t, int64(2), m.state.ActiveBoard.ID)

	// a refresh keeps the board on display
	m = press(t, m, "r")
	require.Equal(t, int64(2), m.state.ActiveBoard.ID)
	require.Equal(t, []int64{2, 2}, be.fetched)

	// the list opens on the active board
	m = press(t, m, "b")
	require.Equal(t, 1, m.cursor)
}

func TestAdminCreatesBoard(t *testing.T) {
	be := newBackend(true, summary(1, "A"), summary(2, "B"))
	m, _ := newTestModel(t, be)

	m = press(t, m, "b", "n")
	require.Equal(t, window.CreateBoard, m.ActiveWindow())

	m = typeText(m, "S", "p", "r", "i", "n", "t")
	m = press(t, m, "enter")

	require.Equal(t, window.None, m.ActiveWindow())
	require.Equal(t, int64(101), m.state.ActiveBoard.ID, "the new board is loaded")
	require.Equal(t, "Sprint", m.state.ActiveBoard.Name)
	require.Len(t, m.state.Boards, 3)
	require.Equal(t, "board created", m.status)
}

func TestCreateBoardRejectsEmptyName(t *testing.T) {
	m, _ := newTestModel(t, newBackend(true, summary(1, "A")))

	m = press(t, m, "b", "n", "enter")
	require.Equal(t, window.CreateBoard, m.ActiveWindow())
	require.ErrorContains(t, m.err, "empty")
}

func TestNonAdminCannotOpenAdminWindows(t *testing.T) {
	m, _ := newTestModel(t, newBackend(false, summary(1, "A"), summary(2, "B")))

	m = press(t, m, "b", "n")
	require.Equal(t, window.Boards, m.ActiveWindow())
	require.ErrorIs(t, m.err, errAdminOnly)
}

func TestAdminRenamesAndDeletesBoard(t *testing.T) {
	be := newBackend(true, summary(1, "A"), summary(2, "B"))
	m, _ := newTestModel(t, be)
	m = press(t, m, "b", "down", "enter")
	require.Equal(t, int64(2), m.state.ActiveBoard.ID)

	m = press(t, m, "b", "e")
	require.Equal(t, window.EditBoard, m.ActiveWindow())
	require.Equal(t, "B", m.targetBoard.Name)
	m = typeText(m, "2")
	m = press(t, m, "enter")
	require.Equal(t, "B2", m.state.ActiveBoard.Name)

	m = press(t, m, "b", "d")
	require.Equal(t, window.DeleteBoard, m.ActiveWindow())
	require.Contains(t, m.View(), "Delete board")
	m = press(t, m, "y")
	require.Equal(t, window.None, m.ActiveWindow())
	require.Len(t, m.state.Boards, 1)
	// the only remaining board is shown
	require.Equal(t, int64(1), m.state.ActiveBoard.ID)
}

func TestDeleteConfirmationCancel(t *testing.T) {
	be := newBackend(true, summary(1, "A"))
	m, _ := newTestModel(t, be)

	m = press(t, m, "b", "d", "n")
	require.Equal(t, window.None, m.ActiveWindow())
	require.Len(t, be.boards, 1)
}

func TestTeamRosterActions(t *testing.T) {
	be := newBackend(true, summary(1, "A"))
	m, _ := newTestModel(t, be)

	m = press(t, m, "t", "down", " ")
	require.True(t, m.state.Members[1].IsActive, "amy is now included")

	m = press(t, m, "t", "i")
	require.Equal(t, window.InviteMember, m.ActiveWindow())
	require.Equal(t, "inv-1", m.inviteCode)
	require.Contains(t, m.View(), "inv-1")

	m = press(t, m, "t", "down", "x")
	require.Equal(t, window.DeleteMember, m.ActiveWindow())
	require.Equal(t, "amy", m.targetMember.Username)
	m = press(t, m, "y")
	require.Len(t, m.state.Members, 1)
}

func TestMutationFailureKeepsWindowOpen(t *testing.T) {
	be := newBackend(true, summary(1, "A"))
	m, _ := newTestModel(t, be)
	be.failNext = &taskboard.FetchError{Op: "rename board", Status: http.StatusBadRequest, Err: errors.New("name taken")}

	m = press(t, m, "b", "e")
	m = typeText(m, "x")
	m = press(t, m, "enter")

	require.Equal(t, window.EditBoard, m.ActiveWindow())
	require.ErrorContains(t, m.err, "name taken")
	require.Equal(t, "A", m.state.ActiveBoard.Name)
}

func TestAuthErrorDuringMutationReturnsToLogin(t *testing.T) {
	be := newBackend(true, summary(1, "A"))
	m, ctrl := newTestModel(t, be)
	be.failNext = &taskboard.AuthError{Reason: taskboard.AuthRejected}

	m = press(t, m, "b", "d", "y")

	require.Equal(t, route.Login, m.Route())
	require.Equal(t, window.None, m.ActiveWindow())
	require.False(t, ctrl.State().User.IsAuthenticated)
	require.True(t, taskboard.IsAuth(m.err))
}

func TestLogout(t *testing.T) {
	be := newBackend(false, summary(1, "A"))
	m, ctrl := newTestModel(t, be)
	m = press(t, m, "t")

	m = press(t, m, "L")
	require.Equal(t, route.Login, m.Route())
	require.Equal(t, window.None, m.ActiveWindow())
	require.False(t, be.loggedIn)
	require.True(t, ctrl.State().ActiveBoard.IsZero())
}

func TestHelpShowsServer(t *testing.T) {
	ctrl := session.NewController(newBackend(false, summary(1, "A")), zaptest.NewLogger(t))
	m := New(Deps{Session: ctrl, Service: newBackend(false), APIURL: "http://boards.test"})
	m = settle(t, m, m.Init())

	m = press(t, m, "?")
	view := m.View()
	require.True(t, strings.Contains(view, "http://boards.test"))
	require.Contains(t, view, "Board controls")
}

func TestMouseIgnoredWithoutZones(t *testing.T) {
	m, _ := newTestModel(t, newBackend(false, summary(1, "A")))

	next, cmd := m.Update(tea.MouseMsg{Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	require.Nil(t, cmd)
	require.Equal(t, window.None, next.(Model).ActiveWindow())
}

func TestKeysIgnoredWhileBooting(t *testing.T) {
	ctrl := session.NewController(newBackend(false, summary(1, "A")), zaptest.NewLogger(t))
	m := New(Deps{Session: ctrl, Service: newBackend(false)})

	next, _ := m.Update(keyMsg("t"))
	require.Equal(t, window.None, next.(Model).ActiveWindow())
	require.Contains(t, m.View(), "Signing in")
}

func TestRefreshAfterMutationWaitsForLoadInFlight(t *testing.T) {
	be := newBackend(true, summary(1, "A"), summary(2, "B"))
	ctrl := session.NewController(be, zaptest.NewLogger(t))
	gate := make(chan struct{})
	var once sync.Once
	sess := &waitingSession{Controller: ctrl, onWait: func() { once.Do(func() { close(gate) }) }}
	m := New(Deps{Session: sess, Service: be, Logger: zaptest.NewLogger(t)})
	m = settle(t, m, m.Init())
	require.Equal(t, route.Home, m.Route())

	// a load started elsewhere is stuck verifying the token
	be.setGate(gate)
	inFlight := make(chan error, 1)
	go func() { inFlight <- ctrl.LoadBoard(context.Background(), 0) }()
	require.Eventually(t, ctrl.Loading, time.Second, time.Millisecond)

	m = press(t, m, "b", "n")
	require.Equal(t, window.CreateBoard, m.ActiveWindow())
	m = typeText(m, "N", "e", "w")
	m = press(t, m, "enter")

	require.NoError(t, <-inFlight)
	require.NoError(t, m.err)
	require.Equal(t, "board created", m.status)
	require.Equal(t, int64(101), m.state.ActiveBoard.ID, "the refresh is not dropped")
	require.Equal(t, "New", m.state.ActiveBoard.Name)
	require.Len(t, m.state.Boards, 3)
	require.Equal(t, 3, be.boardCount())
}

func TestAdminTaskLifecycle(t *testing.T) {
	be := newBackend(true, summary(1, "A"))
	m, _ := newTestModel(t, be)
	task, ok := m.selectedTask()
	require.True(t, ok)
	require.Equal(t, "write tests", task.Title)

	m = press(t, m, "a")
	require.Equal(t, window.CreateTask, m.ActiveWindow())
	require.Contains(t, m.View(), "New task in INBOX")
	m = typeText(m, "S", "h", "i", "p", "tab", "n", "o", "w", "tab", "a", ",", " ", "b")
	m = press(t, m, "enter")

	require.NoError(t, m.err)
	require.Equal(t, window.None, m.ActiveWindow())
	require.Equal(t, "task created", m.status)
	task, ok = m.selectedTask()
	require.True(t, ok)
	require.Equal(t, "Ship", task.Title, "new tasks go on top")
	require.Equal(t, "now", task.Description)
	subtasks := task.OrderedSubtasks()
	require.Len(t, subtasks, 2)
	require.Equal(t, "a", subtasks[0].Title)
	require.Equal(t, "b", subtasks[1].Title)

	m = press(t, m, "2")
	require.Equal(t, "subtask done", m.status)
	task, _ = m.selectedTask()
	require.True(t, task.OrderedSubtasks()[1].IsDone)
	require.Contains(t, m.View(), "[x]")

	m = press(t, m, "e")
	require.Equal(t, window.EditTask, m.ActiveWindow())
	require.Equal(t, "a, b", m.taskForm.values()[2])
	m = typeText(m, "!")
	m = press(t, m, "enter")

	require.Equal(t, "task saved", m.status)
	task, _ = m.selectedTask()
	require.Equal(t, "Ship!", task.Title)
	subtasks = task.OrderedSubtasks()
	require.Len(t, subtasks, 2)
	require.False(t, subtasks[0].IsDone)
	require.True(t, subtasks[1].IsDone, "kept subtasks stay done")

	m = press(t, m, "d")
	require.Equal(t, window.DeleteTask, m.ActiveWindow())
	require.Contains(t, m.View(), "Delete task")
	m = press(t, m, "y")

	require.Equal(t, "task deleted", m.status)
	task, ok = m.selectedTask()
	require.True(t, ok)
	require.Equal(t, "write tests", task.Title)
}

func TestCreateTaskRejectsEmptyTitle(t *testing.T) {
	m, _ := newTestModel(t, newBackend(true, summary(1, "A")))

	m = press(t, m, "a", "enter")
	require.Equal(t, window.CreateTask, m.ActiveWindow())
	require.ErrorContains(t, m.err, "empty")
	m = press(t, m, "esc")
	require.Equal(t, window.None, m.ActiveWindow())
}

func TestTaskCursorStaysOnBoard(t *testing.T) {
	m, _ := newTestModel(t, newBackend(false, summary(1, "A")))

	m = press(t, m, "right")
	require.Equal(t, 1, m.taskCol)
	_, ok := m.selectedTask()
	require.False(t, ok, "the second column is empty")
	m = press(t, m, "right", "l")
	require.Equal(t, 1, m.taskCol)

	m = press(t, m, "left", "down", "j")
	require.Equal(t, 0, m.taskCol)
	require.Equal(t, 0, m.taskRow)
	task, ok := m.selectedTask()
	require.True(t, ok)
	require.Equal(t, "write tests", task.Title)
	require.Contains(t, m.View(), "unit")
}

func TestNonAdminCannotChangeTasks(t *testing.T) {
	be := newBackend(false, summary(1, "A"))
	m, _ := newTestModel(t, be)

	for _, key := range []string{"a", "e", "d", "1"} {
		m = press(t, m, key)
		require.Equal(t, window.None, m.ActiveWindow(), key)
		require.ErrorIs(t, m.err, errAdminOnly, key)
	}
	task, _ := m.selectedTask()
	require.False(t, task.OrderedSubtasks()[0].IsDone)
}

func newZonedModel(t *testing.T, be *fakeBackend) (Model, *zone.Manager) {
	t.Helper()
	zones := zone.New()
	t.Cleanup(zones.Close)
	ctrl := session.NewController(be, zaptest.NewLogger(t))
	m := New(Deps{Session: ctrl, Service: be, Zones: zones, Logger: zaptest.NewLogger(t)})
	return settle(t, m, m.Init()), zones
}

// clickControl renders m and clicks the control bar button of w
func clickControl(t *testing.T, m Model, zones *zone.Manager, w window.Window) Model {
	t.Helper()
	m.View()
	id := zoneID(w)
	require.Eventually(t, func() bool { return !zones.Get(id).IsZero() }, time.Second, time.Millisecond)
	zi := zones.Get(id)

	next, cmd := m.Update(tea.MouseMsg{
		X:      zi.StartX,
		Y:      zi.StartY,
		Action: tea.MouseActionRelease,
		Button: tea.MouseButtonLeft,
	})
	return settle(t, next.(Model), cmd)
}

func TestClickOpensControlWindow(t *testing.T) {
	m, zones := newZonedModel(t, newBackend(false, summary(1, "A")))

	m = clickControl(t, m, zones, window.Team)
	require.Equal(t, window.Team, m.ActiveWindow())
	m = clickControl(t, m, zones, window.Team)
	require.Equal(t, window.None, m.ActiveWindow(), "a second click closes it")
	m = clickControl(t, m, zones, window.Help)
	require.Equal(t, window.Help, m.ActiveWindow())
}

func TestClickIgnoredWhileFormOpen(t *testing.T) {
	m, zones := newZonedModel(t, newBackend(true, summary(1, "A")))

	m = press(t, m, "b", "n")
	require.Equal(t, window.CreateBoard, m.ActiveWindow())
	m = clickControl(t, m, zones, window.Team)
	require.Equal(t, window.CreateBoard, m.ActiveWindow())

	m = press(t, m, "esc", "a")
	require.Equal(t, window.CreateTask, m.ActiveWindow())
	m = clickControl(t, m, zones, window.Boards)
	require.Equal(t, window.CreateTask, m.ActiveWindow())
}
