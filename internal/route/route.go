// Package route decides which screen a navigation lands on given whether
// the session is authenticated. It is evaluated on every transition.
package route

// Route is a top-level screen
type Route int

const (
	Home Route = iota
	Login
	Register
)

func (r Route) String() string {
	switch r {
	case Home:
		return "home"
	case Login:
		return "login"
	case Register:
		return "register"
	}
	return "unknown"
}

// Protected reports whether r needs an authenticated session
func (r Route) Protected() bool {
	return r == Home
}

// Resolve returns where a navigation to target ends up: protected screens
// send unauthenticated users to Login, and the login and register screens
// send authenticated users Home.
func Resolve(target Route, authenticated bool) Route {
	switch {
	case target.Protected() && !authenticated:
		return Login
	case !target.Protected() && authenticated:
		return Home
	}
	return target
}
