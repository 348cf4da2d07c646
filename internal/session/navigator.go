package session

import "log/slog"

// Navigator moves the UI to another route. The data access layer uses it to
// send the user to the login page when the session ends.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(path string)

// Navigate calls f(path).
func (f NavigatorFunc) Navigate(path string) {
	f(path)
}

// LogNavigator records redirects in the log. Used when no UI is attached.
type LogNavigator struct {
	logger *slog.Logger
}

// NewLogNavigator creates a LogNavigator.
func NewLogNavigator(logger *slog.Logger) *LogNavigator {
	return &LogNavigator{logger: logger}
}

// Navigate logs the redirect.
func (n *LogNavigator) Navigate(path string) {
	n.logger.Info("navigate", "path", path)
}
