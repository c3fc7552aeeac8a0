// internal/app/notify.go
package app

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// Notifier shows a titled message to the user.
type Notifier interface {
	Info(title, message string)
	Error(title, message string)
}

// ConsoleNotifier prints info to Out and errors to Err.
type ConsoleNotifier struct {
	Out io.Writer
	Err io.Writer
}

func (n ConsoleNotifier) Info(title, message string) {
	fmt.Fprintf(n.Out, "%s: %s\n", title, message)
}

func (n ConsoleNotifier) Error(title, message string) {
	w := n.Err
	if w == nil {
		w = n.Out
	}
	fmt.Fprintf(w, "%s: %s\n", title, message)
}

// LogNotifier routes notifications to a logger, for front ends with no
// interactive user such as the tool server.
type LogNotifier struct {
	Logger zerolog.Logger
}

func (n LogNotifier) Info(title, message string) {
	n.Logger.Info().Str("title", title).Msg(message)
}

func (n LogNotifier) Error(title, message string) {
	n.Logger.Warn().Str("title", title).Msg(message)
}
