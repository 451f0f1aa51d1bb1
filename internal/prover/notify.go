package prover

import (
	"fmt"
	"io"
	"log/slog"
)

// Notifier is the line-oriented progress sink consumed in verbose mode.
// Notifications never affect outcomes.
//
// Implemented by SlogNotifier (production), WriterNotifier (CLI), and
// testutil.Notes (tests).
type Notifier interface {
	Notify(line string)
}

// SlogNotifier emits progress lines through a structured logger.
type SlogNotifier struct {
	Logger *slog.Logger // nil means slog.Default()
}

// Notify implements Notifier.
func (n SlogNotifier) Notify(line string) {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("proof progress", "line", line)
}

// WriterNotifier writes progress lines to an io.Writer, one per line.
type WriterNotifier struct {
	W io.Writer
}

// Notify implements Notifier.
func (n WriterNotifier) Notify(line string) {
	fmt.Fprintln(n.W, line)
}
