package testutil

import "sync"

// Notes collects progress notification lines emitted by the prover.
//
// Used to assert on verbose-mode output without touching a real sink.
// Thread-safety: safe for concurrent use via internal mutex.
type Notes struct {
	mu    sync.Mutex
	lines []string
}

// Notify implements prover.Notifier.
func (n *Notes) Notify(line string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.lines = append(n.lines, line)
}

// Lines returns the collected notification lines in emission order.
func (n *Notes) Lines() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.lines))
	copy(out, n.lines)
	return out
}
