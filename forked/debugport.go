package forked

import (
	"fmt"
	"regexp"
	"sync/atomic"
)

// legacyDebugFlag matches Node's old --debug-brk=<port> form; modernFlag
// matches the current inspector family (--inspect, --inspect-brk, with an
// optional host). spec.md §9's open question flags the legacy-only match
// as a bug to fix, not preserve.
var (
	legacyDebugFlag = regexp.MustCompile(`^(--debug-brk)=(\d+)$`)
	modernFlag      = regexp.MustCompile(`^(--inspect(?:-brk)?)=(?:([\w.\-]+):)?(\d+)$`)
)

// DebugPortCounter is the ActorSystem field spec.md §3 names
// debugPortCounter: a monotonically increasing counter, one per System,
// incremented atomically so concurrent spawns never collide on the same
// rewritten debug port (spec.md §4.3 step 1, §5 "Shared resources").
type DebugPortCounter struct {
	n int64
}

// NewDebugPortCounter returns a zeroed counter for a fresh System.
func NewDebugPortCounter() *DebugPortCounter { return &DebugPortCounter{} }

// Next atomically returns the next offset.
func (c *DebugPortCounter) Next() int64 {
	return atomic.AddInt64(&c.n, 1)
}

// RewriteDebugArgs returns a copy of args with any legacy or modern
// inspector-port flag's port shifted by offset, so a freshly forked
// child never collides with a sibling spawned moments earlier.
func RewriteDebugArgs(args []string, offset int64) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = rewriteOne(a, offset)
	}
	return out
}

func rewriteOne(arg string, offset int64) string {
	if m := legacyDebugFlag.FindStringSubmatch(arg); m != nil {
		port := parsePort(m[2]) + offset
		return fmt.Sprintf("%s=%d", m[1], port)
	}
	if m := modernFlag.FindStringSubmatch(arg); m != nil {
		port := parsePort(m[3]) + offset
		if m[2] != "" {
			return fmt.Sprintf("%s=%s:%d", m[1], m[2], port)
		}
		return fmt.Sprintf("%s=%d", m[1], port)
	}
	return arg
}

func parsePort(s string) int64 {
	var n int64
	for _, r := range s {
		n = n*10 + int64(r-'0')
	}
	return n
}
