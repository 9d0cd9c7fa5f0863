package msglog

import (
	"fmt"
	"strings"
)

// Builder accumulates tokens for a single log line and emits it on
// Commit. It mirrors Print for call sites that assemble a message
// incrementally:
//
//	m := logger.Msg()
//	m.Add("loaded", n, "entries")
//	m.Commit()
//
// A Builder is not safe for concurrent use; it belongs to one call
// site on one goroutine.
type Builder struct {
	l       *Logger
	sb      strings.Builder
	nospace bool
	has     bool
	done    bool
}

// Msg starts a new line builder inheriting the logger's space mode.
func (l *Logger) Msg() *Builder {
	return &Builder{l: l, nospace: l.opts.NoSpace}
}

// NoSpace suppresses token separators for this line only.
func (b *Builder) NoSpace() *Builder {
	b.nospace = true
	return b
}

// Add appends tokens, honoring the space mode. Returns the builder for
// chaining.
func (b *Builder) Add(args ...any) *Builder {
	for _, a := range args {
		if b.has && !b.nospace {
			b.sb.WriteByte(' ')
		}
		b.sb.WriteString(fmt.Sprint(a))
		b.has = true
	}
	return b
}

// Commit emits the accumulated line. A Builder commits at most once;
// an empty builder commits nothing.
func (b *Builder) Commit() {
	if b.done || !b.has {
		return
	}
	b.done = true
	b.l.commit(b.sb.String())
}
