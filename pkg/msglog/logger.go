// Package msglog implements the general free-form message channel: one
// timestamped, goroutine-tagged line per committed message, written to
// the output file and/or the console.
//
// It is the simple sibling of the diagnostics channel (package diag)
// and shares its degradation rules: the write path never returns an
// error and never panics; a file that cannot open just drops lines.
package msglog

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/ulog-project/ulog-go/internal/stamp"
	"github.com/ulog-project/ulog-go/pkg/logfile"
)

// Defaults for the message channel.
const (
	// DefaultPath is the default output file name.
	DefaultPath = "output.log"

	// DefaultMaxFileSize is the rotation threshold (5 MiB).
	DefaultMaxFileSize = 5 << 20
)

// Options configures a Logger.
type Options struct {
	// Path is the output file path. Empty means DefaultPath.
	Path string `yaml:"output"`

	// MaxFileSize is the rotation threshold in bytes. Non-positive
	// means DefaultMaxFileSize.
	MaxFileSize int64 `yaml:"output_max_size"`

	// ToFile enables the file channel.
	ToFile bool `yaml:"log_to_file"`

	// ToConsole enables the console channel.
	ToConsole bool `yaml:"log_to_console"`

	// NoSpace suppresses the space between appended tokens.
	NoSpace bool `yaml:"no_space"`

	// ConsoleWriter receives console lines. Defaults to os.Stdout;
	// overridable for tests.
	ConsoleWriter io.Writer `yaml:"-"`
}

// DefaultOptions returns the standard configuration: both channels on,
// space-separated tokens.
func DefaultOptions() Options {
	return Options{
		Path:        DefaultPath,
		MaxFileSize: DefaultMaxFileSize,
		ToFile:      true,
		ToConsole:   true,
	}
}

func (o Options) withDefaults() Options {
	if o.Path == "" {
		o.Path = DefaultPath
	}
	if o.MaxFileSize <= 0 {
		o.MaxFileSize = DefaultMaxFileSize
	}
	if o.ConsoleWriter == nil {
		o.ConsoleWriter = os.Stdout
	}
	return o
}

// Logger is the general message logger. Safe for concurrent use; each
// committed message becomes exactly one line on each enabled channel.
type Logger struct {
	mu   sync.Mutex
	opts Options
	file *logfile.File
}

// NewLogger creates a Logger. The output file is not touched until the
// first committed message with the file channel enabled.
func NewLogger(opts Options) *Logger {
	opts = opts.withDefaults()
	return &Logger{
		opts: opts,
		file: logfile.New(opts.Path, opts.MaxFileSize),
	}
}

// Print commits one line built from args: each argument is rendered
// with fmt.Sprint and the tokens are joined by a space (or nothing in
// no-space mode). A call with no arguments is a no-op.
func (l *Logger) Print(args ...any) {
	l.commit(l.join(args, l.opts.NoSpace))
}

func (l *Logger) join(args []any, nospace bool) string {
	if len(args) == 0 {
		return ""
	}
	sep := " "
	if nospace {
		sep = ""
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = fmt.Sprint(a)
	}
	return strings.Join(parts, sep)
}

// commit emits one formatted line for msg on every enabled channel.
// Empty messages are dropped.
func (l *Logger) commit(msg string) {
	if msg == "" {
		return
	}
	line := fmt.Sprintf("[%s] tid=%d \"%s\"", stamp.Now(), stamp.GID(), msg)

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.opts.ToFile {
		l.file.WriteLine(line)
	}
	if l.opts.ToConsole {
		fmt.Fprintln(l.opts.ConsoleWriter, line)
	}
}

// Close flushes and closes the output file deterministically. Later
// commits reopen it lazily.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.Close()
}
