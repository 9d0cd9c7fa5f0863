package diag

// Defaults for the diagnostics channel.
const (
	// DefaultPath is the default diagnostics file name.
	DefaultPath = "diagnostics.log"

	// DefaultMaxFileSize is the rotation threshold (2 MiB). The
	// diagnostics file stays deliberately smaller than the general
	// message log.
	DefaultMaxFileSize = 2 << 20
)

// Options configures a Service. The zero value is usable; empty or
// non-positive fields fall back to the defaults above.
type Options struct {
	// DiagnosticsPath is the diagnostics file path.
	DiagnosticsPath string `yaml:"diagnostics"`

	// MaxFileSize is the rotation threshold in bytes.
	MaxFileSize int64 `yaml:"diagnostics_max_size"`
}

// DefaultOptions returns the standard configuration.
func DefaultOptions() Options {
	return Options{
		DiagnosticsPath: DefaultPath,
		MaxFileSize:     DefaultMaxFileSize,
	}
}

func (o Options) withDefaults() Options {
	if o.DiagnosticsPath == "" {
		o.DiagnosticsPath = DefaultPath
	}
	if o.MaxFileSize <= 0 {
		o.MaxFileSize = DefaultMaxFileSize
	}
	return o
}
