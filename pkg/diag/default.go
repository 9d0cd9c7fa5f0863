package diag

import "sync"

var (
	defaultMu  sync.Mutex
	defaultSvc *Service
)

// Default returns the process-wide Service, creating it with
// DefaultOptions on first use.
func Default() *Service {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultSvc == nil {
		defaultSvc = NewService(DefaultOptions())
	}
	return defaultSvc
}

// SetDefault replaces the process-wide Service. Call before the first
// scope begins; the previous default, if any, is not closed.
func SetDefault(s *Service) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultSvc = s
}

// Begin starts a scope on the default Service.
func Begin(label, source string) *Scope {
	return Default().Begin(label, source)
}

// BeginNamed starts a named scope on the default Service.
func BeginNamed(label, name, source string) *Scope {
	return Default().BeginNamed(label, name, source)
}
