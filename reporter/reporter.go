// Package reporter carries errors and warnings from registration and linking
// back to the caller. The default reporter fails the whole operation on the
// first error, which is the behavior the linker's fail-fast contract expects;
// a custom ErrorReporter may return nil to keep linking and collect as many
// errors as can be found.
package reporter

import (
	"sync"

	"github.com/weftlang/weft/desc"
)

// ErrorReporter is responsible for reporting the given error. If it returns a
// non-nil error, linking aborts with that error. If it returns nil, linking
// continues, trying to find more errors to report.
type ErrorReporter func(err ErrorWithPos) error

// WarningReporter is responsible for reporting the given warning. Warnings do
// not fail the operation; the details are still supplied via an error type.
type WarningReporter func(ErrorWithPos)

// Reporter receives errors and warnings encountered while linking.
type Reporter interface {
	Error(ErrorWithPos) error
	Warning(ErrorWithPos)
}

// NewReporter creates a Reporter from the two callbacks. Either may be nil:
// a nil errs fails on the first error, a nil warnings ignores warnings.
func NewReporter(errs ErrorReporter, warnings WarningReporter) Reporter {
	return reporterFuncs{errs: errs, warnings: warnings}
}

type reporterFuncs struct {
	errs     ErrorReporter
	warnings WarningReporter
}

func (r reporterFuncs) Error(err ErrorWithPos) error {
	if r.errs == nil {
		return err
	}
	return r.errs(err)
}

func (r reporterFuncs) Warning(err ErrorWithPos) {
	if r.warnings != nil {
		r.warnings(err)
	}
}

// Handler tracks the outcome of reporting across one linking operation.
type Handler struct {
	reporter Reporter

	mu           sync.Mutex
	errsReported bool
	err          error
}

// NewHandler creates a Handler. If rep is nil, the default fail-fast reporter
// is used.
func NewHandler(rep Reporter) *Handler {
	if rep == nil {
		rep = NewReporter(nil, nil)
	}
	return &Handler{reporter: rep}
}

// HandleErrorf wraps the formatted message with the given position and
// reports it, like HandleError.
func (h *Handler) HandleErrorf(pos desc.SourcePos, format string, args ...any) error {
	return h.HandleError(Errorf(pos, format, args...))
}

// HandleError reports the given error. The returned error is nil when the
// reporter chose to continue; otherwise it is the error that linking must
// abort with.
func (h *Handler) HandleError(err error) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.err != nil {
		return h.err
	}
	if ewp, ok := err.(ErrorWithPos); ok {
		h.errsReported = true
		err = h.reporter.Error(ewp)
	}
	h.err = err
	return err
}

// HandleWarning reports a warning at the given position.
func (h *Handler) HandleWarning(pos desc.SourcePos, err error) {
	// No lock: warnings don't touch the mutable fields.
	h.reporter.Warning(Error(pos, err))
}

// Error returns the error that concluded the operation, or nil if no errors
// were reported. When errors were reported but all swallowed by the reporter,
// ErrInvalidSchema is returned so the operation still fails.
func (h *Handler) Error() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.errsReported && h.err == nil {
		return ErrInvalidSchema
	}
	return h.err
}
