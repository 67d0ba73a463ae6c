package types

import (
	"fmt"

	"github.com/tliron/glsp"
)

// RequestContext contains all request-scoped data for an LSP method call.
// It wraps both the server-wide context and the GLSP protocol context,
// and provides storage for request-scoped warnings.
type RequestContext struct {
	Server   ServerContext // Server-wide context (documents, config, linter)
	GLSP     *glsp.Context // GLSP protocol context (Notify, Call methods)
	Method   string        // LSP method name, for logging
	warnings []error
}

// NewRequestContext creates a new request context
func NewRequestContext(server ServerContext, glsp *glsp.Context) *RequestContext {
	req := &RequestContext{
		Server: server,
		GLSP:   glsp,
	}
	if glsp != nil {
		req.Method = glsp.Method
	}
	return req
}

// AddWarning adds a non-fatal warning to this request.
// Warnings are logged by middleware after successful handler completion.
func (r *RequestContext) AddWarning(err error) {
	if err != nil {
		r.warnings = append(r.warnings, err)
	}
}

// Warnf formats a warning and adds it to this request
func (r *RequestContext) Warnf(format string, args ...any) {
	r.AddWarning(fmt.Errorf(format, args...))
}

// Warnings returns all warnings collected during this request.
// Returns nil if no warnings were added.
func (r *RequestContext) Warnings() []error {
	return r.warnings
}

// HasWarnings returns true if any warnings were collected
func (r *RequestContext) HasWarnings() bool {
	return len(r.warnings) > 0
}
