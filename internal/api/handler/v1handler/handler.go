// Package v1handler implements the v1 HTTP endpoints of the link cleaner.
package v1handler

import (
	"context"
	"errors"
	"net/http"

	"linkcleaner/internal/cleaner"
	"linkcleaner/pkg/logger"
	"linkcleaner/pkg/serrors"

	"github.com/go-faster/jx"
	"go.uber.org/zap"
)

// DefaultMaxBodyBytes limits request bodies when Options leaves it unset.
const DefaultMaxBodyBytes = 64 << 10

// Deps are the services the handlers call into.
type Deps struct {
	Cleaner cleaner.Cleaner
	// Sec authenticates callers of endpoints that issue outbound probes.
	// Nil disables authentication.
	Sec *SecHandler
}

// Options tune request handling.
type Options struct {
	// MaxBodyBytes limits JSON and form bodies.
	MaxBodyBytes int64
}

// Handler serves the v1 API.
type Handler struct {
	deps    Deps
	options Options
}

// New creates a Handler.
func New(deps Deps, options ...Options) *Handler {
	var opts Options
	if len(options) > 0 {
		opts = options[0]
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}

	return &Handler{deps: deps, options: opts}
}

// Register mounts every v1 route and the share-target endpoint on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/v1/normalize", h.Normalize)
	mux.HandleFunc("/v1/resolve", h.Resolve)
	mux.HandleFunc("/v1/clean", h.Clean)
	mux.HandleFunc("/v1/tables", h.Tables)
	mux.HandleFunc("/share-target", h.ShareTarget)
	mux.HandleFunc("/", h.Landing)
}

// Error is the JSON body of every error response.
type Error struct {
	Code    string
	Message string
}

// ErrorStatusCode pairs an error body with its HTTP status.
type ErrorStatusCode struct {
	StatusCode int
	Response   Error
}

// statusByKind maps semantic kinds to HTTP statuses and default messages.
var statusByKind = map[serrors.Kind]struct { //nolint: gochecknoglobals
	status  int
	message string
}{
	serrors.ErrBadRequest:       {http.StatusBadRequest, "bad request"},
	serrors.ErrUnauthorized:     {http.StatusUnauthorized, "unauthorized"},
	serrors.ErrNotFound:         {http.StatusNotFound, "resource not found"},
	serrors.ErrMethodNotAllowed: {http.StatusMethodNotAllowed, "method not allowed"},
}

// NewError converts err into an error response. Semantic errors keep their
// message; anything else becomes an opaque internal error and is logged.
func (h Handler) NewError(ctx context.Context, err error) *ErrorStatusCode {
	kind := serrors.KindOf(err)
	mapped, ok := statusByKind[kind]
	if !ok {
		logger.Error(ctx, "request failed", zap.Error(err))

		return &ErrorStatusCode{
			StatusCode: http.StatusInternalServerError,
			Response:   Error{Code: serrors.ErrInternal.Error(), Message: "internal error"},
		}
	}

	msg := mapped.message
	var se *serrors.Error
	if errors.As(err, &se) && se.Message() != "" {
		msg = se.Message()
	}
	logger.Debug(ctx, "request rejected", zap.Error(err), zap.Int("status", mapped.status))

	return &ErrorStatusCode{
		StatusCode: mapped.status,
		Response:   Error{Code: kind.Error(), Message: msg},
	}
}

// writeError encodes err as a JSON error response.
func (h Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	res := h.NewError(r.Context(), err)

	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("code", func(e *jx.Encoder) { e.Str(res.Response.Code) })
		e.Field("message", func(e *jx.Encoder) { e.Str(res.Response.Message) })
	})
	writeJSON(w, res.StatusCode, e.Bytes())
}

func writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
