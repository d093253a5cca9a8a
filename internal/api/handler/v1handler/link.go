package v1handler

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"linkcleaner/pkg/domain"
	"linkcleaner/pkg/serrors"

	"github.com/go-faster/jx"
)

// Normalize cleans a link without any network access.
//
//	GET  /v1/normalize?url=<link>
//	POST /v1/normalize {"url": "<link>"}
func (h Handler) Normalize(w http.ResponseWriter, r *http.Request) {
	input, err := h.readLink(w, r)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	res := h.deps.Cleaner.Clean(r.Context(), input, false)
	writeJSON(w, http.StatusOK, encodeResult(res, false))
}

// Resolve peeks at the first redirect of a shortened link.
//
//	GET  /v1/resolve?url=<link>
//	POST /v1/resolve {"url": "<link>"}
func (h Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	ctx, err := h.deps.Sec.Authenticate(r.Context(), r)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	input, err := h.readLink(w, r)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("input", func(e *jx.Encoder) { e.Str(input) })
		e.Field("output", func(e *jx.Encoder) { e.Str(h.deps.Cleaner.Resolve(ctx, input)) })
	})
	writeJSON(w, http.StatusOK, e.Bytes())
}

// Clean runs the full pipeline: normalize, resolve shorteners, normalize the
// destination again. resolve=false skips the probe.
//
//	GET  /v1/clean?url=<link>[&resolve=false]
//	POST /v1/clean {"url": "<link>"}
func (h Handler) Clean(w http.ResponseWriter, r *http.Request) {
	input, err := h.readLink(w, r)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	resolve := true
	if v := r.URL.Query().Get("resolve"); v != "" {
		if resolve, err = strconv.ParseBool(v); err != nil {
			h.writeError(w, r, serrors.Wrap(serrors.ErrBadRequest, err, "invalid resolve flag"))

			return
		}
	}

	ctx := r.Context()
	if resolve {
		if ctx, err = h.deps.Sec.Authenticate(ctx, r); err != nil {
			h.writeError(w, r, err)

			return
		}
	}

	res := h.deps.Cleaner.Clean(ctx, input, resolve)
	writeJSON(w, http.StatusOK, encodeResult(res, true))
}

// Tables lists the tracking parameters and shortener domains in use.
//
//	GET /v1/tables
func (h Handler) Tables(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, r, serrors.KindOnly(serrors.ErrMethodNotAllowed))

		return
	}

	tables := h.deps.Cleaner.Tables()

	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("trackingParams", func(e *jx.Encoder) { encodeStrings(e, tables.TrackingParams()) })
		e.Field("shorteners", func(e *jx.Encoder) { encodeStrings(e, tables.Shorteners()) })
	})
	writeJSON(w, http.StatusOK, e.Bytes())
}

// Landing is where share-target submissions end up: /?title=..&url=..
// Shorteners are only resolved for authenticated callers when authentication
// is enabled; everyone else gets the offline normalization.
func (h Handler) Landing(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		h.writeError(w, r, serrors.KindOnly(serrors.ErrNotFound))

		return
	}
	if r.Method != http.MethodGet {
		h.writeError(w, r, serrors.KindOnly(serrors.ErrMethodNotAllowed))

		return
	}

	q := r.URL.Query()
	input := q.Get("url")
	if input == "" {
		h.writeError(w, r, serrors.With(serrors.ErrBadRequest, "url is required"))

		return
	}

	ctx, err := h.deps.Sec.Authenticate(r.Context(), r)
	res := h.deps.Cleaner.Clean(ctx, input, err == nil)

	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		if title := q.Get("title"); title != "" {
			e.Field("title", func(e *jx.Encoder) { e.Str(title) })
		}
		encodeResultFields(e, res, true)
	})
	writeJSON(w, http.StatusOK, e.Bytes())
}

// readLink extracts the link to work on from the query string (GET) or from a
// JSON or form body (POST).
func (h Handler) readLink(w http.ResponseWriter, r *http.Request) (string, error) {
	var input string

	switch r.Method {
	case http.MethodGet:
		input = r.URL.Query().Get("url")
	case http.MethodPost:
		r.Body = http.MaxBytesReader(w, r.Body, h.options.MaxBodyBytes)

		mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if mediaType == "application/x-www-form-urlencoded" || mediaType == "multipart/form-data" {
			if err := r.ParseMultipartForm(h.options.MaxBodyBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
				return "", serrors.Wrap(serrors.ErrBadRequest, err, "invalid form body")
			}
			input = linkFromForm(r)

			break
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			return "", serrors.Wrap(serrors.ErrBadRequest, err, "could not read body")
		}
		if input, err = decodeLink(body); err != nil {
			return "", serrors.Wrap(serrors.ErrBadRequest, err, "invalid JSON body")
		}
	default:
		return "", serrors.KindOnly(serrors.ErrMethodNotAllowed)
	}

	if strings.TrimSpace(input) == "" {
		return "", serrors.With(serrors.ErrBadRequest, "url is required")
	}

	return input, nil
}

// decodeLink reads {"url": "..."} and ignores every other field.
func decodeLink(body []byte) (string, error) {
	var input string
	err := jx.DecodeBytes(body).Obj(func(d *jx.Decoder, key string) error {
		if key != "url" {
			return d.Skip()
		}
		v, err := d.Str()
		if err != nil {
			return err //nolint: wrapcheck
		}
		input = v

		return nil
	})
	if err != nil {
		return "", err //nolint: wrapcheck
	}

	return input, nil
}

// linkFromForm picks the url field, falling back to text: share sheets often
// put the link in the text body instead.
func linkFromForm(r *http.Request) string {
	if v := r.PostForm.Get("url"); v != "" {
		return v
	}

	return r.PostForm.Get("text")
}

func encodeResult(res domain.CleanResult, full bool) []byte {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		encodeResultFields(e, res, full)
	})

	return e.Bytes()
}

func encodeResultFields(e *jx.Encoder, res domain.CleanResult, full bool) {
	e.Field("input", func(e *jx.Encoder) { e.Str(res.Input) })
	e.Field("output", func(e *jx.Encoder) { e.Str(res.Output) })
	if res.Rule != "" {
		e.Field("rule", func(e *jx.Encoder) { e.Str(res.Rule) })
	}
	if !full {
		return
	}
	if res.Resolved != "" {
		e.Field("resolved", func(e *jx.Encoder) { e.Str(res.Resolved) })
	}
	e.Field("changed", func(e *jx.Encoder) { e.Bool(res.Changed) })
}

func encodeStrings(e *jx.Encoder, values []string) {
	e.Arr(func(e *jx.Encoder) {
		for _, v := range values {
			e.Str(v)
		}
	})
}
