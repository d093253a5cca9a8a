package v1handler

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"linkcleaner/pkg/logger"
	"linkcleaner/pkg/serrors"

	"go.uber.org/zap"
)

const shareTargetSuffix = "/share-target"

// ShareTarget receives links shared from other apps (a Web Share Target form
// post with title, text and url fields) and hands them to the landing page.
// Errors never surface to the sharing app: it is always sent to the landing
// page, with whatever could be read from the form.
func (h Handler) ShareTarget(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		h.writeError(w, r, serrors.KindOnly(serrors.ErrMethodNotAllowed))

		return
	}

	base := shareBase(r.URL.Path)

	r.Body = http.MaxBytesReader(w, r.Body, h.options.MaxBodyBytes)
	if err := r.ParseMultipartForm(h.options.MaxBodyBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		logger.Debug(r.Context(), "could not parse shared form", zap.Error(err))
		http.Redirect(w, r, base, http.StatusSeeOther)

		return
	}

	q := url.Values{}
	if title := r.PostForm.Get("title"); title != "" {
		q.Set("title", title)
	}
	if link := linkFromForm(r); link != "" {
		q.Set("url", link)
	}

	target := base
	if len(q) > 0 {
		target += "?" + q.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// shareBase maps /app/share-target to /app/.
func shareBase(path string) string {
	if base, ok := strings.CutSuffix(path, shareTargetSuffix); ok {
		return base + "/"
	}

	return "/"
}
