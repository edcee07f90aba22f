// internal/app/features/settings/content.go
package settings

import (
	"context"
	"errors"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/folio/internal/app/system/apierr"
	"github.com/dalemusser/folio/internal/app/system/blobstore"
	"github.com/dalemusser/folio/internal/app/system/inputval"
	"github.com/dalemusser/folio/internal/app/system/normalize"
	"github.com/dalemusser/folio/internal/app/system/timeouts"
	"go.uber.org/zap"
)

var errNoContent = apierr.NotFound("Setting has no content")

// ServeContent serves GET /api/settings/content?key=K: the raw bytes of a
// blob setting, or a redirect when the setting holds a URL.
func (h *Handler) ServeContent(w http.ResponseWriter, r *http.Request) {
	key := normalize.Key(r.URL.Query().Get("key"))
	if key == "" {
		h.ErrLog.Write(w, r, apierr.Validation("key is required."))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	st, err := h.Store.Get(ctx, key)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "get setting failed", err)
		return
	}
	if !st.Exists {
		h.ErrLog.Write(w, r, apierr.NotFound("Setting not found"))
		return
	}

	if !st.Value.IsBlob() {
		if inputval.IsValidHTTPURL(st.Value.Ref) {
			http.Redirect(w, r, st.Value.Ref, http.StatusFound)
			return
		}
		h.ErrLog.Write(w, r, errNoContent)
		return
	}

	data, mimeType := st.Value.Data, st.Value.MimeType
	if st.Value.ObjectKey != "" {
		data, err = h.fetchObject(ctx, st.Value.ObjectKey)
		if err != nil {
			if errors.Is(err, blobstore.ErrNotFound) {
				h.Log.Warn("setting blob missing from object storage",
					zap.String("key", key), zap.String("object_key", st.Value.ObjectKey))
				h.ErrLog.Write(w, r, errNoContent)
				return
			}
			h.ErrLog.LogServerError(w, r, "fetch setting blob failed", err)
			return
		}
	}

	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "no-cache")
	if !inlineSafe(mimeType) {
		w.Header().Set("Content-Security-Policy", "sandbox")
		w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": key}))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *Handler) fetchObject(ctx context.Context, objectKey string) ([]byte, error) {
	if h.Blobs == nil {
		// Stored while object storage was enabled; the backend is now inline.
		return nil, blobstore.ErrNotFound
	}
	data, _, err := h.Blobs.Get(ctx, objectKey)
	return data, err
}

// inlineSafe reports whether a stored MIME type may render in the
// browser on this origin. SVG is an image that can carry script.
func inlineSafe(mimeType string) bool {
	mt, _, _ := strings.Cut(strings.ToLower(mimeType), ";")
	mt = strings.TrimSpace(mt)
	switch {
	case mt == "image/svg+xml":
		return false
	case strings.HasPrefix(mt, "image/"):
		return true
	case mt == "application/pdf":
		return true
	}
	return false
}
