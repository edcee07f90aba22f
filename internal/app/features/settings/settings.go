// internal/app/features/settings/settings.go
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	httperrors "github.com/dalemusser/folio/internal/app/features/errors"
	"github.com/dalemusser/folio/internal/app/system/apierr"
	"github.com/dalemusser/folio/internal/app/system/blobstore"
	"github.com/dalemusser/folio/internal/app/system/datauri"
	"github.com/dalemusser/folio/internal/app/system/inputval"
	"github.com/dalemusser/folio/internal/app/system/normalize"
	"github.com/dalemusser/folio/internal/app/system/timeouts"
	"github.com/dalemusser/folio/internal/domain/models"
	"go.uber.org/zap"
)

type upsertInput struct {
	Key   string  `json:"key" validate:"required,max=100"`
	Value *string `json:"value" validate:"required"`
	Type  string  `json:"type" validate:"omitempty,settingtype"`
	Label string  `json:"label" validate:"max=200"`
}

// List serves GET /api/settings. With ?key= it returns that one setting,
// or {key, value: null} when the key is unknown.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if r.URL.Query().Has("key") {
		key := normalize.Key(r.URL.Query().Get("key"))
		if key == "" {
			h.ErrLog.Write(w, r, apierr.Validation("key is required."))
			return
		}
		st, err := h.Store.Get(ctx, key)
		if err != nil {
			h.ErrLog.LogServerError(w, r, "get setting failed", err)
			return
		}
		httperrors.WriteJSON(w, http.StatusOK, toView(st))
		return
	}

	list, err := h.Store.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list settings failed", err)
		return
	}
	httperrors.WriteJSON(w, http.StatusOK, toViews(list))
}

// parseValue turns the submitted string into a stored value. Data URIs
// become blobs; anything else is kept as a reference.
func (h *Handler) parseValue(raw, typ string) (models.SettingValue, []byte, error) {
	if !datauri.Is(raw) {
		if typ == models.SettingTypeJSON && !json.Valid([]byte(raw)) {
			return models.SettingValue{}, nil, apierr.Validation("value must be valid JSON for type json.")
		}
		return models.SettingValue{Kind: models.ValueKindRef, Ref: raw}, nil, nil
	}

	blob, err := datauri.Parse(raw, h.MaxBlobBytes)
	switch {
	case errors.Is(err, datauri.ErrTooLarge):
		return models.SettingValue{}, nil, apierr.Validation("value exceeds the %d byte upload limit.", h.MaxBlobBytes)
	case err != nil:
		return models.SettingValue{}, nil, apierr.Validation("value is not a valid base64 data URI.")
	}
	return models.SettingValue{
		Kind:     models.ValueKindBlob,
		MimeType: blob.MimeType,
		Size:     int64(len(blob.Data)),
	}, blob.Data, nil
}

// Upsert serves POST /api/settings.
func (h *Handler) Upsert(w http.ResponseWriter, r *http.Request) {
	var in upsertInput
	if err := httperrors.DecodeJSON(w, r, &in, h.maxBody()); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	in.Key = normalize.Key(in.Key)
	in.Label = normalize.Name(in.Label)
	if err := inputval.Validate(in).Err(); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	if strings.TrimSpace(*in.Value) == "" {
		h.ErrLog.Write(w, r, apierr.Validation("value is required."))
		return
	}
	if in.Type == "" {
		in.Type = models.DefaultSettingType
	}
	if in.Label == "" {
		in.Label = in.Key
	}

	val, data, err := h.parseValue(*in.Value, in.Type)
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if val.IsBlob() {
		if h.Blobs == nil {
			val.Data = data
		} else {
			val.ObjectKey = blobstore.NewKey(in.Key)
			if err := h.Blobs.Put(ctx, val.ObjectKey, data, val.MimeType); err != nil {
				h.ErrLog.LogServerError(w, r, "store setting blob failed", err)
				return
			}
		}
	}

	st, prev, err := h.Store.Upsert(ctx, models.SiteSetting{
		Key:   in.Key,
		Value: val,
		Type:  in.Type,
		Label: in.Label,
	})
	if err != nil {
		h.removeObject(ctx, val.ObjectKey)
		h.ErrLog.Write(w, r, err)
		return
	}
	if prev != nil && prev.ObjectKey != val.ObjectKey {
		h.removeObject(ctx, prev.ObjectKey)
	}

	h.Log.Info("setting saved",
		zap.String("key", st.Key),
		zap.String("kind", val.Kind),
		zap.Int64("size", val.Size))
	httperrors.WriteJSON(w, http.StatusOK, toView(st))
}

// Delete serves DELETE /api/settings?key=K. Unknown keys succeed.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	key := normalize.Key(r.URL.Query().Get("key"))
	if key == "" {
		h.ErrLog.Write(w, r, apierr.Validation("key is required."))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	removed, err := h.Store.Delete(ctx, key)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "delete setting failed", err)
		return
	}
	if removed != nil {
		h.removeObject(ctx, removed.Value.ObjectKey)
		h.Log.Info("setting deleted", zap.String("key", key))
	}
	httperrors.WriteJSON(w, http.StatusOK, map[string]string{"message": "Setting deleted successfully"})
}

// removeObject deletes a blob object. Failures leave an orphan and are
// only logged.
func (h *Handler) removeObject(ctx context.Context, objectKey string) {
	if objectKey == "" || h.Blobs == nil {
		return
	}
	if err := h.Blobs.Remove(ctx, objectKey); err != nil {
		h.Log.Warn("failed to remove setting blob",
			zap.String("object_key", objectKey), zap.Error(err))
	}
}
