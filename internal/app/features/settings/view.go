// internal/app/features/settings/view.go
package settings

import (
	"net/url"
	"time"

	"github.com/dalemusser/folio/internal/app/system/datauri"
	"github.com/dalemusser/folio/internal/domain/models"
)

// settingView is the JSON shape of a setting. Value is null for unknown
// keys; blob values are rendered as a data URI (inline) or as the content
// URL (object storage).
type settingView struct {
	ID        string     `json:"id,omitempty"`
	Key       string     `json:"key"`
	Value     *string    `json:"value"`
	ValueKind string     `json:"valueKind,omitempty"`
	MimeType  string     `json:"mimeType,omitempty"`
	Size      int64      `json:"size,omitempty"`
	Type      string     `json:"type,omitempty"`
	Label     string     `json:"label,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// contentPath is where object-stored blobs are served from.
func contentPath(key string) string {
	return "/api/settings/content?key=" + url.QueryEscape(key)
}

func toView(st models.SiteSetting) settingView {
	if !st.Exists {
		return settingView{Key: st.Key}
	}

	v := settingView{
		ID:        st.ID.Hex(),
		Key:       st.Key,
		ValueKind: st.Value.Kind,
		Type:      st.Type,
		Label:     st.Label,
		CreatedAt: &st.CreatedAt,
		UpdatedAt: &st.UpdatedAt,
	}

	var val string
	switch {
	case !st.Value.IsBlob():
		val = st.Value.Ref
	case st.Value.ObjectKey != "":
		val = contentPath(st.Key)
	default:
		val = datauri.Format(st.Value.MimeType, st.Value.Data)
	}
	v.Value = &val
	if st.Value.IsBlob() {
		v.MimeType = st.Value.MimeType
		v.Size = st.Value.Size
	}
	return v
}

func toViews(list []models.SiteSetting) []settingView {
	out := make([]settingView, len(list))
	for i, st := range list {
		out[i] = toView(st)
	}
	return out
}
