// internal/app/features/projects/projects.go
package projects

import (
	"context"
	"net/http"
	"strings"

	httperrors "github.com/dalemusser/folio/internal/app/features/errors"
	projectstore "github.com/dalemusser/folio/internal/app/store/projects"
	"github.com/dalemusser/folio/internal/app/system/htmlsanitize"
	"github.com/dalemusser/folio/internal/app/system/inputval"
	"github.com/dalemusser/folio/internal/app/system/timeouts"
	"github.com/dalemusser/folio/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// longDescription may carry rich markup from the admin editor; it is
// sanitized before storage. Other text fields are stored as given.
type createInput struct {
	Title           string   `json:"title" validate:"required,max=200"`
	Description     string   `json:"description" validate:"required,max=2000"`
	LongDescription string   `json:"longDescription" validate:"max=20000"`
	Technologies    []string `json:"technologies" validate:"max=50,dive,max=60"`
	ImageURL        string   `json:"imageUrl" validate:"omitempty,httpurl"`
	GithubURL       string   `json:"githubUrl" validate:"omitempty,httpurl"`
	LiveURL         string   `json:"liveUrl" validate:"omitempty,httpurl"`
	Featured        bool     `json:"featured"`
	Order           int      `json:"order"`
}

func (in *createInput) trim() {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.LongDescription = htmlsanitize.Sanitize(strings.TrimSpace(in.LongDescription))
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	in.GithubURL = strings.TrimSpace(in.GithubURL)
	in.LiveURL = strings.TrimSpace(in.LiveURL)
}

// updateInput holds only the fields present in the request body.
type updateInput struct {
	Title           *string   `json:"title" validate:"omitempty,min=1,max=200"`
	Description     *string   `json:"description" validate:"omitempty,min=1,max=2000"`
	LongDescription *string   `json:"longDescription" validate:"omitempty,max=20000"`
	Technologies    *[]string `json:"technologies" validate:"omitempty,max=50,dive,max=60"`
	ImageURL        *string   `json:"imageUrl" validate:"omitempty,httpurl|len=0"`
	GithubURL       *string   `json:"githubUrl" validate:"omitempty,httpurl|len=0"`
	LiveURL         *string   `json:"liveUrl" validate:"omitempty,httpurl|len=0"`
	Featured        *bool     `json:"featured"`
	Order           *int      `json:"order"`
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}

func (in *updateInput) trim() {
	trimPtr(in.Title)
	trimPtr(in.Description)
	if in.LongDescription != nil {
		*in.LongDescription = htmlsanitize.Sanitize(strings.TrimSpace(*in.LongDescription))
	}
	trimPtr(in.ImageURL)
	trimPtr(in.GithubURL)
	trimPtr(in.LiveURL)
}

// List serves GET /api/projects.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	items, err := h.Store.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list projects failed", err)
		return
	}
	httperrors.WriteJSON(w, http.StatusOK, items)
}

// Get serves GET /api/projects/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Store.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	httperrors.WriteJSON(w, http.StatusOK, p)
}

// Create serves POST /api/projects.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in createInput
	if err := httperrors.DecodeJSON(w, r, &in, 0); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	in.trim()
	if err := inputval.Validate(in).Err(); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Store.Create(ctx, models.Project{
		Title:           in.Title,
		Description:     in.Description,
		LongDescription: in.LongDescription,
		Technologies:    in.Technologies,
		ImageURL:        in.ImageURL,
		GithubURL:       in.GithubURL,
		LiveURL:         in.LiveURL,
		Featured:        in.Featured,
		Order:           in.Order,
	})
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	h.Log.Info("project created", zap.String("project_id", p.ID.Hex()))
	httperrors.WriteJSON(w, http.StatusCreated, p)
}

// Update serves PUT /api/projects/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var in updateInput
	if err := httperrors.DecodeJSON(w, r, &in, 0); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	in.trim()
	if err := inputval.Validate(in).Err(); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Store.Update(ctx, chi.URLParam(r, "id"), projectstore.Update{
		Title:           in.Title,
		Description:     in.Description,
		LongDescription: in.LongDescription,
		Technologies:    in.Technologies,
		ImageURL:        in.ImageURL,
		GithubURL:       in.GithubURL,
		LiveURL:         in.LiveURL,
		Featured:        in.Featured,
		Order:           in.Order,
	})
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	httperrors.WriteJSON(w, http.StatusOK, p)
}

// Delete serves DELETE /api/projects/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id := chi.URLParam(r, "id")
	if err := h.Store.Delete(ctx, id); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	h.Log.Info("project deleted", zap.String("project_id", id))
	httperrors.WriteJSON(w, http.StatusOK, map[string]string{"message": "Project deleted successfully"})
}
