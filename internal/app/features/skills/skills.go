// internal/app/features/skills/skills.go
package skills

import (
	"context"
	"net/http"
	"strings"

	httperrors "github.com/dalemusser/folio/internal/app/features/errors"
	skillstore "github.com/dalemusser/folio/internal/app/store/skills"
	"github.com/dalemusser/folio/internal/app/system/apierr"
	"github.com/dalemusser/folio/internal/app/system/inputval"
	"github.com/dalemusser/folio/internal/app/system/timeouts"
	"github.com/dalemusser/folio/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type createInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Category    string `json:"category" validate:"required,skillcategory"`
	Proficiency *int   `json:"proficiency"`
	Order       int    `json:"order"`
}

type updateInput struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Category    *string `json:"category" validate:"omitempty,skillcategory"`
	Proficiency *int    `json:"proficiency"`
	Order       *int    `json:"order"`
}

// proficiency applies the configured policy to a supplied value.
func (h *Handler) proficiency(p *int) (*int, error) {
	if p == nil {
		return nil, nil
	}
	v := *p
	switch {
	case v >= models.ProficiencyMin && v <= models.ProficiencyMax:
	case h.Policy == PolicyClamp:
		v = min(max(v, models.ProficiencyMin), models.ProficiencyMax)
	default:
		return nil, apierr.Validation("proficiency must be between %d and %d.", models.ProficiencyMin, models.ProficiencyMax)
	}
	return &v, nil
}

// List serves GET /api/skills, optionally filtered by ?category=.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	if category != "" && !models.IsSkillCategory(category) {
		h.ErrLog.Write(w, r, apierr.Validation("category must be one of: %s.", strings.Join(models.SkillCategories, ", ")))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	items, err := h.Store.List(ctx, category)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list skills failed", err)
		return
	}
	httperrors.WriteJSON(w, http.StatusOK, items)
}

// Get serves GET /api/skills/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	sk, err := h.Store.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	httperrors.WriteJSON(w, http.StatusOK, sk)
}

// Create serves POST /api/skills.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in createInput
	if err := httperrors.DecodeJSON(w, r, &in, 0); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.ToLower(strings.TrimSpace(in.Category))
	if err := inputval.Validate(in).Err(); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	prof, err := h.proficiency(in.Proficiency)
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	sk := models.Skill{Name: in.Name, Category: in.Category, Order: in.Order}
	if prof != nil {
		sk.Proficiency = *prof
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	sk, err = h.Store.Create(ctx, sk)
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	h.Log.Info("skill created", zap.String("skill_id", sk.ID.Hex()))
	httperrors.WriteJSON(w, http.StatusCreated, sk)
}

// Update serves PUT /api/skills/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var in updateInput
	if err := httperrors.DecodeJSON(w, r, &in, 0); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	if in.Name != nil {
		*in.Name = strings.TrimSpace(*in.Name)
	}
	if in.Category != nil {
		*in.Category = strings.ToLower(strings.TrimSpace(*in.Category))
	}
	if err := inputval.Validate(in).Err(); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	prof, err := h.proficiency(in.Proficiency)
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	sk, err := h.Store.Update(ctx, chi.URLParam(r, "id"), skillstore.Update{
		Name:        in.Name,
		Category:    in.Category,
		Proficiency: prof,
		Order:       in.Order,
	})
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	httperrors.WriteJSON(w, http.StatusOK, sk)
}

// Delete serves DELETE /api/skills/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id := chi.URLParam(r, "id")
	if err := h.Store.Delete(ctx, id); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	h.Log.Info("skill deleted", zap.String("skill_id", id))
	httperrors.WriteJSON(w, http.StatusOK, map[string]string{"message": "Skill deleted successfully"})
}
