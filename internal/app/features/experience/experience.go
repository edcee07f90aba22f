// internal/app/features/experience/experience.go
package experience

import (
	"context"
	"net/http"
	"strings"

	httperrors "github.com/dalemusser/folio/internal/app/features/errors"
	experiencestore "github.com/dalemusser/folio/internal/app/store/experience"
	"github.com/dalemusser/folio/internal/app/system/apierr"
	"github.com/dalemusser/folio/internal/app/system/inputval"
	"github.com/dalemusser/folio/internal/app/system/timeouts"
	"github.com/dalemusser/folio/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type createInput struct {
	Company      string   `json:"company" validate:"required,max=200"`
	Position     string   `json:"position" validate:"required,max=200"`
	Description  string   `json:"description" validate:"required,max=5000"`
	Technologies []string `json:"technologies" validate:"max=50,dive,max=60"`
	StartDate    string   `json:"startDate" validate:"required"`
	EndDate      *string  `json:"endDate"`
	Current      bool     `json:"current"`
	Order        int      `json:"order"`
}

type updateInput struct {
	Company      *string      `json:"company" validate:"omitempty,min=1,max=200"`
	Position     *string      `json:"position" validate:"omitempty,min=1,max=200"`
	Description  *string      `json:"description" validate:"omitempty,min=1,max=5000"`
	Technologies *[]string    `json:"technologies" validate:"omitempty,max=50,dive,max=60"`
	StartDate    *string      `json:"startDate"`
	EndDate      nullableDate `json:"endDate"`
	Current      *bool        `json:"current"`
	Order        *int         `json:"order"`
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}

// List serves GET /api/experience.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	items, err := h.Store.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list experience failed", err)
		return
	}
	httperrors.WriteJSON(w, http.StatusOK, items)
}

// Get serves GET /api/experience/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	e, err := h.Store.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	httperrors.WriteJSON(w, http.StatusOK, e)
}

// Create serves POST /api/experience.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in createInput
	if err := httperrors.DecodeJSON(w, r, &in, 0); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	in.Company = strings.TrimSpace(in.Company)
	in.Position = strings.TrimSpace(in.Position)
	in.Description = strings.TrimSpace(in.Description)
	in.StartDate = strings.TrimSpace(in.StartDate)
	if err := inputval.Validate(in).Err(); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	e := models.Experience{
		Company:      in.Company,
		Position:     in.Position,
		Description:  in.Description,
		Technologies: in.Technologies,
		Current:      in.Current,
		Order:        in.Order,
	}
	start, err := parseDate("startDate", in.StartDate)
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	e.StartDate = start
	if in.EndDate != nil && strings.TrimSpace(*in.EndDate) != "" && !in.Current {
		end, err := parseDate("endDate", *in.EndDate)
		if err != nil {
			h.ErrLog.Write(w, r, err)
			return
		}
		if end.Before(start) {
			h.ErrLog.Write(w, r, apierr.Validation("endDate must not be before startDate."))
			return
		}
		e.EndDate = &end
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	e, err = h.Store.Create(ctx, e)
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	h.Log.Info("experience created", zap.String("experience_id", e.ID.Hex()))
	httperrors.WriteJSON(w, http.StatusCreated, e)
}

// Update serves PUT /api/experience/{id}. An explicit "endDate": null
// removes the stored end date.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var in updateInput
	if err := httperrors.DecodeJSON(w, r, &in, 0); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	trimPtr(in.Company)
	trimPtr(in.Position)
	trimPtr(in.Description)
	if err := inputval.Validate(in).Err(); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	upd := experiencestore.Update{
		Company:      in.Company,
		Position:     in.Position,
		Description:  in.Description,
		Technologies: in.Technologies,
		Current:      in.Current,
		Order:        in.Order,
	}
	if in.StartDate != nil {
		start, err := parseDate("startDate", *in.StartDate)
		if err != nil {
			h.ErrLog.Write(w, r, err)
			return
		}
		upd.StartDate = &start
	}
	if in.EndDate.Set {
		if in.EndDate.Null || strings.TrimSpace(in.EndDate.Value) == "" {
			upd.ClearEndDate = true
		} else {
			end, err := parseDate("endDate", in.EndDate.Value)
			if err != nil {
				h.ErrLog.Write(w, r, err)
				return
			}
			upd.EndDate = &end
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id := chi.URLParam(r, "id")
	if upd.StartDate != nil || upd.EndDate != nil || upd.Current != nil {
		// The check runs against the merged record so a payload carrying
		// only one of the dates cannot store a range Create would reject.
		cur, err := h.Store.GetByID(ctx, id)
		if err != nil {
			h.ErrLog.Write(w, r, err)
			return
		}
		if err := checkRange(cur, upd); err != nil {
			h.ErrLog.Write(w, r, err)
			return
		}
	}

	e, err := h.Store.Update(ctx, id, upd)
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	httperrors.WriteJSON(w, http.StatusOK, e)
}

// Delete serves DELETE /api/experience/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id := chi.URLParam(r, "id")
	if err := h.Store.Delete(ctx, id); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	h.Log.Info("experience deleted", zap.String("experience_id", id))
	httperrors.WriteJSON(w, http.StatusOK, map[string]string{"message": "Experience deleted successfully"})
}


// checkRange applies upd to cur and rejects an end date before the start
// date. A current position has no meaningful end date and is not checked.
func checkRange(cur models.Experience, upd experiencestore.Update) error {
	current := cur.Current
	if upd.Current != nil {
		current = *upd.Current
	}
	if current {
		return nil
	}
	start := cur.StartDate
	if upd.StartDate != nil {
		start = *upd.StartDate
	}
	end := cur.EndDate
	if upd.EndDate != nil {
		end = upd.EndDate
	}
	if upd.ClearEndDate {
		end = nil
	}
	if end != nil && end.Before(start) {
		return apierr.Validation("endDate must not be before startDate.")
	}
	return nil
}
