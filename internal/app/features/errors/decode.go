package errors

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/dalemusser/folio/internal/app/system/apierr"
	"github.com/dalemusser/folio/internal/app/system/limits"
)

// DecodeJSON reads a single JSON value from r's body into v. maxBytes <= 0
// uses limits.MaxJSONBody. Malformed or oversized bodies are validation errors.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any, maxBytes int64) error {
	if maxBytes <= 0 {
		maxBytes = limits.MaxJSONBody
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		var tooBig *http.MaxBytesError
		switch {
		case stderrors.As(err, &tooBig):
			return apierr.Validation("Request body too large")
		case stderrors.Is(err, io.EOF):
			return apierr.Validation("Request body is required")
		default:
			var typeErr *json.UnmarshalTypeError
			if stderrors.As(err, &typeErr) && typeErr.Field != "" {
				return apierr.Validation("%s has the wrong type", typeErr.Field)
			}
			return apierr.Validation("Invalid JSON body")
		}
	}
	return nil
}
