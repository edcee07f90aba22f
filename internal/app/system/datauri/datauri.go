// Package datauri parses and formats base64 `data:` URIs, the form the
// admin UI uses to upload images and files into site settings.
package datauri

import (
	"encoding/base64"
	"errors"
	"strings"

	"github.com/vincent-petithory/dataurl"
)

const prefix = "data:"

var (
	ErrMalformed = errors.New("malformed data URI")
	ErrTooLarge  = errors.New("data URI payload too large")
)

// Blob is a decoded data URI.
type Blob struct {
	MimeType string
	Data     []byte
}

// Is reports whether s looks like a data URI. It does not validate it.
func Is(s string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// Parse decodes `data:<mime>[;params];base64,<payload>`. A mime type is
// required and only base64 payloads are accepted. Payloads that would
// decode to more than maxBytes are rejected before decoding.
func Parse(s string, maxBytes int64) (Blob, error) {
	if !Is(s) {
		return Blob{}, ErrMalformed
	}
	header, payload, ok := strings.Cut(s[len(prefix):], ",")
	if !ok {
		return Blob{}, ErrMalformed
	}
	if mt, _, _ := strings.Cut(header, ";"); !strings.Contains(mt, "/") {
		// dataurl falls back to text/plain; uploads must say what they are.
		return Blob{}, ErrMalformed
	}

	// Only the header goes through dataurl. The payload is decoded here so
	// the cap applies before the bytes are allocated.
	du, err := dataurl.DecodeString(prefix + strings.ToLower(header) + ",")
	if err != nil || du.Encoding != dataurl.EncodingBase64 {
		return Blob{}, ErrMalformed
	}

	if maxBytes > 0 && int64(base64.StdEncoding.DecodedLen(len(payload))) > maxBytes+2 {
		return Blob{}, ErrTooLarge
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Blob{}, ErrMalformed
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return Blob{}, ErrTooLarge
	}
	return Blob{MimeType: du.ContentType(), Data: data}, nil
}

// Format encodes data as a base64 data URI.
func Format(mimeType string, data []byte) string {
	typ, sub, _ := strings.Cut(mimeType, "/")
	du := &dataurl.DataURL{
		MediaType: dataurl.MediaType{Type: typ, Subtype: sub, Params: map[string]string{}},
		Encoding:  dataurl.EncodingBase64,
		Data:      data,
	}
	return du.String()
}
