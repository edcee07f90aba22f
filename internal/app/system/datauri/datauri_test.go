package datauri

import (
	"bytes"
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		max      int64
		wantMime string
		wantData []byte
		wantErr  error
	}{
		{"png", "data:image/png;base64,AQID", 0, "image/png", []byte{1, 2, 3}, nil},
		{"with params", "data:text/plain;charset=utf-8;base64,aGk=", 0, "text/plain", []byte("hi"), nil},
		{"uppercase scheme", "DATA:application/pdf;base64,aGk=", 0, "application/pdf", []byte("hi"), nil},
		{"at cap", "data:image/png;base64,AQID", 3, "image/png", []byte{1, 2, 3}, nil},

		{"over cap", "data:image/png;base64,AQIDBA==", 3, "", nil, ErrTooLarge},
		{"not a data uri", "https://example.com/a.png", 0, "", nil, ErrMalformed},
		{"no comma", "data:image/png;base64", 0, "", nil, ErrMalformed},
		{"not base64 encoded", "data:text/plain,hello", 0, "", nil, ErrMalformed},
		{"missing mime", "data:;base64,aGk=", 0, "", nil, ErrMalformed},
		{"bad payload", "data:image/png;base64,!!!", 0, "", nil, ErrMalformed},
		{"bad media type", "data:image;base64,aGk=", 0, "", nil, ErrMalformed},
		{"mixed case type", "data:Image/PNG;base64,aGk=", 0, "image/png", []byte("hi"), nil},
		{"empty payload", "data:image/png;base64,", 0, "image/png", []byte{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Parse(tt.in, tt.max)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err: got %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if b.MimeType != tt.wantMime {
				t.Errorf("MimeType: got %q, want %q", b.MimeType, tt.wantMime)
			}
			if !bytes.Equal(b.Data, tt.wantData) {
				t.Errorf("Data: got %v, want %v", b.Data, tt.wantData)
			}
		})
	}
}

func TestFormatRoundTrip(t *testing.T) {
	uri := Format("image/jpeg", []byte("jpeg bytes"))
	if !Is(uri) {
		t.Fatalf("Format produced %q, not a data URI", uri)
	}
	b, err := Parse(uri, 0)
	if err != nil {
		t.Fatalf("Parse(Format(...)): %v", err)
	}
	if b.MimeType != "image/jpeg" || string(b.Data) != "jpeg bytes" {
		t.Errorf("round trip: got (%q, %q)", b.MimeType, b.Data)
	}
}
