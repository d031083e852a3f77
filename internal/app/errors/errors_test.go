package errors

import (
	stderrors "errors"
	"io/fs"
	"strings"
	"testing"
)

func TestKindMatching(t *testing.T) {
	cause := fs.ErrNotExist

	tests := []struct {
		name string
		err  error
		kind *Error
	}{
		{"file access", FileAccess(cause, "/tmp/upload.mp3"), ErrFileAccess},
		{"unsupported format", UnsupportedFormat("flac", []string{"mp3", "wav", "m4a"}), ErrUnsupportedFormat},
		{"model load", ModelLoad(cause, "base"), ErrModelLoad},
		{"analysis unavailable", AnalysisUnavailable(New("all candidates failed")), ErrAnalysisUnavailable},
		{"malformed response", MalformedResponse(New("invalid character"), "llama-3.1-8b-instant"), ErrMalformedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !stderrors.Is(tt.err, tt.kind) {
				t.Errorf("expected errors.Is(%v, %v) to hold", tt.err, tt.kind)
			}
			for _, other := range []*Error{ErrFileAccess, ErrUnsupportedFormat, ErrModelLoad, ErrAnalysisUnavailable, ErrMalformedResponse} {
				if other != tt.kind && stderrors.Is(tt.err, other) {
					t.Errorf("error %v unexpectedly matches kind %v", tt.err, other)
				}
			}
		})
	}
}

func TestKindPreservesCause(t *testing.T) {
	err := FileAccess(fs.ErrPermission, "/var/audio.wav")
	if !stderrors.Is(err, fs.ErrPermission) {
		t.Errorf("underlying cause lost: %v", err)
	}
	if !strings.Contains(err.Error(), "/var/audio.wav") {
		t.Errorf("context lost: %v", err)
	}
}

func TestKindWithNilCause(t *testing.T) {
	err := AnalysisUnavailable(nil)
	if !stderrors.Is(err, ErrAnalysisUnavailable) {
		t.Errorf("bare kind should match itself: %v", err)
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) should return nil")
	}
	if Wrapf(nil, "context %d", 1) != nil {
		t.Error("Wrapf(nil) should return nil")
	}
}

func TestWrapMessage(t *testing.T) {
	err := Wrap(New("inner"), "outer")
	if got := err.Error(); got != "outer: inner" {
		t.Errorf("unexpected message: %q", got)
	}
}
