package policy

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEncodeRoundTrip(t *testing.T) {
	want := Default()
	want.MinUIContrast = 3.5
	want.Converge.MaxAttempts = 12

	for _, format := range Formats {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, want, format); err != nil {
				t.Fatalf("Encode() error = %v", err)
			}

			path := filepath.Join(t.TempDir(), "policy."+format)
			if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
				t.Fatalf("failed to write policy file: %v", err)
			}

			got, err := Load(path, nil)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if got != want {
				t.Errorf("Load(Encode(p)) = %+v, want %+v", got, want)
			}
		})
	}
}

func TestEncodeYAMLKeys(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, Default(), "yaml"); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	out := buf.String()
	for _, key := range []string{"min_text_contrast:", "dark_background:", "converge:", "  max_attempts:"} {
		if !strings.Contains(out, key) {
			t.Errorf("YAML output missing %q:\n%s", key, out)
		}
	}
}

func TestEncodeJSONIsValid(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, Default(), "json"); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !json.Valid(buf.Bytes()) {
		t.Errorf("Encode(json) produced invalid JSON:\n%s", buf.String())
	}
}

func TestEncodeUnknownFormat(t *testing.T) {
	if err := Encode(&bytes.Buffer{}, Default(), "toml"); err == nil {
		t.Error("Encode(toml) error = nil, want error")
	}
}
