package security

import (
	"path/filepath"
	"testing"
)

func TestValidateOutputName(t *testing.T) {
	dir := filepath.Join("out", "theme")

	tests := []struct {
		name    string
		file    string
		dir     string
		wantErr bool
	}{
		{name: "plain file", file: "nocturne.css", dir: dir},
		{name: "nested file", file: filepath.Join("css", "tokens.css"), dir: dir},
		{name: "current directory", file: "nocturne.json", dir: "."},
		{name: "dots in name", file: "tokens..css", dir: dir},
		{name: "empty", file: "", dir: dir, wantErr: true},
		{name: "parent", file: filepath.Join("..", "escape.css"), dir: dir, wantErr: true},
		{name: "nested parent", file: "css/../../escape.css", dir: dir, wantErr: true},
		{name: "absolute", file: filepath.Join(string(filepath.Separator), "etc", "passwd"), dir: dir, wantErr: true},
		{name: "directory itself", file: ".", dir: dir, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputName(tt.file, tt.dir)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputName(%q, %q) error = %v, wantErr %v", tt.file, tt.dir, err, tt.wantErr)
			}
		})
	}
}
