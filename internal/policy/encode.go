package policy

import (
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"
)

// Formats lists the encodings accepted by Encode.
var Formats = []string{"yaml", "json"}

// Encode writes p in the given format. The YAML form is a valid policy file
// for Load.
func Encode(w io.Writer, p Policy, format string) error {
	switch format {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(p); err != nil {
			return fmt.Errorf("failed to encode policy as YAML: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(p); err != nil {
			return fmt.Errorf("failed to encode policy as JSON: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported policy format %q (want yaml or json)", format)
	}
}
