// Package testing provides shared test utilities for output plugins.
package testing

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/nocturne/internal/plugin/output"
	"github.com/jmylchreest/nocturne/internal/policy"
	"github.com/jmylchreest/nocturne/internal/tokens"
)

// TestBasicInterface tests the basic plugin interface methods that all plugins must implement.
func TestBasicInterface(t *testing.T, p output.Plugin, expectedName string) {
	t.Run("Name", func(t *testing.T) {
		if p.Name() != expectedName {
			t.Errorf("Name() = %s, want %s", p.Name(), expectedName)
		}
	})

	t.Run("Description", func(t *testing.T) {
		desc := p.Description()
		if desc == "" {
			t.Error("Description() should not be empty")
		}
	})

	t.Run("DefaultOutputDir", func(t *testing.T) {
		dir := p.DefaultOutputDir()
		if dir == "" {
			t.Error("DefaultOutputDir() should not be empty")
		}
	})

	t.Run("Validate", func(t *testing.T) {
		if err := p.Validate(); err != nil {
			t.Errorf("Validate() error = %v, want nil", err)
		}
	})
}

// TestGeneration tests the Generate method with various scenarios.
func TestGeneration(t *testing.T, p output.Plugin, expectedFiles []string) {
	t.Run("Generate", func(t *testing.T) {
		files, err := p.Generate(CreateTestDerivation(t, "#3366ff"))
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}

		if len(files) != len(expectedFiles) {
			t.Fatalf("Generate() returned %d files, want %d", len(files), len(expectedFiles))
		}

		for _, expectedFile := range expectedFiles {
			content, ok := files[expectedFile]
			if !ok {
				t.Errorf("Generate() did not return %s", expectedFile)
				continue
			}
			if len(content) == 0 {
				t.Errorf("Generate() returned empty %s", expectedFile)
			}
		}
	})

	t.Run("GenerateNilDerivation", func(t *testing.T) {
		_, err := p.Generate(nil)
		if err == nil {
			t.Error("Generate() with nil derivation should return error")
		}
	})

	t.Run("GenerateWithLightInput", func(t *testing.T) {
		files, err := p.Generate(CreateTestDerivation(t, "#ffffff"))
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if len(files) == 0 {
			t.Error("Generate() returned no files")
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		d := CreateTestDerivation(t, "#ff4081")
		first, err := p.Generate(d)
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		second, err := p.Generate(d)
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		for name, content := range first {
			if string(second[name]) != string(content) {
				t.Errorf("Generate() output for %s differs between runs", name)
			}
		}
	})
}

// TestFlags tests plugin-specific flag registration.
func TestFlags(t *testing.T, p output.Plugin, expectedFlagPrefix string) {
	t.Run("RegisterFlags", func(t *testing.T) {
		cmd := &cobra.Command{
			Use: "test",
		}

		p.RegisterFlags(cmd)

		expectedFlag := expectedFlagPrefix + ".output-dir"
		flag := cmd.Flags().Lookup(expectedFlag)
		if flag == nil {
			t.Errorf("RegisterFlags() did not register %s flag", expectedFlag)
		}

		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			if !strings.HasPrefix(f.Name, expectedFlagPrefix+".") {
				t.Errorf("flag %s is not namespaced under %s.", f.Name, expectedFlagPrefix)
			}
		})
	})
}

// CreateTestDerivation derives tokens for hex under the default policy.
func CreateTestDerivation(t *testing.T, hex string) *tokens.Derivation {
	t.Helper()

	d, err := tokens.New(policy.Default())
	if err != nil {
		t.Fatalf("tokens.New() error = %v", err)
	}
	res, err := d.Derive(hex)
	if err != nil {
		t.Fatalf("Derive(%s) error = %v", hex, err)
	}
	return res
}

// RunAllTests runs all standard tests for a plugin.
func RunAllTests(t *testing.T, p output.Plugin, config TestConfig) {
	TestBasicInterface(t, p, config.ExpectedName)
	TestGeneration(t, p, config.ExpectedFiles)
	TestFlags(t, p, config.ExpectedName)
}

// TestConfig holds configuration for running plugin tests.
type TestConfig struct {
	ExpectedName  string   // Plugin name
	ExpectedFiles []string // Files that Generate() should return
}
