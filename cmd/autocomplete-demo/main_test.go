package main

import (
	"bytes"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("execute %v: %v\n%s", args, err, out.String())
	}
	return out.String()
}

func TestVersionCommand(t *testing.T) {
	out := execute(t, "version")
	if !strings.HasPrefix(out, "autocomplete-demo ") || !strings.Contains(out, "commit:") {
		t.Fatalf("unexpected version output %q", out)
	}
}

func TestOpenAPICommand_YAML(t *testing.T) {
	out := execute(t, "openapi", "--format", "yaml", "--base-path", "/ac", "--log-level", "error")

	var doc struct {
		OpenAPI string         `yaml:"openapi"`
		Paths   map[string]any `yaml:"paths"`
	}
	if err := yaml.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if !strings.HasPrefix(doc.OpenAPI, "3.") {
		t.Fatalf("unexpected openapi version %q", doc.OpenAPI)
	}
	for _, path := range []string{"/ac/{type}/items", "/ac/{type}/toggle", "/ac/{type}/component"} {
		if _, ok := doc.Paths[path]; !ok {
			t.Fatalf("missing %s", path)
		}
	}
}
