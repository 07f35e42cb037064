package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/esgen/esgen/scope"
)

// descriptor is the small JSON/YAML document a caller hands to the esgen
// CLI to describe a program: what to import, what top-level functions to
// declare, and what statements make up the program body. It deliberately
// covers only a slice of what the esgen library can express — enough to
// drive Generate/Evaluate from a file without writing Go.
type descriptor struct {
	// Format selects the rendering format: "es2015" (the default) or
	// "iife". evaluate always renders as an IIFE regardless of this field.
	Format string `json:"format" yaml:"format"`
	// Reserved lists ambient identifiers (e.g. "console") that must never
	// be handed out as a generated name.
	Reserved []string `json:"reserved" yaml:"reserved"`
	// Imports lists bindings to pull in from other modules.
	Imports []importSpec `json:"imports" yaml:"imports"`
	// Functions lists top-level functions to declare.
	Functions []functionSpec `json:"functions" yaml:"functions"`
	// Body lists the program's top-level statements, in order.
	Body []bodyStmt `json:"body" yaml:"body"`
}

type importSpec struct {
	Module string `json:"module" yaml:"module"`
	Export string `json:"export" yaml:"export"`
	As     string `json:"as" yaml:"as"`
}

type paramSpec struct {
	Name     string `json:"name" yaml:"name"`
	Optional bool   `json:"optional" yaml:"optional"`
	Rest     bool   `json:"rest" yaml:"rest"`
}

type functionSpec struct {
	Name     string      `json:"name" yaml:"name"`
	Params   []paramSpec `json:"params" yaml:"params"`
	Body     []string    `json:"body" yaml:"body"`
	Async    bool        `json:"async" yaml:"async"`
	Exported bool        `json:"exported" yaml:"exported"`
	// At is "bundle" (the default) or "exports".
	At string `json:"at" yaml:"at"`
	// As is "function" (the default), "const", "let", or "var".
	As string `json:"as" yaml:"as"`
}

type bodyStmt struct {
	// Raw is emitted verbatim when set.
	Raw string `json:"raw" yaml:"raw"`
	// Call, when set, renders a call to one of Functions by name.
	Call *callStmt `json:"call" yaml:"call"`
}

type callStmt struct {
	Function string            `json:"function" yaml:"function"`
	Args     map[string]string `json:"args" yaml:"args"`
}

// loadDescriptor reads and parses path as either JSON or YAML, chosen by
// its extension (".json" parses as JSON; anything else as YAML, since
// valid JSON is also valid YAML).
func loadDescriptor(path string) (*descriptor, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading descriptor %q: %w", path, err)
	}

	var d descriptor

	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, fmt.Errorf("parsing descriptor %q as JSON: %w", path, err)
		}
	} else if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("parsing descriptor %q as YAML: %w", path, err)
	}

	return &d, nil
}

// format resolves the descriptor's Format field to a scope.Format, IIFE
// being the effective default when forceIIFE is set (the evaluate command
// always runs as an IIFE, irrespective of what the descriptor requests).
func (d *descriptor) format(forceIIFE bool) scope.Format {
	if forceIIFE {
		return scope.IIFE
	}

	if strings.EqualFold(d.Format, "iife") {
		return scope.IIFE
	}

	return scope.ES2015
}
