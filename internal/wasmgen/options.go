package wasmgen

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Options controls module emission. The zero value is not usable; start
// from DefaultOptions.
type Options struct {
	// Entry names the C function exported as the module's _start entry
	// point.
	Entry string `yaml:"entry"`
	// StackMargin is the gap left between the data region and the base of
	// the runtime stack.
	StackMargin int64 `yaml:"stack_margin"`
	// MinPages is the minimum linear memory size in 64KiB pages. The
	// memory grows past it when the data and stack regions need more.
	MinPages int64 `yaml:"min_pages"`
}

func DefaultOptions() Options {
	return Options{
		Entry:       "main",
		StackMargin: 1024,
		MinPages:    2,
	}
}

// LoadOptions reads a YAML options file. Absent keys keep their defaults.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, err
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("%s: %w", path, err)
	}
	if opts.Entry == "" {
		opts.Entry = "main"
	}
	return opts, nil
}
