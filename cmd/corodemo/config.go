package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// RunConfig describes one corodemo invocation: scheduler tuning plus a
// sequence of demo coroutines to create and an explicit resume order to
// drive them in. This mirrors zephyrtronium-iolang/cmd/mkaddon's use of
// gopkg.in/yaml.v2 to load a small manifest rather than hand-rolling a flag
// for every field.
type RunConfig struct {
	StackSize       int             `yaml:"stackSize"`
	InitialCapacity int             `yaml:"initialCapacity"`
	Coroutines      []CoroutineSpec `yaml:"coroutines"`
	ResumeOrder     []string        `yaml:"resumeOrder"`
}

// CoroutineSpec names one demo coroutine and which built-in body it should
// run (see bodies.go). Name is how ResumeOrder refers back to it.
type CoroutineSpec struct {
	Name string `yaml:"name"`
	Body string `yaml:"body"`
}

// defaultRunConfig is used when no -config flag is given: two coroutines
// interleaving 1, 10, 2, 20.
func defaultRunConfig() RunConfig {
	return RunConfig{
		Coroutines: []CoroutineSpec{
			{Name: "a", Body: "counterA"},
			{Name: "b", Body: "counterB"},
		},
		ResumeOrder: []string{"a", "b", "a", "b"},
	}
}

func loadRunConfig(path string) (RunConfig, error) {
	if path == "" {
		return defaultRunConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return RunConfig{}, fmt.Errorf("corodemo: read config: %w", err)
	}
	var cfg RunConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RunConfig{}, fmt.Errorf("corodemo: parse config: %w", err)
	}
	return cfg, nil
}
