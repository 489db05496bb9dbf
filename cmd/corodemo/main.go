// Command corodemo builds a corosched.Scheduler from a small YAML
// description and drives it, printing whatever each demo coroutine prints
// as it runs. With no -config flag it runs a built-in demo: two coroutines
// interleaved by explicit host-driven resumes, printing 1, 10, 2, 20.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/corosched/corosched"
	"github.com/rs/zerolog"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML run config (default: built-in scenario 3 demo)")
	verbose := flag.Bool("v", false, "trace scheduler lifecycle events to stderr")
	flag.Parse()

	cfg, err := loadRunConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	opts := []corosched.Option{}
	if cfg.StackSize > 0 {
		opts = append(opts, corosched.WithStackSize(cfg.StackSize))
	}
	if cfg.InitialCapacity > 0 {
		opts = append(opts, corosched.WithInitialCapacity(cfg.InitialCapacity))
	}
	if *verbose {
		opts = append(opts, corosched.WithLogger(corosched.NewStderrLogger(zerolog.DebugLevel)))
	}

	sch := corosched.Open(opts...)
	defer sch.Close()

	ids := make(map[string]int, len(cfg.Coroutines))
	for _, spec := range cfg.Coroutines {
		body, ok := bodies[spec.Body]
		if !ok {
			fmt.Fprintf(os.Stderr, "corodemo: unknown body %q for coroutine %q\n", spec.Body, spec.Name)
			os.Exit(1)
		}
		ids[spec.Name] = sch.New(body, nil)
	}

	for _, name := range cfg.ResumeOrder {
		id, ok := ids[name]
		if !ok {
			fmt.Fprintf(os.Stderr, "corodemo: unknown coroutine %q in resumeOrder\n", name)
			os.Exit(1)
		}
		sch.Resume(id)
	}
}
