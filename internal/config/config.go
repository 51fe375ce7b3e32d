// Package config loads the ingestion pipeline's tunables from a
// project-local ".astidx.kdl" file, falling back to defaults for anything
// unset.
package config

import (
	"os"
	"runtime"
	"time"

	"github.com/standardbeagle/astidx/internal/ingest"
)

// Config holds everything loaded from a project's .astidx.kdl plus the
// project root it was resolved against.
type Config struct {
	ProjectRoot string

	Cooldown       time.Duration
	BatchCap       int
	PollIdle       time.Duration
	ResolvePoll    time.Duration
	ResolveRecheck time.Duration
	ParseWorkers   int

	// Exclude is a set of doublestar glob patterns the default
	// FileTextResolver declines to read (internal/fsresolver).
	Exclude []string
}

// ToIngestConfig projects the pipeline-relevant fields into ingest.Config.
func (c Config) ToIngestConfig() ingest.Config {
	return ingest.Config{
		Cooldown:       c.Cooldown,
		BatchCap:       c.BatchCap,
		PollIdle:       c.PollIdle,
		ResolvePoll:    c.ResolvePoll,
		ResolveRecheck: c.ResolveRecheck,
		ParseWorkers:   c.ParseWorkers,
	}
}

// Default returns the documented defaults, rooted at projectRoot.
func Default(projectRoot string) Config {
	ic := ingest.DefaultConfig()
	return Config{
		ProjectRoot:    projectRoot,
		Cooldown:       ic.Cooldown,
		BatchCap:       ic.BatchCap,
		PollIdle:       ic.PollIdle,
		ResolvePoll:    ic.ResolvePoll,
		ResolveRecheck: ic.ResolveRecheck,
		ParseWorkers:   ic.ParseWorkers,
		Exclude: []string{
			"**/.git/**",
			"**/node_modules/**",
			"**/vendor/**",
			"**/dist/**",
			"**/build/**",
		},
	}
}

// Load resolves a project's configuration: defaults, overridden by
// ".astidx.kdl" in projectRoot if present.
func Load(projectRoot string) (Config, error) {
	cfg := Default(projectRoot)

	kdlPath := projectRoot + string(os.PathSeparator) + ".astidx.kdl"
	if _, err := os.Stat(kdlPath); os.IsNotExist(err) {
		return cfg, nil
	}

	content, err := os.ReadFile(kdlPath)
	if err != nil {
		return cfg, err
	}

	if err := applyKDL(&cfg, string(content)); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ResolvedParseWorkers reports the effective parse worker count, resolving
// the ingest package's 0-means-NumCPU convention for startup logging.
func (c Config) ResolvedParseWorkers() int {
	if c.ParseWorkers <= 0 {
		return runtime.NumCPU()
	}
	return c.ParseWorkers
}
