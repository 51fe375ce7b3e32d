package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/astidx/internal/config"
	"github.com/standardbeagle/astidx/internal/diag"
	"github.com/standardbeagle/astidx/internal/fsproducer"
	"github.com/standardbeagle/astidx/internal/fsresolver"
	"github.com/standardbeagle/astidx/internal/hostctx"
	"github.com/standardbeagle/astidx/internal/ingest"
	"github.com/standardbeagle/astidx/internal/symbolstore"
	"github.com/standardbeagle/astidx/internal/tsparser"
	"github.com/standardbeagle/astidx/internal/version"
	"github.com/standardbeagle/astidx/pkg/pathutil"
)

func main() {
	app := &cli.App{
		Name:                   "astidx",
		Usage:                  "background AST indexing pipeline",
		Version:                version.Version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "project root to index",
				Value:   ".",
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			inspectCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func resolveRoot(c *cli.Context) (string, error) {
	return filepath.Abs(c.String("root"))
}

func buildService(cfg config.Config, reg prometheus.Registerer) (*ingest.Service, *symbolstore.Store) {
	sink := diag.NewSink(os.Stderr, os.Stdout, reg)
	resolver := fsresolver.New(cfg.Exclude)
	parser := tsparser.New()
	store := symbolstore.New()
	return ingest.New(resolver, parser, store, sink, cfg.ToIngestConfig()), store
}

// serveCommand runs the pipeline against root until interrupted,
// watching the filesystem with internal/fsproducer and logging progress
// through internal/diag.
func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the indexing pipeline against the project root until interrupted",
		Action: func(c *cli.Context) error {
			root, err := resolveRoot(c)
			if err != nil {
				return err
			}

			cfg, err := config.Load(root)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			fmt.Printf("astidx %s: serving %s (cooldown=%s batch_cap=%d parse_workers=%d)\n",
				version.Version, root, cfg.Cooldown, cfg.BatchCap, cfg.ResolvedParseWorkers())

			svc, _ := buildService(cfg, prometheus.DefaultRegisterer)

			host := hostctx.New(root)
			handles := svc.Start(host)

			watcher, err := fsproducer.New(svc, cfg.Exclude)
			if err != nil {
				return fmt.Errorf("start watcher: %w", err)
			}
			if err := watcher.Start(root); err != nil {
				return fmt.Errorf("watch %s: %w", root, err)
			}
			defer watcher.Close()

			svc.Enqueue(newFullScan(root, cfg.Exclude), false)

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
			<-sig

			fmt.Println("astidx: shutting down")
			host.MarkShuttingDown()
			svc.Stop()
			<-handles.Coalescer
			<-handles.Indexer
			<-handles.Resolver
			return nil
		},
	}
}

// inspectCommand runs the pipeline against root until it first goes
// quiescent (resolve cycle complete, HoldOff clear, no dirty flag), then
// prints a summary and exits — useful for CI or one-shot inspection
// rather than the long-running serve mode.
func inspectCommand() *cli.Command {
	return &cli.Command{
		Name:  "inspect",
		Usage: "index the project root once and print a summary",
		Action: func(c *cli.Context) error {
			root, err := resolveRoot(c)
			if err != nil {
				return err
			}

			cfg, err := config.Load(root)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			svc, store := buildService(cfg, prometheus.NewRegistry())

			host := hostctx.New(root)
			handles := svc.Start(host)

			svc.Enqueue(newFullScan(root, cfg.Exclude), false)

			waitForQuiescence(store)

			svc.Stop()
			<-handles.Coalescer
			<-handles.Indexer
			<-handles.Resolver

			printSummary(store, root)
			return nil
		},
	}
}

// printSummary reports per-kind symbol counts and the set of indexed
// files, rendered relative to root so the output reads the same
// regardless of where the project happens to live on disk.
func printSummary(store *symbolstore.Store, root string) {
	fmt.Printf("files indexed: %d\n", store.FileCount())
	fmt.Printf("symbols indexed: %d\n", store.SymbolCount())

	byKind := make(map[string]int)
	files := make(map[string]struct{})
	for _, sym := range store.SymbolsByGUID() {
		byKind[sym.Kind.String()]++
		files[pathutil.ToRelative(sym.Path, root)] = struct{}{}
	}
	kinds := make([]string, 0, len(byKind))
	for k := range byKind {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		fmt.Printf("  %s: %d\n", k, byKind[k])
	}

	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	fmt.Println("files:")
	for _, p := range paths {
		fmt.Printf("  %s\n", p)
	}
}
