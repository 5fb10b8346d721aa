// Command silversmith builds silver-standard NER datasets from
// annotated Bible corpora. It resolves per-token entity categories
// from gazetteers, aligns tokens to raw verse text by byte offset,
// and emits JSONL training examples with a batch manifest.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sort"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/Silversmith/core/align"
	"github.com/FocuswithJustin/Silversmith/core/corpus"
	"github.com/FocuswithJustin/Silversmith/core/dataset"
	"github.com/FocuswithJustin/Silversmith/core/ir"
	"github.com/FocuswithJustin/Silversmith/core/pipeline"
	"github.com/FocuswithJustin/Silversmith/core/rules"
	"github.com/FocuswithJustin/Silversmith/core/sqlite"
	"github.com/FocuswithJustin/Silversmith/core/stats"
	"github.com/FocuswithJustin/Silversmith/internal/logging"
	"github.com/FocuswithJustin/Silversmith/internal/progress"
)

const version = "0.1.0"

// CLI defines the command-line interface for silversmith.
var CLI struct {
	// Global flags
	LogLevel  string `name:"log-level" enum:"debug,info,warn,error" default:"info" help:"Log level"`
	LogFormat string `name:"log-format" enum:"json,text" default:"text" help:"Log output format"`

	// Command groups (noun-first organization)
	Rules   RulesGroup   `cmd:"" help:"Labeling rules operations (check)"`
	Dataset DatasetGroup `cmd:"" help:"Dataset operations (build, stats)"`
	Version VersionCmd   `cmd:"" help:"Print version information"`
}

// RulesGroup contains rules-file operations.
type RulesGroup struct {
	Check RulesCheckCmd `cmd:"" help:"Validate a rules file and its gazetteers"`
}

// DatasetGroup contains dataset lifecycle operations.
type DatasetGroup struct {
	Build DatasetBuildCmd `cmd:"" help:"Build a dataset from an annotated corpus"`
	Stats DatasetStatsCmd `cmd:"" help:"Summarize a built dataset"`
}

// initLogging applies the global log flags.
func initLogging() {
	level := logging.LevelInfo
	switch CLI.LogLevel {
	case "debug":
		level = logging.LevelDebug
	case "warn":
		level = logging.LevelWarn
	case "error":
		level = logging.LevelError
	}
	format := logging.FormatText
	if CLI.LogFormat == "json" {
		format = logging.FormatJSON
	}
	logging.InitLogger(level, format)
}

// RulesCheckCmd validates a rules file and its gazetteers.
type RulesCheckCmd struct {
	Rules string `arg:"" help:"Path to rules YAML file" type:"existingfile"`
}

func (c *RulesCheckCmd) Run() error {
	cfg, err := rules.LoadConfig(c.Rules)
	if err != nil {
		return err
	}

	resolver, warnings, err := rules.NewResolver(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("Rules file: %s\n", c.Rules)
	fmt.Printf("  Priority: %v\n", cfg.Priority)
	fmt.Printf("  Labels: %v\n", resolver.Labels())

	if len(warnings) > 0 {
		fmt.Println()
		for _, w := range warnings {
			fmt.Printf("  [WARN] %s: %s unavailable (%v)\n", w.Category, w.Path, w.Err)
		}
		fmt.Printf("\n%d gazetteer(s) unavailable; matching degrades for those categories.\n", len(warnings))
		return nil
	}

	fmt.Println("\nAll gazetteers loaded.")
	return nil
}

// DatasetBuildCmd builds a dataset from an annotated corpus.
type DatasetBuildCmd struct {
	Corpus string `arg:"" help:"Path to corpus (SQLite module or OSIS XML)" type:"existingfile"`

	Rules         string  `required:"" help:"Path to rules YAML file" type:"existingfile"`
	Out           string  `required:"" help:"Output dataset path (.jsonl or .jsonl.xz)" type:"path"`
	Format        string  `enum:"sqlite,osis" default:"sqlite" help:"Corpus format"`
	Workers       int     `default:"0" help:"Worker count (0 = one per CPU)"`
	Window        int     `default:"0" help:"Alignment fallback window in bytes (0 = default)"`
	FlagThreshold float64 `name:"flag-threshold" default:"-1" help:"Alignment failure rate above which a verse is flagged (-1 = default)"`
	Listen        string  `help:"Serve a WebSocket progress feed on this address (e.g. :8089)"`
}

func (c *DatasetBuildCmd) Run() error {
	cfg, err := rules.LoadConfig(c.Rules)
	if err != nil {
		return err
	}
	resolver, warnings, err := rules.NewResolver(cfg)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		fmt.Printf("[WARN] gazetteer unavailable for %s: %s\n", w.Category, w.Path)
	}

	src, err := openSource(c.Corpus, c.Format)
	if err != nil {
		return err
	}
	defer src.Close()

	verses, err := src.ReadAll()
	if err != nil {
		return err
	}
	if len(verses) == 0 {
		return fmt.Errorf("corpus is empty: %s", c.Corpus)
	}

	aligner := align.New()
	if c.Window > 0 {
		aligner.Window = c.Window
	}
	collector := stats.NewCollector(c.FlagThreshold)
	p := pipeline.New(resolver, aligner, collector)

	var hub *progress.Hub
	if c.Listen != "" {
		hub = progress.NewHub()
		go hub.Run()
		mux := http.NewServeMux()
		mux.HandleFunc("/ws", hub.ServeWS)
		go func() {
			logging.ServerStartup("progress", "ws", c.Listen)
			if err := http.ListenAndServe(c.Listen, mux); err != nil {
				logging.Error("progress server failed", "error", err)
			}
		}()
	}

	w, err := dataset.NewWriter(c.Out)
	if err != nil {
		return err
	}

	fmt.Printf("Building dataset\n")
	fmt.Printf("  Corpus: %s (%s)\n", c.Corpus, c.Format)
	fmt.Printf("  Rules: %s\n", c.Rules)
	fmt.Printf("  Verses: %d\n", len(verses))
	fmt.Printf("  Output: %s\n", c.Out)

	onProgress := func(done, total int) {
		if done%500 == 0 || done == total {
			logging.BatchProgress(done, total)
		}
		if hub != nil {
			hub.BroadcastProgress("", done, total)
		}
	}

	examples, err := p.RunBatch(context.Background(), verses, c.Workers, onProgress)
	if err != nil {
		w.Close()
		os.Remove(c.Out)
		if hub != nil {
			hub.BroadcastError("", err.Error())
		}
		return err
	}

	for _, ex := range examples {
		if err := w.Write(ex); err != nil {
			w.Close()
			return err
		}
	}

	summary := collector.Summary()
	m := dataset.NewManifest(w, p.Schema, summary)
	if hash, err := rulesHash(c.Rules); err == nil {
		m.RulesHash = hash
	}
	if err := w.Close(); err != nil {
		return err
	}
	if err := m.Save(c.Out + ".manifest.json"); err != nil {
		return err
	}

	if hub != nil {
		hub.BroadcastComplete(m.BatchID, len(verses), map[string]any{
			"examples": len(examples),
			"output":   c.Out,
		})
	}

	fmt.Println()
	fmt.Printf("Batch %s complete\n", m.BatchID)
	fmt.Printf("  Examples: %d\n", m.Examples)
	fmt.Printf("  Spans: %d\n", summary.Spans)
	fmt.Printf("  Alignment: %.1f%%\n", summary.AlignmentRate()*100)
	fmt.Printf("  Content hash: %s\n", m.ContentBLAKE3)
	if len(summary.FlaggedVerses) > 0 {
		fmt.Printf("  Flagged for review: %d verse(s)\n", len(summary.FlaggedVerses))
	}
	fmt.Printf("  Manifest: %s\n", c.Out+".manifest.json")
	return nil
}

// openSource opens the corpus in the requested format.
func openSource(path, format string) (corpus.Source, error) {
	switch format {
	case "osis":
		return corpus.OpenOSIS(path)
	default:
		return corpus.OpenSQLite(path)
	}
}

// rulesHash hashes the rules file for the manifest.
func rulesHash(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return ir.HashBytes(data), nil
}

// DatasetStatsCmd summarizes a built dataset.
type DatasetStatsCmd struct {
	Dataset string `arg:"" help:"Path to dataset (.jsonl or .jsonl.xz)" type:"existingfile"`
}

func (c *DatasetStatsCmd) Run() error {
	r, err := dataset.NewReader(c.Dataset)
	if err != nil {
		return err
	}
	defer r.Close()

	examples, err := r.ReadAll()
	if err != nil {
		return err
	}

	spans := 0
	labelCounts := make(map[string]int)
	for _, ex := range examples {
		spans += len(ex.Spans)
		for _, s := range ex.Spans {
			labelCounts[s.Label]++
		}
	}

	fmt.Printf("Dataset: %s\n", c.Dataset)
	fmt.Printf("  Examples: %d\n", len(examples))
	fmt.Printf("  Spans: %d\n", spans)

	if len(labelCounts) > 0 {
		labels := make([]string, 0, len(labelCounts))
		for l := range labelCounts {
			labels = append(labels, l)
		}
		sort.Strings(labels)
		fmt.Println("  By label:")
		for _, l := range labels {
			fmt.Printf("    %-12s %d\n", l, labelCounts[l])
		}
	}

	// Report the manifest if one sits next to the dataset
	if m, err := dataset.LoadManifest(c.Dataset + ".manifest.json"); err == nil {
		fmt.Println()
		fmt.Printf("Manifest (batch %s)\n", m.BatchID)
		fmt.Printf("  Created: %s\n", m.CreatedAt)
		fmt.Printf("  Schema: %s %v\n", m.Schema.Version, m.Schema.Labels)
		fmt.Printf("  Alignment: %.1f%%\n", m.Stats.AlignmentRate()*100)
		if len(m.Stats.FlaggedVerses) > 0 {
			fmt.Printf("  Flagged: %d verse(s)\n", len(m.Stats.FlaggedVerses))
		}
	}
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("silversmith version %s\n", version)
	fmt.Printf("  sqlite driver: %s (%s)\n", sqlite.DriverName(), sqlite.DriverType())
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("silversmith"),
		kong.Description("Silversmith - silver-standard NER dataset builder for annotated Bible corpora"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	initLogging()
	err := ctx.Run(ctx)
	ctx.FatalIfErrorf(err)
}
