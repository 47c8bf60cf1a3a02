// Command hwpdecode extracts structured text from HWP5/HWPX documents,
// one file at a time or as a batch.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	flag "github.com/ogier/pflag"

	"github.com/yuna-baek/hwpdecode"
	"github.com/yuna-baek/hwpdecode/batch"
	"github.com/yuna-baek/hwpdecode/config"
	"github.com/yuna-baek/hwpdecode/export"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "extract":
		err = runExtract(os.Args[2:])
	case "batch":
		err = runBatch(os.Args[2:])
	case "info":
		err = runInfo(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: hwpdecode <extract|batch|info> [flags]")
}

func runExtract(args []string) error {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	maxSizeMB := fs.Int64("max-size-mb", 0, "reject files larger than this many megabytes (0 = unbounded)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("extract requires exactly one file path")
	}

	doc, err := hwpdecode.Decode(fs.Arg(0), (*maxSizeMB)<<20)
	if err != nil {
		return err
	}

	fmt.Println(doc.FlatText())
	for _, w := range doc.Warnings {
		slog.Warn("decode warning", "path", fs.Arg(0), "warning", w)
	}
	return nil
}

func runBatch(args []string) error {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	configPath := fs.StringP("config", "c", "", "path to a TOML config file")
	outputDir := fs.StringP("output", "o", "", "directory to write per-file YAML into")
	jsonl := fs.String("jsonl", "", "path to write a combined JSONL file to instead of per-file YAML")
	workers := fs.Int("workers", 0, "worker count (0 = half of available CPUs)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("batch requires at least one file path")
	}

	coord := batch.NewCoordinator()
	if *configPath != "" {
		cfg, err := config.LoadFile(*configPath)
		if err != nil {
			return err
		}
		if cfg.Batch.Workers > 0 {
			coord.Workers = cfg.Batch.Workers
		}
		if t := cfg.Timeout(); t > 0 {
			coord.Timeout = t
		}
		coord.MaxFileSize = cfg.MaxFileSize()
	}
	if *workers > 0 {
		coord.Workers = *workers
	}

	summary := coord.ProcessFiles(context.Background(), fs.Args())
	slog.Info("batch finished", "total", summary.Total, "success", summary.Success, "failed", summary.Failed)

	exporter := export.NewExporter()
	switch {
	case *jsonl != "":
		f, err := os.Create(*jsonl)
		if err != nil {
			return err
		}
		defer f.Close()
		n, err := exporter.ExportBatchJSONL(f, summary)
		if err != nil {
			return err
		}
		slog.Info("wrote jsonl", "path", *jsonl, "records", n)
	case *outputDir != "":
		paths, err := exporter.ExportBatch(*outputDir, summary)
		if err != nil {
			return err
		}
		slog.Info("wrote yaml files", "dir", *outputDir, "count", len(paths))
	}

	return nil
}

func runInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("info requires exactly one file path")
	}

	doc, err := hwpdecode.Decode(fs.Arg(0), 0)
	if err != nil {
		return err
	}

	tables := 0
	paragraphs := 0
	for _, s := range doc.Sections {
		tables += len(s.Tables)
		paragraphs += len(s.Paragraphs)
	}
	fmt.Printf("sections: %d\nparagraphs: %d\ntables: %d\nwarnings: %d\n",
		len(doc.Sections), paragraphs, tables, len(doc.Warnings))
	return nil
}
