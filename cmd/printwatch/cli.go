package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/printwatch"
	"github.com/fwojciec/printwatch/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	DB        *sqlite.DB
	Results   printwatch.ResultService
	Extractor printwatch.Extractor
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Parse  ParseCmd  `cmd:"" help:"Extract metadata from one or more G-code files"`
	Watch  WatchCmd  `cmd:"" help:"Watch a folder for new G-code files"`
	List   ListCmd   `cmd:"" help:"List stored extraction results"`
	Delete DeleteCmd `cmd:"" help:"Delete a stored extraction result"`
}

// ParseCmd is the "parse" subcommand.
type ParseCmd struct {
	Files       []string `arg:"" help:"G-code files to parse"`
	JSONOut     string   `name:"json-out" help:"Write the result to a JSON file (single input only)"`
	CSVOut      string   `name:"csv-out" help:"Append results to a CSV file"`
	PushURL     string   `name:"push-url" help:"POST results to an inventory endpoint"`
	SourceMode  string   `name:"source-mode" default:"name" enum:"name,full" help:"Record file name only or the full path"`
	Quiet       bool     `short:"q" help:"Suppress JSON output on stdout"`
	NoStore     bool     `name:"no-store" help:"Skip recording results in the history database"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent extraction limit"`
}

// WatchCmd is the "watch" subcommand.
type WatchCmd struct {
	Dir         string `arg:"" help:"Folder to watch for new G-code files"`
	JSONOut     string `name:"json-out" help:"Write each result to a JSON file (overwritten per file)"`
	CSVOut      string `name:"csv-out" help:"Append results to a CSV file"`
	PushURL     string `name:"push-url" help:"POST results to an inventory endpoint"`
	SourceMode  string `name:"source-mode" default:"name" enum:"name,full" help:"Record file name only or the full path"`
	NoStore     bool   `name:"no-store" help:"Skip recording results in the history database"`
	Concurrency int    `short:"c" default:"4" help:"Concurrent extraction limit"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	SourceFile string `name:"source-file" help:"Filter by source file"`
	Slicer     string `help:"Filter by slicer name"`
	Limit      int    `default:"50" help:"Maximum number of results"`
	Offset     int    `help:"Number of results to skip"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID string `arg:"" help:"Result ID"`
}
