package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/fwojciec/mdclip"
	"github.com/fwojciec/mdclip/pipeline"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Settings mdclip.SettingsService
	History  mdclip.HistoryService
	Pipeline *pipeline.Pipeline
	Worker   *pipeline.Worker

	// EnvAPIKey is the API key from the environment. It takes precedence
	// over the stored key for the run but is never written back.
	EnvAPIKey string
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log debug output to stderr"`

	Clip    ClipCmd    `cmd:"" help:"Save a web page as Markdown"`
	Enrich  EnrichCmd  `cmd:"" help:"Derive tags and a summary for a Markdown file"`
	History HistoryCmd `cmd:"" help:"Inspect or prune the extraction history"`
	Config  ConfigCmd  `cmd:"" help:"Show or change settings"`
	Models  ModelsCmd  `cmd:"" help:"List available Gemini models"`
}

// ClipCmd is the "clip" subcommand.
type ClipCmd struct {
	URL          string `arg:"" help:"Page URL"`
	Enrich       bool   `xor:"enrich" help:"Enrich with Gemini even if disabled in settings"`
	NoEnrich     bool   `xor:"enrich" help:"Do not enrich even if enabled in settings"`
	Model        string `short:"m" help:"Gemini model for this run"`
	SkipExisting bool   `help:"Do nothing if the page was extracted before"`
	Dir          string `short:"d" type:"path" help:"Directory to save into"`
	NoPrompt     bool   `help:"Save without asking for the path"`
	Force        bool   `short:"f" help:"Overwrite existing files without asking (with --no-prompt)"`
}

// EnrichCmd is the "enrich" subcommand.
type EnrichCmd struct {
	File  string `arg:"" type:"existingfile" help:"Markdown file"`
	Model string `short:"m" help:"Gemini model"`
	Body  bool   `help:"Print the revised body after the metadata"`
}

// HistoryCmd groups the "history" subcommands.
type HistoryCmd struct {
	List  HistoryListCmd  `cmd:"" default:"1" help:"List extracted pages, most recent first"`
	Check HistoryCheckCmd `cmd:"" help:"Report whether a page was extracted before"`
	Trim  HistoryTrimCmd  `cmd:"" help:"Keep only the most recent entries"`
	Clear HistoryClearCmd `cmd:"" help:"Remove all entries"`
}

// HistoryListCmd is the "history list" subcommand.
type HistoryListCmd struct {
	JSON bool `help:"Print entries as JSON"`
}

// HistoryCheckCmd is the "history check" subcommand.
type HistoryCheckCmd struct {
	URL string `arg:"" help:"Page URL"`
}

// HistoryTrimCmd is the "history trim" subcommand.
type HistoryTrimCmd struct {
	N int `arg:"" help:"Number of entries to keep"`
}

// HistoryClearCmd is the "history clear" subcommand.
type HistoryClearCmd struct {
	Force bool `help:"Confirm clearing"`
}

// ConfigCmd groups the "config" subcommands.
type ConfigCmd struct {
	Show        ConfigShowCmd        `cmd:"" default:"1" help:"Show current settings"`
	Set         ConfigSetCmd         `cmd:"" help:"Change settings"`
	AddModel    ConfigAddModelCmd    `cmd:"" help:"Add a custom Gemini model"`
	RemoveModel ConfigRemoveModelCmd `cmd:"" help:"Remove a custom Gemini model"`
}

// ConfigShowCmd is the "config show" subcommand.
type ConfigShowCmd struct{}

// ConfigSetCmd is the "config set" subcommand.
type ConfigSetCmd struct {
	EnableEnrichment  bool   `xor:"enrichment" help:"Turn enrichment on"`
	DisableEnrichment bool   `xor:"enrichment" help:"Turn enrichment off"`
	APIKey            string `name:"api-key" xor:"key" help:"Gemini API key"`
	ClearAPIKey       bool   `name:"clear-api-key" xor:"key" help:"Remove the stored API key"`
	Model             string `short:"m" help:"Default Gemini model"`
}

// ConfigAddModelCmd is the "config add-model" subcommand.
type ConfigAddModelCmd struct {
	Name string `arg:"" help:"Model name"`
}

// ConfigRemoveModelCmd is the "config remove-model" subcommand.
type ConfigRemoveModelCmd struct {
	Name string `arg:"" help:"Model name"`
}

// ModelsCmd is the "models" subcommand.
type ModelsCmd struct{}

// printError writes err to w prefixed with "Error:". Application errors
// print their message; anything else prints in full.
func printError(w io.Writer, err error) {
	msg := mdclip.ErrorMessage(err)
	if mdclip.ErrorCode(err) == mdclip.EINTERNAL {
		msg = err.Error()
	}
	fmt.Fprintf(w, "Error: %s\n", msg)
}
