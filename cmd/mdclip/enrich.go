package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fwojciec/mdclip"
)

// Run executes the enrich command.
func (c *EnrichCmd) Run(deps *Dependencies) error {
	settings, err := deps.Settings.Load(deps.Ctx)
	if err != nil {
		printError(deps.Stderr, err)
		return err
	}

	model := settings.Model
	if c.Model != "" {
		if err := checkModel(settings, c.Model); err != nil {
			printError(deps.Stderr, err)
			return err
		}
		model = c.Model
	}
	if model == "" {
		model = mdclip.DefaultModel
	}

	data, err := os.ReadFile(c.File)
	if err != nil {
		printError(deps.Stderr, err)
		return err
	}

	apiKey := settings.APIKey
	if deps.EnvAPIKey != "" {
		apiKey = deps.EnvAPIKey
	}
	enrichment, err := deps.Worker.Enrich(mdclip.EnrichRequest{
		Markdown: string(data),
		APIKey:   apiKey,
		Model:    model,
	}).Wait(deps.Ctx)
	if err != nil {
		if mdclip.ErrorCode(err) == mdclip.ECONFIG {
			fmt.Fprintln(deps.Stderr, "Hint: Set GEMINI_API_KEY or run 'mdclip config set --api-key'. Get a key at https://aistudio.google.com/apikey")
		}
		printError(deps.Stderr, err)
		return err
	}

	printEnrichment(deps, enrichment)
	if c.Body {
		fmt.Fprintln(deps.Stdout)
		fmt.Fprint(deps.Stdout, enrichment.Body(string(data)))
	}
	return nil
}

func printEnrichment(deps *Dependencies, e *mdclip.Enrichment) {
	difficulty := e.DifficultyLevel
	if difficulty == "" {
		difficulty = mdclip.DifficultyUnknown
	}
	fmt.Fprintf(deps.Stdout, "Technologies:  %s\n", strings.Join(e.Technologies, ", "))
	fmt.Fprintf(deps.Stdout, "Languages:     %s\n", strings.Join(e.ProgrammingLanguages, ", "))
	fmt.Fprintf(deps.Stdout, "Tags:          %s\n", strings.Join(e.Tags, ", "))
	fmt.Fprintf(deps.Stdout, "Key concepts:  %s\n", strings.Join(e.KeyConcepts, ", "))
	fmt.Fprintf(deps.Stdout, "Code examples: %t\n", e.CodeExamples)
	fmt.Fprintf(deps.Stdout, "Difficulty:    %s\n", difficulty)
	if e.Summary != "" {
		fmt.Fprintf(deps.Stdout, "\n%s\n", e.Summary)
	}
}
