package main

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/fwojciec/mdclip"
	"github.com/fwojciec/mdclip/pipeline"
)

// Run executes the clip command.
func (c *ClipCmd) Run(deps *Dependencies) error {
	settings, err := deps.Settings.Load(deps.Ctx)
	if err != nil {
		printError(deps.Stderr, err)
		return err
	}

	opts, err := c.options(deps, settings)
	if err != nil {
		printError(deps.Stderr, err)
		return err
	}

	target, err := pipeline.ValidateTarget(c.URL)
	if err != nil {
		printError(deps.Stderr, err)
		return err
	}

	entry, err := deps.History.FindEntry(deps.Ctx, target.String())
	switch {
	case err == nil:
		fmt.Fprintf(deps.Stdout, "Already extracted %s (last %s)\n",
			times(entry.Count), entry.LastExtracted.Local().Format("2006-01-02 15:04"))
		if c.SkipExisting {
			return nil
		}
	case mdclip.ErrorCode(err) != mdclip.ENOTFOUND:
		printError(deps.Stderr, err)
		return err
	}

	// Subscribe before the run so the completion broadcast cannot be missed.
	var completions <-chan pipeline.Completion
	if deps.Worker != nil {
		var unsubscribe func()
		completions, unsubscribe = deps.Worker.Subscribe()
		defer unsubscribe()
	}

	result, err := deps.Pipeline.Run(deps.Ctx, target.String(), opts)
	if err != nil {
		printError(deps.Stderr, err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Extracted %q (%s, %s)\n",
		result.Title, result.Category, pipeline.FormatBytes(result.Bytes))

	completion := result.Completion
	if result.Pending {
		fmt.Fprintf(deps.Stdout, "Enriching with %s...\n", opts.Model)
		completion, err = awaitCompletion(deps.Ctx, completions, result)
		if err != nil && deps.Ctx.Err() != nil {
			fmt.Fprintln(deps.Stderr, "Interrupted; finishing the save in the background")
			return err
		}
		if err != nil {
			printError(deps.Stderr, err)
			return err
		}
		if !completion.Enriched {
			fmt.Fprintln(deps.Stderr, "Warning: enrichment failed, saved without it")
		}
	}

	fmt.Fprintf(deps.Stdout, "Saved %s\n", completion.Path)
	return nil
}

// awaitCompletion waits for the background delivery of result. The
// completion broadcast for the run is used when it arrives; the run's Task
// covers a closed or missing subscription.
func awaitCompletion(ctx context.Context, completions <-chan pipeline.Completion, result *pipeline.Result) (*pipeline.Completion, error) {
	for {
		select {
		case c, ok := <-completions:
			if !ok {
				completions = nil
				continue
			}
			if c.RunID != result.RunID {
				continue
			}
			if c.Err != nil {
				return nil, c.Err
			}
			return &c, nil
		case <-result.Task.Done():
			return result.Task.Wait(ctx)
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// options resolves the run options from settings, environment and flags.
func (c *ClipCmd) options(deps *Dependencies, settings *mdclip.Settings) (pipeline.Options, error) {
	opts := pipeline.OptionsFromSettings(settings)
	if deps.EnvAPIKey != "" {
		opts.APIKey = deps.EnvAPIKey
	}
	if c.Enrich {
		opts.Enrich = true
	}
	if c.NoEnrich {
		opts.Enrich = false
	}
	if c.Model != "" {
		if err := checkModel(settings, c.Model); err != nil {
			return opts, err
		}
		opts.Model = c.Model
	}
	if opts.Model == "" {
		opts.Model = mdclip.DefaultModel
	}

	if c.Enrich && strings.TrimSpace(opts.APIKey) == "" {
		fmt.Fprintln(deps.Stderr, "Warning: no Gemini API key configured, saving without enrichment. Set GEMINI_API_KEY or run 'mdclip config set --api-key'")
	}
	return opts, nil
}

// checkModel returns EINVALID unless model is a built-in or custom model.
func checkModel(settings *mdclip.Settings, model string) error {
	if !slices.Contains(settings.Models(), model) {
		return mdclip.Errorf(mdclip.EINVALID, "unknown model %q. Add it with 'mdclip config add-model %s'", model, model)
	}
	return nil
}

func times(n int) string {
	if n == 1 {
		return "once"
	}
	return fmt.Sprintf("%d times", n)
}
