package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/mdclip"
	"github.com/fwojciec/mdclip/pipeline"
)

// Run executes the history list command.
func (c *HistoryListCmd) Run(deps *Dependencies) error {
	entries, err := deps.History.List(deps.Ctx)
	if err != nil {
		printError(deps.Stderr, err)
		return err
	}

	if c.JSON {
		if entries == nil {
			entries = []*mdclip.HistoryEntry{}
		}
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(deps.Stdout, "No pages extracted yet. Use 'mdclip clip <url>' to save one.")
		return nil
	}

	for _, e := range entries {
		fmt.Fprintf(deps.Stdout, "%s  %3dx  %s\n",
			e.LastExtracted.Local().Format("2006-01-02 15:04"), e.Count, pipeline.TruncateURL(e.URL, 80))
	}
	return nil
}

// Run executes the history check command.
func (c *HistoryCheckCmd) Run(deps *Dependencies) error {
	target, err := pipeline.ValidateTarget(c.URL)
	if err != nil {
		printError(deps.Stderr, err)
		return err
	}

	entry, err := deps.History.FindEntry(deps.Ctx, target.String())
	if mdclip.ErrorCode(err) == mdclip.ENOTFOUND {
		fmt.Fprintf(deps.Stdout, "Not extracted yet: %s\n", target)
		return nil
	} else if err != nil {
		printError(deps.Stderr, err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Extracted %s: first %s, last %s\n",
		times(entry.Count),
		entry.FirstExtracted.Local().Format("2006-01-02 15:04"),
		entry.LastExtracted.Local().Format("2006-01-02 15:04"))
	return nil
}

// Run executes the history trim command.
func (c *HistoryTrimCmd) Run(deps *Dependencies) error {
	if err := deps.History.Trim(deps.Ctx, c.N); err != nil {
		printError(deps.Stderr, err)
		return err
	}
	fmt.Fprintf(deps.Stdout, "Kept the %d most recent entries\n", c.N)
	return nil
}

// Run executes the history clear command.
func (c *HistoryClearCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "Error: use --force to confirm clearing the history\n")
		return mdclip.Errorf(mdclip.EINVALID, "use --force to confirm clearing the history")
	}
	if err := deps.History.Clear(deps.Ctx); err != nil {
		printError(deps.Stderr, err)
		return err
	}
	fmt.Fprintln(deps.Stdout, "History cleared")
	return nil
}
