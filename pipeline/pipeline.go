// Package pipeline turns a web page into a saved Markdown artifact.
// It coordinates fetching, extraction, conversion, optional enrichment,
// front-matter synthesis, delivery and history tracking.
package pipeline

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fwojciec/mdclip"
	"github.com/google/uuid"
)

// Options are the per-run settings, read once when the run starts.
type Options struct {
	// Enrich is the enrichment feature flag.
	Enrich bool
	APIKey string
	Model  string

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// OptionsFromSettings builds run options from stored settings.
func OptionsFromSettings(s *mdclip.Settings) Options {
	return Options{
		Enrich: s.EnrichmentEnabled,
		APIKey: s.APIKey,
		Model:  s.Model,
	}
}

// EnrichmentActive reports whether a run with these options enriches:
// the flag is on and an API key is present.
func (o Options) EnrichmentActive() bool {
	return o.Enrich && strings.TrimSpace(o.APIKey) != ""
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// DeliverRequest carries everything needed to finish a run after
// conversion: optional enrichment, synthesis, saving and history.
type DeliverRequest struct {
	RunID string
	Page  *mdclip.PageContent

	// URL is the requested address, used as the history key.
	URL string

	// SourceURL is the page address after redirects, written to the
	// front matter. Defaults to URL.
	SourceURL string

	Category mdclip.Category
	Markdown string
	Filename string

	Enrich bool
	APIKey string
	Model  string

	CapturedAt time.Time
}

// Completion reports the end of a delivery.
type Completion struct {
	RunID    string
	Success  bool
	Filename string
	Path     string
	Enriched bool
	Err      error
}

// Result describes a run. When enrichment is active the delivery continues
// on the Worker: Pending is set and Task resolves once the file is saved.
type Result struct {
	RunID       string
	URL         string
	Title       string
	Category    mdclip.Category
	Filename    string
	ContentHash string
	Bytes       int

	Pending    bool
	Task       *Task[*Completion]
	Completion *Completion
}

// Pipeline coordinates a single page extraction.
type Pipeline struct {
	Fetcher   mdclip.Fetcher
	Extractor mdclip.Extractor
	Converter mdclip.Converter
	Enricher  mdclip.Enricher
	History   mdclip.HistoryService
	Saver     mdclip.Saver

	// Worker runs enrichment and delivery in the background. Without one,
	// enriched runs are delivered inline.
	Worker *Worker

	Logger  *slog.Logger
	OnState StateFunc

	state atomic.Int32
}

// State returns the most recent state of the pipeline.
func (p *Pipeline) State() State {
	return State(p.state.Load())
}

func (p *Pipeline) setState(runID string, s State) {
	p.state.Store(int32(s))
	if p.OnState != nil {
		p.OnState(runID, s)
	}
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Run extracts rawURL and delivers the artifact. The enrichment decision is
// made once from opts. Any error moves the pipeline to StateFailed.
func (p *Pipeline) Run(ctx context.Context, rawURL string, opts Options) (*Result, error) {
	runID := uuid.New().String()

	result, err := p.run(ctx, runID, rawURL, opts)
	if err != nil {
		p.setState(runID, StateFailed)
		return nil, err
	}
	return result, nil
}

func (p *Pipeline) run(ctx context.Context, runID, rawURL string, opts Options) (*Result, error) {
	p.setState(runID, StateExtracting)

	target, err := ValidateTarget(rawURL)
	if err != nil {
		return nil, err
	}

	rendered, err := p.Fetcher.Fetch(ctx, target.String())
	if err != nil {
		return nil, err
	}
	pageURL := rendered.URL
	if pageURL == "" {
		pageURL = target.String()
	}

	page, err := p.Extractor.Extract(ctx, rendered.HTML, pageURL)
	if err != nil {
		return nil, err
	}
	if page == nil || strings.TrimSpace(page.HTML) == "" {
		return nil, mdclip.Errorf(mdclip.EEXTRACTION, "no content found on %s", pageURL)
	}

	p.setState(runID, StateConverting)

	markdown, err := p.Converter.Convert(page.HTML)
	if err != nil {
		return nil, err
	}

	now := opts.now()
	category := mdclip.Classify(page.Title, pageURL)
	req := DeliverRequest{
		RunID:      runID,
		Page:       page,
		URL:        target.String(),
		SourceURL:  pageURL,
		Category:   category,
		Markdown:   markdown,
		Filename:   mdclip.Filename(page, category, now),
		Enrich:     opts.EnrichmentActive(),
		APIKey:     opts.APIKey,
		Model:      opts.Model,
		CapturedAt: now,
	}

	result := &Result{
		RunID:       runID,
		URL:         pageURL,
		Title:       page.Title,
		Category:    category,
		Filename:    req.Filename,
		ContentHash: ContentHash(markdown),
		Bytes:       len(markdown),
	}
	p.logger().Debug("converted", "run", runID, "category", category, "bytes", result.Bytes, "hash", result.ContentHash)

	if req.Enrich && p.Worker != nil {
		result.Pending = true
		result.Task = p.Worker.Deliver(req)
		return result, nil
	}

	completion, err := p.deliver(ctx, req)
	if err != nil {
		return nil, err
	}
	result.Completion = completion
	return result, nil
}

// Deliver finishes a run: it enriches when requested, builds the artifact,
// saves it and then records the URL in the history. Enrichment failures
// fall back to the unenriched Markdown with empty enrichment fields. A
// history failure is logged but does not fail the delivery, since the file
// is already saved. Any error moves the pipeline to StateFailed.
func (p *Pipeline) Deliver(ctx context.Context, req DeliverRequest) (*Completion, error) {
	completion, err := p.deliver(ctx, req)
	if err != nil {
		p.setState(req.RunID, StateFailed)
		return nil, err
	}
	return completion, nil
}

func (p *Pipeline) deliver(ctx context.Context, req DeliverRequest) (*Completion, error) {
	var enrichment *mdclip.Enrichment
	if req.Enrich {
		p.setState(req.RunID, StateEnriching)
		enrichment = p.enrich(ctx, req)
	}
	enriched := enrichment != nil
	if req.Enrich && !enriched {
		enrichment = &mdclip.Enrichment{}
	}

	p.setState(req.RunID, StateSynthesizing)

	pageURL := req.SourceURL
	if pageURL == "" {
		pageURL = req.URL
	}
	header := mdclip.RenderFrontMatter(req.Page, pageURL, req.Category, enrichment, req.CapturedAt)
	artifact := mdclip.BuildArtifact(header, enrichment.Body(req.Markdown))

	p.setState(req.RunID, StateDelivering)

	path, err := p.Saver.Save(ctx, artifact, req.Filename)
	if err != nil {
		return nil, err
	}

	if p.History != nil {
		if _, err := p.History.Record(ctx, req.URL); err != nil {
			p.logger().Warn("history record failed", "url", req.URL, "err", err)
		}
	}

	p.setState(req.RunID, StateIdle)

	return &Completion{
		RunID:    req.RunID,
		Success:  true,
		Filename: req.Filename,
		Path:     path,
		Enriched: enriched,
	}, nil
}

// enrich calls the Enricher, returning nil on any failure.
func (p *Pipeline) enrich(ctx context.Context, req DeliverRequest) *mdclip.Enrichment {
	if p.Enricher == nil {
		return nil
	}

	enrichment, err := p.Enricher.Enrich(ctx, mdclip.EnrichRequest{
		Markdown: req.Markdown,
		APIKey:   req.APIKey,
		Model:    req.Model,
		Images:   req.Page.Images,
	})
	if err != nil {
		p.logger().Warn("enrichment failed, saving without it",
			"url", req.URL,
			"code", mdclip.ErrorCode(err),
			"err", err,
		)
		return nil
	}
	return enrichment
}
