// Package gemini implements mdclip.Enricher on top of the Google Gemini API.
package gemini

import (
	"context"
	"strings"
	"sync"

	"github.com/fwojciec/mdclip"
	"google.golang.org/genai"
)

// Ensure Enricher implements mdclip.Enricher at compile time.
var _ mdclip.Enricher = (*Enricher)(nil)

// Generator performs a single generate-content call and returns the reply text.
type Generator interface {
	Generate(ctx context.Context, apiKey, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, apiKey, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (string, error)

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, apiKey, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (string, error) {
	return f(ctx, apiKey, model, contents, config)
}

// Enricher implements mdclip.Enricher using Google Gemini.
type Enricher struct {
	generator Generator
	retry     RetryPolicy
}

// Option configures an Enricher.
type Option func(*Enricher)

// WithGenerator replaces the Gemini client used for calls.
func WithGenerator(g Generator) Option {
	return func(e *Enricher) {
		e.generator = g
	}
}

// WithRetryPolicy sets the backoff policy for calls.
// Defaults to DefaultRetryPolicy().
func WithRetryPolicy(p RetryPolicy) Option {
	return func(e *Enricher) {
		e.retry = p
	}
}

// NewEnricher creates a new Enricher.
func NewEnricher(opts ...Option) *Enricher {
	e := &Enricher{
		generator: NewClientGenerator(),
		retry:     DefaultRetryPolicy(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enrich asks the model for metadata and a revised body for req.Markdown.
func (e *Enricher) Enrich(ctx context.Context, req mdclip.EnrichRequest) (*mdclip.Enrichment, error) {
	if strings.TrimSpace(req.APIKey) == "" {
		return nil, mdclip.Errorf(mdclip.ECONFIG, "Gemini API key not configured")
	}
	if strings.TrimSpace(req.Markdown) == "" {
		return nil, mdclip.Errorf(mdclip.EINVALID, "markdown required")
	}

	model := req.Model
	if model == "" {
		model = mdclip.DefaultModel
	}

	contents := BuildContents(req.Markdown, req.Images)
	config := BuildConfig()

	var text string
	err := e.retry.Do(ctx, func(ctx context.Context) error {
		var err error
		text, err = e.generator.Generate(ctx, req.APIKey, model, contents, config)
		return err
	})
	if err != nil {
		if code := mdclip.ErrorCode(err); code != mdclip.EINTERNAL {
			return nil, err
		}
		return nil, mdclip.Errorf(mdclip.EREMOTE, "gemini %s: %v", model, err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, mdclip.Errorf(mdclip.EREMOTE, "gemini %s returned an empty response", model)
	}

	return ParseResponse(text), nil
}

// ClientGenerator calls the Gemini API, keeping one client per API key.
type ClientGenerator struct {
	mu      sync.Mutex
	clients map[string]*genai.Client
}

// NewClientGenerator creates a new ClientGenerator.
func NewClientGenerator() *ClientGenerator {
	return &ClientGenerator{clients: make(map[string]*genai.Client)}
}

// Generate sends contents to model and returns the reply text.
func (g *ClientGenerator) Generate(ctx context.Context, apiKey, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (string, error) {
	client, err := g.client(ctx, apiKey)
	if err != nil {
		return "", err
	}

	result, err := client.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", mdclip.Errorf(mdclip.EREMOTE, "gemini returned nil result")
	}

	return result.Text(), nil
}

func (g *ClientGenerator) client(ctx context.Context, apiKey string) (*genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if c, ok := g.clients[apiKey]; ok {
		return c, nil
	}

	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, mdclip.Errorf(mdclip.ECONFIG, "failed to create Gemini client: %v", err)
	}
	g.clients[apiKey] = c
	return c, nil
}
