// Package generate wraps the generative-text provider behind a small typed
// interface, one method per AI tool. All prompt plumbing, model fallback and
// defensive response parsing lives here so callers only see clean results.
package generate

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/toolsathi/toolsathi/pkg/models"
)

// ErrBadGeneration is returned when the provider answered but the response
// could not be used (empty text, malformed JSON). It is recoverable: callers
// show a retry notice, never partial output.
var ErrBadGeneration = errors.New("generation produced unusable output")

// Provider produces AI-generated text for the generator tools.
type Provider interface {
	Titles(ctx context.Context, topic string) ([]string, error)
	Tags(ctx context.Context, topic string) ([]string, error)
	Hooks(ctx context.Context, topic string) ([]string, error)
	MetaDescription(ctx context.Context, topic string) (string, error)
	AnalyzeHeadline(ctx context.Context, headline string) (models.CTRReport, error)
}

// System instructions, one per tool.
const (
	titlesInstruction = "You are an expert YouTube strategist. Generate 5 highly engaging, " +
		"click-worthy YouTube video titles based on the user's topic. Return ONLY the titles, one per line."
	tagsInstruction = "You are an expert YouTube SEO specialist. Generate 20 highly relevant, " +
		"high-search-volume YouTube tags for the given topic. Return them as a comma-separated list."
	hooksInstruction = "You are an expert short-form video producer (TikTok, YouTube Shorts, Instagram Reels). " +
		"Generate 5 highly engaging, attention-grabbing hooks (the first 3 seconds of the script) for a video " +
		"about the user's topic. These should create curiosity, use pattern interrupts, or state a bold claim. " +
		"Return ONLY the hooks, one per line."
	metaInstruction = "You are an SEO expert. Generate a compelling, click-optimized meta description " +
		"(under 160 characters) for the given topic or keyword."
	ctrInstruction = "You are an expert YouTube thumbnail designer and CTR analyst. Analyze the given headline " +
		"for a thumbnail. Provide a score out of 100 for CTR potential, and 3 brief tips to improve it. " +
		"Format as JSON with 'score' (number) and 'tips' (array of strings)."
)

// GeminiProvider implements Provider with the Gemini API.
type GeminiProvider struct {
	client  *genai.Client
	models  []string
	timeout time.Duration
}

// NewGemini creates a GeminiProvider with an ordered model fallback chain.
func NewGemini(ctx context.Context, apiKey string, modelChain []string, timeout time.Duration) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if len(modelChain) == 0 {
		return nil, fmt.Errorf("at least one model is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiProvider{client: client, models: modelChain, timeout: timeout}, nil
}

// generate runs one prompt against the model chain, trying the next model
// when a call fails, and returns the raw response text.
func (p *GeminiProvider) generate(ctx context.Context, instruction, prompt string, jsonOut bool) (string, error) {
	if _, ok := ctx.Deadline(); !ok && p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(instruction, genai.RoleUser),
	}
	if jsonOut {
		cfg.ResponseMIMEType = "application/json"
	}

	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}

	var lastErr error
	for _, model := range p.models {
		resp, err := p.client.Models.GenerateContent(ctx, model, contents, cfg)
		if err != nil {
			log.Printf("model %s failed: %v, trying next", model, err)
			lastErr = err
			continue
		}
		text := strings.TrimSpace(resp.Text())
		if text == "" {
			log.Printf("model %s returned empty text, trying next", model)
			lastErr = ErrBadGeneration
			continue
		}
		return text, nil
	}
	if lastErr == nil {
		lastErr = ErrBadGeneration
	}
	return "", fmt.Errorf("all models failed: %w", lastErr)
}

// Titles generates five click-worthy video titles for a topic.
func (p *GeminiProvider) Titles(ctx context.Context, topic string) ([]string, error) {
	text, err := p.generate(ctx, titlesInstruction, "Topic: "+topic, false)
	if err != nil {
		return nil, err
	}
	titles := SplitLines(text)
	if len(titles) == 0 {
		return nil, ErrBadGeneration
	}
	return titles, nil
}

// Tags generates a list of SEO tags for a topic.
func (p *GeminiProvider) Tags(ctx context.Context, topic string) ([]string, error) {
	text, err := p.generate(ctx, tagsInstruction, "Topic: "+topic, false)
	if err != nil {
		return nil, err
	}
	tags := SplitComma(text)
	if len(tags) == 0 {
		return nil, ErrBadGeneration
	}
	return tags, nil
}

// Hooks generates short-form video opening hooks for a topic.
func (p *GeminiProvider) Hooks(ctx context.Context, topic string) ([]string, error) {
	text, err := p.generate(ctx, hooksInstruction, "Topic: "+topic, false)
	if err != nil {
		return nil, err
	}
	hooks := SplitLines(text)
	if len(hooks) == 0 {
		return nil, ErrBadGeneration
	}
	return hooks, nil
}

// MetaDescription generates a single meta description for a topic.
func (p *GeminiProvider) MetaDescription(ctx context.Context, topic string) (string, error) {
	return p.generate(ctx, metaInstruction, "Topic: "+topic, false)
}

// AnalyzeHeadline scores a thumbnail headline and returns improvement tips.
func (p *GeminiProvider) AnalyzeHeadline(ctx context.Context, headline string) (models.CTRReport, error) {
	text, err := p.generate(ctx, ctrInstruction, fmt.Sprintf("Headline: %q", headline), true)
	if err != nil {
		return models.CTRReport{}, err
	}
	return ParseCTRReport(text)
}
