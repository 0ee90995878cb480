// Package pipeline runs the full persona flow for one user: collect,
// infer, render, write. The batch processor calls it once per username.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mvoloshin/personify/internal/cache"
	"github.com/mvoloshin/personify/internal/collect"
	"github.com/mvoloshin/personify/internal/llm"
	"github.com/mvoloshin/personify/internal/model"
	"github.com/mvoloshin/personify/internal/persona"
	"github.com/mvoloshin/personify/internal/reddit"
	"github.com/mvoloshin/personify/internal/report"
	"github.com/mvoloshin/personify/internal/rules"
	"github.com/mvoloshin/personify/internal/util"
)

// Pipeline owns the per-run components
type Pipeline struct {
	cfg        *model.Config
	collector  *collect.Collector
	engine     *persona.Engine
	renderer   *report.Renderer
	summarizer *llm.Summarizer

	now func() time.Time
}

// New wires a pipeline from configuration, an API client, and a rule
// table. The cache layer is built here when enabled.
func New(cfg *model.Config, client reddit.Client, rs *rules.Ruleset) (*Pipeline, error) {
	var store cache.Cache
	if cfg.Cache.Enabled {
		store = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}

	summarizer, err := llm.NewSummarizer(cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("configure LLM: %w", err)
	}

	return &Pipeline{
		cfg:        cfg,
		collector:  collect.New(client, store, cfg.Limits.MaxPosts, cfg.Limits.MaxComments),
		engine:     persona.NewEngine(rs),
		renderer:   report.NewRenderer(),
		summarizer: summarizer,
		now:        time.Now,
	}, nil
}

// GeneratePersona collects the user's activity and runs inference,
// without writing anything
func (p *Pipeline) GeneratePersona(ctx context.Context, username string) (*model.PersonaResult, error) {
	profile, err := p.collector.Collect(ctx, username)
	if err != nil {
		return nil, err
	}

	result := p.engine.Infer(profile)
	result.GeneratedAt = p.now().UTC()
	return result, nil
}

// ProcessUser runs the full flow and returns the path of the written
// text report
func (p *Pipeline) ProcessUser(ctx context.Context, username string) (string, error) {
	result, err := p.GeneratePersona(ctx, username)
	if err != nil {
		return "", err
	}

	base := util.SanitizeFilename(result.Username) + "_persona"
	txtPath := filepath.Join(p.cfg.Output.Dir, base+".txt")
	if err := p.renderer.WriteText(result, txtPath); err != nil {
		return "", err
	}

	if p.cfg.Output.JSON {
		if err := p.renderer.RenderJSON(result, filepath.Join(p.cfg.Output.Dir, base+".json")); err != nil {
			return "", err
		}
	}

	if p.summarizer.IsEnabled() {
		// The summary is additive: a failed LLM call never discards the
		// already-written report
		if err := p.writeSummary(ctx, result, filepath.Join(p.cfg.Output.Dir, base+".llm.txt")); err != nil {
			fmt.Fprintf(os.Stderr, "warning: LLM summary for %s failed: %v\n", result.Username, err)
		}
	}

	return txtPath, nil
}

func (p *Pipeline) writeSummary(ctx context.Context, result *model.PersonaResult, path string) error {
	resp, err := p.summarizer.GenerateSummary(ctx, result)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(resp.Summary+"\n"), 0o644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}
