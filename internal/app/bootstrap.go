// Package app assembles the submission pipeline shared by the HTTP server
// and the command-line tool.
package app

import (
	"fmt"

	"mcqgen/internal/adapter"
	"mcqgen/internal/adapter/chain"
	"mcqgen/internal/adapter/llm"
	"mcqgen/internal/cache"
	"mcqgen/internal/config"
	"mcqgen/internal/domain"
	"mcqgen/internal/extract"
	"mcqgen/internal/logger"
	"mcqgen/internal/responsetemplate"
	"mcqgen/internal/service"

	"go.uber.org/zap"
)

// Pipeline is the wired service plus what must be released on shutdown.
type Pipeline struct {
	Service  service.MCQService
	Template *responsetemplate.Template
	// Cache is nil when Redis is disabled or unreachable at startup.
	Cache    domain.Cache
	closers  []func() error
}

// Close releases the resources opened by Build.
func (p *Pipeline) Close() {
	for _, c := range p.closers {
		if err := c(); err != nil {
			logger.Get().Warn("Failed to close resource", zap.Error(err))
		}
	}
}

// Build loads the response template, creates the model and the chain, and
// wraps the extractor in a Redis cache when redis.address is set. A Redis
// that cannot be reached is logged and skipped.
func Build(cfg *config.Config) (*Pipeline, error) {
	log := logger.Get()

	tmpl, err := responsetemplate.Load(cfg.ResponseTemplate)
	if err != nil {
		return nil, fmt.Errorf("load response template: %w", err)
	}
	log.Info("Response template loaded", zap.String("source", tmpl.Source()))

	model, err := llm.NewModel(cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("create llm client: %w", err)
	}
	log.Info("LLM client initialized",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("model", cfg.LLM.Model))

	orchestrator, err := chain.NewOrchestrator(model, cfg.LLM, cfg.Pricing)
	if err != nil {
		return nil, fmt.Errorf("create chain: %w", err)
	}

	p := &Pipeline{Template: tmpl}

	var extractor domain.TextExtractor = extract.NewExtractor(cfg.Upload.MaxBytes)
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			log.Warn("Redis unavailable, extracted text will not be cached", zap.Error(err))
		} else {
			p.closers = append(p.closers, redisClient.Close)
			ttl := cfg.ParseTTLStringOrDefault(cfg.CacheTTLs.ExtractedText, extract.DefaultTextTTL)
			redisCache := adapter.NewRedisCacheAdapter(redisClient)
			cached, err := extract.NewCachedExtractor(extractor, redisCache, ttl, cfg.Upload.MaxBytes)
			if err != nil {
				p.Close()
				return nil, fmt.Errorf("create cached extractor: %w", err)
			}
			extractor = cached
			p.Cache = redisCache
			log.Info("Extracted text cache enabled", zap.String("address", cfg.Redis.Address), zap.Duration("ttl", ttl))
		}
	}

	p.Service = service.NewMCQService(extractor, orchestrator, tmpl.JSON())
	return p, nil
}
