// Package chain runs the two-step generate-then-review pipeline against a
// hosted model.
package chain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mcqgen/internal/config"
	"mcqgen/internal/domain"
	"mcqgen/internal/logger"

	"github.com/tmc/langchaingo/chains"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/prompts"
	"go.uber.org/zap"
)

// Orchestrator implements domain.QuizChain with two langchaingo LLMChains run
// back to back.
type Orchestrator struct {
	model        llms.Model
	temperature  float64
	timeout      time.Duration
	pricing      config.PricingConfig
	quizPrompt   prompts.PromptTemplate
	reviewPrompt prompts.PromptTemplate
}

func NewOrchestrator(model llms.Model, llmCfg config.LLMConfig, pricing config.PricingConfig) (*Orchestrator, error) {
	if model == nil {
		return nil, fmt.Errorf("llm model cannot be nil")
	}
	return &Orchestrator{
		model:        model,
		temperature:  llmCfg.Temperature,
		timeout:      llmCfg.Timeout,
		pricing:      pricing,
		quizPrompt:   generationPrompt(),
		reviewPrompt: evaluationPrompt(),
	}, nil
}

// Generate sends the generation prompt, then the evaluation prompt with the
// generated quiz, and reports token usage for both calls together.
func (o *Orchestrator) Generate(ctx context.Context, input domain.ChainInput) (*domain.ChainOutput, error) {
	l := logger.Get()

	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	meter := newMeteredModel(o.model)
	quizChain := chains.NewLLMChain(meter, o.quizPrompt)
	quizChain.OutputKey = keyQuiz
	reviewChain := chains.NewLLMChain(meter, o.reviewPrompt)
	reviewChain.OutputKey = keyReview

	// Each step sees the submission's values plus every earlier output: the
	// review prompt reads subject as well as quiz.
	values := map[string]any{
		keyText:         input.Text,
		keyNumber:       input.Number,
		keySubject:      input.Subject,
		keyTone:         input.Tone,
		keyResponseJSON: input.ResponseJSON,
	}

	start := time.Now()
	for _, step := range []*chains.LLMChain{quizChain, reviewChain} {
		outputs, err := chains.Call(ctx, step, values, chains.WithTemperature(o.temperature))
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				l.Error("LLM request timed out", zap.Error(err), zap.Duration("timeout", o.timeout))
			} else {
				l.Error("Error during quiz generation/evaluation",
					zap.String("step", step.OutputKey),
					zap.Error(err))
			}
			return nil, domain.NewModelInvocationError(err)
		}
		for k, v := range outputs {
			values[k] = v
		}
	}
	quiz, ok := values[keyQuiz].(string)
	if !ok {
		return nil, domain.NewUnexpectedError(fmt.Sprintf("quiz output has type %T", values[keyQuiz]), nil)
	}
	review, _ := values[keyReview].(string)
	usage := meter.Usage(o.pricing)

	l.Info("Quiz generated and reviewed",
		zap.Int("llm_calls", meter.calls),
		zap.Int("total_tokens", usage.TotalTokens),
		zap.Float64("total_cost", usage.TotalCost),
		zap.Duration("duration", time.Since(start)))
	l.Debug("Raw chain output", zap.String("quiz", quiz), zap.String("review", review))

	return &domain.ChainOutput{Quiz: quiz, Review: review, Usage: usage}, nil
}

var _ domain.QuizChain = (*Orchestrator)(nil)
