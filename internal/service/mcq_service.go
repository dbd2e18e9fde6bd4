package service

import (
	"context"
	"errors"
	"time"

	"mcqgen/internal/domain"
	"mcqgen/internal/dto"
	"mcqgen/internal/export"
	"mcqgen/internal/logger"
	"mcqgen/internal/quiztable"
	"mcqgen/internal/util"
	"mcqgen/internal/validation"

	"go.uber.org/zap"
)

// MCQService runs one submission: validate, extract, generate and review, parse.
type MCQService interface {
	Generate(ctx context.Context, req *dto.GenerateRequest) (*dto.GenerateResponse, error)
	Export(ctx context.Context, req *dto.GenerateRequest) ([]byte, error)
}

type mcqService struct {
	extractor    domain.TextExtractor
	chain        domain.QuizChain
	validator    *validation.Validator
	responseJSON string
}

// NewMCQService wires the pipeline. responseJSON is the example quiz shape
// handed to the model with every generation prompt.
func NewMCQService(extractor domain.TextExtractor, chain domain.QuizChain, responseJSON string) MCQService {
	return &mcqService{
		extractor:    extractor,
		chain:        chain,
		validator:    validation.NewValidator(),
		responseJSON: responseJSON,
	}
}

// Generate implements MCQService. The error is either domain.ValidationErrors
// or a *domain.DomainError.
func (s *mcqService) Generate(ctx context.Context, req *dto.GenerateRequest) (*dto.GenerateResponse, error) {
	start := time.Now()
	if req.RequestID == "" {
		req.RequestID = util.NewULID()
	}
	log := logger.Get().With(zap.String("request_id", req.RequestID))

	count, validationErrs := s.validator.ValidateGenerateRequest(req)
	if len(validationErrs) > 0 {
		log.Info("Rejected quiz request", zap.Error(validationErrs))
		return nil, validationErrs
	}

	text, err := s.extractor.Extract(ctx, *req.Document)
	if err != nil {
		log.Warn("Failed to extract document text",
			zap.String("filename", req.Document.Filename),
			zap.Error(err))
		return nil, asDomainError(err)
	}
	log.Debug("Extracted document text",
		zap.String("filename", req.Document.Filename),
		zap.Int("chars", len(text)))

	out, err := s.chain.Generate(ctx, domain.ChainInput{
		Text:         text,
		Number:       count,
		Subject:      req.Subject,
		Tone:         req.Tone,
		ResponseJSON: s.responseJSON,
	})
	if err != nil {
		log.Error("Quiz chain failed", zap.Error(err))
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			return nil, domainErr
		}
		return nil, domain.NewModelInvocationError(err)
	}

	table, err := quiztable.Parse(quiztable.Sanitize(out.Quiz))
	if err != nil {
		log.Warn("Model reply is not a usable quiz",
			zap.Error(err),
			zap.Int("reply_length", len(out.Quiz)))
		return nil, fromParseError(err)
	}
	for _, skipped := range table.Skipped {
		log.Debug("Skipped quiz entry",
			zap.String("key", skipped.Key),
			zap.String("reason", string(skipped.Reason)),
			zap.String("detail", skipped.Detail))
	}

	log.Info("Generated quiz",
		zap.Int("rows", len(table.Rows)),
		zap.Int("skipped", len(table.Skipped)),
		zap.Int("total_tokens", out.Usage.TotalTokens),
		zap.Float64("total_cost", out.Usage.TotalCost),
		zap.Duration("elapsed", time.Since(start)))

	return &dto.GenerateResponse{
		RequestID: req.RequestID,
		Subject:   req.Subject,
		Rows:      table.Rows,
		Skipped:   table.Skipped,
		Review:    out.Review,
		RawQuiz:   out.Quiz,
		Usage:     out.Usage,
		Empty:     table.Empty(),
	}, nil
}

// Export implements MCQService.
func (s *mcqService) Export(ctx context.Context, req *dto.GenerateRequest) ([]byte, error) {
	resp, err := s.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	data, err := export.XLSX(export.Workbook{
		Subject: resp.Subject,
		Rows:    resp.Rows,
		Review:  resp.Review,
		Usage:   resp.Usage,
	})
	if err != nil {
		return nil, domain.NewInternalError("failed to build the workbook", err)
	}
	return data, nil
}

func asDomainError(err error) error {
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return domain.NewInternalError("failed to read the uploaded document", err)
}

func fromParseError(err error) *domain.DomainError {
	var parseErr *quiztable.ParseError
	if !errors.As(err, &parseErr) {
		return domain.NewUnexpectedError("An unexpected error occurred.", err)
	}
	switch parseErr.Kind {
	case quiztable.KindDecode:
		return domain.NewJSONDecodeError(parseErr.Message, parseErr.Err)
	case quiztable.KindMissingField:
		return domain.NewMissingFieldError(parseErr.Message)
	default:
		return domain.NewUnexpectedError(parseErr.Message, parseErr.Err)
	}
}
