package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"mcqgen/internal/config"
	"mcqgen/internal/domain"
	"mcqgen/internal/dto"
	"mcqgen/internal/logger"
	"mcqgen/internal/middleware"
	"mcqgen/internal/service"
	"mcqgen/internal/view"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	fileField = "file"
	xlsxMIME  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	healthPingTimeout = 2 * time.Second
)

// MCQHandler serves the upload form and the JSON API.
type MCQHandler struct {
	service  service.MCQService
	renderer *view.Renderer
	cache    domain.Cache
	llm      config.LLMConfig
}

// NewMCQHandler creates a new MCQHandler instance. cache may be nil when
// extracted text is not cached.
func NewMCQHandler(service service.MCQService, renderer *view.Renderer, cache domain.Cache, llm config.LLMConfig) *MCQHandler {
	return &MCQHandler{
		service:  service,
		renderer: renderer,
		cache:    cache,
		llm:      llm,
	}
}

// Index renders the empty form.
func (h *MCQHandler) Index(c *fiber.Ctx) error {
	return h.renderPage(c, view.Page{})
}

// Submit handles the form post. Every failure is shown as one message above
// an empty result; it never reaches the JSON error handler.
func (h *MCQHandler) Submit(c *fiber.Ctx) error {
	req, err := h.bindRequest(c)
	page := view.Page{Form: view.FormValues{
		QuestionCount: c.FormValue("mcq_count"),
		Subject:       c.FormValue("subject"),
		Tone:          c.FormValue("tone"),
	}}
	if err != nil {
		page.Error = domain.UserMessage(err)
		return h.renderPage(c, page)
	}

	resp, err := h.service.Generate(c.UserContext(), req)
	if err != nil {
		page.Error = domain.UserMessage(err)
		return h.renderPage(c, page)
	}
	page.Result = resp
	return h.renderPage(c, page)
}

// ErrorHandler shows errors from the form post as the page's error line, with
// the status kept, and passes every other error to next. Fiber calls it for
// bodies over the limit before any handler runs.
func (h *MCQHandler) ErrorHandler(next fiber.ErrorHandler) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if c.Method() != fiber.MethodPost || c.Path() != "/" {
			return next(c, err)
		}

		page := view.Page{Error: domain.UserMessage(err)}
		status := fiber.StatusInternalServerError
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			status = fiberErr.Code
			if fiberErr.Code == fiber.StatusRequestEntityTooLarge {
				page.Error = "The uploaded file is too large."
			}
		}
		logger.Get().Warn("Form submission failed",
			zap.Int("status", status),
			zap.String("request_id", middleware.RequestIDFrom(c)),
			zap.Error(err))

		c.Status(status)
		return h.renderPage(c, page)
	}
}

// GenerateQuiz godoc
// @Summary Generate a quiz from a document
// @Description Extracts the text of an uploaded PDF or txt file, asks the model for a quiz and a review, and returns the parsed table
// @Tags quiz
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF or txt document"
// @Param mcq_count formData int true "Number of questions (3-20)"
// @Param subject formData string true "Subject"
// @Param tone formData string true "Complexity level"
// @Success 200 {object} dto.GenerateResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /quizzes [post]
func (h *MCQHandler) GenerateQuiz(c *fiber.Ctx) error {
	req, err := h.bindRequest(c)
	if err != nil {
		return err
	}
	resp, err := h.service.Generate(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ExportQuiz godoc
// @Summary Generate a quiz and download it as a workbook
// @Description Runs the same pipeline as POST /quizzes and returns the table and review as an .xlsx file
// @Tags quiz
// @Accept multipart/form-data
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param file formData file true "PDF or txt document"
// @Param mcq_count formData int true "Number of questions (3-20)"
// @Param subject formData string true "Subject"
// @Param tone formData string true "Complexity level"
// @Success 200 {file} file
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /quizzes/export [post]
func (h *MCQHandler) ExportQuiz(c *fiber.Ctx) error {
	req, err := h.bindRequest(c)
	if err != nil {
		return err
	}
	data, err := h.service.Export(c.UserContext(), req)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, xlsxMIME)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, exportFilename(req.Subject)))
	return c.Send(data)
}

// Health godoc
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *MCQHandler) Health(c *fiber.Ctx) error {
	resp := dto.HealthResponse{
		Status:   "ok",
		Provider: h.llm.Provider,
		Model:    h.llm.Model,
		Cache:    "disabled",
	}
	if h.cache != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), healthPingTimeout)
		defer cancel()
		if err := h.cache.Ping(ctx); err != nil {
			logger.Get().Warn("Cache ping failed", zap.Error(err))
			resp.Status = "degraded"
			resp.Cache = "unavailable"
		} else {
			resp.Cache = "ok"
		}
	}
	return c.JSON(resp)
}

// bindRequest reads the form fields and the uploaded file. A missing file
// leaves Document nil for the validator to report.
func (h *MCQHandler) bindRequest(c *fiber.Ctx) (*dto.GenerateRequest, error) {
	req := &dto.GenerateRequest{
		RequestID:     middleware.RequestIDFrom(c),
		QuestionCount: c.FormValue("mcq_count"),
		Subject:       c.FormValue("subject"),
		Tone:          c.FormValue("tone"),
	}

	fh, err := c.FormFile(fileField)
	if err != nil {
		logger.Get().Debug("No file in submission", zap.String("request_id", req.RequestID), zap.Error(err))
		return req, nil
	}
	doc, err := readUpload(fh)
	if err != nil {
		return nil, domain.NewInternalError("failed to read the uploaded file", err)
	}
	req.Document = doc
	return req, nil
}

func readUpload(fh *multipart.FileHeader) (*domain.UploadedDocument, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &domain.UploadedDocument{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Size:        int64(len(data)),
		Body:        bytes.NewReader(data),
	}, nil
}

func (h *MCQHandler) renderPage(c *fiber.Ctx, page view.Page) error {
	out, err := h.renderer.Index(page)
	if err != nil {
		logger.Get().Error("Failed to render page", zap.Error(err))
		return err
	}
	c.Type("html", "utf-8")
	return c.Send(out)
}

func exportFilename(subject string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '_'
		default:
			return -1
		}
	}, subject)
	if name == "" {
		name = "quiz"
	}
	return name + ".xlsx"
}
