// Command mcqgen generates one quiz from a local document and prints it.
//
//	mcqgen -f notes.pdf -n 5 -s Physics -t easy [-x out.xlsx] [--require-rows]
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"mcqgen/internal/app"
	"mcqgen/internal/config"
	"mcqgen/internal/domain"
	"mcqgen/internal/dto"
	"mcqgen/internal/export"
	"mcqgen/internal/logger"
	"mcqgen/internal/quiztable"
	"mcqgen/internal/service"
	"mcqgen/internal/util"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

type options struct {
	file        string
	count       int
	subject     string
	tone        string
	xlsx        string
	requireRows bool
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := pflag.NewFlagSet("mcqgen", pflag.ContinueOnError)
	fs.StringVarP(&opts.file, "file", "f", "", "PDF or txt document to read")
	fs.IntVarP(&opts.count, "count", "n", 5, "number of questions")
	fs.StringVarP(&opts.subject, "subject", "s", "", "quiz subject")
	fs.StringVarP(&opts.tone, "tone", "t", "simple", "complexity level of the questions")
	fs.StringVarP(&opts.xlsx, "xlsx", "x", "", "also write the quiz to this .xlsx file")
	fs.BoolVar(&opts.requireRows, "require-rows", false, "fail when no entry of the reply had a question")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	defer logger.Sync()

	pipeline, err := app.Build(cfg)
	if err != nil {
		logger.Get().Fatal("Failed to build quiz pipeline", zap.Error(err))
	}
	defer pipeline.Close()

	if err := run(context.Background(), pipeline.Service, opts, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, domain.UserMessage(err))
		pipeline.Close()
		logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, svc service.MCQService, opts options, out io.Writer) error {
	req := &dto.GenerateRequest{
		RequestID:     util.NewULID(),
		QuestionCount: strconv.Itoa(opts.count),
		Subject:       opts.subject,
		Tone:          opts.tone,
	}
	if opts.file != "" {
		f, err := os.Open(opts.file)
		if err != nil {
			return domain.NewInvalidInputError(fmt.Sprintf("cannot open %s: %v", opts.file, err))
		}
		defer f.Close()
		info, err := f.Stat()
		if err != nil {
			return domain.NewInternalError("cannot stat the document", err)
		}
		req.Document = &domain.UploadedDocument{
			Filename: info.Name(),
			Size:     info.Size(),
			Body:     f,
		}
	}

	resp, err := svc.Generate(ctx, req)
	if err != nil {
		return err
	}
	if opts.requireRows {
		table := &quiztable.Table{Rows: resp.Rows, Skipped: resp.Skipped}
		if err := table.RequireRows(); err != nil {
			return domain.NewMissingFieldError(err.Error())
		}
	}

	printResult(out, resp)

	if opts.xlsx != "" {
		data, err := export.XLSX(export.Workbook{
			Subject: resp.Subject,
			Rows:    resp.Rows,
			Review:  resp.Review,
			Usage:   resp.Usage,
		})
		if err != nil {
			return domain.NewInternalError("failed to build the workbook", err)
		}
		if err := os.WriteFile(opts.xlsx, data, 0o644); err != nil {
			return domain.NewInternalError("failed to write the workbook", err)
		}
		fmt.Fprintf(out, "\nWorkbook written to %s\n", opts.xlsx)
	}
	return nil
}

func printResult(out io.Writer, resp *dto.GenerateResponse) {
	fmt.Fprintf(out, "Total Tokens: %d\n", resp.Usage.TotalTokens)
	fmt.Fprintf(out, "Prompt Tokens: %d\n", resp.Usage.PromptTokens)
	fmt.Fprintf(out, "Completion Tokens: %d\n", resp.Usage.CompletionTokens)
	fmt.Fprintf(out, "Total Cost: %.6f\n\n", resp.Usage.TotalCost)

	if resp.Empty {
		fmt.Fprintln(out, "The model returned no usable questions for this document.")
	} else {
		table := tablewriter.NewWriter(out)
		table.SetHeader([]string{"#", "MCQ", "Choices", "Correct"})
		table.SetAutoWrapText(true)
		table.SetColWidth(50)
		table.SetRowLine(true)
		for i, row := range resp.Rows {
			table.Append([]string{strconv.Itoa(i + 1), row.MCQ, row.Choices, row.Correct})
		}
		table.Render()
	}

	fmt.Fprintf(out, "\nReview:\n%s\n", resp.Review)
}
