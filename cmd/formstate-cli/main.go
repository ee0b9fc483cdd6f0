package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/goliatone/go-formstate"
	"github.com/goliatone/go-formstate/pkg/logging"
	"github.com/goliatone/go-formstate/pkg/mask"
	"github.com/goliatone/go-formstate/pkg/model"
	pkgopenapi "github.com/goliatone/go-formstate/pkg/openapi"
	"github.com/goliatone/go-formstate/pkg/orchestrator"
	"github.com/goliatone/go-formstate/pkg/renderers/tui"
	"github.com/goliatone/go-formstate/pkg/source"
)

func main() {
	schemaRef := flag.String("schema", "", "YAML or JSON schema: path or http(s) URL")
	openapiRef := flag.String("openapi", "", "OpenAPI document path or URL (alternative to -schema)")
	opID := flag.String("operation", "", "operation ID whose request body becomes the form")
	recordRef := flag.String("record", "", "entity record used to seed field defaults: path or http(s) URL")
	timeout := flag.Duration("timeout", 10*time.Second, "timeout for remote documents")
	locale := flag.String("locale", mask.DefaultLocale.String(), "locale used to format money")
	format := flag.String("format", string(tui.OutputFormatJSON), "output format: json, form or pretty")
	output := flag.String("output", "", "output file (stdout if empty)")
	logLevel := flag.String("log-level", "info", "log level")
	logFormat := flag.String("log-format", "console", "log format: console or json")
	flag.Parse()

	logger, err := logging.New(*logLevel, *logFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = run(ctx, logger, config{
		schema:    *schemaRef,
		openapi:   *openapiRef,
		operation: *opID,
		record:    *recordRef,
		timeout:   *timeout,
		locale:    *locale,
		format:    tui.OutputFormat(*format),
		output:    *output,
	})
	code := exitCode(err)
	if code == 0 {
		return
	}
	if code == 1 {
		logger.Error("formstate-cli failed", zap.Error(err))
	}
	stop()
	_ = logger.Sync()
	os.Exit(code)
}

// exitCode maps a run error to the process status: 130 when the user
// interrupted the prompts, 1 for any other failure.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, tui.ErrAborted):
		return 130
	default:
		return 1
	}
}

type config struct {
	schema    string
	openapi   string
	operation string
	record    string
	timeout   time.Duration
	locale    string
	format    tui.OutputFormat
	output    string
}

func run(ctx context.Context, logger *zap.Logger, cfg config) error {
	fetcher := formstate.NewFetcher(
		source.WithRemote(cfg.timeout),
		source.WithLogger(logger),
	)

	schema, err := loadSchema(ctx, fetcher, cfg)
	if err != nil {
		return err
	}

	tag, err := language.Parse(cfg.locale)
	if err != nil {
		return fmt.Errorf("invalid locale %q: %w", cfg.locale, err)
	}
	masks := mask.NewRegistry(mask.WithLocale(tag))

	options := []orchestrator.Option{
		orchestrator.WithLogger(logger),
		orchestrator.WithMasks(masks),
		orchestrator.WithSanitizer(bluemonday.StrictPolicy()),
	}
	if cfg.record != "" {
		ref, err := source.Parse(cfg.record)
		if err != nil {
			return err
		}
		seed, err := source.LoadRecord(ctx, fetcher, ref)
		if err != nil {
			return err
		}
		options = append(options, orchestrator.WithDecorators(seed))
	}

	o := formstate.NewOrchestrator(options...)
	if _, err := o.Use(schema); err != nil {
		return err
	}

	renderer := tui.New(
		tui.WithOutputFormat(cfg.format),
		tui.WithTheme(tui.Theme{ErrorPrefix: "✗ "}),
		tui.WithLogger(logger),
	)
	out, err := renderer.Render(ctx, o)
	if err != nil {
		return err
	}

	if cfg.output != "" {
		if err := os.WriteFile(cfg.output, out, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		logger.Info("values written", zap.String("path", cfg.output))
		return nil
	}
	fmt.Println(string(out))
	return nil
}

func loadSchema(ctx context.Context, fetcher source.Fetcher, cfg config) (model.Schema, error) {
	switch {
	case cfg.schema != "" && cfg.openapi != "":
		return model.Schema{}, errors.New("use either -schema or -openapi, not both")
	case cfg.schema != "":
		ref, err := source.Parse(cfg.schema)
		if err != nil {
			return model.Schema{}, err
		}
		return source.LoadSchema(ctx, fetcher, ref)
	case cfg.openapi != "":
		if cfg.operation == "" {
			return model.Schema{}, errors.New("-operation is required with -openapi")
		}
		ref, err := source.Parse(cfg.openapi)
		if err != nil {
			return model.Schema{}, err
		}
		return pkgopenapi.SchemaFromOperation(ctx, fetcher, formstate.NewParser(), ref, cfg.operation)
	default:
		return model.Schema{}, errors.New("one of -schema or -openapi is required")
	}
}
