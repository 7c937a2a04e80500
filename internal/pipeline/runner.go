package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/morispolanco/recamazon/internal/logging"
	"github.com/morispolanco/recamazon/internal/metrics"
	"github.com/morispolanco/recamazon/internal/parse"
	"github.com/morispolanco/recamazon/internal/services"
)

// Stage names used in logs, metrics, and context.
const (
	StageDiscover  = "discover"
	StageDetail    = "detail"
	StageReview    = "review"
	StageRecommend = "recommend"
)

// Options configures a Runner.
type Options struct {
	Catalog string
	// ParallelFetch runs the detail and review stages concurrently.
	ParallelFetch bool
	// LenientRecords strips code fences from detail and review replies before decoding.
	LenientRecords bool
	Logger         *slog.Logger
}

// Runner executes pipelines against one provider. It holds no per-run state
// and is safe for concurrent use when the provider is.
type Runner struct {
	provider CompletionProvider
	prompts  Prompts
	opts     Options
	logger   *slog.Logger
}

// NewRunner validates opts and returns a Runner.
func NewRunner(provider CompletionProvider, opts Options) (*Runner, error) {
	if provider == nil {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "new runner", "completion provider required", nil)
	}
	prompts, err := PromptsFor(opts.Catalog)
	if err != nil {
		return nil, err
	}
	opts.Catalog = prompts.Catalog
	return &Runner{
		provider: provider,
		prompts:  prompts,
		opts:     opts,
		logger:   logging.NewComponentLogger(opts.Logger, "pipeline"),
	}, nil
}

// Catalog returns the catalog the runner's prompts target.
func (r *Runner) Catalog() string {
	return r.prompts.Catalog
}

// Run executes the pipeline for query. The error is non-nil only when query is
// blank; a run without discovered items returns a halted Result.
func (r *Runner) Run(ctx context.Context, query string) (Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Result{}, services.Wrap(services.ErrValidation, "pipeline", "run", "query required", nil)
	}

	ctx = services.WithRequestID(ctx, uuid.NewString())
	ctx = services.WithQuery(ctx, query)
	logger := logging.WithContext(ctx, r.logger)
	started := time.Now()

	logger.Info("pipeline started",
		logging.String(logging.FieldEventType, "pipeline_start"),
		logging.String("catalog", r.prompts.Catalog),
		logging.Bool("parallel_fetch", r.opts.ParallelFetch),
	)

	result := Result{Query: query, Catalog: r.prompts.Catalog}

	items := r.discover(ctx, query)
	if len(items) == 0 {
		result.Status = StatusHalted
		result.Reason = ReasonNoItemsFound
		result.Items = items
		elapsed := time.Since(started)
		metrics.RecordRun(r.prompts.Catalog, string(StatusHalted), elapsed.Seconds())
		logging.WarnWithContext(logger, "pipeline halted", "pipeline_halted",
			logging.String("reason", ReasonNoItemsFound),
			logging.String(logging.FieldImpact, "detail, review, and recommend stages skipped"),
			logging.String(logging.FieldErrorHint, "try a broader query or check the discovery reply in debug logs"),
			logging.Duration("elapsed", elapsed),
		)
		return result, nil
	}
	result.Items = items

	urls := parse.URLs(items)
	if len(urls) > parse.MaxRecords {
		urls = urls[:parse.MaxRecords]
	}

	var details, reviews []parse.Record
	if r.opts.ParallelFetch {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			details = r.fetchRecords(gctx, StageDetail, r.prompts.Detail(urls))
			return nil
		})
		g.Go(func() error {
			reviews = r.fetchRecords(gctx, StageReview, r.prompts.Review(urls))
			return nil
		})
		_ = g.Wait()
	} else {
		details = r.fetchRecords(ctx, StageDetail, r.prompts.Detail(urls))
		reviews = r.fetchRecords(ctx, StageReview, r.prompts.Review(urls))
	}
	result.Details = details
	result.Reviews = reviews
	result.Recommendation = r.recommend(ctx, details)
	result.Status = StatusCompleted

	elapsed := time.Since(started)
	metrics.RecordRun(r.prompts.Catalog, string(StatusCompleted), elapsed.Seconds())
	logger.Info("pipeline completed",
		logging.String(logging.FieldEventType, "pipeline_complete"),
		logging.Int("items", len(result.Items)),
		logging.Int("details", len(result.Details)),
		logging.Int("reviews", len(result.Reviews)),
		logging.Bool("recommendation", result.HasRecommendation()),
		logging.Duration("elapsed", elapsed),
	)
	return result, nil
}

func (r *Runner) discover(ctx context.Context, query string) []parse.ItemReference {
	items := []parse.ItemReference{}
	r.runStage(ctx, StageDiscover, r.prompts.Discover(query), "no related items listed", func(raw string) (int, parse.Outcome) {
		var outcome parse.Outcome
		items, outcome = parse.ParseURLListOutcome(raw)
		return len(items), outcome
	})
	return items
}

func (r *Runner) fetchRecords(ctx context.Context, stage, prompt string) []parse.Record {
	records := []parse.Record{}
	r.runStage(ctx, stage, prompt, stage+" section left empty", func(raw string) (int, parse.Outcome) {
		var outcome parse.Outcome
		records, outcome = parse.ParseRecordListOutcome(raw, r.opts.LenientRecords)
		return len(records), outcome
	})
	return records
}

func (r *Runner) recommend(ctx context.Context, details []parse.Record) string {
	if details == nil {
		details = []parse.Record{}
	}
	recommendation := NoRecommendations
	r.runStage(ctx, StageRecommend, r.prompts.Recommend(details), "recommendation replaced by placeholder", func(raw string) (int, parse.Outcome) {
		text := parse.ParseText(raw)
		if text == "" {
			return 0, parse.OutcomeEmpty
		}
		recommendation = text
		return len(text), parse.OutcomeStrict
	})
	return recommendation
}

// runStage performs one provider call and hands the reply to interpret. A
// provider error skips interpret entirely; the caller's zero value stands.
func (r *Runner) runStage(ctx context.Context, stage, prompt, impact string, interpret func(raw string) (int, parse.Outcome)) {
	stageCtx := logging.WithStage(ctx, stage)
	logger := logging.WithContext(stageCtx, r.logger)
	logger.Info("stage started",
		logging.String(logging.FieldEventType, "stage_start"),
		logging.Int("prompt_chars", len(prompt)),
	)
	logger.Debug("stage prompt", logging.String("prompt", prompt))

	started := time.Now()
	raw, err := r.provider.Complete(stageCtx, prompt)
	elapsed := time.Since(started)
	if err != nil {
		class := services.Classify(err)
		metrics.RecordStage(stage, class, 0, elapsed.Seconds())
		logging.WarnWithContext(logger, "stage degraded", "stage_degraded",
			logging.String(logging.FieldErrorClass, class),
			logging.String(logging.FieldImpact, impact),
			logging.String(logging.FieldErrorHint, stageHint(err)),
			logging.Duration("elapsed", elapsed),
			logging.Error(err),
		)
		return
	}
	logger.Debug("stage reply", logging.String("reply", raw))

	count, outcome := interpret(raw)
	label := "ok"
	switch {
	case outcome == parse.OutcomeFailed:
		label = services.Classify(services.ErrParseFailure)
		logging.WarnWithContext(logger, "stage reply not decodable", "stage_degraded",
			logging.String(logging.FieldErrorClass, label),
			logging.String(logging.FieldImpact, impact),
			logging.String(logging.FieldErrorHint, "enable debug logging to inspect the raw reply"),
			logging.Int("reply_chars", len(raw)),
		)
	case count == 0:
		label = "empty"
	}
	metrics.RecordStage(stage, label, count, elapsed.Seconds())
	logger.Info("stage completed",
		logging.String(logging.FieldEventType, "stage_complete"),
		logging.String("parse_outcome", string(outcome)),
		logging.Int("results", count),
		logging.Duration("elapsed", elapsed),
	)
}

func stageHint(err error) string {
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		return "check llm.api_key or OPENROUTER_API_KEY"
	case errors.Is(err, context.DeadlineExceeded):
		return "raise llm.timeout_seconds"
	case errors.Is(err, services.ErrMalformedResponse):
		return "check that llm.model is a chat model served by the endpoint"
	default:
		return "check network access to llm.base_url"
	}
}
