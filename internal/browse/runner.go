package browse

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/rshade/pagetable/internal/client"
	"github.com/rshade/pagetable/internal/logging"
	"github.com/rshade/pagetable/internal/records"
)

// Fetcher loads one page. *client.Client satisfies it.
type Fetcher interface {
	FetchPage(ctx context.Context, page, rows int) (records.Page, error)
}

// Runner performs the effects Reduce returns: it fetches pages through a
// Fetcher and writes the log entries reducers ask for.
type Runner struct {
	fetcher Fetcher
	tasks   *Tasks
	logger  zerolog.Logger
}

// NewRunner creates a Runner.
func NewRunner(fetcher Fetcher, tasks *Tasks, logger zerolog.Logger) *Runner {
	if tasks == nil {
		tasks = NewTasks(true)
	}
	return &Runner{
		fetcher: fetcher,
		tasks:   tasks,
		logger:  logging.ComponentLogger(logger, "browse"),
	}
}

// Fetch executes req and converts the outcome into the event to feed back
// into Reduce. It never panics on fetch errors.
func (r *Runner) Fetch(ctx context.Context, req FetchPage) Event {
	fctx, release := r.tasks.Start(ctx, req.Seq)
	defer release()

	page, err := r.fetcher.FetchPage(fctx, req.Page, req.Rows)
	if err != nil {
		return PageFailed{
			Seq:      req.Seq,
			Page:     req.Page,
			Err:      err,
			Canceled: client.IsCanceled(err) || (fctx.Err() != nil && ctx.Err() == nil),
		}
	}
	return PageLoaded{Seq: req.Seq, Page: req.Page, Result: page}
}

// Report writes log entries for the logging effects in effects and returns
// the rest unchanged, in order.
func (r *Runner) Report(ctx context.Context, effects []Effect) []Effect {
	rest := effects[:0:0]
	for _, eff := range effects {
		switch eff := eff.(type) {
		case ReportFailure:
			r.logger.Error().Ctx(ctx).
				Str("operation", "fetch_page").
				Int("page", eff.Page).
				Uint64("seq", eff.Seq).
				Err(eff.Err).
				Msg("failed to fetch page")
		case DiscardResponse:
			r.logger.Debug().Ctx(ctx).
				Int("page", eff.Page).
				Uint64("seq", eff.Seq).
				Uint64("latest_seq", eff.Latest).
				Str("reason", string(eff.Reason)).
				Msg("discarding page response")
		default:
			rest = append(rest, eff)
		}
	}
	return rest
}

// CancelAll aborts any in-flight fetch.
func (r *Runner) CancelAll() {
	r.tasks.CancelAll()
}
