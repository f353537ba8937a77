/*
Package shell holds the application state and drives the generation flow.

An App owns the current plan, the generated product visual, the source photo,
the logo, the saved history and the activity log. Front ends (the CLI and the
local HTTP API) call its operations and render Snapshot.

Content generation moves the app through idle → analyzing → complete | error.
Product visual and logo generation run beside it, at most one of each at a time.
Each of those jobs carries a cancel token: a canceled job never changes state,
and its result is dropped when it eventually arrives.
*/
package shell

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/khanglvm/marketing-support/internal/gateway"
	"github.com/khanglvm/marketing-support/internal/history"
	"github.com/khanglvm/marketing-support/internal/metrics"
	"github.com/khanglvm/marketing-support/internal/search"
	"github.com/rs/zerolog/log"
)

// Phase is the content generation state.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseAnalyzing Phase = "analyzing"
	PhaseComplete  Phase = "complete"
	PhaseError     Phase = "error"
)

// Generator is the AI gateway as seen by the shell.
type Generator interface {
	GenerateContent(ctx context.Context, in gateway.ContentInput) (*gateway.MarketingPlan, error)
	GenerateProductVisual(ctx context.Context, productName string, source *gateway.InlineImage) (string, error)
	GenerateLogo(ctx context.Context, brandName string, style gateway.LogoStyle) (string, error)
}

// Options configures an App. All fields are optional.
type Options struct {
	Metrics *metrics.Registry

	// Now overrides the clock used for history ids and activity lines.
	Now func() time.Time

	// OnImageGenerated is called with the data URI of each product visual that
	// was applied. It is not called for canceled or failed jobs.
	OnImageGenerated func(dataURI string)
}

// job is an in-flight visual or logo generation.
type job struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// App is the application state. It is safe for concurrent use.
type App struct {
	gen      Generator
	history  *history.Store
	settings *history.Settings
	metrics  *metrics.Registry
	now      func() time.Time
	onImage  func(string)

	mu        sync.Mutex
	phase     Phase
	lastErr   error
	plan      *gateway.MarketingPlan
	link      string
	image     string
	source    *gateway.InlineImage
	logo      string
	logoBrand string
	items     []history.Item
	email     string
	activity  activityLog
	visualJob *job
	logoJob   *job
}

// New creates an App and loads saved history and settings.
func New(ctx context.Context, gen Generator, store *history.Store, settings *history.Settings, opts Options) *App {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	a := &App{
		gen:      gen,
		history:  store,
		settings: settings,
		metrics:  opts.Metrics,
		now:      now,
		onImage:  opts.OnImageGenerated,
		phase:    PhaseIdle,
		activity: activityLog{now: now},
	}

	a.items = store.Load(ctx)
	if email, err := settings.Email(ctx); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("failed to load saved email")
	} else {
		a.email = email
	}

	a.activity.add("Marketing support started")
	return a
}

// Submit generates a marketing plan for the input.
//
// The current plan and visual are discarded as soon as the request starts. On
// success the plan is saved at the head of history. On failure the app enters
// PhaseError and nothing is saved.
func (a *App) Submit(ctx context.Context, in gateway.ContentInput) (*gateway.MarketingPlan, error) {
	if in.Empty() {
		return nil, ErrEmptyInput
	}

	a.mu.Lock()
	if a.phase == PhaseAnalyzing {
		a.mu.Unlock()
		return nil, ErrBusy
	}
	a.phase = PhaseAnalyzing
	a.lastErr = nil
	a.plan = nil
	a.image = ""
	a.link = in.Link
	a.source = in.Image
	if a.visualJob != nil {
		a.visualJob.cancel()
		a.visualJob = nil
	}
	if in.Link != "" {
		a.activity.add("Analyzing product link %s", in.Link)
	} else {
		a.activity.add("Analyzing product photo")
	}
	a.mu.Unlock()

	plan, err := a.gen.GenerateContent(ctx, in)

	a.mu.Lock()
	defer a.mu.Unlock()

	if err != nil {
		a.phase = PhaseError
		a.lastErr = err
		a.activity.add("An error occurred, please retry")
		a.count(ctx, "plan", err)
		log.Ctx(ctx).Error().Err(err).Msg("content generation failed")
		return nil, err
	}

	item := history.NewItem(a.now(), in.Link, *plan)
	a.items = history.Prepend(a.items, item)
	a.persist(ctx)

	a.plan = plan
	a.phase = PhaseComplete
	a.activity.add("Content ready for %s", plan.ProductName)
	a.count(ctx, "plan", nil)

	out := *plan
	return &out, nil
}

// GenerateVisual generates the product visual for the current plan, restyling
// the source photo when there is one. A successful visual is attached to every
// history entry with the same product name.
func (a *App) GenerateVisual(ctx context.Context) (string, error) {
	a.mu.Lock()
	if a.plan == nil {
		a.mu.Unlock()
		return "", ErrNoPlan
	}
	if a.visualJob != nil {
		a.mu.Unlock()
		return "", ErrBusy
	}
	j := newJob(ctx)
	a.visualJob = j
	name := a.plan.ProductName
	source := a.source
	a.activity.add("Generating product visual for %s", name)
	a.mu.Unlock()

	uri, err := a.runJob(j, func(ctx context.Context) (string, error) {
		return a.gen.GenerateProductVisual(ctx, name, source)
	})

	a.mu.Lock()
	if a.visualJob == j {
		a.visualJob = nil
	} else {
		err = ErrCanceled
	}
	if err != nil {
		a.finishFailed(ctx, "visual", err)
		a.mu.Unlock()
		return "", err
	}

	a.image = uri
	updated, n := history.AttachImage(a.items, name, uri)
	if n > 0 {
		a.items = updated
		a.persist(ctx)
	}
	a.activity.add("Product visual ready")
	a.count(ctx, "visual", nil)
	onImage := a.onImage
	a.mu.Unlock()

	if onImage != nil {
		onImage(uri)
	}
	return uri, nil
}

// CancelVisual cancels the in-flight visual job. It reports whether a job was
// running. The loading state clears immediately.
func (a *App) CancelVisual() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.visualJob == nil {
		return false
	}
	a.visualJob.cancel()
	a.visualJob = nil
	a.activity.add("Product visual canceled")
	return true
}

// GenerateLogo generates a logo for brand. The logo is kept in memory only.
func (a *App) GenerateLogo(ctx context.Context, brand string, style gateway.LogoStyle) (string, error) {
	brand = strings.TrimSpace(brand)
	if brand == "" {
		return "", &ValidationError{Field: "brand", Message: "enter a brand name"}
	}
	style, err := gateway.ParseLogoStyle(string(style))
	if err != nil {
		return "", &ValidationError{Field: "style", Message: err.Error()}
	}

	a.mu.Lock()
	if a.logoJob != nil {
		a.mu.Unlock()
		return "", ErrBusy
	}
	j := newJob(ctx)
	a.logoJob = j
	a.logo = ""
	a.activity.add("Generating %s logo for %s", style, brand)
	a.mu.Unlock()

	uri, err := a.runJob(j, func(ctx context.Context) (string, error) {
		return a.gen.GenerateLogo(ctx, brand, style)
	})

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.logoJob == j {
		a.logoJob = nil
	} else {
		err = ErrCanceled
	}
	if err != nil {
		a.finishFailed(ctx, "logo", err)
		return "", err
	}

	a.logo = uri
	a.logoBrand = brand
	a.activity.add("Logo ready for %s", brand)
	a.count(ctx, "logo", nil)
	return uri, nil
}

// CancelLogo cancels the in-flight logo job and reports whether one was running.
func (a *App) CancelLogo() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.logoJob == nil {
		return false
	}
	a.logoJob.cancel()
	a.logoJob = nil
	a.activity.add("Logo canceled")
	return true
}

func newJob(parent context.Context) *job {
	ctx, cancel := context.WithCancel(parent)
	return &job{ctx: ctx, cancel: cancel}
}

// runJob calls fn unless the token is already canceled, and converts any result
// that arrives after cancellation into ErrCanceled. Callers also treat a job that
// is no longer registered on the App as canceled.
func (a *App) runJob(j *job, fn func(context.Context) (string, error)) (string, error) {
	defer j.cancel()

	if j.ctx.Err() != nil {
		return "", ErrCanceled
	}
	uri, err := fn(j.ctx)
	if j.ctx.Err() != nil {
		return "", ErrCanceled
	}
	return uri, err
}

// finishFailed records a failed or canceled job. Callers hold a.mu.
func (a *App) finishFailed(ctx context.Context, kind string, err error) {
	if errors.Is(err, ErrCanceled) {
		log.Ctx(ctx).Info().Str("kind", kind).Msg("discarding result of canceled job")
		a.metrics.Inc(ctx, metrics.CanceledJobs, map[string]string{"kind": kind}, 1)
		return
	}
	log.Ctx(ctx).Error().Err(err).Str("kind", kind).Msg("generation failed")
	a.activity.add("An error occurred, please retry")
	a.count(ctx, kind, err)
}

// SelectHistory makes a saved entry current. The source photo is cleared and a
// running visual job is canceled. While a plan is being generated the phase
// stays analyzing, so a second submit is still refused.
func (a *App) SelectHistory(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	it, ok := history.Find(a.items, id)
	if !ok {
		return ErrNotFound
	}
	if a.visualJob != nil {
		a.visualJob.cancel()
		a.visualJob = nil
	}

	plan := it.Plan
	a.plan = &plan
	a.image = it.ImageURL
	a.link = it.ProductLink
	a.source = nil
	// A running content request keeps the busy gate closed.
	if a.phase != PhaseAnalyzing {
		a.phase = PhaseComplete
		a.lastErr = nil
	}
	a.activity.add("Opened %s from history", it.ProductName)
	return nil
}

// ClearHistory removes all saved entries. The current plan stays on screen.
func (a *App) ClearHistory(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.history.Clear(ctx); err != nil {
		return err
	}
	a.items = []history.Item{}
	a.activity.add("History cleared")
	return nil
}

// SaveEmail validates and stores the user's email address.
func (a *App) SaveEmail(ctx context.Context, email string) error {
	saved, err := a.settings.SaveEmail(ctx, email)
	if err != nil {
		var invalid *history.InvalidEmailError
		if errors.As(err, &invalid) {
			return &ValidationError{Field: "email", Message: "the address must contain '@'"}
		}
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.email = saved
	a.activity.add("Email saved")
	return nil
}

// Email returns the saved email address.
func (a *App) Email() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.email
}

// History returns a copy of the saved entries, newest first.
func (a *App) History() []history.Item {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]history.Item, len(a.items))
	copy(out, a.items)
	return out
}

// SearchHistory returns saved entries matching query, best match first.
func (a *App) SearchHistory(query string, limit int) ([]search.Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, &ValidationError{Field: "q", Message: "enter search terms"}
	}
	return search.Plans(a.History(), query, limit)
}

// persist writes history. Storage failures are logged; the in-memory list stays
// authoritative for the session. Callers hold a.mu.
func (a *App) persist(ctx context.Context) {
	if err := a.history.Save(ctx, a.items); err != nil {
		log.Ctx(ctx).Warn().Err(err).Int("items", len(a.items)).Msg("failed to persist history")
		return
	}
	a.metrics.Inc(ctx, metrics.HistoryWrites, nil, 1)
}

func (a *App) count(ctx context.Context, kind string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	a.metrics.Inc(ctx, metrics.Generations, map[string]string{"kind": kind, "outcome": outcome}, 1)
}
