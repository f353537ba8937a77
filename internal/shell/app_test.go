package shell

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/khanglvm/marketing-support/internal/gateway"
	"github.com/khanglvm/marketing-support/internal/history"
	"github.com/khanglvm/marketing-support/internal/metrics"
	"github.com/khanglvm/marketing-support/internal/storage"
)

const testImage = "data:image/png;base64,QUJD"

// fakeGen is a scripted Generator. Blocking channels, when set, hold a call
// until they are closed.
type fakeGen struct {
	mu sync.Mutex

	plan       gateway.MarketingPlan
	contentErr error
	visualErr  error

	contentStarted chan struct{}
	contentRelease chan struct{}
	visualStarted  chan struct{}
	visualRelease  chan struct{}
	logoStarted    chan struct{}
	logoRelease    chan struct{}

	contentCalls int
	visualCalls  int
	logoCalls    int
	lastSource   *gateway.InlineImage
	lastName     string
}

func (f *fakeGen) GenerateContent(ctx context.Context, in gateway.ContentInput) (*gateway.MarketingPlan, error) {
	f.mu.Lock()
	f.contentCalls++
	f.mu.Unlock()
	hold(f.contentStarted, f.contentRelease)
	if f.contentErr != nil {
		return nil, f.contentErr
	}
	plan := f.plan
	plan.Normalize()
	return &plan, nil
}

func (f *fakeGen) GenerateProductVisual(ctx context.Context, name string, source *gateway.InlineImage) (string, error) {
	f.mu.Lock()
	f.visualCalls++
	f.lastName = name
	f.lastSource = source
	f.mu.Unlock()
	hold(f.visualStarted, f.visualRelease)
	if f.visualErr != nil {
		return "", f.visualErr
	}
	return testImage, nil
}

func (f *fakeGen) GenerateLogo(ctx context.Context, brand string, style gateway.LogoStyle) (string, error) {
	f.mu.Lock()
	f.logoCalls++
	f.mu.Unlock()
	hold(f.logoStarted, f.logoRelease)
	return "data:image/png;base64,TE9HTw==", nil
}

func hold(started, release chan struct{}) {
	if started != nil {
		close(started)
	}
	if release != nil {
		<-release
	}
}

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

// now returns a time one second later on every call.
func (c *testClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

type fixture struct {
	app      *App
	gen      *fakeGen
	kv       *storage.SQLiteStorage
	store    *history.Store
	images   []string
	imagesMu sync.Mutex
}

func newFixture(t *testing.T, gen *fakeGen) *fixture {
	t.Helper()
	kv := storage.NewStorage(t.TempDir())
	if err := kv.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { kv.Close() })

	f := &fixture{gen: gen, kv: kv, store: history.NewStore(kv)}
	clock := &testClock{t: time.UnixMilli(1700000000000)}
	f.app = New(context.Background(), gen, f.store, history.NewSettings(kv), Options{
		Metrics: metrics.NewRegistry(),
		Now:     clock.now,
		OnImageGenerated: func(uri string) {
			f.imagesMu.Lock()
			f.images = append(f.images, uri)
			f.imagesMu.Unlock()
		},
	})
	return f
}

func (f *fixture) imageCallbacks() int {
	f.imagesMu.Lock()
	defer f.imagesMu.Unlock()
	return len(f.images)
}

func widgetGen() *fakeGen {
	return &fakeGen{plan: gateway.MarketingPlan{
		ProductName: "Widget",
		PostCaption: "Buy it",
		Hashtags:    []string{"#a", "#b"},
		Sources:     []string{"https://example.com/widget"},
	}}
}

func TestNewStartsIdle(t *testing.T) {
	f := newFixture(t, widgetGen())
	s := f.app.Snapshot()

	if s.Phase != PhaseIdle {
		t.Errorf("Phase = %s, want idle", s.Phase)
	}
	if s.Plan != nil || s.ImageURL != "" {
		t.Error("fresh app should have no plan or image")
	}
	if len(s.Activity) != 1 || !strings.HasSuffix(s.Activity[0], "Marketing support started") {
		t.Errorf("Activity = %v", s.Activity)
	}
}

func TestSubmitLinkSuccess(t *testing.T) {
	f := newFixture(t, widgetGen())
	ctx := context.Background()

	plan, err := f.app.Submit(ctx, gateway.ContentInput{
		Link:  "https://shop.example/widget",
		Price: "5000",
		Phone: "09123456",
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if plan.ProductName != "Widget" {
		t.Errorf("ProductName = %q", plan.ProductName)
	}

	s := f.app.Snapshot()
	if s.Phase != PhaseComplete {
		t.Errorf("Phase = %s, want complete", s.Phase)
	}
	if s.Plan == nil || s.Plan.PostingTimeSuggestion != gateway.PlaceholderPostingTime {
		t.Errorf("Plan = %+v", s.Plan)
	}
	if len(s.Plan.Sources) != 1 {
		t.Errorf("Sources = %v", s.Plan.Sources)
	}

	if len(s.History) != 1 {
		t.Fatalf("History has %d items, want 1", len(s.History))
	}
	it := s.History[0]
	if it.ID != strconv.FormatInt(it.Timestamp, 10) || it.Timestamp <= 1700000000000 {
		t.Errorf("ID %q should be the creation time %d in epoch ms", it.ID, it.Timestamp)
	}
	if it.Status != history.StatusDraft || it.ProductLink != "https://shop.example/widget" {
		t.Errorf("unexpected item: %+v", it)
	}

	saved := f.store.Load(ctx)
	if len(saved) != 1 || saved[0].ID != it.ID {
		t.Errorf("persisted history = %+v", saved)
	}
}

func TestSubmitEmptyInput(t *testing.T) {
	f := newFixture(t, widgetGen())

	_, err := f.app.Submit(context.Background(), gateway.ContentInput{Price: "5000"})
	if !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("err = %v, want ErrEmptyInput", err)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("ErrEmptyInput should be a *ValidationError")
	}
	if f.gen.contentCalls != 0 {
		t.Errorf("made %d requests, want 0", f.gen.contentCalls)
	}
	if s := f.app.Snapshot(); s.Phase != PhaseIdle {
		t.Errorf("Phase = %s, want idle", s.Phase)
	}
}

func TestSubmitFailure(t *testing.T) {
	gen := &fakeGen{contentErr: &gateway.FormatError{Message: "AI data format error"}}
	f := newFixture(t, gen)
	ctx := context.Background()

	_, err := f.app.Submit(ctx, gateway.ContentInput{Link: "https://x"})
	var ferr *gateway.FormatError
	if !errors.As(err, &ferr) {
		t.Fatalf("err = %v, want *gateway.FormatError", err)
	}

	s := f.app.Snapshot()
	if s.Phase != PhaseError {
		t.Errorf("Phase = %s, want error", s.Phase)
	}
	if s.Error == "" {
		t.Error("Error should describe the failure")
	}
	if s.Plan != nil {
		t.Error("no plan should be shown after a failure")
	}
	if !strings.HasSuffix(s.Activity[0], "An error occurred, please retry") {
		t.Errorf("Activity[0] = %q", s.Activity[0])
	}
	if _, ok, _ := f.kv.GetItem(ctx, history.HistoryKey); ok {
		t.Error("nothing should be persisted on failure")
	}

	// Recovering from the error state.
	gen.contentErr = nil
	gen.plan = gateway.MarketingPlan{ProductName: "Widget"}
	if _, err := f.app.Submit(ctx, gateway.ContentInput{Link: "https://x"}); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if s := f.app.Snapshot(); s.Phase != PhaseComplete || s.Error != "" {
		t.Errorf("after retry: phase %s, error %q", s.Phase, s.Error)
	}
}

func TestSubmitWhileAnalyzing(t *testing.T) {
	gen := widgetGen()
	gen.contentStarted = make(chan struct{})
	gen.contentRelease = make(chan struct{})
	f := newFixture(t, gen)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := f.app.Submit(ctx, gateway.ContentInput{Link: "https://x"})
		done <- err
	}()
	<-gen.contentStarted

	if s := f.app.Snapshot(); s.Phase != PhaseAnalyzing {
		t.Errorf("Phase = %s, want analyzing", s.Phase)
	}
	if _, err := f.app.Submit(ctx, gateway.ContentInput{Link: "https://y"}); !errors.Is(err, ErrBusy) {
		t.Errorf("second Submit err = %v, want ErrBusy", err)
	}

	close(gen.contentRelease)
	if err := <-done; err != nil {
		t.Fatalf("first Submit failed: %v", err)
	}
	if gen.contentCalls != 1 {
		t.Errorf("contentCalls = %d, want 1", gen.contentCalls)
	}
}

func TestSubmitKeepsTwentyNewest(t *testing.T) {
	gen := widgetGen()
	f := newFixture(t, gen)
	ctx := context.Background()

	for i := 0; i < history.MaxItems+3; i++ {
		gen.plan.ProductName = fmt.Sprintf("Widget %d", i)
		if _, err := f.app.Submit(ctx, gateway.ContentInput{Link: "https://x"}); err != nil {
			t.Fatalf("Submit %d failed: %v", i, err)
		}
	}

	items := f.store.Load(ctx)
	if len(items) != history.MaxItems {
		t.Fatalf("persisted %d items, want %d", len(items), history.MaxItems)
	}
	if items[0].ProductName != fmt.Sprintf("Widget %d", history.MaxItems+2) {
		t.Errorf("newest = %q", items[0].ProductName)
	}
	if items[len(items)-1].ProductName != "Widget 3" {
		t.Errorf("oldest = %q, want Widget 3", items[len(items)-1].ProductName)
	}
}

func TestSubmitDiscardsCurrentImage(t *testing.T) {
	gen := widgetGen()
	f := newFixture(t, gen)
	ctx := context.Background()

	if _, err := f.app.Submit(ctx, gateway.ContentInput{Link: "https://x"}); err != nil {
		t.Fatal(err)
	}
	if _, err := f.app.GenerateVisual(ctx); err != nil {
		t.Fatal(err)
	}

	gen.contentStarted = make(chan struct{})
	gen.contentRelease = make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		f.app.Submit(ctx, gateway.ContentInput{Link: "https://y"})
	}()
	<-gen.contentStarted

	s := f.app.Snapshot()
	if s.Plan != nil || s.ImageURL != "" {
		t.Error("plan and image should be cleared while analyzing")
	}
	close(gen.contentRelease)
	<-done
}

func TestGenerateVisual(t *testing.T) {
	f := newFixture(t, widgetGen())
	ctx := context.Background()

	if _, err := f.app.GenerateVisual(ctx); !errors.Is(err, ErrNoPlan) {
		t.Fatalf("err = %v, want ErrNoPlan", err)
	}

	photo := &gateway.InlineImage{Data: []byte("jpg"), MIMEType: "image/jpeg"}
	if _, err := f.app.Submit(ctx, gateway.ContentInput{Image: photo}); err != nil {
		t.Fatal(err)
	}

	uri, err := f.app.GenerateVisual(ctx)
	if err != nil {
		t.Fatalf("GenerateVisual failed: %v", err)
	}
	if uri != testImage {
		t.Errorf("uri = %q", uri)
	}
	if f.gen.lastSource != photo || f.gen.lastName != "Widget" {
		t.Errorf("visual request used name %q source %v", f.gen.lastName, f.gen.lastSource)
	}

	s := f.app.Snapshot()
	if s.ImageURL != testImage || s.VisualLoading {
		t.Errorf("ImageURL = %q, loading = %v", s.ImageURL, s.VisualLoading)
	}
	if f.imageCallbacks() != 1 {
		t.Errorf("OnImageGenerated called %d times, want 1", f.imageCallbacks())
	}
	if saved := f.store.Load(ctx); saved[0].ImageURL != testImage {
		t.Error("visual should be persisted on the matching history entry")
	}
}

func TestGenerateVisualAttachesToAllMatches(t *testing.T) {
	f := newFixture(t, widgetGen())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := f.app.Submit(ctx, gateway.ContentInput{Link: "https://x"}); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := f.app.GenerateVisual(ctx); err != nil {
		t.Fatal(err)
	}
	for i, it := range f.store.Load(ctx) {
		if it.ImageURL != testImage {
			t.Errorf("item %d has no image", i)
		}
	}
}

func TestCancelVisualDiscardsResult(t *testing.T) {
	gen := widgetGen()
	f := newFixture(t, gen)
	ctx := context.Background()

	if _, err := f.app.Submit(ctx, gateway.ContentInput{Link: "https://x"}); err != nil {
		t.Fatal(err)
	}

	gen.visualStarted = make(chan struct{})
	gen.visualRelease = make(chan struct{})
	done := make(chan error, 1)
	go func() {
		_, err := f.app.GenerateVisual(ctx)
		done <- err
	}()
	<-gen.visualStarted

	if !f.app.Snapshot().VisualLoading {
		t.Error("VisualLoading should be set while the job runs")
	}
	if !f.app.CancelVisual() {
		t.Fatal("CancelVisual should report a running job")
	}
	if f.app.Snapshot().VisualLoading {
		t.Error("VisualLoading should clear on cancel")
	}

	// The backend replies after the cancel.
	close(gen.visualRelease)
	if err := <-done; !errors.Is(err, ErrCanceled) {
		t.Fatalf("err = %v, want ErrCanceled", err)
	}

	s := f.app.Snapshot()
	if s.ImageURL != "" {
		t.Errorf("ImageURL = %q, want empty", s.ImageURL)
	}
	if s.VisualLoading {
		t.Error("VisualLoading should stay cleared")
	}
	if f.imageCallbacks() != 0 {
		t.Errorf("OnImageGenerated called %d times, want 0", f.imageCallbacks())
	}
	if saved := f.store.Load(ctx); saved[0].ImageURL != "" {
		t.Error("canceled visual must not be persisted")
	}
	if f.app.CancelVisual() {
		t.Error("CancelVisual with nothing running should return false")
	}
}

func TestCanceledContextSkipsDispatch(t *testing.T) {
	f := newFixture(t, widgetGen())
	if _, err := f.app.Submit(context.Background(), gateway.ContentInput{Link: "https://x"}); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := f.app.GenerateVisual(ctx); !errors.Is(err, ErrCanceled) {
		t.Fatalf("err = %v, want ErrCanceled", err)
	}
	if f.gen.visualCalls != 0 {
		t.Errorf("visualCalls = %d, want 0", f.gen.visualCalls)
	}
}

func TestGenerateVisualBusy(t *testing.T) {
	gen := widgetGen()
	f := newFixture(t, gen)
	ctx := context.Background()
	if _, err := f.app.Submit(ctx, gateway.ContentInput{Link: "https://x"}); err != nil {
		t.Fatal(err)
	}

	gen.visualStarted = make(chan struct{})
	gen.visualRelease = make(chan struct{})
	done := make(chan error, 1)
	go func() {
		_, err := f.app.GenerateVisual(ctx)
		done <- err
	}()
	<-gen.visualStarted

	if _, err := f.app.GenerateVisual(ctx); !errors.Is(err, ErrBusy) {
		t.Errorf("err = %v, want ErrBusy", err)
	}
	close(gen.visualRelease)
	if err := <-done; err != nil {
		t.Fatalf("first visual failed: %v", err)
	}
}

func TestGenerateVisualFailure(t *testing.T) {
	gen := widgetGen()
	gen.visualErr = &gateway.GenerationError{Kind: gateway.KindVisual}
	f := newFixture(t, gen)
	ctx := context.Background()
	if _, err := f.app.Submit(ctx, gateway.ContentInput{Link: "https://x"}); err != nil {
		t.Fatal(err)
	}

	_, err := f.app.GenerateVisual(ctx)
	var gerr *gateway.GenerationError
	if !errors.As(err, &gerr) {
		t.Fatalf("err = %v, want *gateway.GenerationError", err)
	}
	s := f.app.Snapshot()
	if s.ImageURL != "" || s.VisualLoading {
		t.Errorf("ImageURL = %q, loading = %v", s.ImageURL, s.VisualLoading)
	}
	if s.Phase != PhaseComplete {
		t.Errorf("visual failure changed phase to %s", s.Phase)
	}
}

func TestGenerateLogo(t *testing.T) {
	f := newFixture(t, widgetGen())
	ctx := context.Background()

	if _, err := f.app.GenerateLogo(ctx, "  ", gateway.StyleModern); err == nil {
		t.Error("empty brand should be rejected")
	}
	if _, err := f.app.GenerateLogo(ctx, "Acme", gateway.LogoStyle("gothic")); err == nil {
		t.Error("unknown style should be rejected")
	}
	if f.gen.logoCalls != 0 {
		t.Fatalf("invalid input reached the backend")
	}

	uri, err := f.app.GenerateLogo(ctx, "Acme", gateway.StyleLuxury)
	if err != nil {
		t.Fatalf("GenerateLogo failed: %v", err)
	}
	s := f.app.Snapshot()
	if s.Logo != uri || s.LogoBrand != "Acme" || s.LogoLoading {
		t.Errorf("logo state = %q %q %v", s.Logo, s.LogoBrand, s.LogoLoading)
	}
	if _, ok, _ := f.kv.GetItem(ctx, history.HistoryKey); ok {
		t.Error("logos must not touch history")
	}
}

func TestCancelLogo(t *testing.T) {
	gen := widgetGen()
	gen.logoStarted = make(chan struct{})
	gen.logoRelease = make(chan struct{})
	f := newFixture(t, gen)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := f.app.GenerateLogo(ctx, "Acme", gateway.StyleModern)
		done <- err
	}()
	<-gen.logoStarted

	if !f.app.CancelLogo() {
		t.Fatal("CancelLogo should report a running job")
	}
	close(gen.logoRelease)
	if err := <-done; !errors.Is(err, ErrCanceled) {
		t.Fatalf("err = %v, want ErrCanceled", err)
	}
	if s := f.app.Snapshot(); s.Logo != "" || s.LogoLoading {
		t.Errorf("logo state after cancel = %q, loading %v", s.Logo, s.LogoLoading)
	}
}

func TestSelectHistory(t *testing.T) {
	gen := widgetGen()
	f := newFixture(t, gen)
	ctx := context.Background()

	photo := &gateway.InlineImage{Data: []byte("x"), MIMEType: "image/png"}
	if _, err := f.app.Submit(ctx, gateway.ContentInput{Image: photo}); err != nil {
		t.Fatal(err)
	}
	if _, err := f.app.GenerateVisual(ctx); err != nil {
		t.Fatal(err)
	}
	first := f.app.History()[0]

	gen.plan.ProductName = "Gadget"
	if _, err := f.app.Submit(ctx, gateway.ContentInput{Link: "https://gadget"}); err != nil {
		t.Fatal(err)
	}

	if err := f.app.SelectHistory("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if err := f.app.SelectHistory(first.ID); err != nil {
		t.Fatalf("SelectHistory failed: %v", err)
	}

	s := f.app.Snapshot()
	if s.Plan == nil || s.Plan.ProductName != "Widget" {
		t.Errorf("Plan = %+v", s.Plan)
	}
	if s.ImageURL != testImage {
		t.Errorf("ImageURL = %q, want the saved visual", s.ImageURL)
	}
	if s.HasSource {
		t.Error("source photo should be cleared")
	}
	if s.Phase != PhaseComplete {
		t.Errorf("Phase = %s", s.Phase)
	}
}

func TestSelectHistoryWhileAnalyzingStaysBusy(t *testing.T) {
	gen := widgetGen()
	f := newFixture(t, gen)
	ctx := context.Background()

	if _, err := f.app.Submit(ctx, gateway.ContentInput{Link: "https://x"}); err != nil {
		t.Fatal(err)
	}
	first := f.app.History()[0]

	gen.contentStarted = make(chan struct{})
	gen.contentRelease = make(chan struct{})
	done := make(chan error, 1)
	go func() {
		_, err := f.app.Submit(ctx, gateway.ContentInput{Link: "https://y"})
		done <- err
	}()
	<-gen.contentStarted

	if err := f.app.SelectHistory(first.ID); err != nil {
		t.Fatalf("SelectHistory failed: %v", err)
	}
	if s := f.app.Snapshot(); s.Phase != PhaseAnalyzing {
		t.Errorf("Phase after select = %s, want analyzing", s.Phase)
	}
	if _, err := f.app.Submit(ctx, gateway.ContentInput{Link: "https://z"}); !errors.Is(err, ErrBusy) {
		t.Errorf("Submit during generation err = %v, want ErrBusy", err)
	}

	close(gen.contentRelease)
	if err := <-done; err != nil {
		t.Fatalf("running Submit failed: %v", err)
	}
	if gen.contentCalls != 2 {
		t.Errorf("contentCalls = %d, want 2", gen.contentCalls)
	}
	if s := f.app.Snapshot(); s.Phase != PhaseComplete {
		t.Errorf("Phase = %s, want complete", s.Phase)
	}
}

func TestClearHistory(t *testing.T) {
	f := newFixture(t, widgetGen())
	ctx := context.Background()

	if _, err := f.app.Submit(ctx, gateway.ContentInput{Link: "https://x"}); err != nil {
		t.Fatal(err)
	}
	if err := f.app.ClearHistory(ctx); err != nil {
		t.Fatalf("ClearHistory failed: %v", err)
	}
	if n := len(f.app.History()); n != 0 {
		t.Errorf("History has %d items", n)
	}
	if items := f.store.Load(ctx); len(items) != 0 {
		t.Errorf("persisted %d items after clear", len(items))
	}
	if f.app.Snapshot().Plan == nil {
		t.Error("clearing history should keep the current plan")
	}
}

func TestSearchHistory(t *testing.T) {
	f := newFixture(t, widgetGen())
	ctx := context.Background()

	if _, err := f.app.Submit(ctx, gateway.ContentInput{Link: "https://x"}); err != nil {
		t.Fatal(err)
	}

	results, err := f.app.SearchHistory("widget", 5)
	if err != nil {
		t.Fatalf("SearchHistory failed: %v", err)
	}
	if len(results) != 1 || results[0].ProductName != "Widget" {
		t.Errorf("results = %+v", results)
	}

	var verr *ValidationError
	if _, err := f.app.SearchHistory("  ", 5); !errors.As(err, &verr) {
		t.Errorf("blank query error = %v, want *ValidationError", err)
	}
}

func TestSaveEmail(t *testing.T) {
	f := newFixture(t, widgetGen())
	ctx := context.Background()

	err := f.app.SaveEmail(ctx, "nobody")
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "email" {
		t.Fatalf("err = %v, want email ValidationError", err)
	}
	if f.app.Email() != "" {
		t.Error("invalid email should not be kept")
	}

	if err := f.app.SaveEmail(ctx, "me@example.com"); err != nil {
		t.Fatalf("SaveEmail failed: %v", err)
	}
	if f.app.Email() != "me@example.com" {
		t.Errorf("Email = %q", f.app.Email())
	}

	// A new App sees the saved address.
	again := New(ctx, f.gen, f.store, history.NewSettings(f.kv), Options{})
	if again.Email() != "me@example.com" {
		t.Errorf("reloaded Email = %q", again.Email())
	}
}

func TestHistorySurvivesRestart(t *testing.T) {
	f := newFixture(t, widgetGen())
	ctx := context.Background()
	if _, err := f.app.Submit(ctx, gateway.ContentInput{Link: "https://x"}); err != nil {
		t.Fatal(err)
	}

	again := New(ctx, f.gen, f.store, history.NewSettings(f.kv), Options{})
	if n := len(again.History()); n != 1 {
		t.Errorf("reloaded history has %d items, want 1", n)
	}
}

func TestActivityLog(t *testing.T) {
	at := time.Date(2026, 1, 2, 15, 4, 5, 0, time.Local)
	l := activityLog{now: func() time.Time { return at }}

	for i := 0; i < MaxActivity+10; i++ {
		l.add("line %d", i)
	}

	lines := l.snapshot()
	if len(lines) != MaxActivity {
		t.Fatalf("kept %d lines, want %d", len(lines), MaxActivity)
	}
	if lines[0] != fmt.Sprintf("[15:04:05] line %d", MaxActivity+9) {
		t.Errorf("newest = %q", lines[0])
	}
	if lines[MaxActivity-1] != "[15:04:05] line 10" {
		t.Errorf("oldest = %q", lines[MaxActivity-1])
	}
}
