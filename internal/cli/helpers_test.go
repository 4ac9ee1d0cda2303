package cli

import (
	"bytes"
	"context"
	stderrors "errors"
	"testing"
	"time"

	"practice-log/internal/api"
	"practice-log/internal/calendar"
	"practice-log/internal/config"
	"practice-log/internal/domain"
	"practice-log/internal/errors"
	"practice-log/internal/flow"
	"practice-log/internal/repository"
	"practice-log/internal/repository/memory"
)

func testConfig() *config.Config {
	cfg := config.NewConfig()
	cfg.Store.Backend = config.BackendMemory
	cfg.Application.LogDir = ""
	return cfg
}

// setupTestApp wires the real BusinessAPI over an in-memory store and
// captures output.
func setupTestApp(t *testing.T) (*App, *bytes.Buffer, *memory.Store) {
	t.Helper()
	store := memory.New()
	out := &bytes.Buffer{}
	app := NewAppWithStore(store, testConfig()).
		WithOutput(out).
		WithPrompter(&fakePrompter{t: t})
	return app, out, store
}

func setupFailingApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	app := NewAppWithStore(failingStore{}, testConfig()).
		WithOutput(out).
		WithPrompter(&fakePrompter{t: t})
	return app, out
}

// seed creates one record per input directly in the store.
func seed(t *testing.T, store repository.Store, records ...*repository.Record) {
	t.Helper()
	for _, r := range records {
		if err := store.CreateRecord(context.Background(), r); err != nil {
			t.Fatal(err)
		}
	}
}

func daysAgo(n int) time.Time {
	return time.Now().AddDate(0, 0, -n)
}

// recordDate formats t the way records store dates by default.
func recordDate(t time.Time) string {
	return t.Format("1/2/2006")
}

// failingStore rejects every call, like an unreachable backend.
type failingStore struct{}

var errUnreachable = stderrors.New("connection refused")

func (failingStore) CreateRecord(context.Context, *repository.Record) error {
	return errors.NewRemoteError("createPracticeLog", errUnreachable)
}

func (failingStore) ListRecords(context.Context, repository.ListOptions) (*repository.Page, error) {
	return nil, errors.NewRemoteError("listPracticeLogs", errUnreachable)
}

func (failingStore) GetRecord(context.Context, string) (*repository.Record, error) {
	return nil, errors.NewRemoteError("getPracticeLog", errUnreachable)
}

func (failingStore) UpdateRecord(context.Context, *repository.Record) error {
	return errors.NewRemoteError("updatePracticeLog", errUnreachable)
}

func (failingStore) DeleteRecord(context.Context, string) error {
	return errors.NewRemoteError("deletePracticeLog", errUnreachable)
}

func (failingStore) Close() error { return nil }

// fakePrompter answers prompts from canned values.
type fakePrompter struct {
	t        *testing.T
	date     time.Time
	category domain.Category
	drill    string
	// fills are applied to the form on successive FillForm calls.
	fills    []func(*flow.Form)
	confirms []bool
	err      error

	fillCalls int
	titles    []string
}

func (p *fakePrompter) PickDate(month calendar.Month, today time.Time) (time.Time, error) {
	if p.err != nil {
		return time.Time{}, p.err
	}
	if !month.Contains(today) {
		p.t.Errorf("date picker opened on %s, want the month of %s", month.Title(), today.Format("2006-01-02"))
	}
	if p.date.IsZero() {
		return today, nil
	}
	return p.date, nil
}

func (p *fakePrompter) PickCategory(categories []api.CategoryInfo) (domain.Category, error) {
	return p.category, nil
}

func (p *fakePrompter) PickDrill(category domain.Category, drills []string) (string, error) {
	return p.drill, nil
}

func (p *fakePrompter) FillForm(form *flow.Form) error {
	if p.fillCalls >= len(p.fills) {
		return ErrCancelled
	}
	p.fills[p.fillCalls](form)
	p.fillCalls++
	return nil
}

func (p *fakePrompter) Confirm(title string) (bool, error) {
	p.titles = append(p.titles, title)
	if len(p.confirms) == 0 {
		return false, nil
	}
	ok := p.confirms[0]
	p.confirms = p.confirms[1:]
	return ok, nil
}
