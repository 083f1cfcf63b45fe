package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/mangala/internal/api"
	"github.com/alexanderramin/mangala/internal/client"
	"github.com/alexanderramin/mangala/internal/config"
	"github.com/alexanderramin/mangala/internal/conflict"
	"github.com/alexanderramin/mangala/internal/domain"
	"github.com/alexanderramin/mangala/internal/generator"
	"github.com/alexanderramin/mangala/internal/repository"
	"github.com/alexanderramin/mangala/internal/service"
	"github.com/alexanderramin/mangala/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var planningNow = time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

const overlapPlan = `
weddingId: w1
weddingDate: "2026-06-15"
rituals: [poruwa]
events:
  - id: poruwa
    name: Poruwa
    date: "2026-06-15"
    startTime: "10:00"
    endTime: "12:00"
    vendorIds: [v1]
  - id: lunch
    name: Lunch
    date: "2026-06-15"
    startTime: "11:30"
    endTime: "16:00"
    vendorIds: [v1]
vendors:
  - id: v1
    name: Caterer
    serviceTypes: [catering]
`

type testEnv struct {
	app  *App
	repo repository.ConflictRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteConflictRepo(database)
	detector := conflict.New(conflict.WithClock(func() time.Time { return testutil.FixedNow }))
	app := &App{
		Planning: service.NewPlanningService(
			generator.New(nil, generator.WithClock(func() time.Time { return planningNow }))),
		Conflicts: service.NewConflictService(detector, repo, testutil.NewTestUoW(database)),
		Config:    config.Default(t.TempDir()),
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:       func() time.Time { return planningNow },
	}
	return &testEnv{app: app, repo: repo}
}

func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writePlan(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wedding.yaml")
	require.NoError(t, os.WriteFile(path, []byte(overlapPlan), 0o644))
	return path
}

func decodeJSON[T any](t *testing.T, out string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(out), &v), out)
	return v
}

func TestRitualsCommands(t *testing.T) {
	env := newTestEnv(t)

	out, err := executeCmd(t, env.app, "rituals", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Poruwa Ceremony")
	assert.Contains(t, out, "Nalangu")

	out, err = executeCmd(t, env.app, "rituals", "show", "nalangu", "-o", "json")
	require.NoError(t, err)
	tmpl := decodeJSON[domain.RitualTemplate](t, out)
	assert.Equal(t, domain.RitualNalangu, tmpl.ID)
	assert.NotEmpty(t, tmpl.Tasks)

	_, err = executeCmd(t, env.app, "rituals", "show", "church")
	assert.EqualError(t, err, `unknown ritual "church" (see 'mangala rituals list')`)
}

func TestTasksGenerate(t *testing.T) {
	env := newTestEnv(t)

	out, err := executeCmd(t, env.app, "tasks", "generate", "--date", "2026-06-15", "-r", "poruwa", "-o", "json")
	require.NoError(t, err)
	resp := decodeJSON[generator.GenerationResponse](t, out)
	assert.Len(t, resp.Tasks, 6)
	assert.NotNil(t, resp.Conflicts)

	out, err = executeCmd(t, env.app, "tasks", "generate", "--plan", writePlan(t), "-o", "yaml")
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Len(t, doc["tasks"], 6)

	out, err = executeCmd(t, env.app, "tasks", "generate", "--date", "2026-06-15", "-r", "poruwa")
	require.NoError(t, err)
	assert.Contains(t, out, "TASKS (6)")

	_, err = executeCmd(t, env.app, "tasks", "generate", "-r", "poruwa")
	assert.EqualError(t, err, "a wedding date is required: use --plan or --date")
}

func TestTasksTimeline(t *testing.T) {
	env := newTestEnv(t)

	out, err := executeCmd(t, env.app, "tasks", "timeline", "--date", "2026-01-20", "-r", "nalangu,unknown", "-o", "json")
	require.NoError(t, err)
	entries := decodeJSON[[]generator.TimelineEntry](t, out)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.RitualNalangu, entries[0].Ritual)

	out, err = executeCmd(t, env.app, "tasks", "timeline", "--date", "2026-06-15", "-r", "unknown", "-o", "json")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)
}

func TestTasksValidateFails(t *testing.T) {
	env := newTestEnv(t)

	out, err := executeCmd(t, env.app, "tasks", "validate", "--date", "2025-01-10")
	assert.EqualError(t, err, "validation failed with 1 error(s)")
	assert.Contains(t, out, "Ritual selection has errors")
	assert.Contains(t, out, "Wedding date cannot be in the past")

	_, err = executeCmd(t, env.app, "tasks", "validate", "--date", "2026-06-15", "-r", "poruwa")
	assert.NoError(t, err)
}

func TestConflictsDetectSaveAndList(t *testing.T) {
	env := newTestEnv(t)
	plan := writePlan(t)

	out, err := executeCmd(t, env.app, "conflicts", "detect", "--plan", plan)
	require.NoError(t, err)
	assert.NotContains(t, out, "Saved")
	stored, err := env.repo.ListByWedding(context.Background(), "w1", "")
	require.NoError(t, err)
	assert.Empty(t, stored)

	out, err = executeCmd(t, env.app, "conflicts", "detect", "--plan", plan, "--save")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved 3 conflict(s) for wedding w1.")

	out, err = executeCmd(t, env.app, "conflicts", "list", "-w", "w1", "--status", "ACTIVE", "-o", "json")
	require.NoError(t, err)
	assert.Len(t, decodeJSON[[]domain.Conflict](t, out), 3)

	out, err = executeCmd(t, env.app, "conflicts", "list", "-w", "nobody", "-o", "json")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)

	_, err = executeCmd(t, env.app, "conflicts", "list", "-w", "w1", "--status", "open")
	assert.EqualError(t, err, `invalid status "open": use active, resolved or dismissed`)

	_, err = executeCmd(t, env.app, "conflicts", "detect")
	assert.EqualError(t, err, "--plan is required")
}

func TestConflictsResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("by number", func(t *testing.T) {
		env := newTestEnv(t)
		c := testutil.NewTestConflict("w1")
		require.NoError(t, env.repo.Create(ctx, c))

		out, err := executeCmd(t, env.app, "conflicts", "resolve", c.ID, "--option", "2", "-o", "json")
		require.NoError(t, err)
		assert.JSONEq(t, `{"success": true}`, out)

		got, err := env.repo.GetByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.ConflictResolved, got.Status)
		assert.Equal(t, c.ResolutionOptions[1].ID, got.ResolutionID)
	})

	t.Run("unknown option", func(t *testing.T) {
		env := newTestEnv(t)
		c := testutil.NewTestConflict("w1")
		require.NoError(t, env.repo.Create(ctx, c))

		_, err := executeCmd(t, env.app, "conflicts", "resolve", c.ID, "--option", "3")
		assert.ErrorContains(t, err, `has no option "3" (it has 2)`)
	})

	t.Run("picker when interactive", func(t *testing.T) {
		env := newTestEnv(t)
		c := testutil.NewTestConflict("w1")
		require.NoError(t, env.repo.Create(ctx, c))
		env.app.IsInteractive = func() bool { return true }
		var offered *domain.Conflict
		env.app.PickResolution = func(c *domain.Conflict) (string, error) {
			offered = c
			return c.ResolutionOptions[0].ID, nil
		}

		out, err := executeCmd(t, env.app, "conflicts", "resolve", c.ID)
		require.NoError(t, err)
		assert.Contains(t, out, "Resolved "+c.ID)
		require.NotNil(t, offered)
		assert.Equal(t, c.ID, offered.ID)

		got, err := env.repo.GetByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, c.ResolutionOptions[0].ID, got.ResolutionID)
	})

	t.Run("option required without a terminal", func(t *testing.T) {
		env := newTestEnv(t)
		c := testutil.NewTestConflict("w1")
		require.NoError(t, env.repo.Create(ctx, c))

		_, err := executeCmd(t, env.app, "conflicts", "resolve", c.ID)
		assert.EqualError(t, err, "--option is required when not running interactively")
	})

	t.Run("already resolved", func(t *testing.T) {
		env := newTestEnv(t)
		c := testutil.NewTestConflict("w1", testutil.WithConflictStatus(domain.ConflictResolved))
		require.NoError(t, env.repo.Create(ctx, c))

		_, err := executeCmd(t, env.app, "conflicts", "resolve", c.ID, "--option", "1")
		assert.ErrorIs(t, err, service.ErrNotActive)
	})
}

func TestConflictsShowAndDismiss(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	c := testutil.NewTestConflict("w1")
	require.NoError(t, env.repo.Create(ctx, c))

	out, err := executeCmd(t, env.app, "conflicts", "show", c.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Find an alternative vendor")

	_, err = executeCmd(t, env.app, "conflicts", "dismiss", c.ID)
	assert.ErrorContains(t, err, `required flag(s) "reason" not set`)

	out, err = executeCmd(t, env.app, "conflict", "dismiss", c.ID, "--reason", "Two catering teams")
	require.NoError(t, err)
	assert.Contains(t, out, "Dismissed "+c.ID)

	got, err := env.repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ConflictDismissed, got.Status)
	assert.Equal(t, "Two catering teams", got.DismissReason)

	_, err = executeCmd(t, env.app, "conflicts", "show", "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestInvalidOutputFormat(t *testing.T) {
	env := newTestEnv(t)

	_, err := executeCmd(t, env.app, "rituals", "list", "-o", "xml")
	assert.ErrorContains(t, err, "xml")
}

func TestRemoteNeedsClient(t *testing.T) {
	env := newTestEnv(t)

	_, err := executeCmd(t, env.app, "conflicts", "list", "-w", "w1", "--remote")
	assert.ErrorIs(t, err, errNoRemote)
	_, err = executeCmd(t, env.app, "conflicts", "show", "c1", "--remote")
	assert.ErrorIs(t, err, errNoRemote)
	_, err = executeCmd(t, env.app, "tasks", "generate", "--date", "2026-06-15", "--remote")
	assert.ErrorIs(t, err, errNoRemote)
}

func TestRemoteAgainstServer(t *testing.T) {
	server := newTestEnv(t)
	ts := httptest.NewServer(api.NewServer(server.app.Planning, server.app.Conflicts).Handler())
	t.Cleanup(ts.Close)

	env := newTestEnv(t)
	env.app.Remote = client.New(client.Config{Endpoint: ts.URL, TimeoutMs: 2000, Strict: true})

	out, err := executeCmd(t, env.app, "conflicts", "detect", "--plan", writePlan(t), "--remote", "-o", "json")
	require.NoError(t, err)
	resp := decodeJSON[conflict.DetectionResponse](t, out)
	require.Len(t, resp.Conflicts, 3)

	out, err = executeCmd(t, env.app, "conflicts", "list", "-w", "w1", "--remote", "-o", "json")
	require.NoError(t, err)
	listed := decodeJSON[[]domain.Conflict](t, out)
	require.Len(t, listed, 3)

	target := listed[0]
	out, err = executeCmd(t, env.app, "conflicts", "show", target.ID, "--remote", "-o", "json")
	require.NoError(t, err)
	shown := decodeJSON[domain.Conflict](t, out)
	assert.Equal(t, target.ID, shown.ID)
	assert.Equal(t, target.Title, shown.Title)

	_, err = executeCmd(t, env.app, "conflicts", "show", "missing", "--remote")
	var se *client.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 404, se.Code)

	_, err = executeCmd(t, env.app, "conflicts", "resolve", target.ID, "--option", "1", "--remote")
	require.NoError(t, err)

	got, err := server.repo.GetByID(context.Background(), target.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ConflictResolved, got.Status)

	local, err := env.repo.ListByWedding(context.Background(), "w1", "")
	require.NoError(t, err)
	assert.Empty(t, local, "remote commands leave the local store alone")

	out, err = executeCmd(t, env.app, "tasks", "generate", "--date", "2026-06-15", "-r", "poruwa", "--remote", "-o", "json")
	require.NoError(t, err)
	assert.Len(t, decodeJSON[generator.GenerationResponse](t, out).Tasks, 6)
}

func TestConflictsReviewRunsProgram(t *testing.T) {
	env := newTestEnv(t)
	var ran tea.Model
	env.app.RunProgram = func(m tea.Model, _ io.Reader, _ io.Writer) (tea.Model, error) {
		ran = m
		return m, nil
	}

	_, err := executeCmd(t, env.app, "conflicts", "review", "-w", "w1")
	require.NoError(t, err)
	review, ok := ran.(*reviewModel)
	require.True(t, ok)
	assert.Equal(t, "w1", review.weddingID)

	_, err = executeCmd(t, env.app, "conflicts", "review")
	assert.ErrorContains(t, err, `required flag(s) "wedding" not set`)
}
