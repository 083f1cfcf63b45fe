package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/alexanderramin/mangala/internal/generator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPlanningTestService(obs ...UseCaseObserver) PlanningService {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	return NewPlanningService(generator.New(nil, generator.WithClock(func() time.Time { return now })), obs...)
}

func TestPlanningService_Rituals(t *testing.T) {
	svc := newPlanningTestService()

	rituals := svc.Rituals(context.Background())
	require.Len(t, rituals, 5)
	assert.Equal(t, "poruwa", string(rituals[0].ID))
	assert.Equal(t, "Poruwa Ceremony", rituals[0].Name)
	assert.Equal(t, 6, rituals[0].TaskCount)

	tmpl, ok := svc.Ritual(context.Background(), "reception")
	require.True(t, ok)
	assert.Len(t, tmpl.Tasks, 4)
	_, ok = svc.Ritual(context.Background(), "church")
	assert.False(t, ok)
}

func TestPlanningService_GenerateTasksObserved(t *testing.T) {
	obs := &recordingObserver{}
	svc := newPlanningTestService(obs)

	resp, err := svc.GenerateTasks(context.Background(), generator.GenerationRequest{
		WeddingID: "w1", Rituals: []string{"poruwa", "reception"}, WeddingDate: "2026-06-15",
	})
	require.NoError(t, err)
	assert.Len(t, resp.Tasks, 10)

	ev := obs.last()
	assert.Equal(t, "generate-tasks", ev.Name)
	assert.True(t, ev.Success)
	assert.Equal(t, 10, ev.Fields["task_count"])

	_, err = svc.GenerateTasks(context.Background(), generator.GenerationRequest{WeddingDate: "tomorrow"})
	require.Error(t, err)
	assert.False(t, obs.last().Success)
	assert.Error(t, obs.last().Err)
}

func TestPlanningService_TimelineCountsOverdue(t *testing.T) {
	obs := &recordingObserver{}
	svc := newPlanningTestService(obs)

	entries, err := svc.Timeline(context.Background(), []string{"nalangu"}, "2026-01-20")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 2, obs.last().Fields["overdue"])
}

func TestPlanningService_Validate(t *testing.T) {
	obs := &recordingObserver{}
	svc := newPlanningTestService(obs)

	res := svc.Validate(context.Background(), nil, "2025-01-10")
	assert.False(t, res.IsValid)
	assert.Equal(t, []string{"Wedding date cannot be in the past"}, res.Errors)
	assert.Equal(t, false, obs.last().Fields["valid"])
}

func TestLogUseCaseObserver(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	obs := NewLogUseCaseObserver(logger)

	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "resolve-conflict", Success: true, Fields: map[string]any{"conflict_id": "c1"}})
	assert.Contains(t, buf.String(), "level=INFO")
	assert.Contains(t, buf.String(), "use_case=resolve-conflict")
	assert.Contains(t, buf.String(), "conflict_id=c1")

	buf.Reset()
	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "dismiss-conflict", Err: errors.New("conflict is not active")})
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), `error="conflict is not active"`)
}

func TestCombineObservers(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, combineObservers(nil))
	assert.IsType(t, NoopUseCaseObserver{}, combineObservers([]UseCaseObserver{nil}))

	a, b := &recordingObserver{}, &recordingObserver{}
	combined := combineObservers([]UseCaseObserver{a, nil, b})
	combined.ObserveUseCase(context.Background(), UseCaseEvent{Name: "x"})
	assert.Len(t, a.events, 1)
	assert.Len(t, b.events, 1)
}
