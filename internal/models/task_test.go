package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskConstructorsSetVariantFields(t *testing.T) {
	owner := uuid.New()
	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	simple := NewSimpleTask(owner, "simple", "desc", due, PriorityLow)
	assert.Equal(t, TaskKindSimple, simple.Kind)
	assert.Empty(t, simple.ProjectName)
	assert.Zero(t, simple.RepeatInterval)
	assert.False(t, simple.IsCompleted)
	assert.NotEqual(t, uuid.Nil, simple.ID)

	work := NewWorkTask(owner, "work", "", due, PriorityHigh, "acme")
	assert.Equal(t, TaskKindWork, work.Kind)
	assert.Equal(t, "acme", work.ProjectName)

	recurring := NewRecurringTask(owner, "recurring", "", due, PriorityMedium, 45*time.Minute)
	assert.Equal(t, TaskKindRecurring, recurring.Kind)
	assert.Equal(t, 45*time.Minute, recurring.RepeatInterval)
}

func TestTaskJSONRoundTripPreservesKind(t *testing.T) {
	owner := uuid.New()
	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	for _, original := range []*Task{
		NewSimpleTask(owner, "simple", "d", due, PriorityLow),
		NewWorkTask(owner, "work", "d", due, PriorityMedium, "acme"),
		NewRecurringTask(owner, "recurring", "d", due, PriorityHigh, time.Hour),
	} {
		raw, err := json.Marshal(original)
		require.NoError(t, err)

		var restored Task
		require.NoError(t, json.Unmarshal(raw, &restored))
		assert.Equal(t, original.Kind, restored.Kind)
		assert.Equal(t, original.ProjectName, restored.ProjectName)
		assert.Equal(t, original.RepeatInterval, restored.RepeatInterval)
		assert.Equal(t, original.Priority, restored.Priority)
	}
}

func TestTaskVariantFieldsOmittedWhenEmpty(t *testing.T) {
	simple := NewSimpleTask(uuid.New(), "simple", "", time.Now().UTC(), PriorityLow)

	raw, err := json.Marshal(simple)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "project_name")
	assert.NotContains(t, string(raw), "repeat_interval")
}

func TestMarkCompleted(t *testing.T) {
	task := NewSimpleTask(uuid.New(), "x", "", time.Now().UTC(), PriorityLow)
	require.False(t, task.IsCompleted)

	task.MarkCompleted()
	assert.True(t, task.IsCompleted)

	// Idempotent.
	task.MarkCompleted()
	assert.True(t, task.IsCompleted)
}

func TestMatchesIsCaseInsensitive(t *testing.T) {
	task := NewSimpleTask(uuid.New(), "Buy Milk", "from the Corner shop", time.Now().UTC(), PriorityLow)

	assert.True(t, task.Matches("milk"))
	assert.True(t, task.Matches("MILK"))
	assert.True(t, task.Matches("corner"))
	assert.True(t, task.Matches(""))
	assert.False(t, task.Matches("bread"))
}

func TestPriorityString(t *testing.T) {
	assert.Equal(t, "Low", PriorityLow.String())
	assert.Equal(t, "Medium", PriorityMedium.String())
	assert.Equal(t, "High", PriorityHigh.String())
	assert.Equal(t, "Priority(9)", Priority(9).String())
}

func TestTaskStringShowsVariantDetail(t *testing.T) {
	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	simple := NewSimpleTask(uuid.New(), "simple", "", due, PriorityLow)
	out := simple.String()
	assert.Contains(t, out, "Title: simple")
	assert.Contains(t, out, "Description: -")
	assert.Contains(t, out, "Due: 2026-09-01")
	assert.Contains(t, out, "Priority: Low")
	assert.Contains(t, out, "Completed: no")
	assert.NotContains(t, out, "Project:")

	work := NewWorkTask(uuid.New(), "work", "", due, PriorityHigh, "acme")
	assert.Contains(t, work.String(), "Project: acme")

	recurring := NewRecurringTask(uuid.New(), "recurring", "", due, PriorityMedium, 30*time.Minute)
	assert.Contains(t, recurring.String(), "Repeat every: 30m0s")
}
