package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/cludy/internal/models"
	"github.com/balkashynov/cludy/internal/owner"
)

func TestTaskCreateAndGet(t *testing.T) {
	_, tasks, _ := newTestServices(t)
	ctx := context.Background()
	caller := owner.Identified(1)

	created, err := tasks.Create(ctx, CreateTaskParams{
		Title:       "Read chapter 4",
		Description: "Operating systems",
	}, caller)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Read chapter 4", created.Title)
	assert.False(t, created.IsCompleted)
	assert.Zero(t, created.SessionCount)
	assert.Zero(t, created.TotalStudyTime)

	fetched, err := tasks.GetByID(ctx, created.ID, caller)
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Zero(t, fetched.SessionCount)
	assert.Zero(t, fetched.TotalStudyTime)
}

func TestTaskCreateValidation(t *testing.T) {
	_, tasks, _ := newTestServices(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		params CreateTaskParams
	}{
		{"empty title", CreateTaskParams{Title: ""}},
		{"blank title", CreateTaskParams{Title: "   "}},
		{"title too long", CreateTaskParams{Title: strings.Repeat("x", 201)}},
		{"description too long", CreateTaskParams{
			Title:       "ok",
			Description: strings.Repeat("x", 1001),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tasks.Create(ctx, tt.params, owner.Anonymous())
			var validationErr *ValidationError
			assert.True(t, errors.As(err, &validationErr), "expected validation error, got %v", err)
		})
	}
}

func TestTaskGetScoping(t *testing.T) {
	_, tasks, _ := newTestServices(t)
	ctx := context.Background()

	anonTask := mustCreateTask(t, tasks, "anonymous task", owner.Anonymous())
	aliceTask := mustCreateTask(t, tasks, "alice task", owner.Identified(1))

	// Unowned tasks are open to everyone.
	_, err := tasks.GetByID(ctx, anonTask.ID, owner.Anonymous())
	assert.NoError(t, err)
	_, err = tasks.GetByID(ctx, anonTask.ID, owner.Identified(2))
	assert.NoError(t, err)

	// Owned tasks only to their owner; absence and inaccessibility look
	// the same.
	_, err = tasks.GetByID(ctx, aliceTask.ID, owner.Identified(1))
	assert.NoError(t, err)
	_, err = tasks.GetByID(ctx, aliceTask.ID, owner.Identified(2))
	assert.ErrorIs(t, err, ErrTaskNotFound)
	_, err = tasks.GetByID(ctx, aliceTask.ID, owner.Anonymous())
	assert.ErrorIs(t, err, ErrTaskNotFound)

	_, err = tasks.GetByID(ctx, 9999, owner.Identified(1))
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestTaskList(t *testing.T) {
	_, tasks, _ := newTestServices(t)
	ctx := context.Background()

	first := mustCreateTask(t, tasks, "first", owner.Identified(1))
	second := mustCreateTask(t, tasks, "second", owner.Identified(1))
	anon := mustCreateTask(t, tasks, "anonymous", owner.Anonymous())
	mustCreateTask(t, tasks, "someone else's", owner.Identified(2))

	listed, err := tasks.List(ctx, owner.Identified(1))
	require.NoError(t, err)
	require.Len(t, listed, 3)

	// Newest first; own tasks and unowned tasks, never another user's.
	ids := []uint{listed[0].ID, listed[1].ID, listed[2].ID}
	assert.Equal(t, []uint{anon.ID, second.ID, first.ID}, ids)

	anonListed, err := tasks.List(ctx, owner.Anonymous())
	require.NoError(t, err)
	require.Len(t, anonListed, 1)
	assert.Equal(t, anon.ID, anonListed[0].ID)
}

func TestTaskUpdate(t *testing.T) {
	_, tasks, _ := newTestServices(t)
	ctx := context.Background()
	caller := owner.Identified(1)

	task := mustCreateTask(t, tasks, "draft", caller)

	updated, err := tasks.Update(ctx, task.ID, UpdateTaskParams{
		Title:       "final",
		Description: "all three fields replaced",
		IsCompleted: true,
	}, caller)
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Title)
	assert.Equal(t, "all three fields replaced", updated.Description)
	assert.True(t, updated.IsCompleted)

	_, err = tasks.Update(ctx, task.ID, UpdateTaskParams{Title: "hijack"}, owner.Identified(2))
	assert.ErrorIs(t, err, ErrTaskNotFound)

	fetched, err := tasks.GetByID(ctx, task.ID, caller)
	require.NoError(t, err)
	assert.Equal(t, "final", fetched.Title)
}

func TestTaskDeleteCascadesSessions(t *testing.T) {
	gdb, tasks, sessions := newTestServices(t)
	ctx := context.Background()
	caller := owner.Identified(1)

	task := mustCreateTask(t, tasks, "doomed", caller)
	mustCreateSession(t, sessions, task.ID, 25, models.SessionTypePomodoro, caller)
	mustCreateSession(t, sessions, task.ID, 10, models.SessionTypeFree, owner.Anonymous())

	found, err := tasks.Delete(ctx, task.ID, caller)
	require.NoError(t, err)
	assert.True(t, found)

	var count int64
	require.NoError(t, gdb.Model(&models.Session{}).Where("task_id = ?", task.ID).Count(&count).Error)
	assert.Zero(t, count)

	// Deleting again reports nothing to do, not an error.
	found, err = tasks.Delete(ctx, task.ID, caller)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestTaskDeleteScoping(t *testing.T) {
	_, tasks, _ := newTestServices(t)
	ctx := context.Background()

	task := mustCreateTask(t, tasks, "mine", owner.Identified(1))

	found, err := tasks.Delete(ctx, task.ID, owner.Identified(2))
	require.NoError(t, err)
	assert.False(t, found)

	_, err = tasks.GetByID(ctx, task.ID, owner.Identified(1))
	assert.NoError(t, err)
}

func TestTaskDerivedFieldsTrackCompletions(t *testing.T) {
	_, tasks, sessions := newTestServices(t)
	ctx := context.Background()
	caller := owner.Identified(1)

	task := mustCreateTask(t, tasks, "thesis", caller)
	completed := mustCreateSession(t, sessions, task.ID, 25, models.SessionTypePomodoro, caller)
	mustCreateSession(t, sessions, task.ID, 40, models.SessionTypeFree, caller)

	// Incomplete sessions do not count.
	view, err := tasks.GetByID(ctx, task.ID, caller)
	require.NoError(t, err)
	assert.Zero(t, view.SessionCount)
	assert.Zero(t, view.TotalStudyTime)

	found, err := sessions.Complete(ctx, completed.ID, caller)
	require.NoError(t, err)
	require.True(t, found)

	view, err = tasks.GetByID(ctx, task.ID, caller)
	require.NoError(t, err)
	assert.Equal(t, 1, view.SessionCount)
	assert.Equal(t, 25, view.TotalStudyTime)
}
