package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/balkashynov/cludy/internal/db"
	"github.com/balkashynov/cludy/internal/owner"
)

const testJWTSecret = "test-secret-key-for-signing"

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := db.Open(filepath.Join(t.TempDir(), "cludy_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })
	return gdb
}

func newTestServices(t *testing.T) (*gorm.DB, TaskService, SessionService) {
	t.Helper()

	gdb := newTestDB(t)
	logger := zerolog.Nop()
	return gdb, NewTaskService(logger, gdb), NewSessionService(logger, gdb)
}

func newTestAuthService(t *testing.T) (*gorm.DB, AuthService) {
	t.Helper()

	gdb := newTestDB(t)
	return gdb, NewAuthService(zerolog.Nop(), gdb, "cludy-test", []byte(testJWTSecret), time.Hour)
}

// mustCreateTask creates a task through the service and fails the test on
// error.
func mustCreateTask(t *testing.T, tasks TaskService, title string, o owner.Owner) *TaskView {
	t.Helper()

	task, err := tasks.Create(context.Background(), CreateTaskParams{Title: title}, o)
	require.NoError(t, err)
	return task
}

func mustCreateSession(t *testing.T, sessions SessionService, taskID uint, duration int, stype string, o owner.Owner) *SessionView {
	t.Helper()

	session, err := sessions.Create(context.Background(), CreateSessionParams{
		TaskID:   taskID,
		Duration: duration,
		Type:     stype,
	}, o)
	require.NoError(t, err)
	return session
}
