package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/balkashynov/cludy/internal/models"
	"github.com/balkashynov/cludy/internal/owner"
)

// unknownTaskTitle stands in when a session's parent task cannot be loaded.
const unknownTaskTitle = "Unknown Task"

// dailyStatsLimit caps the daily buckets to the most recent distinct days.
const dailyStatsLimit = 30

type sessionServiceImpl struct {
	logger zerolog.Logger
	db     *gorm.DB
}

func NewSessionService(logger zerolog.Logger, gdb *gorm.DB) SessionService {
	return &sessionServiceImpl{
		logger: logger,
		db:     gdb,
	}
}

func (s *sessionServiceImpl) Create(ctx context.Context, params CreateSessionParams, o owner.Owner) (*SessionView, error) {
	if params.Duration < models.SessionDurationMin || params.Duration > models.SessionDurationMax {
		return nil, validationErr("duration", "must be between 1 and 480 minutes")
	}
	if !models.ValidSessionType(params.Type) {
		return nil, validationErr("type", "must be either 'pomodoro' or 'free'")
	}

	// The parent task must exist and be reachable by the caller. A missing
	// task and an inaccessible one are deliberately the same outcome.
	var task models.Task
	err := o.Scope(s.db.WithContext(ctx)).First(&task, "id = ?", params.TaskID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotAccessible
		}
		s.logger.Error().
			Err(err).
			Uint("task_id", params.TaskID).
			Msg("failed to select task")
		return nil, err
	}

	now := time.Now().UTC()
	session := models.Session{
		TaskID:    task.ID,
		UserID:    o.UserID(),
		Duration:  params.Duration,
		Type:      params.Type,
		CreatedAt: now,
		StartedAt: now,
	}

	if err := s.db.WithContext(ctx).Create(&session).Error; err != nil {
		s.logger.Error().
			Err(err).
			Uint("task_id", task.ID).
			Msg("failed to insert session")
		return nil, err
	}
	s.logger.Debug().
		Uint("session_id", session.ID).
		Uint("task_id", task.ID).
		Msg("inserted session")

	view := newSessionView(session, task.Title)
	return &view, nil
}

func (s *sessionServiceImpl) GetUserSessions(ctx context.Context, o owner.Owner) ([]SessionView, error) {
	var sessions []models.Session
	err := o.Scope(s.db.WithContext(ctx)).
		Preload("Task").
		Order("created_at DESC").
		Find(&sessions).Error
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select sessions")
		return nil, err
	}

	return newSessionViews(sessions), nil
}

func (s *sessionServiceImpl) GetTaskSessions(ctx context.Context, taskID uint, o owner.Owner) ([]SessionView, error) {
	var sessions []models.Session
	err := o.Scope(s.db.WithContext(ctx)).
		Where("task_id = ?", taskID).
		Preload("Task").
		Order("created_at DESC").
		Find(&sessions).Error
	if err != nil {
		s.logger.Error().
			Err(err).
			Uint("task_id", taskID).
			Msg("failed to select task sessions")
		return nil, err
	}

	return newSessionViews(sessions), nil
}

func (s *sessionServiceImpl) Complete(ctx context.Context, sessionID uint, o owner.Owner) (bool, error) {
	var session models.Session
	err := o.Scope(s.db.WithContext(ctx)).First(&session, "id = ?", sessionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		s.logger.Error().
			Err(err).
			Uint("session_id", sessionID).
			Msg("failed to select session")
		return false, err
	}

	// Re-completing is a no-op success: CompletedAt keeps the first
	// completion time and never regresses.
	if session.IsCompleted {
		return true, nil
	}

	now := time.Now().UTC()
	err = s.db.WithContext(ctx).Model(&session).
		Updates(map[string]interface{}{
			"is_completed": true,
			"completed_at": now,
		}).Error
	if err != nil {
		s.logger.Error().
			Err(err).
			Uint("session_id", sessionID).
			Msg("failed to complete session")
		return false, err
	}
	s.logger.Debug().
		Uint("session_id", sessionID).
		Msg("completed session")

	return true, nil
}

func (s *sessionServiceImpl) GetUserStats(ctx context.Context, userID uint) (*SessionStats, error) {
	// Stats are strictly per identified user: no unowned-row fallback.
	var sessions []models.Session
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&sessions).Error
	if err != nil {
		s.logger.Error().
			Err(err).
			Uint("user_id", userID).
			Msg("failed to select user sessions")
		return nil, err
	}

	stats := &SessionStats{
		TotalSessions: len(sessions),
	}

	buckets := make(map[time.Time]*DailyStat)
	for _, session := range sessions {
		if !session.IsCompleted {
			continue
		}

		stats.CompletedSessions++
		stats.TotalStudyTime += session.Duration
		switch session.Type {
		case models.SessionTypePomodoro:
			stats.PomodoroSessions++
		case models.SessionTypeFree:
			stats.FreeSessions++
		}

		day := session.CreatedAt.UTC().Truncate(24 * time.Hour)
		bucket, ok := buckets[day]
		if !ok {
			bucket = &DailyStat{Date: day}
			buckets[day] = bucket
		}
		bucket.SessionCount++
		bucket.TotalMinutes += session.Duration
	}

	if stats.CompletedSessions > 0 {
		stats.AverageSessionDuration = float64(stats.TotalStudyTime) / float64(stats.CompletedSessions)
	}

	daily := make([]DailyStat, 0, len(buckets))
	for _, bucket := range buckets {
		daily = append(daily, *bucket)
	}
	sort.Slice(daily, func(i, j int) bool {
		return daily[i].Date.After(daily[j].Date)
	})
	if len(daily) > dailyStatsLimit {
		daily = daily[:dailyStatsLimit]
	}
	stats.DailyStats = daily

	return stats, nil
}

func newSessionView(session models.Session, taskTitle string) SessionView {
	if taskTitle == "" {
		taskTitle = unknownTaskTitle
	}
	return SessionView{
		ID:          session.ID,
		TaskID:      session.TaskID,
		TaskTitle:   taskTitle,
		Duration:    session.Duration,
		Type:        session.Type,
		CreatedAt:   session.CreatedAt,
		StartedAt:   session.StartedAt,
		CompletedAt: session.CompletedAt,
		IsCompleted: session.IsCompleted,
	}
}

func newSessionViews(sessions []models.Session) []SessionView {
	views := make([]SessionView, len(sessions))
	for i, session := range sessions {
		views[i] = newSessionView(session, session.Task.Title)
	}
	return views
}
