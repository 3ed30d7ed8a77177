package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/balkashynov/cludy/internal/models"
	"github.com/balkashynov/cludy/internal/owner"
)

type taskServiceImpl struct {
	logger zerolog.Logger
	db     *gorm.DB
}

func NewTaskService(logger zerolog.Logger, gdb *gorm.DB) TaskService {
	return &taskServiceImpl{
		logger: logger,
		db:     gdb,
	}
}

func (s *taskServiceImpl) Create(ctx context.Context, params CreateTaskParams, o owner.Owner) (*TaskView, error) {
	if err := validateTaskFields(params.Title, params.Description); err != nil {
		return nil, err
	}

	task := models.Task{
		UserID:      o.UserID(),
		Title:       params.Title,
		Description: params.Description,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.db.WithContext(ctx).Create(&task).Error; err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert task")
		return nil, err
	}
	s.logger.Debug().
		Uint("task_id", task.ID).
		Msg("inserted task")

	// A brand-new task has no sessions, so the derived fields are zero.
	view := newTaskView(task, taskTotals{})
	return &view, nil
}

func (s *taskServiceImpl) GetByID(ctx context.Context, taskID uint, o owner.Owner) (*TaskView, error) {
	var task models.Task
	err := o.Scope(s.db.WithContext(ctx)).First(&task, "id = ?", taskID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		s.logger.Error().
			Err(err).
			Uint("task_id", taskID).
			Msg("failed to select task")
		return nil, err
	}

	totals, err := s.completedTotals(ctx, []uint{task.ID})
	if err != nil {
		return nil, err
	}

	view := newTaskView(task, totals[task.ID])
	return &view, nil
}

func (s *taskServiceImpl) List(ctx context.Context, o owner.Owner) ([]TaskView, error) {
	var tasks []models.Task
	err := o.Scope(s.db.WithContext(ctx)).
		Order("created_at DESC").
		Find(&tasks).Error
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select tasks")
		return nil, err
	}

	ids := make([]uint, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}

	totals, err := s.completedTotals(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]TaskView, len(tasks))
	for i, t := range tasks {
		views[i] = newTaskView(t, totals[t.ID])
	}
	return views, nil
}

func (s *taskServiceImpl) Update(ctx context.Context, taskID uint, params UpdateTaskParams, o owner.Owner) (*TaskView, error) {
	if err := validateTaskFields(params.Title, params.Description); err != nil {
		return nil, err
	}

	var task models.Task
	err := o.Scope(s.db.WithContext(ctx)).First(&task, "id = ?", taskID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		s.logger.Error().
			Err(err).
			Uint("task_id", taskID).
			Msg("failed to select task")
		return nil, err
	}

	// Full replace of the three mutable fields.
	task.Title = params.Title
	task.Description = params.Description
	task.IsCompleted = params.IsCompleted

	err = s.db.WithContext(ctx).Model(&task).
		Select("title", "description", "is_completed").
		Updates(map[string]interface{}{
			"title":        task.Title,
			"description":  task.Description,
			"is_completed": task.IsCompleted,
		}).Error
	if err != nil {
		s.logger.Error().
			Err(err).
			Uint("task_id", taskID).
			Msg("failed to update task")
		return nil, err
	}
	s.logger.Debug().
		Uint("task_id", taskID).
		Msg("updated task")

	totals, err := s.completedTotals(ctx, []uint{task.ID})
	if err != nil {
		return nil, err
	}

	view := newTaskView(task, totals[task.ID])
	return &view, nil
}

func (s *taskServiceImpl) Delete(ctx context.Context, taskID uint, o owner.Owner) (bool, error) {
	found := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var task models.Task
		err := o.Scope(tx).First(&task, "id = ?", taskID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil // nothing to do, not a fault
			}
			return err
		}

		// Sessions go with their task regardless of who owns them. The
		// schema declares the same cascade; doing it here keeps the
		// invariant even on databases migrated without the constraint.
		if err := tx.Where("task_id = ?", task.ID).Delete(&models.Session{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&task).Error; err != nil {
			return err
		}

		found = true
		return nil
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Uint("task_id", taskID).
			Msg("failed to delete task")
		return false, err
	}

	if found {
		s.logger.Debug().
			Uint("task_id", taskID).
			Msg("deleted task and its sessions")
	}
	return found, nil
}

type taskTotals struct {
	SessionCount   int
	TotalStudyTime int
}

// completedTotals returns, per task id, the count and summed duration of
// completed sessions. Tasks without completed sessions are simply absent
// from the map.
func (s *taskServiceImpl) completedTotals(ctx context.Context, taskIDs []uint) (map[uint]taskTotals, error) {
	totals := make(map[uint]taskTotals, len(taskIDs))
	if len(taskIDs) == 0 {
		return totals, nil
	}

	var rows []struct {
		TaskID         uint
		SessionCount   int
		TotalStudyTime int
	}
	err := s.db.WithContext(ctx).Model(&models.Session{}).
		Select("task_id, COUNT(*) AS session_count, COALESCE(SUM(duration), 0) AS total_study_time").
		Where("task_id IN ? AND is_completed = ?", taskIDs, true).
		Group("task_id").
		Scan(&rows).Error
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to aggregate completed sessions")
		return nil, err
	}

	for _, r := range rows {
		totals[r.TaskID] = taskTotals{
			SessionCount:   r.SessionCount,
			TotalStudyTime: r.TotalStudyTime,
		}
	}
	return totals, nil
}

func newTaskView(task models.Task, totals taskTotals) TaskView {
	return TaskView{
		ID:             task.ID,
		Title:          task.Title,
		Description:    task.Description,
		CreatedAt:      task.CreatedAt,
		IsCompleted:    task.IsCompleted,
		SessionCount:   totals.SessionCount,
		TotalStudyTime: totals.TotalStudyTime,
	}
}

func validateTaskFields(title, description string) error {
	if strings.TrimSpace(title) == "" {
		return validationErr("title", "must not be empty")
	}
	if utf8.RuneCountInString(title) > models.TaskTitleMaxLen {
		return validationErr("title", "must be at most 200 characters")
	}
	if utf8.RuneCountInString(description) > models.TaskDescriptionMaxLen {
		return validationErr("description", "must be at most 1000 characters")
	}
	return nil
}
