package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/balkashynov/cludy/internal/services"
)

type createTaskRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"max=1000"`
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	var req createTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind request body")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	task, err := h.tasks.Create(c, services.CreateTaskParams{
		Title:       req.Title,
		Description: req.Description,
	}, callerOwner(c))
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to create task")
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

func (h *handlerImpl) HandleGetTasks(c *gin.Context) {
	tasks, err := h.tasks.List(c, callerOwner(c))
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to list tasks")
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

func (h *handlerImpl) HandleGetTask(c *gin.Context) {
	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}

	task, err := h.tasks.GetByID(c, taskID, callerOwner(c))
	if err != nil {
		h.logger.Error().
			Err(err).
			Uint("task_id", taskID).
			Msg("failed to get task")
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

type updateTaskRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"max=1000"`
	IsCompleted bool   `json:"is_completed"`
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req updateTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind request body")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	task, err := h.tasks.Update(c, taskID, services.UpdateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		IsCompleted: req.IsCompleted,
	}, callerOwner(c))
	if err != nil {
		h.logger.Error().
			Err(err).
			Uint("task_id", taskID).
			Msg("failed to update task")
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}

	found, err := h.tasks.Delete(c, taskID, callerOwner(c))
	if err != nil {
		h.logger.Error().
			Err(err).
			Uint("task_id", taskID).
			Msg("failed to delete task")
		abortServiceError(c, err)
		return
	}
	if !found {
		abort(c, newNotFoundError(services.ErrTaskNotFound.Error()))
		return
	}

	c.Status(http.StatusNoContent)
}

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		abort(c, newBadRequestError("invalid "+name+" parameter"))
		return 0, false
	}
	return uint(id), true
}
