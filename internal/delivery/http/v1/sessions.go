package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/balkashynov/cludy/internal/services"
)

type createSessionRequest struct {
	TaskID   uint   `json:"task_id" binding:"required"`
	Duration int    `json:"duration" binding:"required,min=1,max=480"`
	Type     string `json:"type" binding:"required,oneof=pomodoro free"`
}

func (h *handlerImpl) HandleCreateSession(c *gin.Context) {
	var req createSessionRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind request body")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	session, err := h.sessions.Create(c, services.CreateSessionParams{
		TaskID:   req.TaskID,
		Duration: req.Duration,
		Type:     req.Type,
	}, callerOwner(c))
	if err != nil {
		h.logger.Error().
			Err(err).
			Uint("task_id", req.TaskID).
			Msg("failed to create session")
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, session)
}

func (h *handlerImpl) HandleGetSessions(c *gin.Context) {
	sessions, err := h.sessions.GetUserSessions(c, callerOwner(c))
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to list sessions")
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, sessions)
}

func (h *handlerImpl) HandleGetTaskSessions(c *gin.Context) {
	taskID, ok := pathID(c, "taskId")
	if !ok {
		return
	}

	sessions, err := h.sessions.GetTaskSessions(c, taskID, callerOwner(c))
	if err != nil {
		h.logger.Error().
			Err(err).
			Uint("task_id", taskID).
			Msg("failed to list task sessions")
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, sessions)
}

func (h *handlerImpl) HandleCompleteSession(c *gin.Context) {
	sessionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	found, err := h.sessions.Complete(c, sessionID, callerOwner(c))
	if err != nil {
		h.logger.Error().
			Err(err).
			Uint("session_id", sessionID).
			Msg("failed to complete session")
		abortServiceError(c, err)
		return
	}
	if !found {
		abort(c, newNotFoundError(services.ErrSessionNotFound.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "session completed"})
}

func (h *handlerImpl) HandleGetStats(c *gin.Context) {
	userID, ok := callerOwner(c).ID()
	if !ok {
		abort(c, newUnauthorizedError(http.StatusText(http.StatusUnauthorized)))
		return
	}

	stats, err := h.sessions.GetUserStats(c, userID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Uint("user_id", userID).
			Msg("failed to compute stats")
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
