package v1

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/quilicura/micondominio/server/auth"
)

type assistantMessageRequest struct {
	Message string `json:"message"`
}

type chatMessagePayload struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	CreatedTs int64  `json:"created_ts"`
}

type assistantHistoryResponse struct {
	SessionUID string                `json:"session_uid"`
	Title      string                `json:"title"`
	Messages   []*chatMessagePayload `json:"messages"`
}

type assistantResetResponse struct {
	Deactivated int `json:"deactivated"`
}

// PostAssistantMessage runs one assistant turn for the authenticated user.
func (s *APIV1Service) PostAssistantMessage(c echo.Context) error {
	if s.dispatcher == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "assistant is not configured")
	}

	var req assistantMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request").SetInternal(err)
	}
	text := strings.TrimSpace(req.Message)
	if text == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "message is required")
	}

	ctx := c.Request().Context()
	if err := s.assistantSemaphore.Acquire(ctx, 1); err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "assistant is busy").SetInternal(err)
	}
	defer s.assistantSemaphore.Release(1)

	result, err := s.dispatcher.HandleMessage(ctx, auth.UserFromEcho(c), text)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to process message").SetInternal(err)
	}
	return c.JSON(http.StatusOK, result)
}

// GetAssistantHistory returns the active conversation of the authenticated
// user. A user with no conversation yet gets an empty one created.
func (s *APIV1Service) GetAssistantHistory(c echo.Context) error {
	if s.dispatcher == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "assistant is not configured")
	}

	ctx := c.Request().Context()
	user := auth.UserFromEcho(c)

	session, err := s.dispatcher.Sessions().GetOrCreateActive(ctx, user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load session").SetInternal(err)
	}
	history, err := s.dispatcher.Sessions().History(ctx, session.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load history").SetInternal(err)
	}

	messages := make([]*chatMessagePayload, 0, len(history))
	for _, message := range history {
		messages = append(messages, &chatMessagePayload{
			Role:      string(message.Role),
			Content:   message.Content,
			CreatedTs: message.CreatedTs,
		})
	}
	return c.JSON(http.StatusOK, &assistantHistoryResponse{
		SessionUID: session.UID,
		Title:      session.Title,
		Messages:   messages,
	})
}

// ResetAssistantConversation deactivates the user's active conversations so
// the next message starts a fresh one. Old conversations are kept.
func (s *APIV1Service) ResetAssistantConversation(c echo.Context) error {
	if s.dispatcher == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "assistant is not configured")
	}

	ctx := c.Request().Context()
	user := auth.UserFromEcho(c)

	count, err := s.dispatcher.Sessions().DeactivateAll(ctx, user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to reset conversation").SetInternal(err)
	}
	return c.JSON(http.StatusOK, &assistantResetResponse{Deactivated: count})
}
