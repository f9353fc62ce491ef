// README: Chat and conversation-history handlers backed by the message router.
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"

	"github.com/1234620/Travel-Based-Chatbot/internal/modules/conversation"
	"github.com/1234620/Travel-Based-Chatbot/internal/service"
)

// ChatService is the part of service.Router the handlers need.
type ChatService interface {
	ProcessMessage(ctx context.Context, text, userID string) service.Response
	History(ctx context.Context, userID string) ([]conversation.Turn, error)
	ClearHistory(ctx context.Context, userID string) error
}

const chatRequestSchema = `{
  "type": "object",
  "required": ["message"],
  "properties": {
    "message": {"type": "string", "minLength": 1, "maxLength": 4000},
    "user_id": {"type": ["string", "null"], "maxLength": %d}
  }
}`

var chatSchema = gojsonschema.NewStringLoader(fmt.Sprintf(chatRequestSchema, maxUserIDLen))

type chatReq struct {
	Message string  `json:"message"`
	UserID  *string `json:"user_id"`
}

type ChatHandler struct {
	chat    ChatService
	schema  *gojsonschema.Schema
	timeout time.Duration
	logger  *zap.Logger
}

func NewChatHandler(chat ChatService, timeout time.Duration, logger *zap.Logger) (*ChatHandler, error) {
	schema, err := gojsonschema.NewSchema(chatSchema)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatHandler{chat: chat, schema: schema, timeout: timeout, logger: logger}, nil
}

// Chat handles POST /chat. Routing failures still answer 200 with the
// apology and the error field set.
func (h *ChatHandler) Chat(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		writeError(c, http.StatusBadRequest, "unreadable body")
		return
	}

	result, err := h.schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		writeError(c, http.StatusBadRequest, strings.Join(msgs, "; "))
		return
	}

	var req chatReq
	if err := json.Unmarshal(raw, &req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	userID := ""
	if req.UserID != nil {
		userID = strings.TrimSpace(*req.UserID)
	}

	ctx := c.Request.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	resp := h.chat.ProcessMessage(ctx, req.Message, userID)
	if resp.Error != "" {
		h.logger.Warn("chat message failed", zap.String("error", resp.Error))
	}
	writeJSON(c, http.StatusOK, resp)
}

// History handles GET /conversation/:user_id.
func (h *ChatHandler) History(c *gin.Context) {
	userID := strings.TrimSpace(c.Param("user_id"))
	if !isValidUserID(userID) {
		writeError(c, http.StatusBadRequest, "invalid user_id")
		return
	}
	turns, err := h.chat.History(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("load conversation history", zap.Error(err))
		writeError(c, http.StatusServiceUnavailable, "conversation store unavailable")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"conversation_history": turns})
}

// Clear handles DELETE /conversation/:user_id.
func (h *ChatHandler) Clear(c *gin.Context) {
	userID := strings.TrimSpace(c.Param("user_id"))
	if !isValidUserID(userID) {
		writeError(c, http.StatusBadRequest, "invalid user_id")
		return
	}
	if err := h.chat.ClearHistory(c.Request.Context(), userID); err != nil {
		h.logger.Error("clear conversation history", zap.Error(err))
		writeError(c, http.StatusServiceUnavailable, "conversation store unavailable")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"message": "Conversation history cleared"})
}
