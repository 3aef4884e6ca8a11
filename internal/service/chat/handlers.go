package chat

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jaymatch/server/internal/db"
	svcErr "github.com/jaymatch/server/internal/errors"
)

type messagePost struct {
	SenderID   uint64 `json:"sender_id"`
	ReceiverID uint64 `json:"receiver_id"`
	Content    string `json:"content"`
}

func (s *Service) postMessage(c *gin.Context) {
	var req messagePost
	if err := c.ShouldBindJSON(&req); err != nil {
		svcErr.Respond(c, svcErr.Validation("invalid message payload"))
		return
	}

	msg, err := s.Send(c.Request.Context(), req.SenderID, req.ReceiverID, req.Content)
	if err != nil {
		svcErr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Message stored and delivered if recipient online",
		"timestamp": msg.Timestamp,
	})
}

func (s *Service) getMessages(c *gin.Context) {
	a, err := parseID(c.Param("a"))
	if err != nil {
		svcErr.Respond(c, err)
		return
	}
	b, err := parseID(c.Param("b"))
	if err != nil {
		svcErr.Respond(c, err)
		return
	}

	limit := defaultHistoryLimit
	if q := c.Query("limit"); q != "" {
		if n, err := strconv.Atoi(q); err == nil && n > 0 {
			limit = n
		}
	}

	var pageToken *string
	if t := c.Query("page_token"); t != "" {
		pageToken = &t
	}

	messages, nextToken, err := s.History(c.Request.Context(), a, b, limit, pageToken)
	if err != nil {
		svcErr.Respond(c, err)
		return
	}
	if messages == nil {
		messages = []db.Message{}
	}
	if nextToken != nil {
		c.Header("X-Next-Page-Token", *nextToken)
	}
	c.JSON(http.StatusOK, messages)
}

func parseID(raw string) (uint64, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, svcErr.Validation("user id must be a valid integer")
	}
	return id, nil
}
