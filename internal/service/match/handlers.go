package match

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jaymatch/server/internal/db"
	svcErr "github.com/jaymatch/server/internal/errors"
)

type matchRequest struct {
	UserID        uint64 `json:"user_id"`
	MatchedUserID uint64 `json:"matched_user_id"`
}

func (s *Service) createMatch(c *gin.Context) {
	var req matchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		svcErr.Respond(c, svcErr.Validation("invalid match payload"))
		return
	}

	_, created, err := s.Create(c.Request.Context(), req.UserID, req.MatchedUserID)
	if err != nil {
		svcErr.Respond(c, err)
		return
	}

	msg := "Match created"
	if !created {
		msg = "Match already exists"
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": msg})
}

func (s *Service) deleteMatch(c *gin.Context) {
	var req matchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		svcErr.Respond(c, svcErr.Validation("invalid match payload"))
		return
	}

	if _, err := s.Delete(c.Request.Context(), req.UserID, req.MatchedUserID); err != nil {
		svcErr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Match deleted"})
}

func (s *Service) listMatches(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		svcErr.Respond(c, svcErr.Validation("user_id must be a valid integer"))
		return
	}

	matches, err := s.List(c.Request.Context(), userID)
	if err != nil {
		svcErr.Respond(c, err)
		return
	}
	if matches == nil {
		matches = []db.Match{}
	}
	c.JSON(http.StatusOK, matches)
}
