package account

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	svcErr "github.com/jaymatch/server/internal/errors"
)

type newUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Service) createUser(c *gin.Context) {
	var req newUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		svcErr.Respond(c, svcErr.Validation("invalid signup payload"))
		return
	}

	profile, err := s.Signup(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		svcErr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "New user created",
		"user_id": profile.ID,
	})
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Service) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		svcErr.Respond(c, svcErr.Validation("invalid login payload"))
		return
	}

	profile, err := s.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		svcErr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"user_id": profile.ID,
	})
}

func (s *Service) deleteUser(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		svcErr.Respond(c, svcErr.Validation("invalid delete payload"))
		return
	}

	if err := s.Delete(c.Request.Context(), req.Email, req.Password); err != nil {
		svcErr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User " + req.Email + " permanently deleted",
	})
}

func (s *Service) getProfile(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		svcErr.Respond(c, svcErr.Validation("user_id must be a valid integer"))
		return
	}

	profile, err := s.GetProfile(c.Request.Context(), id)
	if err != nil {
		svcErr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (s *Service) putProfile(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		svcErr.Respond(c, svcErr.Validation("user_id must be a valid integer"))
		return
	}

	var upd ProfileUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		svcErr.Respond(c, svcErr.Validation("invalid profile payload"))
		return
	}

	if _, err := s.UpdateProfile(c.Request.Context(), id, &upd); err != nil {
		svcErr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user_id": id})
}

func (s *Service) health(c *gin.Context) {
	c.String(http.StatusOK, "Backend active")
}
