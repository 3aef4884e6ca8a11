package discover

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jaymatch/server/internal/db"
	svcErr "github.com/jaymatch/server/internal/errors"
)

func (s *Service) getQueue(c *gin.Context) {
	userID, err := parseID(c.Param("user_id"))
	if err != nil {
		svcErr.Respond(c, err)
		return
	}

	queue, err := s.Queue(c.Request.Context(), userID)
	if err != nil {
		svcErr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, queue)
}

func (s *Service) getPreferences(c *gin.Context) {
	userID, err := parseID(c.Param("user_id"))
	if err != nil {
		svcErr.Respond(c, err)
		return
	}

	prefs, err := s.GetPreferences(c.Request.Context(), userID)
	if err != nil {
		svcErr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

type preferencesUpsert struct {
	Genders []string `json:"gender_preference"`
	MinAge  *int     `json:"min_age"`
	MaxAge  *int     `json:"max_age"`
	Years   []string `json:"year_preference"`
	Majors  []string `json:"major_preference"`
	IsFelon *bool    `json:"is_felon"`
}

func (s *Service) putPreferences(c *gin.Context) {
	userID, err := parseID(c.Param("user_id"))
	if err != nil {
		svcErr.Respond(c, err)
		return
	}

	var req preferencesUpsert
	if err := c.ShouldBindJSON(&req); err != nil {
		svcErr.Respond(c, svcErr.Validation("invalid preferences payload"))
		return
	}
	if req.MinAge != nil && req.MaxAge != nil && *req.MinAge > *req.MaxAge {
		svcErr.Respond(c, svcErr.Validation("min_age must not exceed max_age"))
		return
	}

	prefs := &db.Preference{
		UserID:  userID,
		Genders: req.Genders,
		MinAge:  req.MinAge,
		MaxAge:  req.MaxAge,
		Years:   req.Years,
		Majors:  req.Majors,
		IsFelon: req.IsFelon,
	}
	if err := s.PutPreferences(c.Request.Context(), prefs); err != nil {
		svcErr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user_id": userID})
}

// getPreferenceOptions tells the frontend which filter values exist.
func (s *Service) getPreferenceOptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"gender_options": []string{"Male", "Female", "Other"},
		"year_options":   []string{"Freshman", "Sophomore", "Junior", "Senior", "Graduate"},
		"major_options": []string{
			"Computer Science",
			"Information Technology",
			"Electrical Engineering",
			"Mechanical Engineering",
			"Business",
			"Biology",
			"Psychology",
		},
		"felon_options": []bool{true, false},
	})
}

func parseID(raw string) (uint64, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, svcErr.Validation("user id must be a valid integer")
	}
	return id, nil
}
