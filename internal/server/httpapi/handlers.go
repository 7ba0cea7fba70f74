package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ymori23/ranking-server/internal/common"
	"github.com/ymori23/ranking-server/internal/server/influencers"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) login(c *gin.Context) {

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	if err := s.users.Verify(c.Request.Context(), req.Username, req.Password); err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
			return
		}
		s.logger.Error(c.Request.Context(), "credential check failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	session := s.sessions.Create(req.Username)
	c.SetCookie(sessionCookie, session.Token, int(s.sessionTTL.Seconds()), "/", "", false, true)

	s.logger.Info(c.Request.Context(), "login", "username", req.Username)
	c.JSON(http.StatusOK, gin.H{"message": "login successful", "username": req.Username})
}

func (s *Server) logout(c *gin.Context) {

	token := c.GetString(ctxToken)
	s.sessions.Delete(token)
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// intQuery parses an integer query parameter, falling back to def when the
// parameter is absent or malformed.
func intQuery(c *gin.Context, name string, def int) int {
	v := c.Query(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func (s *Server) listInfluencers(c *gin.Context) {

	q := influencers.ListQuery{
		Page:           intQuery(c, "page", 0),
		RowsPerPage:    intQuery(c, "rowsPerPage", 10),
		OrderBy:        c.DefaultQuery("orderBy", "popularity"),
		OrderDirection: c.DefaultQuery("orderDirection", "desc"),
		SearchTerm:     c.Query("searchTerm"),
		SelectedRegion: c.Query("selectedRegion"),
	}

	result, err := s.influencers.List(c.Request.Context(), q)
	if err != nil {
		s.logger.Error(c.Request.Context(), "influencer listing failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch influencers", "details": err.Error()})
		return
	}

	noCache(c)
	c.JSON(http.StatusOK, result)
}

func (s *Server) listAllInfluencers(c *gin.Context) {

	result, err := s.influencers.ListAll(c.Request.Context(), c.Query("selectedRegion"))
	if err != nil {
		s.logger.Error(c.Request.Context(), "influencer listing failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch all influencers", "details": err.Error()})
		return
	}

	noCache(c)
	c.JSON(http.StatusOK, result)
}

func (s *Server) uploadInfluencers(c *gin.Context) {

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file uploaded"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read uploaded file"})
		return
	}
	defer file.Close()

	report, err := s.importer.Run(c.Request.Context(), file, fileHeader.Filename)
	if err != nil {
		if errors.Is(err, common.ErrInvalidFileType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrInvalidFileType.Error()})
			return
		}
		s.logger.Error(c.Request.Context(), "import failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "file processing failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}
