package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"printshop/internal/logx"
	"printshop/internal/models"
	"printshop/internal/repo"
)

type loginRequest struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}
	u, err := s.Users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, repo.ErrBadLogin) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		fail(c, err)
		return
	}

	sess := sessions.Default(c)
	sess.Set(userEmailKey, u.Email)
	if err := sess.Save(); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"email": u.Email, "role": u.Role})
}

// logout drops the login but keeps the buyer's cart.
func (s *Server) logout(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Delete(userEmailKey)
	if err := sess.Save(); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) sync(c *gin.Context) {
	u := c.MustGet(userCtxKey).(*models.User)
	report, err := s.Syncer.Run(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	logx.Info().Str("by", u.Email).Int("products", report.Products).Msg("sync triggered")
	c.JSON(http.StatusOK, gin.H{
		"products":    report.Products,
		"collections": report.Collections,
		"durationMs":  report.Duration.Milliseconds(),
	})
}

// lastSync reports the most recent sync run, 404 before the first one.
func (s *Server) lastSync(c *gin.Context) {
	if s.SyncLog == nil {
		fail(c, fmt.Errorf("sync log: %w", repo.ErrNotFound))
		return
	}
	run, err := s.SyncLog.LastSync(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"at":          run.CreatedAt,
		"products":    run.Products,
		"collections": run.Collections,
		"durationMs":  run.DurationMS,
	})
}
