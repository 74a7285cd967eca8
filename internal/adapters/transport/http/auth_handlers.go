package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Miraines/MoonyAndStarry/menu-service/internal/adapters/transport/http/dto"
	"github.com/Miraines/MoonyAndStarry/menu-service/internal/adapters/transport/http/middleware"
	"github.com/Miraines/MoonyAndStarry/menu-service/internal/domain/auth/model"
	lg "github.com/Miraines/MoonyAndStarry/menu-service/internal/infra/log"
)

func (h *Handler) register(c *gin.Context) {
	var body dto.RegisterDTO
	if !bindJSON(c, &body) {
		return
	}
	h.log.Info("/register", lg.Email(body.Email))

	if _, err := h.auth.Register(c.Request.Context(), body); err != nil {
		h.fail(c, err, "not found")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "account successfully created"})
}

func (h *Handler) login(c *gin.Context) {
	var body dto.LoginDTO
	if !bindJSON(c, &body) {
		return
	}
	h.log.Info("/login", lg.Email(body.Email))

	pair, err := h.auth.Login(c.Request.Context(), body)
	if err != nil {
		h.fail(c, err, "the email is not registered")
		return
	}
	writePair(c, pair)
}

func (h *Handler) refresh(c *gin.Context) {
	pair, err := h.auth.Refresh(c.Request.Context(), middleware.BearerToken(c))
	if err != nil {
		h.fail(c, err, "not found")
		return
	}
	writePair(c, pair)
}

func (h *Handler) sendMail(c *gin.Context) {
	var body dto.SendMailDTO
	if !bindJSON(c, &body) {
		return
	}
	h.log.Info("/mail/send-mail", lg.Email(body.Email))

	if err := h.auth.RequestVerification(c.Request.Context(), body); err != nil {
		h.fail(c, err, "the email is not registered")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "email sent"})
}

func (h *Handler) validate(c *gin.Context) {
	if err := h.auth.ConfirmVerification(c.Request.Context(), c.Param("token")); err != nil {
		h.fail(c, err, "not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "email verified"})
}

func writePair(c *gin.Context, pair model.TokenPair) {
	c.JSON(http.StatusOK, gin.H{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"expires_in":    int(pair.AccessTTL.Seconds()),
		"user_id":       pair.UserId.String(),
	})
}

func (h *Handler) health(c *gin.Context) {
	status := http.StatusOK
	report := gin.H{}
	for _, chk := range h.checks {
		if err := chk.Probe(c.Request.Context()); err != nil {
			h.log.Warn("health check failed", zap.String("check", chk.Name), zap.Error(err))
			report[chk.Name] = "down"
			status = http.StatusServiceUnavailable
			continue
		}
		report[chk.Name] = "up"
	}

	state := "ok"
	if status != http.StatusOK {
		state = "degraded"
	}
	c.JSON(status, gin.H{"status": state, "checks": report})
}
