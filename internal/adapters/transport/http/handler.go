package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appsvc "github.com/Miraines/MoonyAndStarry/menu-service/internal/app/auth/service"
	catalogsvc "github.com/Miraines/MoonyAndStarry/menu-service/internal/app/catalog/service"
	customErrors "github.com/Miraines/MoonyAndStarry/menu-service/internal/domain/auth/errors"
)

// Check is a named readiness probe reported by /health.
type Check struct {
	Name  string
	Probe func(ctx context.Context) error
}

type Handler struct {
	auth    appsvc.Service
	catalog catalogsvc.Service
	checks  []Check
	log     *zap.Logger
}

func NewHandler(auth appsvc.Service, catalog catalogsvc.Service, log *zap.Logger, checks ...Check) *Handler {
	return &Handler{
		auth:    auth,
		catalog: catalog,
		checks:  checks,
		log:     log,
	}
}

var errNotJSON = errors.New("request must be JSON")

// bindJSON rejects bodies that are not JSON before decoding into dst.
func bindJSON(c *gin.Context, dst any) bool {
	if c.ContentType() != gin.MIMEJSON {
		c.JSON(http.StatusBadRequest, gin.H{"error": errNotJSON.Error()})
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed JSON body"})
		return false
	}
	return true
}

// fail maps the error taxonomy to a status code. notFound is the message
// used when err is a NotFound, since "not found" means different things on
// different routes.
func (h *Handler) fail(c *gin.Context, err error, notFound string) {
	switch {
	case customErrors.IsTokenExpired(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": "the token is no longer available"})
	case customErrors.IsInvalidToken(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": "verification failed", "details": "wrong token"})
	case customErrors.IsInvalidArgument(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": clientMessage(err)})
	case customErrors.IsInvalidCredentials(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": "wrong password"})
	case customErrors.IsAlreadyExists(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": "the email already exists"})
	case customErrors.IsAlreadyVerified(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": "the email is already verified"})
	case customErrors.IsNotVerified(err):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "account is not verified, a verification email has been sent"})
	case customErrors.IsUnauthorized(err):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	case customErrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound})
	case customErrors.IsNotifierFailed(err):
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send the email"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "an internal error occurred, please try again later"})
	}
}

func clientMessage(err error) string {
	return strings.TrimPrefix(err.Error(), customErrors.ErrInvalidArgument.Error()+": ")
}
