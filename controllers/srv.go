package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"smartlib/app"
	"smartlib/cart"
	"smartlib/circulation"
	"smartlib/config"
	"smartlib/db"
	"smartlib/models"
	"smartlib/session"
)

// Srv bundles the dependencies every controller needs.
type Srv struct {
	Circ       *circulation.Service
	Users      db.UserStore
	Activities db.ActivityStore
	Carts      *cart.Store
	Sessions   *session.AppSessionStore
	Config     config.Config
	Log        *zap.Logger
}

func NewSrv(a *app.App) *Srv {
	return &Srv{
		Circ:       a.Circ,
		Users:      a.Users,
		Activities: a.Activities,
		Carts:      a.Carts,
		Sessions:   a.AppSessions(),
		Config:     a.Config,
		Log:        a.Log,
	}
}

// logActivity appends an audit row. The log must never fail a request,
// so errors only go to the logger.
func (s *Srv) logActivity(c *gin.Context, u *models.User, action, description string, metadata map[string]any) {
	a := &models.Activity{
		ID:          uuid.NewString(),
		Action:      action,
		Description: description,
		Timestamp:   time.Now().UTC(),
		Metadata:    metadata,
	}
	if u != nil {
		a.UserID = u.ID
		a.UserName = u.Name
		a.UserRole = u.Role
	}
	if err := s.Activities.AppendActivity(c.Request.Context(), a); err != nil {
		s.Log.Warn("activity append failed", zap.String("action", action), zap.Error(err))
	}
}

// respondError maps the circulation error taxonomy onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	var stockErr *circulation.InsufficientStockError
	switch {
	case errors.As(err, &stockErr):
		c.JSON(http.StatusConflict, app.H{
			"error":     stockErr.Error(),
			"bookId":    stockErr.BookID,
			"bookTitle": stockErr.BookTitle,
			"requested": stockErr.Requested,
			"available": stockErr.Available,
		})
	case errors.Is(err, circulation.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, app.H{"error": err.Error()})
	case errors.Is(err, circulation.ErrInvalidState):
		c.JSON(http.StatusConflict, app.H{"error": err.Error()})
	case errors.Is(err, circulation.ErrEmptyCart), errors.Is(err, circulation.ErrValidation):
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
	case errors.Is(err, db.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, app.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
	}
}
