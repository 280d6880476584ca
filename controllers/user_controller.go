package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"smartlib/app"
)

type UserController struct{ *Srv }

func NewUserController(s *Srv) *UserController { return &UserController{Srv: s} }

// ListUsers pages through accounts for the admin screen
// (?q=&page=&size=).
func (uc *UserController) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

	res, err := uc.Srv.Users.ListUsers(c.Request.Context(), c.Query("q"), page, size)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (uc *UserController) GetUser(c *gin.Context) {
	u, err := uc.Srv.Users.FindUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"user": u})
}

// DeleteUser removes an account and revokes every live session it has.
func (uc *UserController) DeleteUser(c *gin.Context) {
	id := c.Param("id")
	if id == app.CurrentUser(c).ID {
		c.JSON(http.StatusBadRequest, app.H{"error": "tidak bisa menghapus akun sendiri"})
		return
	}
	if err := uc.Srv.Users.DeleteUserByID(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	_ = uc.Sessions.RevokeAllForUser(c.Request.Context(), id)
	c.JSON(http.StatusOK, app.H{"ok": true})
}
