package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"smartlib/app"
	"smartlib/models"
)

type AuthController struct{ *Srv }

func NewAuthController(s *Srv) *AuthController { return &AuthController{Srv: s} }

type registerReq struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// Register creates a member account and logs it straight in.
func (ac *AuthController) Register(c *gin.Context) {
	var in registerReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": "hash password"})
		return
	}

	n, err := ac.Users.CountUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	u := &models.User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: string(hash),
		Phone:        in.Phone,
		Address:      in.Address,
		MembershipID: fmt.Sprintf("MEM-%06d", n+1),
		Role:         models.RoleMember,
		JoinDate:     time.Now().UTC(),
		AvatarURL:    fmt.Sprintf("https://api.dicebear.com/7.x/avataaars/svg?seed=%s", strings.ReplaceAll(in.Name, " ", "")),
	}
	if err := ac.Users.CreateUser(c.Request.Context(), u); err != nil {
		respondError(c, err)
		return
	}

	sid := uuid.NewString()
	if err := ac.Sessions.Create(c.Request.Context(), sid, u.ID); err != nil {
		respondError(c, err)
		return
	}
	ac.setSessionCookie(c, sid, int(ac.Sessions.TTL().Seconds()))

	ac.logActivity(c, u, models.ActionRegister,
		fmt.Sprintf("%s mendaftar sebagai anggota (%s)", u.Name, u.MembershipID), nil)
	c.JSON(http.StatusCreated, app.H{"user": u})
}

type loginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (ac *AuthController) Login(c *gin.Context) {
	var in loginReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	u, err := ac.Users.FindUserByEmail(c.Request.Context(), in.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, app.H{"error": "email atau password salah"})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) != nil {
		c.JSON(http.StatusUnauthorized, app.H{"error": "email atau password salah"})
		return
	}

	sid := uuid.NewString()
	if err := ac.Sessions.Create(c.Request.Context(), sid, u.ID); err != nil {
		respondError(c, err)
		return
	}
	ac.setSessionCookie(c, sid, int(ac.Sessions.TTL().Seconds()))
	_ = ac.Users.TouchUserLogin(c.Request.Context(), u.ID)

	ac.logActivity(c, u, models.ActionLogin, fmt.Sprintf("%s masuk", u.Name), nil)
	c.JSON(http.StatusOK, app.H{"user": u})
}

func (ac *AuthController) Logout(c *gin.Context) {
	u := app.CurrentUser(c)
	if sid := app.SessionID(c); sid != "" {
		_ = ac.Carts.Clear(c.Request.Context(), sid)
		_ = ac.Sessions.Delete(c.Request.Context(), sid)
	}
	ac.setSessionCookie(c, "", -1)

	ac.logActivity(c, u, models.ActionLogout, fmt.Sprintf("%s keluar", u.Name), nil)
	c.JSON(http.StatusOK, app.H{"ok": true})
}

func (ac *AuthController) Whoami(c *gin.Context) {
	c.JSON(http.StatusOK, app.H{"user": app.CurrentUser(c)})
}

type profileReq struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Password string `json:"password"` // optional, min 6 when set
}

// UpdateProfile lets the signed-in user edit their own contact details
// and optionally rotate the password.
func (ac *AuthController) UpdateProfile(c *gin.Context) {
	var in profileReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	u := app.CurrentUser(c)
	if in.Name != "" {
		u.Name = in.Name
	}
	if in.Phone != "" {
		u.Phone = in.Phone
	}
	if in.Address != "" {
		u.Address = in.Address
	}
	if in.Password != "" {
		if len(in.Password) < 6 {
			c.JSON(http.StatusBadRequest, app.H{"error": "password minimal 6 karakter"})
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, app.H{"error": "hash password"})
			return
		}
		u.PasswordHash = string(hash)
	}

	if err := ac.Users.UpdateUser(c.Request.Context(), u); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"user": u})
}

func (ac *AuthController) setSessionCookie(c *gin.Context, value string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     app.AppSessionCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   strings.HasPrefix(ac.Config.WebOrigin, "https://"),
	})
}
