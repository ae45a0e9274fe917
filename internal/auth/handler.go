package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"dramahub/pkg/utils"
)

type Handler struct {
	Repo   *Repo
	Tokens TokenService
}

func NewHandler(repo *Repo, tokens TokenService) *Handler {
	return &Handler{Repo: repo, Tokens: tokens}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/register", h.register)
	rg.POST("/login", h.login)
	rg.POST("/change-password", Middleware(h.Tokens, h.Repo), h.changePassword)
	rg.POST("/logout", Middleware(h.Tokens, h.Repo), h.logout)
}

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	if len(req.Username) < 3 || len(req.Username) > 30 {
		utils.Fail(c, http.StatusBadRequest, "Username must be 3-30 characters")
		return
	}
	if !strings.Contains(req.Email, "@") || len(req.Email) > 255 {
		utils.Fail(c, http.StatusBadRequest, "Invalid email")
		return
	}
	if len(req.Password) < 8 || len(req.Password) > 72 {
		utils.Fail(c, http.StatusBadRequest, "Password must be 8-72 characters")
		return
	}

	// uniqueness checks
	if u, _ := h.Repo.GetByEmail(c.Request.Context(), req.Email); u != nil {
		utils.Fail(c, http.StatusConflict, "Email already exists")
		return
	}
	if u, _ := h.Repo.GetByUsername(c.Request.Context(), req.Username); u != nil {
		utils.Fail(c, http.StatusConflict, "Username already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	u := User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
	}

	if err := h.Repo.CreateUser(c.Request.Context(), u); err != nil {
		// unique constraint will also trigger here in races
		utils.Fail(c, http.StatusInternalServerError, "Create user failed")
		return
	}

	// auto-login
	token, exp, err := h.Tokens.Sign(&u)
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.Created(c, "User registered", gin.H{
		"user": gin.H{
			"id":       u.ID,
			"username": u.Username,
			"email":    u.Email,
		},
		"token":      token,
		"expires_at": exp.UTC().Format(time.RFC3339),
	})
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" {
		utils.Fail(c, http.StatusBadRequest, "Email and password required")
		return
	}

	u, err := h.Repo.GetByEmail(c.Request.Context(), email)
	if err != nil || u == nil {
		// don't reveal which part failed
		utils.Fail(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		utils.Fail(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, exp, err := h.Tokens.Sign(u)
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.OK(c, "Logged in", gin.H{
		"user": gin.H{
			"id":       u.ID,
			"username": u.Username,
			"email":    u.Email,
		},
		"token":      token,
		"expires_at": exp.UTC().Format(time.RFC3339),
	})
}

type changePasswordReq struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (h *Handler) changePassword(c *gin.Context) {
	var req changePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.OldPassword == "" || req.NewPassword == "" {
		utils.Fail(c, http.StatusBadRequest, "Old and new password required")
		return
	}
	if len(req.NewPassword) < 8 || len(req.NewPassword) > 72 {
		utils.Fail(c, http.StatusBadRequest, "Password must be 8-72 characters")
		return
	}

	claims := MustGetClaims(c)
	if claims == nil {
		utils.Fail(c, http.StatusUnauthorized, "Invalid token")
		return
	}

	u, err := h.Repo.GetByID(c.Request.Context(), claims.UserID)
	if err != nil || u == nil {
		utils.Fail(c, http.StatusUnauthorized, "Invalid token")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.OldPassword)); err != nil {
		utils.Fail(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := h.Repo.UpdatePasswordAndBumpTokenVersion(c.Request.Context(), u.ID, string(hash)); err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Update password failed")
		return
	}

	utils.OK(c, "Password updated", nil)
}

func (h *Handler) logout(c *gin.Context) {
	claims := MustGetClaims(c)
	if claims == nil {
		utils.Fail(c, http.StatusUnauthorized, "Invalid token")
		return
	}

	if err := h.Repo.BumpTokenVersion(c.Request.Context(), claims.UserID); err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Logout failed")
		return
	}

	utils.OK(c, "Logged out", nil)
}
