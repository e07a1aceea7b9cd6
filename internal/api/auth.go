package api

import (
	"github.com/labstack/echo/v4"

	"storefront/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a customer account --> POST /auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	input := service.RegisterInput{}
	if err := c.Bind(&input); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}
	if input.Email == "" || input.Password == "" {
		return c.JSON(400, map[string]string{"error": "Email and password are required"})
	}

	user, err := h.authService.Register(c.Request().Context(), input)
	if err != nil {
		return c.JSON(400, map[string]string{"error": err.Error()})
	}
	return c.JSON(200, user)
}

// Login signs in a customer or admin --> POST /auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	login := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		IsAdmin  bool   `json:"is_admin"`
	}{}
	if err := c.Bind(&login); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	token, user, err := h.authService.Login(c.Request().Context(), login.Email, login.Password, login.IsAdmin)
	if err != nil {
		return c.JSON(401, map[string]string{"error": err.Error()})
	}
	return c.JSON(200, map[string]interface{}{"token": token, "user": user})
}

// ValidateSession checks the bearer token against the stored session
// --> GET /auth/validate
func (h *AuthHandler) ValidateSession(c echo.Context) error {
	ctx := c.Request().Context()

	token := bearerToken(c)
	if token == "" {
		return c.JSON(401, map[string]string{"error": "Unauthorized"})
	}

	claims, err := h.authService.ParseToken(token)
	if err != nil {
		return c.JSON(401, map[string]string{"error": "Unauthorized"})
	}

	stored, err := h.authService.ValidateToken(ctx, claims.Email)
	if err != nil || stored != token {
		return c.JSON(401, map[string]string{"error": "Unauthorized"})
	}
	return c.JSON(200, map[string]string{"message": "Session is valid"})
}

// SignOut revokes the session --> POST /auth/signout
func (h *AuthHandler) SignOut(c echo.Context) error {
	token := bearerToken(c)
	if token == "" {
		return c.JSON(401, map[string]string{"error": "Unauthorized"})
	}
	claims, err := h.authService.ParseToken(token)
	if err != nil {
		return c.JSON(401, map[string]string{"error": "Unauthorized"})
	}
	if err := h.authService.SignOut(c.Request().Context(), claims.Email); err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}
	return c.JSON(200, map[string]string{"message": "Signed out"})
}

// GetProfile returns the signed-in account --> GET /auth/profile
func (h *AuthHandler) GetProfile(c echo.Context) error {
	token := bearerToken(c)
	if token == "" {
		return c.JSON(401, map[string]string{"error": "Unauthorized"})
	}
	claims, err := h.authService.ParseToken(token)
	if err != nil {
		return c.JSON(401, map[string]string{"error": "Unauthorized"})
	}

	user, err := h.authService.Profile(c.Request().Context(), claims.Email)
	if err != nil {
		return c.JSON(404, map[string]string{"error": "Account not found"})
	}
	return c.JSON(200, user)
}

// UpdateProfile updates contact details --> PUT /auth/profile
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	token := bearerToken(c)
	if token == "" {
		return c.JSON(401, map[string]string{"error": "Unauthorized"})
	}
	claims, err := h.authService.ParseToken(token)
	if err != nil {
		return c.JSON(401, map[string]string{"error": "Unauthorized"})
	}

	input := service.ProfileInput{}
	if err := c.Bind(&input); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	user, err := h.authService.UpdateProfile(c.Request().Context(), claims.Email, input)
	if err != nil {
		return c.JSON(400, map[string]string{"error": err.Error()})
	}
	return c.JSON(200, user)
}

// ChangePassword sets a new password for the signed-in account
// --> POST /auth/change-password
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	token := bearerToken(c)
	if token == "" {
		return c.JSON(401, map[string]string{"error": "Unauthorized"})
	}
	claims, err := h.authService.ParseToken(token)
	if err != nil {
		return c.JSON(401, map[string]string{"error": "Unauthorized"})
	}

	req := struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}
	if req.NewPassword == "" {
		return c.JSON(400, map[string]string{"error": "New password is required"})
	}

	if err := h.authService.ChangePassword(c.Request().Context(), claims.Email, req.CurrentPassword, req.NewPassword); err != nil {
		return c.JSON(400, map[string]string{"error": err.Error()})
	}
	return c.JSON(200, map[string]string{"message": "Password updated"})
}

func bearerToken(c echo.Context) string {
	auth := c.Request().Header.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) > len(prefix) && auth[:len(prefix)] == prefix {
		return auth[len(prefix):]
	}
	return auth
}
