package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/KingDaeWon/dw-web/internal/api/dto"
	"github.com/KingDaeWon/dw-web/internal/auth"
	"github.com/KingDaeWon/dw-web/internal/service"
)

const (
	loginNameMinLen = 3
	loginNameMaxLen = 50
	passwordMinLen  = 3
	passwordMaxLen  = 100
)

// AuthHandler exposes signup, login, reissue and logout endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Signup handles POST /auth/signup.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := validateCredentials(req.LoginName, req.Password); err != nil {
		return err
	}

	member, err := h.auth.Signup(c.UserContext(), req.LoginName, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.NewMemberResponse(member),
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.LoginName == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "loginName and password required")
	}

	pair, err := h.auth.Login(c.UserContext(), req.LoginName, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": dto.NewTokenResponse(pair),
	})
}

// Reissue handles POST /auth/reissue.
func (h *AuthHandler) Reissue(c *fiber.Ctx) error {
	var req dto.ReissueRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.AccessToken == "" || req.RefreshToken == "" {
		return fiber.NewError(http.StatusBadRequest, "accessToken and refreshToken required")
	}

	pair, err := h.auth.Reissue(c.UserContext(), req.AccessToken, req.RefreshToken)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": dto.NewTokenResponse(pair),
	})
}

// Logout handles POST /auth/logout for the authenticated member.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	if err := h.auth.Logout(c.UserContext(), principal.MemberID); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func validateCredentials(loginName, password string) error {
	if len(loginName) < loginNameMinLen || len(loginName) > loginNameMaxLen {
		return fiber.NewError(http.StatusBadRequest, "loginName must be 3-50 characters")
	}
	if len(password) < passwordMinLen || len(password) > passwordMaxLen {
		return fiber.NewError(http.StatusBadRequest, "password must be 3-100 characters")
	}
	return nil
}
