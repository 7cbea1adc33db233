package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cypher125/siwes/internal/domain"
	"github.com/cypher125/siwes/internal/handler/middleware"
)

// AuthHandler exposes the authentication entry points to the portal
// frontend. Validation and error normalization live in the service;
// handlers only parse, delegate and shape the response.
type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

// Login handles the credential login
// POST /auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req domain.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	result := middleware.AuthFromCtx(c).Login(c.UserContext(), req)
	if !result.Success {
		return c.Status(fiber.StatusUnauthorized).JSON(result)
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

// StaffLogin handles the supervisor staff-ID login
// POST /auth/staff-login
func (h *AuthHandler) StaffLogin(c *fiber.Ctx) error {
	var req domain.StaffLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	result := middleware.AuthFromCtx(c).LoginWithStaffID(c.UserContext(), req)
	if !result.Success {
		return c.Status(fiber.StatusUnauthorized).JSON(result)
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

// SurnameLogin handles the student surname login
// POST /auth/surname-login
func (h *AuthHandler) SurnameLogin(c *fiber.Ctx) error {
	var req domain.SurnameLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	result := middleware.AuthFromCtx(c).LoginWithSurname(c.UserContext(), req)
	if !result.Success {
		return c.Status(fiber.StatusUnauthorized).JSON(result)
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

// Register handles role-dispatched registration
// POST /auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req domain.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	result := middleware.AuthFromCtx(c).Register(c.UserContext(), req)
	if !result.Success {
		return c.Status(fiber.StatusBadRequest).JSON(result)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// Logout clears the session and sends the user to the landing page
// POST /auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	middleware.AuthFromCtx(c).Logout(c.UserContext())
	return c.Redirect("/", fiber.StatusSeeOther)
}

// Session returns the current auth state snapshot for rehydration
// GET /auth/session
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	snap := middleware.AuthFromCtx(c).Snapshot()
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"is_authenticated": snap.IsAuthenticated,
		"is_loading":       snap.IsLoading,
		"role":             snap.Role,
		"user":             snap.User,
	})
}
