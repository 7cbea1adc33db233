package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cypher125/siwes/internal/domain"
	"github.com/cypher125/siwes/internal/handler/middleware"
	"github.com/cypher125/siwes/pkg/validator"
)

// StudentHandler proxies the student page tree's data needs through
// the upstream client.
type StudentHandler struct {
	validate *validator.Validator
}

func NewStudentHandler(validate *validator.Validator) *StudentHandler {
	return &StudentHandler{validate: validate}
}

// Profile returns the student's own profile
// GET /student/profile
func (h *StudentHandler) Profile(c *fiber.Ctx) error {
	sess := middleware.AuthFromCtx(c).Session()

	var profile domain.StudentProfile
	if err := sess.Get(c.UserContext(), "/students/profile/", &profile); err != nil {
		return respondUpstream(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(profile)
}

// UpdateProfile updates the student's own profile
// PUT /student/profile
func (h *StudentHandler) UpdateProfile(c *fiber.Ctx) error {
	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	sess := middleware.AuthFromCtx(c).Session()

	var profile domain.StudentProfile
	if err := sess.Put(c.UserContext(), "/students/profile/", body, &profile); err != nil {
		return respondUpstream(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(profile)
}

// Logbook lists the student's logbook entries
// GET /student/logbook
func (h *StudentHandler) Logbook(c *fiber.Ctx) error {
	sess := middleware.AuthFromCtx(c).Session()

	var entries []domain.LogbookEntry
	if err := sess.Get(c.UserContext(), "/logbook/entries/", &entries); err != nil {
		return respondUpstream(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(entries)
}

// CreateEntry submits a new logbook entry
// POST /student/logbook
func (h *StudentHandler) CreateEntry(c *fiber.Ctx) error {
	var req domain.NewLogbookEntry
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.validate.Validate(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	sess := middleware.AuthFromCtx(c).Session()

	var entry domain.LogbookEntry
	if err := sess.Post(c.UserContext(), "/logbook/entries/", req, &entry); err != nil {
		return respondUpstream(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// Evaluations lists the student's evaluations
// GET /student/evaluations
func (h *StudentHandler) Evaluations(c *fiber.Ctx) error {
	sess := middleware.AuthFromCtx(c).Session()

	var evaluations []domain.Evaluation
	if err := sess.Get(c.UserContext(), "/evaluations/", &evaluations); err != nil {
		return respondUpstream(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(evaluations)
}

// Evaluation fetches one evaluation
// GET /student/evaluations/:id
func (h *StudentHandler) Evaluation(c *fiber.Ctx) error {
	sess := middleware.AuthFromCtx(c).Session()

	var evaluation domain.Evaluation
	if err := sess.Get(c.UserContext(), "/evaluations/"+c.Params("id")+"/", &evaluation); err != nil {
		return respondUpstream(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(evaluation)
}
