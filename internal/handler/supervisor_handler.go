package handler

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/cypher125/siwes/internal/domain"
	"github.com/cypher125/siwes/internal/handler/middleware"
	"github.com/cypher125/siwes/pkg/validator"
)

// SupervisorHandler proxies the supervisor page tree: assigned
// students, their logbooks, entry review and reports.
type SupervisorHandler struct {
	validate *validator.Validator
}

func NewSupervisorHandler(validate *validator.Validator) *SupervisorHandler {
	return &SupervisorHandler{validate: validate}
}

// Dashboard returns the supervisor's dashboard statistics
// GET /supervisor/dashboard
func (h *SupervisorHandler) Dashboard(c *fiber.Ctx) error {
	sess := middleware.AuthFromCtx(c).Session()

	var stats map[string]interface{}
	if err := sess.Get(c.UserContext(), "/supervisors/dashboard/", &stats); err != nil {
		return respondUpstream(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(stats)
}

// Profile returns the supervisor's own profile
// GET /supervisor/profile
func (h *SupervisorHandler) Profile(c *fiber.Ctx) error {
	sess := middleware.AuthFromCtx(c).Session()

	var profile domain.SupervisorProfile
	if err := sess.Get(c.UserContext(), "/supervisors/profile/", &profile); err != nil {
		return respondUpstream(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(profile)
}

// UpdateProfile updates the supervisor's own profile
// PUT /supervisor/profile
func (h *SupervisorHandler) UpdateProfile(c *fiber.Ctx) error {
	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	sess := middleware.AuthFromCtx(c).Session()

	var profile domain.SupervisorProfile
	if err := sess.Put(c.UserContext(), "/supervisors/profile/", body, &profile); err != nil {
		return respondUpstream(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(profile)
}

// Students lists the supervisor's assigned students
// GET /supervisor/students
func (h *SupervisorHandler) Students(c *fiber.Ctx) error {
	sess := middleware.AuthFromCtx(c).Session()

	var students []domain.StudentProfile
	if err := sess.Get(c.UserContext(), "/supervisors/students/", &students); err != nil {
		return respondUpstream(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(students)
}

// StudentDetails fetches one assigned student
// GET /supervisor/students/:id
func (h *SupervisorHandler) StudentDetails(c *fiber.Ctx) error {
	sess := middleware.AuthFromCtx(c).Session()

	var student domain.StudentProfile
	path := "/supervisors/students/" + c.Params("id") + "/"
	if err := sess.Get(c.UserContext(), path, &student); err != nil {
		return respondUpstream(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(student)
}

// StudentLogbook lists one assigned student's logbook entries
// GET /supervisor/students/:id/logbook
func (h *SupervisorHandler) StudentLogbook(c *fiber.Ctx) error {
	sess := middleware.AuthFromCtx(c).Session()

	var entries []domain.LogbookEntry
	path := "/supervisors/students/" + c.Params("id") + "/logbook/"
	if err := sess.Get(c.UserContext(), path, &entries); err != nil {
		return respondUpstream(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(entries)
}

// Entry fetches a single logbook entry for review
// GET /supervisor/logbook/:entryId
func (h *SupervisorHandler) Entry(c *fiber.Ctx) error {
	sess := middleware.AuthFromCtx(c).Session()

	var entry domain.LogbookEntry
	path := "/supervisors/logbook/" + c.Params("entryId") + "/"
	if err := sess.Get(c.UserContext(), path, &entry); err != nil {
		return respondUpstream(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(entry)
}

// ReviewEntry records the supervisor's verdict on an entry
// PATCH /supervisor/logbook/:entryId
func (h *SupervisorHandler) ReviewEntry(c *fiber.Ctx) error {
	var req domain.EntryReview
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
	path := "/supervisors/logbook/" + c.Params("entryId") + "/"
	if err := sess.Patch(c.UserContext(), path, req, &entry); err != nil {
		return respondUpstream(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(entry)
}

// PendingEvaluations lists evaluations awaiting review
// GET /supervisor/evaluations
func (h *SupervisorHandler) PendingEvaluations(c *fiber.Ctx) error {
	sess := middleware.AuthFromCtx(c).Session()

	var evaluations []domain.Evaluation
	if err := sess.Get(c.UserContext(), "/supervisors/evaluations/?status=pending", &evaluations); err != nil {
		return respondUpstream(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(evaluations)
}

// Reports returns aggregate reports, optionally scoped to a period
// GET /supervisor/reports?period=...
func (h *SupervisorHandler) Reports(c *fiber.Ctx) error {
	sess := middleware.AuthFromCtx(c).Session()

	path := "/supervisors/reports"
	if period := c.Query("period"); period != "" {
		path += "?period=" + url.QueryEscape(period)
	}

	var report map[string]interface{}
	if err := sess.Get(c.UserContext(), path, &report); err != nil {
		return respondUpstream(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(report)
}

// StudentReports returns one student's periodic reports
// GET /supervisor/students/:id/reports
func (h *SupervisorHandler) StudentReports(c *fiber.Ctx) error {
	sess := middleware.AuthFromCtx(c).Session()

	var reports []map[string]interface{}
	path := "/supervisors/students/" + c.Params("id") + "/reports/"
	if err := sess.Get(c.UserContext(), path, &reports); err != nil {
		return respondUpstream(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(reports)
}
