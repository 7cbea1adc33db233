package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cypher125/siwes/internal/domain"
	"github.com/cypher125/siwes/internal/handler/middleware"
)

// AdminHandler proxies the admin page tree: account management,
// assignments and departments.
type AdminHandler struct{}

func NewAdminHandler() *AdminHandler {
	return &AdminHandler{}
}

// Dashboard returns portal-wide statistics
// GET /admin/dashboard
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	sess := middleware.AuthFromCtx(c).Session()

	var stats map[string]interface{}
	if err := sess.Get(c.UserContext(), "/admin/dashboard/", &stats); err != nil {
		return respondUpstream(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(stats)
}

// Students lists student accounts, passing list filters through
// GET /admin/students
func (h *AdminHandler) Students(c *fiber.Ctx) error {
	sess := middleware.AuthFromCtx(c).Session()

	path := "/admin/students/"
	if qs := string(c.Request().URI().QueryString()); qs != "" {
		path += "?" + qs
	}

	var students []domain.StudentProfile
	if err := sess.Get(c.UserContext(), path, &students); err != nil {
		return respondUpstream(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(students)
}

// StudentDetails fetches one student account
// GET /admin/students/:id
func (h *AdminHandler) StudentDetails(c *fiber.Ctx) error {
	sess := middleware.AuthFromCtx(c).Session()

	var student domain.StudentProfile
	if err := sess.Get(c.UserContext(), "/admin/students/"+c.Params("id")+"/", &student); err != nil {
		return respondUpstream(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(student)
}

// CreateStudent creates a student account
// POST /admin/students
func (h *AdminHandler) CreateStudent(c *fiber.Ctx) error {
	return h.proxyCreate(c, "/admin/students/")
}

// UpdateStudent updates a student account
// PUT /admin/students/:id
func (h *AdminHandler) UpdateStudent(c *fiber.Ctx) error {
	return h.proxyUpdate(c, "/admin/students/"+c.Params("id")+"/")
}

// DeleteStudent removes a student account
// DELETE /admin/students/:id
func (h *AdminHandler) DeleteStudent(c *fiber.Ctx) error {
	return h.proxyDelete(c, "/admin/students/"+c.Params("id")+"/")
}

// Supervisors lists supervisor accounts
// GET /admin/supervisors
func (h *AdminHandler) Supervisors(c *fiber.Ctx) error {
	sess := middleware.AuthFromCtx(c).Session()

	var supervisors []domain.SupervisorProfile
	if err := sess.Get(c.UserContext(), "/admin/supervisors/", &supervisors); err != nil {
		return respondUpstream(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(supervisors)
}

// SupervisorDetails fetches one supervisor account
// GET /admin/supervisors/:id
func (h *AdminHandler) SupervisorDetails(c *fiber.Ctx) error {
	sess := middleware.AuthFromCtx(c).Session()

	var supervisor domain.SupervisorProfile
	if err := sess.Get(c.UserContext(), "/admin/supervisors/"+c.Params("id")+"/", &supervisor); err != nil {
		return respondUpstream(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(supervisor)
}

// CreateSupervisor creates a supervisor account
// POST /admin/supervisors
func (h *AdminHandler) CreateSupervisor(c *fiber.Ctx) error {
	return h.proxyCreate(c, "/admin/supervisors/")
}

// UpdateSupervisor updates a supervisor account
// PUT /admin/supervisors/:id
func (h *AdminHandler) UpdateSupervisor(c *fiber.Ctx) error {
	return h.proxyUpdate(c, "/admin/supervisors/"+c.Params("id")+"/")
}

// DeleteSupervisor removes a supervisor account
// DELETE /admin/supervisors/:id
func (h *AdminHandler) DeleteSupervisor(c *fiber.Ctx) error {
	return h.proxyDelete(c, "/admin/supervisors/"+c.Params("id")+"/")
}

// Assignments lists student/supervisor assignments
// GET /admin/assignments
func (h *AdminHandler) Assignments(c *fiber.Ctx) error {
	sess := middleware.AuthFromCtx(c).Session()

	var assignments []domain.Assignment
	if err := sess.Get(c.UserContext(), "/admin/assignments/", &assignments); err != nil {
		return respondUpstream(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(assignments)
}

// CreateAssignment pairs a student with a supervisor
// POST /admin/assignments
func (h *AdminHandler) CreateAssignment(c *fiber.Ctx) error {
	return h.proxyCreate(c, "/admin/assignments/")
}

// UpdateAssignment reassigns a student to a different supervisor
// PUT /admin/assignments/:id
func (h *AdminHandler) UpdateAssignment(c *fiber.Ctx) error {
	return h.proxyUpdate(c, "/admin/assignments/"+c.Params("id")+"/")
}

// DeleteAssignment removes an assignment
// DELETE /admin/assignments/:id
func (h *AdminHandler) DeleteAssignment(c *fiber.Ctx) error {
	return h.proxyDelete(c, "/admin/assignments/"+c.Params("id")+"/")
}

// Departments lists departments
// GET /admin/departments
func (h *AdminHandler) Departments(c *fiber.Ctx) error {
	sess := middleware.AuthFromCtx(c).Session()

	var departments []domain.Department
	if err := sess.Get(c.UserContext(), "/admin/departments/", &departments); err != nil {
		return respondUpstream(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(departments)
}

// CreateDepartment adds a department
// POST /admin/departments
func (h *AdminHandler) CreateDepartment(c *fiber.Ctx) error {
	return h.proxyCreate(c, "/admin/departments/")
}

// UpdateDepartment renames or reconfigures a department. The upstream
// takes a partial update here, hence PATCH.
// PATCH /admin/departments/:id
func (h *AdminHandler) UpdateDepartment(c *fiber.Ctx) error {
	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	sess := middleware.AuthFromCtx(c).Session()

	var updated map[string]interface{}
	if err := sess.Patch(c.UserContext(), "/admin/departments/"+c.Params("id")+"/", body, &updated); err != nil {
		return respondUpstream(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(updated)
}

// DeleteDepartment removes a department
// DELETE /admin/departments/:id
func (h *AdminHandler) DeleteDepartment(c *fiber.Ctx) error {
	return h.proxyDelete(c, "/admin/departments/"+c.Params("id")+"/")
}

// DepartmentStats returns per-department placement statistics
// GET /admin/departments/stats
func (h *AdminHandler) DepartmentStats(c *fiber.Ctx) error {
	sess := middleware.AuthFromCtx(c).Session()

	var stats []map[string]interface{}
	if err := sess.Get(c.UserContext(), "/admin/department-stats/", &stats); err != nil {
		return respondUpstream(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(stats)
}

// Companies lists the companies students are placed at
// GET /admin/companies
func (h *AdminHandler) Companies(c *fiber.Ctx) error {
	sess := middleware.AuthFromCtx(c).Session()

	var companies []map[string]interface{}
	if err := sess.Get(c.UserContext(), "/admin/companies/", &companies); err != nil {
		return respondUpstream(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(companies)
}

// proxyCreate forwards an opaque JSON body upstream and returns the
// created resource. Field validation is the upstream's responsibility
// for admin CRUD; the portal surfaces its messages verbatim.
func (h *AdminHandler) proxyCreate(c *fiber.Ctx, path string) error {
	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	sess := middleware.AuthFromCtx(c).Session()

	var created map[string]interface{}
	if err := sess.Post(c.UserContext(), path, body, &created); err != nil {
		return respondUpstream(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *AdminHandler) proxyUpdate(c *fiber.Ctx, path string) error {
	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	sess := middleware.AuthFromCtx(c).Session()

	var updated map[string]interface{}
	if err := sess.Put(c.UserContext(), path, body, &updated); err != nil {
		return respondUpstream(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *AdminHandler) proxyDelete(c *fiber.Ctx, path string) error {
	sess := middleware.AuthFromCtx(c).Session()

	if err := sess.Delete(c.UserContext(), path); err != nil {
		return respondUpstream(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
