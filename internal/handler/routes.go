package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cypher125/siwes/internal/domain"
	"github.com/cypher125/siwes/internal/handler/middleware"
)

// SetupRoutes wires the portal surface. The protected trees sit behind
// both guards: the edge guard (token presence, installed globally
// before the auth context) and the client guard (role check against
// the resolved state). Neither is sufficient alone.
func SetupRoutes(
	app *fiber.App,
	authHandler *AuthHandler,
	studentHandler *StudentHandler,
	supervisorHandler *SupervisorHandler,
	adminHandler *AdminHandler,
	healthHandler *HealthHandler,
) {
	// Health checks (public)
	app.Get("/health", healthHandler.Health)
	app.Get("/ready", healthHandler.Ready)

	// Auth routes (public)
	auth := app.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/staff-login", authHandler.StaffLogin)
	auth.Post("/surname-login", authHandler.SurnameLogin)
	auth.Post("/register", authHandler.Register)
	auth.Post("/logout", authHandler.Logout)
	auth.Get("/session", authHandler.Session)

	// Student tree
	student := app.Group("/student", middleware.RequireRole(domain.RoleStudent))
	student.Get("/profile", studentHandler.Profile)
	student.Put("/profile", studentHandler.UpdateProfile)
	student.Get("/logbook", studentHandler.Logbook)
	student.Post("/logbook", studentHandler.CreateEntry)
	student.Get("/evaluations", studentHandler.Evaluations)
	student.Get("/evaluations/:id", studentHandler.Evaluation)

	// Supervisor tree
	supervisor := app.Group("/supervisor", middleware.RequireRole(domain.RoleSupervisor))
	supervisor.Get("/dashboard", supervisorHandler.Dashboard)
	supervisor.Get("/profile", supervisorHandler.Profile)
	supervisor.Put("/profile", supervisorHandler.UpdateProfile)
	supervisor.Get("/students", supervisorHandler.Students)
	supervisor.Get("/students/:id", supervisorHandler.StudentDetails)
	supervisor.Get("/students/:id/logbook", supervisorHandler.StudentLogbook)
	supervisor.Get("/students/:id/reports", supervisorHandler.StudentReports)
	supervisor.Get("/logbook/:entryId", supervisorHandler.Entry)
	supervisor.Patch("/logbook/:entryId", supervisorHandler.ReviewEntry)
	supervisor.Get("/evaluations", supervisorHandler.PendingEvaluations)
	supervisor.Get("/reports", supervisorHandler.Reports)

	// Admin tree
	admin := app.Group("/admin", middleware.RequireRole(domain.RoleAdmin))
	admin.Get("/dashboard", adminHandler.Dashboard)
	admin.Get("/students", adminHandler.Students)
	admin.Post("/students", adminHandler.CreateStudent)
	admin.Get("/students/:id", adminHandler.StudentDetails)
	admin.Put("/students/:id", adminHandler.UpdateStudent)
	admin.Delete("/students/:id", adminHandler.DeleteStudent)
	admin.Get("/supervisors", adminHandler.Supervisors)
	admin.Post("/supervisors", adminHandler.CreateSupervisor)
	admin.Get("/supervisors/:id", adminHandler.SupervisorDetails)
	admin.Put("/supervisors/:id", adminHandler.UpdateSupervisor)
	admin.Delete("/supervisors/:id", adminHandler.DeleteSupervisor)
	admin.Get("/assignments", adminHandler.Assignments)
	admin.Post("/assignments", adminHandler.CreateAssignment)
	admin.Put("/assignments/:id", adminHandler.UpdateAssignment)
	admin.Delete("/assignments/:id", adminHandler.DeleteAssignment)
	admin.Get("/departments", adminHandler.Departments)
	admin.Post("/departments", adminHandler.CreateDepartment)
	admin.Get("/departments/stats", adminHandler.DepartmentStats)
	admin.Patch("/departments/:id", adminHandler.UpdateDepartment)
	admin.Delete("/departments/:id", adminHandler.DeleteDepartment)
	admin.Get("/companies", adminHandler.Companies)
}
