package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/medicare-console/internal/application/navigation"
	"github.com/jhoicas/medicare-console/internal/application/usecase"
	"github.com/jhoicas/medicare-console/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Console     ConsoleConfig
	Gate        GateRecorder
	LoginPerMin int

	DashboardUC *usecase.DashboardUseCase
	PatientUC   *usecase.PatientUseCase
	CaretakerUC *usecase.CaretakerUseCase
	DonationUC  *usecase.DonationUseCase
	ReportUC    *usecase.ReportUseCase
}

// Router registra las rutas de la consola. Todas pasan por Console; cada
// grupo declara su requisito de navegación con Gate.
func Router(app fiber.Router, deps RouterDeps) {
	console := app.Group("/", Console(deps.Console))
	public := Gate(navigation.Public(), deps.Gate)

	// Auth (público)
	authHandler := NewAuthHandler()
	console.Get("/login", public, authHandler.LoginPage)
	authGroup := console.Group("/auth", public)
	authGroup.Post("/login", LoginLimiter(deps.LoginPerMin), authHandler.Login)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/session", authHandler.Session)

	// Inicios de rol
	home := NewHomeHandler()
	for _, role := range []entity.Role{entity.RolePatient, entity.RoleCaretaker, entity.RoleDonor} {
		console.Get("/"+string(role)+"/dashboard", Gate(navigation.Role(role), deps.Gate), home.For(role))
	}

	// Administración (rol admin)
	admin := console.Group("/admin", Gate(navigation.Role(entity.RoleAdmin), deps.Gate))

	dashboard := NewDashboardHandler(deps.DashboardUC, deps.ReportUC)
	admin.Get("/dashboard", dashboard.Get)
	admin.Get("/users", dashboard.Users)
	admin.Patch("/users/:id/status", dashboard.ToggleStatus)
	admin.Get("/analytics/dashboard", dashboard.EnhancedAnalytics)
	admin.Get("/activity", dashboard.Activity)
	admin.Get("/reports/analytics.pdf", dashboard.Report)

	patients := NewPatientHandler(deps.PatientUC)
	admin.Get("/patients", patients.List)
	admin.Get("/patients/:id", patients.Details)
	admin.Patch("/patients/:id", patients.Update)

	caretakers := NewCaretakerHandler(deps.CaretakerUC)
	admin.Get("/caretakers", caretakers.List)
	admin.Get("/caretakers/assignable-patients", caretakers.AssignablePatients)
	admin.Get("/caretakers/:id", caretakers.Details)
	admin.Post("/caretakers/:id/patients", caretakers.Assign)
	admin.Get("/links", caretakers.Links)
	admin.Delete("/links/:id", caretakers.RemoveLink)

	donations := NewDonationHandler(deps.DonationUC)
	admin.Get("/donation-requests", donations.Requests)
	admin.Post("/donation-requests", donations.Create)
	admin.Patch("/donation-requests/:id/approve", donations.Approve)
	admin.Patch("/donation-requests/:id/reject", donations.Reject)
	admin.Get("/donation-requests/:id/donors", donations.FindDonors)
	admin.Post("/donation-requests/:id/notify", donations.Notify)
	admin.Get("/donations", donations.Donations)
}
