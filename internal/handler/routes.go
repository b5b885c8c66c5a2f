package handler

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the API group. Static and SPA routes are mounted by
// the caller, which knows the directory layout.
func RegisterRoutes(app *fiber.App, submissions *SubmissionHandler, packages *PackageHandler) {
	api := app.Group("/api")

	api.Get("/health", submissions.Health)
	api.Get("/packages", packages.GetPackages)
	api.Get("/packages/:code", packages.GetPackageByCode)
	api.Get("/love/:slug", submissions.GetLovePage)
	api.Get("/love/:slug/qr", submissions.GetLovePageQR)
	api.Post("/create-love-page", submissions.CreateLovePage)
}
