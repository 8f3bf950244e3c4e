package webui

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// NewApp wires the dashboard routes behind the usual middleware stack.
func NewApp(api *API) *fiber.App {
	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000",
		AllowMethods:     "GET,POST",
		AllowHeaders:     "Content-Type",
		AllowCredentials: true,
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	app.Get("/api/categories", api.HandleCategories)
	app.Post("/api/packs/import", api.HandleImportPack)
	app.Post("/api/quiz/start", api.HandleStartQuiz)
	app.Get("/api/quiz/question", api.HandleCurrentQuestion)
	app.Post("/api/quiz/answer", api.HandleSubmitAnswer)
	app.Post("/api/quiz/reset", api.HandleResetQuiz)

	return app
}
