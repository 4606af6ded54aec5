package routes

import (
	"log"
	"os"

	"leadfinder/activity"
	"leadfinder/config"
	controller "leadfinder/controllers"
	"leadfinder/middleware"
	"leadfinder/pipeline"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	activityLogger := activity.NewLogger(db)

	dispatcher := buildDispatcher()
	processor := pipeline.NewProcessor(dispatcher, activityLogger,
		log.New(os.Stdout, "PIPELINE: ", log.LstdFlags))

	leadController := controller.NewLeadController(db, activityLogger, processor,
		log.New(os.Stdout, "LEAD: ", log.LstdFlags))
	activityController := controller.NewActivityController(activityLogger,
		log.New(os.Stdout, "ACTIVITY: ", log.LstdFlags))

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// API group with request logging
	api := app.Group("/api", logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Lead routes
	lead := api.Group("/leads")
	lead.Get("/", leadController.GetLeads)
	lead.Post("/", leadController.CreateLead)
	lead.Post("/upload", middleware.UploadRateLimiter(), leadController.UploadLeads)
	lead.Post("/process", leadController.ProcessLeads)
	lead.Get("/stats", leadController.GetLeadStats)
	lead.Get("/export", leadController.ExportLeads)
	lead.Delete("/:id", leadController.DeleteLead)
	lead.Delete("/", leadController.DeleteAllLeads)

	// Sample CSV template
	api.Get("/sample-csv", leadController.GetSampleCSV)

	// Activity log routes
	api.Get("/logs", activityController.GetLogs)
	api.Delete("/logs", activityController.ClearLogs)

	// Setup 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "Not Found",
			"message": "The requested resource was not found",
		})
	})

	log.Println("API routes initialized successfully")
}

// buildDispatcher selects the outreach implementation. Mock mode is the
// default and never touches the network.
func buildDispatcher() pipeline.Dispatcher {
	if config.AppConfig.MockEmailMode {
		return pipeline.NewMockDispatcher(log.New(os.Stdout, "OUTREACH: ", log.LstdFlags))
	}
	smtp := config.AppConfig.SMTP
	return pipeline.NewSMTPDispatcher(smtp.Host, smtp.Port, smtp.Username, smtp.Password,
		config.AppConfig.FromEmail)
}
