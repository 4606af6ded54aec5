package controller

import (
	"log"
	"strconv"

	"leadfinder/activity"
	"leadfinder/utils"

	"github.com/gofiber/fiber/v2"
)

type ActivityController struct {
	Activity *activity.Logger
	Logger   *log.Logger
}

func NewActivityController(act *activity.Logger, logger *log.Logger) *ActivityController {
	return &ActivityController{
		Activity: act,
		Logger:   logger,
	}
}

// GetLogs returns the most recent activity entries, newest first
func (ac *ActivityController) GetLogs(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", strconv.Itoa(activity.DefaultLimit)))

	entries, err := ac.Activity.Recent(limit)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch activity log", err)
	}

	return c.JSON(utils.SuccessResponse(entries))
}

// ClearLogs removes every activity entry
func (ac *ActivityController) ClearLogs(c *fiber.Ctx) error {
	if err := ac.Activity.Clear(); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to clear activity log", err)
	}

	ac.Logger.Println("activity log cleared")
	return c.JSON(utils.SuccessResponse(fiber.Map{
		"message": "Activity log cleared",
	}))
}
