package controller

import (
	"encoding/csv"
	"errors"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"leadfinder/activity"
	"leadfinder/ingest"
	"leadfinder/models"
	"leadfinder/pipeline"
	"leadfinder/stats"
	"leadfinder/utils"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LeadController struct {
	DB        *gorm.DB
	Activity  *activity.Logger
	Processor *pipeline.Processor
	Logger    *log.Logger
}

func NewLeadController(db *gorm.DB, act *activity.Logger, processor *pipeline.Processor, logger *log.Logger) *LeadController {
	return &LeadController{
		DB:        db,
		Activity:  act,
		Processor: processor,
		Logger:    logger,
	}
}

// GetLeads returns every lead, newest first
func (lc *LeadController) GetLeads(c *fiber.Ctx) error {
	var leads []models.Lead
	if err := lc.DB.Order("created_at DESC").Find(&leads).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch leads", err)
	}
	return c.JSON(utils.SuccessResponse(leads))
}

// CreateLead creates a single lead manually with validation
func (lc *LeadController) CreateLead(c *fiber.Ctx) error {
	var input struct {
		Name        string  `json:"name" validate:"required,max=200"`
		Email       string  `json:"email" validate:"required,email"`
		Company     string  `json:"company" validate:"omitempty,max=200"`
		CompanySize string  `json:"company_size" validate:"omitempty,oneof=small medium large enterprise"`
		Industry    string  `json:"industry" validate:"omitempty,max=100"`
		Budget      float64 `json:"budget" validate:"omitempty,gte=0"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	// Check if lead already exists
	var existingLead models.Lead
	if err := lc.DB.Where("email = ?", email).First(&existingLead).Error; err == nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Lead with this email already exists", nil)
	}

	lead := models.Lead{
		Name:        strings.TrimSpace(input.Name),
		Email:       email,
		Company:     strings.TrimSpace(input.Company),
		CompanySize: strings.ToLower(input.CompanySize),
		Industry:    strings.TrimSpace(input.Industry),
		Budget:      input.Budget,
		Priority:    models.PriorityLow,
		Source:      models.SourceManual,
	}

	if err := lc.DB.Create(&lead).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create lead", err)
	}

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(lead))
}

// UploadLeads ingests leads from an uploaded CSV file
func (lc *LeadController) UploadLeads(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "File upload error", err)
	}

	// Check file size (max 5MB)
	if file.Size > 5<<20 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "File too large (max 5MB)", nil)
	}

	src, err := file.Open()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to open file", err)
	}
	defer src.Close()

	raw, err := io.ReadAll(src)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to read file", err)
	}

	// Collect emails already in the store for deduplication
	var existingEmails []string
	if err := lc.DB.Model(&models.Lead{}).Pluck("email", &existingEmails).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch existing leads", err)
	}
	known := make(map[string]struct{}, len(existingEmails))
	for _, email := range existingEmails {
		known[email] = struct{}{}
	}

	leads, skipped, err := ingest.Parse(raw, known)
	if err != nil {
		lc.Activity.LogError("CSV upload rejected", models.EventData{
			"filename": file.Filename,
			"error":    err.Error(),
		})
		if errors.Is(err, ingest.ErrMalformedCSV) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Failed to parse CSV file", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to ingest leads", err)
	}

	// Insert the whole batch in one transaction. ON CONFLICT DO NOTHING
	// backstops a concurrent upload inserting the same email first; such
	// rows count as skipped, never as duplicates.
	inserted := 0
	err = lc.DB.Transaction(func(tx *gorm.DB) error {
		for i := range leads {
			result := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "email"}},
				DoNothing: true,
			}).Create(&leads[i])
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				skipped++
				continue
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		sentry.CaptureException(err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to insert leads", err)
	}

	lc.Logger.Printf("csv upload %q: %d inserted, %d skipped", file.Filename, inserted, skipped)
	lc.Activity.LogCSVUpload(file.Filename, inserted)

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"inserted": inserted,
		"skipped":  skipped,
	}))
}

// ProcessLeads runs the scoring pipeline over the full lead set and commits
// the batch as one atomic update
func (lc *LeadController) ProcessLeads(c *fiber.Ctx) error {
	var result pipeline.Result

	err := lc.DB.Transaction(func(tx *gorm.DB) error {
		var leads []models.Lead
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Find(&leads).Error; err != nil {
			return err
		}

		processed, res := lc.Processor.Process(leads)
		result = res

		for i := range processed {
			if err := tx.Save(&processed[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		sentry.CaptureException(err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to process leads", err)
	}

	return c.JSON(utils.SuccessResponse(result))
}

// GetLeadStats returns the dashboard summary computed from the live lead set
func (lc *LeadController) GetLeadStats(c *fiber.Ctx) error {
	var leads []models.Lead
	if err := lc.DB.Find(&leads).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch leads", err)
	}
	return c.JSON(utils.SuccessResponse(stats.Compute(leads)))
}

// DeleteLead deletes a single lead
func (lc *LeadController) DeleteLead(c *fiber.Ctx) error {
	leadID := c.Params("id")

	result := lc.DB.Unscoped().Where("id = ?", leadID).Delete(&models.Lead{})
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete lead", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Lead not found", nil)
	}

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"message": "Lead deleted successfully",
	}))
}

// DeleteAllLeads removes every lead from the store
func (lc *LeadController) DeleteAllLeads(c *fiber.Ctx) error {
	result := lc.DB.Unscoped().Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Lead{})
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete leads", result.Error)
	}

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"message": "All leads deleted successfully",
		"deleted": result.RowsAffected,
	}))
}

// GetSampleCSV returns the downloadable CSV upload template
func (lc *LeadController) GetSampleCSV(c *fiber.Ctx) error {
	return c.JSON(utils.SuccessResponse(fiber.Map{
		"csv_content": ingest.SampleCSV(),
	}))
}

// ExportLeads exports the current lead set to CSV
func (lc *LeadController) ExportLeads(c *fiber.Ctx) error {
	var leads []models.Lead
	if err := lc.DB.Order("score DESC").Find(&leads).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch leads", err)
	}

	c.Set("Content-Type", "text/csv")
	c.Set("Content-Disposition", "attachment; filename=leads_export_"+time.Now().Format("20060102")+".csv")

	writer := csv.NewWriter(c)
	defer writer.Flush()

	header := []string{"name", "email", "company", "company_size", "industry", "budget", "score", "priority", "email_sent"}
	if err := writer.Write(header); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate CSV", err)
	}

	for _, lead := range leads {
		record := []string{
			lead.Name,
			lead.Email,
			lead.Company,
			lead.CompanySize,
			lead.Industry,
			strconv.FormatFloat(lead.Budget, 'f', -1, 64),
			strconv.Itoa(lead.Score),
			lead.Priority,
			strconv.FormatBool(lead.EmailSent),
		}
		if err := writer.Write(record); err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate CSV", err)
		}
	}

	return nil
}
