package controllers

import (
	"github.com/gofiber/fiber/v2"

	"ojtms/database"
	"ojtms/middleware"
	"ojtms/models/ojt"
	validators "ojtms/validators/ojt"
)

// CreateBatch creates a new OJT batch
func CreateBatch(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedBatch").(*validators.CreateBatchRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	startDate, okStart := parseDate(reqData.StartDate)
	endDate, okEnd := parseDate(reqData.EndDate)
	if !okStart || !okEnd {
		return middleware.ValidationErrorResponse(c, map[string]string{
			"date": "Dates must use the YYYY-MM-DD format!",
		})
	}

	batch := ojt.Batch{
		Name:      reqData.Name,
		StartDate: startDate,
		EndDate:   endDate,
		Status:    ojt.BatchDraft,
	}
	if reqData.MinAttendancePct != nil {
		batch.MinAttendancePct = *reqData.MinAttendancePct
	} else {
		batch.MinAttendancePct = 75
	}
	if reqData.MinScorePct != nil {
		batch.MinScorePct = *reqData.MinScorePct
	} else {
		batch.MinScorePct = 70
	}

	if err := database.Database.Db.Create(&batch).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create batch!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Batch created successfully!", batch)
}

// GetBatches lists batches with pagination
func GetBatches(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&ojt.Batch{})

	var total int64
	db.Count(&total)

	var batches []ojt.Batch
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&batches).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch batches!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Batches fetched successfully!", fiber.Map{
		"batches": batches,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetBatch fetches one batch with its participants
func GetBatch(c *fiber.Ctx) error {
	batchID := c.Locals("batchID").(uint)

	var batch ojt.Batch
	if err := database.Database.Db.Preload("Participants").First(&batch, batchID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Batch not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Batch fetched successfully!", batch)
}

// UpdateBatchStatus moves a batch through its lifecycle
func UpdateBatchStatus(c *fiber.Ctx) error {
	batchID := c.Locals("batchID").(uint)
	reqData, ok := c.Locals("validatedBatchStatus").(*validators.UpdateBatchStatusRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var batch ojt.Batch
	if err := database.Database.Db.First(&batch, batchID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Batch not found!", nil)
	}

	if err := database.Database.Db.Model(&batch).Update("status", reqData.Status).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update batch status!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Batch status updated successfully!", batch)
}

// GenerateCertificates issues certificates for all eligible
// participants of the batch. Per-participant failures are collected,
// not fatal to the run.
func GenerateCertificates(c *fiber.Ctx) error {
	batchID := c.Locals("batchID").(uint)

	result, err := CertService.GenerateBatchCertificates(batchID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, err.Error(), nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate generation completed!", result)
}
