package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"ojtms/database"
	"ojtms/middleware"
	"ojtms/models/ojt"
	validators "ojtms/validators/ojt"
)

// CreateEvent schedules a batch event
func CreateEvent(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedEvent").(*validators.CreateEventRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var batch ojt.Batch
	if err := database.Database.Db.First(&batch, reqData.BatchID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Batch not found!", nil)
	}

	eventDate, okDate := parseDate(reqData.EventDate)
	if !okDate {
		return middleware.ValidationErrorResponse(c, map[string]string{
			"event_date": "Event date must use the YYYY-MM-DD format!",
		})
	}

	event := ojt.Event{
		BatchID:    reqData.BatchID,
		Name:       reqData.Name,
		EventDate:  eventDate,
		Supervisor: reqData.Supervisor,
		Mandatory:  true,
		Status:     ojt.EventPlanned,
	}
	if reqData.Mandatory != nil {
		event.Mandatory = *reqData.Mandatory
	}

	if err := database.Database.Db.Create(&event).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create event!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Event created successfully!", event)
}

// GetEvents lists events, optionally filtered by batch
func GetEvents(c *fiber.Ctx) error {
	db := database.Database.Db.Model(&ojt.Event{})

	if batchID := c.QueryInt("batch_id", 0); batchID > 0 {
		db = db.Where("batch_id = ?", batchID)
	}

	var events []ojt.Event
	if err := db.Order("event_date desc").Find(&events).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch events!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Events fetched successfully!", fiber.Map{
		"events": events,
		"total":  len(events),
	})
}

// RecordAttendance marks one participant's presence at one event. The
// unique (participant, event) index rejects duplicates.
func RecordAttendance(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedAttendance").(*validators.RecordAttendanceRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var participant ojt.Participant
	if err := database.Database.Db.First(&participant, reqData.ParticipantID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Participant not found!", nil)
	}

	var event ojt.Event
	if err := database.Database.Db.First(&event, reqData.EventID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Event not found!", nil)
	}

	if participant.BatchID != event.BatchID {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Participant and event belong to different batches!", nil)
	}

	var existing ojt.Attendance
	if err := database.Database.Db.
		Where("participant_id = ? AND event_id = ?", reqData.ParticipantID, reqData.EventID).
		First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Attendance already recorded for this participant and event!", existing)
	}

	now := time.Now()
	attendance := ojt.Attendance{
		ParticipantID: reqData.ParticipantID,
		EventID:       reqData.EventID,
		Presence:      reqData.Presence,
		Remarks:       reqData.Remarks,
	}
	if reqData.Presence == ojt.PresencePresent || reqData.Presence == ojt.PresenceLate {
		attendance.CheckIn = &now
	}

	if err := database.Database.Db.Create(&attendance).Error; err != nil {
		// Concurrent duplicate loses on the unique index
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Attendance already recorded for this participant and event!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Attendance recorded successfully!", attendance)
}

// GetAttendance lists a participant's attendance records
func GetAttendance(c *fiber.Ctx) error {
	participantID := c.Locals("participantID").(uint)

	var records []ojt.Attendance
	if err := database.Database.Db.
		Where("participant_id = ?", participantID).
		Order("created_at desc").
		Find(&records).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch attendance!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attendance fetched successfully!", fiber.Map{
		"attendance": records,
		"total":      len(records),
	})
}
