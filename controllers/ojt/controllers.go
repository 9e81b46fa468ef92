package controllers

import (
	"time"

	"gorm.io/datatypes"

	"ojtms/services"
)

// CertService is the issuance workflow shared by the controllers,
// wired in main with the real renderer and notifier.
var CertService *services.CertificateService

// InitServices injects the certificate service. Called once at startup
// (and by tests with stub collaborators).
func InitServices(svc *services.CertificateService) {
	CertService = svc
}

// parseDate parses a YYYY-MM-DD request value; ok is false when the
// value is present but malformed.
func parseDate(value string) (datatypes.Date, bool) {
	if value == "" {
		return datatypes.Date{}, true
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return datatypes.Date{}, false
	}
	return datatypes.Date(t), true
}
