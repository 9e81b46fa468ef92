package utils

import (
	"fmt"
	"log"

	"github.com/go-resty/resty/v2"

	"ojtms/config"
)

// SendCertificateSMS notifies the participant by SMS that their
// certificate was issued. Best-effort: failures are logged only.
func SendCertificateSMS(mobile, certificateNo string) {
	if mobile == "" || config.AppConfig.SmsApiURL == "" {
		return
	}
	go func() {
		if err := sendCertificateSMS(mobile, certificateNo); err != nil {
			log.Printf("Failed to send certificate SMS to %s: %v", mobile, err)
		}
	}()
}

func sendCertificateSMS(mobile, certificateNo string) error {
	client := resty.New()
	resp, err := client.R().
		SetFormData(map[string]string{
			"authorization": config.AppConfig.SmsApiKey,
			"sender_id":     config.AppConfig.SmsSender,
			"numbers":       mobile,
			"message":       fmt.Sprintf("Your OJT completion certificate %s has been issued. Check your email for the document.", certificateNo),
		}).
		Post(config.AppConfig.SmsApiURL)
	if err != nil {
		return err
	}
	if resp.StatusCode() != 200 {
		return fmt.Errorf("SMS gateway returned status %d: %s", resp.StatusCode(), resp.String())
	}
	log.Println("Certificate SMS sent successfully to", mobile)
	return nil
}
