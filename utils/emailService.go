package utils

import (
	"encoding/base64"
	"fmt"
	"log"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"ojtms/config"
)

// SendCertificateEmail sends the certificate email with the PDF
// attached. It runs asynchronously; failures are logged, never
// surfaced, since the certificate stays valid without the email.
func SendCertificateEmail(toEmail, toName, batchName, certificateNo string, pdf []byte, filename string) {
	go func() {
		if err := sendCertificateEmail(toEmail, toName, batchName, certificateNo, pdf, filename); err != nil {
			log.Printf("Failed to send certificate email to %s: %v", toEmail, err)
		}
	}()
}

func sendCertificateEmail(toEmail, toName, batchName, certificateNo string, pdf []byte, filename string) error {
	if toEmail == "" {
		return nil
	}
	if config.AppConfig.SendgridApiKey == "" {
		log.Printf("--- Certificate Email (no SENDGRID_API_KEY, not sent) ---\nTo: %s\nCertificate: %s\n", toEmail, certificateNo)
		return nil
	}

	from := mail.NewEmail(config.AppConfig.EmailFromName, config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	subject := "Your OJT Completion Certificate " + certificateNo

	plain := fmt.Sprintf("Dear %s,\n\nCongratulations on completing %s! Your certificate %s is attached.\n", toName, batchName, certificateNo)
	html := getEmailTemplate("Congratulations!", fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Congratulations on completing <strong>%s</strong>!</p>
		<p>Your completion certificate <strong>%s</strong> is attached to this email.
		Its authenticity can be verified at any time by scanning the QR code on the document.</p>
	`, toName, batchName, certificateNo))

	m := mail.NewSingleEmail(from, subject, to, plain, html)

	attachment := mail.NewAttachment()
	attachment.SetContent(base64.StdEncoding.EncodeToString(pdf))
	attachment.SetType("application/pdf")
	attachment.SetFilename(filename)
	attachment.SetDisposition("attachment")
	m.AddAttachment(attachment)

	client := sendgrid.NewSendClient(config.AppConfig.SendgridApiKey)
	resp, err := client.Send(m)
	if err != nil {
		return err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

// getEmailTemplate wraps body content in the standard program layout.
func getEmailTemplate(title, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #00004D; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #00004D; line-height: 1.6; }
			.content h2 { color: #00004D; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>OJT PROGRAM OFFICE</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				This certificate was generated automatically by the OJT batch management system.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}
