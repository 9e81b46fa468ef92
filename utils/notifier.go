package utils

import (
	"ojtms/models/ojt"
)

// CertificateNotifier wires the email and SMS channels into the
// issuance workflow. Both channels are best-effort.
type CertificateNotifier struct{}

func (CertificateNotifier) NotifyIssued(cert ojt.Certificate, participant ojt.Participant) {
	SendCertificateEmail(participant.Email, participant.Name, cert.BatchName, cert.CertificateNo, cert.PDFFile, cert.PDFFilename)
	SendCertificateSMS(participant.Phone, cert.CertificateNo)
}
