package services

import (
	"fmt"
	"html"

	"gopkg.in/gomail.v2"

	"github.com/Abburizal/royal-wedding-byullysjah/app/config"
	"github.com/Abburizal/royal-wedding-byullysjah/app/models"
)

// Mailer sends intake notifications to the business inbox over SMTP.
type Mailer struct {
	smtp config.SMTPConfig
	to   string
}

func NewMailer(smtp config.SMTPConfig, to string) *Mailer {
	return &Mailer{smtp: smtp, to: to}
}

// SendIntakeNotification mails a new submission to the configured
// recipient. The caller treats failures as non-fatal.
func (m *Mailer) SendIntakeNotification(inq *models.Inquiry) error {
	if m.smtp.Username == "" || m.smtp.Password == "" {
		return fmt.Errorf("smtp credentials not configured")
	}

	weddingDate := "Tidak disebutkan"
	if inq.WeddingDate != nil {
		weddingDate = inq.WeddingDate.Format("2 January 2006")
	}
	pkg := inq.Package
	if pkg == "" {
		pkg = "Tidak disebutkan"
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.smtp.From, inq.Name)
	msg.SetHeader("To", m.to)
	msg.SetHeader("Reply-To", inq.Email)
	msg.SetHeader("Subject", "Pesan Baru dari Website Royal Wedding by Ully Sjah")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Pesan Baru dari Website\n\nNama: %s\nEmail: %s\nNomor Telepon: %s\nTanggal Pernikahan: %s\nPaket: %s\n\nPesan:\n%s\n\nDikirim melalui website Royal Wedding by Ully Sjah\n",
		inq.Name, inq.Email, inq.Phone, weddingDate, pkg, inq.Message,
	))
	msg.AddAlternative("text/html", fmt.Sprintf(
		"<h2>Pesan Baru dari Website</h2>"+
			"<p><strong>Nama:</strong> %s</p>"+
			"<p><strong>Email:</strong> %s</p>"+
			"<p><strong>Nomor Telepon:</strong> %s</p>"+
			"<p><strong>Tanggal Pernikahan:</strong> %s</p>"+
			"<p><strong>Paket:</strong> %s</p>"+
			"<p><strong>Pesan:</strong></p><p>%s</p>"+
			"<hr><p><small>Dikirim melalui website Royal Wedding by Ully Sjah</small></p>",
		html.EscapeString(inq.Name), html.EscapeString(inq.Email), html.EscapeString(inq.Phone),
		weddingDate, pkg, html.EscapeString(inq.Message),
	))

	dialer := gomail.NewDialer(m.smtp.Host, m.smtp.Port, m.smtp.Username, m.smtp.Password)
	return dialer.DialAndSend(msg)
}
