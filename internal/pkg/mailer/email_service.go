package mailer

import (
	"fmt"
	"io"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendDisclosure(toEmail, conversationId, title, document string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderEmail, senderName string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		senderName:  senderName,
	}
}

// SendDisclosure mails the finished LaTeX document to the technology
// transfer office, attached as a .tex file.
func (s *emailService) SendDisclosure(toEmail, conversationId, title, document string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Divulgación de invención: %s", title))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Nueva divulgación de invención</h2>
			<p>Se ha completado el borrador <strong>%s</strong> (sesión %s).</p>
			<p>El documento LaTeX se adjunta a este correo.</p>
		</div>
	`, title, conversationId)

	m.SetBody("text/html", body)
	m.Attach(
		fmt.Sprintf("%s.tex", conversationId),
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write([]byte(document))
			return err
		}),
	)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send disclosure for %s: %v\n", conversationId, err)
		return err
	}

	fmt.Printf("[MAILER] Disclosure %s sent to %s\n", conversationId, toEmail)
	return nil
}
