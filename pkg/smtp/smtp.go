package smtp

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
)

type ItfSmtp interface {
	SendIncidentMail(to string, subject string, htmlBody string, mainImage []byte, evidence [][]byte) error
}

type smtp struct {
	dialer *gomail.Dialer
	from   string
}

func New() ItfSmtp {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		host = "smtp.gmail.com"
	}

	port := 465
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			port = p
		}
	}

	mail := os.Getenv("SMTP_MAIL")
	password := os.Getenv("SMTP_PASSWORD")

	dialer := gomail.NewDialer(host, port, mail, password)
	dialer.SSL = port == 465

	return &smtp{dialer: dialer, from: mail}
}

// SendIncidentMail sends an HTML notification with the main photo and any
// evidence photos embedded inline via Content-ID references.
func (s *smtp) SendIncidentMail(to string, subject string, htmlBody string, mainImage []byte, evidence [][]byte) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)

	html := htmlBody

	if len(mainImage) > 0 {
		cid := fmt.Sprintf("imgprincipal-%s.jpg", uuid.NewString())
		embedImage(m, cid, mainImage)
		html += mainImageSection(cid)
	}

	if len(evidence) > 0 {
		cids := make([]string, 0, len(evidence))
		for i, img := range evidence {
			cid := fmt.Sprintf("evidencia-%d-%s.jpg", i, uuid.NewString())
			embedImage(m, cid, img)
			cids = append(cids, cid)
		}
		html += evidenceSection(cids)
	}

	m.SetBody("text/html", html)

	return s.dialer.DialAndSend(m)
}

func embedImage(m *gomail.Message, name string, data []byte) {
	m.Embed(name, gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	}))
}

func mainImageSection(cid string) string {
	return fmt.Sprintf(`
<h3>Imagen principal</h3>
<img src="cid:%s" style="max-width:25%%;border-radius:8px;margin-bottom:15px;">
`, cid)
}

func evidenceSection(cids []string) string {
	var sb strings.Builder
	sb.WriteString("<h3>Evidencias</h3>")
	for i, cid := range cids {
		sb.WriteString(fmt.Sprintf(`
<p><b>Evidencia %d</b></p>
<img src="cid:%s" style="max-width:25%%;border-radius:8px;margin-bottom:20px;">
`, i+1, cid))
	}
	return sb.String()
}
