package email

import (
	"bytes"
	"html/template"

	"github.com/resendlabs/resend-go"
	"go.uber.org/zap"
)

type EmailService struct {
	client   *resend.Client
	from     string
	fromName string
	logger   *zap.Logger
}

func NewEmailService(apiKey, from, fromName string, logger *zap.Logger) *EmailService {
	return &EmailService{
		client:   resend.NewClient(apiKey),
		from:     from,
		fromName: fromName,
		logger:   logger,
	}
}

var pageLinkTemplate = template.Must(template.New("page_link").Parse(`
<div style="font-family: Georgia, serif; color: #3f1a1f;">
  <h2>Your love page for {{.PartnerName}} is ready &#10084;</h2>
  <p>Share it whenever the moment feels right:</p>
  <p><a href="{{.Link}}">{{.Link}}</a></p>
  <p>With love,<br/>{{.FromName}}</p>
</div>`))

// SendPageLink mails the shareable link to the buyer. Callers treat this as
// best-effort; a delivery failure never fails the purchase.
func (s *EmailService) SendPageLink(to, partnerName, link string) error {
	var body bytes.Buffer
	err := pageLinkTemplate.Execute(&body, map[string]string{
		"PartnerName": partnerName,
		"Link":        link,
		"FromName":    s.fromName,
	})
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{to},
		Subject: "Your love page is ready",
		Html:    body.String(),
	}

	resp, err := s.client.Emails.Send(params)
	if err != nil {
		s.logger.Error("failed to send page link email",
			zap.String("to", to), zap.Error(err))
		return err
	}

	s.logger.Info("sent page link email",
		zap.String("to", to), zap.String("email_id", resp.Id))
	return nil
}
