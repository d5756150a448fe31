package mail

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/tuumbleweed/xerr"
)

// Plain-text part for transports whose builders require one.
const plainFallback = "Este e-mail contém um relatório em HTML. Utilize um cliente com suporte a HTML para visualizá-lo."

/*
sendSendgrid delivers one message through the SendGrid API. SENDGRID_API_KEY
comes from the environment.
*/
func sendSendgrid(from string, msg Message) (e *xerr.Error) {
	message := sgmail.NewSingleEmail(
		sgmail.NewEmail("", from), msg.Subject, sgmail.NewEmail("", msg.To),
		plainFallback, msg.HTML,
	)

	if msg.AttachmentPath != "" {
		attachmentBytes, readErr := os.ReadFile(msg.AttachmentPath)
		if readErr != nil {
			e = xerr.NewError(readErr, "read attachment", msg.AttachmentPath)
			return e
		}

		attachment := sgmail.NewAttachment()
		attachment.SetContent(base64.StdEncoding.EncodeToString(attachmentBytes))
		attachment.SetType("application/octet-stream")
		attachment.SetFilename(filepath.Base(msg.AttachmentPath))
		attachment.SetDisposition("attachment")
		message.AddAttachment(attachment)
	}

	client := sendgrid.NewSendClient(os.Getenv("SENDGRID_API_KEY"))
	response, sendErr := client.Send(message)
	if sendErr != nil {
		e = xerr.NewError(sendErr, "send mail via SendGrid", msg.To)
		return e
	}
	if response.StatusCode >= 300 {
		err := fmt.Errorf("status %d: %s", response.StatusCode, response.Body)
		e = xerr.NewError(err, "send mail via SendGrid", msg.To)
		return e
	}
	return e
}
