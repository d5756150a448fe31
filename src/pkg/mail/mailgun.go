package mail

import (
	"context"
	"os"
	"path/filepath"

	"github.com/mailgun/mailgun-go/v4"
	"github.com/tuumbleweed/xerr"
)

/*
sendMailgun delivers one message through the Mailgun API. MAILGUN_DOMAIN
and MAILGUN_API_KEY come from the environment.
*/
func sendMailgun(ctx context.Context, from string, msg Message) (e *xerr.Error) {
	mg := mailgun.NewMailgun(os.Getenv("MAILGUN_DOMAIN"), os.Getenv("MAILGUN_API_KEY"))

	message := mailgun.NewMessage(from, msg.Subject, plainFallback, msg.To)
	message.SetHTML(msg.HTML)

	if msg.AttachmentPath != "" {
		attachmentBytes, readErr := os.ReadFile(msg.AttachmentPath)
		if readErr != nil {
			e = xerr.NewError(readErr, "read attachment", msg.AttachmentPath)
			return e
		}
		message.AddBufferAttachment(filepath.Base(msg.AttachmentPath), attachmentBytes)
	}

	_, _, sendErr := mg.Send(ctx, message)
	if sendErr != nil {
		e = xerr.NewError(sendErr, "send mail via Mailgun", msg.To)
		return e
	}
	return e
}
