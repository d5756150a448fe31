package mail

import (
	"context"
	"encoding/base64"
	"net/http"

	"github.com/tuumbleweed/xerr"
	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

type gmailTransport struct {
	service *gmailapi.Service
}

func newGmailTransport(ctx context.Context, httpClient *http.Client) (transport *gmailTransport, e *xerr.Error) {
	service, buildErr := gmailapi.NewService(ctx, option.WithHTTPClient(httpClient))
	if buildErr != nil {
		e = xerr.NewError(buildErr, "build Gmail service", nil)
		return nil, e
	}
	return &gmailTransport{service: service}, e
}

/*
send assembles the raw MIME form and sends it as the authorized user.
*/
func (t *gmailTransport) send(from string, msg Message) (e *xerr.Error) {
	raw, e := buildMIME(from, msg)
	if e != nil {
		return e
	}

	payload := &gmailapi.Message{Raw: base64.URLEncoding.EncodeToString(raw)}
	_, sendErr := t.service.Users.Messages.Send("me", payload).Do()
	if sendErr != nil {
		e = xerr.NewError(sendErr, "send mail via Gmail", msg.To)
		return e
	}
	return e
}
