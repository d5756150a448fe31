package mail

import (
	"context"
	"fmt"
	"net/http"
	"time"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"
	"golang.org/x/time/rate"

	"github.com/PedroASilva38/RUPTURAS-QRZ/src/pkg/config"
)

// Provider selects the outbound transport.
type Provider string

const (
	ProviderGmail    Provider = "gmail"
	ProviderMailgun  Provider = "mailgun"
	ProviderSendgrid Provider = "sendgrid"
	ProviderSES      Provider = "ses"
)

// deliverFunc is one provider's transport call.
type deliverFunc func(ctx context.Context, msg Message) *xerr.Error

/*
Sender dispatches messages through the configured provider, one transport
call per message, no retries.

Sends are paced to one per second to stay inside provider quotas; they
remain sequential and blocking either way.
*/
type Sender struct {
	cfg      *config.Config
	provider Provider
	deliver  deliverFunc
	limiter  *rate.Limiter
}

/*
NewSender builds a Sender for cfg.Provider. httpClient is the authorized
Google client and is only consulted for the gmail provider; the other
providers take their credentials from the environment.
*/
func NewSender(ctx context.Context, cfg *config.Config, httpClient *http.Client) (sender *Sender, e *xerr.Error) {
	sender = &Sender{
		cfg:      cfg,
		provider: Provider(cfg.Provider),
		limiter:  rate.NewLimiter(rate.Every(time.Second), 1),
	}

	switch sender.provider {
	case ProviderGmail:
		transport, e := newGmailTransport(ctx, httpClient)
		if e != nil {
			return nil, e
		}
		sender.deliver = func(ctx context.Context, msg Message) *xerr.Error {
			return transport.send(cfg.SenderAddress, msg)
		}
	case ProviderMailgun:
		sender.deliver = func(ctx context.Context, msg Message) *xerr.Error {
			return sendMailgun(ctx, cfg.SenderAddress, msg)
		}
	case ProviderSendgrid:
		sender.deliver = func(ctx context.Context, msg Message) *xerr.Error {
			return sendSendgrid(cfg.SenderAddress, msg)
		}
	case ProviderSES:
		sender.deliver = func(ctx context.Context, msg Message) *xerr.Error {
			return sendSES(ctx, cfg.SenderAddress, msg)
		}
	default:
		err := fmt.Errorf("unknown provider '%s'", cfg.Provider)
		e = xerr.NewError(err, "configure mail sender", nil)
		return nil, e
	}

	return sender, e
}

/*
Send delivers one message. In test mode the recipient is rewritten to the
configured test address here, at the dispatch boundary, so routing and
grouping upstream never see the substitution.

A failure is returned for the caller to record; it never aborts the run.
*/
func (s *Sender) Send(ctx context.Context, msg Message) (e *xerr.Error) {
	if s.cfg.TestMode {
		tl.Log(
			tl.Info, palette.Purple, "Test mode: rerouting mail for '%s' to '%s'",
			msg.To, s.cfg.TestAddress,
		)
		msg.To = s.cfg.TestAddress
	}

	waitErr := s.limiter.Wait(ctx)
	if waitErr != nil {
		e = xerr.NewError(waitErr, "wait for send slot", msg.To)
		return e
	}

	e = s.deliver(ctx, msg)
	if e != nil {
		return e
	}

	tl.Log(tl.Info1, palette.Green, "Mail sent to '%s': '%s'", msg.To, msg.Subject)
	return e
}
