package mail

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tuumbleweed/xerr"
	"golang.org/x/time/rate"

	"github.com/PedroASilva38/RUPTURAS-QRZ/src/pkg/config"
)

func stubbedSender(cfg *config.Config, provider Provider, delivered *[]Message) *Sender {
	return &Sender{
		cfg:      cfg,
		provider: provider,
		limiter:  rate.NewLimiter(rate.Inf, 1),
		deliver: func(ctx context.Context, msg Message) *xerr.Error {
			*delivered = append(*delivered, msg)
			return nil
		},
	}
}

func TestSendRewritesRecipientInTestMode(t *testing.T) {
	cfg := &config.Config{
		SenderAddress: "comercial@empresa.com",
		TestMode:      true,
		TestAddress:   "teste@empresa.com",
	}

	providers := []Provider{ProviderGmail, ProviderMailgun, ProviderSendgrid, ProviderSES}
	for _, provider := range providers {
		t.Run(string(provider), func(t *testing.T) {
			delivered := make([]Message, 0)
			sender := stubbedSender(cfg, provider, &delivered)

			original := Message{
				To:      "gerente.norte@empresa.com",
				Subject: "Relatório de Rupturas - 05 - Norte",
				HTML:    "<p>corpo</p>",
			}

			e := sender.Send(context.Background(), original)
			require.Nil(t, e)

			require.Len(t, delivered, 1)
			assert.Equal(t, "teste@empresa.com", delivered[0].To)
			assert.Equal(t, original.Subject, delivered[0].Subject)
			assert.Equal(t, original.HTML, delivered[0].HTML)

			// The caller's message is untouched: the rewrite happens at
			// the dispatch boundary only, never upstream.
			assert.Equal(t, "gerente.norte@empresa.com", original.To)
		})
	}
}

func TestSendKeepsRecipientInProductionMode(t *testing.T) {
	cfg := &config.Config{
		SenderAddress: "comercial@empresa.com",
		TestMode:      false,
		TestAddress:   "teste@empresa.com",
	}

	delivered := make([]Message, 0)
	sender := stubbedSender(cfg, ProviderGmail, &delivered)

	e := sender.Send(context.Background(), Message{To: "gerente.norte@empresa.com"})
	require.Nil(t, e)

	require.Len(t, delivered, 1)
	assert.Equal(t, "gerente.norte@empresa.com", delivered[0].To)
}

func TestSendPacesDeliveries(t *testing.T) {
	cfg := &config.Config{SenderAddress: "comercial@empresa.com"}

	delivered := make([]Message, 0)
	sender := stubbedSender(cfg, ProviderGmail, &delivered)
	sender.limiter = rate.NewLimiter(rate.Every(10*time.Millisecond), 1)

	started := time.Now()
	for index := 0; index < 3; index += 1 {
		e := sender.Send(context.Background(), Message{To: "gerente@empresa.com"})
		require.Nil(t, e)
	}

	assert.Len(t, delivered, 3)
	assert.GreaterOrEqual(t, time.Since(started), 20*time.Millisecond)
}
