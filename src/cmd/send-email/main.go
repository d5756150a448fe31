// in case you need to create an entrypoint with multiple subprograms
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"github.com/PedroASilva38/RUPTURAS-QRZ/src/pkg/config"
	"github.com/PedroASilva38/RUPTURAS-QRZ/src/pkg/gauth"
	"github.com/PedroASilva38/RUPTURAS-QRZ/src/pkg/mail"
	"github.com/PedroASilva38/RUPTURAS-QRZ/src/pkg/util"
)

/*
Pick a provider and use it to send a test email, optionally with an
attachment, to verify credentials before a real reporting run.
*/
func testProvider(subprogram string, flags []string) {
	config.CheckIfEnvVarsPresent(
		"AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY", "AWS_REGION", // amazon ses
		"MAILGUN_DOMAIN", "MAILGUN_API_KEY", // mailgun
		"SENDGRID_API_KEY", // sendgrid
	)

	// common flags
	subprogramCmd := flag.NewFlagSet(subprogram, flag.ExitOnError)
	configPath := subprogramCmd.String("config", "./cfg/config.json", "Path to your configuration file.")

	// custom flags
	provider := subprogramCmd.String("provider", "gmail", "Provider to use when sending emails")
	recipientAddress := subprogramCmd.String("recipient", "", "Recipient's address")
	subject := subprogramCmd.String("subject", "Teste de envio", "Subject of the email")
	emailHtmlFilePath := subprogramCmd.String("html", "./tmp/email.html", "Html body of the email")
	attachmentPath := subprogramCmd.String("attachment", "", "Optional attachment path")
	credentialsPath := subprogramCmd.String("credentials", "./credentials.json", "OAuth client secret (gmail provider only)")
	tokenPath := subprogramCmd.String("token", "./token.json", "Cached OAuth token (gmail provider only)")

	// parse and init config
	xerr.QuitIfError(subprogramCmd.Parse(flags), "Unable to subprogramCmd.Parse")
	cfg := config.InitializeConfig(*configPath)
	cfg.Provider = *provider

	util.RequiredFlag(recipientAddress, "recipient")
	util.RequiredFlag(provider, "provider")
	util.EnsureFlags()

	htmlFileContentBytes, err := os.ReadFile(*emailHtmlFilePath)
	xerr.QuitIfError(err, fmt.Sprintf("Unable to read file '%s'", *emailHtmlFilePath))
	tl.Log(tl.Verbose, palette.BlueDim, "Full Email:\n```\n%s\n```", htmlFileContentBytes)

	ctx := context.Background()

	var httpClient *http.Client
	if cfg.Provider == string(mail.ProviderGmail) {
		client, e := gauth.Client(ctx, gauth.Options{
			CredentialsPath: *credentialsPath,
			TokenPath:       *tokenPath,
			Scopes:          []string{"https://www.googleapis.com/auth/gmail.send"},
		})
		e.QuitIf(xerr.ErrorTypeError)
		httpClient = client
	}

	sender, e := mail.NewSender(ctx, cfg, httpClient)
	e.QuitIf(xerr.ErrorTypeError)

	e = sender.Send(ctx, mail.Message{
		To:             *recipientAddress,
		Subject:        *subject,
		HTML:           string(htmlFileContentBytes),
		AttachmentPath: *attachmentPath,
	})
	e.QuitIf(xerr.ErrorTypeError)
}

func main() {
	// Check if there are enough arguments
	if len(os.Args) < 2 {
		tl.Log(tl.Error, palette.Red, "Usage: %s", "go run src/cmd/send-email/main.go subprogram_name(for example test-provider)")
		os.Exit(1)
	}
	subprogram := os.Args[1]
	flags := os.Args[2:]

	// Switch subprogram based on the first argument
	switch subprogram {
	case "test-provider":
		testProvider(subprogram, flags)
	default:
		tl.Log(tl.Error, palette.Red, "Unknown subprogram: %s", subprogram)
		os.Exit(1)
	}
}
