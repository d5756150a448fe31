package main

import (
	"bufio"
	"context"
	"flag"
	"os"
	"strings"
	"time"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/PedroASilva38/RUPTURAS-QRZ/src/pkg/config"
	"github.com/PedroASilva38/RUPTURAS-QRZ/src/pkg/gauth"
	"github.com/PedroASilva38/RUPTURAS-QRZ/src/pkg/mail"
	"github.com/PedroASilva38/RUPTURAS-QRZ/src/pkg/pipeline"
)

var oauthScopes = []string{
	"https://www.googleapis.com/auth/spreadsheets",
	"https://www.googleapis.com/auth/gmail.send",
}

const promptDateLayout = "02/01/2006"

/*
main runs one full reporting pass.

Order of operations mirrors the run itself: confirm mode with the operator,
pick the reporting window, authorize, then fetch → classify → render →
send → mark. Nothing external happens before the confirmation prompt.
*/
func main() {
	// Common flags.
	configPath := flag.String("config", "./cfg/config.json", "Path to your configuration file.")

	// Program-specific flags.
	credentialsPath := flag.String("credentials", "./credentials.json", "Path to the OAuth client secret file.")
	tokenPath := flag.String("token", "./token.json", "Path to the cached OAuth token.")
	assumeYes := flag.Bool("yes", false, "Skip the confirmation prompt (for non-interactive runs).")

	flag.Parse()
	cfg := config.InitializeConfig(*configPath)

	if cfg.Provider != string(mail.ProviderGmail) {
		config.CheckIfEnvVarsPresent(
			"AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY", "AWS_REGION", // amazon ses
			"MAILGUN_DOMAIN", "MAILGUN_API_KEY", // mailgun
			"SENDGRID_API_KEY", // sendgrid
		)
	}

	reader := bufio.NewReader(os.Stdin)

	if cfg.TestMode {
		tl.Log(
			tl.Important, palette.PurpleBold, "TEST MODE: all mails will be rerouted to '%s'",
			cfg.TestAddress,
		)
	} else {
		tl.Log(
			tl.Important, palette.RedBold, "%s",
			"PRODUCTION MODE: mails go to the real recipients",
		)
	}

	if !*assumeYes && !confirm(reader) {
		tl.Log(tl.Notice, palette.Blue, "%s", "Operation cancelled by the operator")
		os.Exit(0)
	}

	window := promptWindow(reader)
	tl.Log(
		tl.Notice, palette.BlueBold, "Reporting window: '%s' to '%s'",
		window.Start.Format(promptDateLayout), window.End.Format(promptDateLayout),
	)

	ctx := context.Background()
	httpClient, e := gauth.Client(ctx, gauth.Options{
		CredentialsPath: *credentialsPath,
		TokenPath:       *tokenPath,
		Scopes:          oauthScopes,
	})
	e.QuitIf(xerr.ErrorTypeError)

	sheetsService, buildErr := sheetsapi.NewService(ctx, option.WithHTTPClient(httpClient))
	xerr.QuitIfError(buildErr, "Unable to build the Sheets service")

	sender, e := mail.NewSender(ctx, cfg, httpClient)
	e.QuitIf(xerr.ErrorTypeError)

	deps := pipeline.Deps{Sheets: sheetsService, Sender: sender}
	outcome, e := pipeline.Run(ctx, deps, cfg, window)
	e.QuitIf(xerr.ErrorTypeError)

	outcome.LogSummary()
}

/*
confirm asks the operator to proceed, accepting "s" or "sim".
*/
func confirm(reader *bufio.Reader) bool {
	tl.Log(tl.Notice, palette.Blue, "%s", "Deseja continuar? (s/n):")

	answer, readErr := reader.ReadString('\n')
	if readErr != nil {
		return false
	}

	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "s" || answer == "sim"
}

/*
promptWindow asks for the reporting window: enter for the last 7 days, or an
explicit start and end in dd/mm/yyyy. The end is extended to the last second
of its day so the whole final day is included.
*/
func promptWindow(reader *bufio.Reader) pipeline.Window {
	tl.Log(tl.Notice, palette.Blue, "%s", "Data inicial (dd/mm/aaaa), ou enter para os últimos 7 dias:")

	startText, _ := reader.ReadString('\n')
	startText = strings.TrimSpace(startText)

	if startText == "" {
		return defaultWindow(time.Now())
	}

	start, parseErr := time.ParseInLocation(promptDateLayout, startText, time.Local)
	xerr.QuitIfError(parseErr, "Invalid start date, expected dd/mm/aaaa")

	tl.Log(tl.Notice, palette.Blue, "%s", "Data final (dd/mm/aaaa):")
	endText, _ := reader.ReadString('\n')
	end, parseErr := time.ParseInLocation(promptDateLayout, strings.TrimSpace(endText), time.Local)
	xerr.QuitIfError(parseErr, "Invalid end date, expected dd/mm/aaaa")

	end = time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, time.Local)
	return pipeline.Window{Start: start, End: end}
}

/*
defaultWindow is the last 7 calendar days including today: six days back at
midnight through today's last second.
*/
func defaultWindow(now time.Time) pipeline.Window {
	end := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
	startDay := end.AddDate(0, 0, -6)
	start := time.Date(startDay.Year(), startDay.Month(), startDay.Day(), 0, 0, 0, 0, now.Location())
	return pipeline.Window{Start: start, End: end}
}
