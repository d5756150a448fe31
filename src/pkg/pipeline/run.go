package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/PedroASilva38/RUPTURAS-QRZ/src/pkg/config"
	"github.com/PedroASilva38/RUPTURAS-QRZ/src/pkg/mail"
	"github.com/PedroASilva38/RUPTURAS-QRZ/src/pkg/report"
	"github.com/PedroASilva38/RUPTURAS-QRZ/src/pkg/ruptura"
	"github.com/PedroASilva38/RUPTURAS-QRZ/src/pkg/sheets"
)

/*
Deps carries the external services the pipeline talks to.
*/
type Deps struct {
	Sheets *sheetsapi.Service
	Sender *mail.Sender
}

/*
Window is the inclusive reporting interval. End must already be an
end-of-day instant so the final day is covered in full.
*/
type Window struct {
	Start time.Time
	End   time.Time
}

/*
Run executes one full reporting pass: fetch, filter, render and send the
manager, buyer and management reports, then mark the treated rows as sent.

Only the fetch is fatal. Rendering and delivery failures are isolated per
recipient and collected in the outcome; the write-back failure is recorded
but does not undo anything — by then the mails are out.
*/
func Run(ctx context.Context, deps Deps, cfg *config.Config, window Window) (outcome Outcome, e *xerr.Error) {
	rows, e := sheets.Fetch(ctx, deps.Sheets, cfg)
	if e != nil {
		return outcome, e
	}
	outcome.Fetched = len(rows)

	filtered := ruptura.FilterWindow(rows, window.Start, window.End)
	outcome.Matched = len(filtered)
	if len(filtered) == 0 {
		tl.Log(
			tl.Notice, palette.BlueBold, "No pending rows between '%s' and '%s', nothing to do",
			window.Start.Format("02/01/2006"), window.End.Format("02/01/2006"),
		)
		return outcome, e
	}

	tl.Log(
		tl.Notice, palette.BlueBold, "%s '%d' rows between '%s' and '%s'",
		"Processing", len(filtered), window.Start.Format("02/01/2006"), window.End.Format("02/01/2006"),
	)

	dirs, e := makeOutputTree(cfg)
	if e != nil {
		return outcome, e
	}

	runManagerReports(ctx, deps, cfg, filtered, dirs[KindManager], &outcome)
	runBuyerReports(ctx, deps, cfg, filtered, dirs[KindBuyer], &outcome)
	runManagementReport(ctx, deps, cfg, filtered, window, dirs[KindManagement], &outcome)

	refs := ruptura.TreatedRefs(filtered)
	marker := fmt.Sprintf("Enviado em %s", time.Now().Format("2006-01-02 15:04"))
	outcome.WriteBackErr = sheets.MarkSent(ctx, deps.Sheets, cfg, refs, marker)
	if outcome.WriteBackErr == nil {
		outcome.MarkedRows = len(refs)
	}

	return outcome, e
}

/*
runManagerReports renders and sends one workbook per store present in the
filtered rows. Stores without a configured manager are skipped with a log
line.
*/
func runManagerReports(ctx context.Context, deps Deps, cfg *config.Config, rows []ruptura.Row, destDir string, outcome *Outcome) {
	tl.Log(tl.Notice, palette.BlueBold, "%s", "Generating per-store manager reports")

	byStore, storeOrder := ruptura.GroupByStore(rows)
	for _, store := range storeOrder {
		managerEmail, known := cfg.Managers[store]
		if !known {
			tl.Log(tl.Warning, palette.PurpleBright, "No manager configured for store '%s', skipping", store)
			continue
		}

		rendered, renderErr := report.BuildManagerReport(cfg, store, managerEmail, byStore[store], destDir)
		if renderErr != nil {
			outcome.record(KindManager, managerEmail, "", "", renderErr)
			tl.Log(tl.Error, palette.RedBold, "Failed rendering report for store '%s': '%s'", store, renderErr)
			continue
		}

		sendErr := deps.Sender.Send(ctx, mail.Message{
			To:             rendered.Recipient,
			Subject:        rendered.Subject,
			HTML:           rendered.BodyHTML,
			AttachmentPath: rendered.FilePath,
		})
		outcome.record(KindManager, rendered.Recipient, rendered.Subject, rendered.FilePath, sendErr)
	}
}

/*
runBuyerReports renders and sends one workbook per category among the rows
flagged for purchase orders. Categories with no resolvable buyer are skipped
entirely: no file, no mail, no error.
*/
func runBuyerReports(ctx context.Context, deps Deps, cfg *config.Config, rows []ruptura.Row, destDir string, outcome *Outcome) {
	tl.Log(tl.Notice, palette.BlueBold, "%s", "Generating buyer purchase alerts")

	orders := ruptura.OrderRows(rows)
	if len(orders) == 0 {
		tl.Log(tl.Info, palette.Cyan, "No rows with action '%s'", ruptura.ActionOrder)
		return
	}

	byCategory, categoryOrder := ruptura.GroupByCategory(orders)
	for _, category := range categoryOrder {
		buyerEmail := ruptura.ResolveCategoryBuyer(cfg, category, byCategory[category])
		if buyerEmail == "" {
			tl.Log(tl.Warning, palette.PurpleBright, "No buyer found for category '%s', skipping", category)
			continue
		}

		rendered, renderErr := report.BuildBuyerReport(cfg, category, buyerEmail, byCategory[category], destDir)
		if renderErr != nil {
			outcome.record(KindBuyer, buyerEmail, "", "", renderErr)
			tl.Log(tl.Error, palette.RedBold, "Failed rendering report for category '%s': '%s'", category, renderErr)
			continue
		}

		sendErr := deps.Sender.Send(ctx, mail.Message{
			To:             rendered.Recipient,
			Subject:        rendered.Subject,
			HTML:           rendered.BodyHTML,
			AttachmentPath: rendered.FilePath,
		})
		outcome.record(KindBuyer, rendered.Recipient, rendered.Subject, rendered.FilePath, sendErr)
	}
}

/*
runManagementReport renders the consolidated PDF once per run and sends it
to every configured management address.
*/
func runManagementReport(ctx context.Context, deps Deps, cfg *config.Config, rows []ruptura.Row, window Window, destDir string, outcome *Outcome) {
	tl.Log(tl.Notice, palette.BlueBold, "%s", "Generating consolidated management report")

	summary := ruptura.Summarize(rows, window.Start, window.End)
	rendered, renderErr := report.BuildManagementReport(cfg, summary, destDir)
	if renderErr != nil {
		outcome.record(KindManagement, "", "", "", renderErr)
		tl.Log(tl.Error, palette.RedBold, "Failed rendering management report: '%s'", renderErr)
		return
	}

	if len(cfg.ManagementEmails) == 0 {
		tl.Log(tl.Info, palette.Cyan, "No management addresses configured, PDF kept at '%s'", rendered.FilePath)
		return
	}

	for _, recipient := range cfg.ManagementEmails {
		sendErr := deps.Sender.Send(ctx, mail.Message{
			To:             recipient,
			Subject:        rendered.Subject,
			HTML:           rendered.BodyHTML,
			AttachmentPath: rendered.FilePath,
		})
		outcome.record(KindManagement, recipient, rendered.Subject, rendered.FilePath, sendErr)
	}
}

/*
makeOutputTree creates the date-stamped output directories, one subfolder
per recipient class, and returns them keyed by kind.
*/
func makeOutputTree(cfg *config.Config) (dirs map[string]string, e *xerr.Error) {
	base := filepath.Join(cfg.OutputDir, time.Now().Format("2006-01-02"))

	dirs = map[string]string{
		KindManager:    filepath.Join(base, KindManager),
		KindBuyer:      filepath.Join(base, KindBuyer),
		KindManagement: filepath.Join(base, KindManagement),
	}
	for _, dir := range dirs {
		mkdirErr := os.MkdirAll(dir, 0755)
		if mkdirErr != nil {
			e = xerr.NewError(mkdirErr, "create output directory", dir)
			return nil, e
		}
	}

	tl.Log(tl.Info1, palette.Cyan, "Reports will be written under '%s'", base)
	return dirs, e
}
