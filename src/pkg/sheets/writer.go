package sheets

import (
	"context"
	"fmt"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/PedroASilva38/RUPTURAS-QRZ/src/pkg/config"
)

/*
MarkSent writes the sent marker into the status column of every referenced
row, in one batched update.

Refs are 1-based sheet positions captured at fetch time. Failure is returned
for the caller to log; by then the emails are already out, so a failed
write-back means those rows may be sent again on the next run.
*/
func MarkSent(ctx context.Context, service *sheetsapi.Service, cfg *config.Config, refs []int, marker string) (e *xerr.Error) {
	if len(refs) == 0 {
		tl.Log(tl.Info, palette.Cyan, "No treated rows to mark as sent")
		return e
	}

	data := make([]*sheetsapi.ValueRange, 0, len(refs))
	for _, ref := range refs {
		data = append(data, &sheetsapi.ValueRange{
			Range:  fmt.Sprintf("%s!%s%d", cfg.SheetName, cfg.StatusColumn, ref),
			Values: [][]interface{}{{marker}},
		})
	}

	request := &sheetsapi.BatchUpdateValuesRequest{
		ValueInputOption: "USER_ENTERED",
		Data:             data,
	}

	_, updateErr := service.Spreadsheets.Values.BatchUpdate(cfg.SpreadsheetID, request).Context(ctx).Do()
	if updateErr != nil {
		e = xerr.NewError(updateErr, "write sent markers back to sheet", len(refs))
		return e
	}

	tl.Log(tl.Notice1, palette.GreenBold, "Marked '%d' rows as sent in column '%s'", len(refs), cfg.StatusColumn)
	return e
}
