package sheets

import (
	"context"
	"fmt"
	"strings"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/PedroASilva38/RUPTURAS-QRZ/src/pkg/config"
	"github.com/PedroASilva38/RUPTURAS-QRZ/src/pkg/ruptura"
	"github.com/PedroASilva38/RUPTURAS-QRZ/src/pkg/util"
)

// Field keys used internally after header normalization.
const (
	fieldTimestamp      = "timestamp"
	fieldRequesterEmail = "email_solicitante"
	fieldRequesterName  = "nome_solicitante"
	fieldRole           = "cargo"
	fieldStore          = "loja"
	fieldCategory       = "categoria"
	fieldProductCode    = "codigo_produto"
	fieldProduct        = "produto"
	fieldOutageDuration = "tempo_ruptura"
	fieldAction         = "tratativa"
	fieldHandler        = "usuario_tratativa"
	fieldHandledAt      = "data_tratativa"
	fieldSentStatus     = "status_envio"
)

// headerFields maps the sheet's human-readable column labels (folded to
// lowercase ASCII) to field keys. The mapping is by label, not position, so
// column reordering in the form does not corrupt rows.
var headerFields = map[string]string{
	"carimbo de data/hora": fieldTimestamp,
	"endereco de e-mail":   fieldRequesterEmail,
	"nome do solicitante":  fieldRequesterName,
	"cargo":                fieldRole,
	"loja":                 fieldStore,
	"categoria":            fieldCategory,
	"codigo do produto":    fieldProductCode,
	"produto":              fieldProduct,
	"tempo de ruptura":     fieldOutageDuration,
	"tratativa":            fieldAction,
	"usuario da tratativa": fieldHandler,
	"data da tratativa":    fieldHandledAt,
	"status envio":         fieldSentStatus,
}

// requiredFields must all resolve from the header row; the sent-status
// column is synthesized empty when the sheet does not carry it yet.
var requiredFields = []string{
	fieldTimestamp, fieldRequesterEmail, fieldRequesterName, fieldRole,
	fieldStore, fieldCategory, fieldProductCode, fieldProduct,
	fieldOutageDuration, fieldAction, fieldHandler, fieldHandledAt,
}

/*
Fetch reads the configured range and returns the parsed rows.

A transport or header failure is fatal to the run: the caller gets an error
and no rows, never a partial result. An empty sheet is a warning and a nil
row slice.
*/
func Fetch(ctx context.Context, service *sheetsapi.Service, cfg *config.Config) (rows []ruptura.Row, e *xerr.Error) {
	valueRange, fetchErr := service.Spreadsheets.Values.Get(cfg.SpreadsheetID, cfg.ReadRange).Context(ctx).Do()
	if fetchErr != nil {
		e = xerr.NewError(fetchErr, "fetch rows from source sheet", cfg.ReadRange)
		return nil, e
	}

	if len(valueRange.Values) == 0 {
		tl.Log(tl.Warning, palette.PurpleBold, "Source sheet '%s' has no data", cfg.ReadRange)
		return nil, e
	}

	rows, e = ParseValues(valueRange.Values)
	if e != nil {
		return nil, e
	}

	tl.Log(tl.Info1, palette.Green, "Fetched '%d' rows from '%s'", len(rows), cfg.ReadRange)
	return rows, e
}

/*
ParseValues converts a fetched value grid (header row first) into rows.

Rows shorter than the header are padded with empty strings; the upstream
sheet drops trailing empty cells routinely and that must never raise. Each
row's Ref is its 1-based sheet position: zero-based data index + 2, for the
header row and 1-based addressing.
*/
func ParseValues(values [][]interface{}) (rows []ruptura.Row, e *xerr.Error) {
	if len(values) == 0 {
		return nil, e
	}

	columns, e := mapHeader(values[0])
	if e != nil {
		return nil, e
	}

	rows = make([]ruptura.Row, 0, len(values)-1)
	for index, raw := range values[1:] {
		cells := padRow(raw, len(values[0]))
		rows = append(rows, ruptura.Row{
			Timestamp:      cellAt(cells, columns, fieldTimestamp),
			RequesterEmail: cellAt(cells, columns, fieldRequesterEmail),
			RequesterName:  cellAt(cells, columns, fieldRequesterName),
			Role:           cellAt(cells, columns, fieldRole),
			Store:          cellAt(cells, columns, fieldStore),
			Category:       cellAt(cells, columns, fieldCategory),
			ProductCode:    cellAt(cells, columns, fieldProductCode),
			Product:        cellAt(cells, columns, fieldProduct),
			OutageDuration: cellAt(cells, columns, fieldOutageDuration),
			Action:         cellAt(cells, columns, fieldAction),
			Handler:        cellAt(cells, columns, fieldHandler),
			HandledAt:      cellAt(cells, columns, fieldHandledAt),
			SentStatus:     cellAt(cells, columns, fieldSentStatus),
			Ref:            index + 2,
		})
	}

	return rows, e
}

/*
mapHeader resolves each header label to a column index by explicit mapping.
Unknown labels are ignored; missing required labels fail the fetch.
*/
func mapHeader(header []interface{}) (columns map[string]int, e *xerr.Error) {
	columns = make(map[string]int)

	for index, label := range header {
		normalized := normalizeLabel(fmt.Sprint(label))
		field, known := headerFields[normalized]
		if !known {
			tl.Log(tl.Verbose, palette.CyanDim, "Ignoring unknown column '%s'", label)
			continue
		}
		columns[field] = index
	}

	missing := make([]string, 0)
	for _, field := range requiredFields {
		_, present := columns[field]
		if !present {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		err := fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
		e = xerr.NewError(err, "map sheet header", nil)
		return nil, e
	}

	return columns, e
}

func normalizeLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(util.FoldDiacritics(label)))
}

func padRow(raw []interface{}, width int) []string {
	cells := make([]string, width)
	for index := 0; index < width; index += 1 {
		if index < len(raw) && raw[index] != nil {
			cells[index] = fmt.Sprint(raw[index])
		}
	}
	return cells
}

func cellAt(cells []string, columns map[string]int, field string) string {
	index, present := columns[field]
	if !present || index >= len(cells) {
		return ""
	}
	return cells[index]
}
