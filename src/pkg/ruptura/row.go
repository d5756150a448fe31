package ruptura

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Handling actions with routing significance. Anything else in the column is
// free text a handler typed in and only shows up in the frequency table.
const (
	ActionUntreated  = "Sem Tratativa"
	ActionOrder      = "Será feito pedido"
	ActionDivergence = "Verificar Estoque (Divergência)"
)

/*
Row is one stock-outage submission, as fetched from the source sheet.

Ref is the 1-based row position in the sheet and is the only thing the
write-back step needs; it must stay stable for the lifetime of a run.
*/
type Row struct {
	Timestamp      string
	SubmittedAt    time.Time
	RequesterEmail string
	RequesterName  string
	Role           string
	Store          string
	Category       string
	ProductCode    string
	Product        string
	OutageDuration string
	Action         string
	Handler        string
	HandledAt      string
	SentStatus     string
	Ref            int
}

// Treated reports whether the row carries a real handling action.
func (r Row) Treated() bool {
	return r.Action != ActionUntreated
}

var leadingDigits = regexp.MustCompile(`^\d+`)

/*
StoreNumber extracts the leading decimal run from a store name, so
"12 - Centro" yields 12. Names without a leading number ("Depósito Central")
return ok=false and are excluded from buyer routing.
*/
func StoreNumber(storeName string) (number int, ok bool) {
	match := leadingDigits.FindString(strings.TrimSpace(storeName))
	if match == "" {
		return 0, false
	}

	number, convErr := strconv.Atoi(match)
	if convErr != nil {
		return 0, false
	}
	return number, true
}

/*
FillDefaults maps a blank handling action to ActionUntreated on every row.
Applying it twice is the same as applying it once.
*/
func FillDefaults(rows []Row) []Row {
	for index := range rows {
		if strings.TrimSpace(rows[index].Action) == "" {
			rows[index].Action = ActionUntreated
		}
	}
	return rows
}

// Timestamp layouts accepted from the sheet, day first.
var timestampLayouts = []string{
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
}

/*
ParseTimestamp parses a sheet timestamp in day-first form.
*/
func ParseTimestamp(raw string) (parsed time.Time, ok bool) {
	trimmed := strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		parsed, parseErr := time.ParseInLocation(layout, trimmed, time.Local)
		if parseErr == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
