package pipeline

import (
	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"
)

// Report classes, used for the output subfolders and the outcome log.
const (
	KindManager    = "gerentes"
	KindBuyer      = "compradores"
	KindManagement = "gerencial"
)

/*
SendResult records one attempted delivery. Err is nil on success; a failed
delivery never aborts the run, that recipient simply doesn't get the file.
*/
type SendResult struct {
	Kind      string
	Recipient string
	Subject   string
	FilePath  string
	Err       *xerr.Error
}

/*
Outcome is the per-run report: what was fetched, what matched the window,
every delivery attempt, and whether the status write-back held.
*/
type Outcome struct {
	Fetched      int
	Matched      int
	Sends        []SendResult
	MarkedRows   int
	WriteBackErr *xerr.Error
}

func (o *Outcome) record(kind string, recipient string, subject string, filePath string, err *xerr.Error) {
	o.Sends = append(o.Sends, SendResult{
		Kind:      kind,
		Recipient: recipient,
		Subject:   subject,
		FilePath:  filePath,
		Err:       err,
	})
}

// Delivered counts successful sends.
func (o *Outcome) Delivered() int {
	count := 0
	for _, result := range o.Sends {
		if result.Err == nil {
			count += 1
		}
	}
	return count
}

// Failed counts failed sends.
func (o *Outcome) Failed() int {
	return len(o.Sends) - o.Delivered()
}

/*
LogSummary prints the end-of-run accounting.
*/
func (o *Outcome) LogSummary() {
	tl.Log(
		tl.Notice, palette.GreenBold, "Run finished. Rows fetched: '%d', in window: '%d', mails delivered: '%d', failed: '%d'",
		o.Fetched, o.Matched, o.Delivered(), o.Failed(),
	)

	for _, result := range o.Sends {
		if result.Err != nil {
			tl.Log(
				tl.Warning, palette.PurpleBright, "Delivery to '%s' (%s) failed: '%s'",
				result.Recipient, result.Kind, result.Err,
			)
		}
	}

	if o.WriteBackErr != nil {
		tl.Log(
			tl.Warning, palette.PurpleBold, "Status write-back failed, rows may be re-sent next run: '%s'",
			o.WriteBackErr,
		)
	} else if o.MarkedRows > 0 {
		tl.Log(tl.Info1, palette.Green, "Rows marked as sent: '%d'", o.MarkedRows)
	}
}
