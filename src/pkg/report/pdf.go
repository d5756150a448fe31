package report

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/go-pdf/fpdf"
	"github.com/tuumbleweed/xerr"

	"github.com/PedroASilva38/RUPTURAS-QRZ/src/pkg/config"
	"github.com/PedroASilva38/RUPTURAS-QRZ/src/pkg/ruptura"
)

const dateLayout = "02/01/2006"

/*
ManagementReport is the rendered consolidated document for management.
*/
type ManagementReport struct {
	Subject  string
	BodyHTML string
	FilePath string
}

/*
BuildManagementReport renders the one-per-run management summary PDF:
title, reporting period, total submissions, the per-store table and the
handling-action frequency table.
*/
func BuildManagementReport(cfg *config.Config, summary ruptura.Summary, destDir string) (rendered ManagementReport, e *xerr.Error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	translate := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, translate("Relatório Gerencial de Rupturas"), "", 1, "C", false, 0, "")

	period := fmt.Sprintf("Período: %s a %s", summary.PeriodStart.Format(dateLayout), summary.PeriodEnd.Format(dateLayout))
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 8, translate(period), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, translate(fmt.Sprintf("Total de rupturas no período: %d", summary.TotalRows)), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	writeTableHeader(pdf, translate, []string{"Loja", "Rupturas", "Com Tratativa"}, []float64{100, 40, 40})
	pdf.SetFont("Helvetica", "", 10)
	for _, stats := range summary.Stores {
		pdf.CellFormat(100, 7, translate(stats.Store), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, fmt.Sprintf("%d", stats.Submissions), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 7, fmt.Sprintf("%d", stats.Treated), "1", 1, "C", false, 0, "")
	}
	pdf.Ln(6)

	writeTableHeader(pdf, translate, []string{"Tratativa", "Ocorrências"}, []float64{140, 40})
	pdf.SetFont("Helvetica", "", 10)
	for _, action := range summary.Actions {
		pdf.CellFormat(140, 7, translate(action.Action), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, fmt.Sprintf("%d", action.Count), "1", 1, "C", false, 0, "")
	}

	fileName := fmt.Sprintf("Relatorio_Gerencial_%s.pdf", summary.PeriodEnd.Format("2006-01-02"))
	filePath := filepath.Join(destDir, fileName)
	outputErr := pdf.OutputFileAndClose(filePath)
	if outputErr != nil {
		e = xerr.NewError(outputErr, "write management PDF", filePath)
		return rendered, e
	}

	rendered = ManagementReport{
		Subject:  "Relatório Gerencial de Rupturas",
		BodyHTML: managementBody(summary),
		FilePath: filePath,
	}
	return rendered, e
}

func writeTableHeader(pdf *fpdf.Fpdf, translate func(string) string, labels []string, widths []float64) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 13, 37)
	pdf.SetTextColor(255, 255, 255)
	for index, label := range labels {
		last := index == len(labels)-1
		lineBreak := 0
		if last {
			lineBreak = 1
		}
		pdf.CellFormat(widths[index], 8, translate(label), "1", lineBreak, "C", true, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFillColor(255, 255, 255)
}

func managementBody(summary ruptura.Summary) string {
	var buffer bytes.Buffer
	buffer.WriteString("<html><body>")
	buffer.WriteString("<h2>Relatório Gerencial de Rupturas</h2>")
	buffer.WriteString(fmt.Sprintf("<p>Período: %s a %s</p>",
		summary.PeriodStart.Format(dateLayout), summary.PeriodEnd.Format(dateLayout)))
	buffer.WriteString(fmt.Sprintf("<p>Total de rupturas identificadas: <b>%d</b>, em <b>%d</b> lojas.</p>",
		summary.TotalRows, len(summary.Stores)))
	buffer.WriteString("<p>O consolidado por loja e por tratativa está em anexo.</p>")
	buffer.WriteString("<p>Atenciosamente,<br>Equipe Comercial</p>")
	buffer.WriteString("</body></html>")
	return buffer.String()
}
