package report

import (
	"bytes"
	"fmt"
	"html"
	"path/filepath"

	"github.com/tuumbleweed/xerr"

	"github.com/PedroASilva38/RUPTURAS-QRZ/src/pkg/config"
	"github.com/PedroASilva38/RUPTURAS-QRZ/src/pkg/ruptura"
	"github.com/PedroASilva38/RUPTURAS-QRZ/src/pkg/util"
)

/*
ManagerReport is the rendered per-store report: the workbook on disk plus
the email wrapping for its recipient.
*/
type ManagerReport struct {
	Store       string
	Recipient   string
	Subject     string
	BodyHTML    string
	FilePath    string
	TotalRows   int
	TreatedRows int
	Divergences int
}

/*
BuildManagerReport renders one store's workbook under destDir and composes
the manager email around it.

The workbook carries one sheet per category present in the store's rows.
Rows with a blank category are left out of the sheets but still counted in
the email totals.
*/
func BuildManagerReport(cfg *config.Config, store string, managerEmail string, rows []ruptura.Row, destDir string) (rendered ManagerReport, e *xerr.Error) {
	headers := []string{"Data Solicitação", "Solicitante", "Categoria", "Produto", "Tempo de Ruptura", "Tratativa"}
	if cfg.IncludeHandlerColumn {
		headers = append(headers, "Usuário Tratativa", "Data Tratativa")
	}

	wb := newWorkbook()
	byCategory, categoryOrder := ruptura.GroupByCategory(rows)
	for _, category := range categoryOrder {
		sheetRows := make([][]interface{}, 0, len(byCategory[category]))
		for _, row := range byCategory[category] {
			cells := []interface{}{row.Timestamp, row.RequesterName, row.Category, row.Product, row.OutageDuration, row.Action}
			if cfg.IncludeHandlerColumn {
				cells = append(cells, util.FormatNameFromEmail(row.Handler, false), row.HandledAt)
			}
			sheetRows = append(sheetRows, cells)
		}

		e = wb.addSheet(category, headers, sheetRows)
		if e != nil {
			return rendered, e
		}
	}

	fileName := fmt.Sprintf("Relatorio_Rupturas_%s.xlsx", util.SanitizeFilename(store, cfg.Strategy()))
	filePath := filepath.Join(destDir, fileName)
	e = wb.save(filePath)
	if e != nil {
		return rendered, e
	}

	treated := 0
	divergences := make([]ruptura.Row, 0)
	for _, row := range rows {
		if row.Treated() {
			treated += 1
		}
		if row.Action == ruptura.ActionDivergence {
			divergences = append(divergences, row)
		}
	}

	rendered = ManagerReport{
		Store:       store,
		Recipient:   managerEmail,
		Subject:     fmt.Sprintf("Relatório de Rupturas - %s", store),
		BodyHTML:    managerBody(store, managerEmail, len(rows), treated, divergences),
		FilePath:    filePath,
		TotalRows:   len(rows),
		TreatedRows: treated,
		Divergences: len(divergences),
	}
	return rendered, e
}

/*
managerBody composes the manager email: personal greeting, totals, and the
inline list of stock-discrepancy rows.
*/
func managerBody(store string, managerEmail string, total int, treated int, divergences []ruptura.Row) string {
	firstName := util.FormatNameFromEmail(managerEmail, true)

	var buffer bytes.Buffer
	buffer.WriteString("<html><body>")
	buffer.WriteString("<h2>Relatório de Rupturas - " + html.EscapeString(store) + "</h2>")
	buffer.WriteString("<p>Olá, " + html.EscapeString(firstName) + ",</p>")
	buffer.WriteString("<p>Segue o resumo das rupturas identificadas em sua loja:</p>")
	buffer.WriteString("<ul>")
	buffer.WriteString(fmt.Sprintf("<li><b>Total de Rupturas Identificadas:</b> %d</li>", total))
	buffer.WriteString(fmt.Sprintf("<li><b>Rupturas com Tratativa:</b> %d</li>", treated))
	buffer.WriteString("</ul>")
	buffer.WriteString("<hr>")
	buffer.WriteString(`<h3>Produtos com Tratativa "Verificar Estoque (Divergência)":</h3>`)
	buffer.WriteString("<ul>")
	if len(divergences) == 0 {
		buffer.WriteString("<li>Nenhuma divergência apontada.</li>")
	} else {
		for _, row := range divergences {
			buffer.WriteString(fmt.Sprintf("<li>%s (Cód: %s)</li>", html.EscapeString(row.Product), html.EscapeString(row.ProductCode)))
		}
	}
	buffer.WriteString("</ul>")
	buffer.WriteString("<hr>")
	buffer.WriteString("<p>O relatório completo, com todas as rupturas separadas por categoria, está em anexo.</p>")
	buffer.WriteString("<p>Atenciosamente,<br>Equipe Comercial</p>")
	buffer.WriteString("</body></html>")
	return buffer.String()
}
