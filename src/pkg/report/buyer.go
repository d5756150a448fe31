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
BuyerReport is the rendered per-category purchase alert.
*/
type BuyerReport struct {
	Category  string
	Recipient string
	Subject   string
	BodyHTML  string
	FilePath  string
	RowCount  int
}

/*
BuildBuyerReport renders one category's purchase-order workbook under
destDir, one sheet per store, and composes the buyer email around it.

The rows passed in are already filtered to the purchase-order action and to
this category.
*/
func BuildBuyerReport(cfg *config.Config, category string, buyerEmail string, rows []ruptura.Row, destDir string) (rendered BuyerReport, e *xerr.Error) {
	headers := []string{"Produto", "Código", "Solicitante", "Data Solicitação"}

	wb := newWorkbook()
	byStore, storeOrder := ruptura.GroupByStore(rows)
	for _, store := range storeOrder {
		sheetRows := make([][]interface{}, 0, len(byStore[store]))
		for _, row := range byStore[store] {
			sheetRows = append(sheetRows, []interface{}{row.Product, row.ProductCode, row.RequesterName, row.Timestamp})
		}

		e = wb.addSheet(store, headers, sheetRows)
		if e != nil {
			return rendered, e
		}
	}

	fileName := fmt.Sprintf("Relatorio_Compras_%s.xlsx", util.SanitizeFilename(category, cfg.Strategy()))
	filePath := filepath.Join(destDir, fileName)
	e = wb.save(filePath)
	if e != nil {
		return rendered, e
	}

	rendered = BuyerReport{
		Category:  category,
		Recipient: buyerEmail,
		Subject:   fmt.Sprintf("Alerta de Pedido de Compra - %s", category),
		BodyHTML:  buyerBody(category, buyerEmail),
		FilePath:  filePath,
		RowCount:  len(rows),
	}
	return rendered, e
}

func buyerBody(category string, buyerEmail string) string {
	firstName := util.FormatNameFromEmail(buyerEmail, true)
	escaped := html.EscapeString(category)

	var buffer bytes.Buffer
	buffer.WriteString("<html><body>")
	buffer.WriteString("<h2>Alerta de Pedido de Compra - Categoria: " + escaped + "</h2>")
	buffer.WriteString("<p>Olá, " + html.EscapeString(firstName) + ",</p>")
	buffer.WriteString("<p>Segue em anexo a lista de produtos da categoria <b>" + escaped + "</b> que precisam de pedido de compra, separados por loja.</p>")
	buffer.WriteString("<br>")
	buffer.WriteString("<p>Atenciosamente,<br>Equipe Comercial</p>")
	buffer.WriteString("</body></html>")
	return buffer.String()
}
