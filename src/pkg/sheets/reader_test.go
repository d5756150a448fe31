package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sheetHeader() []interface{} {
	return []interface{}{
		"Carimbo de data/hora", "Endereço de e-mail", "Nome do Solicitante", "Cargo",
		"Loja", "Categoria", "Código do Produto", "Produto", "Tempo de Ruptura",
		"Tratativa", "Usuário da Tratativa", "Data da Tratativa", "Status Envio",
	}
}

func TestParseValues(t *testing.T) {
	values := [][]interface{}{
		sheetHeader(),
		{
			"02/03/2024 10:15:00", "ana.lima@empresa.com", "Ana Lima", "Repositora",
			"10 - Leste", "Bebidas", "7891", "Refrigerante 2L", "3 dias",
			"Será feito pedido", "joao.silva@empresa.com", "03/03/2024", "",
		},
		{
			"04/03/2024 09:00:00", "rui.melo@empresa.com", "Rui Melo", "Fiscal",
			"05 - Norte", "Mercearia", "1234", "Arroz 5kg", "1 dia",
			"", "", "", "Enviado em 2024-03-05 09:00",
		},
	}

	rows, e := ParseValues(values)
	require.Nil(t, e)
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, "02/03/2024 10:15:00", first.Timestamp)
	assert.Equal(t, "ana.lima@empresa.com", first.RequesterEmail)
	assert.Equal(t, "10 - Leste", first.Store)
	assert.Equal(t, "Bebidas", first.Category)
	assert.Equal(t, "7891", first.ProductCode)
	assert.Equal(t, "Refrigerante 2L", first.Product)
	assert.Equal(t, "Será feito pedido", first.Action)
	assert.Equal(t, "", first.SentStatus)
	assert.Equal(t, 2, first.Ref)

	second := rows[1]
	assert.Equal(t, "Enviado em 2024-03-05 09:00", second.SentStatus)
	assert.Equal(t, 3, second.Ref)
}

func TestParseValuesPadsShortRows(t *testing.T) {
	shortRow := []interface{}{"02/03/2024", "ana@empresa.com", "Ana", "Repositora", "10 - Leste"}
	values := [][]interface{}{sheetHeader(), shortRow}

	rows, e := ParseValues(values)
	require.Nil(t, e)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "10 - Leste", row.Store)
	assert.Equal(t, "", row.Category)
	assert.Equal(t, "", row.Action)
	assert.Equal(t, "", row.SentStatus)
}

func TestParseValuesSynthesizesStatusColumn(t *testing.T) {
	header := sheetHeader()[:12] // sheet predates the status column
	values := [][]interface{}{
		header,
		{
			"02/03/2024", "ana@empresa.com", "Ana", "Repositora", "10 - Leste",
			"Bebidas", "7891", "Refrigerante 2L", "3 dias", "Sem Tratativa", "", "",
		},
	}

	rows, e := ParseValues(values)
	require.Nil(t, e)
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0].SentStatus)
}

func TestParseValuesHeaderMappingIsByLabelNotPosition(t *testing.T) {
	// Loja and Categoria swapped relative to the usual layout.
	values := [][]interface{}{
		{
			"Carimbo de data/hora", "Endereço de e-mail", "Nome do Solicitante", "Cargo",
			"Categoria", "Loja", "Código do Produto", "Produto", "Tempo de Ruptura",
			"Tratativa", "Usuário da Tratativa", "Data da Tratativa",
		},
		{
			"02/03/2024", "ana@empresa.com", "Ana", "Repositora",
			"Bebidas", "10 - Leste", "7891", "Refrigerante 2L", "3 dias", "", "", "",
		},
	}

	rows, e := ParseValues(values)
	require.Nil(t, e)
	require.Len(t, rows, 1)
	assert.Equal(t, "10 - Leste", rows[0].Store)
	assert.Equal(t, "Bebidas", rows[0].Category)
}

func TestParseValuesMissingRequiredColumn(t *testing.T) {
	values := [][]interface{}{
		{"Carimbo de data/hora", "Loja"},
		{"02/03/2024", "10 - Leste"},
	}

	rows, e := ParseValues(values)
	assert.NotNil(t, e)
	assert.Nil(t, rows)
}

func TestParseValuesEmpty(t *testing.T) {
	rows, e := ParseValues(nil)
	assert.Nil(t, e)
	assert.Nil(t, rows)
}
