package ruptura

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func window() (time.Time, time.Time) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(2024, 3, 7, 23, 59, 59, 0, time.Local)
	return start, end
}

func TestFilterWindowBounds(t *testing.T) {
	start, end := window()

	tests := []struct {
		name      string
		timestamp string
		wantKept  bool
	}{
		{name: "exactly at start", timestamp: "01/03/2024 00:00:00", wantKept: true},
		{name: "inside", timestamp: "02/03/2024 10:15:00", wantKept: true},
		{name: "last second of final day", timestamp: "07/03/2024 23:59:59", wantKept: true},
		{name: "one second before start", timestamp: "29/02/2024 23:59:59", wantKept: false},
		{name: "day after end", timestamp: "08/03/2024 00:00:00", wantKept: false},
		{name: "unparseable", timestamp: "not a date", wantKept: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := []Row{{Timestamp: tt.timestamp, Ref: 2}}
			kept := FilterWindow(rows, start, end)
			if tt.wantKept {
				assert.Len(t, kept, 1)
			} else {
				assert.Empty(t, kept)
			}
		})
	}
}

func TestFilterWindowSkipsAlreadySent(t *testing.T) {
	start, end := window()

	rows := []Row{
		{Timestamp: "02/03/2024 10:00:00", SentStatus: "Enviado em 2024-03-05 09:00", Ref: 2},
		{Timestamp: "02/03/2024 10:00:00", SentStatus: "", Ref: 3},
	}

	kept := FilterWindow(rows, start, end)
	require.Len(t, kept, 1)
	assert.Equal(t, 3, kept[0].Ref)
}

func TestFilterWindowFillsDefaults(t *testing.T) {
	start, end := window()

	rows := []Row{{Timestamp: "02/03/2024 10:00:00", Action: "", Ref: 2}}
	kept := FilterWindow(rows, start, end)
	require.Len(t, kept, 1)
	assert.Equal(t, ActionUntreated, kept[0].Action)
	assert.False(t, kept[0].SubmittedAt.IsZero())
}

func TestOrderRowsExactMatchOnly(t *testing.T) {
	rows := []Row{
		{Product: "a", Action: ActionOrder},
		{Product: "b", Action: "será feito pedido"},
		{Product: "c", Action: ActionDivergence},
		{Product: "d", Action: ActionUntreated},
	}

	orders := OrderRows(rows)
	require.Len(t, orders, 1)
	assert.Equal(t, "a", orders[0].Product)
}

func TestTreatedRefs(t *testing.T) {
	rows := []Row{
		{Ref: 2, Action: ActionUntreated},
		{Ref: 3, Action: ActionOrder},
		{Ref: 4, Action: "Outro encaminhamento"},
		{Ref: 5, Action: ActionUntreated},
	}

	assert.Equal(t, []int{3, 4}, TreatedRefs(rows))
}

func TestGroupByCategorySkipsBlank(t *testing.T) {
	rows := []Row{
		{Category: "Bebidas", Product: "a"},
		{Category: "", Product: "b"},
		{Category: "  ", Product: "c"},
		{Category: "Bebidas", Product: "d"},
		{Category: "Mercearia", Product: "e"},
	}

	groups, order := GroupByCategory(rows)
	assert.Equal(t, []string{"Bebidas", "Mercearia"}, order)
	assert.Len(t, groups["Bebidas"], 2)
	assert.Len(t, groups["Mercearia"], 1)
}

func TestGroupByStorePreservesOrder(t *testing.T) {
	rows := []Row{
		{Store: "10 - Leste", Product: "a"},
		{Store: "05 - Norte", Product: "b"},
		{Store: "10 - Leste", Product: "c"},
	}

	groups, order := GroupByStore(rows)
	assert.Equal(t, []string{"10 - Leste", "05 - Norte"}, order)
	assert.Equal(t, "c", groups["10 - Leste"][1].Product)
}
