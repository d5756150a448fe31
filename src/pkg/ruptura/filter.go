package ruptura

import (
	"strings"
	"time"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
)

/*
FilterWindow selects the rows that still need a report: sent-status empty,
timestamp parseable and inside [start, end] with both bounds inclusive.

The caller supplies end as an end-of-day instant, so the final day of the
window is covered in full. Rows whose timestamp cannot be parsed are skipped
with a warning. An empty result is a valid "nothing to do" outcome.
*/
func FilterWindow(rows []Row, start, end time.Time) []Row {
	selected := make([]Row, 0, len(rows))

	for _, row := range rows {
		if strings.TrimSpace(row.SentStatus) != "" {
			continue
		}

		submittedAt, ok := ParseTimestamp(row.Timestamp)
		if !ok {
			tl.Log(
				tl.Warning, palette.PurpleBright, "Skipping row '%d': unparseable timestamp '%s'",
				row.Ref, row.Timestamp,
			)
			continue
		}

		if submittedAt.Before(start) || submittedAt.After(end) {
			continue
		}

		row.SubmittedAt = submittedAt
		selected = append(selected, row)
	}

	return FillDefaults(selected)
}

/*
OrderRows returns the rows whose handling action asks for a purchase order.
The match is exact: only ActionOrder qualifies.
*/
func OrderRows(rows []Row) []Row {
	orders := make([]Row, 0)
	for _, row := range rows {
		if row.Action == ActionOrder {
			orders = append(orders, row)
		}
	}
	return orders
}

/*
TreatedRefs returns the sheet positions of rows carrying a real handling
action. Untreated rows stay unmarked so they reappear as pending next run.
*/
func TreatedRefs(rows []Row) []int {
	refs := make([]int, 0)
	for _, row := range rows {
		if row.Treated() {
			refs = append(refs, row.Ref)
		}
	}
	return refs
}

/*
GroupByStore splits rows by store name, preserving row order inside each
group, and returns the store names in first-seen order.
*/
func GroupByStore(rows []Row) (groups map[string][]Row, order []string) {
	groups = make(map[string][]Row)
	order = make([]string, 0)

	for _, row := range rows {
		_, seen := groups[row.Store]
		if !seen {
			order = append(order, row.Store)
		}
		groups[row.Store] = append(groups[row.Store], row)
	}

	return groups, order
}

/*
GroupByCategory splits rows by category, preserving row order inside each
group, and returns the category names in first-seen order. Rows with a blank
category are excluded from per-category grouping.
*/
func GroupByCategory(rows []Row) (groups map[string][]Row, order []string) {
	groups = make(map[string][]Row)
	order = make([]string, 0)

	for _, row := range rows {
		category := strings.TrimSpace(row.Category)
		if category == "" {
			continue
		}

		_, seen := groups[category]
		if !seen {
			order = append(order, category)
		}
		groups[category] = append(groups[category], row)
	}

	return groups, order
}
