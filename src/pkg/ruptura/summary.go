package ruptura

import (
	"sort"
	"time"
)

/*
StoreStats is one line of the management per-store table.
*/
type StoreStats struct {
	Store       string
	Submissions int
	Treated     int
}

/*
ActionCount is one line of the management action-frequency table.
*/
type ActionCount struct {
	Action string
	Count  int
}

/*
Summary aggregates one filtered window for the management document.
*/
type Summary struct {
	PeriodStart time.Time
	PeriodEnd   time.Time
	TotalRows   int
	Stores      []StoreStats
	Actions     []ActionCount
}

/*
Summarize builds the management aggregates over the filtered row set.

Treated counts exclude rows left at the default action. The action table is
sorted by descending count, ties broken alphabetically so the output is
stable run to run. Stores are sorted by name.
*/
func Summarize(rows []Row, start, end time.Time) Summary {
	statsByStore := make(map[string]*StoreStats)
	countByAction := make(map[string]int)

	for _, row := range rows {
		stats, exists := statsByStore[row.Store]
		if !exists {
			stats = &StoreStats{Store: row.Store}
			statsByStore[row.Store] = stats
		}

		stats.Submissions += 1
		if row.Treated() {
			stats.Treated += 1
		}

		countByAction[row.Action] += 1
	}

	stores := make([]StoreStats, 0, len(statsByStore))
	for _, stats := range statsByStore {
		stores = append(stores, *stats)
	}
	sort.Slice(stores, func(i, j int) bool {
		return stores[i].Store < stores[j].Store
	})

	actions := make([]ActionCount, 0, len(countByAction))
	for action, count := range countByAction {
		actions = append(actions, ActionCount{Action: action, Count: count})
	}
	sort.Slice(actions, func(i, j int) bool {
		if actions[i].Count != actions[j].Count {
			return actions[i].Count > actions[j].Count
		}
		return actions[i].Action < actions[j].Action
	})

	return Summary{
		PeriodStart: start,
		PeriodEnd:   end,
		TotalRows:   len(rows),
		Stores:      stores,
		Actions:     actions,
	}
}
