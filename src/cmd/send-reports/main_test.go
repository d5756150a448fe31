package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultWindowSpansSevenDays(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 42, 0, 0, time.Local)

	window := defaultWindow(now)

	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.Local), window.Start)
	assert.Equal(t, time.Date(2024, 3, 10, 23, 59, 59, 0, time.Local), window.End)

	// Seven distinct calendar days, today included.
	days := 0
	for day := window.Start; !day.After(window.End); day = day.AddDate(0, 0, 1) {
		days += 1
	}
	assert.Equal(t, 7, days)
}

func TestDefaultWindowCrossesMonthBoundary(t *testing.T) {
	now := time.Date(2024, 3, 2, 8, 0, 0, 0, time.Local)

	window := defaultWindow(now)
	assert.Equal(t, time.Date(2024, 2, 25, 0, 0, 0, 0, time.Local), window.Start)
	assert.Equal(t, time.Date(2024, 3, 2, 23, 59, 59, 0, time.Local), window.End)
}
