package holiday

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSwedishCalendar(t *testing.T) {
	calendar := NewSwedishCalendar(1.5)

	// 元旦
	assert.True(t, calendar.IsHoliday(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)))
	// 圣诞节
	assert.True(t, calendar.IsHoliday(time.Date(2025, time.December, 25, 0, 0, 0, 0, time.UTC)))
	// 普通的周三
	assert.False(t, calendar.IsHoliday(time.Date(2025, time.September, 10, 0, 0, 0, 0, time.UTC)))

	assert.Equal(t, 1.5, calendar.Multiplier())
}

func TestSwedishCalendar_MultiplierFloor(t *testing.T) {
	// 倍数小于 1 时视为不加权
	calendar := NewSwedishCalendar(0.5)
	assert.Equal(t, 1.0, calendar.Multiplier())
}
