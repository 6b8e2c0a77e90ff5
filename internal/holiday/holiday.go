package holiday

import (
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/se"
)

// Calendar 基于瑞典法定节假日的节假日日历
// 实现了 assigner.HolidayCalendar 接口
type Calendar struct {
	calendar   *cal.Calendar
	multiplier float64
}

// NewSwedishCalendar 创建使用瑞典节假日的日历
// multiplier 小于 1 时视为不加权
func NewSwedishCalendar(multiplier float64) *Calendar {
	if multiplier < 1 {
		multiplier = 1
	}

	c := &cal.Calendar{
		Name:      "Sverige",
		Cacheable: true,
	}
	c.AddHoliday(se.Holidays...)

	return &Calendar{
		calendar:   c,
		multiplier: multiplier,
	}
}

func (c *Calendar) IsHoliday(date time.Time) bool {
	actual, observed, _ := c.calendar.IsHoliday(date)
	return actual || observed
}

func (c *Calendar) Multiplier() float64 {
	return c.multiplier
}
