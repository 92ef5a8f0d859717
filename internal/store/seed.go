package store

import (
	"time"

	"github.com/theirongolddev/kpiboard/internal/metric"
	"github.com/theirongolddev/kpiboard/internal/model"
)

// DefaultMetrics returns the demo property's metrics for the month of now.
func DefaultMetrics(now time.Time) []model.Metric {
	period := now.Format("2006-01")
	return []model.Metric{
		{Key: "revenue", Title: "Total Revenue", Domain: metric.Revenue, Period: period,
			Current: 5_775_000, Prior: 5_410_000, Budget: 6_200_000, Forecast: 5_900_000, OTB: 1_240_000, Yesterday: 212_400},
		{Key: "room-revenue", Title: "Room Revenue", Domain: metric.Revenue, Period: period,
			Current: 4_125_000, Prior: 3_980_000, Budget: 4_400_000, Forecast: 4_210_000, OTB: 980_000, Yesterday: 151_800},
		{Key: "fnb-revenue", Title: "F&B Revenue", Domain: metric.Revenue, Period: period,
			Current: 1_210_000, Prior: 1_090_000, Budget: 1_300_000, Forecast: 1_250_000, OTB: 210_000, Yesterday: 41_300},
		{Key: "expenses", Title: "Total Expenses", Domain: metric.Expense, IsExpense: true, Period: period,
			Current: 3_640_000, Prior: 3_420_000, Budget: 3_700_000, Forecast: 3_690_000, Yesterday: 118_500},
		{Key: "payroll", Title: "Payroll Expenses", Domain: metric.Expense, IsExpense: true, Period: period,
			Current: 1_980_000, Prior: 1_910_000, Budget: 2_000_000, Forecast: 1_995_000, Yesterday: 64_200},
		{Key: "occupancy", Title: "Occupancy %", Domain: metric.Occupancy, Period: period,
			Current: 81.4, Prior: 78.9, Budget: 84, Forecast: 82.5, OTB: 63.2, Yesterday: 86.2},
		{Key: "adr", Title: "ADR", Domain: metric.ADR, Period: period,
			Current: 212.37, Prior: 204.1, Budget: 215, Forecast: 210, OTB: 221.4, Yesterday: 219.8},
		{Key: "revpar", Title: "RevPAR", Domain: metric.ADR, Period: period,
			Current: 172.87, Prior: 161.03, Budget: 180.6, Forecast: 173.25, OTB: 139.92, Yesterday: 189.47},
	}
}
