// Package model defines the KPI records shared across the dashboard.
package model

import (
	"time"

	"github.com/theirongolddev/kpiboard/internal/metric"
)

// Metric is one KPI as supplied by the data source.
type Metric struct {
	Key       string        `json:"key"`
	Title     string        `json:"title"`
	Domain    metric.Domain `json:"domain"`
	IsExpense bool          `json:"is_expense"`
	Period    string        `json:"period"` // YYYY-MM

	Current  float64 `json:"current"` // period-to-date actual
	Prior    float64 `json:"prior"`
	Budget   float64 `json:"budget"`
	Forecast float64 `json:"forecast"`
	OTB      float64 `json:"otb"` // on-the-books for the rest of the period

	// Yesterday is the pickup reference value.
	Yesterday float64 `json:"yesterday"`
}

// Comparison is a signed percentage against a reference figure.
type Comparison struct {
	Percentage float64     `json:"percentage"`
	Type       metric.Tone `json:"type"`
}

// Card is a metric bound to its comparison badges.
type Card struct {
	Metric
	VsPrior    Comparison `json:"vs_prior"`
	VsBudget   Comparison `json:"vs_budget"`
	VsForecast Comparison `json:"vs_forecast"`
	// Progress is Current as a share of Budget, 0-100.
	Progress float64 `json:"progress"`
	Locked   bool    `json:"locked"`
}

// Period is the accounting state of a month.
type Period struct {
	Month    string    `json:"month"` // YYYY-MM
	Locked   bool      `json:"locked"`
	LockedAt time.Time `json:"locked_at,omitempty"`
}
