package domain

import (
	"github.com/shopspring/decimal"
)

// Risk levels reported by a sensitivity sweep.
const (
	RiskLow    = "LOW"
	RiskMedium = "MEDIUM"
	RiskHigh   = "HIGH"
)

// SensitivityResult is one point of a parameter sweep.
type SensitivityResult struct {
	Value                float64         `json:"value"`
	NetWorthAtRetirement decimal.Decimal `json:"net_worth_at_retirement"`
	NetWorthAt99         decimal.Decimal `json:"net_worth_at_99"`
	PeakNetWorth         decimal.Decimal `json:"peak_net_worth"`
	DepletionAge         *int            `json:"depletion_age,omitempty"`
	Solvent              bool            `json:"solvent"`
}

// SensitivitySummary describes the sweep as a whole.
type SensitivitySummary struct {
	MinNetWorthAt99   decimal.Decimal `json:"min_net_worth_at_99"`
	MaxNetWorthAt99   decimal.Decimal `json:"max_net_worth_at_99"`
	SolventCount      int             `json:"solvent_count"`
	FirstSolventValue *float64        `json:"first_solvent_value,omitempty"`
	RiskLevel         string          `json:"risk_level"`
	Recommendations   []string        `json:"recommendations,omitempty"`
}

// ParameterSensitivityAnalysis is the result of sweeping one input across a range.
type ParameterSensitivityAnalysis struct {
	Parameter string              `json:"parameter"`
	Unit      string              `json:"unit,omitempty"`
	BaseValue float64             `json:"base_value"`
	Results   []SensitivityResult `json:"results"`
	Summary   SensitivitySummary  `json:"summary"`
}
