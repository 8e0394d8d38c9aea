package server

import (
	"math"
	"time"

	"github.com/theirongolddev/fyfire/internal/fire"
	"github.com/theirongolddev/fyfire/internal/model"
)

// ProjectionResponse is the JSON shape of a projection. Infinite amounts and
// unreachable years are encoded as null.
type ProjectionResponse struct {
	AnnualExpenses            *float64 `json:"annualExpenses"`
	FireNumber                *float64 `json:"fireNumber"`
	TotalNetWorth             *float64 `json:"totalNetWorth"`
	TotalMonthlyContributions *float64 `json:"totalMonthlyContributions"`
	GapToTarget               *float64 `json:"gapToFire"`
	ProgressPercent           *float64 `json:"progressPercent"`
	SavingsRatePercent        *float64 `json:"savingsRate"`

	YearsToTarget       fire.Years `json:"yearsToFire"`
	ProjectedTargetDate *time.Time `json:"projectedFireDate"`
	AlreadyAtTarget     bool       `json:"alreadyFire"`
	ProjectedTargetAge  *float64   `json:"projectedFireAge"`
	YearsBehindTarget   *int       `json:"yearsBehindTarget"`

	YearsToRetirement       int             `json:"yearsToRetirement"`
	YearsUntilPensionAccess int             `json:"yearsUntilPensionAccess"`
	PensionAccessAge        int             `json:"pensionAccessAge"`
	RequiresBridge          bool            `json:"requiresBridge"`
	Bridge                  *BridgeResponse `json:"bridge,omitempty"`
}

// BridgeResponse is the wire form of fire.Bridge.
type BridgeResponse struct {
	GapYears            int      `json:"gapYears"`
	AmountNeeded        *float64 `json:"amountNeeded"`
	ProjectedISA        *float64 `json:"projectedIsaAtRetirement"`
	ProjectedGIA        *float64 `json:"projectedGiaAtRetirement"`
	ProjectedAccessible *float64 `json:"projectedAccessibleAtRetirement"`
	Viable              bool     `json:"bridgeIsViable"`
	Shortfall           *float64 `json:"bridgeShortfall"`
}

// DefaultsResponse is served at /v1/defaults.
type DefaultsResponse struct {
	Inputs      model.Inputs           `json:"inputs"`
	Constraints model.InputConstraints `json:"constraints"`
	Version     int                    `json:"schemaVersion"`
}

// ErrorResponse is the body of every non-2xx JSON reply.
type ErrorResponse struct {
	Status  int                `json:"status"`
	Message string             `json:"message"`
	Errors  []model.FieldError `json:"errors,omitempty"`
}

// finite returns nil for infinite or NaN amounts.
func finite(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}

func finitePtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return finite(*v)
}

// NewProjectionResponse converts an engine result into its wire form.
func NewProjectionResponse(r fire.Result, accessAge int) ProjectionResponse {
	return ProjectionResponse{
		AnnualExpenses:            finite(r.AnnualExpenses),
		FireNumber:                finite(r.FireNumber),
		TotalNetWorth:             finite(r.TotalNetWorth),
		TotalMonthlyContributions: finite(r.TotalMonthlyContributions),
		GapToTarget:               finite(r.GapToTarget),
		ProgressPercent:           finite(r.ProgressPercent),
		SavingsRatePercent:        finite(r.SavingsRatePercent),
		YearsToTarget:             r.YearsToTarget,
		ProjectedTargetDate:       r.ProjectedTargetDate,
		AlreadyAtTarget:           r.AlreadyAtTarget,
		ProjectedTargetAge:        finitePtr(r.ProjectedTargetAge),
		YearsBehindTarget:         r.YearsBehindTarget,
		YearsToRetirement:         r.YearsToRetirement,
		YearsUntilPensionAccess:   r.YearsUntilPensionAccess,
		PensionAccessAge:          accessAge,
		RequiresBridge:            r.RequiresBridge,
		Bridge:                    newBridgeResponse(r.Bridge),
	}
}

func newBridgeResponse(b *fire.Bridge) *BridgeResponse {
	if b == nil {
		return nil
	}
	return &BridgeResponse{
		GapYears:            b.GapYears,
		AmountNeeded:        finite(b.AmountNeeded),
		ProjectedISA:        finite(b.ProjectedISA),
		ProjectedGIA:        finite(b.ProjectedGIA),
		ProjectedAccessible: finite(b.ProjectedAccessible),
		Viable:              b.Viable,
		Shortfall:           finite(b.Shortfall),
	}
}
