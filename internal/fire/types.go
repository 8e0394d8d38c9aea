// Package fire implements the FIRE projection engine: target number,
// growth-to-target simulation, savings rate and ISA bridge analysis.
//
// Every function in this package is pure. Degenerate inputs never produce an
// error; they resolve to sentinel values (math.Inf, Unreachable, zero rates).
package fire

import (
	"strconv"
	"time"
)

// DefaultPensionAccessAge is the age pension wealth becomes withdrawable
// under current UK rules.
const DefaultPensionAccessAge = 57

// Wrappers is the per-account breakdown of balances and contributions.
// GIA has no contribution stream.
type Wrappers struct {
	ISABalance                  float64
	PensionBalance              float64
	GIABalance                  float64
	MonthlyISAContributions     float64
	MonthlyPensionContributions float64
}

// Snapshot is one point-in-time view of a person's finances.
//
// Net worth and contributions come either as aggregates (CurrentNetWorth,
// MonthlyContributions) or as a Wrappers breakdown. When Wrappers is set it is
// authoritative and the aggregate fields are ignored.
type Snapshot struct {
	CurrentAge          int
	TargetRetirementAge int

	MonthlySpending             float64
	WithdrawalRatePercent       float64
	MonthlyGrossIncome          float64
	ExpectedAnnualReturnPercent float64

	CurrentNetWorth      float64
	MonthlyContributions float64

	Wrappers *Wrappers
}

// holdings is the canonical form every calculation reads from.
type holdings struct {
	netWorth      float64
	contributions float64
	isa           float64
	gia           float64
	isaContrib    float64
}

// holdings reconciles the two input shapes. An aggregate-only snapshot is
// treated as pension money: nothing in it counts as accessible before the
// pension access age.
func (s Snapshot) holdings() holdings {
	if w := s.Wrappers; w != nil {
		return holdings{
			netWorth:      w.ISABalance + w.PensionBalance + w.GIABalance,
			contributions: w.MonthlyISAContributions + w.MonthlyPensionContributions,
			isa:           w.ISABalance,
			gia:           w.GIABalance,
			isaContrib:    w.MonthlyISAContributions,
		}
	}
	return holdings{
		netWorth:      s.CurrentNetWorth,
		contributions: s.MonthlyContributions,
	}
}

// Years is the outcome of a time-to-target estimate: either a number of years
// (zero meaning "already there") or Unreachable.
type Years struct {
	years     float64
	reachable bool
}

// Unreachable marks a target that cannot be met within the simulation horizon.
var Unreachable = Years{}

// Reached returns a reachable Years value.
func Reached(years float64) Years {
	return Years{years: years, reachable: true}
}

// Value returns the number of years and whether the target is reachable.
func (y Years) Value() (float64, bool) {
	return y.years, y.reachable
}

// Reachable reports whether the target is reachable.
func (y Years) Reachable() bool {
	return y.reachable
}

func (y Years) String() string {
	if !y.reachable {
		return "unreachable"
	}
	return strconv.FormatFloat(y.years, 'f', -1, 64)
}

// MarshalJSON encodes reachable years as a number and Unreachable as null.
func (y Years) MarshalJSON() ([]byte, error) {
	if !y.reachable {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, y.years, 'f', -1, 64), nil
}

// Bridge is the ISA bridge analysis for retiring before pension access.
type Bridge struct {
	GapYears            int     `json:"gapYears"`
	AmountNeeded        float64 `json:"amountNeeded"`
	ProjectedISA        float64 `json:"projectedIsaAtRetirement"`
	ProjectedGIA        float64 `json:"projectedGiaAtRetirement"`
	ProjectedAccessible float64 `json:"projectedAccessibleAtRetirement"`
	Viable              bool    `json:"bridgeIsViable"`
	Shortfall           float64 `json:"bridgeShortfall"`
}

// Result is the full projection for one Snapshot.
type Result struct {
	AnnualExpenses            float64
	FireNumber                float64
	TotalNetWorth             float64
	TotalMonthlyContributions float64

	GapToTarget     float64
	ProgressPercent float64

	SavingsRatePercent float64

	YearsToTarget       Years
	ProjectedTargetDate *time.Time
	AlreadyAtTarget     bool

	// ProjectedTargetAge is nil when already at target or unreachable.
	ProjectedTargetAge *float64
	// YearsBehindTarget is positive when the target number lands after the
	// target retirement age. Nil whenever ProjectedTargetAge is.
	YearsBehindTarget *int

	YearsToRetirement       int
	YearsUntilPensionAccess int
	RequiresBridge          bool

	// Bridge is nil unless RequiresBridge is true.
	Bridge *Bridge
}
