package models

// Assumptions parameterise the valuation and projection models.
// Values are immutable; build a new one with Merge.
type Assumptions struct {
	DiscountRate        float64 `json:"discountRate" yaml:"discount_rate" default:"0.10"`
	BaseGrowth          float64 `json:"baseGrowth" yaml:"base_growth" default:"0.12"`
	HighGrowth          float64 `json:"highGrowth" yaml:"high_growth" default:"0.18"`
	LowGrowth           float64 `json:"lowGrowth" yaml:"low_growth" default:"0.08"`
	Years               int     `json:"years" yaml:"years" default:"5"`
	ExitPE              float64 `json:"exitPE" yaml:"exit_pe" default:"15"`
	DividendPayoutRatio float64 `json:"dividendPayoutRatio" yaml:"dividend_payout_ratio" default:"0.15"`
}

// DefaultAssumptions returns the built-in defaults.
func DefaultAssumptions() Assumptions {
	return Assumptions{
		DiscountRate:        0.10,
		BaseGrowth:          0.12,
		HighGrowth:          0.18,
		LowGrowth:           0.08,
		Years:               5,
		ExitPE:              15,
		DividendPayoutRatio: 0.15,
	}
}

// AssumptionOverrides is the caller-supplied subset of Assumptions.
// Nil fields keep the base value.
type AssumptionOverrides struct {
	DiscountRate        *float64 `query:"discountRate" json:"discountRate" validate:"omitempty,gte=0,lte=1"`
	BaseGrowth          *float64 `query:"growth" json:"growth" validate:"omitempty,gte=0,lte=0.3"`
	HighGrowth          *float64 `query:"highGrowth" json:"highGrowth" validate:"omitempty,gte=-0.5,lte=1"`
	LowGrowth           *float64 `query:"lowGrowth" json:"lowGrowth" validate:"omitempty,gte=-0.5,lte=1"`
	Years               *int     `query:"years" json:"years" validate:"omitempty,gte=1,lte=30"`
	ExitPE              *float64 `query:"exitPE" json:"exitPE" validate:"omitempty,gt=0,lte=100"`
	DividendPayoutRatio *float64 `query:"payout" json:"payout" validate:"omitempty,gte=0,lte=1"`

	// Long-form aliases of growth and payout.
	BaseGrowthAlias *float64 `query:"baseGrowth" json:"baseGrowth" validate:"omitempty,gte=0,lte=0.3"`
	PayoutAlias     *float64 `query:"dividendPayoutRatio" json:"dividendPayoutRatio" validate:"omitempty,gte=0,lte=1"`
}

// Merge returns a copy of a with every non-nil override applied.
func (a Assumptions) Merge(o AssumptionOverrides) Assumptions {
	if o.DiscountRate != nil {
		a.DiscountRate = *o.DiscountRate
	}
	if o.BaseGrowth != nil {
		a.BaseGrowth = *o.BaseGrowth
	} else if o.BaseGrowthAlias != nil {
		a.BaseGrowth = *o.BaseGrowthAlias
	}
	if o.HighGrowth != nil {
		a.HighGrowth = *o.HighGrowth
	}
	if o.LowGrowth != nil {
		a.LowGrowth = *o.LowGrowth
	}
	if o.Years != nil {
		a.Years = *o.Years
	}
	if o.ExitPE != nil {
		a.ExitPE = *o.ExitPE
	}
	if o.DividendPayoutRatio != nil {
		a.DividendPayoutRatio = *o.DividendPayoutRatio
	} else if o.PayoutAlias != nil {
		a.DividendPayoutRatio = *o.PayoutAlias
	}
	return a
}
