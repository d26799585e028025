package models

import "github.com/shopspring/decimal"

// DefaultReferralPercentage is the floor applied when no tier matches a
// referral count (empty table or count below the first tier).
var DefaultReferralPercentage = decimal.NewFromFloat(5.0)

// ReferralTier maps a range of referral counts to a bonus percentage of the
// spread. Max nil means the tier is open-ended.
type ReferralTier struct {
	Min        int             `json:"min"`
	Max        *int            `json:"max"`
	Percentage decimal.Decimal `json:"percentage"`
}

func (t ReferralTier) contains(count int) bool {
	if count < t.Min {
		return false
	}
	return t.Max == nil || count <= *t.Max
}

// ReferralTable is the ordered tier list. Tiers must be sorted ascending by
// Min, contiguous and non-overlapping, with at most the last tier open-ended.
type ReferralTable struct {
	Levels []ReferralTier `json:"levels"`
}

func (rt ReferralTable) Validate() error {
	for i, tier := range rt.Levels {
		if tier.Min < 1 {
			return NewValidationError("tier %d: min must be at least 1, got %d", i+1, tier.Min)
		}
		if tier.Percentage.IsNegative() {
			return NewValidationError("tier %d: percentage must not be negative", i+1)
		}
		if tier.Max != nil && *tier.Max < tier.Min {
			return NewValidationError("tier %d: max %d is below min %d", i+1, *tier.Max, tier.Min)
		}
		if i == len(rt.Levels)-1 {
			continue
		}
		if tier.Max == nil {
			return NewValidationError("tier %d: only the last tier may be open-ended", i+1)
		}
		next := rt.Levels[i+1]
		if next.Min != *tier.Max+1 {
			return NewValidationError("tier %d ends at %d but tier %d starts at %d", i+1, *tier.Max, i+2, next.Min)
		}
	}
	return nil
}

// PercentageFor resolves a referral count to a tier percentage, or the
// default floor when nothing matches.
func (rt ReferralTable) PercentageFor(count int) decimal.Decimal {
	for _, tier := range rt.Levels {
		if tier.contains(count) {
			return tier.Percentage
		}
	}
	return DefaultReferralPercentage
}
