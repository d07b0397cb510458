package scoring

import (
	"fmt"

	"github.com/jonathan/revops-assessment/internal/catalog"
	"github.com/jonathan/revops-assessment/internal/types"
)

// Tier IDs in ascending order.
const (
	TierReactive = "reactive"
	TierEmerging = "emerging"
	TierScalable = "scalable"
)

// tierBand describes a band by the percentage of the global maximum at which it starts.
type tierBand struct {
	id           string
	label        string
	description  string
	color        string
	startPercent int
}

var tierBands = []tierBand{
	{
		id:           TierReactive,
		label:        "Reactive Revenue Operations",
		description:  "Revenue processes run on individual effort and workarounds. Data and systems are fragmented, so forecasting and handoffs rely on manual reconciliation.",
		color:        "#DC2626",
		startPercent: 0,
	},
	{
		id:           TierEmerging,
		label:        "Emerging Revenue Operations",
		description:  "Core processes and systems exist but are applied unevenly. The foundation is in place and the next gains come from governance, integration and consistent measurement.",
		color:        "#F59E0B",
		startPercent: 40,
	},
	{
		id:           TierScalable,
		label:        "Scalable Revenue Operations",
		description:  "Revenue teams share definitions, data and cadence. Operations are documented and measured, ready to absorb growth without adding friction.",
		color:        "#029482",
		startPercent: 71,
	},
}

// Tiers derives the three inclusive bands over [0, GlobalMax] from the catalog.
// Each band after the first starts at ceil(startPercent% of the maximum), so
// the bands always partition the range with no gaps or overlaps.
func Tiers(c *catalog.Catalog) []types.Tier {
	globalMax := c.GlobalMax()
	tiers := make([]types.Tier, len(tierBands))

	for i, band := range tierBands {
		tiers[i] = types.Tier{
			ID:          band.id,
			Label:       band.label,
			Description: band.description,
			Color:       band.color,
			Min:         ceilPercentOf(globalMax, band.startPercent),
		}
	}
	for i := range tiers {
		if i == len(tiers)-1 {
			tiers[i].Max = globalMax
		} else {
			tiers[i].Max = tiers[i+1].Min - 1
		}
	}

	return tiers
}

// Classify maps a total to its tier. Totals outside [0, GlobalMax] are clamped
// to the nearest band; use ClassifyStrict to reject them instead.
func Classify(c *catalog.Catalog, total int) types.Tier {
	tiers := Tiers(c)
	for _, tier := range tiers {
		if tier.Contains(total) {
			return tier
		}
	}
	if total < 0 {
		return tiers[0]
	}
	return tiers[len(tiers)-1]
}

// RangeError reports a total outside the catalog's score range.
type RangeError struct {
	Total int
	Max   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("total %d outside score range [0, %d]", e.Total, e.Max)
}

// ClassifyStrict is Classify that returns a *RangeError for out-of-range totals.
func ClassifyStrict(c *catalog.Catalog, total int) (types.Tier, error) {
	if total < 0 || total > c.GlobalMax() {
		return types.Tier{}, &RangeError{Total: total, Max: c.GlobalMax()}
	}
	return Classify(c, total), nil
}

func ceilPercentOf(value, percent int) int {
	return (value*percent + 99) / 100
}
