package report

import (
	"math"

	"CycleBand/internal/model"
)

// Band classifies a derived point's position inside the ceiling/floor envelope.
// Nine ordered values, symmetric around the median.
type Band int

const (
	BandStrongAbove Band = iota
	BandAbove
	BandMildAbove
	BandNearAbove
	BandAtMedian
	BandNearBelow
	BandMildBelow
	BandBelow
	BandStrongBelow
)

var bandNames = map[Band]string{
	BandStrongAbove: "strong-above",
	BandAbove:       "above",
	BandMildAbove:   "mild-above",
	BandNearAbove:   "near-median-above",
	BandAtMedian:    "at-median",
	BandNearBelow:   "near-median-below",
	BandMildBelow:   "mild-below",
	BandBelow:       "below",
	BandStrongBelow: "strong-below",
}

func (b Band) String() string { return bandNames[b] }

// Classification constants: band-relative proximity and the split points
// within each half of the envelope.
const (
	nearMedianPct = 0.02
	strongSplit   = 0.575
	moderateSplit = 0.29
)

// Classify maps a derived point onto one of the nine bands. A point whose
// 365-point band is unpopulated (zero median) is neutral.
func Classify(p model.DerivedPoint) Band {
	if p.Median == 0 {
		return BandAtMedian
	}

	diff := p.Price - p.Median
	if math.Abs(diff) <= p.Median*nearMedianPct {
		switch {
		case diff > 0:
			return BandNearAbove
		case diff < 0:
			return BandNearBelow
		default:
			return BandAtMedian
		}
	}

	if p.Price >= p.Median {
		r := 0.0
		if rangeAbove := p.Ceiling - p.Median; rangeAbove > 0 {
			r = diff / rangeAbove
		}
		switch {
		case r >= strongSplit:
			return BandStrongAbove
		case r >= moderateSplit:
			return BandAbove
		default:
			return BandMildAbove
		}
	}

	r := 0.0
	if rangeBelow := p.Median - p.Floor; rangeBelow > 0 {
		r = -diff / rangeBelow
	}
	switch {
	case r >= strongSplit:
		return BandStrongBelow
	case r >= moderateSplit:
		return BandBelow
	default:
		return BandMildBelow
	}
}
