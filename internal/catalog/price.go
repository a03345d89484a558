package catalog

import (
	"math"
	"math/rand"

	"github.com/shopspring/decimal"

	"shopfront/internal/domain"
)

var (
	pricePoint = decimal.NewFromInt(5)
	oneCent    = decimal.New(1, -2)
	nudgeFrom  = decimal.New(94, -2)
	nudgeBy    = decimal.New(5, -2)
	floorPrice = decimal.New(499, -2)
)

// DiscountTier is one row of the cumulative discount table.
type DiscountTier struct {
	Cumulative float64 // upper bound of the roll, exclusive
	Off        float64 // fraction taken off the original price
}

// DiscountTiers must stay sorted by Cumulative and end at 1.0.
var DiscountTiers = []DiscountTier{
	{Cumulative: 0.70, Off: 0},
	{Cumulative: 0.85, Off: 0.10},
	{Cumulative: 0.93, Off: 0.15},
	{Cumulative: 0.98, Off: 0.20},
	{Cumulative: 0.995, Off: 0.25},
	{Cumulative: 1.0, Off: 0.30},
}

// Quantize snaps v to the nearest ".99" price point: round to the nearest 5,
// subtract a cent, and lift anything landing on ".94" to ".99". The result is
// never below 4.99.
func Quantize(v float64) float64 {
	return quantize(decimal.NewFromFloat(v)).InexactFloat64()
}

func quantize(d decimal.Decimal) decimal.Decimal {
	q := d.Div(pricePoint).Round(0).Mul(pricePoint).Sub(oneCent)
	if q.LessThan(floorPrice) {
		q = floorPrice
	}
	if q.Sub(q.Floor()).Equal(nudgeFrom) {
		q = q.Add(nudgeBy)
	}
	return q
}

// rollDiscount maps r in [0,1) onto the tier table.
func rollDiscount(r float64) float64 {
	for _, t := range DiscountTiers {
		if r < t.Cumulative {
			return t.Off
		}
	}
	return 0
}

// basePrice draws a low-biased price inside the band.
func basePrice(rng *rand.Rand, band domain.PriceBand) decimal.Decimal {
	frac := math.Pow(rng.Float64(), 1.5)
	raw := band.Min + frac*(band.Max-band.Min)
	return quantize(decimal.NewFromFloat(raw))
}

// discounted applies off to original and re-quantizes. ok is false when no
// positive price point lies strictly below original.
func discounted(original decimal.Decimal, off float64) (decimal.Decimal, bool) {
	p := quantize(original.Mul(decimal.NewFromFloat(1 - off)))
	if p.GreaterThanOrEqual(original) {
		p = original.Sub(pricePoint)
	}
	if !p.IsPositive() {
		return decimal.Zero, false
	}
	return p, true
}

// pricing returns the displayed price and, when a discount was rolled, the
// undiscounted anchor.
func pricing(rng *rand.Rand, band domain.PriceBand) (float64, *float64) {
	original := basePrice(rng, band)
	off := rollDiscount(rng.Float64())
	if off == 0 {
		return original.InexactFloat64(), nil
	}
	p, ok := discounted(original, off)
	if !ok {
		return original.InexactFloat64(), nil
	}
	anchor := original.InexactFloat64()
	return p.InexactFloat64(), &anchor
}
