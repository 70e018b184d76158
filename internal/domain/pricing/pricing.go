package pricing

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/lanchonete/internal/domain/catalog"
)

// DefaultThresholdCents is the subtotal at or above which the discount applies.
const DefaultThresholdCents = 5000

var (
	one  = decimal.NewFromInt(1)
	zero = decimal.Zero

	// DefaultRate is the fraction taken off the subtotal once the threshold is reached.
	DefaultRate = decimal.New(10, -2)
)

// ErrInvalidPolicy is returned by Policy.Validate.
var ErrInvalidPolicy = errors.New("invalid discount policy")

// Policy describes the threshold discount applied at checkout.
type Policy struct {
	ThresholdCents int64
	Rate           decimal.Decimal
}

// DefaultPolicy returns the snack bar's discount: 10% off from R$50.00.
func DefaultPolicy() Policy {
	return Policy{
		ThresholdCents: DefaultThresholdCents,
		Rate:           DefaultRate,
	}
}

// Validate checks that the threshold is non-negative and the rate lies in [0, 1].
func (p Policy) Validate() error {
	if p.ThresholdCents < 0 {
		return errors.Wrapf(ErrInvalidPolicy, "negative threshold %d", p.ThresholdCents)
	}
	if p.Rate.LessThan(zero) || p.Rate.GreaterThan(one) {
		return errors.Wrapf(ErrInvalidPolicy, "rate %s out of [0, 1]", p.Rate)
	}
	return nil
}

// Apply returns the amount due for the given subtotal.
//
// The discounted amount is rounded half-to-even to a whole cent, so 5005
// becomes 4504 and 5015 becomes 4514.
func (p Policy) Apply(subtotal int64) int64 {
	if subtotal < p.ThresholdCents {
		return subtotal
	}
	total := decimal.NewFromInt(subtotal).Mul(one.Sub(p.Rate)).RoundBank(0)
	return total.IntPart()
}

// Total returns the amount due for items.
func (p Policy) Total(items []catalog.Item) int64 {
	return p.Apply(Subtotal(items))
}

// Subtotal returns the sum of the item prices.
func Subtotal(items []catalog.Item) int64 {
	var sum int64
	for _, item := range items {
		sum += item.Price
	}
	return sum
}

// FormatPrice renders cents as units with two decimal places, e.g. 1050 -> "10.50".
func FormatPrice(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}
