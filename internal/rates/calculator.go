package rates

import (
	pkgerrors "github.com/rkartside/quoter-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// Two-branch pricing polynomial. The sale-aware branch weighs the sale amount
// into the base; the flat branch prices by space count alone.
var (
	perSpaceWithSale = decimal.RequireFromString("960.16")
	saleCoefficient  = decimal.RequireFromString("0.066354")
	baseWithSale     = decimal.RequireFromString("1782.41")
	perSpaceFlat     = decimal.RequireFromString("1400")
	baseFlat         = decimal.RequireFromString("1882.41")
	hundred          = decimal.NewFromInt(100)
	one              = decimal.NewFromInt(1)
)

// PricingConfig is the per-store knob set the calculator consumes.
type PricingConfig struct {
	RateFactor         float64
	RequiresSaleAmount bool
}

// CalculateInput carries the request-side numbers for a rate computation.
type CalculateInput struct {
	NumberOfSpaces int
	SaleAmount     int64
}

// Calculate computes the quoted rate for a store configuration and request.
// The result is a non-negative integer rounded to the nearest multiple of 100.
func Calculate(cfg PricingConfig, input CalculateInput) (int64, error) {
	if input.NumberOfSpaces < 1 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "number of spaces must be at least 1")
	}
	if input.SaleAmount < 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "sale amount cannot be negative")
	}
	if cfg.RateFactor < 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "rate factor cannot be negative")
	}
	if cfg.RequiresSaleAmount && input.SaleAmount <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "sale amount is required for this store")
	}

	spaces := decimal.NewFromInt(int64(input.NumberOfSpaces))

	var base decimal.Decimal
	if cfg.RequiresSaleAmount {
		sale := decimal.NewFromInt(input.SaleAmount)
		base = perSpaceWithSale.Mul(spaces).
			Add(saleCoefficient.Mul(sale)).
			Add(baseWithSale)
	} else {
		base = perSpaceFlat.Mul(spaces).Add(baseFlat)
	}

	factor := one.Add(decimal.NewFromFloat(cfg.RateFactor))
	total := base.Mul(factor)

	// Round half-up on total/100, then scale back to the nearest hundred.
	rounded := total.Div(hundred).Round(0).Mul(hundred)
	return rounded.IntPart(), nil
}
