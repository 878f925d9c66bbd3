package rates

import (
	"testing"

	pkgerrors "github.com/rkartside/quoter-backend/pkg/errors"
)

func TestCalculateWithSaleAmount(t *testing.T) {
	cfg := PricingConfig{RateFactor: 0.08, RequiresSaleAmount: true}
	input := CalculateInput{NumberOfSpaces: 2, SaleAmount: 50000}

	// (960.16*2 + 0.066354*50000 + 1782.41) * 1.08 = 7582.06 -> 7600
	got, err := Calculate(cfg, input)
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	if got != 7600 {
		t.Fatalf("expected 7600, got %d", got)
	}
}

func TestCalculateWithoutSaleAmount(t *testing.T) {
	cfg := PricingConfig{RateFactor: 0, RequiresSaleAmount: false}
	input := CalculateInput{NumberOfSpaces: 1}

	// 1400 + 1882.41 = 3282.41 -> 3300
	got, err := Calculate(cfg, input)
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	if got != 3300 {
		t.Fatalf("expected 3300, got %d", got)
	}
}

func TestCalculateIgnoresSaleAmountOnFlatStores(t *testing.T) {
	cfg := PricingConfig{RateFactor: 0, RequiresSaleAmount: false}

	base, err := Calculate(cfg, CalculateInput{NumberOfSpaces: 3})
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	withSale, err := Calculate(cfg, CalculateInput{NumberOfSpaces: 3, SaleAmount: 99999})
	if err != nil {
		t.Fatalf("calculate with sale: %v", err)
	}
	if base != withSale {
		t.Fatalf("flat store rate changed with sale amount: %d vs %d", base, withSale)
	}
}

func TestCalculateAlwaysMultipleOfHundred(t *testing.T) {
	cases := []struct {
		cfg   PricingConfig
		input CalculateInput
	}{
		{PricingConfig{RateFactor: 0.15, RequiresSaleAmount: true}, CalculateInput{NumberOfSpaces: 1, SaleAmount: 12345}},
		{PricingConfig{RateFactor: 0.33, RequiresSaleAmount: true}, CalculateInput{NumberOfSpaces: 7, SaleAmount: 981273}},
		{PricingConfig{RateFactor: 0, RequiresSaleAmount: false}, CalculateInput{NumberOfSpaces: 11}},
		{PricingConfig{RateFactor: 1.5, RequiresSaleAmount: false}, CalculateInput{NumberOfSpaces: 2}},
	}

	for i, tc := range cases {
		got, err := Calculate(tc.cfg, tc.input)
		if err != nil {
			t.Fatalf("case %d: calculate: %v", i, err)
		}
		if got < 0 {
			t.Fatalf("case %d: negative rate %d", i, got)
		}
		if got%100 != 0 {
			t.Fatalf("case %d: rate %d not a multiple of 100", i, got)
		}
	}
}

func TestCalculateMissingRequiredSaleAmount(t *testing.T) {
	cfg := PricingConfig{RateFactor: 0.08, RequiresSaleAmount: true}

	for _, sale := range []int64{0, -1} {
		input := CalculateInput{NumberOfSpaces: 2, SaleAmount: sale}
		_, err := Calculate(cfg, input)
		if err == nil {
			t.Fatalf("expected validation error for sale amount %d", sale)
		}
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected VALIDATION_ERROR, got %v", err)
		}
	}
}

func TestCalculateRejectsInvalidSpaces(t *testing.T) {
	cfg := PricingConfig{RateFactor: 0, RequiresSaleAmount: false}

	for _, spaces := range []int{0, -3} {
		_, err := Calculate(cfg, CalculateInput{NumberOfSpaces: spaces})
		if err == nil {
			t.Fatalf("expected validation error for spaces %d", spaces)
		}
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected VALIDATION_ERROR, got %v", err)
		}
	}
}
