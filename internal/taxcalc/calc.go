package taxcalc

import (
	"fmt"

	"github.com/shopspring/decimal"

	"taxprep-backend/internal/taxpayers"
)

// Input is the income picture fed into an estimate. Amounts are annual USD.
type Input struct {
	FilingStatus         string
	Wages                decimal.Decimal
	SelfEmploymentIncome decimal.Decimal
	InvestmentIncome     decimal.Decimal
	Dependents           int
}

// Result is a rough federal estimate. It is a planning aid, not a filing
// computation.
type Result struct {
	GrossIncome       decimal.Decimal `json:"grossIncome"`
	StandardDeduction decimal.Decimal `json:"standardDeduction"`
	TaxableIncome     decimal.Decimal `json:"taxableIncome"`
	IncomeTax         decimal.Decimal `json:"incomeTax"`
	SelfEmploymentTax decimal.Decimal `json:"selfEmploymentTax"`
	ChildTaxCredit    decimal.Decimal `json:"childTaxCredit"`
	EstimatedTax      decimal.Decimal `json:"estimatedTax"`
	EffectiveRate     decimal.Decimal `json:"effectiveRate"`
}

type bracket struct {
	upTo decimal.Decimal // zero value means no upper bound
	rate decimal.Decimal
}

// 2025 single-filer brackets; married-joint doubles the bounds. Amounts in
// whole dollars.
var singleBrackets = []bracket{
	{upTo: decimal.NewFromInt(11925), rate: decimal.NewFromFloat(0.10)},
	{upTo: decimal.NewFromInt(48475), rate: decimal.NewFromFloat(0.12)},
	{upTo: decimal.NewFromInt(103350), rate: decimal.NewFromFloat(0.22)},
	{upTo: decimal.NewFromInt(197300), rate: decimal.NewFromFloat(0.24)},
	{upTo: decimal.NewFromInt(250525), rate: decimal.NewFromFloat(0.32)},
	{upTo: decimal.NewFromInt(626350), rate: decimal.NewFromFloat(0.35)},
	{rate: decimal.NewFromFloat(0.37)},
}

var (
	standardDeductionSingle = decimal.NewFromInt(15000)
	standardDeductionJoint  = decimal.NewFromInt(30000)
	seTaxRate               = decimal.NewFromFloat(0.153)
	seTaxableShare          = decimal.NewFromFloat(0.9235)
	childCreditPerChild     = decimal.NewFromInt(2000)
	two                     = decimal.NewFromInt(2)
)

// Estimate computes a deterministic federal tax estimate. It is a pure,
// synchronous function; callers needing to keep a UI thread free should run
// it through Dispatch.
func Estimate(in Input) (Result, error) {
	if in.Wages.IsNegative() || in.SelfEmploymentIncome.IsNegative() || in.InvestmentIncome.IsNegative() {
		return Result{}, fmt.Errorf("income amounts must not be negative")
	}
	if in.Dependents < 0 {
		return Result{}, fmt.Errorf("dependents must not be negative")
	}

	gross := in.Wages.Add(in.SelfEmploymentIncome).Add(in.InvestmentIncome)

	deduction := standardDeductionSingle
	if in.FilingStatus == taxpayers.FilingMarriedJoint {
		deduction = standardDeductionJoint
	}

	taxable := gross.Sub(deduction)
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}

	incomeTax := progressiveTax(taxable, bracketsFor(in.FilingStatus))
	seTax := in.SelfEmploymentIncome.Mul(seTaxableShare).Mul(seTaxRate)

	credit := childCreditPerChild.Mul(decimal.NewFromInt(int64(in.Dependents)))
	estimated := incomeTax.Add(seTax).Sub(credit)
	if estimated.IsNegative() {
		estimated = decimal.Zero
	}

	effective := decimal.Zero
	if gross.IsPositive() {
		effective = estimated.Div(gross).Round(4)
	}

	return Result{
		GrossIncome:       gross.Round(2),
		StandardDeduction: deduction,
		TaxableIncome:     taxable.Round(2),
		IncomeTax:         incomeTax.Round(2),
		SelfEmploymentTax: seTax.Round(2),
		ChildTaxCredit:    credit,
		EstimatedTax:      estimated.Round(2),
		EffectiveRate:     effective,
	}, nil
}

func bracketsFor(filingStatus string) []bracket {
	if filingStatus != taxpayers.FilingMarriedJoint {
		return singleBrackets
	}
	out := make([]bracket, len(singleBrackets))
	for i, b := range singleBrackets {
		out[i] = bracket{rate: b.rate}
		if !b.upTo.IsZero() {
			out[i].upTo = b.upTo.Mul(two)
		}
	}
	return out
}

func progressiveTax(taxable decimal.Decimal, brackets []bracket) decimal.Decimal {
	tax := decimal.Zero
	lower := decimal.Zero
	for _, b := range brackets {
		if b.upTo.IsZero() || taxable.LessThanOrEqual(b.upTo) {
			return tax.Add(taxable.Sub(lower).Mul(b.rate))
		}
		tax = tax.Add(b.upTo.Sub(lower).Mul(b.rate))
		lower = b.upTo
	}
	return tax
}
