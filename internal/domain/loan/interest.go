package loan

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	hundred     = decimal.NewFromInt(100)
	daysPerYear = decimal.NewFromInt(365)
)

// Accrual is the result of the pro-rata interest computation. All figures
// derive from loan terms and elapsed time only; nothing here touches state.
type Accrual struct {
	TotalTermDays    int
	ElapsedDays      int
	FullTermInterest decimal.Decimal // rounded to 2 decimals
	Accrued          decimal.Decimal // rounded to 2 decimals
	Early            bool            // true while elapsed < term
}

// FullTermInterest computes principal * rate/100 * days/365, rounded to
// 2 decimals. This is the figure locked into Loan.Interest at creation.
func FullTermInterest(principal, annualRatePercent decimal.Decimal, termDays int) decimal.Decimal {
	return rawInterest(principal, annualRatePercent, termDays).Round(2)
}

func rawInterest(principal, annualRatePercent decimal.Decimal, termDays int) decimal.Decimal {
	return principal.
		Mul(annualRatePercent).Div(hundred).
		Mul(decimal.NewFromInt(int64(termDays))).Div(daysPerYear)
}

// Accrue computes interest earned between start and now, scaled linearly
// by elapsed whole days over the term and clamped at the full-term figure.
func Accrue(principal, annualRatePercent decimal.Decimal, start, due, now time.Time) Accrual {
	total := wholeDays(start, due)
	if total < 1 {
		total = 1
	}
	elapsed := wholeDays(start, now)
	if elapsed < 0 {
		elapsed = 0
	}

	full := rawInterest(principal, annualRatePercent, total)
	proportion := decimal.NewFromInt(int64(elapsed)).Div(decimal.NewFromInt(int64(total)))
	one := decimal.NewFromInt(1)
	if proportion.GreaterThan(one) {
		proportion = one
	}

	return Accrual{
		TotalTermDays:    total,
		ElapsedDays:      elapsed,
		FullTermInterest: full.Round(2),
		Accrued:          full.Mul(proportion).Round(2),
		Early:            proportion.LessThan(one),
	}
}

// RepayAmount is the single source of truth for "how much is due right
// now". Repay, display and transaction lookup all go through it so the
// quoted and the charged amount can never diverge.
//
// Early payoff is charged live accrual; on or after the due date the
// precomputed full-term total applies, so repayment never exceeds the
// figure quoted at creation.
func RepayAmount(l *Loan, now time.Time) (due, accrued decimal.Decimal) {
	switch l.Status {
	case StatusCompleted:
		due = decimal.Max(l.PaidAmount, l.TotalRepay)
		accrued = decimal.Max(decimal.Zero, l.PaidAmount.Sub(l.Principal))
	case StatusActive:
		a := Accrue(l.Principal, l.AnnualRatePercent, l.AccrualStart(), l.DueDate, now)
		if a.Early {
			due = l.Principal.Add(a.Accrued).Round(2)
			accrued = a.Accrued
		} else {
			due = l.TotalRepay
			accrued = l.TotalRepay.Sub(l.Principal)
		}
	default:
		// pending (and the reserved approved state): projection only.
		due = l.TotalRepay
		accrued = l.Interest
	}
	return due, accrued
}

func wholeDays(from, to time.Time) int {
	return int(to.Sub(from) / (24 * time.Hour))
}

// ResolveTerm maps a requested duration in days onto the closest
// week/month term, preferring whole months, then whole weeks, then
// rounding up to the next week.
func ResolveTerm(days int) (TermUnit, int) {
	switch {
	case days%DaysPerMonth == 0:
		return TermMonth, days / DaysPerMonth
	case days%DaysPerWeek == 0:
		return TermWeek, days / DaysPerWeek
	default:
		return TermWeek, (days + DaysPerWeek - 1) / DaysPerWeek
	}
}

// ReferenceAnnualRate is the quoted yearly rate for a requested duration:
// under a month 0.5%, under a quarter 3.5%, under a year 3.8%, else 4.85%.
func ReferenceAnnualRate(days int) decimal.Decimal {
	switch {
	case days >= 360:
		return decimal.NewFromFloat(4.85)
	case days >= 90:
		return decimal.NewFromFloat(3.8)
	case days >= 30:
		return decimal.NewFromFloat(3.5)
	default:
		return decimal.NewFromFloat(0.5)
	}
}
