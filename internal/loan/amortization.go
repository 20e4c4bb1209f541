package loan

import (
	"fmt"
	"net/http"

	loanerrors "go-ess/internal/loan/errors"
	"go-ess/internal/shared/apperror"
	"go-ess/internal/shared/money"

	"github.com/shopspring/decimal"
)

var (
	monthsPerYear   = decimal.NewFromInt(12)
	hundred         = decimal.NewFromInt(100)
	monthlyRateBase = decimal.NewFromInt(1200)
)

// Quote is the priced result of an application, rounded to two places.
type Quote struct {
	Installment   decimal.Decimal
	TotalCost     decimal.Decimal
	TotalInterest decimal.Decimal
}

// ComputeInstallment prices a loan. A zero monthly rate on a reducing
// balance loan degrades to principal / term.
func ComputeInstallment(principal decimal.Decimal, termMonths int, annualRatePercent, adminFee decimal.Decimal, method string) (Quote, error) {
	if !principal.IsPositive() {
		return Quote{}, loanerrors.ErrInvalidAmount
	}
	if termMonths < 1 {
		return Quote{}, loanerrors.ErrInvalidTerm
	}
	if annualRatePercent.IsNegative() || adminFee.IsNegative() {
		return Quote{}, loanerrors.ErrInvalidRate
	}

	term := decimal.NewFromInt(int64(termMonths))

	switch method {
	case MethodInterestFree:
		return Quote{
			Installment:   money.Round2(principal.Div(term)),
			TotalCost:     money.Round2(principal.Add(adminFee)),
			TotalInterest: decimal.Zero,
		}, nil

	case MethodFlatRate:
		interest := principal.Mul(annualRatePercent).Mul(term).Div(monthsPerYear.Mul(hundred))
		total := principal.Add(interest).Add(adminFee)
		return Quote{
			Installment:   money.Round2(total.Div(term)),
			TotalCost:     money.Round2(total),
			TotalInterest: money.Round2(interest),
		}, nil

	case MethodReducingBalance:
		installment := reducingInstallment(principal, termMonths, annualRatePercent)
		repaid := installment.Mul(term)
		return Quote{
			Installment:   money.Round2(installment),
			TotalCost:     money.Round2(repaid.Add(adminFee)),
			TotalInterest: money.Round2(repaid.Sub(principal)),
		}, nil
	}
	return Quote{}, loanerrors.ErrInvalidMethod
}

// reducingInstallment is the annuity payment P*r*(1+r)^n / ((1+r)^n - 1).
func reducingInstallment(principal decimal.Decimal, termMonths int, annualRatePercent decimal.Decimal) decimal.Decimal {
	rate := annualRatePercent.Div(monthlyRateBase)
	term := decimal.NewFromInt(int64(termMonths))
	if rate.IsZero() {
		return principal.Div(term)
	}
	growth := decimal.NewFromInt(1).Add(rate).Pow(term)
	return principal.Mul(rate).Mul(growth).Div(growth.Sub(decimal.NewFromInt(1)))
}

func validMethod(method string) bool {
	switch method {
	case MethodInterestFree, MethodFlatRate, MethodReducingBalance:
		return true
	}
	return false
}

// ValidateApplication checks a requested amount and term against the
// product bounds.
func (p Product) ValidateApplication(principal decimal.Decimal, termMonths int) error {
	switch {
	case principal.LessThan(p.MinAmount):
		return boundError("amount below minimum of %s", p.MinAmount.StringFixed(2))
	case principal.GreaterThan(p.MaxAmount):
		return boundError("amount exceeds maximum of %s", p.MaxAmount.StringFixed(2))
	case termMonths < p.MinTermMonths:
		return boundError("term below minimum of %d months", p.MinTermMonths)
	case termMonths > p.MaxTermMonths:
		return boundError("term exceeds maximum of %d months", p.MaxTermMonths)
	}
	return nil
}

func boundError(format string, arg any) error {
	return apperror.New(apperror.CodeInvalidInput, fmt.Sprintf(format, arg), http.StatusBadRequest)
}

// Allocation is how one repayment is split across the balances.
type Allocation struct {
	Interest  decimal.Decimal
	Fee       decimal.Decimal
	Principal decimal.Decimal
}

// Allocate splits a payment: the period's interest first, then the period's
// share of the admin fee, then principal. Any surplus settles remaining flat
// interest and fee early. A payment larger than the whole balance is rejected.
func Allocate(a Account, amount decimal.Decimal) (Allocation, error) {
	if !amount.IsPositive() {
		return Allocation{}, loanerrors.ErrInvalidAmount
	}

	interestDue := periodInterest(a)
	feeDue := decimal.Min(a.OutstandingFee, money.Round2(a.AdminFee.Div(decimal.NewFromInt(int64(a.TermMonths)))))

	var out Allocation
	rest := amount

	take := func(due decimal.Decimal) decimal.Decimal {
		part := decimal.Min(rest, due)
		if part.IsNegative() {
			part = decimal.Zero
		}
		rest = rest.Sub(part)
		return part
	}

	out.Interest = take(interestDue)
	out.Fee = take(feeDue)
	out.Principal = take(a.OutstandingPrincipal)
	if a.Method == MethodFlatRate {
		out.Interest = out.Interest.Add(take(a.OutstandingInterest.Sub(out.Interest)))
	}
	out.Fee = out.Fee.Add(take(a.OutstandingFee.Sub(out.Fee)))

	if rest.IsPositive() {
		return Allocation{}, loanerrors.ErrRepaymentExceedsBalance
	}
	return out, nil
}

// periodInterest is the interest owed for the current installment.
func periodInterest(a Account) decimal.Decimal {
	switch a.Method {
	case MethodFlatRate:
		perMonth := money.Round2(a.TotalInterest.Div(decimal.NewFromInt(int64(a.TermMonths))))
		return decimal.Min(perMonth, a.OutstandingInterest)
	case MethodReducingBalance:
		return money.Round2(a.OutstandingPrincipal.Mul(a.AnnualRate).Div(monthlyRateBase))
	}
	return decimal.Zero
}

// apply posts an allocation onto the account and reports whether the loan
// is now settled.
func (al Allocation) apply(a *Account) bool {
	a.OutstandingPrincipal = a.OutstandingPrincipal.Sub(al.Principal)
	a.OutstandingInterest = decimal.Max(decimal.Zero, a.OutstandingInterest.Sub(al.Interest))
	a.OutstandingFee = a.OutstandingFee.Sub(al.Fee)
	a.TotalPaid = a.TotalPaid.Add(al.Interest).Add(al.Fee).Add(al.Principal)
	a.InstallmentsPaid++

	settled := a.OutstandingPrincipal.IsZero() && a.OutstandingFee.IsZero()
	if a.Method == MethodFlatRate {
		settled = settled && a.OutstandingInterest.IsZero()
	}
	if settled {
		// reducing balance interest is charged as it accrues, so the
		// projected remainder lapses once principal is cleared
		a.OutstandingInterest = decimal.Zero
	}
	return settled
}
