package tandem

import (
	"tandem/pkg/number"

	"github.com/shopspring/decimal"
)

// BorrowBalance current owed amount of a borrow position
// balance = principal * pool.borrow_index / borrow.interest_index, ceiled against the borrower
func BorrowBalance(principal, borrowIndex, interestIndex decimal.Decimal) decimal.Decimal {
	if !principal.IsPositive() {
		return decimal.Zero
	}

	if !borrowIndex.IsPositive() {
		borrowIndex = decimal.New(1, 0)
	}

	if !interestIndex.IsPositive() {
		interestIndex = borrowIndex
	}

	return number.DivCeil(principal.Mul(borrowIndex), interestIndex, MaxPrecision)
}
