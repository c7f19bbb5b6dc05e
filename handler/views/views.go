package views

import (
	"tandem/core"

	"github.com/shopspring/decimal"
)

// LendingPool a lending pool with its derived rates
type LendingPool struct {
	core.LendingPool
	ExchangeRate    decimal.Decimal `json:"exchange_rate"`
	UtilizationRate decimal.Decimal `json:"utilization_rate"`
	SupplyAPY       decimal.Decimal `json:"supply_apy"`
	BorrowAPY       decimal.Decimal `json:"borrow_apy"`
}

// CollateralPool a collateral pool with its derived rate
type CollateralPool struct {
	core.CollateralPool
	ExchangeRate decimal.Decimal `json:"exchange_rate"`
}

// Pools the paired vaults as one response
type Pools struct {
	Lending    *LendingPool    `json:"lending"`
	Collateral *CollateralPool `json:"collateral"`
}

// Account a borrower's position with the live borrow balance
type Account struct {
	core.Account
	BorrowBalance decimal.Decimal `json:"borrow_balance"`
}
