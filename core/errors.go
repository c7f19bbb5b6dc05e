package core

import "strconv"

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unknown
	ErrUnknown ErrorCode = 100000
	// ErrOperationForbidden caller is not allowed to perform the operation
	ErrOperationForbidden ErrorCode = 100001

	// ErrPoolNotFound no pool for the asset
	ErrPoolNotFound ErrorCode = 100100
	// ErrInvalidAmount zero or negative amount
	ErrInvalidAmount ErrorCode = 100101
	// ErrInsufficientShares burn exceeds the holder's balance
	ErrInsufficientShares ErrorCode = 100102
	// ErrBorrowNotFound no borrow position
	ErrBorrowNotFound ErrorCode = 100103
	// ErrInsufficientCollateral not enough collateral value
	ErrInsufficientCollateral ErrorCode = 100104
	// ErrInsufficientLiquidity pool cash cannot honor the release
	ErrInsufficientLiquidity ErrorCode = 100105
	// ErrRedeemNotAllowed redeem would leave the account unhealthy
	ErrRedeemNotAllowed ErrorCode = 100106
	// ErrSeizeNotAllowed seizure parameters rejected
	ErrSeizeNotAllowed ErrorCode = 100107
	// ErrInvalidPrice missing or non-positive oracle price
	ErrInvalidPrice ErrorCode = 100108
	// ErrUnhealthy operation would push health above 1
	ErrUnhealthy ErrorCode = 100109
	// ErrNotLiquidatable target account has no shortfall
	ErrNotLiquidatable ErrorCode = 100110
	// ErrCannotLiquidateSelf borrower may not liquidate themselves
	ErrCannotLiquidateSelf ErrorCode = 100111
	// ErrExpired caller-supplied deadline exceeded
	ErrExpired ErrorCode = 100112
	// ErrOracleUnavailable oracle quote could not be obtained
	ErrOracleUnavailable ErrorCode = 100113
	// ErrBelowMinOut conversion output below the caller's minimum
	ErrBelowMinOut ErrorCode = 100114
	// ErrParamOutOfRange risk parameter outside its hard bounds
	ErrParamOutOfRange ErrorCode = 100115
	// ErrUnauthorized missing or insufficient pre-authorization
	ErrUnauthorized ErrorCode = 100116
)

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	return e.String()
}
