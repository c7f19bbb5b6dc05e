package codes

import (
	"errors"
	"net/http"
	"strconv"

	"tandem/core"
	"tandem/pkg/tandem"

	"github.com/twitchtv/twirp"
)

// CustomCodeKey meta key carrying the domain error code
const CustomCodeKey = "custom_code"

// With attach the domain code to a twirp error
func With(err error, code int) error {
	twerr, ok := err.(twirp.Error)
	if !ok {
		twerr = twirp.InternalErrorWith(err)
	}

	return twerr.WithMeta(CustomCodeKey, strconv.Itoa(code))
}

// Resolve map a service error to (http status, domain code, message)
func Resolve(err error) (int, int, string) {
	var code core.ErrorCode
	if errors.As(err, &code) {
		return statusOf(code), int(code), messageOf(code)
	}

	var requireErr tandem.Error
	if errors.As(err, &requireErr) {
		return http.StatusBadRequest, int(core.ErrOperationForbidden), requireErr.Msg
	}

	return http.StatusInternalServerError, int(core.ErrUnknown), err.Error()
}

func statusOf(code core.ErrorCode) int {
	switch code {
	case core.ErrPoolNotFound, core.ErrBorrowNotFound:
		return http.StatusNotFound
	case core.ErrOperationForbidden, core.ErrUnauthorized:
		return http.StatusForbidden
	case core.ErrUnknown, core.ErrOracleUnavailable:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

func messageOf(code core.ErrorCode) string {
	switch code {
	case core.ErrOperationForbidden:
		return "operation forbidden"
	case core.ErrPoolNotFound:
		return "pool not found"
	case core.ErrInvalidAmount:
		return "invalid amount"
	case core.ErrInsufficientShares:
		return "insufficient shares"
	case core.ErrBorrowNotFound:
		return "borrow not found"
	case core.ErrInsufficientCollateral:
		return "insufficient collateral"
	case core.ErrInsufficientLiquidity:
		return "insufficient pool liquidity"
	case core.ErrRedeemNotAllowed:
		return "redeem not allowed"
	case core.ErrSeizeNotAllowed:
		return "seize not allowed"
	case core.ErrInvalidPrice:
		return "invalid price"
	case core.ErrUnhealthy:
		return "account would be unhealthy"
	case core.ErrNotLiquidatable:
		return "account not liquidatable"
	case core.ErrCannotLiquidateSelf:
		return "cannot liquidate own account"
	case core.ErrExpired:
		return "deadline exceeded"
	case core.ErrOracleUnavailable:
		return "oracle unavailable"
	case core.ErrBelowMinOut:
		return "output below minimum"
	case core.ErrParamOutOfRange:
		return "parameter out of range"
	case core.ErrUnauthorized:
		return "unauthorized"
	default:
		return "unknown error"
	}
}
