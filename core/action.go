package core

import (
	"encoding/base64"

	"github.com/fox-one/msgpack"
)

const (
	// ActionKeyService service type
	ActionKeyService = "srv"
	// ActionKeyUser user
	ActionKeyUser = "usr"
	// ActionKeyAmount amount
	ActionKeyAmount = "amnt"
	// ActionKeySymbol pool symbol
	ActionKeySymbol = "sb"
	// ActionKeyShares share amount
	ActionKeyShares = "shr"
	// ActionKeyReferTrace refer trace
	ActionKeyReferTrace = "rftr"
	// ActionKeyErrorCode error code
	ActionKeyErrorCode = "ec"
)

const (
	// ActionServiceDeposit deposit
	ActionServiceDeposit = "dep"
	// ActionServiceRedeem redeem
	ActionServiceRedeem = "rdm"
	// ActionServiceBorrow borrow payout
	ActionServiceBorrow = "brw"
	// ActionServiceRepay repay
	ActionServiceRepay = "rpy"
	// ActionServiceRepayRefund overpayment refund
	ActionServiceRepayRefund = "rpy-rf"
	// ActionServiceLiquidate liquidation repayment
	ActionServiceLiquidate = "liq"
	// ActionServiceLiquidatePayout liquidation swap-out payout
	ActionServiceLiquidatePayout = "liq-out"
	// ActionServiceResize position resize
	ActionServiceResize = "rsz"
	// ActionServiceResizeReturn deleverage remainder return
	ActionServiceResizeReturn = "rsz-rt"
)

// Action transfer memo payload
type Action map[string]string

// NewAction new action
func NewAction() Action {
	return make(Action)
}

// Format encode action as a base64 msgpack memo
func (a Action) Format() (string, error) {
	b, err := msgpack.Marshal(a)
	if err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(b), nil
}

// ParseAction decode a base64 msgpack memo
func ParseAction(memo string) (Action, error) {
	b, err := base64.StdEncoding.DecodeString(memo)
	if err != nil {
		return nil, err
	}

	var a Action
	if err := msgpack.Unmarshal(b, &a); err != nil {
		return nil, err
	}

	return a, nil
}
