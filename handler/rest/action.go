package rest

import (
	"net/http"
	"time"

	"tandem/core"
	"tandem/handler/param"
	"tandem/handler/render"

	"github.com/shopspring/decimal"
)

type actionParams struct {
	User     string `json:"user"`
	Asset    string `json:"asset"`
	Amount   string `json:"amount"`
	Shares   string `json:"shares"`
	Borrower string `json:"borrower"`
	// leverage direction, "increase" or "decrease"
	Direction string `json:"direction"`
	MinOut    string `json:"min_out"`
	SwapOut   bool   `json:"swap_out"`
	// unix seconds; zero means no deadline
	Deadline int64 `json:"deadline"`
}

func (p actionParams) deadline() time.Time {
	if p.Deadline == 0 {
		return time.Time{}
	}

	return time.Unix(p.Deadline, 0)
}

func (p actionParams) amount() (decimal.Decimal, error) {
	return parseAmount(p.Amount)
}

func (p actionParams) shares() (decimal.Decimal, error) {
	return parseAmount(p.Shares)
}

func (p actionParams) minOut() decimal.Decimal {
	v, err := decimal.NewFromString(p.MinOut)
	if err != nil {
		return decimal.Zero
	}

	return v
}

func parseAmount(s string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(s)
	if err != nil || !v.IsPositive() {
		return decimal.Zero, core.ErrInvalidAmount
	}

	return v, nil
}

func depositHandler(engine core.IEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params actionParams
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		amount, err := params.amount()
		if err != nil {
			renderErr(w, err)
			return
		}

		minted, err := engine.Deposit(r.Context(), params.User, params.Asset, amount, params.deadline())
		if err != nil {
			renderErr(w, err)
			return
		}

		render.JSON(w, render.H{"shares": minted})
	}
}

func redeemHandler(engine core.IEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params actionParams
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		shares, err := params.shares()
		if err != nil {
			renderErr(w, err)
			return
		}

		released, err := engine.Redeem(r.Context(), params.User, params.Asset, shares, params.deadline())
		if err != nil {
			renderErr(w, err)
			return
		}

		render.JSON(w, render.H{"amount": released})
	}
}

func borrowHandler(engine core.IEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params actionParams
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		amount, err := params.amount()
		if err != nil {
			renderErr(w, err)
			return
		}

		if err := engine.Borrow(r.Context(), params.User, amount, params.deadline()); err != nil {
			renderErr(w, err)
			return
		}

		render.JSON(w, render.H{"amount": amount})
	}
}

func repayHandler(engine core.IEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params actionParams
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		amount, err := params.amount()
		if err != nil {
			renderErr(w, err)
			return
		}

		applied, err := engine.Repay(r.Context(), params.User, amount, params.deadline())
		if err != nil {
			renderErr(w, err)
			return
		}

		render.JSON(w, render.H{"applied": applied})
	}
}

func liquidateHandler(engine core.IEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params actionParams
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		amount, err := params.amount()
		if err != nil {
			renderErr(w, err)
			return
		}

		result, err := engine.Liquidate(r.Context(), params.User, params.Borrower, amount, params.SwapOut, params.minOut(), params.deadline())
		if err != nil {
			renderErr(w, err)
			return
		}

		render.JSON(w, result)
	}
}

func resizeHandler(engine core.IEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params actionParams
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		amount, err := params.amount()
		if err != nil {
			renderErr(w, err)
			return
		}

		result, err := engine.ResizePosition(r.Context(), params.User, params.Direction, amount, params.minOut(), params.deadline())
		if err != nil {
			renderErr(w, err)
			return
		}

		render.JSON(w, result)
	}
}
