package wallet

import (
	"context"

	"tandem/core"
	"tandem/pkg/id"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

type walletService struct {
	transfers  core.ITransferStore
	authorizer core.IAuthorizer
}

// New new wallet service journaling asset movements
func New(transfers core.ITransferStore, authorizer core.IAuthorizer) core.IWalletService {
	return &walletService{
		transfers:  transfers,
		authorizer: authorizer,
	}
}

func (s *walletService) Pull(ctx context.Context, tx *db.DB, userID, assetID string, amount decimal.Decimal, action core.Action) error {
	if !amount.IsPositive() {
		return core.ErrInvalidAmount
	}

	ok, err := s.authorizer.IsAuthorized(ctx, userID, assetID, amount)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("authz check failed")
		return core.ErrUnauthorized
	}

	if !ok {
		return core.ErrUnauthorized
	}

	return s.journal(ctx, tx, userID, assetID, amount, core.TransferDirectionIn, action)
}

func (s *walletService) Credit(ctx context.Context, tx *db.DB, userID, assetID string, amount decimal.Decimal, action core.Action) error {
	if !amount.IsPositive() {
		return core.ErrInvalidAmount
	}

	return s.journal(ctx, tx, userID, assetID, amount, core.TransferDirectionIn, action)
}

func (s *walletService) Payout(ctx context.Context, tx *db.DB, userID, assetID string, amount decimal.Decimal, action core.Action) error {
	if !amount.IsPositive() {
		return core.ErrInvalidAmount
	}

	return s.journal(ctx, tx, userID, assetID, amount, core.TransferDirectionOut, action)
}

func (s *walletService) journal(ctx context.Context, tx *db.DB, userID, assetID string, amount decimal.Decimal, direction string, action core.Action) error {
	memo, err := action.Format()
	if err != nil {
		return err
	}

	trace := action[core.ActionKeyReferTrace]
	if trace == "" {
		trace = id.New()
	}

	return s.transfers.Create(ctx, tx, &core.Transfer{
		TraceID:   id.Trace(trace, direction+"-"+action[core.ActionKeyService]),
		UserID:    userID,
		AssetID:   assetID,
		Direction: direction,
		Amount:    amount,
		Memo:      memo,
	})
}
