package cmd

import (
	"tandem/core"
	accountservice "tandem/service/account"
	"tandem/service/authz"
	collateralservice "tandem/service/collateral"
	"tandem/service/engine"
	lendingservice "tandem/service/lending"
	liquidationservice "tandem/service/liquidation"
	"tandem/service/oracle"
	positionservice "tandem/service/position"
	"tandem/service/reward"
	"tandem/service/swap"
	walletservice "tandem/service/wallet"
	accountstore "tandem/store/account"
	borrowstore "tandem/store/borrow"
	collateralstore "tandem/store/collateral"
	poolstore "tandem/store/pool"
	sharestore "tandem/store/share"
	transferstore "tandem/store/transfer"

	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
)

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func provideConfig() *core.Config {
	return &cfg
}

// ---------------store-----------------------------------------

func providePropertyStore(db *db.DB) property.Store {
	return propertystore.New(db)
}

func providePoolStore(db *db.DB) core.ILendingPoolStore {
	return poolstore.New(db)
}

func provideCollateralStore(db *db.DB) core.ICollateralPoolStore {
	return collateralstore.New(db)
}

func provideShareStore(db *db.DB) core.IShareStore {
	return sharestore.New(db)
}

func provideBorrowStore(db *db.DB) core.IBorrowStore {
	return borrowstore.New(db)
}

func provideTransferStore(db *db.DB) core.ITransferStore {
	return transferstore.New(db)
}

func provideAccountStore(db *db.DB) core.IAccountStore {
	return accountstore.New(db)
}

// ------------------service------------------------------------

func providePriceService() core.IPriceOracleService {
	return oracle.New(&cfg.Oracle)
}

func provideAuthorizer() core.IAuthorizer {
	return authz.New(&cfg.Authz)
}

func provideSwapService() core.ISwapService {
	return swap.New(&cfg.Swap)
}

func provideRewardNotifier() core.IRewardNotifier {
	return reward.New(&cfg.Reward)
}

func provideWalletService(db *db.DB) core.IWalletService {
	return walletservice.New(provideTransferStore(db), provideAuthorizer())
}

func provideLendingService(db *db.DB) core.ILendingService {
	return lendingservice.New(provideShareStore(db), provideBorrowStore(db))
}

func provideAccountService(db *db.DB) core.IAccountService {
	return accountservice.New(provideShareStore(db), provideBorrowStore(db), providePriceService())
}

func provideCollateralService(db *db.DB) core.ICollateralService {
	return collateralservice.New(provideShareStore(db), provideAccountService(db))
}

func provideLiquidationService(db *db.DB) core.ILiquidationService {
	return liquidationservice.New(
		provideShareStore(db),
		provideAccountService(db),
		provideLendingService(db),
		provideCollateralService(db),
		providePriceService(),
		provideSwapService(),
	)
}

func providePositionService(db *db.DB) core.IPositionService {
	return positionservice.New(
		provideShareStore(db),
		provideAccountService(db),
		provideLendingService(db),
		provideCollateralService(db),
		provideSwapService(),
	)
}

func provideEngine(db *db.DB) core.IEngine {
	eng, err := engine.New(
		provideConfig(),
		db,
		providePoolStore(db),
		provideCollateralStore(db),
		provideShareStore(db),
		provideBorrowStore(db),
		provideLendingService(db),
		provideCollateralService(db),
		provideAccountService(db),
		provideLiquidationService(db),
		providePositionService(db),
		provideWalletService(db),
		providePriceService(),
		provideRewardNotifier(),
	)
	if err != nil {
		panic(err)
	}

	return eng
}
