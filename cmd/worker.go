package cmd

import (
	"tandem/worker/accrual"
	"tandem/worker/liquidity"
	"tandem/worker/pricesync"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "tandem job worker",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		db := provideDatabase()
		defer db.Close()

		engine := provideEngine(db)
		location := cfg.App.Location

		jobs := []interface {
			Start() error
			Stop() error
		}{
			accrual.New(location, engine),
			pricesync.New(location, engine, providePropertyStore(db)),
			liquidity.New(
				location,
				provideConfig(),
				providePoolStore(db),
				provideCollateralStore(db),
				provideBorrowStore(db),
				provideAccountStore(db),
				provideAccountService(db),
			),
		}

		for _, job := range jobs {
			if err := job.Start(); err != nil {
				log.WithError(err).Fatalln("start job failed")
			}
		}

		ctx = signal.WithContext(ctx)
		<-ctx.Done()

		for _, job := range jobs {
			job.Stop()
		}
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
