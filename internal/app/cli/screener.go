package cli

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	screenerusecase "fund_backend/internal/feature/screener/usecase"
)

func (a *app) newScreenerCommand() *cobra.Command {
	var (
		index string
		store bool
	)
	cmd := &cobra.Command{
		Use:   "screener [tickers]",
		Short: "Import price history and fundamentals for comma-separated tickers",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if index != "" {
				a.cfg.Screener.IndexTicker = index
			}
			return a.runScreener(cmd.Context(), args, store)
		},
	}
	cmd.Flags().StringVar(&index, "index", "", "index ticker joined onto the spot data (default from config)")
	cmd.Flags().BoolVar(&store, "store", true, "store the spot and additional data")
	return cmd
}

func (a *app) runScreener(ctx context.Context, args []string, store bool) error {
	input, err := a.prompt(args, "Enter stock ticker: ")
	if err != nil {
		return err
	}
	tickers, err := screenerusecase.ParseTickers(input)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, a.cfg.RunTimeout)
	defer cancel()

	var docStore screenerusecase.DocumentStore
	if store {
		stores := a.openStores(ctx)
		defer closeStores(stores)
		if stores != nil {
			docStore = stores.Stocks
		}
	}

	var res screenerusecase.Result
	uc := a.deps.Screener(a.cfg, docStore)
	if docStore != nil {
		res = uc.Run(ctx, tickers)
	} else {
		// 保存しない場合は取得のみ
		res = screenerusecase.Result{Tickers: tickers}
		if rows, err := uc.ImportData(ctx, tickers); err != nil {
			slog.Error("error importing data", "error", err)
		} else {
			res.Rows = rows
		}
		res.Fundamentals = uc.FetchAdditionalData(ctx, tickers)
	}

	PrintFundamentals(a.out, res.Fundamentals)
	return PrintSpotTable(a.out, res.Tickers, res.Rows)
}
