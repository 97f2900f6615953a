package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	schemesusecase "fund_backend/internal/feature/schemes/usecase"
)

func (a *app) newMFDetailsCommand() *cobra.Command {
	var (
		units         float64
		chronological bool
		sip           float64
		months        int
		amcProfiles   bool
		store         bool
	)
	cmd := &cobra.Command{
		Use:   "mf-details [scheme-code]",
		Short: "Fetch scheme details, NAV history and yearly returns, and store the report",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := a.reportOptions()
			flags := cmd.Flags()
			if flags.Changed("units") {
				opts.BalanceUnits = units
			}
			if flags.Changed("chronological") {
				opts.Chronological = chronological
			}
			if flags.Changed("sip") {
				opts.MonthlySIP = sip
			}
			if flags.Changed("months") {
				opts.Months = months
			}
			if flags.Changed("amc-profiles") {
				opts.AMCProfiles = amcProfiles
			}
			if opts.BalanceUnits < 0 || opts.MonthlySIP < 0 || opts.Months < 0 {
				return fmt.Errorf("--units, --sip and --months must not be negative")
			}
			return a.runMFDetails(cmd.Context(), args, opts, store)
		},
	}
	cmd.Flags().Float64Var(&units, "units", 0, "balance units valued at the latest NAV (default from config)")
	cmd.Flags().BoolVar(&chronological, "chronological", false, "sort each year's NAVs by date before computing returns")
	cmd.Flags().Float64Var(&sip, "sip", 0, "monthly SIP amount (default from config)")
	cmd.Flags().IntVar(&months, "months", 0, "SIP instalments paid so far (default from config)")
	cmd.Flags().BoolVar(&amcProfiles, "amc-profiles", false, "attach the AMC profiles from the AMFI NAV list")
	cmd.Flags().BoolVar(&store, "store", true, "insert the report into the document store")
	return cmd
}

// reportOptions returns the report options configured for the mutual fund workflow.
func (a *app) reportOptions() schemesusecase.ReportOptions {
	mf := a.cfg.MutualFund
	return schemesusecase.ReportOptions{
		BalanceUnits:  mf.BalanceUnits,
		Chronological: mf.Chronological,
		MonthlySIP:    float64(mf.MonthlySIP),
		Months:        mf.Months,
		AMCProfiles:   mf.AMCProfiles,
	}
}

func (a *app) runMFDetails(ctx context.Context, args []string, opts schemesusecase.ReportOptions, store bool) error {
	fmt.Fprintln(a.out, "Mutual Fund Analysis Tool")
	fmt.Fprintln(a.out, "=========================")
	code, err := a.prompt(args, "Enter the Scheme Code: ")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, a.cfg.RunTimeout)
	defer cancel()

	var docStore schemesusecase.DocumentStore
	if store {
		stores := a.openStores(ctx)
		defer closeStores(stores)
		if stores != nil {
			docStore = stores.Funds
		}
	}
	uc := a.deps.Schemes(a.cfg, docStore)

	report := uc.BuildReport(ctx, code, opts)

	if store {
		if uc.StoreReport(ctx, report) {
			fmt.Fprintf(a.out, "\nScheme data has been successfully stored in %s.\n", a.storeName())
		} else {
			fmt.Fprintf(a.out, "\nFailed to store scheme data in %s.\n", a.storeName())
		}
	}

	fmt.Fprintln(a.out, "\nScheme Details:")
	return PrintSchemeReport(a.out, report)
}

func (a *app) newMFQuoteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mf-quote [scheme-code]",
		Short: "Show the details and latest NAV of a scheme",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := a.prompt(args, "Please enter a valid scheme code: ")
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.RunTimeout)
			defer cancel()

			uc := a.deps.Schemes(a.cfg, nil)

			details, err := uc.GetDetails(ctx, code)
			if err != nil {
				return fmt.Errorf("scheme details: %w", err)
			}
			fmt.Fprintln(a.out, "\nScheme Details:")
			if err := PrintKeyValues(a.out, details.Document(), detailKeys); err != nil {
				return err
			}

			quote, err := uc.GetQuote(ctx, code)
			if err != nil {
				return fmt.Errorf("scheme quote: %w", err)
			}
			fmt.Fprintln(a.out, "\nNAV Details:")
			return PrintKeyValues(a.out, quote.Document(), quoteKeys)
		},
	}
}

func (a *app) newMFListCommand() *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "mf-list",
		Short: "List all mutual fund scheme codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.RunTimeout)
			defer cancel()

			schemes, err := a.deps.Schemes(a.cfg, nil).ListSchemes(ctx)
			if err != nil {
				return fmt.Errorf("list schemes: %w", err)
			}
			f := strings.ToLower(filter)
			fmt.Fprintln(a.out, "List of mutual fund schemes:")
			for _, s := range schemes {
				if f != "" && !strings.Contains(strings.ToLower(s.Name), f) {
					continue
				}
				fmt.Fprintf(a.out, "%s: %s\n", s.Code, s.Name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "", "only list schemes whose name contains this text")
	return cmd
}
