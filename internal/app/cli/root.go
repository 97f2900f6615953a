// Package cli implements the fundctl commands.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"fund_backend/internal/app/di"
	schemesentity "fund_backend/internal/feature/schemes/domain/entity"
	schemesusecase "fund_backend/internal/feature/schemes/usecase"
	screenerentity "fund_backend/internal/feature/screener/domain/entity"
	screenerusecase "fund_backend/internal/feature/screener/usecase"
	"fund_backend/internal/platform/config"
)

// SchemeWorkflow is the mutual fund side used by the commands.
type SchemeWorkflow interface {
	BuildReport(ctx context.Context, code string, opts schemesusecase.ReportOptions) schemesentity.SchemeReport
	StoreReport(ctx context.Context, report schemesentity.SchemeReport) bool
	GetDetails(ctx context.Context, code string) (schemesentity.SchemeDetails, error)
	GetQuote(ctx context.Context, code string) (schemesentity.Quote, error)
	ListSchemes(ctx context.Context) ([]schemesentity.Scheme, error)
}

// ScreenerWorkflow is the stock screener side used by the commands.
type ScreenerWorkflow interface {
	Run(ctx context.Context, tickers []string) screenerusecase.Result
	GetFundamentals(ctx context.Context, ticker string) (screenerentity.Fundamentals, error)
	ImportData(ctx context.Context, tickers []string) ([]screenerentity.SpotRow, error)
	FetchAdditionalData(ctx context.Context, tickers []string) []screenerentity.Fundamentals
	IndexTicker() string
}

// Deps builds the collaborators of the commands; tests replace them.
type Deps struct {
	Stores   func(ctx context.Context, cfg config.Config) (*di.Stores, error)
	Schemes  func(cfg config.Config, store schemesusecase.DocumentStore) SchemeWorkflow
	Screener func(cfg config.Config, store screenerusecase.DocumentStore) ScreenerWorkflow
}

// DefaultDeps wires the real providers and stores.
func DefaultDeps() Deps {
	return Deps{
		Stores: di.NewStores,
		Schemes: func(cfg config.Config, store schemesusecase.DocumentStore) SchemeWorkflow {
			return di.NewSchemeUsecase(cfg, store)
		},
		Screener: func(cfg config.Config, store screenerusecase.DocumentStore) ScreenerWorkflow {
			return di.NewScreenerUsecase(cfg, store)
		},
	}
}

type app struct {
	deps Deps
	in   *bufio.Reader
	out  io.Writer
	errw io.Writer

	cfgPath  string
	envFile  string
	logLevel string
	cfg      config.Config
}

// NewRootCommand builds the fundctl command tree.
func NewRootCommand(deps Deps, in io.Reader, out, errw io.Writer) *cobra.Command {
	a := &app{deps: deps, in: bufio.NewReader(in), out: out, errw: errw}

	root := &cobra.Command{
		Use:           "fundctl",
		Short:         "Mutual fund and stock market analysis",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errw)

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgPath, "config", "", "YAML config file")
	pf.StringVar(&a.envFile, "env-file", ".env", "dotenv file loaded before the environment is read")
	pf.StringVar(&a.logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(
		a.newMFDetailsCommand(),
		a.newMFQuoteCommand(),
		a.newMFListCommand(),
		a.newScreenerCommand(),
		a.newServeCommand(),
	)
	return root
}

// Execute runs fundctl with the process arguments and standard streams.
func Execute() int {
	root := NewRootCommand(DefaultDeps(), os.Stdin, os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

func (a *app) setup() error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(a.logLevel)); err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", a.logLevel, err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(a.errw, &slog.HandlerOptions{Level: level})))

	config.LoadDotEnv(a.envFile)
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

// prompt returns args[0], or reads one line from stdin after printing label.
func (a *app) prompt(args []string, label string) (string, error) {
	if len(args) > 0 {
		return strings.TrimSpace(args[0]), nil
	}
	fmt.Fprint(a.out, label)
	line, err := a.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// openStores connects the document store. A failure is logged and yields nil
// so the workflow still runs and reports the storage failure itself.
func (a *app) openStores(ctx context.Context) *di.Stores {
	stores, err := a.deps.Stores(ctx, a.cfg)
	if err != nil {
		slog.Error("failed to connect document store", "driver", a.cfg.Store.Driver, "error", err)
		return nil
	}
	return stores
}

func closeStores(s *di.Stores) {
	if s == nil || s.Close == nil {
		return
	}
	if err := s.Close(); err != nil {
		slog.Warn("failed to close document store", "error", err)
	}
}

func (a *app) storeName() string {
	if a.cfg.Store.Driver == config.StoreSQL {
		return "the SQL store"
	}
	return "MongoDB"
}
