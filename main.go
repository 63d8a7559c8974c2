package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/joho/godotenv"

	"github.com/gigurra/budget-tracker/internal"
)

type Params struct {
	Action    string `descr:"What to do" positional:"true" alts:"add-income,add-expense,set-limit,summary,trend,export,months,suggest-limits,import" strict:"false"`
	Month     string `descr:"Month to operate on (YYYY-MM); for trend, the earlier month" optional:"true"`
	CompareTo string `descr:"Later month to compare against for trend (YYYY-MM)" optional:"true"`
	Category  string `descr:"Income or expense category" optional:"true"`
	Amount    string `descr:"Amount to record, or the limit to set" optional:"true"`
	File      string `descr:"File to import entries from (simple-json or xlsx, optionally prefixed: xlsx:path)" optional:"true"`
	Data      string `descr:"Ledger location (.json, .yaml or .db; optionally prefixed: sqlite:path)" env:"BUDGET_TRACKER_DATA" optional:"true"`
	Config    string `descr:"Path to config file (default: ~/.budget-tracker/config.yaml)" optional:"true"`
	Output    string `descr:"Output format" alts:"table,json" strict:"false" optional:"true"`
	Currency  string `descr:"Currency code for display (default: detected from system locale)" env:"BUDGET_TRACKER_CURRENCY" optional:"true"`
	ExportDir string `descr:"Directory for exported summaries" optional:"true"`
	Format    string `descr:"Export format" alts:"text,xlsx" strict:"false" default:"text"`
	Verbose   bool   `descr:"Enable debug logging" default:"false"`
}

var actions = []string{"add-income", "add-expense", "set-limit", "summary", "trend", "export", "months", "suggest-limits", "import"}

func isKnownAction(action string) bool {
	return slices.Contains(actions, action)
}

func main() {
	// A .env file in the working directory may provide BUDGET_TRACKER_* variables
	_ = godotenv.Load()

	boa.NewCmdT[Params]("budget-tracker").
		// Only Data and Currency read the environment; per-operation flags never do
		WithParamEnrich(boa.ParamEnricherCombine(boa.ParamEnricherName, boa.ParamEnricherShort, boa.ParamEnricherBool)).
		WithShort("Track monthly income, expenses and budget limits").
		WithLong("Records income and expense entries per month, tracks per-category budget limits, and reports summaries, overrun alerts and month-over-month spending trends.").
		WithRunFunc(func(params *Params) {
			if err := run(params, os.Stdout, os.Stderr); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		}).
		Run()
}

// run executes one session: load the ledger, apply the action, save if it mutated anything
func run(params *Params, stdout, stderr io.Writer) error {
	internal.SetDefaultLogger(internal.NewLogger(stderr, "budget-tracker", params.Verbose))

	cfg, err := internal.LoadConfigOrDefault(params.Config)
	if err != nil {
		return err
	}

	dataPath := params.Data
	if dataPath == "" {
		dataPath = cfg.DataFile
	}
	if dataPath == "" {
		dataPath = internal.DefaultDataPath()
	}

	output := params.Output
	if output == "" {
		output = cfg.Output
	}
	if output == "" {
		output = "table"
	}
	if err := internal.ValidateOutputFormat(output); err != nil {
		return err
	}
	format, err := internal.ParseExportFormat(params.Format)
	if err != nil {
		return err
	}
	if !isKnownAction(params.Action) {
		return fmt.Errorf("unknown action %q (available: %s)", params.Action, strings.Join(actions, ", "))
	}

	currencyCode := params.Currency
	if currencyCode == "" {
		currencyCode = cfg.Currency
	}
	currency := internal.ResolveCurrency(currencyCode)

	storage, err := internal.OpenStorage(dataPath)
	if err != nil {
		return err
	}
	session, err := internal.OpenSession(storage, cfg.DefaultLimits())
	if err != nil {
		return err
	}

	if err := dispatch(params, session, cfg, output, format, currency, stdout); err != nil {
		return err
	}
	return session.Close()
}

func dispatch(params *Params, session *internal.Session, cfg *internal.Config, output string, format internal.ExportFormat, currency internal.Currency, stdout io.Writer) error {
	ledger := session.Ledger()

	switch params.Action {
	case "add-income", "add-expense":
		kind := internal.KindIncome
		if params.Action == "add-expense" {
			kind = internal.KindExpense
		}
		month, amount, err := session.AddEntry(params.Month, params.Category, params.Amount, kind)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%s added for %s: %s - %s\n", kindLabel(kind), month, internal.NormalizeCategory(params.Category), currency.Format(amount))

	case "set-limit":
		month, limit, err := session.SetLimit(params.Month, params.Category, params.Amount)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Budget limit set for %s: %s - %s\n", month, internal.NormalizeCategory(params.Category), currency.Format(limit))

	case "summary":
		month, err := internal.ParseMonthKey(params.Month)
		if err != nil {
			return err
		}
		summary, err := ledger.Summary(month)
		if err != nil {
			return err
		}
		if output == "json" {
			return internal.PrintSummaryJSON(stdout, summary, currency)
		}
		internal.PrintSummaryTable(stdout, summary, currency)

	case "trend":
		from, err := internal.ParseMonthKey(params.Month)
		if err != nil {
			return err
		}
		to, err := internal.ParseMonthKey(params.CompareTo)
		if err != nil {
			return fmt.Errorf("--compare-to: %w", err)
		}
		entries, err := ledger.Trend(from, to)
		if err != nil {
			return err
		}
		if output == "json" {
			return internal.PrintTrendJSON(stdout, from, to, entries)
		}
		internal.PrintTrendTable(stdout, from, to, entries, currency)

	case "export":
		month, err := internal.ParseMonthKey(params.Month)
		if err != nil {
			return err
		}
		summary, err := ledger.Summary(month)
		if err != nil {
			return err
		}
		dir := params.ExportDir
		if dir == "" {
			dir = cfg.ExportDir
		}
		path, err := internal.ExportSummary(dir, summary, format, currency)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Summary exported to %s\n", path)

	case "months":
		if output == "json" {
			return internal.PrintMonthsJSON(stdout, ledger)
		}
		internal.PrintMonthsTable(stdout, ledger, currency)

	case "suggest-limits":
		month, err := internal.ParseMonthKey(params.Month)
		if err != nil {
			return err
		}
		suggestions := internal.SuggestLimits(ledger, month)
		if output == "json" {
			return internal.PrintSuggestionsJSON(stdout, suggestions)
		}
		internal.PrintSuggestionsTable(stdout, month, suggestions, currency)

	case "import":
		if params.File == "" {
			return errors.New("import requires --file")
		}
		entries, err := internal.ReadImportFile(params.File)
		if err != nil {
			return err
		}
		n, err := session.Import(entries)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Imported %d entries from %s\n", n, params.File)

	default:
		return fmt.Errorf("unknown action: %s", params.Action)
	}
	return nil
}

func kindLabel(kind internal.EntryKind) string {
	if kind == internal.KindIncome {
		return "Income"
	}
	return "Expense"
}
