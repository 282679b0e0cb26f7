package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spendwise/spendwise-go/pkg/spendwise"
)

func main() {
	// .env is optional; real env vars win either way
	_ = godotenv.Load()

	verbose := flag.Bool("v", false, "enable debug logging")
	baseURL := flag.String("base-url", envOr("SPENDWISE_BASE_URL", spendwise.DefaultBaseURL), "API base URL")
	sessionFile := flag.String("session", envOr("SPENDWISE_SESSION_FILE", defaultSessionPath()), "session file path")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	logger := newLogger(*verbose)

	client, err := spendwise.NewClient(&spendwise.ClientOptions{
		BaseURL:     *baseURL,
		SessionFile: *sessionFile,
		Logger:      logger,
		SentryDSN:   os.Getenv("SENTRY_DSN"),
		OnSessionInvalid: func() {
			fmt.Fprintln(os.Stderr, "session expired, please sign in again")
		},
	})
	if err != nil {
		fatal(err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	switch args[0] {
	case "login":
		err = runLogin(ctx, client, args[1:])
	case "signup":
		err = runSignup(ctx, client, args[1:])
	case "logout":
		client.SignOut()
		fmt.Println("signed out")
	case "categories":
		err = runCategories(ctx, client)
	case "expenses":
		err = runExpenses(ctx, client)
	case "add":
		err = runAdd(ctx, client, args[1:])
	case "delete":
		err = runDelete(ctx, client, args[1:])
	case "budgets":
		err = runBudgets(ctx, client)
	case "set-budget":
		err = runSetBudget(ctx, client, args[1:])
	case "dashboard":
		err = runDashboard(ctx, client)
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: spendwise [flags] <command>

commands:
  login <email> <password>          sign in and cache the session
  signup <name> <email> <password> [currency]
  logout                            clear the cached session
  categories                        list spending categories
  expenses                          list expenses
  add <amount> <description> [category-id]
  delete <expense-id>
  budgets                           list this month's budgets
  set-budget <limit> [category-id]  set a budget for this month
  dashboard                         month overview`)
}

func runLogin(ctx context.Context, client *spendwise.Client, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: login <email> <password>")
	}
	session, err := client.Auth.SignIn(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Printf("signed in as %s (%s, currency %s)\n", session.Name, session.Email, session.Currency)
	return nil
}

func runSignup(ctx context.Context, client *spendwise.Client, args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: signup <name> <email> <password> [currency]")
	}
	params := &spendwise.SignupParams{Name: args[0], Email: args[1], Password: args[2]}
	if len(args) > 3 {
		params.Currency = args[3]
	}
	if err := client.Auth.SignUp(ctx, params); err != nil {
		return err
	}
	fmt.Println("account created, sign in with: spendwise login")
	return nil
}

func runCategories(ctx context.Context, client *spendwise.Client) error {
	categories, err := client.Categories.List(ctx)
	if err != nil {
		return err
	}
	for _, c := range categories {
		fmt.Printf("%4d  %-20s %s\n", c.ID, c.Name, c.Color)
	}
	return nil
}

func runExpenses(ctx context.Context, client *spendwise.Client) error {
	ledger := spendwise.NewLedger(client)
	if err := ledger.Refresh(ctx); err != nil {
		return fmt.Errorf("failed to load expenses: %w", err)
	}
	currency := sessionCurrency(client)
	for _, e := range ledger.Expenses() {
		name := spendwise.UncategorizedName
		if e.Category != nil {
			name = e.Category.Name
		}
		fmt.Printf("%4d  %s  %-16s %-24s %s%.2f\n", e.ID, e.Date, name, e.Description, currency, e.Amount)
	}
	total, err := ledger.Total()
	if err != nil {
		return err
	}
	fmt.Printf("total: %s%.2f across %d expenses\n", currency, total, ledger.Len())
	return nil
}

func runAdd(ctx context.Context, client *spendwise.Client, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: add <amount> <description> [category-id]")
	}
	amount, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q", args[0])
	}

	params := &spendwise.CreateExpenseParams{
		Amount:      amount,
		Description: args[1],
		Date:        spendwise.Date{Time: time.Now()},
	}
	if len(args) > 2 {
		categoryID, err := strconv.ParseInt(args[2], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid category id %q", args[2])
		}
		params.CategoryID = categoryID
	}

	expense, err := client.Expenses.Create(ctx, params)
	if err != nil {
		return err
	}
	fmt.Printf("created expense %d\n", expense.ID)
	return nil
}

func runDelete(ctx context.Context, client *spendwise.Client, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: delete <expense-id>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid expense id %q", args[0])
	}
	if err := client.Expenses.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Printf("deleted expense %d\n", id)
	return nil
}

func runBudgets(ctx context.Context, client *spendwise.Client) error {
	month := spendwise.CurrentMonthKey()
	book := spendwise.NewBudgetBook(client, month)
	if err := book.Refresh(ctx); err != nil {
		return fmt.Errorf("failed to load budgets: %w", err)
	}
	currency := sessionCurrency(client)
	for _, b := range book.Budgets() {
		scope := "(whole month)"
		if b.Category != nil {
			scope = b.Category.Name
		}
		fmt.Printf("%s  %-20s %s%.2f\n", b.Month, scope, currency, b.LimitAmount)
	}
	return nil
}

func runSetBudget(ctx context.Context, client *spendwise.Client, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: set-budget <limit> [category-id]")
	}

	var categoryID int64
	if len(args) > 1 {
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid category id %q", args[1])
		}
		categoryID = id
	}

	month := spendwise.CurrentMonthKey()
	book := spendwise.NewBudgetBook(client, month)
	if err := book.Refresh(ctx); err != nil {
		return fmt.Errorf("failed to load budgets: %w", err)
	}

	// Blank or non-numeric input is a deliberate no-op so an empty
	// field never clears an existing budget
	if err := book.UpsertInput(ctx, categoryID, args[0]); err != nil {
		return err
	}
	fmt.Printf("budgets for %s updated\n", month)
	return nil
}

func runDashboard(ctx context.Context, client *spendwise.Client) error {
	month := spendwise.CurrentMonthKey()
	view := spendwise.NewMonthView(client, month)
	if err := view.Load(ctx); err != nil {
		return fmt.Errorf("failed to load dashboard: %w", err)
	}
	if err := view.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: partial data: %v\n", err)
	}

	summary, err := view.Summary()
	if err != nil {
		return err
	}

	currency := sessionCurrency(client)
	fmt.Printf("dashboard for %s\n\n", summary.Month)
	fmt.Printf("total spend: %s%.2f across %d expenses\n", currency, summary.Total, summary.Count)
	if budget, ok := view.Budgets.FindGlobal(); ok {
		fmt.Printf("monthly budget: %s%.2f, %.1f%% used (%s)\n",
			currency, budget.LimitAmount, summary.Progress.Percent, summary.Progress.Status)
	} else {
		fmt.Println("monthly budget: not set")
	}

	fmt.Println("\nbreakdown:")
	for _, bucket := range summary.Breakdown {
		line := fmt.Sprintf("  %-20s %s%.2f", bucket.Name, currency, bucket.Total)
		if bucket.CategoryID != nil {
			if progress, ok := summary.CategoryProgress[*bucket.CategoryID]; ok {
				line += fmt.Sprintf("  %.1f%% of budget (%s)", progress.Percent, progress.Status)
			}
		}
		fmt.Println(line)
	}

	if len(summary.Recent) > 0 {
		fmt.Println("\nrecent activity:")
		for _, e := range summary.Recent {
			fmt.Printf("  %s  %-24s %s%.2f\n", e.Date, e.Description, currency, e.Amount)
		}
	}
	return nil
}

func sessionCurrency(client *spendwise.Client) string {
	if s := client.Session(); s != nil && s.Currency != "" {
		return s.Currency + " "
	}
	return ""
}

func defaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".spendwise_session.json"
	}
	return filepath.Join(home, ".spendwise", "session.json")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}

// slogLogger adapts log/slog to the client Logger interface
type slogLogger struct {
	logger *slog.Logger
}

func newLogger(verbose bool) *slogLogger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return &slogLogger{
		logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})),
	}
}

func (l *slogLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l *slogLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, keysAndValues...)
}

func (l *slogLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, keysAndValues...)
}

func (l *slogLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, keysAndValues...)
}
