package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/finsight/finsight/internal/analytics"
	"github.com/finsight/finsight/internal/config"
	"github.com/finsight/finsight/internal/domain"
	"github.com/finsight/finsight/internal/intelligence"
	"github.com/finsight/finsight/internal/logger"
	"github.com/finsight/finsight/internal/store"
	storebq "github.com/finsight/finsight/internal/store/bigquery"
	"github.com/finsight/finsight/internal/store/memory"
)

func main() {
	log := logger.New()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "categorize":
		runCategorize(log)
	case "insights":
		runInsights(log)
	case "suggest":
		runSuggest(log)
	case "predict":
		runPredict(log)
	case "ask":
		runAsk(log)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("FinSight CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  cli <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  categorize  Suggest a category for a transaction description")
	fmt.Println("  insights    Generate spending insights for a period")
	fmt.Println("  suggest     Recommend per-category budgets")
	fmt.Println("  predict     Forecast spending for the coming months")
	fmt.Println("  ask         Ask a financial question in plain English")
	fmt.Println("  help        Show this help message")
	fmt.Println("\nRun 'cli <command> -h' for more information on a command.")
}

// commonFlags registers the flags every subcommand shares.
func commonFlags(fs *flag.FlagSet) (user, storeKind *string) {
	user = fs.String("user", memory.DemoUserID, "User ID to run against")
	storeKind = fs.String("store", "", "Backing store: memory or bigquery (defaults to STORE env)")
	return user, storeKind
}

func runCategorize(log zerolog.Logger) {
	fs := flag.NewFlagSet("categorize", flag.ExitOnError)
	user, storeKind := commonFlags(fs)
	description := fs.String("description", "", "Transaction description")
	amount := fs.String("amount", "0", "Transaction amount, e.g. 4.50")
	fs.Parse(os.Args[2:])

	if *description == "" {
		log.Fatal().Msg("Error: --description is required")
	}
	money, err := domain.ParseMoney(*amount)
	if err != nil {
		log.Fatal().Err(err).Str("amount", *amount).Msg("Invalid amount")
	}

	ctx, svc, cleanup := setup(log, *storeKind)
	defer cleanup()

	printJSON(svc.Categorize(ctx, *user, *description, money))
}

func runInsights(log zerolog.Logger) {
	fs := flag.NewFlagSet("insights", flag.ExitOnError)
	user, storeKind := commonFlags(fs)
	period := fs.String("period", "month", "Reporting period: month or year")
	fs.Parse(os.Args[2:])

	ctx, svc, cleanup := setup(log, *storeKind)
	defer cleanup()

	printJSON(svc.GenerateInsights(ctx, *user, analytics.ParsePeriod(*period)))
}

func runSuggest(log zerolog.Logger) {
	fs := flag.NewFlagSet("suggest", flag.ExitOnError)
	user, storeKind := commonFlags(fs)
	fs.Parse(os.Args[2:])

	ctx, svc, cleanup := setup(log, *storeKind)
	defer cleanup()

	printJSON(svc.SuggestBudgets(ctx, *user))
}

func runPredict(log zerolog.Logger) {
	fs := flag.NewFlagSet("predict", flag.ExitOnError)
	user, storeKind := commonFlags(fs)
	months := fs.Int("months", 3, "Number of months to forecast")
	fs.Parse(os.Args[2:])

	ctx, svc, cleanup := setup(log, *storeKind)
	defer cleanup()

	printJSON(svc.PredictSpending(ctx, *user, *months))
}

func runAsk(log zerolog.Logger) {
	fs := flag.NewFlagSet("ask", flag.ExitOnError)
	user, storeKind := commonFlags(fs)
	question := fs.String("question", "", "Question to ask, e.g. \"how much did I save?\"")
	fs.Parse(os.Args[2:])

	if *question == "" {
		log.Fatal().Msg("Error: --question is required")
	}

	ctx, svc, cleanup := setup(log, *storeKind)
	defer cleanup()

	result := svc.GetAdvice(ctx, *user, *question)
	fmt.Println(result.Response)
	fmt.Println("\nYou could also ask:")
	for _, s := range result.Suggestions {
		fmt.Printf("  - %s\n", s)
	}
}

// setup opens the configured store and builds the intelligence service.
func setup(log zerolog.Logger, storeKind string) (context.Context, *intelligence.Service, func()) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if storeKind == "" {
		storeKind = cfg.Store
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	ctx = logger.WithContext(ctx, log)

	var (
		st      store.Store
		cleanup func()
	)
	switch storeKind {
	case "bigquery":
		bq, err := storebq.NewStore(ctx, cfg.BigQueryProject, cfg.BigQueryDataset)
		if err != nil {
			cancel()
			log.Fatal().Err(err).Msg("Failed to open BigQuery store")
		}
		st = bq
		cleanup = func() {
			if err := bq.Close(); err != nil {
				log.Error().Err(err).Msg("Failed to close BigQuery store")
			}
			cancel()
		}
	default:
		mem := memory.NewStore()
		memory.SeedDemoData(mem, time.Now())
		st = mem
		cleanup = cancel
	}

	return ctx, intelligence.NewService(st, intelligence.DefaultLexicon(), log), cleanup
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
