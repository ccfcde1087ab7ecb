package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/iwvelando/debt-payoff/internal/config"
	"github.com/iwvelando/debt-payoff/internal/logging"
	"github.com/iwvelando/debt-payoff/internal/optimizer"
	"github.com/iwvelando/debt-payoff/internal/store"
	"github.com/iwvelando/debt-payoff/pkg/constants"
	"github.com/iwvelando/debt-payoff/pkg/datetime"
	"github.com/iwvelando/debt-payoff/pkg/output"
	"github.com/iwvelando/debt-payoff/pkg/payoff"
	"go.uber.org/zap"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	strategyFlag := flag.String("strategy", "", "strategy override: snowball, avalanche, compare")
	targetMonths := flag.Int("target-months", 0, "find the smallest extra payment that pays off within this many months")
	restore := flag.Bool("restore", false, "use the debts and extra payment saved by a previous -save run")
	save := flag.Bool("save", false, "save the debts and extra payment after a successful run")
	flag.Parse()

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := logging.NewLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI overrides take precedence over config
	if *outputFormatFlag != "" {
		conf.Output.Format = *outputFormatFlag
	}
	if *strategyFlag != "" {
		conf.SetStrategy(*strategyFlag)
	}
	if *targetMonths > 0 {
		if conf.Plan.Target == nil {
			conf.Plan.Target = &config.Target{}
		}
		conf.Plan.Target.Months = *targetMonths
		conf.Plan.Target.Normalize()
	}

	ctx := context.Background()
	planStore, err := store.Open(ctx, logger, conf.Storage)
	if err != nil {
		logger.Fatal("failed to open plan store",
			zap.String("op", "main"),
			zap.String("backend", conf.Storage.Backend),
			zap.Error(err),
		)
	}
	defer func() {
		_ = planStore.Close()
	}()

	if *restore {
		snapshot, err := planStore.Load(ctx)
		if err != nil {
			logger.Fatal("failed to restore saved plan",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		if snapshot == nil {
			logger.Warn("no saved plan to restore, using configured debts",
				zap.String("op", "main"),
				zap.String("backend", conf.Storage.Backend),
			)
		} else {
			conf.Plan.Debts = config.AssignDebtIDs(snapshot.Debts)
			conf.Plan.ExtraPayment = snapshot.ExtraPayment
			logger.Info("restored saved plan",
				zap.String("op", "main"),
				zap.Int("debts", len(snapshot.Debts)),
				zap.Time("savedAt", snapshot.SavedAt),
			)
		}
	}

	// Label ledger rows from the current month unless a start is configured.
	if conf.Plan.StartDate == "" {
		conf.Plan.StartDate = datetime.CurrentMonth(time.Now())
	}

	if err := conf.Validate(); err != nil {
		logger.Fatal("invalid configuration",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	// Validate configuration and display any warnings
	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	simulator := payoff.NewSimulator(logger, conf.SimulatorOptions())
	if err := run(conf, simulator); err != nil {
		logger.Fatal("failed to compute payoff plan",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	if conf.Plan.Target != nil {
		runner := optimizer.NewRunner(logger, simulator)
		summary, err := runner.Run(conf.Plan.Debts, conf.Plan.ExtraPayment, conf.Plan.Strategy, *conf.Plan.Target)
		if err != nil {
			logger.Fatal("failed to search for target payoff",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		if conf.Output.Format == constants.OutputFormatPretty {
			fmt.Println()
			output.PrettyTarget(os.Stdout, summary)
		}
	}

	if *save {
		snapshot := store.Snapshot{Debts: conf.Plan.Debts, ExtraPayment: conf.Plan.ExtraPayment}
		if err := planStore.Save(ctx, snapshot); err != nil {
			logger.Fatal("failed to save plan",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		logger.Info("saved plan",
			zap.String("op", "main"),
			zap.String("backend", conf.Storage.Backend),
		)
	}
}

// run simulates the configured strategy and writes it to stdout.
func run(conf *config.Configuration, simulator *payoff.Simulator) error {
	if conf.Plan.Strategy == constants.ModeCompare {
		comparison, err := simulator.Compare(conf.Plan.Debts, conf.Plan.ExtraPayment)
		if err != nil {
			return err
		}
		switch conf.Output.Format {
		case constants.OutputFormatPretty:
			output.PrettyComparison(os.Stdout, comparison)
		case constants.OutputFormatCSV:
			output.CsvComparison(os.Stdout, comparison)
		}
		return nil
	}

	result, err := simulator.Run(conf.Plan.Debts, conf.Plan.ExtraPayment, payoff.Strategy(conf.Plan.Strategy))
	if err != nil {
		return err
	}
	switch conf.Output.Format {
	case constants.OutputFormatPretty:
		output.PrettyFormat(os.Stdout, result)
	case constants.OutputFormatCSV:
		output.CsvFormat(os.Stdout, result)
	}
	return nil
}
