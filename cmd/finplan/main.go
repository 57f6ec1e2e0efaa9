package main

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/finplan/finplan/internal/calculation"
	"github.com/finplan/finplan/internal/config"
	"github.com/finplan/finplan/internal/output"
)

var (
	version = "dev"
	commit  = "none"
)

var hundred = decimal.NewFromInt(100)

var rootCmd = &cobra.Command{
	Use:   "finplan",
	Short: "Household financial health calculator",
	Long:  "Derives financial metrics, a health score, risk assessment and planning analyses from a household snapshot file",
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "finplan %s (commit %s)\n", version, commit)
		},
	}
}

// newEngine loads regulatory constants and wires an engine for one command
// invocation.
func newEngine(cmd *cobra.Command) (*calculation.Engine, error) {
	regulatoryFile, _ := cmd.Flags().GetString("regulatory-config")
	parser := config.NewInputParser()
	reg, err := parser.LoadRegulatory(regulatoryFile)
	if err != nil {
		return nil, err
	}
	seed, _ := cmd.Flags().GetInt64("seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)
	return calculation.NewEngine(reg, log, seed), nil
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [snapshot-file]",
	Short: "Run the full analysis for a household snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parser := config.NewInputParser()
		snapshot, err := parser.LoadSnapshot(args[0])
		if err != nil {
			return err
		}

		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}

		metrics, risk := engine.Analyze(snapshot)
		report := &output.Report{
			GeneratedAt: time.Now(),
			Metrics:     metrics,
			Risk:        risk,
		}

		format, _ := cmd.Flags().GetString("format")
		text, err := output.NewFormatter(format).Format(report)
		if err != nil {
			return fmt.Errorf("failed to format report: %w", err)
		}
		fmt.Fprintln(os.Stdout, text)
		return nil
	},
}

var riskCmd = &cobra.Command{
	Use:   "risk [snapshot-file]",
	Short: "Show only the risk assessment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parser := config.NewInputParser()
		snapshot, err := parser.LoadSnapshot(args[0])
		if err != nil {
			return err
		}
		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}
		_, risk := engine.Analyze(snapshot)
		for _, cat := range risk.Categories {
			fmt.Fprintf(os.Stdout, "%-24s %-10s %3d  %s\n", cat.Name, cat.Status, cat.Score, cat.Message)
			for _, rec := range cat.Recommendations {
				fmt.Fprintf(os.Stdout, "    - %s\n", rec)
			}
		}
		fmt.Fprintf(os.Stdout, "\nOverall score: %s\n", risk.OverallScore.StringFixed(1))
		return nil
	},
}

var debtsCmd = &cobra.Command{
	Use:   "debts [snapshot-file]",
	Short: "Compare avalanche and snowball payoff plans",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parser := config.NewInputParser()
		snapshot, err := parser.LoadSnapshot(args[0])
		if err != nil {
			return err
		}
		if len(snapshot.Debts) == 0 {
			return fmt.Errorf("snapshot has no detailed debt list")
		}
		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}
		metrics, _ := engine.Analyze(snapshot)
		dp := metrics.DebtPayoff
		printPlan := func(label string, months int, converged bool, interest string) {
			if !converged {
				fmt.Fprintf(os.Stdout, "%-10s does not converge: payment below accruing interest\n", label)
				return
			}
			fmt.Fprintf(os.Stdout, "%-10s %d months, $%s interest\n", label, months, interest)
		}
		printPlan("avalanche", dp.Avalanche.MonthsToPayoff, dp.Avalanche.Converged, dp.Avalanche.TotalInterest.StringFixed(2))
		printPlan("snowball", dp.Snowball.MonthsToPayoff, dp.Snowball.Converged, dp.Snowball.TotalInterest.StringFixed(2))
		fmt.Fprintf(os.Stdout, "recommended: %s (saves $%s and %d months)\n",
			dp.RecommendedMethod, dp.InterestSavings.StringFixed(2), dp.MonthsSaved)
		return nil
	},
}

var simulateCmd = &cobra.Command{
	Use:   "simulate [snapshot-file]",
	Short: "Run the retirement Monte Carlo simulation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parser := config.NewInputParser()
		snapshot, err := parser.LoadSnapshot(args[0])
		if err != nil {
			return err
		}
		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}
		metrics, _ := engine.Analyze(snapshot)
		ret := metrics.Retirement
		if ret == nil || ret.MonteCarlo == nil {
			return fmt.Errorf("no retirement simulation available for this snapshot")
		}
		mc := ret.MonteCarlo
		fmt.Fprintf(os.Stdout, "simulations:   %d\n", mc.Simulations)
		fmt.Fprintf(os.Stdout, "10th pctile:   $%s\n", mc.Percentile10.StringFixed(0))
		fmt.Fprintf(os.Stdout, "median:        $%s\n", mc.Median.StringFixed(0))
		fmt.Fprintf(os.Stdout, "90th pctile:   $%s\n", mc.Percentile90.StringFixed(0))
		fmt.Fprintf(os.Stdout, "target:        $%s\n", mc.TargetAmount.StringFixed(0))
		fmt.Fprintf(os.Stdout, "success rate:  %s%%\n", mc.SuccessRate.Mul(hundred).StringFixed(1))
		return nil
	},
}

func main() {
	rootCmd.PersistentFlags().String("regulatory-config", "", "Path to a regulatory constants override file")
	rootCmd.PersistentFlags().Int64("seed", 0, "Random seed for the Monte Carlo simulation (0 = time-based)")
	analyzeCmd.Flags().String("format", "table", "Output format: table, json or csv")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(riskCmd)
	rootCmd.AddCommand(debtsCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
