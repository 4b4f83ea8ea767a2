package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/vetan/payroll-engine/internal/calculation"
	"github.com/vetan/payroll-engine/internal/config"
	"github.com/vetan/payroll-engine/internal/output"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "payroll",
	Short: "Indian tax and payroll computation engine CLI",
	Long:  "Computes income-tax liability, regime comparisons and attendance-adjusted monthly payouts from a YAML input bundle",
}

func newEngine(cmd *cobra.Command) *calculation.ComputationEngine {
	engine := calculation.NewComputationEngine()
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		engine.SetLogger(simpleCLILogger{})
	}
	return engine
}

var computeCmd = &cobra.Command{
	Use:   "compute [input-file]",
	Short: "Compute tax liability and monthly payouts for every employee",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bundle, err := config.NewInputParser().LoadFromFile(args[0])
		if err != nil {
			return err
		}
		engine := newEngine(cmd)

		result := output.Result{
			Organization:  bundle.Organization.Name,
			FinancialYear: bundle.Organization.FinancialYear,
		}

		inputs, err := bundle.TaxationInputs()
		if err != nil {
			return err
		}
		records, taxFailures := engine.ComputeTaxations(inputs)
		for _, f := range taxFailures {
			result.Failures = append(result.Failures, f.Error())
		}

		payoutsByEmployee := make(map[string]*calculation.MonthlyPayout)
		if bundle.PayoutMonth != 0 {
			reqs, err := bundle.PayoutRequests()
			if err != nil {
				return err
			}
			payouts, payFailures := engine.ComputePayouts(reqs)
			for _, f := range payFailures {
				result.Failures = append(result.Failures, f.Error())
			}
			for i := range payouts {
				payoutsByEmployee[payouts[i].EmployeeID] = &payouts[i]
			}
		}

		for _, record := range records {
			comparison, err := record.GetRegimeComparison()
			if err != nil {
				result.Failures = append(result.Failures, fmt.Sprintf("employee %s: %v", record.EmployeeID(), err))
				continue
			}
			result.Employees = append(result.Employees, output.EmployeeResult{
				Breakdown:  record.GetTaxBreakdown(),
				Comparison: &comparison,
				Payout:     payoutsByEmployee[record.EmployeeID()],
			})
		}

		return writeFormatted(cmd, &result)
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare [input-file]",
	Short: "Compare old and new regime liability for every employee",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bundle, err := config.NewInputParser().LoadFromFile(args[0])
		if err != nil {
			return err
		}
		engine := newEngine(cmd)

		inputs, err := bundle.TaxationInputs()
		if err != nil {
			return err
		}
		result := output.Result{
			Organization:  bundle.Organization.Name,
			FinancialYear: bundle.Organization.FinancialYear,
		}
		records, failures := engine.ComputeTaxations(inputs)
		for _, f := range failures {
			result.Failures = append(result.Failures, f.Error())
		}
		for _, record := range records {
			comparison, err := record.GetRegimeComparison()
			if err != nil {
				result.Failures = append(result.Failures, fmt.Sprintf("employee %s: %v", record.EmployeeID(), err))
				continue
			}
			result.Employees = append(result.Employees, output.EmployeeResult{
				Breakdown:  record.GetTaxBreakdown(),
				Comparison: &comparison,
			})
		}
		return writeFormatted(cmd, &result)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [input-file]",
	Short: "Validate the input bundle, formulas and dependency graph without computing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := config.NewInputParser().LoadFromFile(args[0]); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, "input bundle is valid")
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "payroll %s (commit %s, built %s)\n", version, commit, date)
		if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
			fmt.Fprintln(os.Stdout, "go:", bi.GoVersion)
		}
	},
}

func writeFormatted(cmd *cobra.Command, result *output.Result) error {
	name, _ := cmd.Flags().GetString("format")
	formatter := output.GetFormatterByName(name)
	if formatter == nil {
		return fmt.Errorf("unknown output format %q", name)
	}
	data, err := formatter.Format(result)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func main() {
	for _, cmd := range []*cobra.Command{computeCmd, compareCmd} {
		cmd.Flags().String("format", "console", "Output format: console or json")
		cmd.Flags().Bool("debug", false, "Enable debug logging")
	}
	rootCmd.AddCommand(computeCmd, compareCmd, validateCmd, versionCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
