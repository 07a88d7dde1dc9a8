package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/remarkableland/bonusgen/render"
	"github.com/remarkableland/bonusgen/schedule"
	"github.com/remarkableland/bonusgen/schedule/closeio"
	"github.com/remarkableland/bonusgen/schedule/common"
)

var (
	generateOut  string
	generateJSON bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [export.csv]",
	Short: "Generate a bonus schedule",
	Long: `Generates the bonus schedule for one calendar month from a Close.com
"Selling Land leads" export and writes the configured artifact formats.

Examples:
  bonusgen generate export.csv -m 2025-06-30
  bonusgen generate export.csv -m 2025-06-30 --prior-adjustment 1000 --formats pdf
  bonusgen generate export.csv --json`,
	Run: handler,
}

func handler(cmd *cobra.Command, args []string) {
	if len(args) == 1 {
		viper.Set("target", args[0])
	}
	target := viper.GetString("target")
	if target == "" {
		log.SetOutput(os.Stderr)
		log.Fatal("error: an export file is required")
	}

	cfg, err := resolveConfig()
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("error: %v", err)
	}

	file, err := os.Open(target)
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("error: opening export: %v", err)
	}
	defer file.Close()

	records, err := closeio.ReadRecords(file)
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("error: %v", err)
	}
	fmt.Printf("Loaded %d records from %s\n", len(records), target)

	result, err := schedule.Build(records, cfg)
	if errors.Is(err, schedule.ErrEmptyPeriod) {
		fmt.Printf("No sold records found for %s\n", cfg.PeriodEnd.Format("January 2006"))
		return
	}
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("error: %v", err)
	}

	if generateJSON {
		out, _ := json.Marshal(result)
		fmt.Println(string(out))
		return
	}

	printSummary(result)

	for _, format := range viper.GetStringSlice("formats") {
		if err := writeArtifact(result, format, generateOut); err != nil {
			log.SetOutput(os.Stderr)
			log.Fatalf("error: %v", err)
		}
	}
}

// resolveConfig collapses viper state into the explicit pipeline config.
// Nothing below cmd reads viper.
func resolveConfig() (schedule.Config, error) {
	periodEnd := time.Now()
	if raw := viper.GetString("month_ending"); raw != "" {
		parsed, ok := common.ParseTimestamp(raw)
		if !ok {
			return schedule.Config{}, fmt.Errorf("unrecognized month ending date %q", raw)
		}
		periodEnd = parsed
	}

	cfg := schedule.Config{
		Metadata: common.Metadata{
			PeriodEnd:      periodEnd,
			TeamNames:      viper.GetStringSlice("team_members"),
			FixedAddend:    decimal.NewFromFloat(viper.GetFloat64("mls_cost")),
			CurrencySymbol: viper.GetString("currency_symbol"),
		},
		PriorAdjustment: decimal.NewFromFloat(viper.GetFloat64("prior_adjustment")),
		Aliases:         closeio.DefaultAliases(),
	}

	// Config-file column overrides, canonical field -> candidate headers.
	for field, columns := range viper.GetStringMapStringSlice("columns") {
		if len(columns) > 0 {
			cfg.Aliases[field] = columns
		}
	}

	return cfg, nil
}

func printSummary(s *schedule.Schedule) {
	symbol := s.Meta.CurrencySymbol
	fmt.Printf("Properties Sold:  %d\n", len(s.Rows))
	fmt.Printf("Subtotal:         %s\n", render.Currency(s.Totals.Subtotal, symbol))
	fmt.Printf("Prior Adjustment: %s\n", render.Currency(s.Totals.PriorAdjustment, symbol))
	fmt.Printf("Total:            %s\n", render.Currency(s.Totals.Total, symbol))
}

func writeArtifact(s *schedule.Schedule, format, dir string) error {
	name := filepath.Join(dir, render.Filename(s.Meta.PeriodEnd, format))

	file, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("creating %s: %w", name, err)
	}
	defer file.Close()

	switch format {
	case "csv":
		err = render.CSV(file, s)
	case "xlsx":
		err = render.XLSX(file, s)
	case "pdf":
		err = render.PDF(file, s)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	if err != nil {
		return fmt.Errorf("rendering %s: %w", name, err)
	}

	fmt.Printf("Wrote %s\n", name)
	return nil
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringP("file", "f", "", "Close.com export CSV to process")
	generateCmd.Flags().StringP("month-ending", "m", "", "Month ending date (YYYY-MM-DD); defaults to today")
	generateCmd.Flags().Float64("prior-adjustment", 0, "Adjustment carried over from a previous schedule")
	generateCmd.Flags().Float64("mls-cost", 500, "Flat per-transaction cost added to the cost basis")
	generateCmd.Flags().StringSlice("formats", []string{"csv", "xlsx", "pdf"}, "Artifact formats to write")
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", ".", "Directory to write artifacts into")
	generateCmd.Flags().BoolVar(&generateJSON, "json", false, "Print the computed schedule as JSON instead of writing artifacts")

	viper.BindPFlag("target", generateCmd.Flags().Lookup("file"))
	viper.BindPFlag("month_ending", generateCmd.Flags().Lookup("month-ending"))
	viper.BindPFlag("prior_adjustment", generateCmd.Flags().Lookup("prior-adjustment"))
	viper.BindPFlag("mls_cost", generateCmd.Flags().Lookup("mls-cost"))
	viper.BindPFlag("formats", generateCmd.Flags().Lookup("formats"))
}
