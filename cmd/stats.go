package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Zachkp/portfolio/internal/db"
	"github.com/Zachkp/portfolio/internal/metrics"
)

var statsFormat string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print visitor and counter statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if _, err := os.Stat(cfg.DBPath); err != nil {
			return fmt.Errorf("no database at %s: %w", cfg.DBPath, err)
		}
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer database.Close()

		stats, err := metrics.NewTracker(database, cfg.Metrics.Salt, nil).Stats(context.Background())
		if err != nil {
			return fmt.Errorf("loading stats: %w", err)
		}

		switch statsFormat {
		case "json":
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(stats)
		case "yaml":
			enc := yaml.NewEncoder(os.Stdout)
			defer enc.Close()
			return enc.Encode(stats)
		default:
			fmt.Printf("Total visits:     %d\n", stats.TotalVisitors)
			fmt.Printf("Unique visitors:  %d\n", stats.UniqueVisitors)
			fmt.Printf("Today:            %d\n", stats.VisitorsToday)
			fmt.Printf("This week:        %d\n", stats.VisitorsThisWeek)
			fmt.Printf("Events recorded:  %d\n", stats.TotalEvents)
			if len(stats.TopCounters) > 0 {
				fmt.Println("\nTop counters:")
				for _, c := range stats.TopCounters {
					fmt.Printf("  %-32s %d\n", c.Name, c.Value)
				}
			}
			return nil
		}
	},
}

func init() {
	statsCmd.Flags().StringVar(&statsFormat, "format", "text", "output format: text, json or yaml")
	rootCmd.AddCommand(statsCmd)
}
