package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Coder-ak/svitlo-e-stats/internal/api"
	"github.com/Coder-ak/svitlo-e-stats/internal/app"
	"github.com/Coder-ak/svitlo-e-stats/internal/config"
	"github.com/Coder-ak/svitlo-e-stats/internal/logger"
)

var (
	// Version info (set by ldflags)
	version = "dev"

	// Flags
	configPath string
	debug      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "svitlo-stats",
		Short: "Terminal dashboard for svitlo bot usage statistics",
		Long: `svitlo-stats renders the svitlo bot's access statistics, outage insights,
and per-area light status as a live terminal dashboard.

Run it with no arguments to open the dashboard.`,
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard()
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default ~/.config/svitlo-stats/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(newCheckCmd())

	if err := rootCmd.Execute(); err != nil {
		// Error already printed by cobra
		os.Exit(1)
	}
}

func runDashboard() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if debug {
		cfg.Debug = true
	}

	logger.Init(cfg.Debug, "")
	defer logger.Close()

	p := tea.NewProgram(
		app.New(cfg),
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Enable mouse support for wheel zoom
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

// newCheckCmd creates the check subcommand, a one-shot API reachability probe.
func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check that the statistics API is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout)

			ctx, cancel := context.WithTimeout(context.Background(), cfg.API.Timeout)
			defer cancel()

			start := time.Now()
			summary, err := client.Summary(ctx, false)
			if err != nil {
				color.Red("✗ %s unreachable: %v", cfg.API.BaseURL, err)
				return err
			}

			color.Green("✓ %s reachable (%s)", cfg.API.BaseURL, time.Since(start).Round(time.Millisecond))
			fmt.Printf("  total hits: %d, unique users: %d\n",
				int64(summary.TotalHits), int64(summary.UniqueUsers))
			return nil
		},
	}
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		viper.SetConfigFile(configPath)
	}
	return config.Load()
}
