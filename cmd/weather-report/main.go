package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"

	httpapi "github.com/i474232898/galicia-weather-report/internal/api/http"
	"github.com/i474232898/galicia-weather-report/internal/config"
	"github.com/i474232898/galicia-weather-report/internal/console"
	"github.com/i474232898/galicia-weather-report/internal/report"
	"github.com/i474232898/galicia-weather-report/internal/scheduler"
	"github.com/i474232898/galicia-weather-report/internal/weather"
	"github.com/i474232898/galicia-weather-report/internal/weather/providers"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "weather-report",
	Short: "Yearly rainfall and temperature report for Galician cities",
	Long: `Fetches the 2023 daily archive from Open-Meteo for the five fixed Galician cities
(or one manually entered coordinate pair), prints per-location totals and names the
rainiest and hottest place.`,
	SilenceUsage: true,
	RunE:         runReport,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the report as JSON over HTTP",
	RunE:  runServe,
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print the fixed-location report on REPORT_SCHEDULE",
	RunE:  runWatch,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log diagnostics to stderr")
	rootCmd.AddCommand(serveCmd, watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads configuration and builds the service. Fetch failures go to
// onFailure when it is set.
func setup(onFailure weather.FailureFunc) (*config.AppConfig, *weather.Service, error) {
	if !verbose {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Verbose {
		log.SetOutput(os.Stderr)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := providers.NewHTTPClient(cfg.HTTPTimeout)
	provider := providers.NewOpenMeteoArchive(httpClient, cfg.ArchiveURL, cfg.Backoff())

	opts := []weather.Option{weather.WithAveragePolicy(cfg.AveragePolicy)}
	if onFailure != nil {
		opts = append(opts, weather.WithFailureHandler(onFailure))
	}
	return cfg, weather.NewService(provider, opts...), nil
}

func runReport(cmd *cobra.Command, args []string) error {
	printer := report.NewPrinter(cmd.OutOrStdout())

	_, service, err := setup(printer.PrintFailure)
	if err != nil {
		return err
	}

	prompter := console.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	locations := prompter.Locations()

	printer.PrintReport(service.Run(cmd.Context(), locations))
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	printer := report.NewPrinter(cmd.OutOrStdout())

	cfg, service, err := setup(printer.PrintFailure)
	if err != nil {
		return err
	}

	interval, cronExpr, err := cfg.Schedule()
	if err != nil {
		return err
	}

	sched := scheduler.New(weather.FixedLocations(), interval, cronExpr, service, printer.PrintReport)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer sched.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, service, err := setup(nil)
	if err != nil {
		return err
	}
	addr, err := cfg.ListenAddr()
	if err != nil {
		return err
	}

	app := fiber.New(fiber.Config{
		AppName:               "weather-report",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-report",
		})
	})

	httpapi.RegisterRoutes(app, service)

	go func() {
		if err := app.Listen(addr); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "fiber server stopped: %v\n", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return app.ShutdownWithContext(shutdownCtx)
}
