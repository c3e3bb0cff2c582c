package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"

	httpapi "github.com/surfaumaroc/surfcast/internal/api/http"
	"github.com/surfaumaroc/surfcast/internal/config"
	"github.com/surfaumaroc/surfcast/internal/contact"
	"github.com/surfaumaroc/surfcast/internal/geo"
	"github.com/surfaumaroc/surfcast/internal/news"
	"github.com/surfaumaroc/surfcast/internal/scheduler"
	"github.com/surfaumaroc/surfcast/internal/store"
	"github.com/surfaumaroc/surfcast/internal/surf"
	"github.com/surfaumaroc/surfcast/internal/surf/providers"
	"github.com/surfaumaroc/surfcast/internal/videos"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "surfcast",
		Short: "Surf au Maroc conditions service",
		Long:  "Serves surf conditions, forecasts, news and the contact funnel for Moroccan surf spots.",
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}

	conditionsCmd := &cobra.Command{
		Use:   "conditions [spot-id]",
		Short: "Fetch current conditions for a spot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			return runConditions(args[0], asJSON)
		},
	}
	conditionsCmd.Flags().Bool("json", false, "print the full condition record as JSON")

	rootCmd.AddCommand(serveCmd, conditionsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newSurfService builds the condition pipeline from configuration: shared
// HTTP client, snapshot store, Open-Meteo providers and the synthesizer.
func newSurfService(cfg *config.AppConfig) (*surf.Service, *store.MemoryStore, *http.Client) {
	client := &http.Client{Timeout: cfg.HTTPTimeout}
	memStore := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)

	provs := []surf.Provider{
		providers.NewOpenMeteo(client, cfg.WeatherBaseURL),
		providers.NewMarine(client, cfg.MarineBaseURL),
	}

	svc := surf.NewService(memStore, provs, surf.NewSynthesizer(nil), cfg.SnapshotMaxAge)
	return svc, memStore, client
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	surfSvc, _, client := newSurfService(cfg)

	sched := scheduler.New(surfSvc, cfg.RefreshInterval)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer sched.Stop()

	services := httpapi.Services{
		Surf:    surfSvc,
		News:    news.NewService(client, cfg.NewsSources, cfg.NewsCacheTTL),
		Videos:  videos.NewService(client, cfg.YouTubeAPIKey),
		Contact: contact.NewService(store.NewSubmissionLog(), cfg.ResendAPIKey, cfg.ContactSender, cfg.ContactReceiver),
		Geo:     geo.New(cfg.GeocoderAPIKey),
	}

	app := fiber.New(fiber.Config{
		AppName:               "surfcast",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
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
			"service": "surfcast",
		})
	})

	httpapi.RegisterRoutes(app, services)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return app.ShutdownWithContext(shutdownCtx)
}

func runConditions(spotID string, asJSON bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	surfSvc, _, _ := newSurfService(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cond := surfSvc.Current(ctx, spotID, true)

	if asJSON {
		out, err := json.MarshalIndent(cond, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Printf("%s — %s (%d/100)\n", cond.SpotID, cond.Rating, cond.RatingValue)
	fmt.Printf("Surf: %.1f-%.1fm (%s)\n", cond.SurfHeight.Min, cond.SurfHeight.Max, cond.SurfHeight.Description)
	for _, sw := range cond.Swell {
		fmt.Printf("Swell: %.1fm @ %ds from %s\n", sw.Height, sw.Period, sw.Direction)
	}
	fmt.Printf("Wind: %dkt gusting %dkt %s (%s)\n", cond.Wind.Speed, cond.Wind.Gusts, cond.Wind.Direction, cond.Wind.Type)
	fmt.Printf("Tide: %.1fm, %s, next change %s\n", cond.Tide.Current, cond.Tide.Trend, cond.Tide.NextChange)
	fmt.Printf("Air %d°C / water %d°C — %s\n", cond.Temperature.Air, cond.Temperature.Water, cond.Temperature.Wetsuit)
	fmt.Printf("Source: %s, updated %s\n", cond.Forecast, strings.TrimSpace(cond.LastUpdated))
	return nil
}
