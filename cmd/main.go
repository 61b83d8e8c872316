package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"huddle/internal/api"
	"huddle/internal/config"
	"huddle/internal/huddle"
	"huddle/internal/monitoring"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var (
	configFile  string
	port        int
	metricsPort int
)

var rootCmd = &cobra.Command{
	Use:   "huddle",
	Short: "Kitchen morning huddle API",
	Long:  `huddle serves a daily kitchen summary of reservations, guests, orders and dietary requirements.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the huddle API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "configs/config.yaml", "Path to configuration file")

	for _, cmd := range []*cobra.Command{rootCmd, serveCmd} {
		cmd.Flags().IntVar(&port, "port", 0, "API server port (overrides config)")
		cmd.Flags().IntVar(&metricsPort, "metrics-port", 0, "Metrics server port (overrides config)")
	}

	rootCmd.AddCommand(serveCmd, reportCmd, generateCmd, importCmd)
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServe(ctx context.Context) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if port != 0 {
		cfg.Port = port
	}
	if metricsPort != 0 {
		cfg.MetricsConfig.Port = metricsPort
	}

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	source, closeSource, err := newSource(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dataset source: %w", err)
	}
	defer closeSource()

	metricsCollector := monitoring.NewMetricsCollector()
	huddleAPI := api.NewHuddleAPI(huddle.NewService(source), metricsCollector, monitoring.NewMonitor())

	var metricsServer *http.Server
	if cfg.MetricsConfig.Enabled {
		metricsServer = newMetricsServer(cfg, metricsCollector)
		go func() {
			log.Printf("Starting metrics server on port %d", cfg.MetricsConfig.Port)
			if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
				log.Printf("Metrics server error: %v", err)
			}
		}()
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: huddleAPI.Router,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

		select {
		case <-sigChan:
		case <-ctx.Done():
		}

		log.Println("Shutting down servers...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("API server shutdown error: %v", err)
		}
		if metricsServer != nil {
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				log.Printf("Metrics server shutdown error: %v", err)
			}
		}
	}()

	log.Printf("Starting API server on port %d (dataset source: %s)", cfg.Port, cfg.Dataset.Source)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("API server error: %w", err)
	}
	return nil
}

func newMetricsServer(cfg *config.Config, collector *monitoring.MetricsCollector) *http.Server {
	metricsRouter := gin.New()
	metricsRouter.Use(gin.Recovery())
	metricsRouter.GET(cfg.MetricsConfig.Path, gin.WrapH(collector.Handler()))

	return &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.MetricsConfig.Port),
		Handler: metricsRouter,
	}
}
