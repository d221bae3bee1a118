// Command auctiond starts the matching engine process: it loads the
// static config, seeds every symbol's initial depth, installs the
// metrics collector as the engine's recorder, registers the market-data
// fan-out as an engine listener, starts the synthetic order generator under a supervised tomb, and
// serves the HTTP order-entry and websocket market-data surfaces until
// interrupted. Grounded in saiputravu-Exchange/cmd/main.go's
// signal.NotifyContext + blocking-on-ctx.Done shutdown, generalized to
// a cobra root command per VictorVVedtion-perp-dex/cmd/perpdexd/cmd/root.go.
package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"auction/internal/config"
	"auction/internal/engine"
	"auction/internal/generator"
	"auction/internal/marketdata"
	"auction/internal/metrics"
	"auction/internal/service"
	"auction/internal/transport/httpapi"
	"auction/internal/transport/wsfeed"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	tomb "gopkg.in/tomb.v2"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal().Err(err).Msg("auctiond exited with error")
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		addr       string
		debugLog   bool
	)

	cmd := &cobra.Command{
		Use:   "auctiond",
		Short: "Continuous double-auction matching engine daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			if debugLog {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
			return run(configPath, addr)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "config.json", "path to the JSON configuration file")
	cmd.Flags().StringVar(&addr, "addr", "0.0.0.0:8080", "HTTP listen address")
	cmd.Flags().BoolVar(&debugLog, "debug", false, "enable debug logging")

	return cmd
}

func run(configPath, addr string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	eng := engine.New()
	coll := metrics.NewCollector(prometheus.DefaultRegisterer)
	eng.SetMetrics(coll)

	config.Seed(eng, cfg)

	fanout := marketdata.New()
	fanout.SetOnSubscriberChange(coll.SetSubscribers)
	eng.RegisterListener(fanout)

	symbols := make([]string, len(cfg.Symbols))
	for i, sym := range cfg.Symbols {
		symbols[i] = sym.Symbol
	}

	var tb tomb.Tomb
	gen := generator.New(eng, symbols, generator.Config{
		Enabled:       cfg.Simulation.Enabled,
		IntervalMs:    cfg.Simulation.IntervalMs,
		MinOrderSize:  cfg.Simulation.MinOrderSize,
		MaxOrderSize:  cfg.Simulation.MaxOrderSize,
		PriceVariance: cfg.Simulation.PriceVariance,
	})
	tb.Go(func() error { return gen.Run(&tb) })

	orderEntry := service.NewOrderEntryService(eng)
	marketData := service.NewMarketDataService(fanout)

	mux := http.NewServeMux()
	httpapi.NewHandler(orderEntry).Register(mux)
	wsfeed.NewHandler(marketData).Register(mux)
	mux.Handle("GET /metrics", promhttp.Handler())

	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		log.Info().Str("addr", addr).Msg("auctiond listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown error")
	}

	tb.Kill(nil)
	if err := tb.Wait(); err != nil {
		log.Error().Err(err).Msg("generator exited with error")
	}

	return nil
}
