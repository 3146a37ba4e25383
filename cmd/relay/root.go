package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/cloudrobotics/relaycore/cmn/nlog"
	"github.com/cloudrobotics/relaycore/config"
	"github.com/cloudrobotics/relaycore/content"
	"github.com/cloudrobotics/relaycore/handler"
	"github.com/cloudrobotics/relaycore/messenger"
	"github.com/cloudrobotics/relaycore/metrics"
	"github.com/cloudrobotics/relaycore/processor"
	"github.com/cloudrobotics/relaycore/relay"
	"github.com/cloudrobotics/relaycore/router"
	"github.com/cloudrobotics/relaycore/wire"
)

var rootCmd = &cobra.Command{
	Use:   "relay",
	Short: "relay is a cloud-robotics mesh relay node",
	RunE:  runRelay,
}

func init() {
	config.BindFlags(rootCmd.Flags())
}

func runRelay(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}
	if cfg.ConfigFile != "" {
		nlog.Infof("loaded configuration from %s", cfg.ConfigFile)
	}

	contentReg := content.NewRegistry()
	cmdReg := content.NewCommandRegistry()
	if err := content.RegisterBuiltins(contentReg, cmdReg); err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	metricsReg := metrics.New(reg)

	procs := processor.NewRegistry()
	node := relay.NewNode(cfg.CommID)
	mgr := router.NewManager(cfg.CommID, contentReg, procs, metricsReg)
	msgr := messenger.New(cfg.CommID, node, mgr)
	dist := processor.NewDistributor()

	for typ, p := range map[string]handler.Processor{
		wire.TypeConnect:  &processor.Connect{Manager: node},
		wire.TypeCommInfo: &processor.CommInfo{Peers: node},
		wire.TypeRequest:  &processor.Request{Owner: node},
		wire.TypeCommand:  &processor.Command{Dist: dist},
		wire.TypeTag:      &processor.Tag{Dist: dist},
		wire.TypeROSMsg:   msgr,
	} {
		if err := procs.Register(typ, p); err != nil {
			return err
		}
	}

	var srv *http.Server
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		srv = &http.Server{Addr: cfg.MetricsAddr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				nlog.Errorf("metrics server: %s", err)
			}
		}()
		nlog.Infof("relay %s: metrics listening on %s", cfg.CommID, cfg.MetricsAddr)
	}

	nlog.Infof("relay %s: ready, listening on %s", cfg.CommID, cfg.ListenAddr)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	nlog.Infof("relay %s: shutting down", cfg.CommID)
	mgr.Stop()
	if srv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
	return nil
}
