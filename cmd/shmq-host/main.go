// Command shmq-host is a demo/reference host process for the lgmp
// protocol: it maps a region, registers a handful of queues, posts
// synthetic messages on a timer, and runs the liveness pass
// continuously until interrupted.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	_ "go.uber.org/automaxprocs"

	"github.com/lgmp-go/lgmp"
	"github.com/lgmp-go/lgmp/internal/config"
	"github.com/lgmp-go/lgmp/internal/logging"
	"github.com/lgmp-go/lgmp/internal/promexport"
	"github.com/lgmp-go/lgmp/internal/shmregion"
	"github.com/lgmp-go/lgmp/internal/wire"
)

func main() {
	root := &cobra.Command{
		Use:   "shmq-host",
		Short: "Reference host for the lgmp shared-memory queue protocol",
	}
	root.AddCommand(newServeCmd())
	root.AddCommand(newDumpCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newServeCmd() *cobra.Command {
	var numQueues int
	var queueDepth uint32

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Map a region, register queues, and publish synthetic traffic until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(numQueues, queueDepth)
		},
	}
	cmd.Flags().IntVar(&numQueues, "queues", 4, "number of queues to register")
	cmd.Flags().Uint32Var(&queueDepth, "depth", 64, "ring capacity per queue")
	return cmd
}

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Map a region, register one queue, and print its fixed-layout header bytes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump()
		},
	}
}

func runServe(numQueues int, queueDepth uint32) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.NewLogger(&logging.Config{
		Level:  parseLevel(cfg.LogLevel),
		Output: os.Stderr,
		Pretty: cfg.LogPretty,
	})
	logging.SetDefault(logger)

	region, err := shmregion.New(cfg.RegionSizeBytes)
	if err != nil {
		return fmt.Errorf("mapping region: %w", err)
	}
	defer region.Close()

	var host *lgmp.Host
	initOp := func() (*lgmp.Host, error) {
		return lgmp.Init(region.Bytes, len(region.Bytes), nil, nil)
	}
	host, err = backoff.Retry(context.Background(), initOp, backoff.WithMaxTries(3))
	if err != nil {
		return fmt.Errorf("initializing host: %w", err)
	}
	defer host.Free()

	logger.Info("host started", "session_id", host.SessionID(), "region_bytes", len(region.Bytes))

	queues := make([]*lgmp.Queue, 0, numQueues)
	for i := 0; i < numQueues; i++ {
		q, err := host.AddQueue(uint32(i), queueDepth)
		if err != nil {
			return fmt.Errorf("registering queue %d: %w", i, err)
		}
		queues = append(queues, q)
	}

	if cfg.MetricsAddr != "" {
		serveMetrics(cfg.MetricsAddr, host, logger)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	processTicker := time.NewTicker(time.Duration(cfg.ProcessIntervalMS) * time.Millisecond)
	defer processTicker.Stop()
	postTicker := time.NewTicker(50 * time.Millisecond)
	defer postTicker.Stop()

	payload, err := host.MemAlloc(64)
	if err != nil {
		return fmt.Errorf("reserving demo payload: %w", err)
	}

	logger.Info("serving, press ctrl+c to stop")
	for {
		select {
		case <-ctx.Done():
			logger.Info("shutdown signal received")
			snap := host.Metrics().Snapshot()
			logger.Info("final metrics",
				"messages_posted", snap.MessagesPosted,
				"messages_retired", snap.MessagesRetired,
				"subscribers_reaped", snap.SubscribersReaped)
			return nil
		case <-processTicker.C:
			if _, err := host.Process(); err != nil {
				logger.Error("process failed", "error", err)
			}
		case <-postTicker.C:
			q := queues[rand.Intn(len(queues))]
			status, err := host.Post(q, uint32(time.Now().UnixNano()), payload)
			if err != nil {
				logger.Error("post failed", "error", err, "queue_id", q.QueueID())
				continue
			}
			if status == lgmp.StatusQueueFull {
				logger.Warn("queue full, backing off this tick", "queue_id", q.QueueID())
			}
		}
	}
}

func runDump() error {
	region, err := shmregion.New(1 << 20)
	if err != nil {
		return err
	}
	defer region.Close()

	host, err := lgmp.Init(region.Bytes, len(region.Bytes), nil, nil)
	if err != nil {
		return err
	}
	defer host.Free()

	if _, err := host.AddQueue(0, 16); err != nil {
		return err
	}

	fmt.Printf("session_id=%d num_queues=%d heartbeat=%d\n", host.SessionID(), host.NumQueues(), host.Heartbeat())
	fmt.Printf("header=%x\n", wire.DumpHeader(wire.HeaderAt(region.Bytes)))
	return nil
}

func serveMetrics(addr string, host *lgmp.Host, logger *logging.Logger) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(promexport.NewCollector(func() promexport.Snapshot {
		s := host.Metrics().Snapshot()
		return promexport.Snapshot{
			QueuesRegistered:             s.QueuesRegistered,
			PayloadBytesAllocated:        s.PayloadBytesAllocated,
			MessagesPosted:               s.MessagesPosted,
			MessagesDroppedNoSubscribers: s.MessagesDroppedNoSubscribers,
			PostQueueFull:                s.PostQueueFull,
			MessagesRetired:              s.MessagesRetired,
			SubscribersMarkedBad:         s.SubscribersMarkedBad,
			SubscribersReaped:            s.SubscribersReaped,
		}
	}))

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	go func() {
		logger.Info("serving metrics", "addr", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Error("metrics server stopped", "error", err)
		}
	}()
}

func parseLevel(s string) logging.LogLevel {
	switch s {
	case "debug":
		return logging.LevelDebug
	case "warn":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}
