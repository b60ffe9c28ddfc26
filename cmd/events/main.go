// Command events tails the dashboard event stream. Each selection-applied
// and dataset-loaded event is logged as it arrives, which makes filter
// activity visible from a terminal without a browser session.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	natsadapter "jobsight/internal/adapters/nats"
	"jobsight/internal/pkg/config"
	"jobsight/internal/pkg/logging"
)

func main() {
	cfg, err := config.Load("jobsight-events")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logging.Setup("info", "text")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub, err := natsadapter.NewSubscriber(cfg.NATS.URL)
	if err != nil {
		log.Fatalf("nats: %v", err)
	}
	defer sub.Close()

	err = sub.SubscribeSelections(ctx, "events-tail-selections", func(ctx context.Context, ev *natsadapter.SelectionEvent) error {
		slog.Info("selection applied",
			"states", ev.Selection.States,
			"cities", ev.Selection.Cities,
			"total", ev.Total,
			"at", ev.At,
		)
		return nil
	})
	if err != nil {
		log.Fatalf("subscribe selections: %v", err)
	}

	err = sub.SubscribeDatasetLoads(ctx, "events-tail-dataset", func(ctx context.Context, ev *natsadapter.DatasetEvent) error {
		slog.Info("dataset loaded", "rows", ev.Rows, "at", ev.At)
		return nil
	})
	if err != nil {
		log.Fatalf("subscribe dataset: %v", err)
	}

	slog.Info("tailing dashboard events", "url", cfg.NATS.URL)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("stopped")
}
