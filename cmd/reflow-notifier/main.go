// Reflow Notifier — потребляет события пересчётов.
//
// Notifier:
//   - Слушает очереди runs.completed и runs.failed
//   - Логирует каждое изменение расписания
//   - Экспортирует счётчики пересчётов в Prometheus
//
// Notifier — место для интеграций (почта, мессенджеры): сейчас
// уведомление — это структурированная запись в лог.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shaiso/Reflow/internal/mq"
	"github.com/shaiso/Reflow/internal/telemetry"
)

var (
	runsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reflow_notifier_runs_completed_total",
		Help: "Total completed reflow runs observed",
	})
	runsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reflow_notifier_runs_failed_total",
		Help: "Total failed reflow runs observed",
	})
	changesObserved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reflow_notifier_changes_total",
		Help: "Total schedule changes observed in completed runs",
	})
)

func main() {
	// Инициализируем structured logging
	logger := telemetry.SetupLogger()
	logger.Info("starting reflow-notifier")

	// graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// RabbitMQ обязателен: без него notifier бесполезен
	mqURL := os.Getenv("RABBITMQ_URL")
	if mqURL == "" {
		mqURL = mq.DefaultURL()
	}

	mqConn, err := mq.NewConnection(mqURL, logger)
	if err != nil {
		logger.Error("failed to connect to RabbitMQ", "error", err)
		os.Exit(1)
	}
	defer mqConn.Close()
	logger.Info("RabbitMQ connected")

	if err := mq.SetupTopology(ctx, mqConn); err != nil {
		logger.Warn("failed to setup topology", "error", err)
	} else {
		logger.Debug("topology ready", "topology", mq.TopologyInfo())
	}

	// Потребители обеих очередей
	completedConsumer := mq.NewConsumer(mqConn, logger, mq.ConsumerConfig{
		Queue:   string(mq.QueueRunsCompleted),
		Handler: handleRunCompleted(logger),
	})
	failedConsumer := mq.NewConsumer(mqConn, logger, mq.ConsumerConfig{
		Queue:   string(mq.QueueRunsFailed),
		Handler: handleRunFailed(logger),
	})

	go func() {
		if err := completedConsumer.Start(ctx); err != nil && ctx.Err() == nil {
			logger.Error("completed consumer stopped", "error", err)
			cancel()
		}
	}()
	go func() {
		if err := failedConsumer.Start(ctx); err != nil && ctx.Err() == nil {
			logger.Error("failed consumer stopped", "error", err)
			cancel()
		}
	}()

	// HTTP mux: /healthz + /metrics
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())

	port := ":8081"
	if v := os.Getenv("NOTIFIER_PORT"); v != "" {
		port = ":" + v
	}

	go func() {
		logger.Info("listening", "addr", port)
		if err := http.ListenAndServe(port, mux); err != nil {
			logger.Error("http server error", "error", err)
			cancel()
		}
	}()

	// Ожидаем сигнал завершения
	<-ctx.Done()

	completedConsumer.Stop()
	failedConsumer.Stop()
	logger.Info("reflow-notifier stopped")
}

// handleRunCompleted логирует успешный пересчёт и каждое его изменение.
func handleRunCompleted(logger *slog.Logger) mq.Handler {
	return func(ctx context.Context, d *mq.Delivery) error {
		payload, err := mq.ParsePayload[mq.RunCompletedPayload](&d.Message)
		if err != nil {
			return err
		}

		runsCompleted.Inc()
		changesObserved.Add(float64(payload.ChangeCount))

		log := telemetry.WithRunID(logger, payload.RunID.String())
		log.Info("reflow run completed",
			"work_orders", payload.WorkOrderCount,
			"changes", payload.ChangeCount,
		)
		for _, change := range payload.Changes {
			log.Info("schedule change", "change", change)
		}
		return nil
	}
}

// handleRunFailed логирует неудачный пересчёт.
func handleRunFailed(logger *slog.Logger) mq.Handler {
	return func(ctx context.Context, d *mq.Delivery) error {
		payload, err := mq.ParsePayload[mq.RunFailedPayload](&d.Message)
		if err != nil {
			return err
		}

		runsFailed.Inc()

		telemetry.WithRunID(logger, payload.RunID.String()).Warn("reflow run failed",
			"reason", payload.Reason,
		)
		return nil
	}
}
