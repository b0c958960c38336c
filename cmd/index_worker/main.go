package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-catalog-api/config"
	"github.com/oksasatya/go-catalog-api/internal/application"
	pginfra "github.com/oksasatya/go-catalog-api/internal/infrastructure/postgres"
	"github.com/oksasatya/go-catalog-api/internal/infrastructure/search"
	"github.com/oksasatya/go-catalog-api/pkg/helpers"
)

const prefetch = 16

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-index-worker", cfg.Env, cfg.LogLevel)

	if cfg.RabbitMQURL == "" || cfg.RabbitMQIndexQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}
	es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass, cfg.ElasticsearchTimeout)
	if err != nil {
		log.Fatalf("elasticsearch: %v", err)
	}
	if es == nil {
		log.Fatal("Elasticsearch not configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.PoolOptions{
		MaxConns:        cfg.DBMaxConns,
		MinConns:        cfg.DBMinConns,
		MaxConnLifetime: cfg.DBMaxConnLife,
	}, logger)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	index := search.NewProductIndex(es, cfg.ESProductsIndex, logger)
	if err := index.EnsureIndex(ctx); err != nil {
		log.Fatalf("ensure index %s: %v", cfg.ESProductsIndex, err)
	}

	queue, err := helpers.NewRabbitQueue(cfg.RabbitMQURL, cfg.RabbitMQIndexQueue)
	if err != nil {
		log.Fatalf("amqp: %v", err)
	}
	defer queue.Close()

	msgs, err := queue.Consume(prefetch)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	worker := application.NewIndexWorker(pginfra.NewProductRepository(pool), index, logger)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for msg := range msgs {
			var job application.IndexJob
			if err := json.Unmarshal(msg.Body, &job); err != nil {
				helpers.LogWarn(logger, "bad index job", err, nil)
				_ = msg.Nack(false, false)
				continue
			}

			c, cancel := context.WithTimeout(ctx, 15*time.Second)
			err := worker.Handle(c, job)
			cancel()
			switch {
			case err == nil:
				_ = msg.Ack(false)
			case errors.Is(err, application.ErrUnknownIndexAction):
				helpers.LogWarn(logger, "dropping index job", err, logrus.Fields{"product_id": job.ProductID})
				_ = msg.Nack(false, false)
			default:
				helpers.LogError(logger, "index job failed, requeueing", err, logrus.Fields{"product_id": job.ProductID})
				_ = msg.Nack(false, true)
			}
		}
	}()

	logger.Infof("index worker listening on queue=%s index=%s", cfg.RabbitMQIndexQueue, cfg.ESProductsIndex)
	<-ctx.Done()
	logger.Info("shutting down...")
	queue.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}
