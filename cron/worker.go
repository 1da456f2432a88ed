package cron

import (
	"context"
	"fmt"
	"log"

	"tripdesk/config"
	"tripdesk/services/aggregator"

	"github.com/hibiken/asynq"
)

// TypeAggregationWarm refreshes the aggregation cache so dashboard loads hit
// warm data instead of paying the partner fan-out.
const TypeAggregationWarm = "aggregation:warm"

// InitAggregationWarmer runs the async worker and its periodic scheduler in
// the background. Warm failures are logged, never fatal: the next dashboard
// request simply aggregates directly.
func InitAggregationWarmer(engine aggregator.AggregationService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisWorkerDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 1,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeAggregationWarm, handleWarmTask(engine))

	go func() {
		log.Println("[AggregationWarmer] starting async worker...")
		if err := srv.Run(mux); err != nil {
			log.Printf("[AggregationWarmer] worker stopped: %v", err)
		}
	}()

	scheduler := asynq.NewScheduler(redisOpts, nil)
	interval := config.AppConfig.AggregationWarmMinutes
	if interval <= 0 {
		interval = 5
	}
	spec := fmt.Sprintf("@every %dm", interval)
	if _, err := scheduler.Register(spec, asynq.NewTask(TypeAggregationWarm, nil)); err != nil {
		log.Printf("[AggregationWarmer] failed to register warm task: %v", err)
		return
	}

	go func() {
		if err := scheduler.Run(); err != nil {
			log.Printf("[AggregationWarmer] scheduler stopped: %v", err)
		}
	}()
}

func handleWarmTask(engine aggregator.AggregationService) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		// AggregateAll repopulates the cache when the previous entry expired.
		if _, err := engine.AggregateAll(ctx); err != nil {
			return fmt.Errorf("aggregation warm failed: %w", err)
		}
		return nil
	}
}
