package utils

import (
	"context"
	"sync"
	"time"

	"tripdesk/config"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// WebsitePool summarizes the partner registry at snapshot time.
type WebsitePool struct {
	Active int `json:"active"`
	Total  int `json:"total"`
}

// HealthStatus is the periodic snapshot of everything the aggregation
// dashboard depends on: the document store, the Redis pools, and the partner
// registry itself.
type HealthStatus struct {
	Mongo     bool        `json:"mongo"`
	Redis     []bool      `json:"redis"`
	Websites  WebsitePool `json:"websites"`
	CheckedAt time.Time   `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns the latest stored snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

// collectHealth probes every dependency once. A nil Mongo client reports
// unhealthy instead of panicking so the collector works in isolation.
func collectHealth(ctx context.Context, redisClients []*redis.Client, mongoClient *mongo.Client, partnerCounts func() (int, int)) HealthStatus {
	redisHealth := make([]bool, 0, len(redisClients))
	for _, client := range redisClients {
		redisHealth = append(redisHealth, client.Ping(ctx).Err() == nil)
	}

	mongoHealthy := mongoClient != nil && mongoClient.Ping(ctx, nil) == nil

	var active, total int
	if partnerCounts != nil {
		active, total = partnerCounts()
	}

	return HealthStatus{
		Mongo:     mongoHealthy,
		Redis:     redisHealth,
		Websites:  WebsitePool{Active: active, Total: total},
		CheckedAt: time.Now(),
	}
}

// StartHealthMonitor re-probes the dependencies on the configured interval
// and stores the snapshot for the health endpoint to serve.
func StartHealthMonitor(redisClients []*redis.Client, mongoClient *mongo.Client, partnerCounts func() (int, int)) {
	interval := time.Duration(config.AppConfig.HealthCheckIntervalSeconds) * time.Second
	if interval <= 0 {
		interval = 60 * time.Second
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		ctx := context.Background()
		for range ticker.C {
			snapshot := collectHealth(ctx, redisClients, mongoClient, partnerCounts)

			healthMu.Lock()
			currentHealth = snapshot
			healthMu.Unlock()
		}
	}()
}
