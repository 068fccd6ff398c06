// +build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type SpotUpsertEvent struct {
	EventID     uuid.UUID `json:"event_id"`
	SpotID      string    `json:"spot_id"`
	Name        string    `json:"name"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	Address     string    `json:"address"`
	Summary     string    `json:"summary"`
	CostRange   *string   `json:"cost_range,omitempty"`
	AgeMin      *int      `json:"age_min,omitempty"`
	AgeMax      *int      `json:"age_max,omitempty"`
	Tags        []string  `json:"tags"`
	Source      string    `json:"source"`
	RequestedAt time.Time `json:"requested_at"`
}

func ptr[T any](v T) *T {
	return &v
}

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Test event (Ueno Zoo)
	event := SpotUpsertEvent{
		EventID:     uuid.New(),
		SpotID:      "tokyo-zoo-1",
		Name:        "上野動物園",
		Lat:         35.7156,
		Lng:         139.7713,
		Address:     "東京都台東区上野公園9-83",
		Summary:     "パンダで有名な動物園。",
		CostRange:   ptr("U1000"),
		AgeMin:      ptr(0),
		AgeMax:      ptr(15),
		Tags:        []string{"屋外", "動物"},
		Source:      "manual-test",
		RequestedAt: time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: "stream:spots:upsert",
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("✅ Event published successfully!\n")
	fmt.Printf("   Stream: stream:spots:upsert\n")
	fmt.Printf("   Message ID: %s\n", result)
	fmt.Printf("   Event ID: %s\n", event.EventID)
	fmt.Printf("   Spot: %s (%s)\n", event.Name, event.SpotID)

	fmt.Printf("\n⏳ Waiting for confirmation in stream:spots:changed...\n")

	timeout := time.After(30 * time.Second)
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			fmt.Println("❌ Timeout waiting for confirmation")
			return
		case <-ticker.C:
			results, err := client.XRead(ctx, &redis.XReadArgs{
				Streams: []string{"stream:spots:changed", "0"},
				Count:   10,
				Block:   0,
			}).Result()

			if err != nil && err != redis.Nil {
				continue
			}

			for _, stream := range results {
				for _, msg := range stream.Messages {
					dataStr, ok := msg.Values["data"].(string)
					if !ok {
						continue
					}

					var response map[string]interface{}
					if err := json.Unmarshal([]byte(dataStr), &response); err != nil {
						continue
					}

					if eventID, ok := response["event_id"].(string); ok {
						if eventID == event.EventID.String() {
							fmt.Printf("\n✅ Spot persisted!\n")
							prettyJSON, _ := json.MarshalIndent(response, "", "  ")
							fmt.Printf("%s\n", prettyJSON)
							return
						}
					}
				}
			}
		}
	}
}
