package kafka

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"freelance-admin-service/internal/admin/events"
)

const (
	DefaultKafkaBrokers = "localhost:9092"
	DefaultEventsTopic  = "admin_domain_events"
	DefaultLeadTopic    = "lead_capture_events"
	DefaultLeadGroupID  = "admin-lead-intake-group"
	publishTimeout      = 10 * time.Second
)

func brokerList() []string {
	kafkaBrokers := os.Getenv("KAFKA_BROKERS")
	if kafkaBrokers == "" {
		kafkaBrokers = DefaultKafkaBrokers
	}
	return strings.Split(kafkaBrokers, ",")
}

// NewEventProducer builds the writer for the domain events topic.
func NewEventProducer() *kafka.Writer {
	eventsTopic := os.Getenv("EVENTS_TOPIC")
	if eventsTopic == "" {
		eventsTopic = DefaultEventsTopic
	}
	producer := kafka.NewWriter(kafka.WriterConfig{
		Brokers:      brokerList(),
		Topic:        eventsTopic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: int(kafka.RequireOne),
		Async:        false,
	})
	log.Printf("Domain event producer configured for topic: %s", eventsTopic)
	return producer
}

// NewLeadReader builds the consumer for the marketing site's lead
// capture topic.
func NewLeadReader() *kafka.Reader {
	leadTopic := os.Getenv("LEAD_TOPIC")
	if leadTopic == "" {
		leadTopic = DefaultLeadTopic
	}
	groupID := os.Getenv("LEAD_GROUP_ID")
	if groupID == "" {
		groupID = DefaultLeadGroupID
	}
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokerList(), GroupID: groupID, Topic: leadTopic,
		MinBytes: 10e3, MaxBytes: 10e6, CommitInterval: time.Second, MaxWait: 3 * time.Second,
	})
	log.Printf("Lead intake consumer configured for topic: %s, groupID: %s", leadTopic, groupID)
	return reader
}

// PublishEntityEvent sends a lifecycle event, best effort. Failures are
// logged and never propagated: the row is already committed and domain
// events are advisory.
func PublishEntityEvent(ctx context.Context, producer *kafka.Writer, org, kind string, entityID uint, detail string) {
	if producer == nil {
		return
	}
	payload := events.EntityEventPayload{
		EventID:  uuid.NewString(),
		Org:      org,
		Kind:     kind,
		EntityID: entityID,
		Detail:   detail,
	}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Error marshalling %s event for entity %d: %v", kind, entityID, err)
		return
	}
	writeCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	msg := kafka.Message{Key: []byte(payload.EventID), Value: payloadBytes}
	if err := producer.WriteMessages(writeCtx, msg); err != nil {
		log.Printf("Error publishing %s event for entity %d: %v", kind, entityID, err)
	}
}

// PublishMaterializeRun sends a run summary after a materialization
// pass, best effort.
func PublishMaterializeRun(ctx context.Context, producer *kafka.Writer, org string, created int) {
	if producer == nil {
		return
	}
	payload := events.MaterializeRunPayload{
		EventID: uuid.NewString(),
		Org:     org,
		Created: created,
		RanAt:   time.Now(),
	}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Error marshalling materialize run event: %v", err)
		return
	}
	writeCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	msg := kafka.Message{Key: []byte(payload.EventID), Value: payloadBytes}
	if err := producer.WriteMessages(writeCtx, msg); err != nil {
		log.Printf("Error publishing materialize run event: %v", err)
	}
}
