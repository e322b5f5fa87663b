package services

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
	"gorm.io/gorm"

	adminDB "freelance-admin-service/internal/admin/db"
	"freelance-admin-service/internal/admin/events"
	adminKafka "freelance-admin-service/internal/admin/kafka"
	"freelance-admin-service/pkg/validation"
)

// LeadIntakeService consumes lead-capture events published by the
// marketing site and persists them as clients with status "lead".
type LeadIntakeService struct {
	DB     *gorm.DB
	Reader *kafka.Reader
}

func NewLeadIntakeService(gormDB *gorm.DB) *LeadIntakeService {
	return &LeadIntakeService{DB: gormDB, Reader: adminKafka.NewLeadReader()}
}

func (s *LeadIntakeService) StartConsuming(ctx context.Context) {
	log.Println("LeadIntakeService starting to consume lead capture events...")

	schema, err := validation.Compile(events.LeadCaptureSchema)
	if err != nil {
		// The schema is a compile-time constant; failing here means the
		// binary shipped broken.
		log.Printf("LeadIntakeService: failed to compile lead schema, intake disabled: %v", err)
		return
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				log.Println("LeadIntakeService: context cancelled, stopping consumer.")
				return
			default:
				readCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
				msg, err := s.Reader.ReadMessage(readCtx)
				cancel()

				if err == context.DeadlineExceeded {
					continue
				}
				if err == context.Canceled {
					log.Println("LeadIntakeService: read context cancelled.")
					return
				}
				if err == io.EOF {
					log.Println("LeadIntakeService: Kafka reader closed (EOF), stopping consumption.")
					return
				}
				if err != nil {
					log.Printf("LeadIntakeService: error reading message: %v", err)
					time.Sleep(1 * time.Second)
					continue
				}

				if err := validation.ValidateBytes(schema, msg.Value); err != nil {
					log.Printf("LeadIntakeService: lead payload failed schema validation: %v. Value: %s", err, string(msg.Value))
					continue
				}
				var payload events.LeadCapturePayload
				if err := json.Unmarshal(msg.Value, &payload); err != nil {
					log.Printf("LeadIntakeService: error unmarshalling lead payload: %v. Value: %s", err, string(msg.Value))
					continue
				}

				var org adminDB.Organization
				if res := s.DB.Where("public_id = ?", payload.Org).First(&org); res.Error != nil {
					log.Printf("LeadIntakeService: unknown org %q in lead event %s: %v", payload.Org, payload.EventID, res.Error)
					continue
				}

				lead := adminDB.Client{
					OrgID:   payload.Org,
					Name:    payload.Name,
					Email:   payload.Email,
					Company: payload.Company,
					Phone:   payload.Phone,
					Status:  "lead",
					Notes:   leadNotes(payload),
				}
				if res := s.DB.Create(&lead); res.Error != nil {
					log.Printf("LeadIntakeService: failed to persist lead %q for org %q: %v", payload.Name, payload.Org, res.Error)
					continue
				}
				log.Printf("LeadIntakeService: created lead client ID %d for org %q (source: %s)", lead.ID, payload.Org, payload.Source)
			}
		}
	}()
}

func leadNotes(payload events.LeadCapturePayload) string {
	if payload.Source == "" {
		return payload.Message
	}
	if payload.Message == "" {
		return "Source: " + payload.Source
	}
	return "Source: " + payload.Source + "\n" + payload.Message
}

func (s *LeadIntakeService) Close() {
	if s.Reader != nil {
		log.Println("LeadIntakeService: Closing Kafka reader.")
		s.Reader.Close()
	}
}
