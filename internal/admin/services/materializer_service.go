package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
	"gorm.io/gorm"

	adminDB "freelance-admin-service/internal/admin/db"
	adminKafka "freelance-admin-service/internal/admin/kafka"
	"freelance-admin-service/internal/admin/recurrence"
)

// MaterializerService expands recurring task seeds into concrete future
// task rows. One run is a single batch: read seeds, expand, insert. A
// persistence failure anywhere aborts the whole run; there is no
// per-seed retry and no transaction around the batch insert, so a
// failure partway through can leave a partial set of generated rows.
//
// Runs are not coordinated: nothing records how far a seed has been
// materialized, so overlapping runs can double-materialize.
type MaterializerService struct {
	DB       *gorm.DB
	Producer *kafka.Writer
}

func NewMaterializerService(db *gorm.DB, producer *kafka.Writer) *MaterializerService {
	return &MaterializerService{DB: db, Producer: producer}
}

// Run materializes all eligible seeds, optionally scoped to one
// organization, relative to the current local date.
func (s *MaterializerService) Run(ctx context.Context, org string) (int, error) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return s.RunFrom(ctx, org, today)
}

// RunFrom is Run with an explicit run date. Exported for testing.
func (s *MaterializerService) RunFrom(ctx context.Context, org string, today time.Time) (int, error) {
	query := s.DB.WithContext(ctx).Model(&adminDB.Task{}).
		Where("recur_rule IS NOT NULL AND recur_rule != ''").
		Where("due_date IS NOT NULL")
	if org != "" {
		query = query.Where("org_id = ?", org)
	}

	var seedRows []adminDB.Task
	if err := query.Find(&seedRows).Error; err != nil {
		return 0, fmt.Errorf("failed to load recurrence seeds: %w", err)
	}
	log.Printf("Materializer: loaded %d seed task(s) (org filter: %q)", len(seedRows), org)

	seeds := make([]recurrence.Seed, 0, len(seedRows))
	for _, row := range seedRows {
		seeds = append(seeds, recurrence.Seed{
			OrgID:    row.OrgID,
			ClientID: row.ClientID,
			Title:    row.Title,
			Priority: row.Priority,
			DueDate:  row.DueDate,
			Rule:     row.RecurRule,
			Interval: row.RecurInterval,
			Count:    row.RecurCount,
			Until:    row.RecurUntil,
		})
	}

	instances := recurrence.Materialize(seeds, today)
	if len(instances) == 0 {
		log.Printf("Materializer: nothing to create.")
		return 0, nil
	}

	rows := make([]adminDB.Task, 0, len(instances))
	for _, inst := range instances {
		due := inst.DueDate
		rows = append(rows, adminDB.Task{
			OrgID:    inst.OrgID,
			ClientID: inst.ClientID,
			Title:    inst.Title,
			Status:   inst.Status,
			Priority: inst.Priority,
			Position: inst.Position,
			DueDate:  &due,
		})
	}
	if err := s.DB.WithContext(ctx).Create(&rows).Error; err != nil {
		return 0, fmt.Errorf("failed to insert materialized tasks: %w", err)
	}

	log.Printf("Materializer: created %d task instance(s) from %d seed(s).", len(rows), len(seedRows))
	adminKafka.PublishMaterializeRun(ctx, s.Producer, org, len(rows))
	return len(rows), nil
}
