package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"

	adminDB "freelance-admin-service/internal/admin/db"
)

const (
	// DefaultMaterializeCron runs the recurrence materializer nightly.
	DefaultMaterializeCron = "0 3 * * *"
	// DefaultOverdueSweepCron marks sent invoices past their due date
	// as overdue, once an hour.
	DefaultOverdueSweepCron = "0 * * * *"
)

// SchedulerService owns the in-process cron jobs: the nightly
// recurrence materialization run and the hourly overdue-invoice sweep.
type SchedulerService struct {
	DB           *gorm.DB
	Scheduler    gocron.Scheduler
	Materializer *MaterializerService
	appContext   context.Context
}

func NewSchedulerService(ctx context.Context, db *gorm.DB, materializer *MaterializerService) (*SchedulerService, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	return &SchedulerService{DB: db, Scheduler: s, Materializer: materializer, appContext: ctx}, nil
}

func (s *SchedulerService) Start() {
	log.Println("SchedulerService starting...")
	s.Scheduler.Start()
	s.LoadAndScheduleJobs()
	log.Println("SchedulerService started and jobs scheduled.")
}

func (s *SchedulerService) Stop() {
	log.Println("SchedulerService stopping...")
	if err := s.Scheduler.Shutdown(); err != nil {
		log.Printf("Error shutting down gocron scheduler: %v", err)
	} else {
		log.Println("Gocron scheduler shut down successfully.")
	}
}

// LoadAndScheduleJobs (re)registers the recurring jobs. Existing jobs
// are removed by tag first so a refresh never double-schedules.
func (s *SchedulerService) LoadAndScheduleJobs() {
	s.Scheduler.RemoveByTags("admin_cron_job")

	materializeCron := os.Getenv("MATERIALIZE_CRON")
	if materializeCron == "" {
		materializeCron = DefaultMaterializeCron
	}
	s.scheduleJob("materialize_recurrence", materializeCron, s.runMaterializer)

	overdueCron := os.Getenv("OVERDUE_SWEEP_CRON")
	if overdueCron == "" {
		overdueCron = DefaultOverdueSweepCron
	}
	s.scheduleJob("overdue_invoice_sweep", overdueCron, s.SweepOverdueInvoices)

	log.Printf("%d jobs currently scheduled.", len(s.Scheduler.Jobs()))
}

func (s *SchedulerService) scheduleJob(name, cronExpr string, fn func()) {
	job, err := s.Scheduler.NewJob(
		gocron.CronJob(cronExpr, false),
		gocron.NewTask(fn),
		gocron.WithName(name),
		gocron.WithTags("admin_cron_job", name),
	)
	if err != nil {
		log.Printf("Error scheduling job %s with cron '%s': %v", name, cronExpr, err)
		return
	}
	nextRunTime, errNextRun := job.NextRun()
	if errNextRun != nil {
		log.Printf("Scheduled job %s with cron '%s'. Next Run: (error: %v)", name, cronExpr, errNextRun)
	} else {
		log.Printf("Scheduled job %s with cron '%s'. Next Run: %s", name, cronExpr, nextRunTime.Format(time.RFC3339))
	}
}

func (s *SchedulerService) runMaterializer() {
	created, err := s.Materializer.Run(s.appContext, "")
	if err != nil {
		log.Printf("Scheduled materializer run failed: %v", err)
		return
	}
	log.Printf("Scheduled materializer run created %d task(s).", created)
}

// SweepOverdueInvoices flips sent invoices whose due date has passed to
// overdue. Exported for testing.
func (s *SchedulerService) SweepOverdueInvoices() {
	result := s.DB.Model(&adminDB.Invoice{}).
		Where("status = ?", "sent").
		Where("due_date IS NOT NULL AND due_date < ?", time.Now()).
		Update("status", "overdue")
	if result.Error != nil {
		log.Printf("Overdue invoice sweep failed: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Overdue invoice sweep marked %d invoice(s) overdue.", result.RowsAffected)
	}
}

func (s *SchedulerService) RefreshScheduledJobs() { s.LoadAndScheduleJobs() }
