package main

import (
	"context"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/common/utils"

	"freelance-admin-service/internal/admin/ai"
	"freelance-admin-service/internal/admin/api"
	adminDB "freelance-admin-service/internal/admin/db"
	adminKafka "freelance-admin-service/internal/admin/kafka"
	"freelance-admin-service/internal/admin/services"
	gorm_db "freelance-admin-service/pkg/db"
)

func main() {
	stdlog.Println("Freelance Admin Service starting...")

	appCtx, appCancel := context.WithCancel(context.Background())

	gormDB, err := gorm_db.NewGormDB()
	if err != nil {
		stdlog.Fatalf("Failed to initialize database: %v", err)
	}
	stdlog.Println("Database initialized successfully.")

	stdlog.Println("Running database migrations...")
	if err := gorm_db.AutoMigrate(gormDB, adminDB.AllModels()...); err != nil {
		stdlog.Fatalf("Failed to migrate database: %v", err)
	}
	stdlog.Println("Database migration successful.")

	eventProducer := adminKafka.NewEventProducer()

	leadIntake := services.NewLeadIntakeService(gormDB)
	leadIntake.StartConsuming(appCtx)

	materializer := services.NewMaterializerService(gormDB, eventProducer)

	schedulerService, err := services.NewSchedulerService(appCtx, gormDB, materializer)
	if err != nil {
		stdlog.Fatalf("Failed to create scheduler service: %v", err)
	}
	schedulerService.Start()

	serverAddr := os.Getenv("SERVER_ADDR")
	if serverAddr == "" {
		serverAddr = ":8080"
	}

	hlog.SetOutput(os.Stdout)
	hlog.SetLevel(hlog.LevelInfo)

	h := server.Default(server.WithHostPorts(serverAddr), server.WithExitWaitTime(5*time.Second))

	orgHandler := api.NewOrgHandler(gormDB)
	clientHandler := api.NewClientHandler(gormDB)
	taskHandler := api.NewTaskHandler(gormDB, eventProducer)
	invoiceHandler := api.NewInvoiceHandler(gormDB, eventProducer)
	scheduleHandler := api.NewScheduleHandler(gormDB)
	calendarHandler := api.NewCalendarHandler(gormDB)
	materializeHandler := api.NewMaterializeHandler(materializer)
	aiHandler := api.NewAIHandler(ai.NewClient())

	orgGroup := h.Group("/orgs")
	{
		orgGroup.POST("", orgHandler.CreateOrg)
		orgGroup.GET("", orgHandler.GetOrgs)
		orgGroup.GET("/:org", orgHandler.GetOrgByID)

		clientGroup := orgGroup.Group("/:org/clients")
		{
			clientGroup.POST("", clientHandler.CreateClient)
			clientGroup.GET("", clientHandler.GetClients)
			clientGroup.GET("/:id", clientHandler.GetClientByID)
			clientGroup.PUT("/:id", clientHandler.UpdateClient)
			clientGroup.DELETE("/:id", clientHandler.DeleteClient)
		}
		taskGroup := orgGroup.Group("/:org/tasks")
		{
			taskGroup.POST("", taskHandler.CreateTask)
			taskGroup.GET("", taskHandler.GetTasks)
			taskGroup.GET("/:id", taskHandler.GetTaskByID)
			taskGroup.PUT("/:id", taskHandler.UpdateTask)
			taskGroup.DELETE("/:id", taskHandler.DeleteTask)
		}
		invoiceGroup := orgGroup.Group("/:org/invoices")
		{
			invoiceGroup.POST("", invoiceHandler.CreateInvoice)
			invoiceGroup.GET("", invoiceHandler.GetInvoices)
			invoiceGroup.GET("/:id", invoiceHandler.GetInvoiceByID)
			invoiceGroup.PUT("/:id/status", invoiceHandler.UpdateInvoiceStatus)
			invoiceGroup.DELETE("/:id", invoiceHandler.DeleteInvoice)
		}
		orgGroup.GET("/:org/schedule/week", scheduleHandler.GetWeek)
	}

	h.GET("/calendar.ics", calendarHandler.ExportICS)

	aiGroup := h.Group("/ai")
	{
		aiGroup.POST("/focus", aiHandler.SuggestFocus)
		aiGroup.POST("/invoice-chaser", aiHandler.SuggestInvoiceChaser)
	}

	adminGroup := h.Group("/admin")
	adminGroup.POST("/recurrence/materialize", materializeHandler.TriggerMaterialize)
	adminGroup.POST("/scheduler/refresh", func(c context.Context, ctxReq *app.RequestContext) {
		schedulerService.RefreshScheduledJobs()
		ctxReq.JSON(http.StatusOK, utils.H{"message": "Scheduler refresh triggered"})
	})

	h.GET("/ping", func(c context.Context, ctxReq *app.RequestContext) {
		ctxReq.JSON(http.StatusOK, utils.H{"message": "pong"})
	})

	go func() {
		signals := make(chan os.Signal, 1)
		signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
		sig := <-signals
		hlog.Infof("Received signal: %s. Initiating graceful shutdown...", sig)

		appCancel()

		shutdownCtx, httpShutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer httpShutdownCancel()
		if err := h.Shutdown(shutdownCtx); err != nil {
			hlog.Errorf("Hertz server shutdown error: %v", err)
		} else {
			hlog.Info("Hertz server gracefully stopped.")
		}

		schedulerService.Stop()

		leadIntake.Close()
		hlog.Info("Lead intake consumer closed.")

		if err := eventProducer.Close(); err != nil {
			hlog.Errorf("Kafka producer close error: %v", err)
		} else {
			hlog.Info("Kafka producer closed.")
		}
		hlog.Info("Freelance Admin Service gracefully shut down.")
	}()

	hlog.Infof("Freelance Admin Service fully initialized and starting Hertz server on %s...", serverAddr)
	h.Spin()

	stdlog.Println("Freelance Admin Service has been shut down.")
}
