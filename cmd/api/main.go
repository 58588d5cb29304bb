package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/opscorehq/opscore-api/internal/auth"
	"github.com/opscorehq/opscore-api/internal/config"
	"github.com/opscorehq/opscore-api/internal/database"
	"github.com/opscorehq/opscore-api/internal/http/handler"
	"github.com/opscorehq/opscore-api/internal/http/middleware"
	"github.com/opscorehq/opscore-api/internal/http/router"
	"github.com/opscorehq/opscore-api/internal/jobs"
	"github.com/opscorehq/opscore-api/internal/logger"
	"github.com/opscorehq/opscore-api/internal/repository"
	"github.com/opscorehq/opscore-api/internal/service"
	"go.uber.org/zap"
)

const sweepJobTimeout = 10 * time.Minute

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&cfg.Logging, &cfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Environment),
		zap.Int("port", cfg.App.Port),
	)

	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Schema migrations run via cmd/migrate in staging and production.
	if cfg.App.Environment == "development" {
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to auto-migrate schema: %w", err)
		}
		log.Info("Auto-migration completed")
	}

	// Repositories
	contactRepo := repository.NewContactRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	leadRepo := repository.NewLeadRepository(db)
	opportunityRepo := repository.NewOpportunityRepository(db)
	quotationRepo := repository.NewQuotationRepository(db)
	pipelineRepo := repository.NewPipelineRepository(db)
	callRepo := repository.NewCallRepository(db)
	productRepo := repository.NewProductRepository(db)
	collectionRepo := repository.NewProductCollectionRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	threadRepo := repository.NewThreadRepository(db)
	eventRepo := repository.NewEventRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	departmentRepo := repository.NewDepartmentRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	permissionRepo := repository.NewPermissionRepository(db)
	verticalRepo := repository.NewVerticalRepository(db)
	moduleRepo := repository.NewModuleRepository(db)
	moduleRecordRepo := repository.NewModuleRecordRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	leaveRepo := repository.NewLeaveRepository(db)
	vaultRepo := repository.NewVaultRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	announcementRepo := repository.NewAnnouncementRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	enumRepo := repository.NewEnumRepository(db)
	sequenceRepo := repository.NewNumberSequenceRepository(db)

	// Services
	// Activity first: nearly every service records into the feed through it.
	activityService := service.NewActivityService(activityRepo, log)
	notificationService := service.NewNotificationService(notificationRepo, profileRepo, log)

	contactService := service.NewContactService(contactRepo, activityService, log)
	companyService := service.NewCompanyService(companyRepo, contactRepo, activityService, log)
	leadService := service.NewLeadService(leadRepo, opportunityRepo, quotationRepo, sequenceRepo, activityService, log)
	pipelineService := service.NewPipelineService(pipelineRepo, opportunityRepo, activityService, log)
	callService := service.NewCallService(callRepo, activityService, log)
	productService := service.NewProductService(productRepo, collectionRepo, activityService, log)
	taskService := service.NewTaskService(taskRepo, commentRepo, enumRepo, notificationService, activityService, log)
	ticketService := service.NewTicketService(ticketRepo, commentRepo, sequenceRepo, notificationService, activityService, log)
	threadService := service.NewThreadService(threadRepo, activityService, log)
	eventService := service.NewEventService(eventRepo, notificationService, activityService, log)
	profileService := service.NewProfileService(profileRepo, activityService, log)
	orgService := service.NewOrgService(departmentRepo, teamRepo, activityService, log)
	roleService := service.NewRoleService(roleRepo, permissionRepo, activityService, log)
	verticalService := service.NewVerticalService(verticalRepo, activityService, log)
	moduleService := service.NewModuleService(moduleRepo, moduleRecordRepo, activityService, log)
	employeeService := service.NewEmployeeService(employeeRepo, profileRepo, activityService, log)
	attendanceService := service.NewAttendanceService(attendanceRepo, employeeRepo, log)
	leaveService := service.NewLeaveService(leaveRepo, profileRepo, notificationService, activityService, log)
	vaultService := service.NewVaultService(vaultRepo, activityService, log)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo, activityService, log)
	announcementService := service.NewAnnouncementService(announcementRepo, activityService, log)
	documentService := service.NewDocumentService(documentRepo, activityService, log)
	enumService := service.NewEnumService(enumRepo, log)

	// Seed built-in enum options so validation has a baseline on first boot
	if err := enumService.SeedDefaults(ctx); err != nil {
		return fmt.Errorf("failed to seed enum defaults: %w", err)
	}

	// Middleware
	authMiddleware := auth.NewMiddleware(cfg, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Handlers
	handlers := &router.Handlers{
		Contact:      handler.NewContactHandler(contactService, log),
		Company:      handler.NewCompanyHandler(companyService, log),
		Lead:         handler.NewLeadHandler(leadService, log),
		Pipeline:     handler.NewPipelineHandler(pipelineService, log),
		Call:         handler.NewCallHandler(callService, log),
		Product:      handler.NewProductHandler(productService, log),
		Task:         handler.NewTaskHandler(taskService, log),
		Ticket:       handler.NewTicketHandler(ticketService, log),
		Thread:       handler.NewThreadHandler(threadService, log),
		Event:        handler.NewEventHandler(eventService, log),
		Profile:      handler.NewProfileHandler(profileService, log),
		Org:          handler.NewOrgHandler(orgService, log),
		Role:         handler.NewRoleHandler(roleService, log),
		Vertical:     handler.NewVerticalHandler(verticalService, log),
		Module:       handler.NewModuleHandler(moduleService, log),
		Employee:     handler.NewEmployeeHandler(employeeService, log),
		Attendance:   handler.NewAttendanceHandler(attendanceService, log),
		Leave:        handler.NewLeaveHandler(leaveService, log),
		Vault:        handler.NewVaultHandler(vaultService, log),
		Subscription: handler.NewSubscriptionHandler(subscriptionService, log),
		Announcement: handler.NewAnnouncementHandler(announcementService, log),
		Notification: handler.NewNotificationHandler(notificationService, log),
		Document:     handler.NewDocumentHandler(documentService, log),
		Activity:     handler.NewActivityHandler(activityService, log),
		Enum:         handler.NewEnumHandler(enumService, log),
	}

	rt := router.NewRouter(cfg, log, db, authMiddleware, rateLimiter, handlers)

	// Background jobs
	var scheduler *jobs.Scheduler
	if cfg.Jobs.Enabled {
		scheduler = jobs.NewScheduler(log)

		if err := jobs.RegisterAttendanceSweepJob(
			scheduler, attendanceService, log,
			cfg.Jobs.AttendanceSweepCron, sweepJobTimeout,
		); err != nil {
			log.Error("Failed to register attendance sweep job", zap.Error(err))
		}

		if err := jobs.RegisterSubscriptionSweepJob(
			scheduler, subscriptionService, log,
			cfg.Jobs.SubscriptionSweepCron, sweepJobTimeout,
		); err != nil {
			log.Error("Failed to register subscription sweep job", zap.Error(err))
		}

		scheduler.Start()
		log.Info("Scheduler started",
			zap.Strings("jobs", scheduler.GetJobNames()),
			zap.String("attendance_cron", cfg.Jobs.AttendanceSweepCron),
			zap.String("subscription_cron", cfg.Jobs.SubscriptionSweepCron),
		)
	} else {
		log.Info("Background jobs disabled")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		if scheduler != nil {
			ctx := scheduler.Stop()
			<-ctx.Done()
			log.Info("Scheduler stopped")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
