package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/opscorehq/opscore-api/internal/config"
	"github.com/opscorehq/opscore-api/internal/domain"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase creates a new database connection
func NewDatabase(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := cfg.ConnectionString()

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// HealthCheck pings the database with a bounded context
func HealthCheck(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// HealthCheckWithStats pings the database and returns connection pool stats
func HealthCheckWithStats(ctx context.Context, db *gorm.DB) (sql.DBStats, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return sql.DBStats{}, fmt.Errorf("failed to get database instance: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return sql.DBStats{}, fmt.Errorf("database ping failed: %w", err)
	}
	return sqlDB.Stats(), nil
}

// Models returns every persisted model in dependency order. Parents precede
// dependents so AutoMigrate can create foreign keys in one pass.
func Models() []interface{} {
	return []interface{}{
		// identity and organization
		&domain.Department{},
		&domain.Team{},
		&domain.Profile{},
		&domain.Module{},
		&domain.ModuleField{},
		&domain.ModuleRecord{},
		&domain.ModuleRecordAssignment{},
		&domain.Role{},
		&domain.Permission{},
		&domain.RolePermission{},
		&domain.UserRole{},
		&domain.Vertical{},
		&domain.UserVertical{},

		// crm
		&domain.Contact{},
		&domain.Company{},
		&domain.CompanyContact{},
		&domain.Lead{},
		&domain.Pipeline{},
		&domain.Stage{},
		&domain.Opportunity{},
		&domain.Quotation{},
		&domain.Call{},
		&domain.CallNote{},
		&domain.ProductCollection{},
		&domain.Product{},
		&domain.ProductVariant{},
		&domain.StatusHistory{},

		// work management
		&domain.Task{},
		&domain.Subtask{},
		&domain.TaskAssignee{},
		&domain.Deliverable{},
		&domain.Attachment{},
		&domain.Comment{},
		&domain.Ticket{},
		&domain.TicketAssignment{},
		&domain.MessageThread{},
		&domain.ThreadParticipant{},
		&domain.Message{},
		&domain.Event{},
		&domain.EventParticipant{},
		&domain.Document{},
		&domain.DocumentAssignment{},
		&domain.Notification{},
		&domain.NotificationPreference{},

		// hr
		&domain.Employee{},
		&domain.AttendanceSession{},
		&domain.AttendanceRecord{},
		&domain.LeaveRequest{},

		// shared
		&domain.VaultDocument{},
		&domain.VaultPassword{},
		&domain.VaultCard{},
		&domain.Subscription{},
		&domain.SubscriptionRenewal{},
		&domain.SubscriptionUser{},
		&domain.Announcement{},
		&domain.AnnouncementView{},
		&domain.ActivityEvent{},
		&domain.EnumOption{},
		&domain.NumberSequence{},
	}
}

// AutoMigrate runs automatic migrations (for development only)
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
