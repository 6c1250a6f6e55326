package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"vetclinic-service/config"
	"vetclinic-service/internal/domain"
	"vetclinic-service/internal/domain/appointment"
	"vetclinic-service/internal/domain/customer"
	"vetclinic-service/internal/domain/doctor"
)

func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:      gormlogger.Default.LogMode(gormlogger.Silent),
		PrepareStmt: true,
		// Needed so a unique-index violation surfaces as gorm.ErrDuplicatedKey.
		TranslateError: true,
	}

	db, err := gorm.Open(postgres.New(postgres.Config{DSN: cfg.DSN()}), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("running database migrations")
	start := time.Now()

	models := []any{
		&customer.Customer{},
		&doctor.Doctor{},
		&doctor.VisitDetails{},
		&appointment.Appointment{},
		&domain.AuditLog{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto-migrating models: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("creating indexes: %w", err)
	}

	log.Info("migrations completed", zap.Duration("duration", time.Since(start)))
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		// Rejects the loser of a booking race at insert time; the
		// availability check and the insert are not atomic.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_doctor_timestamp ON appointments (doctor_id, timestamp)`,
		// The conflict-window query is a range scan over timestamp.
		`CREATE INDEX IF NOT EXISTS idx_appointments_customer_timestamp ON appointments (customer_id, timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_appointments_doctor_date ON appointments (doctor_id, scheduled_date)`,
	}

	for _, idx := range indexes {
		if err := db.Exec(idx).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedVisitDetails gives every doctor without a timing profile a default
// one built from the configured visit duration.
func SeedVisitDetails(db *gorm.DB, cfg config.AppointmentConfig, log *zap.Logger) error {
	var doctors []doctor.Doctor
	err := db.
		Where("id NOT IN (?)", db.Model(&doctor.VisitDetails{}).Select("doctor_id")).
		Find(&doctors).Error
	if err != nil {
		return fmt.Errorf("finding doctors without visit details: %w", err)
	}

	for _, d := range doctors {
		vd := doctor.VisitDetails{
			DoctorID:          d.ID,
			VisitDurationMins: cfg.DefaultVisitDurationMins,
			OpeningAt:         domain.NewTimeOfDay(8, 0),
			ClosingAt:         domain.NewTimeOfDay(16, 0),
		}
		if err := db.Create(&vd).Error; err != nil {
			return fmt.Errorf("seeding visit details for doctor %d: %w", d.ID, err)
		}
		log.Info("seeded default visit details",
			zap.Int64("doctor_id", d.ID),
			zap.Int("visit_duration_mins", cfg.DefaultVisitDurationMins),
		)
	}
	return nil
}
