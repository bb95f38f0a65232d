package repositories

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/maxaizer/job-intel/internal/entities"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DbContext struct {
	DB *gorm.DB
}

func NewDbContext(connectionString string) (*DbContext, error) {
	db, err := gorm.Open(sqlite.Open(connectionString), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}

	return &DbContext{DB: db}, nil
}

func (c *DbContext) Migrate() error {
	err := c.DB.AutoMigrate(entities.JobRecord{})
	if err != nil {
		return fmt.Errorf("failed to migrate JobRecord entity: %w", err)
	}

	err = c.DB.AutoMigrate(entities.StoredPreferences{})
	if err != nil {
		return fmt.Errorf("failed to migrate StoredPreferences entity: %w", err)
	}

	err = c.DB.AutoMigrate(entities.NotifiedAlert{})
	if err != nil {
		return fmt.Errorf("failed to migrate NotifiedAlert entity: %w", err)
	}

	if err = c.DB.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_user_job_alert ON notified_alerts (user_id, job_id, alert_type);").
		Error; err != nil {
		return fmt.Errorf("failed to create alert index: %w", err)
	}

	return nil
}

func (c *DbContext) Close() error {
	db, err := c.DB.DB()
	if err != nil {
		return err
	}

	return db.Close()
}
