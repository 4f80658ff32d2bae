package database

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/parathan/blog-core/internal/config"
	"github.com/parathan/blog-core/internal/models"
)

// Connect opens the MySQL connection and, when autoMigrate is set, brings the
// schema up to date.
func Connect(cfg *config.Config, autoMigrate bool) (*gorm.DB, error) {
	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}
	if autoMigrate {
		if err := migrate(db); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	return db, nil
}

func openDB(cfg *config.Config) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if cfg.IsDev() {
		logLevel = gormlogger.Info
	}
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:               cfg.Database.DSNValue(),
		DefaultStringSize: 191,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	return db, nil
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.UserModel{},
		&models.PasswordResetModel{},
		&models.MasterCategoryModel{},
		&models.CategoryModel{},
		&models.PostModel{},
		&models.ProjectModel{},
		&models.SkillModel{},
		&models.ExperienceModel{},
		&models.AboutModel{},
		&models.ContactMessageModel{},
		&models.NewsletterSubscriberModel{},
	)
}
