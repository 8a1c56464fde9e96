package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/customeros/replycraft/config"
	"github.com/customeros/replycraft/interfaces"
	"github.com/customeros/replycraft/internal/models"
)

type Repositories struct {
	EmailThreadRepository    interfaces.EmailThreadRepository
	EmailMessageRepository   interfaces.EmailMessageRepository
	GeneratedReplyRepository interfaces.GeneratedReplyRepository
}

func InitRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		EmailThreadRepository:    NewEmailThreadRepository(db),
		EmailMessageRepository:   NewEmailMessageRepository(db),
		GeneratedReplyRepository: NewGeneratedReplyRepository(db),
	}
}

// AutoMigrate creates or updates the email_threads, email_messages and
// generated_replies tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.EmailThread{},
		&models.EmailMessage{},
		&models.GeneratedReply{},
	)
}

func MigrateDB(dbConfig *config.DatabaseConfig, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	sqlDB.SetMaxOpenConns(5)

	err = AutoMigrate(db)

	sqlDB.SetMaxIdleConns(dbConfig.MaxIdleConn)
	sqlDB.SetMaxOpenConns(dbConfig.MaxConn)
	sqlDB.SetConnMaxLifetime(time.Duration(dbConfig.ConnMaxLifetime) * time.Minute)

	return err
}
