package database

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/customeros/replycraft/config"
)

func InitDatabase(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := NewConnection(&DatabaseConfig{
		DBName:          cfg.DBName,
		Host:            cfg.Host,
		Port:            cfg.Port,
		User:            cfg.User,
		Password:        cfg.Password,
		MaxConn:         cfg.MaxConn,
		MaxIdleConn:     cfg.MaxIdleConn,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
		LogLevel:        cfg.LogLevel,
		SSLMode:         cfg.SSLMode,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to the database")
	}

	return db, nil
}
