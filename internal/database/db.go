package database

import (
	"context"
	"fmt"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres" // PostgreSQL dialect
	_ "github.com/mattn/go-sqlite3"              // SQLite driver

	"huddle/internal/models"
)

// Store reads the diner dataset from a SQL database
type Store struct {
	db *gorm.DB
}

// Open connects to the database and makes sure the dataset tables exist.
// driver is "sqlite3" or "postgres".
func Open(driver, dsn string) (*Store, error) {
	db, err := gorm.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Migrate creates or updates the diners, reservations and orders tables
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Diner{}, &models.Reservation{}, &models.Order{}).Error; err != nil {
		return fmt.Errorf("migrate dataset tables: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load reads every diner with their reservations and orders, in insertion order.
func (s *Store) Load(ctx context.Context) ([]models.Diner, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var diners []models.Diner
	err := s.db.
		Preload("Reservations", func(db *gorm.DB) *gorm.DB {
			return db.Order("reservations.id")
		}).
		Preload("Reservations.Orders", func(db *gorm.DB) *gorm.DB {
			return db.Order("orders.id")
		}).
		Order("diners.id").
		Find(&diners).Error
	if err != nil {
		return nil, fmt.Errorf("load diners: %w", err)
	}
	return diners, nil
}

// Import inserts diners with their reservations and orders in one transaction.
// It is used to seed a database from a JSON dataset.
func (s *Store) Import(diners []models.Diner) error {
	tx := s.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	for i := range diners {
		diner := diners[i]
		if err := tx.Create(&diner).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("import diner %q: %w", diner.Name, err)
		}
	}

	return tx.Commit().Error
}
