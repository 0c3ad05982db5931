// Package gormstore persists todos through gorm on sqlite or postgres.
package gormstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/buker/go-records/internal/models"
	"github.com/buker/go-records/internal/store"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// TodoStore is a TodoStore backed by a gorm session.
type TodoStore struct {
	db *gorm.DB
}

var _ store.TodoStore = (*TodoStore)(nil)

// Open connects with the named driver and migrates the todos table.
func Open(driver, dsn string) (*TodoStore, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.New(log.StandardLogger(), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	if err := db.AutoMigrate(&models.Todo{}); err != nil {
		return nil, fmt.Errorf("migrate todos: %w", err)
	}

	log.WithField("driver", driver).Info("Connected to todo database")
	return &TodoStore{db: db}, nil
}

// List returns every todo ordered by id.
func (s *TodoStore) List(ctx context.Context) ([]models.Todo, error) {
	todos := []models.Todo{}
	if err := s.db.WithContext(ctx).Order("id").Find(&todos).Error; err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

// Get returns the todo with the given id.
func (s *TodoStore) Get(ctx context.Context, id int64) (models.Todo, error) {
	var todo models.Todo
	err := s.db.WithContext(ctx).First(&todo, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Todo{}, fmt.Errorf("todo %d: %w", id, store.ErrNotFound)
	}
	if err != nil {
		return models.Todo{}, fmt.Errorf("get todo %d: %w", id, err)
	}
	return todo, nil
}

// Filter returns the todos matching every set field of filter, ordered by id.
func (s *TodoStore) Filter(ctx context.Context, filter models.TodoFilter) ([]models.Todo, error) {
	q := s.db.WithContext(ctx).Order("id")
	if filter.Priority != nil {
		q = q.Where("priority = ?", *filter.Priority)
	}
	if filter.Complete != nil {
		q = q.Where("complete = ?", *filter.Complete)
	}

	todos := []models.Todo{}
	if err := q.Find(&todos).Error; err != nil {
		return nil, fmt.Errorf("filter todos: %w", err)
	}
	return todos, nil
}

// Create inserts todo; the database assigns its id.
func (s *TodoStore) Create(ctx context.Context, todo models.Todo) (models.Todo, error) {
	todo.ID = 0
	if err := s.db.WithContext(ctx).Create(&todo).Error; err != nil {
		return models.Todo{}, fmt.Errorf("create todo: %w", err)
	}
	return todo, nil
}

// Replace overwrites every column of the todo with the given id.
func (s *TodoStore) Replace(ctx context.Context, id int64, todo models.Todo) (models.Todo, error) {
	todo.ID = id
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Todo
		if err := tx.Select("id").First(&existing, id).Error; err != nil {
			return err
		}
		return tx.Save(&todo).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Todo{}, fmt.Errorf("todo %d: %w", id, store.ErrNotFound)
	}
	if err != nil {
		return models.Todo{}, fmt.Errorf("replace todo %d: %w", id, err)
	}
	return todo, nil
}

// Delete removes the todo with the given id.
func (s *TodoStore) Delete(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&models.Todo{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete todo %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("todo %d: %w", id, store.ErrNotFound)
	}
	return nil
}

// Count returns the number of todos.
func (s *TodoStore) Count(ctx context.Context) (int, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Todo{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count todos: %w", err)
	}
	return int(n), nil
}

// Close releases the underlying connection pool.
func (s *TodoStore) Close(_ context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
