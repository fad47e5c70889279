package attendance

import (
	"context"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/juancarlosGilardi/flask-marcaciones/models"
)

// GormStore serializes mutations with a transaction holding a row-level
// lock (SELECT ... FOR UPDATE) for the read-check-write cycle. Requests
// that cannot take the lock within lockWait fail with ErrLockWait instead
// of queueing forever.
type GormStore struct {
	db       *gorm.DB
	lockWait time.Duration
}

func NewGormStore(db *gorm.DB, lockWait time.Duration) *GormStore {
	if lockWait <= 0 {
		lockWait = 5 * time.Second
	}
	return &GormStore{db: db, lockWait: lockWait}
}

func (s *GormStore) Mutate(ctx context.Context, email, date string, fn func(rec *models.AttendanceRecord, found bool) error) (*models.AttendanceRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, s.lockWait)
	defer cancel()

	var out models.AttendanceRecord
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec models.AttendanceRecord
		found := true
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_email = ? AND marking_date = ?", email, date).
			First(&rec).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			found = false
			rec = models.AttendanceRecord{}
		} else if err != nil {
			return err
		}

		if err := fn(&rec, found); err != nil {
			return err
		}

		if found {
			if err := tx.Save(&rec).Error; err != nil {
				return err
			}
		} else if err := tx.Create(&rec).Error; err != nil {
			return err
		}
		out = rec
		return nil
	})
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, ErrLockWait
		}
		return nil, translateStoreError(err)
	}
	return &out, nil
}

// MySQL error numbers for conditions a caller may simply retry.
const (
	mysqlLockWaitTimeout = 1205
	mysqlDeadlock        = 1213
)

// translateStoreError maps driver-level failures onto the package taxonomy:
// lock waits, deadlock aborts and expired deadlines are retryable
// (ErrLockWait); a duplicate on the (user_email, marking_date) index means
// someone else inserted today's row between our read and write, which is an
// ordinary conflict, never two rows. Business and unknown errors pass
// through unchanged.
func translateStoreError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrLockWait
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) &&
		(mysqlErr.Number == mysqlLockWaitTimeout || mysqlErr.Number == mysqlDeadlock) {
		return ErrLockWait
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &ConflictError{Reason: "a concurrent marking was recorded first, please retry"}
	}
	return err
}

func (s *GormStore) Find(ctx context.Context, email, date string) (*models.AttendanceRecord, error) {
	var rec models.AttendanceRecord
	err := s.db.WithContext(ctx).
		Where("user_email = ? AND marking_date = ?", email, date).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *GormStore) Recent(ctx context.Context, email string, limit int) ([]models.AttendanceRecord, error) {
	var recs []models.AttendanceRecord
	err := s.db.WithContext(ctx).
		Where("user_email = ?", email).
		Order("marking_date desc").
		Limit(limit).
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}
