package models

import (
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrConflict          = errors.New("record conflict")
	ErrInvalidTransition = errors.New("invalid transition")
)

// WrapNotFound maps gorm's record-not-found onto the ledger error so
// callers never depend on the ORM.
func WrapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}

	return err
}

func NullableID(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}

	return &v.Int64
}

func NullableTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}

	return &v.Time
}
