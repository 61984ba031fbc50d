package models

import (
	"database/sql"
	"time"
)

// Member is the optional person an invoice or transaction points at.
// Membership management lives outside the ledger; rows are upserted
// from verified JWT claims by the auth middleware.
type Member struct {
	ID        int64          `json:"id" gorm:"primaryKey"`
	UID       string         `json:"uid"`
	OrgID     int64          `json:"org_id"`
	Email     string         `json:"email"`
	Role      string         `json:"role"`
	State     string         `json:"state"`
	Username  sql.NullString `json:"username"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
