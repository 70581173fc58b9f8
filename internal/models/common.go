package models

import "time"

// AuditFields holds standard audit information stored alongside each row.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}
