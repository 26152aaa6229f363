package models

import "time"

// AuditLog records every request served by the dashboard.
type AuditLog struct {
	ID        uint   `gorm:"primaryKey"`
	Method    string `gorm:"size:16"`
	Path      string `gorm:"size:255"`
	Query     string `gorm:"size:1024"`
	Status    int    `gorm:"index"`
	IP        string `gorm:"size:64"`
	UserAgent string `gorm:"size:255"`
	Metadata  string `gorm:"type:text"` // AES-encrypted POST body, base64
	LatencyMs int64
	CreatedAt time.Time `gorm:"index"`
}
