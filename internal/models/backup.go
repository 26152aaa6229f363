package models

import "time"

// Backup is a point-in-time copy of the enrollment workbook.
type Backup struct {
	ID        uint   `gorm:"primaryKey"`
	FileName  string `gorm:"size:255;uniqueIndex;not null"`
	FilePath  string `gorm:"size:1024;not null"`
	Size      int64
	Rows      int
	Encrypted bool
	CreatedAt time.Time
}
