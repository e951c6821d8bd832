// Package entity defines the domain models for the symbollist feature.
package entity

import "time"

// Symbol represents a tradable market pair in the system.
// It contains the exchange pair code, a human-readable name,
// the quote asset, and display ordering.
type Symbol struct {
	ID         uint      `gorm:"primaryKey"`
	Code       string    `gorm:"size:20;not null;uniqueIndex"`
	Name       string    `gorm:"size:255;not null"`
	QuoteAsset string    `gorm:"size:20;not null"`
	IsActive   bool      `gorm:"not null;default:true"`
	SortKey    int       `gorm:"not null;default:0"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}
