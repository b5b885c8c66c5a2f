package models

import "time"

// PackageTier is one of the sellable bundles (basic/premium/ultimate). The
// catalog is seeded at startup and treated as configuration; the feature
// flags drive which sections a generated page may show.
type PackageTier struct {
	ID                uint      `json:"-" gorm:"primaryKey"`
	Code              string    `json:"id" gorm:"uniqueIndex;not null"`
	Name              string    `json:"name" gorm:"not null"`
	Description       string    `json:"description"`
	Price             float64   `json:"price" gorm:"not null"`
	IncludesPhotos    bool      `json:"includesPhotos"`
	IncludesVideos    bool      `json:"includesVideos"`
	IncludesColor     bool      `json:"includesColor"`
	IncludesLoveStory bool      `json:"includesLoveStory"`
	IncludesMusic     bool      `json:"includesMusic"`
	IsActive          bool      `json:"-" gorm:"default:true"`
	CreatedAt         time.Time `json:"-"`
	UpdatedAt         time.Time `json:"-"`
}
