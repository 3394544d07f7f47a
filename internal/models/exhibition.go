// internal/models/exhibition.go
package models

import (
	"time"
)

// Exhibition is a curated set of artworks. Curator holds the curating user's
// display name snapshotted at creation time. CuratorID may be nil on legacy
// rows; such exhibitions are editable by any teacher.
type Exhibition struct {
	ID          string           `json:"id" gorm:"primaryKey;size:64"`
	Title       string           `json:"title" gorm:"size:255;not null"`
	Description string           `json:"description" gorm:"type:text"`
	Curator     string           `json:"curator" gorm:"size:100"`
	CuratorID   *string          `json:"curatorId" gorm:"column:curator_id;size:64;index"`
	CoverImage  string           `json:"coverImage" gorm:"size:500"`
	Status      ExhibitionStatus `json:"status" gorm:"type:varchar(20);default:'draft';index"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`

	// Member artwork ids, assembled from ExhibitionArtwork rows.
	Artworks     []string `json:"artworks" gorm:"-"`
	ArtworkCount int      `json:"artworkCount" gorm:"-"`
}

// OwnedBy reports whether the exhibition has the given user as its curator.
func (e *Exhibition) OwnedBy(userID string) bool {
	return e.CuratorID != nil && *e.CuratorID == userID
}

// ExhibitionArtwork is the many-to-many membership row between exhibitions
// and artworks.
type ExhibitionArtwork struct {
	ExhibitionID string    `json:"exhibitionId" gorm:"primaryKey;size:64"`
	ArtworkID    string    `json:"artworkId" gorm:"primaryKey;size:64"`
	AddedAt      time.Time `json:"addedAt"`
}
