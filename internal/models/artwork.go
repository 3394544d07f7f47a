// internal/models/artwork.go
package models

import (
	"strings"
	"time"
)

// Artwork is a single uploaded or AI-generated piece. Artist holds the
// uploader's display name as a snapshot taken at upload time; renaming the
// user later intentionally does not rewrite past artworks. ArtistID is the
// authoritative owner reference and may be empty on legacy rows where the
// Artist column encoded "<type>_<id>" instead.
type Artwork struct {
	ID            string    `json:"id" gorm:"primaryKey;size:64"`
	Title         string    `json:"title" gorm:"size:255;not null"`
	Artist        string    `json:"artist" gorm:"size:100;not null"`
	ArtistID      string    `json:"artistId" gorm:"column:artist_id;size:64;index"`
	Description   string    `json:"desc" gorm:"column:description;type:text"`
	Image         string    `json:"image" gorm:"size:500;not null"`
	Prompt        string    `json:"prompt,omitempty" gorm:"type:text"`
	UploadedAt    time.Time `json:"uploadedAt" gorm:"index"`
	InShowcase    bool      `json:"inShowcase" gorm:"index"`
	IsAIGenerated bool      `json:"isAIGenerated"`
}

// LegacyArtistID extracts the owner id from the historical "<type>_<id>"
// Artist encoding. Returns "" when the row carries no such encoding.
func (a *Artwork) LegacyArtistID() string {
	if a.ArtistID != "" || !strings.Contains(a.Artist, "_") {
		return ""
	}
	parts := strings.SplitN(a.Artist, "_", 2)
	if len(parts) != 2 || parts[1] == "" {
		return ""
	}
	return parts[1]
}

// UserUpload records upload provenance. It mirrors artwork creation but is
// not authoritative for ownership; ArtistID on the artwork is.
type UserUpload struct {
	UserID     string    `json:"userId" gorm:"primaryKey;size:64"`
	ArtworkID  string    `json:"artworkId" gorm:"primaryKey;size:64"`
	UploadedAt time.Time `json:"uploadedAt"`
}
