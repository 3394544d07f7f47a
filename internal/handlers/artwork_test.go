// internal/handlers/artwork_test.go
package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artstylelab/backend/internal/models"
)

func TestUploadArtworkDefaults(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "20250001", "Alice", "secret", "student")

	w := env.doMultipart(t, "/api/gallery", map[string]string{
		"user": "20250001",
	}, "image", "art.png", []byte("png-bytes"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var artwork models.Artwork
	env.decodeData(t, w, &artwork)

	assert.Equal(t, "Untitled", artwork.Title)
	assert.Equal(t, "Student Submission", artwork.Description)
	assert.Equal(t, "Alice", artwork.Artist)
	assert.Equal(t, "20250001", artwork.ArtistID)
	assert.True(t, artwork.InShowcase)
	assert.False(t, artwork.IsAIGenerated)
	assert.NotEmpty(t, artwork.Image)
}

func TestUploadArtworkOptOutOfShowcase(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "20250001", "Alice", "secret", "student")

	for _, optOut := range []string{"false", "0"} {
		w := env.doMultipart(t, "/api/gallery", map[string]string{
			"user":         "20250001",
			"title":        "Private",
			"addToGallery": optOut,
		}, "image", "art.png", []byte("png-bytes"))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var artwork models.Artwork
		env.decodeData(t, w, &artwork)
		assert.False(t, artwork.InShowcase)
	}
}

func TestUploadArtworkValidation(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "20250001", "Alice", "secret", "student")

	// No file.
	w := env.doMultipart(t, "/api/gallery", map[string]string{
		"user": "20250001",
	}, "", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// No user.
	w = env.doMultipart(t, "/api/gallery", nil, "image", "art.png", []byte("png-bytes"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown user.
	w = env.doMultipart(t, "/api/gallery", map[string]string{
		"user": "99999999",
	}, "image", "art.png", []byte("png-bytes"))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListArtworksNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "20250001", "Alice", "secret", "student")

	first := env.uploadArtwork(t, "20250001", "First")
	second := env.uploadArtwork(t, "20250001", "Second")

	w := env.doJSON(t, http.MethodGet, "/api/gallery", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var artworks []models.Artwork
	env.decodeData(t, w, &artworks)
	require.Len(t, artworks, 2)
	assert.Equal(t, second, artworks[0].ID)
	assert.Equal(t, first, artworks[1].ID)
}

func TestGetArtworkNotFound(t *testing.T) {
	env := newTestEnv(t)

	w := env.doJSON(t, http.MethodGet, "/api/gallery/missing", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateArtwork(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "20250001", "Alice", "secret", "student")
	id := env.uploadArtwork(t, "20250001", "Original")

	w := env.doJSON(t, http.MethodPut, "/api/gallery/"+id, gin.H{
		"title":      "Renamed",
		"desc":       "New description",
		"inShowcase": false,
	}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var artwork models.Artwork
	env.decodeData(t, w, &artwork)
	assert.Equal(t, "Renamed", artwork.Title)
	assert.Equal(t, "New description", artwork.Description)
	assert.False(t, artwork.InShowcase)

	// Fields left out of the payload stay untouched.
	w = env.doJSON(t, http.MethodPut, "/api/gallery/"+id, gin.H{
		"inShowcase": true,
	}, token)
	require.Equal(t, http.StatusOK, w.Code)
	env.decodeData(t, w, &artwork)
	assert.Equal(t, "Renamed", artwork.Title)
	assert.True(t, artwork.InShowcase)
}

func TestUpdateArtworkAuthz(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "20250001", "Alice", "secret", "student")
	bobToken := env.register(t, "20250002", "Bob", "secret", "student")
	adminToken := env.login(t, "admin", "admin123")
	id := env.uploadArtwork(t, "20250001", "Mine")

	// A stranger is rejected.
	w := env.doJSON(t, http.MethodPut, "/api/gallery/"+id, gin.H{"title": "Stolen"}, bobToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// An admin may edit anyone's artwork.
	w = env.doJSON(t, http.MethodPut, "/api/gallery/"+id, gin.H{"title": "Moderated"}, adminToken)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// No identity at all is unauthorized.
	w = env.doJSON(t, http.MethodPut, "/api/gallery/"+id, gin.H{"title": "Anon"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDeleteArtworkRemovesMemberships(t *testing.T) {
	env := newTestEnv(t)
	aliceToken := env.register(t, "20250001", "Alice", "secret", "student")
	teacherToken := env.register(t, "1000001", "Prof", "secret", "teacher")
	id := env.uploadArtwork(t, "20250001", "Doomed")
	exhibitionID := env.createExhibition(t, teacherToken, "Spring Show")

	w := env.doJSON(t, http.MethodPost, "/api/exhibitions/"+exhibitionID+"/artwork/"+id, nil, teacherToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.doJSON(t, http.MethodDelete, "/api/gallery/"+id, nil, aliceToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.doJSON(t, http.MethodGet, "/api/gallery/"+id, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.doJSON(t, http.MethodGet, "/api/exhibitions/"+exhibitionID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var exhibition struct {
		Artworks []string `json:"artworks"`
	}
	env.decodeData(t, w, &exhibition)
	assert.Empty(t, exhibition.Artworks)
}

func TestDeleteArtworkAuthz(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "20250001", "Alice", "secret", "student")
	bobToken := env.register(t, "20250002", "Bob", "secret", "student")
	id := env.uploadArtwork(t, "20250001", "Mine")

	w := env.doJSON(t, http.MethodDelete, "/api/gallery/"+id, nil, bobToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.doJSON(t, http.MethodDelete, "/api/gallery/missing", nil, bobToken)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWorksReturnsOwnArtworks(t *testing.T) {
	env := newTestEnv(t)
	aliceToken := env.register(t, "20250001", "Alice", "secret", "student")
	env.register(t, "20250002", "Bob", "secret", "student")

	mine := env.uploadArtwork(t, "20250001", "Mine")
	env.uploadArtwork(t, "20250002", "Not mine")

	w := env.doJSON(t, http.MethodGet, "/api/works?user=20250001", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var artworks []models.Artwork
	env.decodeData(t, w, &artworks)
	require.Len(t, artworks, 1)
	assert.Equal(t, mine, artworks[0].ID)

	// Without a query filter the full repaired listing comes back, even for
	// a token-authenticated caller.
	w = env.doJSON(t, http.MethodGet, "/api/works", nil, aliceToken)
	require.Equal(t, http.StatusOK, w.Code)
	env.decodeData(t, w, &artworks)
	assert.Len(t, artworks, 2)
}

func TestDeleteArtworkWithBodyCaller(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "20250001", "Alice", "secret", "student")
	id := env.uploadArtwork(t, "20250001", "Mine")

	// Legacy clients carry the caller id in the DELETE body, no token.
	w := env.doJSON(t, http.MethodDelete, "/api/gallery/"+id, gin.H{"user": "20250001"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.doJSON(t, http.MethodGet, "/api/gallery/"+id, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWorksRepairsLegacyArtistEncoding(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "20250001", "Alice", "secret", "student")
	aliceToken := env.login(t, "20250001", "secret")

	// Legacy rows carry no artist id and pack "<type>_<id>" into the artist
	// column instead.
	legacy := models.Artwork{
		ID:     "legacy1",
		Title:  "Old Piece",
		Artist: "student_20250001",
		Image:  "/uploads/old.png",
	}
	require.NoError(t, env.db.Create(&legacy).Error)

	w := env.doJSON(t, http.MethodGet, "/api/works", nil, aliceToken)
	require.Equal(t, http.StatusOK, w.Code)

	var artworks []models.Artwork
	env.decodeData(t, w, &artworks)
	require.Len(t, artworks, 1)
	assert.Equal(t, "legacy1", artworks[0].ID)
	assert.Equal(t, "20250001", artworks[0].ArtistID)
	assert.Equal(t, "Alice", artworks[0].Artist)
}

func TestArtworkAliasRoutes(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "20250001", "Alice", "secret", "student")
	id := env.uploadArtwork(t, "20250001", "Aliased")

	w := env.doJSON(t, http.MethodGet, "/api/artwork/"+id, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.doJSON(t, http.MethodGet, "/api/artwork", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}
