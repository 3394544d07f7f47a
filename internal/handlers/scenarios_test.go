// internal/handlers/scenarios_test.go
package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artstylelab/backend/internal/models"
)

// A student registers, uploads, and controls their artwork's showcase
// visibility end to end.
func TestStudentUploadFlow(t *testing.T) {
	env := newTestEnv(t)

	aliceToken := env.register(t, "20250101", "Alice", "pw123456", "student")
	env.login(t, "20250101", "pw123456")
	bobToken := env.register(t, "20250102", "Bob", "pw123456", "student")

	w := env.doMultipart(t, "/api/gallery/upload", map[string]string{
		"user":  "20250101",
		"title": "Sketch1",
	}, "image", "sketch1.png", []byte("png-bytes"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var uploaded models.Artwork
	env.decodeData(t, w, &uploaded)

	w = env.doJSON(t, http.MethodGet, "/api/gallery", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var artworks []models.Artwork
	env.decodeData(t, w, &artworks)
	require.Len(t, artworks, 1)
	assert.Equal(t, "Sketch1", artworks[0].Title)
	assert.Equal(t, "20250101", artworks[0].ArtistID)

	// Another student may not pull it out of the showcase.
	w = env.doJSON(t, http.MethodPut, "/api/gallery/"+uploaded.ID, gin.H{
		"inShowcase": false,
	}, bobToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The owner may, and the flag sticks.
	w = env.doJSON(t, http.MethodPut, "/api/gallery/"+uploaded.ID, gin.H{
		"inShowcase": false,
	}, aliceToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.doJSON(t, http.MethodGet, "/api/gallery", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	env.decodeData(t, w, &artworks)
	require.Len(t, artworks, 1)
	assert.False(t, artworks[0].InShowcase)
}

// A teacher curates and publishes an exhibition; deleting a member artwork
// shrinks the published membership.
func TestTeacherExhibitionFlow(t *testing.T) {
	env := newTestEnv(t)

	env.register(t, "20250101", "Alice", "pw123456", "student")
	teacherToken := env.register(t, "1000001", "Prof", "secret", "teacher")
	adminToken := env.login(t, "admin", "admin123")

	first := env.uploadArtwork(t, "20250101", "First")
	second := env.uploadArtwork(t, "20250101", "Second")

	exhibitionID := env.createExhibition(t, teacherToken, "Spring Show")

	for _, artworkID := range []string{first, second} {
		w := env.doJSON(t, http.MethodPost, "/api/exhibitions/"+exhibitionID+"/artwork/"+artworkID, nil, teacherToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	w := env.doJSON(t, http.MethodPost, "/api/exhibitions/"+exhibitionID+"/publish", nil, teacherToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var exhibition models.Exhibition
	w = env.doJSON(t, http.MethodGet, "/api/exhibitions/"+exhibitionID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	env.decodeData(t, w, &exhibition)
	assert.Equal(t, models.ExhibitionStatusActive, exhibition.Status)
	assert.Equal(t, 2, exhibition.ArtworkCount)

	// An admin removes one referenced artwork entirely.
	w = env.doJSON(t, http.MethodDelete, "/api/gallery/"+first, nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.doJSON(t, http.MethodGet, "/api/exhibitions/"+exhibitionID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	env.decodeData(t, w, &exhibition)
	assert.Equal(t, models.ExhibitionStatusActive, exhibition.Status)
	assert.Equal(t, []string{second}, exhibition.Artworks)
	assert.Equal(t, 1, exhibition.ArtworkCount)
}
