// internal/utils/idgen.go
package utils

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	idMu   sync.Mutex
	lastID int64
)

// GenerateTimeID returns a millisecond-timestamp id as used for artwork ids.
// Concurrent or same-millisecond calls are bumped forward so ids stay unique
// within the process.
func GenerateTimeID() string {
	idMu.Lock()
	defer idMu.Unlock()

	ms := time.Now().UnixMilli()
	if ms <= lastID {
		ms = lastID + 1
	}
	lastID = ms
	return strconv.FormatInt(ms, 10)
}

// GenerateExhibitionID returns a time id with the "ex" prefix that
// distinguishes exhibition ids from artwork ids.
func GenerateExhibitionID() string {
	return "ex" + GenerateTimeID()
}

// GenerateAIArtworkID returns an artwork id with a random suffix, used when
// several AI images are saved in one request.
func GenerateAIArtworkID() string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:9]
	return fmt.Sprintf("%s_%s", GenerateTimeID(), suffix)
}
