package database

import (
	"testing"

	modelspkg "pinfood/internal/models"

	"github.com/stretchr/testify/require"
)

func TestPersistentModels_IncludesEngagementRelations(t *testing.T) {
	var hasLike, hasSave bool
	for _, model := range PersistentModels() {
		switch model.(type) {
		case *modelspkg.Like:
			hasLike = true
		case *modelspkg.SavedPost:
			hasSave = true
		}
	}
	require.True(t, hasLike, "PersistentModels should include Like")
	require.True(t, hasSave, "PersistentModels should include SavedPost")
}
