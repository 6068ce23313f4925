package models

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserProfile_NormalizeDerivesFullName(t *testing.T) {
	profile := &UserProfile{FirstName: "Jane", LastName: "Doe"}
	profile.Normalize()

	assert.Equal(t, "Jane Doe", profile.FullName)
	assert.NotNil(t, profile.Skills)
}

func TestUserProfile_NormalizeKeepsExplicitFullName(t *testing.T) {
	profile := &UserProfile{FirstName: "Jane", LastName: "Doe", FullName: "Jane Q. Doe"}
	profile.Normalize()

	assert.Equal(t, "Jane Q. Doe", profile.FullName)
}

func TestUserProfile_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.json")

	original := &UserProfile{
		FirstName:         "Jane",
		LastName:          "Doe",
		Email:             "jane@example.com",
		Phone:             "5551234567",
		City:              "Austin",
		State:             "TX",
		Skills:            []string{"Go", "SQL"},
		WorkAuthorized:    true,
		WillingToRelocate: true,
	}

	assert.NoError(t, SaveProfile(original, path))

	loaded, err := LoadProfile(path)
	assert.NoError(t, err)
	assert.Equal(t, "Jane Doe", loaded.FullName)
	assert.Equal(t, original.Email, loaded.Email)
	assert.Equal(t, original.Skills, loaded.Skills)
	assert.True(t, loaded.WorkAuthorized)
}

func TestUserProfile_LoadMissingFileFails(t *testing.T) {
	_, err := LoadProfile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestUserProfile_DisplayLocation(t *testing.T) {
	assert.Equal(t, "Austin, TX", (&UserProfile{City: "Austin", State: "TX"}).DisplayLocation())
	assert.Equal(t, "Austin", (&UserProfile{City: "Austin"}).DisplayLocation())
	assert.Equal(t, "", (&UserProfile{}).DisplayLocation())
}
