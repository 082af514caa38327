package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
	}{
		{"", CategoryWeb},
		{"all", CategoryWeb},
		{" Web ", CategoryWeb},
		{"images", CategoryImage},
		{"image", CategoryImage},
		{"NEWS", CategoryNews},
	}
	for _, tt := range tests {
		got, err := ParseCategory(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseCategory("video")
	assert.Error(t, err)
}

func TestPreferencesFingerprint(t *testing.T) {
	p := DefaultPreferences()
	assert.Equal(t, "region=in;safe=1;per=10", p.Fingerprint())

	p.Region = "US"
	p.SafeSearch = false
	p.PageSize = 20
	assert.Equal(t, "region=us;safe=0;per=20", p.Fingerprint())
	assert.Equal(t, p.Fingerprint(), p.Fingerprint())
}

func TestSavedItemFromResult(t *testing.T) {
	item := SavedItemFromResult(Result{Type: CategoryNews, Title: "t", Link: "https://a", Source: "Reuters"})
	assert.Equal(t, "Reuters", item.Snippet)
	assert.Equal(t, CategoryNews, item.Type)
	assert.True(t, item.SavedAt.IsZero())
}
