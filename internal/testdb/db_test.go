package testdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskDatabaseURL(t *testing.T) {
	masked := MaskDatabaseURL("postgres://app:secret@db:5432/clinic")
	assert.NotContains(t, masked, "secret")
	assert.Contains(t, masked, "app:")
	assert.Contains(t, masked, "@db:5432/clinic")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"without user", "postgres://db:5432/clinic", "postgres://db:5432/clinic"},
		{"unparseable", "postgres://%zz", "invalid-url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MaskDatabaseURL(tt.in))
		})
	}
}

func TestGetTestDatabaseURL_Precedence(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://fallback")
	t.Setenv("TEST_DATABASE_URL", "postgres://preferred")
	assert.Equal(t, "postgres://preferred", GetTestDatabaseURL())

	t.Setenv("TEST_DATABASE_URL", "")
	assert.Equal(t, "postgres://fallback", GetTestDatabaseURL())

	t.Setenv("DATABASE_URL", "")
	assert.True(t, ShouldSkipDatabaseTest())
}
