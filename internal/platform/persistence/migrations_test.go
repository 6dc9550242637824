package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunMigrations_InputValidation(t *testing.T) {
	t.Run("EmptyMigrationsPath", func(t *testing.T) {
		err := RunMigrations("postgres://localhost:5432/db", "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "migrations path cannot be empty")
	})

	t.Run("EmptyDatabaseURL", func(t *testing.T) {
		err := RunMigrations("", "migrations/postgres")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "database URL cannot be empty")
	})
}
