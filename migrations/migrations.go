package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"github.com/mailslurper/settings-service/migrations/internal/m20261017"
)

func List() []*gormigrate.Migration {
	ms := []*gormigrate.Migration{
		{
			ID:       m20261017.ID,
			Migrate:  m20261017.Migrate,
			Rollback: m20261017.Rollback,
		},
	}
	return ms
}
