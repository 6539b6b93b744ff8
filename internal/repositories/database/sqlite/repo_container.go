package sqlite

import (
	"database/sql"
	"errors"

	"github.com/finage-app/finage_core/internal/apperrors"
	portsrepo "github.com/finage-app/finage_core/internal/core/ports/repositories"
)

func isNotFound(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound)
}

// NewRepositoryProvider wires all SQLite-backed repositories over a shared connection.
func NewRepositoryProvider(db *sql.DB) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		RecordRepo:       newSQLiteRecordRepository(db),
		SettingsRepo:     newSQLiteSettingsRepository(db),
		SubscriptionRepo: newSQLiteSubscriptionRepository(db),
	}
}
