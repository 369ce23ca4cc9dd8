// Package repomanager vends repositories bound to a database handle, so a
// service can run the same repository code against a pool or inside a
// transaction.
package repomanager

import (
	"github.com/dmitrijs2005/studentverse/internal/dbx"
	"github.com/dmitrijs2005/studentverse/internal/repositories/journal"
	"github.com/dmitrijs2005/studentverse/internal/repositories/users"
	"github.com/dmitrijs2005/studentverse/internal/storage"
)

type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Journal(db dbx.DBTX) journal.Repository
}

// SQLRepositoryManager vends the SQL repositories for one dialect.
type SQLRepositoryManager struct {
	dialect storage.Dialect
}

func NewSQLRepositoryManager(dialect storage.Dialect) *SQLRepositoryManager {
	return &SQLRepositoryManager{dialect: dialect}
}

// Users returns a users.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLRepository(db, m.dialect)
}

// Journal returns a journal.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Journal(db dbx.DBTX) journal.Repository {
	return journal.NewSQLRepository(db, m.dialect)
}
