// Package sqlite has a dao.Store backed by a SQLite database file.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dekarrin/rg2nfa/server/dao"
	"modernc.org/sqlite"
)

type store struct {
	dbFilename string

	db *sql.DB

	convs *ConversionsDB
}

// NewDatastore opens (creating if needed) the database in storageDir.
func NewDatastore(storageDir string) (dao.Store, error) {
	st := &store{
		dbFilename: "data.db",
	}

	fileName := filepath.Join(storageDir, st.dbFilename)

	var err error
	st.db, err = sql.Open("sqlite", fileName)
	if err != nil {
		return nil, wrapDBError(err)
	}

	st.convs = &ConversionsDB{db: st.db}
	if err := st.convs.init(); err != nil {
		st.db.Close()
		return nil, fmt.Errorf("%s: %w", st.dbFilename, err)
	}

	return st, nil
}

func (s *store) Conversions() dao.ConversionRepository {
	return s.convs
}

func (s *store) Close() error {
	err := s.db.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", s.dbFilename, err)
	}
	return nil
}

func wrapDBError(err error) error {
	sqliteErr := &sqlite.Error{}
	if errors.As(err, &sqliteErr) {
		if sqliteErr.Code() == 19 {
			return dao.ErrConstraintViolation
		}
		return fmt.Errorf("%s", sqlite.ErrorCodeString[sqliteErr.Code()])
	} else if errors.Is(err, sql.ErrNoRows) {
		return dao.ErrNotFound
	}
	return err
}
