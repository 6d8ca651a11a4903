package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dekarrin/rg2nfa/server/dao"
	"github.com/google/uuid"
)

type ConversionsDB struct {
	db *sql.DB
}

func (repo *ConversionsDB) init() error {
	_, err := repo.db.Exec(`CREATE TABLE IF NOT EXISTS conversions (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL,
		grammar TEXT NOT NULL,
		linearity TEXT NOT NULL,
		tbl TEXT NOT NULL,
		dropped TEXT NOT NULL,
		created INTEGER NOT NULL
	);`)
	if err != nil {
		return wrapDBError(err)
	}

	return nil
}

func (repo *ConversionsDB) Create(ctx context.Context, c dao.Conversion) (dao.Conversion, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Conversion{}, fmt.Errorf("could not generate ID: %w", err)
	}

	tbl, err := convertToDB_Table(c.Table)
	if err != nil {
		return dao.Conversion{}, fmt.Errorf("could not encode table: %w", err)
	}

	stmt, err := repo.db.Prepare(`INSERT INTO conversions (id, name, grammar, linearity, tbl, dropped, created) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return dao.Conversion{}, wrapDBError(err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(
		ctx,
		convertToDB_UUID(newUUID),
		c.Name,
		c.Grammar,
		c.Linearity,
		tbl,
		convertToDB_StringList(c.Dropped),
		convertToDB_Time(time.Now()),
	)
	if err != nil {
		return dao.Conversion{}, wrapDBError(err)
	}

	return repo.GetByID(ctx, newUUID)
}

func (repo *ConversionsDB) GetAll(ctx context.Context) ([]dao.Conversion, error) {
	rows, err := repo.db.QueryContext(ctx, `SELECT id, name, grammar, linearity, tbl, dropped, created FROM conversions ORDER BY created, rowid;`)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var all []dao.Conversion

	for rows.Next() {
		var c dao.Conversion
		var id string
		var tbl string
		var dropped string
		var created int64

		err = rows.Scan(
			&id,
			&c.Name,
			&c.Grammar,
			&c.Linearity,
			&tbl,
			&dropped,
			&created,
		)
		if err != nil {
			return nil, wrapDBError(err)
		}

		err = convertFromDB_UUID(id, &c.ID)
		if err != nil {
			return all, fmt.Errorf("stored UUID %q is invalid: %w", id, err)
		}
		err = repo.fillStored(&c, tbl, dropped, created)
		if err != nil {
			return all, err
		}

		all = append(all, c)
	}

	if err := rows.Err(); err != nil {
		return all, wrapDBError(err)
	}

	return all, nil
}

func (repo *ConversionsDB) GetByID(ctx context.Context, id uuid.UUID) (dao.Conversion, error) {
	c := dao.Conversion{
		ID: id,
	}
	var tbl string
	var dropped string
	var created int64

	row := repo.db.QueryRowContext(ctx, `SELECT name, grammar, linearity, tbl, dropped, created FROM conversions WHERE id = ?;`,
		convertToDB_UUID(id),
	)
	err := row.Scan(
		&c.Name,
		&c.Grammar,
		&c.Linearity,
		&tbl,
		&dropped,
		&created,
	)
	if err != nil {
		return c, wrapDBError(err)
	}

	err = repo.fillStored(&c, tbl, dropped, created)
	return c, err
}

func (repo *ConversionsDB) Delete(ctx context.Context, id uuid.UUID) (dao.Conversion, error) {
	curVal, err := repo.GetByID(ctx, id)
	if err != nil {
		return curVal, err
	}

	res, err := repo.db.ExecContext(ctx, `DELETE FROM conversions WHERE id = ?`,
		convertToDB_UUID(id),
	)
	if err != nil {
		return curVal, wrapDBError(err)
	}
	rowsAff, err := res.RowsAffected()
	if err != nil {
		return curVal, wrapDBError(err)
	}
	if rowsAff < 1 {
		return curVal, dao.ErrNotFound
	}

	return curVal, nil
}

func (repo *ConversionsDB) Close() error {
	return repo.db.Close()
}

func (repo *ConversionsDB) fillStored(c *dao.Conversion, tbl, dropped string, created int64) error {
	err := convertFromDB_Table(tbl, &c.Table)
	if err != nil {
		return fmt.Errorf("%w: stored table for %s: %v", dao.ErrDecodingFailure, c.ID, err)
	}
	err = convertFromDB_StringList(dropped, &c.Dropped)
	if err != nil {
		return fmt.Errorf("stored dropped list is invalid: %w", err)
	}
	err = convertFromDB_Time(created, &c.Created)
	if err != nil {
		return fmt.Errorf("stored created time %d is invalid: %w", created, err)
	}
	return nil
}
