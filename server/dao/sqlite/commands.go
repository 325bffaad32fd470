package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dekarrin/tqinterp/server/dao"
	"github.com/google/uuid"
)

type CommandsDB struct {
	db *sql.DB
}

func (repo *CommandsDB) init(fk bool) error {
	stmt := `CREATE TABLE IF NOT EXISTS commands (
		id TEXT NOT NULL PRIMARY KEY,
		session_id TEXT NOT NULL`

	if fk {
		stmt += ` REFERENCES sessions(id) ON DELETE CASCADE ON UPDATE CASCADE`
	}

	stmt += `,
		input TEXT NOT NULL,
		output TEXT NOT NULL,
		error_kind TEXT NOT NULL,
		dispatches TEXT NOT NULL,
		created INTEGER NOT NULL
	);`
	_, err := repo.db.Exec(stmt)
	if err != nil {
		return wrapDBError(err)
	}
	return nil
}

func (repo *CommandsDB) Create(ctx context.Context, c dao.Command) (dao.Command, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Command{}, fmt.Errorf("could not generate ID: %w", err)
	}

	stmt, err := repo.db.Prepare(`INSERT INTO commands (id, session_id, input, output, error_kind, dispatches, created) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return dao.Command{}, wrapDBError(err)
	}
	defer stmt.Close()

	now := time.Now()

	_, err = stmt.ExecContext(
		ctx,
		convertToDB_UUID(newUUID),
		convertToDB_UUID(c.SessionID),
		c.Input,
		c.Output,
		c.ErrorKind,
		convertToDB_Trace(c.Dispatches),
		convertToDB_Time(now),
	)
	if err != nil {
		return dao.Command{}, wrapDBError(err)
	}

	return repo.GetByID(ctx, newUUID)
}

// GetAllBySession returns the commands of the session in the order they were
// created. A session with no commands gives an empty slice.
func (repo *CommandsDB) GetAllBySession(ctx context.Context, sessionID uuid.UUID) ([]dao.Command, error) {
	rows, err := repo.db.QueryContext(ctx, `SELECT id, input, output, error_kind, dispatches, created FROM commands WHERE session_id = ? ORDER BY rowid;`,
		convertToDB_UUID(sessionID),
	)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	all := []dao.Command{}

	for rows.Next() {
		c := dao.Command{SessionID: sessionID}
		var id string
		var dispatches string
		var created int64
		err = rows.Scan(
			&id,
			&c.Input,
			&c.Output,
			&c.ErrorKind,
			&dispatches,
			&created,
		)
		if err != nil {
			return nil, wrapDBError(err)
		}

		err = convertFromDB_UUID(id, &c.ID)
		if err != nil {
			return all, fmt.Errorf("stored ID %q is invalid: %w", id, err)
		}
		err = convertFromDB_Trace(dispatches, &c.Dispatches)
		if err != nil {
			return all, fmt.Errorf("stored dispatches for %s are invalid: %w", id, err)
		}
		convertFromDB_Time(created, &c.Created)

		all = append(all, c)
	}

	if err := rows.Err(); err != nil {
		return all, wrapDBError(err)
	}

	return all, nil
}

func (repo *CommandsDB) GetByID(ctx context.Context, id uuid.UUID) (dao.Command, error) {
	c := dao.Command{
		ID: id,
	}
	var seshID string
	var dispatches string
	var created int64

	row := repo.db.QueryRowContext(ctx, `SELECT session_id, input, output, error_kind, dispatches, created FROM commands WHERE id = ?;`,
		convertToDB_UUID(id),
	)
	err := row.Scan(
		&seshID,
		&c.Input,
		&c.Output,
		&c.ErrorKind,
		&dispatches,
		&created,
	)
	if err != nil {
		return c, wrapDBError(err)
	}

	err = convertFromDB_UUID(seshID, &c.SessionID)
	if err != nil {
		return c, fmt.Errorf("stored session ID %q is invalid: %w", seshID, err)
	}
	err = convertFromDB_Trace(dispatches, &c.Dispatches)
	if err != nil {
		return c, fmt.Errorf("stored dispatches for %s are invalid: %w", id, err)
	}
	convertFromDB_Time(created, &c.Created)

	return c, nil
}

func (repo *CommandsDB) Delete(ctx context.Context, id uuid.UUID) (dao.Command, error) {
	curVal, err := repo.GetByID(ctx, id)
	if err != nil {
		return curVal, err
	}

	res, err := repo.db.ExecContext(ctx, `DELETE FROM commands WHERE id = ?`, convertToDB_UUID(id))
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

// Close does nothing; the connection is shared by the whole store and closed
// with it.
func (repo *CommandsDB) Close() error {
	return nil
}
