// Package sqlite provides a dao.Store backed by a SQLite database file using a
// pure-go driver.
package sqlite

import (
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dekarrin/rezi"
	"github.com/dekarrin/tqinterp/server/dao"
	"github.com/google/uuid"
	"modernc.org/sqlite"
)

type store struct {
	dbFilename string

	db *sql.DB

	seshes *SessionsDB
	coms   *CommandsDB
}

// NewDatastore opens the database in storageDir, creating it and its tables if
// they do not yet exist.
func NewDatastore(storageDir string) (dao.Store, error) {
	st := &store{
		dbFilename: "data.db",
	}

	fileName := filepath.Join(storageDir, st.dbFilename)

	var err error
	st.db, err = sql.Open("sqlite", fileName+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, wrapDBError(err)
	}

	st.seshes = &SessionsDB{db: st.db}
	if err := st.seshes.init(); err != nil {
		st.db.Close()
		return nil, fmt.Errorf("init sessions table: %w", err)
	}

	st.coms = &CommandsDB{db: st.db}
	if err := st.coms.init(true); err != nil {
		st.db.Close()
		return nil, fmt.Errorf("init commands table: %w", err)
	}

	return st, nil
}

func (s *store) Sessions() dao.SessionRepository {
	return s.seshes
}

func (s *store) Commands() dao.CommandRepository {
	return s.coms
}

func (s *store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("%s: %w", s.dbFilename, err)
	}
	return nil
}

func wrapDBError(err error) error {
	sqliteErr := &sqlite.Error{}
	if errors.As(err, &sqliteErr) {
		// extended result codes keep the primary code in the low byte
		if sqliteErr.Code()&0xff == 19 {
			return dao.ErrConstraintViolation
		}
		return fmt.Errorf("%s", sqlite.ErrorCodeString[sqliteErr.Code()])
	} else if errors.Is(err, sql.ErrNoRows) {
		return dao.ErrNotFound
	}
	return err
}

func convertToDB_UUID(u uuid.UUID) string {
	return u.String()
}

func convertFromDB_UUID(s string, target *uuid.UUID) error {
	u, err := uuid.Parse(s)
	if err != nil {
		return err
	}
	*target = u
	return nil
}

func convertToDB_Time(t time.Time) int64 {
	return t.Unix()
}

func convertFromDB_Time(i int64, target *time.Time) error {
	*target = time.Unix(i, 0)
	return nil
}

func convertToDB_Trace(t dao.Trace) string {
	return base64.StdEncoding.EncodeToString(rezi.EncBinary(t))
}

func convertFromDB_Trace(s string, target *dao.Trace) error {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return err
	}
	var t dao.Trace
	if _, err := rezi.DecBinary(data, &t); err != nil {
		return err
	}
	*target = t
	return nil
}
