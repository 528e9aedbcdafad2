package db

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

func NewSQLLite(dbpath string) (*SQLLiteDB, error) {
	rawDB, err := sql.Open("sqlite3", dbpath)
	if err != nil {
		return nil, errors.Wrapf(err, "opening journal %s", dbpath)
	}
	return &SQLLiteDB{rawDB: rawDB}, nil
}

type SQLLiteDB struct {
	rawDB *sql.DB
}

func (db *SQLLiteDB) runStatement(sql string) (sql.Result, error) {
	statement, err := db.rawDB.Prepare(sql)
	if err != nil {
		return nil, err
	}
	defer statement.Close()
	return statement.Exec()
}

func (db *SQLLiteDB) Init() (err error) {
	_, err = db.runStatement(
		"CREATE TABLE IF NOT EXISTS removals (" +
			"id INTEGER PRIMARY KEY AUTOINCREMENT, " +
			"path TEXT, " +
			"repository TEXT, " +
			"low TEXT, " +
			"high INTEGER, " +
			"size INTEGER, " +
			"removed INTEGER" +
			")")
	if err != nil {
		return errors.Wrap(err, "creating removals table")
	}

	_, err = db.runStatement("CREATE INDEX IF NOT EXISTS removals_repository ON removals (repository)")
	if err != nil {
		return errors.Wrap(err, "creating removals index")
	}
	log.Debug().Msg("journal initialised")
	return nil
}

func (db *SQLLiteDB) AddRemoval(removal *Removal) (int64, error) {
	result, err := db.rawDB.Exec("INSERT INTO removals (path, repository, low, high, size, removed) VALUES(?, ?, ?, ?, ?, ?)",
		removal.Path, removal.Repository, removal.Low, removal.High, removal.Size, removal.Timestamp)
	if err != nil {
		return -1, err
	}

	removal.ID, err = result.LastInsertId()
	return removal.ID, err
}

// GetRemovals returns the journal newest first. An empty repository
// returns every repository's removals.
func (db *SQLLiteDB) GetRemovals(repository string) (removals []*Removal, err error) {
	query := "SELECT id, path, repository, low, high, size, removed FROM removals"
	var args []interface{}
	if repository != "" {
		query += " WHERE repository=?"
		args = append(args, repository)
	}
	query += " ORDER BY removed DESC, id DESC"

	rows, err := db.rawDB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		r := &Removal{}
		if err := rows.Scan(&r.ID, &r.Path, &r.Repository, &r.Low, &r.High, &r.Size, &r.Timestamp); err != nil {
			return nil, err
		}
		log.Debug().
			Int64("id", r.ID).
			Str("path", r.Path).
			Msg("removal found")
		removals = append(removals, r)
	}
	return removals, rows.Err()
}

func (db *SQLLiteDB) Close() error {
	return db.rawDB.Close()
}
