package data

import (
	"context"
	"database/sql"

	"github.com/ansel1/merry"
	"github.com/dmorvan/divecalc/internal/pkg"
	"github.com/jmoiron/sqlx"
)

const SQLCreate = `
PRAGMA foreign_keys = ON;
PRAGMA encoding = 'UTF-8';

CREATE TABLE IF NOT EXISTS dive
(
    dive_id     INTEGER PRIMARY KEY,
    created_at  TIMESTAMP NOT NULL DEFAULT (datetime('now')),
    depth       REAL      NOT NULL CHECK (depth > 0),
    bottom_time REAL      NOT NULL CHECK (bottom_time >= 0),
    mode        TEXT      NOT NULL DEFAULT 'oc',
    bailout     BOOLEAN   NOT NULL DEFAULT 0,
    run_time    REAL      NOT NULL,
    tts         REAL      NOT NULL,
    cns         REAL      NOT NULL,
    otu         REAL      NOT NULL
);

CREATE INDEX IF NOT EXISTS index_dive_created_at ON dive (created_at);
`

func Open(filename string) (*sqlx.DB, error) {
	db, err := pkg.OpenSqliteDBx(filename)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(SQLCreate); err != nil {
		return nil, err
	}
	return db, nil
}

func AddDive(ctx context.Context, db *sqlx.DB, d Dive) (int64, error) {
	r, err := db.ExecContext(ctx, `
INSERT INTO dive (depth, bottom_time, mode, bailout, run_time, tts, cns, otu)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		d.Depth, d.BottomTime, d.Mode, d.Bailout, d.RunTime, d.TTS, d.Cns, d.Otu)
	if err != nil {
		return 0, err
	}
	return getNewInsertedID(r)
}

func GetDive(ctx context.Context, db *sqlx.DB, diveID int64) (d Dive, err error) {
	err = db.GetContext(ctx, &d, `SELECT * FROM dive WHERE dive_id = ?`, diveID)
	return
}

func ListDives(ctx context.Context, db *sqlx.DB) (dives []Dive, err error) {
	err = db.SelectContext(ctx, &dives, `SELECT * FROM dive ORDER BY created_at, dive_id`)
	return
}

func DeleteDive(ctx context.Context, db *sqlx.DB, diveID int64) error {
	r, err := db.ExecContext(ctx, `DELETE FROM dive WHERE dive_id = ?`, diveID)
	if err != nil {
		return err
	}
	n, err := r.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return merry.Errorf("dive %d: no such record", diveID)
	}
	return nil
}

// OxToxSinceHours sums the toxicity doses of the dives logged over the last
// given hours, the carry-in for planning a repetitive dive.
func OxToxSinceHours(ctx context.Context, db *sqlx.DB, hours float64) (x OxTox, err error) {
	err = db.GetContext(ctx, &x, `
SELECT coalesce(sum(cns), 0) AS cns, coalesce(sum(otu), 0) AS otu
FROM dive
WHERE created_at > datetime('now', ?)`, sqlHoursAgo(hours))
	return
}

func getNewInsertedID(r sql.Result) (int64, error) {
	id, err := r.LastInsertId()
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, merry.New("was not inserted")
	}
	return id, nil
}
