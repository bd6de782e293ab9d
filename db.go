package main

import (
	"database/sql"

	"github.com/foxcpp/timetable_ics/ttparser"
	"github.com/pkg/errors"
)
import _ "github.com/mattn/go-sqlite3"

type DB struct {
	d *sql.DB

	addEntry   *sql.Stmt
	addTeacher *sql.Stmt
	sessions   *sql.Stmt
}

func NewDB(path string) (_ *DB, err error) {
	db := new(DB)
	db.d, err = sql.Open("sqlite3", path+"?_journal=WAL")
	if err != nil {
		return nil, errors.Wrap(err, "open")
	}
	defer func() {
		if err != nil {
			db.closeStmts()
			db.d.Close()
		}
	}()

	if _, err := db.d.Exec(`PRAGMA synchronous = NORMAL`); err != nil {
		return nil, errors.Wrap(err, "set pragma synchronous")
	}
	if _, err := db.d.Exec(`
		CREATE TABLE IF NOT EXISTS schedule (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			subject TEXT,
			classroom TEXT,
			time TEXT,
			date TEXT,
			teacher TEXT,
			type TEXT,
			presence TEXT,
			subgroups INTEGER
		)
	`); err != nil {
		return nil, errors.Wrap(err, "create table schedule")
	}
	if _, err := db.d.Exec(`
		CREATE TABLE IF NOT EXISTS teachers (
			"Преподаватель" TEXT,
			"Дисциплина" TEXT
		)
	`); err != nil {
		return nil, errors.Wrap(err, "create table teachers")
	}

	db.addEntry, err = db.d.Prepare(`
		INSERT INTO schedule (subject, classroom, time, date, teacher, type, presence, subgroups)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, errors.Wrap(err, "prepare addEntry")
	}
	db.addTeacher, err = db.d.Prepare(`
		INSERT INTO teachers ("Преподаватель", "Дисциплина") VALUES (?, ?)`)
	if err != nil {
		return nil, errors.Wrap(err, "prepare addTeacher")
	}
	db.sessions, err = db.d.Prepare(`
		SELECT subject, classroom, time, date, teacher, type, presence, subgroups
		FROM schedule
		ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "prepare sessions")
	}
	return db, nil
}

func (db *DB) closeStmts() {
	for _, stmt := range []*sql.Stmt{db.addEntry, db.addTeacher, db.sessions} {
		if stmt != nil {
			stmt.Close()
		}
	}
}

func (db *DB) Close() error {
	db.closeStmts()
	return db.d.Close()
}

// ReplaceSchedule drops previously imported sessions and stores entries.
func (db *DB) ReplaceSchedule(entries []ttparser.Entry) error {
	tx, err := db.d.Begin()
	if err != nil {
		return errors.Wrap(err, "tx begin")
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM schedule`); err != nil {
		return errors.Wrap(err, "clear schedule")
	}
	add := tx.Stmt(db.addEntry)
	for _, e := range entries {
		var subgroup interface{}
		if e.Subgroup != 0 {
			subgroup = e.Subgroup
		}
		if _, err := add.Exec(
			e.Subject, e.Classroom, e.Time, e.Date, e.Teacher,
			e.Type.String(), e.Presence.String(), subgroup); err != nil {
			return errors.Wrapf(err, "addEntry %v", e)
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "tx commit")
	}
	return nil
}

func (db *DB) ReplaceTeachers(rows []ttparser.DisciplineRow) error {
	tx, err := db.d.Begin()
	if err != nil {
		return errors.Wrap(err, "tx begin")
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM teachers`); err != nil {
		return errors.Wrap(err, "clear teachers")
	}
	add := tx.Stmt(db.addTeacher)
	for _, row := range rows {
		if _, err := add.Exec(row.Teacher, row.Discipline); err != nil {
			return errors.Wrapf(err, "addTeacher %v", row)
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "tx commit")
	}
	return nil
}

// Sessions reads back all stored sessions in insertion order.
func (db *DB) Sessions() ([]ttparser.Entry, error) {
	rows, err := db.sessions.Query()
	if err != nil {
		return nil, errors.Wrap(err, "query sessions")
	}
	defer rows.Close()

	res := []ttparser.Entry(nil)
	for rows.Next() {
		var (
			subject, classroom, tm, date, teacher, typ, presence sql.NullString
			subgroup                                             sql.NullInt64
		)
		if err := rows.Scan(&subject, &classroom, &tm, &date, &teacher, &typ, &presence, &subgroup); err != nil {
			return nil, errors.Wrap(err, "scan session")
		}
		entry := ttparser.Entry{
			Label:     subject.String,
			Subject:   subject.String,
			Classroom: classroom.String,
			Time:      tm.String,
			Date:      date.String,
			Teacher:   teacher.String,
			Subgroup:  int(subgroup.Int64),
		}
		if typ.Valid {
			if entry.Type, err = ttparser.ParseLessonType(typ.String); err != nil {
				return nil, err
			}
		}
		if presence.Valid {
			if entry.Presence, err = ttparser.ParsePresence(presence.String); err != nil {
				return nil, err
			}
		}
		res = append(res, entry)
	}
	return res, errors.Wrap(rows.Err(), "read sessions")
}
