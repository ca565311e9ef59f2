// Package datarecording stores simulation outputs in SQLite databases so
// that sweeps can be post-processed with standard tools.
package datarecording

import (
	"database/sql"
	"fmt"
	"os"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"

	"github.com/orsimlab/orsim/sim"
)

// A Writer stores per-patient outcomes and utilization tables, one row set
// per room count of a sweep. Rows are buffered and written in batches; a
// flush is registered at exit so interrupted sweeps still land on disk.
type Writer struct {
	*sql.DB

	dbName    string
	batchSize int

	outcomes    []outcomeRow
	utilization []utilizationRow
}

type outcomeRow struct {
	rooms  int
	record sim.OutcomeRecord
}

type utilizationRow struct {
	rooms     int
	occupancy int
	ticks     uint64
	fraction  float64
}

// NewWriter creates a Writer backed by the file path + ".sqlite3". An empty
// path gets a generated run name.
func NewWriter(path string) *Writer {
	w := &Writer{
		dbName:    path,
		batchSize: 100000,
	}

	w.Init()

	atexit.Register(func() { w.Flush() })

	return w
}

// Init establishes the database connection and creates the result tables.
// It refuses to overwrite an existing database.
func (w *Writer) Init() {
	if w.dbName == "" {
		w.dbName = "orsim_run_" + xid.New().String()
	}

	filename := w.dbName + ".sqlite3"

	_, err := os.Stat(filename)
	if err == nil {
		panic(fmt.Errorf("file %s already exists", filename))
	}

	fmt.Fprintf(os.Stderr, "Database created for recording: %s\n", filename)

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		panic(err)
	}

	w.DB = db

	w.mustExecute(`CREATE TABLE outcomes (
	rooms INTEGER,
	class INTEGER,
	arrival INTEGER,
	period TEXT,
	wait INTEGER,
	service INTEGER
);`)

	w.mustExecute(`CREATE TABLE utilization (
	rooms INTEGER,
	occupancy INTEGER,
	ticks INTEGER,
	fraction REAL
);`)
}

// Filename returns the database file the writer records into.
func (w *Writer) Filename() string {
	return w.dbName + ".sqlite3"
}

// RecordOutcomes buffers the outcome records of one run, tagged with its
// day room count.
func (w *Writer) RecordOutcomes(rooms int, records []sim.OutcomeRecord) {
	for _, record := range records {
		w.outcomes = append(w.outcomes, outcomeRow{rooms: rooms, record: record})
	}

	if len(w.outcomes) >= w.batchSize {
		w.Flush()
	}
}

// RecordUtilization buffers the utilization table of one run. Counts and
// fractions are parallel slices indexed by occupancy.
func (w *Writer) RecordUtilization(rooms int, counts []uint64, fractions []float64) {
	for occupancy, count := range counts {
		w.utilization = append(w.utilization, utilizationRow{
			rooms:     rooms,
			occupancy: occupancy,
			ticks:     count,
			fraction:  fractions[occupancy],
		})
	}
}

// Flush writes all buffered rows in one transaction.
func (w *Writer) Flush() {
	if len(w.outcomes) == 0 && len(w.utilization) == 0 {
		return
	}

	w.mustExecute("BEGIN TRANSACTION")
	defer w.mustExecute("COMMIT TRANSACTION")

	if len(w.outcomes) > 0 {
		stmt := w.mustPrepare("INSERT INTO outcomes VALUES (?, ?, ?, ?, ?, ?)")

		for _, row := range w.outcomes {
			_, err := stmt.Exec(
				row.rooms,
				row.record.Class,
				row.record.Arrival,
				string(row.record.Period),
				row.record.Wait,
				row.record.Service,
			)
			if err != nil {
				panic(err)
			}
		}

		stmt.Close()
		w.outcomes = nil
	}

	if len(w.utilization) > 0 {
		stmt := w.mustPrepare("INSERT INTO utilization VALUES (?, ?, ?, ?)")

		for _, row := range w.utilization {
			_, err := stmt.Exec(row.rooms, row.occupancy, row.ticks, row.fraction)
			if err != nil {
				panic(err)
			}
		}

		stmt.Close()
		w.utilization = nil
	}
}

func (w *Writer) mustExecute(query string) sql.Result {
	res, err := w.Exec(query)
	if err != nil {
		fmt.Printf("Failed to execute: %s\n", query)
		panic(err)
	}

	return res
}

func (w *Writer) mustPrepare(query string) *sql.Stmt {
	stmt, err := w.Prepare(query)
	if err != nil {
		panic(err)
	}

	return stmt
}
