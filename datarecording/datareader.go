package datarecording

import (
	"database/sql"

	"github.com/orsimlab/orsim/sim"
)

// A Reader loads recorded results back out of a database written by a
// Writer, mainly for tests and post-processing.
type Reader struct {
	*sql.DB
}

// NewReader opens the database at path + ".sqlite3".
func NewReader(path string) *Reader {
	db, err := sql.Open("sqlite3", path+".sqlite3")
	if err != nil {
		panic(err)
	}

	return &Reader{DB: db}
}

// A UtilizationEntry mirrors one row of the utilization table.
type UtilizationEntry struct {
	Rooms     int
	Occupancy int
	Ticks     uint64
	Fraction  float64
}

// Outcomes returns the outcome records of the run with the given room
// count, in insertion order.
func (r *Reader) Outcomes(rooms int) ([]sim.OutcomeRecord, error) {
	rows, err := r.Query(
		"SELECT class, arrival, period, wait, service "+
			"FROM outcomes WHERE rooms = ? ORDER BY rowid", rooms)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []sim.OutcomeRecord
	for rows.Next() {
		var record sim.OutcomeRecord
		var period string

		err := rows.Scan(
			&record.Class, &record.Arrival, &period,
			&record.Wait, &record.Service)
		if err != nil {
			return nil, err
		}

		record.Period = sim.Period(period)
		records = append(records, record)
	}

	return records, rows.Err()
}

// Utilization returns the utilization table of the run with the given room
// count, ordered by occupancy.
func (r *Reader) Utilization(rooms int) ([]UtilizationEntry, error) {
	rows, err := r.Query(
		"SELECT rooms, occupancy, ticks, fraction "+
			"FROM utilization WHERE rooms = ? ORDER BY occupancy", rooms)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []UtilizationEntry
	for rows.Next() {
		var entry UtilizationEntry

		err := rows.Scan(
			&entry.Rooms, &entry.Occupancy, &entry.Ticks, &entry.Fraction)
		if err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
