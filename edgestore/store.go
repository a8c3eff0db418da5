package edgestore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	_ "modernc.org/sqlite"
)

// Edge is one row of the distance table: the scored result of
// comparing two records under a given edge-parameter id, plus the
// comparable region the score was computed over.
type Edge struct {
	RecordAID, RecordBID int
	Distance             float64
	Jaccard              float64
	Adjacency            float64
	DSS                  float64
	EdgeParamID          int64

	LCSAStart, LCSAStop int
	LCSBStart, LCSBStop int
	ExtAStart, ExtAStop int
	ExtBStart, ExtBStop int
	Reverse             bool
}

// canonicalize returns e with RecordAID <= RecordBID, swapping the A/B
// sides (and their windows) if needed. Persisted edges are keyed and
// deduplicated by (edge_param_id, min(a,b), max(a,b)).
func (e Edge) canonicalize() Edge {
	if e.RecordAID <= e.RecordBID {
		return e
	}
	e.RecordAID, e.RecordBID = e.RecordBID, e.RecordAID
	e.LCSAStart, e.LCSBStart = e.LCSBStart, e.LCSAStart
	e.LCSAStop, e.LCSBStop = e.LCSBStop, e.LCSAStop
	e.ExtAStart, e.ExtBStart = e.ExtBStart, e.ExtAStart
	e.ExtAStop, e.ExtBStop = e.ExtBStop, e.ExtAStop
	return e
}

// Store is the edge store: an append-only table of scored pairs keyed
// by (edge_param_id, record_a_id, record_b_id), backed by a SQLite
// database reached through database/sql.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) a SQLite-backed edge store at dsn.
// Pass ":memory:" for an ephemeral, process-local store, as tests do.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.E(err, fmt.Sprintf("edgestore: open %s", dsn))
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, errors.E(err, "edgestore: create schema")
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the store is reachable. The coordinator calls this at bin
// start; an unreachable store is fatal for the bin.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return errors.E(err, "edgestore: store unreachable")
	}
	return nil
}

// Insert appends scored edges to the store. Existing rows at the same
// (edge_param_id, min(a,b), max(a,b)) key are left untouched: the edge
// table is append-only, never updated in place.
func (s *Store) Insert(ctx context.Context, edges []Edge) error {
	if len(edges) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.E(err, "edgestore: begin insert transaction")
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO distance (
			record_a_id, record_b_id, distance, jaccard, adjacency, dss,
			edge_param_id, lcs_a_start, lcs_a_stop, lcs_b_start, lcs_b_stop,
			ext_a_start, ext_a_stop, ext_b_start, ext_b_stop, reverse
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return errors.E(err, "edgestore: prepare insert")
	}
	defer stmt.Close()

	for _, e := range edges {
		e = e.canonicalize()
		if _, err := stmt.ExecContext(ctx,
			e.RecordAID, e.RecordBID, e.Distance, e.Jaccard, e.Adjacency, e.DSS,
			e.EdgeParamID, e.LCSAStart, e.LCSAStop, e.LCSBStart, e.LCSBStop,
			e.ExtAStart, e.ExtAStop, e.ExtBStart, e.ExtBStop, e.Reverse,
		); err != nil {
			tx.Rollback()
			return errors.E(err, "edgestore: insert edge")
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.E(err, "edgestore: commit insert")
	}
	log.Debug.Printf("edgestore: inserted %d edges", len(edges))
	return nil
}

// ExistingPairs returns the set of (min(a,b), max(a,b)) pairs already
// stored under paramID among the given record ids, on either side of the
// distance table. Used by the missing-only pair generator wrapper.
func (s *Store) ExistingPairs(ctx context.Context, paramID int64, recordIDs []int) (map[[2]int]bool, error) {
	if len(recordIDs) == 0 {
		return map[[2]int]bool{}, nil
	}
	placeholders, args := inClause(recordIDs)
	query := fmt.Sprintf(`
		SELECT record_a_id, record_b_id FROM distance
		WHERE edge_param_id = ?
		AND record_a_id IN (%s) AND record_b_id IN (%s)`, placeholders, placeholders)
	allArgs := append([]interface{}{paramID}, append(append([]interface{}{}, args...), args...)...)

	rows, err := s.db.QueryContext(ctx, query, allArgs...)
	if err != nil {
		return nil, errors.E(err, "edgestore: query existing pairs")
	}
	defer rows.Close()

	out := map[[2]int]bool{}
	for rows.Next() {
		var a, b int
		if err := rows.Scan(&a, &b); err != nil {
			return nil, errors.E(err, "edgestore: scan existing pair")
		}
		out[canonicalPairKey(a, b)] = true
	}
	return out, rows.Err()
}

// CountExistingPairs is the count-only form of ExistingPairs, used by the
// missing-only wrapper's Count method so it need not materialize the set.
func (s *Store) CountExistingPairs(ctx context.Context, paramID int64, recordIDs []int) (int, error) {
	if len(recordIDs) == 0 {
		return 0, nil
	}
	placeholders, args := inClause(recordIDs)
	query := fmt.Sprintf(`
		SELECT COUNT(*) FROM distance
		WHERE edge_param_id = ?
		AND record_a_id IN (%s) AND record_b_id IN (%s)`, placeholders, placeholders)
	allArgs := append([]interface{}{paramID}, append(append([]interface{}{}, args...), args...)...)

	var n int
	if err := s.db.QueryRowContext(ctx, query, allArgs...).Scan(&n); err != nil {
		return 0, errors.E(err, "edgestore: count existing pairs")
	}
	return n, nil
}

// ConnectedRecordIDs returns the subset of candidateIDs that participate
// in at least one stored edge under paramID with distance < cutoff,
// excluding any id present in excludeIDs. This backs both the
// ref-connected/ref-singleton pair generator (cutoff 1.0) and
// Bin.CullSingletons (an arbitrary cutoff).
func (s *Store) ConnectedRecordIDs(ctx context.Context, paramID int64, candidateIDs, excludeIDs []int, cutoff float64) ([]int, error) {
	if len(candidateIDs) == 0 {
		return nil, nil
	}
	candPH, candArgs := inClause(candidateIDs)
	var excludeClause string
	var excludeArgs []interface{}
	if len(excludeIDs) > 0 {
		exPH, exArgs := inClause(excludeIDs)
		excludeClause = fmt.Sprintf("AND id NOT IN (%s)", exPH)
		excludeArgs = exArgs
	}

	query := fmt.Sprintf(`
		SELECT DISTINCT id FROM (
			SELECT record_a_id AS id FROM distance
			WHERE edge_param_id = ? AND distance < ? AND record_a_id IN (%s)
			UNION
			SELECT record_b_id AS id FROM distance
			WHERE edge_param_id = ? AND distance < ? AND record_b_id IN (%s)
		)
		WHERE id IN (%s) %s`, candPH, candPH, candPH, excludeClause)

	args := []interface{}{paramID, cutoff}
	args = append(args, candArgs...)
	args = append(args, paramID, cutoff)
	args = append(args, candArgs...)
	args = append(args, candArgs...)
	args = append(args, excludeArgs...)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.E(err, "edgestore: query connected record ids")
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, errors.E(err, "edgestore: scan connected record id")
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// ComponentEdges returns all stored edges under paramID whose both
// endpoints are in recordIDs, in insertion order. Used to build the input
// to the connected-component replay generator.
func (s *Store) ComponentEdges(ctx context.Context, paramID int64, recordIDs []int) ([]Edge, error) {
	if len(recordIDs) == 0 {
		return nil, nil
	}
	placeholders, args := inClause(recordIDs)
	query := fmt.Sprintf(`
		SELECT record_a_id, record_b_id, distance, jaccard, adjacency, dss,
			edge_param_id, lcs_a_start, lcs_a_stop, lcs_b_start, lcs_b_stop,
			ext_a_start, ext_a_stop, ext_b_start, ext_b_stop, reverse
		FROM distance
		WHERE edge_param_id = ? AND record_a_id IN (%s) AND record_b_id IN (%s)
		ORDER BY rowid`, placeholders, placeholders)
	allArgs := append([]interface{}{paramID}, append(append([]interface{}{}, args...), args...)...)

	rows, err := s.db.QueryContext(ctx, query, allArgs...)
	if err != nil {
		return nil, errors.E(err, "edgestore: query component edges")
	}
	defer rows.Close()

	var out []Edge
	for rows.Next() {
		var e Edge
		if err := rows.Scan(
			&e.RecordAID, &e.RecordBID, &e.Distance, &e.Jaccard, &e.Adjacency, &e.DSS,
			&e.EdgeParamID, &e.LCSAStart, &e.LCSAStop, &e.LCSBStart, &e.LCSBStop,
			&e.ExtAStart, &e.ExtAStop, &e.ExtBStart, &e.ExtBStop, &e.Reverse,
		); err != nil {
			return nil, errors.E(err, "edgestore: scan component edge")
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func canonicalPairKey(a, b int) [2]int {
	if a <= b {
		return [2]int{a, b}
	}
	return [2]int{b, a}
}

func inClause(ids []int) (placeholders string, args []interface{}) {
	args = make([]interface{}, len(ids))
	ph := make([]byte, 0, len(ids)*2)
	for i, id := range ids {
		if i > 0 {
			ph = append(ph, ',')
		}
		ph = append(ph, '?')
		args[i] = id
	}
	return string(ph), args
}
