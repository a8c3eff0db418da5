package edgestore

// schema creates the distance table and its two auxiliary input tables.
// The auxiliary tables are optional inputs populated by the
// ingestion collaborator; this package creates them but none of its
// queries reads them.
const schema = `
CREATE TABLE IF NOT EXISTS gbk (
	id          INTEGER PRIMARY KEY,
	path        TEXT NOT NULL,
	source_type TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS bgc_record (
	id       INTEGER PRIMARY KEY,
	gbk_id   INTEGER NOT NULL REFERENCES gbk(id),
	kind     TEXT NOT NULL,
	product  TEXT,
	category TEXT
);

CREATE TABLE IF NOT EXISTS distance (
	record_a_id   INTEGER NOT NULL,
	record_b_id   INTEGER NOT NULL,
	distance      REAL NOT NULL,
	jaccard       REAL NOT NULL,
	adjacency     REAL NOT NULL,
	dss           REAL NOT NULL,
	edge_param_id INTEGER NOT NULL,
	lcs_a_start   INTEGER NOT NULL,
	lcs_a_stop    INTEGER NOT NULL,
	lcs_b_start   INTEGER NOT NULL,
	lcs_b_stop    INTEGER NOT NULL,
	ext_a_start   INTEGER NOT NULL,
	ext_a_stop    INTEGER NOT NULL,
	ext_b_start   INTEGER NOT NULL,
	ext_b_stop    INTEGER NOT NULL,
	reverse       INTEGER NOT NULL,
	PRIMARY KEY (edge_param_id, record_a_id, record_b_id)
);

CREATE INDEX IF NOT EXISTS distance_b_idx
	ON distance (edge_param_id, record_b_id, record_a_id);
`
