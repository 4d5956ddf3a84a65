package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"errors"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/fwojciec/siterag"
)

// dimensionKey is the store_meta key holding the established vector
// dimension. It is written on the first upsert and never changes for
// the lifetime of the store; a record disagreeing with it is rejected.
const dimensionKey = "dimension"

// Compile-time interface verification.
var _ siterag.VectorStore = (*VectorStore)(nil)

// VectorStore implements siterag.VectorStore using SQLite. Vectors are
// stored as little-endian float32 BLOBs; similarity ranking happens in
// process over the filtered candidate set.
type VectorStore struct {
	db *DB
}

// NewVectorStore creates a new VectorStore.
func NewVectorStore(db *DB) *VectorStore {
	return &VectorStore{db: db}
}

// Upsert writes records in a single transaction, replacing any
// existing record that shares an id. The first record ever written
// establishes the store's vector dimension; any later disagreement
// fails the whole write with EMISMATCH.
func (s *VectorStore) Upsert(ctx context.Context, records []siterag.IndexRecord) error {
	if len(records) == 0 {
		return nil
	}
	for i := range records {
		if err := records[i].Validate(); err != nil {
			return err
		}
		if len(records[i].Vector) == 0 {
			return siterag.Errorf(siterag.EINVALID, "record %q has an empty vector", records[i].ID)
		}
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	dim, err := s.dimensionTx(ctx, tx)
	if err != nil {
		return err
	}
	if dim == 0 {
		dim = len(records[0].Vector)
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO store_meta (key, value) VALUES (?, ?)`,
			dimensionKey, strconv.Itoa(dim)); err != nil {
			return err
		}
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO chunks (id, source_url, title, chunk_index, total_chunks, text, embedding)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := range records {
		r := &records[i]
		if len(r.Vector) != dim {
			return siterag.Errorf(siterag.EMISMATCH,
				"record %q has dimension %d, store uses %d", r.ID, len(r.Vector), dim)
		}
		if _, err := stmt.ExecContext(ctx,
			r.ID, r.SourceURL, r.Title, r.Index, r.Total, r.Text,
			encodeVector(r.Vector)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Search returns up to q.TopK results ordered by descending cosine
// similarity. Filters narrow the candidate set before ranking, so
// TopK always returns the k best among eligible records. An empty
// store returns an empty slice.
func (s *VectorStore) Search(ctx context.Context, q siterag.SearchQuery) ([]siterag.SearchResult, error) {
	if q.TopK <= 0 {
		return nil, siterag.Errorf(siterag.EINVALID, "top_k must be positive, got %d", q.TopK)
	}
	if len(q.Vector) == 0 {
		return nil, siterag.Errorf(siterag.EINVALID, "query vector required")
	}

	dim, err := s.dimension(ctx)
	if err != nil {
		return nil, err
	}
	if dim == 0 {
		return []siterag.SearchResult{}, nil
	}
	if len(q.Vector) != dim {
		return nil, siterag.Errorf(siterag.EMISMATCH,
			"query vector has dimension %d, store uses %d", len(q.Vector), dim)
	}

	var query strings.Builder
	var args []any

	query.WriteString(`SELECT id, source_url, title, chunk_index, total_chunks, text, embedding FROM chunks WHERE 1=1`)
	if q.Source != "" {
		query.WriteString(" AND source_url = ?")
		args = append(args, q.Source)
	}
	if q.Keyword != "" {
		query.WriteString(" AND instr(text, ?) > 0")
		args = append(args, q.Keyword)
	}
	// rowid order makes the similarity sort's tie-break stable on
	// insertion order.
	query.WriteString(" ORDER BY rowid ASC")

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []siterag.SearchResult
	for rows.Next() {
		var r siterag.SearchResult
		var embedding []byte
		if err := rows.Scan(&r.ID, &r.SourceURL, &r.Title, &r.Index, &r.Total, &r.Text, &embedding); err != nil {
			return nil, err
		}
		r.Similarity = siterag.CosineSimilarity(q.Vector, decodeVector(embedding))
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	if len(results) > q.TopK {
		results = results[:q.TopK]
	}
	for i := range results {
		results[i].Rank = i + 1
	}
	if results == nil {
		results = []siterag.SearchResult{}
	}
	return results, nil
}

// DeleteBySource removes all chunks for a source URL.
func (s *VectorStore) DeleteBySource(ctx context.Context, sourceURL string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM chunks WHERE source_url = ?`, sourceURL)
	return err
}

// CountBySource returns the number of chunks stored for a URL.
func (s *VectorStore) CountBySource(ctx context.Context, sourceURL string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM chunks WHERE source_url = ?`, sourceURL).Scan(&count)
	return count, err
}

// Sources returns the distinct indexed source URLs in first-indexed order.
func (s *VectorStore) Sources(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT source_url FROM chunks GROUP BY source_url ORDER BY MIN(rowid)`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sources []string
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, err
		}
		sources = append(sources, url)
	}
	return sources, rows.Err()
}

// Stats returns store-wide counts.
func (s *VectorStore) Stats(ctx context.Context) (*siterag.StoreStats, error) {
	var stats siterag.StoreStats
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COUNT(DISTINCT source_url) FROM chunks`).
		Scan(&stats.TotalRecords, &stats.DistinctSources)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// Close closes the underlying database.
func (s *VectorStore) Close() error {
	return s.db.Close()
}

// dimension returns the established vector dimension, or 0 when the
// store has never been written.
func (s *VectorStore) dimension(ctx context.Context) (int, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM store_meta WHERE key = ?`, dimensionKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(value)
}

func (s *VectorStore) dimensionTx(ctx context.Context, tx *sql.Tx) (int, error) {
	var value string
	err := tx.QueryRowContext(ctx,
		`SELECT value FROM store_meta WHERE key = ?`, dimensionKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(value)
}

// encodeVector converts []float32 to a little-endian byte BLOB.
func encodeVector(v []float32) []byte {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// decodeVector converts a little-endian byte BLOB back to []float32.
func decodeVector(b []byte) []float32 {
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v
}
