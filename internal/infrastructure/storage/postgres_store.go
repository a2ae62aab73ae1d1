package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"CoinPulse/internal/domain"
	"CoinPulse/internal/ports"
)

const dateLayout = "2006-01-02"

// ConflictPolicy names what happens when an insert hits an existing
// business key. The pipeline only ever skips; overwrite exists so the
// choice is explicit at the call site rather than buried in SQL.
type ConflictPolicy int

const (
	// ConflictIgnore leaves the existing row untouched (first observation wins).
	ConflictIgnore ConflictPolicy = iota
	// ConflictOverwrite replaces the existing row.
	ConflictOverwrite
)

// PostgresStore persists snapshots and article summaries with
// duplicate-safe inserts, and serves the dashboard's read queries.
type PostgresStore struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var (
	_ ports.Store     = (*PostgresStore)(nil)
	_ ports.ReadStore = (*PostgresStore)(nil)
)

// Open connects to Postgres and verifies the connection.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}

// NewPostgresStore wires an open sql.DB.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// UpsertPrice inserts one OHLCV row keyed by date. On conflict the existing
// row wins and inserted=false is returned; this is not an error.
func (s *PostgresStore) UpsertPrice(ctx context.Context, snapshot domain.PriceSnapshot) (bool, error) {
	query, args, err := s.builder.
		Insert("api_data").
		Columns("date", "open", "high", "low", "close", "volume").
		Values(snapshot.Date.Format(dateLayout), snapshot.Open, snapshot.High, snapshot.Low, snapshot.Close, snapshot.Volume).
		Suffix(conflictSuffix(ConflictIgnore, "date")).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build price insert: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("insert price %s: %w", snapshot.Date.Format(dateLayout), err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("price rows affected: %w", err)
	}

	return affected > 0, nil
}

// UpsertArticles inserts summaries keyed by link inside one transaction.
// Conflicting links are skipped row by row; the remaining rows still
// commit. Any other failure rolls the whole batch back.
func (s *PostgresStore) UpsertArticles(ctx context.Context, summaries []domain.ArticleSummary) (int, error) {
	if len(summaries) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	inserted := 0
	for _, summary := range summaries {
		query, args, err := s.builder.
			Insert("article_data").
			Columns("date", "title", "author", "link").
			Values(summary.Date, summary.Title, summary.Author, summary.Link).
			Suffix(conflictSuffix(ConflictIgnore, "link")).
			ToSql()
		if err != nil {
			return 0, fmt.Errorf("build article insert: %w", err)
		}

		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return 0, fmt.Errorf("insert article %s: %w", summary.Link, err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("article rows affected: %w", err)
		}
		inserted += int(affected)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit articles: %w", err)
	}

	return inserted, nil
}

// ListPrices returns all persisted snapshots; the dashboard sorts itself.
func (s *PostgresStore) ListPrices(ctx context.Context) ([]domain.PriceSnapshot, error) {
	query, args, err := s.builder.
		Select("date", "open", "high", "low", "close", "volume").
		From("api_data").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build price select: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query prices: %w", err)
	}
	defer rows.Close()

	var snapshots []domain.PriceSnapshot
	for rows.Next() {
		var snapshot domain.PriceSnapshot
		if err := rows.Scan(&snapshot.Date, &snapshot.Open, &snapshot.High, &snapshot.Low, &snapshot.Close, &snapshot.Volume); err != nil {
			return nil, fmt.Errorf("scan price: %w", err)
		}
		snapshots = append(snapshots, snapshot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("price rows: %w", err)
	}

	return snapshots, nil
}

// ListArticles returns all persisted article summaries.
func (s *PostgresStore) ListArticles(ctx context.Context) ([]domain.ArticleSummary, error) {
	query, args, err := s.builder.
		Select("date", "title", "author", "link").
		From("article_data").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build article select: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	defer rows.Close()

	var summaries []domain.ArticleSummary
	for rows.Next() {
		var summary domain.ArticleSummary
		if err := rows.Scan(&summary.Date, &summary.Title, &summary.Author, &summary.Link); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("article rows: %w", err)
	}

	return summaries, nil
}

func conflictSuffix(policy ConflictPolicy, keyColumn string, updateColumns ...string) string {
	if policy == ConflictOverwrite && len(updateColumns) > 0 {
		assignments := ""
		for i, col := range updateColumns {
			if i > 0 {
				assignments += ", "
			}
			assignments += fmt.Sprintf("%s = EXCLUDED.%s", col, col)
		}
		return fmt.Sprintf("ON CONFLICT (%s) DO UPDATE SET %s", keyColumn, assignments)
	}
	return fmt.Sprintf("ON CONFLICT (%s) DO NOTHING", keyColumn)
}
