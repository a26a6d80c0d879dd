package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"SignalDesk/internal/domain/models"
	pkgch "SignalDesk/pkg/clickhouse"
)

// CHSentimentStore implements SentimentStore backed by ClickHouse. Rows come
// in already scored; RecencyRank is derived on read from the publish order.
type CHSentimentStore struct {
	db    *sql.DB
	table string
}

func NewCHSentimentStore(ch *pkgch.Client) *CHSentimentStore {
	return &CHSentimentStore{db: ch.DB(), table: "signaldesk.sentiment"}
}

func (s *CHSentimentStore) Init(ctx context.Context) error {
	stmts := []string{
		`CREATE DATABASE IF NOT EXISTS signaldesk`,
		fmt.Sprintf(`
            CREATE TABLE IF NOT EXISTS %s (
                symbol       LowCardinality(String),
                score        Float64,
                confidence   Float64,
                published_at DateTime64(3)
            ) ENGINE = MergeTree
            PARTITION BY toYYYYMM(published_at)
            ORDER BY (symbol, published_at)
        `, s.table),
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init sentiment schema: %w", err)
		}
	}
	return nil
}

func (s *CHSentimentStore) Store(ctx context.Context, items []models.SentimentItem) error {
	if len(items) == 0 {
		return nil
	}
	values := make([]string, 0, len(items))
	args := make([]interface{}, 0, len(items)*4)
	for _, it := range items {
		if it.Symbol == "" {
			continue
		}
		values = append(values, "(?, ?, ?, ?)")
		args = append(args, it.Symbol, it.Score, it.Confidence, it.PublishedAt)
	}
	if len(values) == 0 {
		return nil
	}
	q := fmt.Sprintf("INSERT INTO %s (symbol, score, confidence, published_at) VALUES %s",
		s.table, strings.Join(values, ","))
	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("store sentiment: %w", err)
	}
	return nil
}

func (s *CHSentimentStore) LatestN(ctx context.Context, symbol string, n int) ([]models.SentimentItem, error) {
	q := fmt.Sprintf(`
        SELECT symbol, score, confidence, published_at
        FROM %s
        WHERE symbol = ?
        ORDER BY published_at DESC
        LIMIT ?
    `, s.table)
	rows, err := s.db.QueryContext(ctx, q, symbol, n)
	if err != nil {
		return nil, fmt.Errorf("latest sentiment: %w", err)
	}
	defer rows.Close()

	out := make([]models.SentimentItem, 0, n)
	for rows.Next() {
		var it models.SentimentItem
		if err := rows.Scan(&it.Symbol, &it.Score, &it.Confidence, &it.PublishedAt); err != nil {
			return nil, fmt.Errorf("scan sentiment: %w", err)
		}
		it.RecencyRank = len(out)
		out = append(out, it)
	}
	return out, rows.Err()
}

func (s *CHSentimentStore) Close() error {
	return nil // Managed by pkg
}
