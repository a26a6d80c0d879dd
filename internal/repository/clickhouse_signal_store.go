package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"SignalDesk/internal/domain/models"
	domrepo "SignalDesk/internal/domain/repository"
	pkgch "SignalDesk/pkg/clickhouse"
)

// CHSignalStore implements SignalStore backed by ClickHouse.
type CHSignalStore struct {
	db    *sql.DB
	table string
}

func NewCHSignalStore(ch *pkgch.Client) *CHSignalStore {
	return &CHSignalStore{db: ch.DB(), table: "signaldesk.signals"}
}

func (s *CHSignalStore) Init(ctx context.Context) error {
	stmts := []string{
		`CREATE DATABASE IF NOT EXISTS signaldesk`,
		fmt.Sprintf(`
            CREATE TABLE IF NOT EXISTS %s (
                id              String,
                symbol          LowCardinality(String),
                type            LowCardinality(String),
                price           Float64,
                quantity        Int32,
                confidence      Float64,
                sentiment_score Float64,
                technical_score Float64,
                combined_score  Float64,
                volume_score    Float64,
                momentum_score  Float64,
                risk_level      LowCardinality(String),
                reason          String,
                executed        UInt8,
                executed_at     DateTime64(3),
                created_at      DateTime64(3),
                expires_at      DateTime64(3)
            ) ENGINE = ReplacingMergeTree(executed)
            PARTITION BY toYYYYMM(created_at)
            ORDER BY (symbol, id)
        `, s.table),
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init signal schema: %w", err)
		}
	}
	return nil
}

func (s *CHSignalStore) Store(ctx context.Context, sig *models.Signal) error {
	q := fmt.Sprintf(`INSERT INTO %s
        (id, symbol, type, price, quantity, confidence,
         sentiment_score, technical_score, combined_score, volume_score, momentum_score,
         risk_level, reason, executed, executed_at, created_at, expires_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, s.table)
	_, err := s.db.ExecContext(ctx, q,
		sig.ID, sig.Symbol, string(sig.Type), sig.Price, int32(sig.Quantity), sig.Confidence,
		sig.SentimentScore, sig.TechnicalScore, sig.CombinedScore, sig.Scores.Volume, sig.Scores.Momentum,
		string(sig.RiskLevel), sig.Reason, boolToUInt8(sig.Executed), sig.ExecutedAt, sig.CreatedAt, sig.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("store signal: %w", err)
	}
	return nil
}

func (s *CHSignalStore) Get(ctx context.Context, id string) (*models.Signal, error) {
	q := fmt.Sprintf(`
        SELECT id, symbol, type, price, quantity, confidence,
               sentiment_score, technical_score, combined_score, volume_score, momentum_score,
               risk_level, reason, executed, executed_at, created_at, expires_at
        FROM %s FINAL
        WHERE id = ?
        LIMIT 1
    `, s.table)
	row := s.db.QueryRowContext(ctx, q, id)
	sig, err := scanSignal(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("signal %s: %w", id, domrepo.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get signal: %w", err)
	}
	return sig, nil
}

func (s *CHSignalStore) Latest(ctx context.Context, symbol string, limit int) ([]models.Signal, error) {
	q := fmt.Sprintf(`
        SELECT id, symbol, type, price, quantity, confidence,
               sentiment_score, technical_score, combined_score, volume_score, momentum_score,
               risk_level, reason, executed, executed_at, created_at, expires_at
        FROM %s FINAL
        WHERE symbol = ?
        ORDER BY created_at DESC
        LIMIT ?
    `, s.table)
	rows, err := s.db.QueryContext(ctx, q, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("latest signals: %w", err)
	}
	defer rows.Close()

	out := make([]models.Signal, 0, limit)
	for rows.Next() {
		sig, err := scanSignal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan signal: %w", err)
		}
		out = append(out, *sig)
	}
	return out, rows.Err()
}

// MarkExecuted re-inserts the row with executed=1; ReplacingMergeTree keeps
// the executed version. Reads go through FINAL so the flip is visible
// immediately.
func (s *CHSignalStore) MarkExecuted(ctx context.Context, id string, at time.Time) error {
	sig, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	sig.Executed = true
	sig.ExecutedAt = at
	return s.Store(ctx, sig)
}

func (s *CHSignalStore) Close() error {
	return nil // Managed by pkg
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSignal(r rowScanner) (*models.Signal, error) {
	var (
		sig      models.Signal
		sigType  string
		risk     string
		qty      int32
		executed uint8
	)
	if err := r.Scan(
		&sig.ID, &sig.Symbol, &sigType, &sig.Price, &qty, &sig.Confidence,
		&sig.SentimentScore, &sig.TechnicalScore, &sig.CombinedScore, &sig.Scores.Volume, &sig.Scores.Momentum,
		&risk, &sig.Reason, &executed, &sig.ExecutedAt, &sig.CreatedAt, &sig.ExpiresAt,
	); err != nil {
		return nil, err
	}
	sig.Type = models.SignalType(sigType)
	sig.RiskLevel = models.RiskLevel(risk)
	sig.Quantity = int(qty)
	sig.Executed = executed != 0
	sig.Scores.Sentiment = sig.SentimentScore
	sig.Scores.Technical = sig.TechnicalScore
	return &sig, nil
}

func boolToUInt8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
