package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"SignalDesk/internal/domain/models"
	domrepo "SignalDesk/internal/domain/repository"
	svccache "SignalDesk/internal/service/cache"
	applogger "SignalDesk/pkg/logger"
)

// ExecuteSignalUseCase drives the CREATED -> EXECUTED transition and keeps
// the store and cache in line with the domain state machine.
type ExecuteSignalUseCase struct {
	signals domrepo.SignalStore
	cache   svccache.BytesCache
	metrics domrepo.Metrics
	l       *applogger.Logger
}

func NewExecuteSignalUseCase(signals domrepo.SignalStore, cache svccache.BytesCache, metrics domrepo.Metrics, l *applogger.Logger) *ExecuteSignalUseCase {
	return &ExecuteSignalUseCase{signals: signals, cache: cache, metrics: metrics, l: l}
}

// Execute marks a signal as executed. The domain transition is checked
// before the store is touched, so an already-executed or expired signal
// surfaces ErrInvalidSignalState without a write.
func (uc *ExecuteSignalUseCase) Execute(ctx context.Context, id string) (*models.Signal, error) {
	if id == "" {
		return nil, fmt.Errorf("id required")
	}
	sig, err := uc.signals.Get(ctx, id)
	if err != nil {
		uc.metrics.RecordError("execute_get")
		return nil, err
	}

	now := time.Now().UTC()
	if err := sig.Execute(now); err != nil {
		uc.metrics.RecordError("execute_state")
		return nil, err
	}
	if err := uc.signals.MarkExecuted(ctx, id, now); err != nil {
		uc.metrics.RecordError("execute_store")
		return nil, fmt.Errorf("mark executed: %w", err)
	}
	uc.refreshCache(sig)

	if uc.l != nil {
		uc.l.Info("signal executed",
			applogger.String("id", sig.ID),
			applogger.String("symbol", sig.Symbol),
			applogger.String("type", string(sig.Type)),
		)
	}
	return sig, nil
}

func (uc *ExecuteSignalUseCase) refreshCache(sig *models.Signal) {
	if uc.cache == nil {
		return
	}
	b, ok, err := uc.cache.GetBytes(latestSignalKey(sig.Symbol))
	if err != nil || !ok {
		return
	}
	var cached models.Signal
	if err := json.Unmarshal(b, &cached); err != nil || cached.ID != sig.ID {
		return
	}
	if out, err := json.Marshal(sig); err == nil {
		ttl := time.Until(sig.ExpiresAt)
		if ttl > 0 {
			_ = uc.cache.SetBytes(latestSignalKey(sig.Symbol), out, ttl)
		}
	}
}
