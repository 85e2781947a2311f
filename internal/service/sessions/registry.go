package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
	"github.com/m04kA/SMC-BookingFlow/internal/service/draft"
	"github.com/m04kA/SMC-BookingFlow/internal/service/ledger"
	"github.com/m04kA/SMC-BookingFlow/internal/usecase/submit_booking"
)

const defaultRestoreTimeout = 3 * time.Second

// Flow состояние бронирования одного пользователя
type Flow struct {
	UserID string
	Draft  *draft.Engine
	Ledger *ledger.Ledger
	Submit *submit_booking.UseCase

	restoreMu sync.Mutex
	restored  bool

	// lastSeen защищён Registry.mu
	lastSeen time.Time
}

// Restored сообщает, прочитан ли уже сохранённый черновик
func (f *Flow) Restored() bool {
	f.restoreMu.Lock()
	defer f.restoreMu.Unlock()
	return f.restored
}

// Registry выдаёт Flow по id пользователя, создавая его при первом обращении.
// Сессии без запросов дольше idleTimeout выгружаются: черновик остаётся в хранилище.
type Registry struct {
	keyPrefix      string
	restoreTimeout time.Duration
	idleTimeout    time.Duration
	store          draft.SnapshotStore
	gateway        Gateway
	metrics        Metrics
	logger         Logger
	now            func() time.Time

	mu    sync.Mutex
	flows map[string]*Flow
}

// NewRegistry создает реестр сессий.
// Пустой keyPrefix заменяется на domain.DefaultDraftKeyPrefix; idleTimeout <= 0 отключает выгрузку.
func NewRegistry(
	keyPrefix string,
	restoreTimeout time.Duration,
	idleTimeout time.Duration,
	store draft.SnapshotStore,
	gateway Gateway,
	metrics Metrics,
	logger Logger,
) *Registry {
	if keyPrefix == "" {
		keyPrefix = domain.DefaultDraftKeyPrefix
	}
	if restoreTimeout <= 0 {
		restoreTimeout = defaultRestoreTimeout
	}
	return &Registry{
		keyPrefix:      keyPrefix,
		restoreTimeout: restoreTimeout,
		idleTimeout:    idleTimeout,
		store:          store,
		gateway:        gateway,
		metrics:        metrics,
		logger:         logger,
		now:            time.Now,
		flows:          make(map[string]*Flow),
	}
}

// DraftKey ключ снапшота черновика пользователя
func (r *Registry) DraftKey(userID string) string {
	return r.keyPrefix + ":" + userID
}

// Get возвращает Flow пользователя. Пока черновик не восстановлен из хранилища,
// каждое обращение повторяет попытку; ошибка только логируется.
func (r *Registry) Get(ctx context.Context, userID string) *Flow {
	r.mu.Lock()
	flow, ok := r.flows[userID]
	if !ok {
		flow = r.newFlow(userID)
		r.flows[userID] = flow
		r.logger.Info("Sessions: started session for user=%s", userID)
	}
	flow.lastSeen = r.now()
	active := len(r.flows)
	r.mu.Unlock()

	if !ok {
		r.setActive(active)
	}

	r.restore(ctx, flow)
	return flow
}

// Len количество активных сессий
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.flows)
}

// EvictIdle выгружает сессии без запросов дольше idleTimeout и возвращает их число.
// Сессии с незавершённой отправкой не трогаем.
func (r *Registry) EvictIdle() int {
	if r.idleTimeout <= 0 {
		return 0
	}

	r.mu.Lock()
	now := r.now()
	evicted := 0
	for userID, flow := range r.flows {
		if now.Sub(flow.lastSeen) < r.idleTimeout || flow.Submit.InFlight() {
			continue
		}
		delete(r.flows, userID)
		evicted++
	}
	active := len(r.flows)
	r.mu.Unlock()

	if evicted > 0 {
		r.setActive(active)
		r.logger.Info("Sessions: evicted %d idle sessions, active=%d", evicted, active)
	}
	return evicted
}

// Run периодически выгружает простаивающие сессии, пока ctx не отменён
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	if r.idleTimeout <= 0 || interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.EvictIdle()
		}
	}
}

// restore читает снимок, пока это не удастся. Отмена запроса клиентом не прерывает чтение:
// иначе сессия началась бы пустой, и следующая мутация перезаписала бы сохранённый черновик.
func (r *Registry) restore(ctx context.Context, flow *Flow) {
	flow.restoreMu.Lock()
	defer flow.restoreMu.Unlock()

	if flow.restored {
		return
	}

	restoreCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.restoreTimeout)
	defer cancel()

	if err := flow.Draft.Restore(restoreCtx); err != nil {
		r.logger.Error("Sessions: failed to restore draft for user=%s, will retry: %v", flow.UserID, err)
		return
	}
	flow.restored = true
}

func (r *Registry) setActive(n int) {
	if r.metrics != nil {
		r.metrics.SetActiveSessions(n)
	}
}

func (r *Registry) newFlow(userID string) *Flow {
	engine := draft.NewEngine(r.DraftKey(userID), r.store, r.logger)
	appointments := ledger.New(userID, r.gateway, r.logger)
	submit := submit_booking.NewUseCase(userID, engine, appointments, r.gateway, r.metrics, r.logger)

	return &Flow{
		UserID: userID,
		Draft:  engine,
		Ledger: appointments,
		Submit: submit,
	}
}
