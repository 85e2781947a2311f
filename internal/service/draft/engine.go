package draft

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
	draftStorage "github.com/m04kA/SMC-BookingFlow/internal/infra/storage/draft"
)

// Engine владеет черновиком бронирования одного пользователя и следит за его согласованностью.
//
// Порядок шагов: бизнес -> мастер -> услуги -> дата/время -> подтверждение.
// Смена бизнеса сбрасывает всё, что выбрано после него; смена мастера сбрасывает только дату/время.
// После каждой мутации бизнеса, мастера или услуг сохраняется снимок {бизнес, мастер, услуги, итоги}.
type Engine struct {
	mu    sync.RWMutex
	draft domain.BookingDraft
	seq   uint64

	// persistMu упорядочивает передачу снимков в хранилище, не задерживая читателей черновика
	persistMu sync.Mutex
	persisted uint64

	key    string
	store  SnapshotStore
	logger Logger
}

// pendingWrite снимок, зафиксированный под e.mu; snapshot == nil означает удаление
type pendingWrite struct {
	seq      uint64
	snapshot *domain.DraftSnapshot
}

// NewEngine создает пустой черновик, сохраняемый под ключом key
func NewEngine(key string, store SnapshotStore, logger Logger) *Engine {
	return &Engine{
		key:    key,
		store:  store,
		logger: logger,
	}
}

// Draft возвращает копию текущего черновика
func (e *Engine) Draft() domain.BookingDraft {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.draft.Clone()
}

// SetBusiness заменяет бизнес и сбрасывает мастера, услуги, дату/время и итоги
func (e *Engine) SetBusiness(business domain.BusinessRef) {
	e.mu.Lock()
	e.draft.Business = &business
	e.draft.Staff = nil
	e.draft.Services = nil
	e.draft.Schedule = domain.ScheduleChoice{}
	e.recompute()
	w := e.stage()
	e.mu.Unlock()

	e.persist(w)
}

// SetStaff заменяет мастера. Услуги не трогаем (они привязаны к бизнесу),
// а дату/время сбрасываем: доступность зависит от мастера.
func (e *Engine) SetStaff(staff domain.StaffRef) {
	e.mu.Lock()
	w := e.setStaff(staff)
	e.mu.Unlock()

	e.persist(w)
}

// SetStaffFor выбирает мастера, только если в черновике всё ещё бизнес businessID.
// Возвращает false, если бизнес успел смениться.
func (e *Engine) SetStaffFor(businessID string, staff domain.StaffRef) bool {
	e.mu.Lock()
	if !e.hasBusiness(businessID) {
		e.mu.Unlock()
		return false
	}
	w := e.setStaff(staff)
	e.mu.Unlock()

	e.persist(w)
	return true
}

// AddService добавляет услугу, если услуги с таким ID ещё нет
func (e *Engine) AddService(service domain.Service) {
	e.mu.Lock()
	w, changed := e.addService(service)
	e.mu.Unlock()

	if changed {
		e.persist(w)
	}
}

// AddServiceFor добавляет услугу, только если в черновике всё ещё бизнес businessID.
// Возвращает false, если бизнес успел смениться; повтор уже выбранной услуги - true.
func (e *Engine) AddServiceFor(businessID string, service domain.Service) bool {
	e.mu.Lock()
	if !e.hasBusiness(businessID) {
		e.mu.Unlock()
		return false
	}
	w, changed := e.addService(service)
	e.mu.Unlock()

	if changed {
		e.persist(w)
	}
	return true
}

// RemoveService удаляет услугу по ID; отсутствующий ID игнорируется
func (e *Engine) RemoveService(serviceID string) {
	e.mu.Lock()
	idx := -1
	for i, s := range e.draft.Services {
		if s.ID == serviceID {
			idx = i
			break
		}
	}
	if idx < 0 {
		e.mu.Unlock()
		return
	}

	services := make([]domain.Service, 0, len(e.draft.Services)-1)
	services = append(services, e.draft.Services[:idx]...)
	services = append(services, e.draft.Services[idx+1:]...)
	e.draft.Services = services
	e.recompute()
	w := e.stage()
	e.mu.Unlock()

	e.persist(w)
}

// ClearServices очищает список услуг; итоги становятся нулевыми
func (e *Engine) ClearServices() {
	e.mu.Lock()
	e.draft.Services = nil
	e.recompute()
	w := e.stage()
	e.mu.Unlock()

	e.persist(w)
}

// SetDateTime задает дату и слот вместе.
// Пустое значение одного из них оставляет расписание неполным, отправка такого черновика отклоняется.
func (e *Engine) SetDateTime(date, slot string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.draft.Schedule = domain.ScheduleChoice{Date: date, Slot: slot}
}

// SetNotes сохраняет комментарий без валидации
func (e *Engine) SetNotes(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.draft.Notes = text
}

// Reset возвращает черновик в пустое состояние и удаляет сохранённый снимок
func (e *Engine) Reset() {
	e.mu.Lock()
	e.draft = domain.BookingDraft{}
	e.seq++
	w := pendingWrite{seq: e.seq}
	e.mu.Unlock()

	e.persist(w)
}

// Restore загружает сохранённую часть черновика.
// Дата/время и комментарий никогда не восстанавливаются. Если черновик уже
// менялся в этой сессии, локальное состояние новее снимка и остаётся как есть.
func (e *Engine) Restore(ctx context.Context) error {
	snapshot, err := e.store.Load(ctx, e.key)
	if err != nil {
		if errors.Is(err, draftStorage.ErrSnapshotNotFound) {
			e.logger.Info("Restore: no snapshot for key=%s", e.key)
			return nil
		}
		if errors.Is(err, draftStorage.ErrDecode) {
			e.logger.Warn("Restore: discarding unreadable snapshot key=%s: %v", e.key, err)
			return nil
		}
		e.logger.Error("Restore: failed to load snapshot key=%s: %v", e.key, err)
		return fmt.Errorf("%w: key=%s: %w", ErrRestore, e.key, err)
	}

	if snapshot.SchemaVersion != domain.DraftSchemaVersion {
		e.logger.Warn("Restore: discarding snapshot key=%s with schema version %d (expected %d)",
			e.key, snapshot.SchemaVersion, domain.DraftSchemaVersion)
		return nil
	}

	restored := snapshot.ToDraft()

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.seq > 0 {
		e.logger.Warn("Restore: draft key=%s changed before restore, keeping local state", e.key)
		return nil
	}

	restored.Schedule = e.draft.Schedule
	restored.Notes = e.draft.Notes
	e.draft = restored
	e.logger.Info("Restore: restored draft key=%s, services=%d", e.key, len(restored.Services))
	return nil
}

// Вызывающий должен держать e.mu.
func (e *Engine) hasBusiness(businessID string) bool {
	return e.draft.Business != nil && e.draft.Business.ID == businessID
}

// Вызывающий должен держать e.mu.
func (e *Engine) setStaff(staff domain.StaffRef) pendingWrite {
	e.draft.Staff = &staff
	e.draft.Schedule = domain.ScheduleChoice{}
	return e.stage()
}

// Вызывающий должен держать e.mu.
func (e *Engine) addService(service domain.Service) (pendingWrite, bool) {
	if e.draft.HasService(service.ID) {
		return pendingWrite{}, false
	}
	e.draft.Services = append(e.draft.Services, service)
	e.recompute()
	return e.stage(), true
}

// recompute пересчитывает итоги синхронно; вызывается после каждой мутации услуг.
// Вызывающий должен держать e.mu.
func (e *Engine) recompute() {
	e.draft.Totals = domain.ComputeTotals(e.draft.Services)
}

// stage фиксирует снимок текущего состояния с номером мутации.
// Вызывающий должен держать e.mu.
func (e *Engine) stage() pendingWrite {
	e.seq++
	snapshot := e.draft.Snapshot()
	return pendingWrite{seq: e.seq, snapshot: &snapshot}
}

// persist передаёт снимок в хранилище уже без e.mu. Снимок старее переданного
// ранее отбрасывается. Ошибка записи не откатывает изменение в памяти.
func (e *Engine) persist(w pendingWrite) {
	e.persistMu.Lock()
	defer e.persistMu.Unlock()

	if w.seq <= e.persisted {
		return
	}
	e.persisted = w.seq

	if w.snapshot == nil {
		if err := e.store.Delete(context.Background(), e.key); err != nil {
			e.logger.Error("persist: failed to delete snapshot key=%s: %v", e.key, err)
		}
		return
	}

	if err := e.store.Save(context.Background(), e.key, *w.snapshot); err != nil {
		e.logger.Error("persist: failed to save snapshot key=%s: %v", e.key, err)
	}
}
