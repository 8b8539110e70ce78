package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"hadirku_backend/internals/features/attendance/session/model"
)

// fakeSessionStore meniru semantik GormSessionStore di memory, termasuk
// dua unique index partial (satu active per employee, satu break terbuka
// per sesi) dan natural key — supaya test engine & race berjalan tanpa DB.
type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]model.AttendanceSessionModel
	breaks   map[uuid.UUID]model.AttendanceBreakModel
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{
		sessions: make(map[uuid.UUID]model.AttendanceSessionModel),
		breaks:   make(map[uuid.UUID]model.AttendanceBreakModel),
	}
}

func (st *fakeSessionStore) CreateActive(_ context.Context, s *model.AttendanceSessionModel) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	for _, existing := range st.sessions {
		if existing.AttendanceSessionEmployeeId == s.AttendanceSessionEmployeeId &&
			existing.AttendanceSessionStatus == model.SessionStatusActive {
			return ErrDuplicateActiveSession
		}
		if existing.AttendanceSessionEmployeeId == s.AttendanceSessionEmployeeId &&
			existing.AttendanceSessionCheckInTime.Equal(s.AttendanceSessionCheckInTime) {
			return ErrDuplicateNaturalKey
		}
	}
	s.AttendanceSessionId = uuid.New()
	s.AttendanceSessionStatus = model.SessionStatusActive
	s.AttendanceSessionCreatedAt = time.Now()
	st.sessions[s.AttendanceSessionId] = *s
	return nil
}

func (st *fakeSessionStore) GetByID(_ context.Context, id uuid.UUID) (*model.AttendanceSessionModel, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	out := s
	return &out, nil
}

func (st *fakeSessionStore) GetActiveByEmployee(_ context.Context, employeeID uuid.UUID) (*model.AttendanceSessionModel, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	for _, s := range st.sessions {
		if s.AttendanceSessionEmployeeId == employeeID && s.AttendanceSessionStatus == model.SessionStatusActive {
			out := s
			return &out, nil
		}
	}
	return nil, ErrSessionNotFound
}

func (st *fakeSessionStore) Update(_ context.Context, s *model.AttendanceSessionModel) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[s.AttendanceSessionId]; !ok {
		return ErrSessionNotFound
	}
	st.sessions[s.AttendanceSessionId] = *s
	return nil
}

func (st *fakeSessionStore) List(_ context.Context, f SessionFilter, limit, offset int) ([]model.AttendanceSessionModel, int64, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	var rows []model.AttendanceSessionModel
	for _, s := range st.sessions {
		if s.AttendanceSessionTenantId != f.TenantID {
			continue
		}
		if len(f.EmployeeIDs) > 0 {
			match := false
			for _, id := range f.EmployeeIDs {
				if s.AttendanceSessionEmployeeId == id {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		if f.From != nil && s.AttendanceSessionCheckInTime.Before(*f.From) {
			continue
		}
		if f.To != nil && !s.AttendanceSessionCheckInTime.Before(*f.To) {
			continue
		}
		rows = append(rows, s)
	}
	total := int64(len(rows))
	if offset > len(rows) {
		offset = len(rows)
	}
	end := offset + limit
	if limit <= 0 || end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end], total, nil
}

func (st *fakeSessionStore) CreateBreak(_ context.Context, b *model.AttendanceBreakModel) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	for _, existing := range st.breaks {
		if existing.AttendanceBreakSessionId == b.AttendanceBreakSessionId && existing.AttendanceBreakEnd == nil {
			return ErrBreakAlreadyOpen
		}
	}
	b.AttendanceBreakId = uuid.New()
	b.AttendanceBreakCreatedAt = time.Now()
	st.breaks[b.AttendanceBreakId] = *b
	return nil
}

func (st *fakeSessionStore) GetBreakByID(_ context.Context, id uuid.UUID) (*model.AttendanceBreakModel, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	b, ok := st.breaks[id]
	if !ok {
		return nil, ErrBreakNotFound
	}
	out := b
	return &out, nil
}

func (st *fakeSessionStore) GetOpenBreak(_ context.Context, sessionID uuid.UUID) (*model.AttendanceBreakModel, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	for _, b := range st.breaks {
		if b.AttendanceBreakSessionId == sessionID && b.AttendanceBreakEnd == nil {
			out := b
			return &out, nil
		}
	}
	return nil, ErrNoOpenBreak
}

func (st *fakeSessionStore) ListBreaks(_ context.Context, sessionID uuid.UUID) ([]model.AttendanceBreakModel, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	var rows []model.AttendanceBreakModel
	for _, b := range st.breaks {
		if b.AttendanceBreakSessionId == sessionID {
			rows = append(rows, b)
		}
	}
	return rows, nil
}

func (st *fakeSessionStore) UpdateBreak(_ context.Context, b *model.AttendanceBreakModel) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.breaks[b.AttendanceBreakId]; !ok {
		return ErrBreakNotFound
	}
	st.breaks[b.AttendanceBreakId] = *b
	return nil
}

func (st *fakeSessionStore) InsertSynced(_ context.Context, s *model.AttendanceSessionModel, breaks []model.AttendanceBreakModel) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	for _, existing := range st.sessions {
		if existing.AttendanceSessionEmployeeId == s.AttendanceSessionEmployeeId &&
			existing.AttendanceSessionCheckInTime.Equal(s.AttendanceSessionCheckInTime) {
			return ErrDuplicateNaturalKey
		}
	}
	s.AttendanceSessionId = uuid.New()
	s.AttendanceSessionSyncStatus = model.SyncStatusSynced
	s.AttendanceSessionCreatedAt = time.Now()
	st.sessions[s.AttendanceSessionId] = *s
	for i := range breaks {
		breaks[i].AttendanceBreakId = uuid.New()
		breaks[i].AttendanceBreakSessionId = s.AttendanceSessionId
		st.breaks[breaks[i].AttendanceBreakId] = breaks[i]
	}
	return nil
}

func (st *fakeSessionStore) activeCountForEmployee(employeeID uuid.UUID) int {
	st.mu.Lock()
	defer st.mu.Unlock()
	n := 0
	for _, s := range st.sessions {
		if s.AttendanceSessionEmployeeId == employeeID && s.AttendanceSessionStatus == model.SessionStatusActive {
			n++
		}
	}
	return n
}
