package services

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/eventportal/internal/common"
	"github.com/dmitrijs2005/eventportal/internal/logging"
	"github.com/dmitrijs2005/eventportal/internal/server/models"
	"github.com/dmitrijs2005/eventportal/internal/server/notify"
	"github.com/dmitrijs2005/eventportal/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/eventportal/internal/server/repositories/events"
)

// --- repository manager ---

type fakeRepoMgr struct {
	accounts accounts.Repository
	events   events.Repository
}

func (m *fakeRepoMgr) RunMigrations(context.Context) error { return nil }
func (m *fakeRepoMgr) Accounts() accounts.Repository       { return m.accounts }
func (m *fakeRepoMgr) Events() events.Repository           { return m.events }
func (m *fakeRepoMgr) Ping(context.Context) error          { return nil }
func (m *fakeRepoMgr) Close(context.Context) error         { return nil }

// --- accounts ---

type memAccounts struct {
	mu      sync.Mutex
	byEmail map[string]*models.User
	nextID  int

	findErr   error
	insertErr error
	activErr  error
}

func newMemAccounts() *memAccounts {
	return &memAccounts{byEmail: map[string]*models.User{}}
}

func (r *memAccounts) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memAccounts) Insert(_ context.Context, u *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return nil, r.insertErr
	}
	if _, ok := r.byEmail[u.Email]; ok {
		return nil, common.ErrDuplicateAccount
	}
	r.nextID++
	cp := *u
	cp.ID = strconv.Itoa(r.nextID)
	r.byEmail[u.Email] = &cp
	out := cp
	return &out, nil
}

func (r *memAccounts) ActivateIfOtpMatches(_ context.Context, email, code string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.activErr != nil {
		return nil, r.activErr
	}
	u, ok := r.byEmail[email]
	if !ok || u.OtpCode == nil || *u.OtpCode != code {
		return nil, common.ErrorNotFound
	}
	u.IsActive = true
	u.OtpCode = nil
	cp := *u
	return &cp, nil
}

// --- events ---

type memEvents struct {
	mu     sync.Mutex
	items  map[string]*models.Event
	nextID int

	lastLimit int
	createErr error
}

func newMemEvents() *memEvents {
	return &memEvents{items: map[string]*models.Event{}}
}

func (r *memEvents) List(_ context.Context, community, q string, limit int) ([]*models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastLimit = limit
	var out []*models.Event
	for _, e := range r.items {
		if e.Community != community {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(e.Name), strings.ToLower(q)) {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memEvents) Create(_ context.Context, e *models.Event) (*models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	cp := *e
	cp.ID = "ev" + strconv.Itoa(r.nextID)
	r.items[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *memEvents) UpdateName(_ context.Context, id, name string, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.items[id]
	if !ok {
		return common.ErrorNotFound
	}
	e.Name = name
	e.UpdatedAt = updatedAt
	return nil
}

func (r *memEvents) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

// --- hasher / sender ---

type plainHasher struct {
	hashErr   error
	verifyErr error

	verifyCalls int
}

func (h *plainHasher) Hash(raw string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return "h:" + raw, nil
}

func (h *plainHasher) Verify(raw, hash string) (bool, error) {
	h.verifyCalls++
	if h.verifyErr != nil {
		return false, h.verifyErr
	}
	return hash == "h:"+raw, nil
}

type recordingSender struct {
	mu   sync.Mutex
	sent []notify.Message
	err  error
}

func (s *recordingSender) Send(_ context.Context, m notify.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, m)
	return s.err
}

// --- logger ---

type logEntry struct {
	level string
	msg   string
	args  []any
}

type captureLogger struct {
	mu      *sync.Mutex
	entries *[]logEntry
}

func newCaptureLogger() *captureLogger {
	return &captureLogger{mu: &sync.Mutex{}, entries: &[]logEntry{}}
}

func (l *captureLogger) add(level, msg string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	*l.entries = append(*l.entries, logEntry{level: level, msg: msg, args: args})
}

func (l *captureLogger) Debug(_ context.Context, msg string, args ...any) { l.add("debug", msg, args) }
func (l *captureLogger) Info(_ context.Context, msg string, args ...any)  { l.add("info", msg, args) }
func (l *captureLogger) Warn(_ context.Context, msg string, args ...any)  { l.add("warn", msg, args) }
func (l *captureLogger) Error(_ context.Context, msg string, args ...any) { l.add("error", msg, args) }
func (l *captureLogger) With(...any) logging.Logger                       { return l }

func (l *captureLogger) find(level, msg string) (logEntry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range *l.entries {
		if e.level == level && e.msg == msg {
			return e, true
		}
	}
	return logEntry{}, false
}

var errBoom = errors.New("boom")
