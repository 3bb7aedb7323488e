package reconcile

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var errDuplicate = errors.New("locale already exists")

// memStore is an in-memory collection backing, keyed by locale.
type memStore struct {
	items  map[string]RemoteItem
	nextID int
}

func newMemStore(items ...RemoteItem) *memStore {
	s := &memStore{items: make(map[string]RemoteItem)}
	for _, it := range items {
		s.items[it.Locale] = it
	}
	return s
}

func (s *memStore) clone() *memStore {
	c := &memStore{items: make(map[string]RemoteItem, len(s.items)), nextID: s.nextID}
	for k, it := range s.items {
		attrs := make(map[Field]string, len(it.Attributes))
		for f, v := range it.Attributes {
			attrs[f] = v
		}
		c.items[k] = RemoteItem{Locale: it.Locale, ID: it.ID, Attributes: attrs}
	}
	return c
}

// memCollection implements Collection over a memStore and records every call.
type memCollection struct {
	name   string
	fields []Field
	store  func() *memStore

	// hidden holds items that exist remotely but are missing from List,
	// simulating a record created concurrently elsewhere.
	hidden    map[string]RemoteItem
	failOn    map[string]error
	findEmpty bool

	calls []string
}

func newMemCollection(name string, fields []Field, store *memStore) *memCollection {
	return &memCollection{name: name, fields: fields, store: func() *memStore { return store }}
}

func (c *memCollection) Name() string    { return c.name }
func (c *memCollection) Fields() []Field { return c.fields }

func (c *memCollection) List(ctx context.Context) ([]RemoteItem, error) {
	c.calls = append(c.calls, "list")
	var out []RemoteItem
	for _, it := range c.store().items {
		out = append(out, it)
	}
	return out, nil
}

func (c *memCollection) Find(ctx context.Context, locale string) ([]RemoteItem, error) {
	c.calls = append(c.calls, "find "+locale)
	if c.findEmpty {
		return nil, nil
	}
	if it, ok := c.hidden[locale]; ok {
		return []RemoteItem{it}, nil
	}
	if it, ok := c.store().items[locale]; ok {
		return []RemoteItem{it}, nil
	}
	return nil, nil
}

func (c *memCollection) Create(ctx context.Context, locale string, patch Patch) (string, error) {
	c.calls = append(c.calls, "create "+locale)
	if err := c.failOn[locale]; err != nil {
		return "", err
	}
	if _, ok := c.hidden[locale]; ok {
		return "", fmt.Errorf("409: %w", errDuplicate)
	}
	s := c.store()
	if _, ok := s.items[locale]; ok {
		return "", fmt.Errorf("409: %w", errDuplicate)
	}
	s.nextID++
	id := fmt.Sprintf("%s-%d", c.name, s.nextID)
	attrs := make(map[Field]string, len(patch))
	for f, v := range patch {
		attrs[f] = v
	}
	s.items[locale] = RemoteItem{Locale: locale, ID: id, Attributes: attrs}
	return id, nil
}

func (c *memCollection) Update(ctx context.Context, id string, patch Patch) error {
	c.calls = append(c.calls, "update "+id)
	s := c.store()
	for locale, it := range c.hidden {
		if it.ID == id {
			s.items[locale] = it
			delete(c.hidden, locale)
		}
	}
	for locale, it := range s.items {
		if it.ID != id {
			continue
		}
		if err := c.failOn[locale]; err != nil {
			return err
		}
		for f, v := range patch {
			it.Attributes[f] = v
		}
		return nil
	}
	return fmt.Errorf("404: %s not found", id)
}

func (c *memCollection) IsDuplicate(err error) bool {
	return errors.Is(err, errDuplicate)
}

func (c *memCollection) count(prefix string) int {
	n := 0
	for _, call := range c.calls {
		if strings.HasPrefix(call, prefix) {
			n++
		}
	}
	return n
}

// memSessions stages mutations per session and publishes them on commit.
type memSessions struct {
	committed  *memStore
	staged     *memStore
	opened     int
	commits    int
	discards   int
	discardErr error
	// commitErr fails Commit; with commitLands the staged state is applied anyway.
	commitErr   error
	commitLands bool
}

func (m *memSessions) Open(ctx context.Context) (string, error) {
	m.opened++
	m.staged = m.committed.clone()
	return fmt.Sprintf("edit-%d", m.opened), nil
}

func (m *memSessions) Commit(ctx context.Context, id string) error {
	m.commits++
	if m.commitErr == nil || m.commitLands {
		m.committed = m.staged
	}
	m.staged = nil
	return m.commitErr
}

func (m *memSessions) Discard(ctx context.Context, id string) error {
	m.discards++
	m.staged = nil
	return m.discardErr
}

// memTarget adapts collections into a Target.
type memTarget struct {
	name        string
	collections []Collection
	err         error
}

func (t *memTarget) Name() string { return t.name }

func (t *memTarget) Collections(ctx context.Context, sessionID string) ([]Collection, error) {
	return t.collections, t.err
}

type memSessionTarget struct {
	memTarget
	sessions *memSessions
}

func (t *memSessionTarget) Sessions() SessionBackend { return t.sessions }

func rec(locale string, kv ...string) Record {
	r := NewRecord(locale)
	for i := 0; i+1 < len(kv); i += 2 {
		r.Set(Field(kv[i]), kv[i+1])
	}
	return r
}

func item(locale, id string, kv ...string) RemoteItem {
	attrs := make(map[Field]string)
	for i := 0; i+1 < len(kv); i += 2 {
		attrs[Field(kv[i])] = kv[i+1]
	}
	return RemoteItem{Locale: locale, ID: id, Attributes: attrs}
}
