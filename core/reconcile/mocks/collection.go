package mocks

import (
	"context"

	"storelisting/core/reconcile"

	"github.com/stretchr/testify/mock"
)

// Collection is a mock implementation of reconcile.Collection
type Collection struct {
	mock.Mock
}

func (m *Collection) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *Collection) Fields() []reconcile.Field {
	args := m.Called()
	if fields, ok := args.Get(0).([]reconcile.Field); ok {
		return fields
	}
	return nil
}

func (m *Collection) List(ctx context.Context) ([]reconcile.RemoteItem, error) {
	args := m.Called(ctx)
	if items, ok := args.Get(0).([]reconcile.RemoteItem); ok {
		return items, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Collection) Find(ctx context.Context, locale string) ([]reconcile.RemoteItem, error) {
	args := m.Called(ctx, locale)
	if items, ok := args.Get(0).([]reconcile.RemoteItem); ok {
		return items, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Collection) Create(ctx context.Context, locale string, patch reconcile.Patch) (string, error) {
	args := m.Called(ctx, locale, patch)
	return args.String(0), args.Error(1)
}

func (m *Collection) Update(ctx context.Context, id string, patch reconcile.Patch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *Collection) IsDuplicate(err error) bool {
	args := m.Called(err)
	return args.Bool(0)
}

// SessionBackend is a mock implementation of reconcile.SessionBackend
type SessionBackend struct {
	mock.Mock
}

func (m *SessionBackend) Open(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *SessionBackend) Commit(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *SessionBackend) Discard(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
