package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"app/internal/domain/model"

	"github.com/stretchr/testify/mock"
)

// =====================
// Mock: ProductRepository
// =====================

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) All(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	ps, _ := args.Get(0).([]model.Product)
	return ps, args.Error(1)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id string) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *MockProductRepository) ByCategory(ctx context.Context, slug string) ([]model.Product, error) {
	args := m.Called(ctx, slug)
	ps, _ := args.Get(0).([]model.Product)
	return ps, args.Error(1)
}

func (m *MockProductRepository) Featured(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	ps, _ := args.Get(0).([]model.Product)
	return ps, args.Error(1)
}

func (m *MockProductRepository) Newest(ctx context.Context, n int) ([]model.Product, error) {
	args := m.Called(ctx, n)
	ps, _ := args.Get(0).([]model.Product)
	return ps, args.Error(1)
}

func (m *MockProductRepository) OnSale(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	ps, _ := args.Get(0).([]model.Product)
	return ps, args.Error(1)
}

func (m *MockProductRepository) MaxPrice(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockProductRepository) Categories(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	cs, _ := args.Get(0).([]model.Category)
	return cs, args.Error(1)
}

func (m *MockProductRepository) FindCategoryBySlug(ctx context.Context, slug string) (model.Category, error) {
	args := m.Called(ctx, slug)
	c, _ := args.Get(0).(model.Category)
	return c, args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// =====================
// Mock: UserDirectory
// =====================

type MockUserDirectory struct {
	mock.Mock
}

func (m *MockUserDirectory) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserDirectory) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserDirectory) FindByID(ctx context.Context, userID string) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

// =====================
// Mock: AuthValidator
// =====================

type MockAuthValidator struct {
	mock.Mock
}

func (m *MockAuthValidator) ValidateLogin(email string, password string) error {
	args := m.Called(email, password)
	return args.Error(0)
}

func (m *MockAuthValidator) ValidateSignup(name string, email string, password string) error {
	args := m.Called(name, email, password)
	return args.Error(0)
}

// =====================
// Fake: KVStore
// =====================

// スナップショットの中身まで見たいのでmockではなくmapで持つ
type fakeKVStore struct {
	values  map[string]string
	failSet bool
}

func newFakeKVStore() *fakeKVStore {
	return &fakeKVStore{values: make(map[string]string)}
}

func (s *fakeKVStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *fakeKVStore) Set(ctx context.Context, key string, value string) error {
	if s.failSet {
		return errors.New("disk full")
	}
	s.values[key] = value
	return nil
}

func (s *fakeKVStore) Remove(ctx context.Context, key string) error {
	delete(s.values, key)
	return nil
}

// =====================
// Stub: Clock / IDGenerator / Issuer
// =====================

type fixedClock struct {
	at time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.at
}

type seqIDGenerator struct {
	n int
}

func (g *seqIDGenerator) NewID() string {
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

// 署名はしない（発行されたことだけ見る）
type stubTokenIssuer struct {
	ttl time.Duration
}

func (i *stubTokenIssuer) Issue(userID string, isAdmin bool, now time.Time) (string, time.Time, error) {
	return "token-for-" + userID, now.Add(i.ttl), nil
}
