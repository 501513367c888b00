package services_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/motohub/dealership_service/internal/core/domain"
	"github.com/motohub/dealership_service/internal/core/ports"

	"github.com/google/uuid"
)

type noopLogger struct{}

func (noopLogger) Debug(string, map[string]interface{}) {}
func (noopLogger) Info(string, map[string]interface{})  {}
func (noopLogger) Warn(string, map[string]interface{})  {}
func (noopLogger) Error(string, map[string]interface{}) {}

type memCache struct {
	data map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}}
}

func (c *memCache) Get(key string) ([]byte, error) {
	v, ok := c.data[key]
	if !ok {
		return nil, errors.New("cache miss")
	}
	return v, nil
}

func (c *memCache) Set(key string, value []byte, _ time.Duration) error {
	c.data[key] = value
	return nil
}

func (c *memCache) Delete(key string) error {
	delete(c.data, key)
	return nil
}

// txStore is the in-memory state the fake transaction manager operates on.
// WithinTx runs the callback against a deep copy; only a nil return merges
// the copy back, which gives the same all-or-nothing behavior as a real
// database transaction.
type txStore struct {
	parts           map[uuid.UUID]*domain.Part
	motorcycles     map[uuid.UUID]*domain.Motorcycle
	cartSales       []*domain.CartSale
	cartItems       []*domain.CartSaleItem
	motorcycleSales []*domain.MotorcycleSale
}

func newTxStore() *txStore {
	return &txStore{
		parts:       map[uuid.UUID]*domain.Part{},
		motorcycles: map[uuid.UUID]*domain.Motorcycle{},
	}
}

func (s *txStore) clone() *txStore {
	c := newTxStore()
	for id, p := range s.parts {
		cp := *p
		c.parts[id] = &cp
	}
	for id, m := range s.motorcycles {
		cm := *m
		c.motorcycles[id] = &cm
	}
	c.cartSales = append(c.cartSales, s.cartSales...)
	c.cartItems = append(c.cartItems, s.cartItems...)
	c.motorcycleSales = append(c.motorcycleSales, s.motorcycleSales...)
	return c
}

type fakeTxManager struct {
	store     *txStore
	commitErr error
}

func newFakeTxManager(store *txStore) *fakeTxManager {
	return &fakeTxManager{store: store}
}

func (m *fakeTxManager) WithinTx(_ context.Context, fn func(r ports.TxRepos) error) error {
	working := m.store.clone()
	if err := fn(&fakeTxRepos{store: working}); err != nil {
		return err
	}
	if m.commitErr != nil {
		return fmt.Errorf("%w: %v", domain.ErrFinalizeSale, m.commitErr)
	}
	*m.store = *working
	return nil
}

type fakeTxRepos struct {
	store *txStore
}

func (r *fakeTxRepos) Parts() ports.PartTxRepository                     { return &fakePartTx{store: r.store} }
func (r *fakeTxRepos) CartSales() ports.CartSaleTxRepository             { return &fakeCartSaleTx{store: r.store} }
func (r *fakeTxRepos) Motorcycles() ports.MotorcycleTxRepository         { return &fakeMotorcycleTx{store: r.store} }
func (r *fakeTxRepos) MotorcycleSales() ports.MotorcycleSaleTxRepository { return &fakeMotorcycleSaleTx{store: r.store} }

type fakePartTx struct {
	store *txStore
}

func (f *fakePartTx) GetPartForUpdate(_ context.Context, partID uuid.UUID) (*domain.Part, error) {
	p, ok := f.store.parts[partID]
	if !ok {
		return nil, domain.ErrPartNotFound
	}
	return p, nil
}

func (f *fakePartTx) GetPartByCodeForUpdate(_ context.Context, code string, branch string) (*domain.Part, error) {
	for _, p := range f.store.parts {
		if p.Code == code && p.Branch == branch {
			return p, nil
		}
	}
	return nil, domain.ErrPartNotFound
}

func (f *fakePartTx) CreatePart(_ context.Context, part *domain.Part) error {
	cp := *part
	f.store.parts[part.ID] = &cp
	return nil
}

func (f *fakePartTx) DecrementStock(_ context.Context, partID uuid.UUID, quantity int) error {
	p, ok := f.store.parts[partID]
	if !ok {
		return domain.ErrPartNotFound
	}
	if p.Quantity < quantity {
		return domain.ErrInsufficientStock
	}
	p.Quantity -= quantity
	return nil
}

func (f *fakePartTx) IncrementStock(_ context.Context, partID uuid.UUID, quantity int) error {
	p, ok := f.store.parts[partID]
	if !ok {
		return domain.ErrPartNotFound
	}
	p.Quantity += quantity
	return nil
}

type fakeCartSaleTx struct {
	store *txStore
}

func (f *fakeCartSaleTx) InsertSale(_ context.Context, sale *domain.CartSale) error {
	f.store.cartSales = append(f.store.cartSales, sale)
	return nil
}

func (f *fakeCartSaleTx) InsertItem(_ context.Context, item *domain.CartSaleItem) error {
	f.store.cartItems = append(f.store.cartItems, item)
	return nil
}

type fakeMotorcycleTx struct {
	store *txStore
}

func (f *fakeMotorcycleTx) MarkSold(_ context.Context, motorcycleID uuid.UUID) error {
	m, ok := f.store.motorcycles[motorcycleID]
	if !ok || m.Status != domain.StatusAvailable {
		return domain.ErrMotorcycleUnavailable
	}
	m.Status = domain.StatusSold
	return nil
}

type fakeMotorcycleSaleTx struct {
	store *txStore
}

func (f *fakeMotorcycleSaleTx) InsertSale(_ context.Context, sale *domain.MotorcycleSale) error {
	f.store.motorcycleSales = append(f.store.motorcycleSales, sale)
	return nil
}

type fakeSaleRepo struct {
	cartSales       []*domain.CartSale
	motorcycleSales []*domain.MotorcycleSale
	records         []*domain.MotorcycleSaleRecord
}

func (f *fakeSaleRepo) GetCartSaleByID(_ context.Context, saleID uuid.UUID) (*domain.CartSale, error) {
	for _, s := range f.cartSales {
		if s.ID == saleID {
			return s, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeSaleRepo) ListCartSales(_ context.Context, branch string) ([]*domain.CartSale, error) {
	if branch == "" {
		return f.cartSales, nil
	}
	var out []*domain.CartSale
	for _, s := range f.cartSales {
		if s.Branch == branch {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSaleRepo) ListMotorcycleSales(_ context.Context, branch string) ([]*domain.MotorcycleSale, error) {
	if branch == "" {
		return f.motorcycleSales, nil
	}
	var out []*domain.MotorcycleSale
	for _, s := range f.motorcycleSales {
		if s.Branch == branch {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSaleRepo) ListMotorcycleSaleRecords(_ context.Context, branch string) ([]*domain.MotorcycleSaleRecord, error) {
	if branch == "" {
		return f.records, nil
	}
	var out []*domain.MotorcycleSaleRecord
	for _, r := range f.records {
		if r.Sale.Branch == branch {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakePartRepo struct {
	parts             map[uuid.UUID]*domain.Part
	helmetDecrements  []string
	helmetDecrementFn func(branch string) error
}

func newFakePartRepo() *fakePartRepo {
	return &fakePartRepo{parts: map[uuid.UUID]*domain.Part{}}
}

func (f *fakePartRepo) CreatePart(_ context.Context, part *domain.Part) (*domain.Part, error) {
	cp := *part
	f.parts[part.ID] = &cp
	return &cp, nil
}

func (f *fakePartRepo) GetPartByID(_ context.Context, partID uuid.UUID) (*domain.Part, error) {
	p, ok := f.parts[partID]
	if !ok {
		return nil, domain.ErrPartNotFound
	}
	return p, nil
}

func (f *fakePartRepo) ListParts(_ context.Context, branch string) ([]*domain.Part, error) {
	var out []*domain.Part
	for _, p := range f.parts {
		if branch == "" || p.Branch == branch {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePartRepo) UpdatePart(_ context.Context, part *domain.Part) (*domain.Part, error) {
	cp := *part
	f.parts[part.ID] = &cp
	return &cp, nil
}

func (f *fakePartRepo) DeletePart(_ context.Context, partID uuid.UUID) error {
	if _, ok := f.parts[partID]; !ok {
		return domain.ErrPartNotFound
	}
	delete(f.parts, partID)
	return nil
}

func (f *fakePartRepo) DecrementHelmetStock(_ context.Context, branch string) error {
	f.helmetDecrements = append(f.helmetDecrements, branch)
	if f.helmetDecrementFn != nil {
		return f.helmetDecrementFn(branch)
	}
	return nil
}

type fakeMotorcycleRepo struct {
	motorcycles map[uuid.UUID]*domain.Motorcycle
}

func newFakeMotorcycleRepo() *fakeMotorcycleRepo {
	return &fakeMotorcycleRepo{motorcycles: map[uuid.UUID]*domain.Motorcycle{}}
}

func (f *fakeMotorcycleRepo) CreateMotorcycle(_ context.Context, m *domain.Motorcycle) (*domain.Motorcycle, error) {
	cp := *m
	f.motorcycles[m.ID] = &cp
	return &cp, nil
}

func (f *fakeMotorcycleRepo) GetMotorcycleByID(_ context.Context, motorcycleID uuid.UUID) (*domain.Motorcycle, error) {
	m, ok := f.motorcycles[motorcycleID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return m, nil
}

func (f *fakeMotorcycleRepo) ListMotorcycles(_ context.Context, branch string, status domain.MotorcycleStatus) ([]*domain.Motorcycle, error) {
	var out []*domain.Motorcycle
	for _, m := range f.motorcycles {
		if branch != "" && m.Branch != branch {
			continue
		}
		if status != "" && m.Status != status {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeMotorcycleRepo) UpdateMotorcycle(_ context.Context, m *domain.Motorcycle) (*domain.Motorcycle, error) {
	cp := *m
	f.motorcycles[m.ID] = &cp
	return &cp, nil
}

func (f *fakeMotorcycleRepo) DeleteMotorcycle(_ context.Context, motorcycleID uuid.UUID) error {
	if _, ok := f.motorcycles[motorcycleID]; !ok {
		return domain.ErrNotFound
	}
	delete(f.motorcycles, motorcycleID)
	return nil
}

type fakeUserRepo struct {
	users map[string]*domain.User
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *domain.User) (*domain.User, error) {
	f.users[user.Username] = user
	return user, nil
}

func (f *fakeUserRepo) GetUserByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := f.users[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

type fakeTokenService struct {
	err error
}

func (f *fakeTokenService) CreateToken(user *domain.User) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token-for-" + user.Username, nil
}

func (f *fakeTokenService) VerifyToken(token string) (*domain.TokenPayload, error) {
	return nil, errors.New("not implemented")
}
