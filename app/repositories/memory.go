package repositories

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Duvhier/jylclean-back/app/models"
)

// In-memory repositories backed by maps and a mutex. They implement
// the same behaviour as the Mongo repositories, including the
// conditional stock decrement, and back the test suite as well as
// database-less local runs.

// ── Users ────────────────────────────────────────────────────────────────────

type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]models.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: map[primitive.ObjectID]models.User{}}
}

func (r *MemoryUserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return ErrDuplicate
		}
	}

	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *MemoryUserRepository) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == strings.ToLower(email) {
			u := u
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryUserRepository) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryUserRepository) FindByResetToken(_ context.Context, tokenHash string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.ResetToken == tokenHash && u.ResetExpires.After(time.Now()) {
			u := u
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryUserRepository) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return ErrNotFound
	}
	for id, u := range r.users {
		if id != user.ID && (u.Username == user.Username || u.Email == user.Email) {
			return ErrDuplicate
		}
	}
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepository) PurgeExpiredResetTokens(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var purged int64
	for id, u := range r.users {
		if u.ResetToken != "" && u.ResetExpires.Before(time.Now()) {
			u.ResetToken = ""
			u.ResetExpires = time.Time{}
			r.users[id] = u
			purged++
		}
	}
	return purged, nil
}

func (r *MemoryUserRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *MemoryUserRepository) All(_ context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	return users, nil
}

// ── Products ─────────────────────────────────────────────────────────────────

type MemoryProductRepository struct {
	mu       sync.Mutex
	products map[primitive.ObjectID]models.Product
}

func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{products: map[primitive.ObjectID]models.Product{}}
}

func (r *MemoryProductRepository) All(_ context.Context) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	products := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		products = append(products, p)
	}
	return products, nil
}

func (r *MemoryProductRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (r *MemoryProductRepository) Create(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	product.UpdatedAt = time.Now()
	r.products[product.ID] = *product
	return nil
}

func (r *MemoryProductRepository) Update(_ context.Context, id primitive.ObjectID, patch models.ProductPatch) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return nil, ErrNotFound
	}

	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	p.UpdatedAt = time.Now()

	r.products[id] = p
	return &p, nil
}

func (r *MemoryProductRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *MemoryProductRepository) DecrementStock(_ context.Context, id primitive.ObjectID, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return ErrNotFound
	}
	if p.Stock < qty {
		return ErrInsufficientStock
	}
	p.Stock -= qty
	p.UpdatedAt = time.Now()
	r.products[id] = p
	return nil
}

func (r *MemoryProductRepository) IncrementStock(_ context.Context, id primitive.ObjectID, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return ErrNotFound
	}
	p.Stock += qty
	p.UpdatedAt = time.Now()
	r.products[id] = p
	return nil
}

// ── Carts ────────────────────────────────────────────────────────────────────

type MemoryCartRepository struct {
	mu    sync.Mutex
	carts map[primitive.ObjectID]models.Cart // keyed by user
}

func NewMemoryCartRepository() *MemoryCartRepository {
	return &MemoryCartRepository{carts: map[primitive.ObjectID]models.Cart{}}
}

func (r *MemoryCartRepository) FindByUser(_ context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.carts[userID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := c
	cp.Products = append([]models.CartItem(nil), c.Products...)
	return &cp, nil
}

func (r *MemoryCartRepository) Save(_ context.Context, cart *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cart.ID.IsZero() {
		cart.ID = primitive.NewObjectID()
	}
	if cart.Products == nil {
		cart.Products = []models.CartItem{}
	}
	cart.UpdatedAt = time.Now()

	stored := *cart
	stored.Products = append([]models.CartItem(nil), cart.Products...)
	r.carts[cart.User] = stored
	return nil
}

// ── Sales ────────────────────────────────────────────────────────────────────

type MemorySaleRepository struct {
	mu    sync.Mutex
	sales map[primitive.ObjectID]models.Sale
}

func NewMemorySaleRepository() *MemorySaleRepository {
	return &MemorySaleRepository{sales: map[primitive.ObjectID]models.Sale{}}
}

func (r *MemorySaleRepository) Create(_ context.Context, sale *models.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sale.ID.IsZero() {
		sale.ID = primitive.NewObjectID()
	}
	r.sales[sale.ID] = *sale
	return nil
}

func (r *MemorySaleRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sales[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (r *MemorySaleRepository) FindByUser(_ context.Context, userID primitive.ObjectID) ([]models.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var sales []models.Sale
	for _, s := range r.sales {
		if s.User == userID {
			sales = append(sales, s)
		}
	}
	return sales, nil
}

func (r *MemorySaleRepository) All(_ context.Context) ([]models.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sales := make([]models.Sale, 0, len(r.sales))
	for _, s := range r.sales {
		sales = append(sales, s)
	}
	return sales, nil
}

func (r *MemorySaleRepository) UpdateStatus(_ context.Context, id primitive.ObjectID, status models.SaleStatus) (*models.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sales[id]
	if !ok {
		return nil, ErrNotFound
	}
	s.Status = status
	r.sales[id] = s
	return &s, nil
}
