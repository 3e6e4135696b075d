// internal/repository/memory.go
package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shopfront/ecommerce-backend/internal/models"
	"github.com/shopfront/ecommerce-backend/internal/utils"
)

// MemoryStore keeps users, products and orders in process memory. Every
// record handed out is a copy, so callers never share state with the store.
// It backs DB_DRIVER=memory and the unit tests.
type MemoryStore struct {
	mu sync.RWMutex

	users    map[uuid.UUID]models.User
	products map[uuid.UUID]models.Product
	orders   map[uuid.UUID]models.Order

	// insertion order, oldest first
	productSeq []uuid.UUID
	orderSeq   []uuid.UUID
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[uuid.UUID]models.User),
		products: make(map[uuid.UUID]models.Product),
		orders:   make(map[uuid.UUID]models.Order),
	}
}

func (m *MemoryStore) Users() UserRepository       { return &memoryUsers{m} }
func (m *MemoryStore) Products() ProductRepository { return &memoryProducts{m} }
func (m *MemoryStore) Orders() OrderRepository     { return &memoryOrders{m} }

func stamp(base *models.BaseModel) {
	now := time.Now()
	if base.ID == uuid.Nil {
		base.ID = uuid.New()
	}
	if base.CreatedAt.IsZero() {
		base.CreatedAt = now
	}
	base.UpdatedAt = now
}

func copyProduct(p models.Product) models.Product {
	p.Images = append([]string(nil), p.Images...)
	p.Reviews = append([]models.ProductReview(nil), p.Reviews...)
	return p
}

func copyOrder(o models.Order) models.Order {
	o.Items = append([]models.OrderItem(nil), o.Items...)
	if o.User != nil {
		u := *o.User
		o.User = &u
	}
	return o
}

type memoryUsers struct{ m *MemoryStore }

func (r *memoryUsers) Create(_ context.Context, user *models.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	stamp(&user.BaseModel)
	r.m.users[user.ID] = *user
	return nil
}

func (r *memoryUsers) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	user, ok := r.m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (r *memoryUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	for _, user := range r.m.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryUsers) Update(_ context.Context, user *models.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if _, ok := r.m.users[user.ID]; !ok {
		return ErrNotFound
	}
	user.UpdatedAt = time.Now()
	r.m.users[user.ID] = *user
	return nil
}

func (r *memoryUsers) CountAdmins(_ context.Context) (int64, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	var count int64
	for _, user := range r.m.users {
		if user.IsAdmin {
			count++
		}
	}
	return count, nil
}

type memoryProducts struct{ m *MemoryStore }

func (r *memoryProducts) Create(_ context.Context, product *models.Product) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	stamp(&product.BaseModel)
	r.m.products[product.ID] = copyProduct(*product)
	r.m.productSeq = append(r.m.productSeq, product.ID)
	return nil
}

func (r *memoryProducts) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	product, ok := r.m.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	product = copyProduct(product)
	return &product, nil
}

// newest returns live products newest first, without reviews.
func (r *memoryProducts) newest() []models.Product {
	products := make([]models.Product, 0, len(r.m.productSeq))
	for i := len(r.m.productSeq) - 1; i >= 0; i-- {
		if product, ok := r.m.products[r.m.productSeq[i]]; ok {
			product = copyProduct(product)
			product.Reviews = nil
			products = append(products, product)
		}
	}
	return products
}

func (r *memoryProducts) List(_ context.Context, params utils.PaginationParams) ([]models.Product, int64, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	search := strings.ToLower(params.Search)
	var matched []models.Product
	for _, product := range r.newest() {
		if params.Category != "" && product.Category != params.Category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(product.Name), search) &&
			!strings.Contains(strings.ToLower(product.Brand), search) {
			continue
		}
		matched = append(matched, product)
	}

	switch params.Sort {
	case "price":
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Price < matched[j].Price })
	case "rating":
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Rating < matched[j].Rating })
	case "name":
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	}
	if params.Sort != "" && params.Sort != "created_at" && params.Order == "desc" {
		for i, j := 0, len(matched)-1; i < j; i, j = i+1, j-1 {
			matched[i], matched[j] = matched[j], matched[i]
		}
	}

	total := int64(len(matched))
	offset := (params.Page - 1) * params.Limit
	if offset < 0 || offset >= len(matched) {
		return []models.Product{}, total, nil
	}
	end := offset + params.Limit
	if params.Limit <= 0 || end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *memoryProducts) FindAll(_ context.Context) ([]models.Product, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	return r.newest(), nil
}

func (r *memoryProducts) Update(_ context.Context, product *models.Product) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	stored, ok := r.m.products[product.ID]
	if !ok {
		return ErrNotFound
	}
	stored.Name = product.Name
	stored.Brand = product.Brand
	stored.Category = product.Category
	stored.Description = product.Description
	stored.Price = product.Price
	stored.Images = append([]string(nil), product.Images...)
	stored.CountInStock = product.CountInStock
	stored.Bestseller = product.Bestseller
	stored.UpdatedAt = time.Now()
	r.m.products[product.ID] = stored
	return nil
}

func (r *memoryProducts) Delete(_ context.Context, id uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if _, ok := r.m.products[id]; !ok {
		return ErrNotFound
	}
	delete(r.m.products, id)
	for i, seqID := range r.m.productSeq {
		if seqID == id {
			r.m.productSeq = append(r.m.productSeq[:i], r.m.productSeq[i+1:]...)
			break
		}
	}
	return nil
}

func (r *memoryProducts) DecrementStock(_ context.Context, id uuid.UUID, qty int) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	product, ok := r.m.products[id]
	if !ok || product.CountInStock < qty {
		return false, nil
	}
	product.CountInStock -= qty
	r.m.products[id] = product
	return true, nil
}

func (r *memoryProducts) IncrementStock(_ context.Context, id uuid.UUID, qty int) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	product, ok := r.m.products[id]
	if !ok {
		return false, nil
	}
	product.CountInStock += qty
	r.m.products[id] = product
	return true, nil
}

func (r *memoryProducts) AddReview(_ context.Context, product *models.Product, review *models.ProductReview) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	stored, ok := r.m.products[product.ID]
	if !ok {
		return ErrNotFound
	}
	review.ProductID = product.ID
	stamp(&review.BaseModel)

	stored.Reviews = append(append([]models.ProductReview(nil), stored.Reviews...), *review)
	stored.Rating = product.Rating
	stored.NumReviews = product.NumReviews
	stored.Bestseller = product.Bestseller
	r.m.products[product.ID] = stored
	return nil
}

type memoryOrders struct{ m *MemoryStore }

// withOwner attaches the owner's name and email the way the gorm preload does.
func (r *memoryOrders) withOwner(order models.Order) models.Order {
	order = copyOrder(order)
	if user, ok := r.m.users[order.UserID]; ok {
		order.User = &models.User{BaseModel: models.BaseModel{ID: user.ID}, Name: user.Name, Email: user.Email}
	}
	return order
}

func (r *memoryOrders) Create(_ context.Context, order *models.Order) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	stamp(&order.BaseModel)
	for i := range order.Items {
		stamp(&order.Items[i].BaseModel)
		order.Items[i].OrderID = order.ID
	}
	stored := copyOrder(*order)
	stored.User = nil
	r.m.orders[order.ID] = stored
	r.m.orderSeq = append(r.m.orderSeq, order.ID)
	return nil
}

func (r *memoryOrders) FindByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	order, ok := r.m.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	order = r.withOwner(order)
	return &order, nil
}

func (r *memoryOrders) newest(keep func(models.Order) bool) []models.Order {
	orders := []models.Order{}
	for i := len(r.m.orderSeq) - 1; i >= 0; i-- {
		order, ok := r.m.orders[r.m.orderSeq[i]]
		if ok && keep(order) {
			orders = append(orders, order)
		}
	}
	return orders
}

func (r *memoryOrders) FindByUser(_ context.Context, userID uuid.UUID) ([]models.Order, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	orders := r.newest(func(o models.Order) bool { return o.UserID == userID })
	for i := range orders {
		orders[i] = copyOrder(orders[i])
	}
	return orders, nil
}

func (r *memoryOrders) FindAll(_ context.Context) ([]models.Order, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	orders := r.newest(func(models.Order) bool { return true })
	for i := range orders {
		orders[i] = r.withOwner(orders[i])
	}
	return orders, nil
}

func (r *memoryOrders) Update(_ context.Context, order *models.Order) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	stored, ok := r.m.orders[order.ID]
	if !ok {
		return ErrNotFound
	}
	updated := copyOrder(*order)
	updated.Items = stored.Items
	updated.User = nil
	updated.Status = stored.Status
	updated.CreatedAt = stored.CreatedAt
	updated.UpdatedAt = time.Now()
	r.m.orders[order.ID] = updated
	return nil
}

func (r *memoryOrders) TransitionStatus(_ context.Context, id uuid.UUID, to models.OrderStatus, unless ...models.OrderStatus) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	stored, ok := r.m.orders[id]
	if !ok {
		return false, nil
	}
	for _, status := range unless {
		if strings.EqualFold(string(stored.Status), string(status)) {
			return false, nil
		}
	}
	stored.Status = to
	stored.UpdatedAt = time.Now()
	r.m.orders[id] = stored
	return true, nil
}

func (r *memoryOrders) DeleteAll(_ context.Context) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	deleted := int64(len(r.m.orders))
	r.m.orders = make(map[uuid.UUID]models.Order)
	r.m.orderSeq = nil
	return deleted, nil
}
