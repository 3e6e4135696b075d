// internal/cache/product_cache.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/shopfront/ecommerce-backend/internal/config"
	"github.com/shopfront/ecommerce-backend/internal/models"
	"github.com/shopfront/ecommerce-backend/internal/repository"
)

const productKeyPrefix = "shopfront:product:"

// ProductRepository is a read-through Redis cache in front of another
// ProductRepository. Single product reads are cached; every write evicts the
// affected key. Redis failures are logged and the call goes to the store.
type ProductRepository struct {
	repository.ProductRepository
	client *redis.Client
	ttl    time.Duration
}

func NewProductRepository(next repository.ProductRepository, client *redis.Client, ttl time.Duration) *ProductRepository {
	return &ProductRepository{
		ProductRepository: next,
		client:            client,
		ttl:               ttl,
	}
}

// NewClient connects to Redis and verifies the connection.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

func productKey(id uuid.UUID) string {
	return productKeyPrefix + id.String()
}

func (r *ProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	key := productKey(id)

	data, err := r.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var product models.Product
		if jsonErr := json.Unmarshal(data, &product); jsonErr == nil {
			return &product, nil
		}
		logrus.WithField("key", key).Warn("Discarding unreadable cached product")
	case err != redis.Nil:
		logrus.WithError(err).WithField("key", key).Warn("Product cache read failed")
	}

	product, err := r.ProductRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(product); err == nil {
		if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
			logrus.WithError(err).WithField("key", key).Warn("Product cache write failed")
		}
	}
	return product, nil
}

func (r *ProductRepository) evict(ctx context.Context, id uuid.UUID) {
	if err := r.client.Del(ctx, productKey(id)).Err(); err != nil {
		logrus.WithError(err).WithField("product_id", id).Warn("Product cache eviction failed")
	}
}

func (r *ProductRepository) Update(ctx context.Context, product *models.Product) error {
	defer r.evict(ctx, product.ID)
	return r.ProductRepository.Update(ctx, product)
}

func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	defer r.evict(ctx, id)
	return r.ProductRepository.Delete(ctx, id)
}

func (r *ProductRepository) DecrementStock(ctx context.Context, id uuid.UUID, qty int) (bool, error) {
	defer r.evict(ctx, id)
	return r.ProductRepository.DecrementStock(ctx, id, qty)
}

func (r *ProductRepository) IncrementStock(ctx context.Context, id uuid.UUID, qty int) (bool, error) {
	defer r.evict(ctx, id)
	return r.ProductRepository.IncrementStock(ctx, id, qty)
}

func (r *ProductRepository) AddReview(ctx context.Context, product *models.Product, review *models.ProductReview) error {
	defer r.evict(ctx, product.ID)
	return r.ProductRepository.AddReview(ctx, product, review)
}
