package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/trip-service/internal/config"
	"github.com/spec-kit/trip-service/internal/domain"
	"github.com/spec-kit/trip-service/internal/persistence"
)

// PackingItem is one entry from the external packing-list API.
type PackingItem struct {
	Name          string         `json:"name"`
	WeightInGrams int            `json:"weightInGrams"`
	Quantity      int            `json:"quantity"`
	Description   string         `json:"description"`
	Category      string         `json:"category"`
	CreatedAt     string         `json:"createdAt"`
	UpdatedAt     string         `json:"updatedAt"`
	BuyingOptions []BuyingOption `json:"buyingOptions"`
}

// BuyingOption is a shop offer for a packing item.
type BuyingOption struct {
	ShopName string  `json:"shopName"`
	ShopURL  string  `json:"shopUrl"`
	Price    float64 `json:"price"`
}

// PackingList is the external API response for one category.
type PackingList struct {
	Items []PackingItem `json:"items"`
}

// TotalWeightGrams sums item weight times quantity.
func (l *PackingList) TotalWeightGrams() int {
	total := 0
	for _, item := range l.Items {
		total += item.WeightInGrams * item.Quantity
	}
	return total
}

// PackingClient fetches the packing list for a trip category.
type PackingClient interface {
	PackingList(ctx context.Context, category domain.Category) (*PackingList, error)
}

// packingClient calls the packing API over HTTP, caching responses in
// Redis per category.
type packingClient struct {
	rest     *resty.Client
	cache    *persistence.Redis
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewPackingClient builds the HTTP-backed client.
func NewPackingClient(cfg config.PackingConfig, cache *persistence.Redis, logger *zap.Logger) PackingClient {
	rest := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout())

	return &packingClient{
		rest:     rest,
		cache:    cache,
		cacheTTL: cfg.CacheTTL(),
		logger:   logger,
	}
}

func (c *packingClient) PackingList(ctx context.Context, category domain.Category) (*PackingList, error) {
	key := "packing:" + strings.ToLower(string(category))

	if cached := c.fromCache(ctx, key); cached != nil {
		return cached, nil
	}

	var list PackingList
	resp, err := c.rest.R().
		SetContext(ctx).
		SetResult(&list).
		Get("/packinglist/" + strings.ToLower(string(category)))
	if err != nil {
		return nil, fmt.Errorf("fetch packing list: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch packing list: status %d", resp.StatusCode())
	}

	c.toCache(ctx, key, &list)
	return &list, nil
}

func (c *packingClient) fromCache(ctx context.Context, key string) *PackingList {
	if c.cache == nil || c.cache.Client == nil {
		return nil
	}
	raw, err := c.cache.Client.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	var list PackingList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil
	}
	return &list
}

func (c *packingClient) toCache(ctx context.Context, key string, list *PackingList) {
	if c.cache == nil || c.cache.Client == nil {
		return
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return
	}
	if err := c.cache.Client.Set(ctx, key, raw, c.cacheTTL).Err(); err != nil {
		c.logger.Warn("packing cache write failed", zap.Error(err))
	}
}
