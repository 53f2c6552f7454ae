package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/Skotchmaster/buket_shop/internal/models"
	"github.com/Skotchmaster/buket_shop/pkg/config"
)

// Client searches and indexes catalog products in Elasticsearch.
type Client struct {
	es    *elasticsearch.Client
	index string
}

// NewClient connects to cfg.ESURL and checks the cluster answers.
func NewClient(ctx context.Context, cfg config.Config) (*Client, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.ESURL},
		Username:  cfg.ESUser,
		Password:  cfg.ESPassword,
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client: %w", err)
	}

	res, err := es.Info(es.Info.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("elasticsearch info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch info: %s", res.Status())
	}

	return &Client{es: es, index: cfg.ESIndex}, nil
}

func (c *Client) Search(ctx context.Context, query string, from, size int) (int64, []models.ProductView, error) {
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"name^2", "description"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("encode search body: %w", err)
	}

	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(c.index),
		c.es.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("search: %s", responseError(res.Status(), res.Body))
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.ProductView `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, fmt.Errorf("decode search response: %w", err)
	}

	prods := make([]models.ProductView, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		prods[i] = hit.Source
		if prods[i].Images == nil {
			prods[i].Images = models.Images{}
		}
	}
	return r.Hits.Total.Value, prods, nil
}

// IndexProducts upserts products into the index with one bulk request and
// returns how many documents were accepted.
func (c *Client) IndexProducts(ctx context.Context, products []models.ProductView) (int, error) {
	if len(products) == 0 {
		return 0, nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, p := range products {
		meta := map[string]any{"index": map[string]any{"_id": strconv.FormatUint(uint64(p.ID), 10)}}
		if err := enc.Encode(meta); err != nil {
			return 0, fmt.Errorf("encode bulk meta: %w", err)
		}
		if err := enc.Encode(p); err != nil {
			return 0, fmt.Errorf("encode product %d: %w", p.ID, err)
		}
	}

	res, err := c.es.Bulk(&buf,
		c.es.Bulk.WithContext(ctx),
		c.es.Bulk.WithIndex(c.index),
		c.es.Bulk.WithRefresh("true"),
	)
	if err != nil {
		return 0, fmt.Errorf("bulk index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, fmt.Errorf("bulk index: %s", responseError(res.Status(), res.Body))
	}

	var r struct {
		Errors bool `json:"errors"`
		Items  []map[string]struct {
			Status int `json:"status"`
			Error  *struct {
				Reason string `json:"reason"`
			} `json:"error"`
		} `json:"items"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, fmt.Errorf("decode bulk response: %w", err)
	}

	indexed := 0
	var firstErr string
	for _, item := range r.Items {
		for _, op := range item {
			if op.Error == nil && op.Status < 300 {
				indexed++
			} else if firstErr == "" && op.Error != nil {
				firstErr = op.Error.Reason
			}
		}
	}
	if r.Errors {
		return indexed, fmt.Errorf("bulk index: %d of %d failed: %s", len(products)-indexed, len(products), firstErr)
	}
	return indexed, nil
}

func responseError(status string, body io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(body, 512))
	if len(b) == 0 {
		return status
	}
	return status + ": " + string(bytes.TrimSpace(b))
}
