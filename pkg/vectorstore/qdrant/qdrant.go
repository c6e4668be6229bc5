// Package qdrant is a minimal REST client for a Qdrant server. The backend is
// addressed purely by URL; collections use cosine distance, fixed at creation.
package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"tribe-chatbot-be/pkg/vectorstore"
)

type Config struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

type Store struct {
	url    string
	apiKey string
	client *http.Client
}

var _ vectorstore.VectorStore = &Store{}

func NewStore(cfg Config) *Store {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Store{
		url:    cfg.URL,
		apiKey: cfg.APIKey,
		client: &http.Client{Timeout: timeout},
	}
}

type collectionInfoResponse struct {
	Result struct {
		Config struct {
			Params struct {
				Vectors struct {
					Size     int    `json:"size"`
					Distance string `json:"distance"`
				} `json:"vectors"`
			} `json:"params"`
		} `json:"config"`
	} `json:"result"`
}

func (s *Store) CollectionExists(ctx context.Context, collection string) (bool, error) {
	status, _, err := s.do(ctx, http.MethodGet, s.collectionURL(collection), nil)
	if err != nil {
		return false, err
	}
	switch {
	case status == http.StatusNotFound:
		return false, nil
	case status >= 300:
		return false, fmt.Errorf("qdrant: get collection %s: status %d", collection, status)
	default:
		return true, nil
	}
}

func (s *Store) EnsureCollection(ctx context.Context, collection string, vectorSize int) error {
	status, body, err := s.do(ctx, http.MethodGet, s.collectionURL(collection), nil)
	if err != nil {
		return err
	}

	if status == http.StatusOK {
		var info collectionInfoResponse
		if err := json.Unmarshal(body, &info); err != nil {
			return fmt.Errorf("qdrant: decode collection info: %w", err)
		}
		if info.Result.Config.Params.Vectors.Size != vectorSize {
			return fmt.Errorf("%w: collection %s has size %d, embedding produces %d",
				vectorstore.ErrDimensionMismatch, collection, info.Result.Config.Params.Vectors.Size, vectorSize)
		}
		return nil
	}
	if status != http.StatusNotFound {
		return fmt.Errorf("qdrant: get collection %s: status %d", collection, status)
	}

	payload := map[string]interface{}{
		"vectors": map[string]interface{}{
			"size":     vectorSize,
			"distance": "Cosine",
		},
	}
	status, body, err = s.do(ctx, http.MethodPut, s.collectionURL(collection), payload)
	if err != nil {
		return err
	}
	if status >= 300 {
		return fmt.Errorf("qdrant: create collection %s: status %d: %s", collection, status, body)
	}
	return nil
}

func (s *Store) Upsert(ctx context.Context, collection string, points []vectorstore.Point) error {
	if len(points) == 0 {
		return nil
	}

	body := make([]map[string]interface{}, len(points))
	for i, p := range points {
		body[i] = map[string]interface{}{
			"id":      p.ID,
			"vector":  p.Vector,
			"payload": p.Payload,
		}
	}

	url := s.collectionURL(collection) + "/points?wait=true"
	status, respBody, err := s.do(ctx, http.MethodPut, url, map[string]interface{}{"points": body})
	if err != nil {
		return err
	}
	if status == http.StatusNotFound {
		return fmt.Errorf("%w: %s", vectorstore.ErrCollectionNotFound, collection)
	}
	if status >= 300 {
		return fmt.Errorf("qdrant: upsert into %s: status %d: %s", collection, status, respBody)
	}
	return nil
}

type searchResponse struct {
	Result []struct {
		ID      interface{}            `json:"id"`
		Score   float64                `json:"score"`
		Payload map[string]interface{} `json:"payload"`
	} `json:"result"`
}

func (s *Store) Search(ctx context.Context, collection string, vector []float32, topK int, match map[string]interface{}) ([]vectorstore.Hit, error) {
	if topK <= 0 {
		topK = 3
	}

	payload := map[string]interface{}{
		"vector":       vector,
		"limit":        topK,
		"with_payload": true,
	}
	if len(match) > 0 {
		var must []map[string]interface{}
		for key, value := range match {
			must = append(must, map[string]interface{}{
				"key":   key,
				"match": map[string]interface{}{"value": value},
			})
		}
		payload["filter"] = map[string]interface{}{"must": must}
	}

	url := s.collectionURL(collection) + "/points/search"
	status, body, err := s.do(ctx, http.MethodPost, url, payload)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", vectorstore.ErrCollectionNotFound, collection)
	}
	if status >= 300 {
		return nil, fmt.Errorf("qdrant: search %s: status %d: %s", collection, status, body)
	}

	var decoded searchResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("qdrant: decode search response: %w", err)
	}

	hits := make([]vectorstore.Hit, 0, len(decoded.Result))
	for _, r := range decoded.Result {
		hits = append(hits, vectorstore.Hit{
			ID:      fmt.Sprintf("%v", r.ID),
			Score:   r.Score,
			Payload: r.Payload,
		})
	}
	return hits, nil
}

func (s *Store) collectionURL(collection string) string {
	return fmt.Sprintf("%s/collections/%s", s.url, collection)
}

// do sends one JSON request and returns the status code and raw body. Non-2xx
// statuses are returned to the caller for interpretation, not treated as
// transport errors.
func (s *Store) do(ctx context.Context, method, url string, payload interface{}) (int, []byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("qdrant: marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("qdrant: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("qdrant: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("qdrant: read response: %w", err)
	}
	return resp.StatusCode, body, nil
}
