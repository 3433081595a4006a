// Package opensearch provides a sink that indexes messages into an
// OpenSearch index and reads them back ordered by append sequence.
package opensearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/loykin/logmirror/internal/sink"
	osclient "github.com/opensearch-project/opensearch-go"
)

// Sink indexes one document per Append with refresh forced, so the
// document is searchable before Append returns. Search order is not
// insertion order, so documents carry a sequence field and read-back
// sorts on it.
type Sink struct {
	client *osclient.Client
	index  string
	host   string
	seq    uint64
}

// New builds a client for the given base URL and verifies the cluster
// answers a ping (retried with a capped backoff) before returning.
func New(baseURL, index, user, pass, host string) (*Sink, error) {
	if baseURL == "" || index == "" {
		return nil, fmt.Errorf("opensearch url and index are required")
	}
	cfg := osclient.Config{Addresses: []string{baseURL}}
	if user != "" {
		cfg.Username = user
		cfg.Password = pass
	}
	cli, err := osclient.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 100 * time.Millisecond
	bo.MaxInterval = 2 * time.Second
	bo.MaxElapsedTime = 10 * time.Second
	err = backoff.Retry(func() error {
		res, err := cli.Ping()
		if err != nil {
			return err
		}
		defer func() { _ = res.Body.Close() }()
		if res.IsError() {
			return fmt.Errorf("opensearch ping status: %s", res.Status())
		}
		return nil
	}, bo)
	if err != nil {
		return nil, fmt.Errorf("opensearch not reachable: %w", err)
	}
	return &Sink{client: cli, index: index, host: host}, nil
}

var _ sink.Sink = (*Sink)(nil)

func (s *Sink) Name() string { return "opensearch" }

// Append indexes a single document with refresh=true (write-through).
func (s *Sink) Append(msg string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	s.seq++
	doc := map[string]any{
		"seq":        s.seq,
		"@timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		"message":    msg,
		"host":       s.host,
	}
	b, err := json.Marshal(doc)
	if err != nil {
		s.seq--
		return err
	}
	res, err := s.client.Index(s.index, bytes.NewReader(b),
		s.client.Index.WithContext(ctx),
		s.client.Index.WithRefresh("true"))
	if err != nil {
		s.seq--
		return fmt.Errorf("opensearch index failed: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		s.seq--
		return fmt.Errorf("opensearch index status: %s", res.Status())
	}
	return nil
}

// ReadAll searches the index sorted by seq ascending and extracts the
// message field of every hit.
func (s *Sink) ReadAll() ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	query := `{"query":{"match_all":{}},"sort":[{"seq":{"order":"asc"}}],"size":10000}`
	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(strings.NewReader(query)),
	)
	if err != nil {
		return nil, fmt.Errorf("opensearch search failed: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("opensearch search status: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source struct {
					Message string `json:"message"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("opensearch response decode failed: %w", err)
	}
	var messages []string
	for _, h := range parsed.Hits.Hits {
		messages = append(messages, h.Source.Message)
	}
	return messages, nil
}

func (s *Sink) Close() error { return nil }
