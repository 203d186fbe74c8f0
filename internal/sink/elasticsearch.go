package sink

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	es "github.com/elastic/go-elasticsearch/v8"

	"github.com/jonesrussell/fightcrawl/internal/domain"
)

const rankingsMapping = `{
  "mappings": {
    "properties": {
      "fighter_id":   {"type": "keyword"},
      "date":         {"type": "date", "format": "yyyy-MM-dd"},
      "weight_class": {"type": "keyword"},
      "rank":         {"type": "integer"},
      "rank_change":  {"type": "integer"},
      "points":       {"type": "integer"}
    }
  }
}`

const fightersMapping = `{
  "mappings": {
    "properties": {
      "fighter_id":          {"type": "keyword"},
      "fighter_name":        {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "tapology_fighter_id": {"type": "keyword"},
      "sherdog_fighter_id":  {"type": "keyword"}
    }
  }
}`

// Elasticsearch indexes records under deterministic document ids, so a
// re-crawl replaces the previous document.
type Elasticsearch struct {
	client        *es.Client
	rankingsIndex string
	fightersIndex string
}

// NewElasticsearch creates a sink writing to the given indices.
func NewElasticsearch(client *es.Client, rankingsIndex, fightersIndex string) *Elasticsearch {
	return &Elasticsearch{
		client:        client,
		rankingsIndex: rankingsIndex,
		fightersIndex: fightersIndex,
	}
}

// EnsureIndices creates missing indices with their mappings.
func (s *Elasticsearch) EnsureIndices(ctx context.Context) error {
	for index, mapping := range map[string]string{
		s.rankingsIndex: rankingsMapping,
		s.fightersIndex: fightersMapping,
	} {
		if err := s.ensureIndex(ctx, index, mapping); err != nil {
			return err
		}
	}
	return nil
}

func (s *Elasticsearch) ensureIndex(ctx context.Context, index, mapping string) error {
	res, err := s.client.Indices.Exists([]string{index}, s.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("check index %s: %w", index, err)
	}
	res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}
	if res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("check index %s: %s", index, res.Status())
	}

	res, err = s.client.Indices.Create(index,
		s.client.Indices.Create.WithContext(ctx),
		s.client.Indices.Create.WithBody(strings.NewReader(mapping)),
	)
	if err != nil {
		return fmt.Errorf("create index %s: %w", index, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("create index %s: %s", index, res.String())
	}
	return nil
}

// WriteRanking indexes r.
func (s *Elasticsearch) WriteRanking(ctx context.Context, r domain.Ranking) error {
	return s.index(ctx, s.rankingsIndex, DocumentID(r.Key()), r)
}

// WriteFighter indexes f.
func (s *Elasticsearch) WriteFighter(ctx context.Context, f domain.Fighter) error {
	return s.index(ctx, s.fightersIndex, DocumentID(f.FighterID), f)
}

func (s *Elasticsearch) index(ctx context.Context, index, id string, doc any) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	res, err := s.client.Index(
		index,
		bytes.NewReader(body),
		s.client.Index.WithContext(ctx),
		s.client.Index.WithDocumentID(id),
	)
	if err != nil {
		return fmt.Errorf("failed to index document: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error indexing document: %s", res.String())
	}
	return nil
}

// Close is a no-op; the client holds no resources that need releasing.
func (s *Elasticsearch) Close() error { return nil }

// DocumentID hashes a record key into a path-safe document id.
func DocumentID(key string) string {
	h := sha256.Sum256([]byte(key))
	return hex.EncodeToString(h[:])
}
