package application

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/roundup-savings/internal/domain/entity"
)

// TransactionsMapping is the index mapping EnsureIndex creates at startup.
const TransactionsMapping = `{
  "mappings": {
    "properties": {
      "id":               {"type": "keyword"},
      "user_id":          {"type": "keyword"},
      "description":      {"type": "text"},
      "amount":           {"type": "scaled_float", "scaling_factor": 100},
      "applied_rounding": {"type": "scaled_float", "scaling_factor": 100},
      "saved_amount":     {"type": "scaled_float", "scaling_factor": 100},
      "created_at":       {"type": "date"}
    }
  }
}`

// TransactionSearch mirrors transactions into Elasticsearch for full-text
// lookup by description. A nil client turns every call into a no-op.
type TransactionSearch struct {
	ES     *elasticsearch.Client
	Index  string
	Logger *logrus.Logger
}

func NewTransactionSearch(es *elasticsearch.Client, index string, logger *logrus.Logger) *TransactionSearch {
	return &TransactionSearch{ES: es, Index: index, Logger: logger}
}

type transactionDoc struct {
	ID              string `json:"id"`
	UserID          string `json:"user_id"`
	Description     string `json:"description"`
	Amount          string `json:"amount"`
	AppliedRounding string `json:"applied_rounding"`
	SavedAmount     string `json:"saved_amount"`
	CreatedAt       string `json:"created_at"`
}

// SearchHit is one matching transaction as stored in the index.
type SearchHit struct {
	ID              string    `json:"id"`
	Description     string    `json:"description"`
	Amount          string    `json:"amount"`
	AppliedRounding string    `json:"appliedRounding"`
	SavedAmount     string    `json:"savedAmount"`
	CreatedAt       time.Time `json:"createdAt"`
	Score           float64   `json:"score"`
}

func (s *TransactionSearch) enabled() bool {
	return s != nil && s.ES != nil && s.Index != ""
}

func (s *TransactionSearch) IndexTransaction(ctx context.Context, t entity.Transaction) error {
	if !s.enabled() {
		return nil
	}
	b, err := json.Marshal(transactionDoc{
		ID:              t.ID,
		UserID:          t.UserID,
		Description:     t.Description,
		Amount:          t.Amount.StringFixed(2),
		AppliedRounding: t.AppliedRounding.StringFixed(2),
		SavedAmount:     t.SavedAmount.StringFixed(2),
		CreatedAt:       t.CreatedAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: s.Index, DocumentID: t.ID, Body: bytes.NewReader(b), Refresh: "false"}
	res, err := req.Do(ctx, s.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("index transaction %s: %s", t.ID, res.Status())
	}
	return nil
}

// Search matches q against descriptions of userID's transactions only.
func (s *TransactionSearch) Search(ctx context.Context, userID, q string, size int) ([]SearchHit, error) {
	if !s.enabled() {
		return []SearchHit{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": []any{
					map[string]any{"match": map[string]any{
						"description": map[string]any{"query": q, "fuzziness": "AUTO"},
					}},
				},
				"filter": []any{
					map[string]any{"term": map[string]any{"user_id": userID}},
				},
			},
		},
		"size": size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.Index),
		s.ES.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("search transactions: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Score  float64        `json:"_score"`
				Source transactionDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]SearchHit, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		created, _ := time.Parse(time.RFC3339Nano, h.Source.CreatedAt)
		out = append(out, SearchHit{
			ID:              h.Source.ID,
			Description:     h.Source.Description,
			Amount:          h.Source.Amount,
			AppliedRounding: h.Source.AppliedRounding,
			SavedAmount:     h.Source.SavedAmount,
			CreatedAt:       created,
			Score:           h.Score,
		})
	}
	return out, nil
}
