// Package audit indexes authentication events into Elasticsearch for the
// security dashboard. Indexing is fire-and-forget: a failure is logged and
// never fails the request that produced the event.
package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/swapmart/auth-service/pkg/logging"
)

const Index = "auth-audit"

type Indexer struct {
	client *elasticsearch.Client
}

func NewIndexer(url, user, password string) (*Indexer, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{url},
		Username:  user,
		Password:  password,
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client: %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("elasticsearch info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("elasticsearch error: %s: %s", res.Status(), body)
	}

	return &Indexer{client: client}, nil
}

// Record indexes one audit document. Errors are logged, not returned.
func (i *Indexer) Record(ctx context.Context, action, userID string, fields map[string]any) {
	doc := map[string]any{
		"action":  action,
		"user_id": userID,
		"at":      time.Now().UTC().Format(time.RFC3339),
	}
	for k, v := range fields {
		doc[k] = v
	}

	data, err := json.Marshal(doc)
	if err != nil {
		logging.FromContext(ctx).Error("audit_marshal_failed", "error", err)
		return
	}

	res, err := i.client.Index(Index, bytes.NewReader(data),
		i.client.Index.WithContext(ctx))
	if err != nil {
		logging.FromContext(ctx).Error("audit_index_failed", "action", action, "error", err)
		return
	}
	defer res.Body.Close()
	if res.IsError() {
		logging.FromContext(ctx).Error("audit_index_failed", "action", action, "status", res.Status())
	}
}
