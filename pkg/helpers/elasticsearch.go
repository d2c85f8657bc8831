package helpers

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
)

// NewESClient creates an Elasticsearch client with sane defaults and optional basic auth.
func NewESClient(addrs []string, username, password string) (*elasticsearch.Client, error) {
	cfg := elasticsearch.Config{
		Addresses: addrs,
		Username:  username,
		Password:  password,
		Transport: &http.Transport{
			MaxIdleConnsPerHost:   10,
			ResponseHeaderTimeout: 5 * time.Second,
			TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
			DialContext:           (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
		},
	}
	return elasticsearch.NewClient(cfg)
}

// EnsureUsersIndex creates the users index with keyword/text mappings
// for the directory fields. A 400 from an already-existing index is
// fine.
func EnsureUsersIndex(ctx context.Context, es *elasticsearch.Client, index string) error {
	body := `{
	  "mappings": {
	    "properties": {
	      "id":         {"type": "keyword"},
	      "email":      {"type": "text"},
	      "first_name": {"type": "text"},
	      "last_name":  {"type": "text"},
	      "job":        {"type": "text"},
	      "created_at": {"type": "date"},
	      "updated_at": {"type": "date"}
	    }
	  }
	}`
	c, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	res, err := es.Indices.Create(index,
		es.Indices.Create.WithContext(c),
		es.Indices.Create.WithBody(strings.NewReader(body)),
	)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusBadRequest {
		return &esIndexError{status: res.Status()}
	}
	return nil
}

type esIndexError struct {
	status string
}

func (e *esIndexError) Error() string {
	return "elasticsearch index create failed: " + e.status
}
