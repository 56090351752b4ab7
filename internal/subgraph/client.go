package subgraph

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/feral-file/ff-land-rentals/internal/adapter"
	"github.com/feral-file/ff-land-rentals/internal/domain"
)

// Operation is a parsed GraphQL query document holding a single named operation
type Operation struct {
	Name     string
	Document string
}

// MustParseOperation parses a query document and panics if it is malformed.
// It is meant for package level query declarations.
func MustParseOperation(document string) Operation {
	op, err := ParseOperation(document)
	if err != nil {
		panic(err)
	}
	return op
}

// ParseOperation parses a query document and extracts its operation name
func ParseOperation(document string) (Operation, error) {
	doc, err := parser.ParseQuery(&ast.Source{Input: document})
	if err != nil {
		return Operation{}, fmt.Errorf("failed to parse graphql document: %w", err)
	}
	if len(doc.Operations) != 1 {
		return Operation{}, fmt.Errorf("graphql document must contain exactly one operation, got %d", len(doc.Operations))
	}
	name := doc.Operations[0].Name
	if name == "" {
		return Operation{}, fmt.Errorf("graphql operation must be named")
	}
	return Operation{Name: name, Document: document}, nil
}

// GraphQLRequest represents a GraphQL request
type GraphQLRequest struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables,omitempty"`
	OperationName string                 `json:"operationName"`
}

// GraphQLResponse represents a GraphQL response envelope
type GraphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors gqlerror.List   `json:"errors,omitempty"`
}

// Client runs GraphQL operations against a subgraph endpoint
//
//go:generate mockgen -source=client.go -destination=../mocks/subgraph_client.go -package=mocks -mock_names=Client=MockSubgraphClient
type Client interface {
	// Query runs the operation and decodes the response data into result
	Query(ctx context.Context, op Operation, variables map[string]interface{}, result interface{}) error
}

type client struct {
	httpClient adapter.HTTPClient
	url        string
	json       adapter.JSON
}

// NewClient creates a GraphQL client for the subgraph at url
func NewClient(httpClient adapter.HTTPClient, url string, json adapter.JSON) Client {
	return &client{
		httpClient: httpClient,
		url:        url,
		json:       json,
	}
}

func (c *client) Query(ctx context.Context, op Operation, variables map[string]interface{}, result interface{}) error {
	body, err := c.json.Marshal(GraphQLRequest{
		Query:         op.Document,
		Variables:     variables,
		OperationName: op.Name,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal graphql request: %w", err)
	}

	respBody, err := c.httpClient.Post(ctx, c.url, "application/json", body)
	if err != nil {
		return fmt.Errorf("failed to call subgraph %s: %w", op.Name, err)
	}

	var resp GraphQLResponse
	if err := c.json.Unmarshal(respBody, &resp); err != nil {
		return fmt.Errorf("failed to unmarshal subgraph response: %w", err)
	}
	if len(resp.Errors) > 0 {
		return fmt.Errorf("subgraph %s returned errors: %w", op.Name, resp.Errors)
	}
	if len(resp.Data) == 0 || string(resp.Data) == "null" {
		return fmt.Errorf("subgraph %s returned no data", op.Name)
	}

	if err := c.json.Unmarshal(resp.Data, result); err != nil {
		return fmt.Errorf("failed to unmarshal subgraph data: %w", err)
	}
	return nil
}

// paginate fetches pages of SUBGRAPH_PAGE entities ordered by id until a short page
// is returned. Each page starts after the last entity id of the previous one.
func paginate[T any](ctx context.Context, fetch func(ctx context.Context, first int, lastID string) ([]T, string, error)) ([]T, error) {
	var all []T
	lastID := ""
	for {
		page, cursor, err := fetch(ctx, domain.SUBGRAPH_PAGE, lastID)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < domain.SUBGRAPH_PAGE {
			return all, nil
		}
		lastID = cursor
	}
}
