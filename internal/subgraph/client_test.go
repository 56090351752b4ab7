package subgraph_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-land-rentals/internal/adapter"
	"github.com/feral-file/ff-land-rentals/internal/mocks"
	"github.com/feral-file/ff-land-rentals/internal/subgraph"
)

const subgraphURL = "https://subgraph.test/rentals"

// testClient bundles the subgraph client with its mocked transport
type testClient struct {
	ctrl       *gomock.Controller
	httpClient *mocks.MockHTTPClient
	client     subgraph.Client
}

func setupTestClient(t *testing.T) *testClient {
	ctrl := gomock.NewController(t)
	httpClient := mocks.NewMockHTTPClient(ctrl)

	return &testClient{
		ctrl:       ctrl,
		httpClient: httpClient,
		client:     subgraph.NewClient(httpClient, subgraphURL, adapter.NewJSON()),
	}
}

func tearDownTestClient(tc *testClient) {
	tc.ctrl.Finish()
}

// sentRequest is the decoded body posted to the subgraph
type sentRequest struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}

// expectQuery answers the next POST with response and hands the decoded request to inspect
func (tc *testClient) expectQuery(t *testing.T, response string, inspect func(req sentRequest)) *gomock.Call {
	return tc.httpClient.EXPECT().
		Post(gomock.Any(), subgraphURL, "application/json", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ string, body []byte) ([]byte, error) {
			var req sentRequest
			require.NoError(t, json.Unmarshal(body, &req))
			if inspect != nil {
				inspect(req)
			}
			return []byte(response), nil
		})
}

var testOperation = subgraph.MustParseOperation(`query Ping($id: ID!) {
  ping(id: $id) {
    id
  }
}`)

// ====================================================================================
// ParseOperation Tests
// ====================================================================================

func TestParseOperation(t *testing.T) {
	tests := []struct {
		name     string
		document string
		wantName string
		wantErr  string
	}{
		{
			name:     "named query",
			document: `query Ping { ping }`,
			wantName: "Ping",
		},
		{
			name:     "anonymous query",
			document: `{ ping }`,
			wantErr:  "must be named",
		},
		{
			name:     "two operations",
			document: `query A { a } query B { b }`,
			wantErr:  "exactly one operation",
		},
		{
			name:     "syntax error",
			document: `query Broken { ping `,
			wantErr:  "failed to parse graphql document",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, err := subgraph.ParseOperation(tt.document)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, op.Name)
			assert.Equal(t, tt.document, op.Document)
		})
	}
}

// ====================================================================================
// Query Tests
// ====================================================================================

func TestQuery_Success(t *testing.T) {
	tc := setupTestClient(t)
	defer tearDownTestClient(tc)

	tc.expectQuery(t, `{"data":{"ping":{"id":"1"}}}`, func(req sentRequest) {
		assert.Equal(t, "Ping", req.OperationName)
		assert.Equal(t, testOperation.Document, req.Query)
		assert.Equal(t, map[string]interface{}{"id": "1"}, req.Variables)
	})

	var result struct {
		Ping struct {
			ID string `json:"id"`
		} `json:"ping"`
	}
	err := tc.client.Query(context.Background(), testOperation, map[string]interface{}{"id": "1"}, &result)

	require.NoError(t, err)
	assert.Equal(t, "1", result.Ping.ID)
}

func TestQuery_Failures(t *testing.T) {
	tests := []struct {
		name     string
		response string
		postErr  error
		wantErr  string
	}{
		{
			name:    "transport error",
			postErr: errors.New("request failed after retries: retryable status code 503"),
			wantErr: "failed to call subgraph Ping",
		},
		{
			name:     "graphql errors",
			response: `{"data":null,"errors":[{"message":"indexing_error"}]}`,
			wantErr:  "indexing_error",
		},
		{
			name:     "no data",
			response: `{}`,
			wantErr:  "returned no data",
		},
		{
			name:     "null data",
			response: `{"data":null}`,
			wantErr:  "returned no data",
		},
		{
			name:     "malformed body",
			response: `<html>`,
			wantErr:  "failed to unmarshal subgraph response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := setupTestClient(t)
			defer tearDownTestClient(tc)

			tc.httpClient.EXPECT().
				Post(gomock.Any(), subgraphURL, "application/json", gomock.Any()).
				Return([]byte(tt.response), tt.postErr)

			var result map[string]interface{}
			err := tc.client.Query(context.Background(), testOperation, nil, &result)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
