package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ckobridge/internal/checkout"
	"ckobridge/internal/config"
	"ckobridge/internal/ops"
)

// testClient drives the server over io.Pipe the way a real MCP client
// talks to it over stdio.
type testClient struct {
	writer *io.PipeWriter
	reader *bufio.Reader
	cancel context.CancelFunc
	nextID int64
}

func newTestClient(t *testing.T) *testClient {
	return newTestClientWithBaseURL(t, "http://127.0.0.1:1") // no provider needed
}

func newTestClientWithBaseURL(t *testing.T, baseURL string) *testClient {
	t.Helper()

	serverInR, serverInW := io.Pipe()
	serverOutR, serverOutW := io.Pipe()

	factory := checkout.NewFactory(config.CheckoutConfig{
		SecretKey: "sk_sbox_test",
		BaseURL:   baseURL,
	})
	server := NewServer(ops.New(factory, zap.NewNop()))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		_ = server.RunForIO(ctx, serverInR, serverOutW)
		serverOutW.Close()
	}()

	client := &testClient{
		writer: serverInW,
		reader: bufio.NewReader(serverOutR),
		cancel: cancel,
	}
	t.Cleanup(func() {
		client.cancel()
		client.writer.Close()
	})
	return client
}

func (c *testClient) call(t *testing.T, method string, params interface{}) *MCPResponse {
	t.Helper()

	c.nextID++
	req := map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      c.nextID,
		"method":  method,
	}
	if params != nil {
		req["params"] = params
	}
	data, err := json.Marshal(req)
	require.NoError(t, err)
	data = append(data, '\n')

	_, err = c.writer.Write(data)
	require.NoError(t, err)

	line, err := c.reader.ReadBytes('\n')
	require.NoError(t, err)

	var resp MCPResponse
	require.NoError(t, json.Unmarshal(line, &resp))
	return &resp
}

func (c *testClient) callTool(t *testing.T, name string, args map[string]interface{}) CallToolResult {
	t.Helper()

	resp := c.call(t, "tools/call", map[string]interface{}{
		"name":      name,
		"arguments": args,
	})
	require.Nil(t, resp.Error)

	data, err := json.Marshal(resp.Result)
	require.NoError(t, err)
	var result CallToolResult
	require.NoError(t, json.Unmarshal(data, &result))
	return result
}

func TestInitialize(t *testing.T) {
	client := newTestClient(t)

	resp := client.call(t, "initialize", map[string]interface{}{
		"protocolVersion": "2024-11-05",
	})

	require.Nil(t, resp.Error)
	data, err := json.Marshal(resp.Result)
	require.NoError(t, err)
	var result InitializeResult
	require.NoError(t, json.Unmarshal(data, &result))
	assert.Equal(t, "checkout", result.ServerInfo.Name)
	assert.NotNil(t, result.Capabilities.Tools)
}

func TestListTools(t *testing.T) {
	client := newTestClient(t)

	resp := client.call(t, "tools/list", nil)
	require.Nil(t, resp.Error)

	data, err := json.Marshal(resp.Result)
	require.NoError(t, err)
	var result ListToolsResult
	require.NoError(t, json.Unmarshal(data, &result))

	names := make([]string, len(result.Tools))
	for i, tool := range result.Tools {
		names[i] = tool.Name
	}
	assert.Equal(t, []string{"refund_payment", "lookup_payment_info", "create_payment_link"}, names)
}

func TestUnknownMethod(t *testing.T) {
	client := newTestClient(t)

	resp := client.call(t, "resources/list", nil)

	require.NotNil(t, resp.Error)
	assert.Equal(t, -32601, resp.Error.Code)
}

func TestCallToolValidationErrorsComeBackAsText(t *testing.T) {
	client := newTestClient(t)

	result := client.callTool(t, "refund_payment", map[string]interface{}{})

	assert.False(t, result.IsError)
	require.Len(t, result.Content, 1)
	assert.Equal(t, "⚠️ Error: Please provide a payment ID to refund.", result.Content[0].Text)
}

func TestCallToolLookupRequiresKey(t *testing.T) {
	client := newTestClient(t)

	result := client.callTool(t, "lookup_payment_info", map[string]interface{}{})

	assert.False(t, result.IsError)
	require.Len(t, result.Content, 1)
	assert.Contains(t, result.Content[0].Text, "Please provide either a payment ID or a reference number")
}

func TestCallToolCreateLinkMissingParams(t *testing.T) {
	client := newTestClient(t)

	result := client.callTool(t, "create_payment_link", map[string]interface{}{
		"amount":   float64(1000),
		"currency": "AED",
	})

	assert.False(t, result.IsError)
	require.Len(t, result.Content, 1)
	assert.Contains(t, result.Content[0].Text, "Please provide all required parameters")
}

func TestCallToolRefundSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payments/pay_123/refunds", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{"action_id": "act_456"})
	}))
	defer srv.Close()

	client := newTestClientWithBaseURL(t, srv.URL)

	result := client.callTool(t, "refund_payment", map[string]interface{}{
		"payment_id": "pay_123",
	})

	assert.False(t, result.IsError)
	require.Len(t, result.Content, 1)
	assert.Contains(t, result.Content[0].Text, "act_456")
	assert.Contains(t, result.Content[0].Text, "Pending")
}

func TestCallUnknownTool(t *testing.T) {
	client := newTestClient(t)

	result := client.callTool(t, "capture_payment", map[string]interface{}{})

	assert.True(t, result.IsError)
	require.Len(t, result.Content, 1)
	assert.Contains(t, result.Content[0].Text, "unknown tool")
}
