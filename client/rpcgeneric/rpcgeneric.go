// Copyright 2026 The realtps Authors
// This file is part of the realtps library.
//
// The realtps library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The realtps library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the realtps library. If not, see <http://www.gnu.org/licenses/>.

// Package rpcgeneric is a minimal JSON-RPC 2.0 and plain-REST client
// shared by adapters whose remote has no dedicated Go SDK in the
// dependency set (Near's JSON-RPC gateway, Elrond/MultiversX's REST
// gateway, the Internet Computer's Rosetta REST gateway). Modeled on
// the request/response shapes exercised by the teacher's (test-only)
// networks/rpc/http_test.go.
package rpcgeneric

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/realtps/realtps/internal/errs"
)

// Client is a bare HTTP+JSON client for chains whose gateway is plain
// JSON-RPC or REST. Adapters wrap it rather than use it directly.
type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a client against baseURL with a bounded request timeout;
// every call here is a blocking synchronous HTTP round-trip, run on the
// calling goroutine.
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type rpcRequest struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      int         `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

// Call issues a JSON-RPC 2.0 request and decodes the result into out.
func (c *Client) Call(ctx context.Context, method string, params, out interface{}) error {
	body, err := json.Marshal(rpcRequest{JSONRPC: "2.0", ID: 1, Method: method, Params: params})
	if err != nil {
		return errs.TransientNetworkf("marshal rpc request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return errs.TransientNetworkf("build rpc request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return errs.TransientNetworkf("rpc request to %s: %v", c.baseURL, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errs.TransientNetworkf("read rpc response: %v", err)
	}
	if resp.StatusCode >= 500 {
		return errs.TransientNetworkf("rpc %s returned status %d", method, resp.StatusCode)
	}

	var rr rpcResponse
	if err := json.Unmarshal(raw, &rr); err != nil {
		return errs.TransientNetworkf("decode rpc envelope for %s: %v", method, err)
	}
	if rr.Error != nil {
		return errs.TransientNetworkf("rpc %s error %d: %s", method, rr.Error.Code, rr.Error.Message)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(rr.Result, out); err != nil {
		return errs.TransientNetworkf("decode rpc result for %s: %v", method, err)
	}
	return nil
}

// GetJSON issues a plain REST GET against baseURL+path and decodes the
// JSON body into out. A 404 is reported as found == false rather than
// an error, matching the get_block(n) -> None contract for REST-style
// gateways (Elrond, the Hedera mirror node).
func (c *Client) GetJSON(ctx context.Context, path string, out interface{}) (found bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return false, errs.TransientNetworkf("build request: %v", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false, errs.TransientNetworkf("request to %s%s: %v", c.baseURL, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, errs.TransientNetworkf("read response: %v", err)
	}
	if resp.StatusCode >= 400 {
		return false, errs.TransientNetworkf("%s%s returned status %d: %s", c.baseURL, path, resp.StatusCode, raw)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, errs.TransientNetworkf("decode response for %s: %v", path, err)
	}
	return true, nil
}

// PostJSON issues a REST POST with a JSON body and decodes the JSON
// response into out.
func (c *Client) PostJSON(ctx context.Context, path string, in, out interface{}) (found bool, err error) {
	body, err := json.Marshal(in)
	if err != nil {
		return false, errs.TransientNetworkf("marshal request: %v", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return false, errs.TransientNetworkf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return false, errs.TransientNetworkf("request to %s%s: %v", c.baseURL, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, errs.TransientNetworkf("read response: %v", err)
	}
	if resp.StatusCode >= 400 {
		return false, errs.TransientNetworkf("%s%s returned status %d: %s", c.baseURL, path, resp.StatusCode, raw)
	}
	if out == nil {
		return true, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, errs.TransientNetworkf("decode response for %s: %v", path, err)
	}
	return true, nil
}
