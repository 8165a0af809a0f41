// Package e2e drives a running fname-registry over HTTP with godog scenarios.
package e2e

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/crypto"

	"fname-registry/internal/transfers/codec"
	"fname-registry/internal/transfers/signature"
)

// TestContext carries HTTP state and scenario-scoped aliases. Scenario names
// and fids are aliased to unique values so runs against a persistent server
// never collide.
type TestContext struct {
	BaseURL  string
	AdminFid uint64
	AdminKey *ecdsa.PrivateKey
	client   *http.Client

	suffix  string
	fidBase uint64
	clock   int64

	lastStatus int
	lastBody   []byte
}

func NewTestContext(baseURL string, adminFid uint64, adminKey *ecdsa.PrivateKey) *TestContext {
	return &TestContext{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		AdminFid: adminFid,
		AdminKey: adminKey,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Reset starts a fresh scenario namespace.
func (tc *TestContext) Reset() {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	tc.suffix = strconv.FormatInt(rng.Int63n(1<<40), 36)
	tc.fidBase = 1_000_000 + uint64(rng.Int63n(1<<40))*100
	tc.clock = time.Now().Unix() - 600
	tc.lastStatus = 0
	tc.lastBody = nil
}

// Username maps a scenario alias to this run's unique name.
func (tc *TestContext) Username(alias string) string {
	name := alias + "-" + tc.suffix
	if len(name) > 16 {
		name = name[:16]
	}
	return name
}

// Fid maps a scenario-local fid to this run's range. 0 stays 0.
func (tc *TestContext) Fid(local uint64) uint64 {
	if local == 0 {
		return 0
	}
	return tc.fidBase + local
}

// NextTimestamp returns a strictly increasing past timestamp.
func (tc *TestContext) NextTimestamp() int64 {
	tc.clock++
	return tc.clock
}

// SignedTransfer builds a POST /transfers body signed with the admin key.
func (tc *TestContext) SignedTransfer(name string, from, to uint64, ts int64) (map[string]any, error) {
	owner := crypto.PubkeyToAddress(tc.AdminKey.PublicKey)
	hash, err := signature.Attestation{Username: name, Timestamp: ts, Owner: owner}.Hash()
	if err != nil {
		return nil, err
	}
	sig, err := crypto.Sign(hash, tc.AdminKey)
	if err != nil {
		return nil, err
	}
	sig[64] += 27
	return map[string]any{
		"name":      name,
		"from":      from,
		"to":        to,
		"fid":       tc.AdminFid,
		"owner":     owner.Hex(),
		"timestamp": ts,
		"signature": codec.EncodeBytes(sig),
	}, nil
}

func (tc *TestContext) POST(path string, body any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, tc.BaseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return tc.do(req)
}

func (tc *TestContext) GET(path string) error {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, tc.BaseURL+path, nil)
	if err != nil {
		return err
	}
	return tc.do(req)
}

func (tc *TestContext) do(req *http.Request) error {
	resp, err := tc.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	tc.lastStatus = resp.StatusCode
	tc.lastBody = body
	return nil
}

func (tc *TestContext) GetLastResponseStatus() int {
	return tc.lastStatus
}

func (tc *TestContext) GetLastResponseBody() []byte {
	return tc.lastBody
}

// GetResponseField reads a dotted path such as "transfer.username" from the
// last JSON response.
func (tc *TestContext) GetResponseField(field string) (any, error) {
	var doc any
	if err := json.Unmarshal(tc.lastBody, &doc); err != nil {
		return nil, fmt.Errorf("response is not JSON: %s", tc.lastBody)
	}
	for _, part := range strings.Split(field, ".") {
		obj, ok := doc.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("field %q: %q is not an object", field, part)
		}
		if doc, ok = obj[part]; !ok {
			return nil, fmt.Errorf("field %q not in response: %s", field, tc.lastBody)
		}
	}
	return doc, nil
}
