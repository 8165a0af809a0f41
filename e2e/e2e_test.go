package e2e

import (
	"context"
	"os"
	"strconv"
	"testing"

	"github.com/cucumber/godog"

	"fname-registry/internal/transfers/signature"
)

// TestFeatures runs the scenarios against E2E_BASE_URL. The server must list
// E2E_ADMIN_FID with the address of E2E_ADMIN_PRIVATE_KEY in ADMIN_KEYS.
func TestFeatures(t *testing.T) {
	baseURL := os.Getenv("E2E_BASE_URL")
	if baseURL == "" {
		t.Skip("E2E_BASE_URL not set")
	}
	adminKey, err := signature.ParsePrivateKey(os.Getenv("E2E_ADMIN_PRIVATE_KEY"))
	if err != nil {
		t.Fatalf("E2E_ADMIN_PRIVATE_KEY: %v", err)
	}
	adminFid, err := strconv.ParseUint(os.Getenv("E2E_ADMIN_FID"), 10, 64)
	if err != nil {
		t.Fatalf("E2E_ADMIN_FID: %v", err)
	}

	tc := NewTestContext(baseURL, adminFid, adminKey)
	suite := godog.TestSuite{
		ScenarioInitializer: func(ctx *godog.ScenarioContext) {
			ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
				tc.Reset()
				return ctx, nil
			})
			RegisterSteps(ctx, tc)
		},
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			Strict:   true,
			TestingT: t,
		},
	}
	if suite.Run() != 0 {
		t.Fatal("e2e scenarios failed")
	}
}
