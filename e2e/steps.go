package e2e

import (
	"github.com/cucumber/godog"

	"fname-registry/e2e/steps/common"
	"fname-registry/e2e/steps/transfers"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	common.RegisterSteps(ctx, tc)
	transfers.RegisterSteps(ctx, tc)
}
