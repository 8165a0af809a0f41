package transfers

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body any) error
	GET(path string) error
	GetResponseField(field string) (any, error)
	GetLastResponseStatus() int
	GetLastResponseBody() []byte
	Username(alias string) string
	Fid(local uint64) uint64
	NextTimestamp() int64
	SignedTransfer(name string, from, to uint64, ts int64) (map[string]any, error)
}

// RegisterSteps registers transfer registry step definitions.
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &transferSteps{tc: tc}

	ctx.Step(`^I mint "([^"]*)" to fid (\d+)$`, steps.mint)
	ctx.Step(`^I transfer "([^"]*)" from fid (\d+) to fid (\d+)$`, steps.transfer)
	ctx.Step(`^I burn "([^"]*)" from fid (\d+)$`, steps.burn)
	ctx.Step(`^I resubmit the last transfer$`, steps.resubmit)
	ctx.Step(`^I look up the current name of fid (\d+)$`, steps.currentForFid)
	ctx.Step(`^I look up the current transfer of "([^"]*)"$`, steps.currentForName)
	ctx.Step(`^I list the history of "([^"]*)"$`, steps.historyForName)

	ctx.Step(`^the transfer should be rejected with "([^"]*)"$`, steps.rejectedWith)
	ctx.Step(`^the transfer should be accepted$`, steps.accepted)
	ctx.Step(`^the current name should be "([^"]*)"$`, steps.currentNameShouldBe)
	ctx.Step(`^the response should be the same transfer as before$`, steps.sameTransferAsBefore)
	ctx.Step(`^the history should contain (\d+) transfers$`, steps.historyShouldContain)
}

type transferSteps struct {
	tc       TestContext
	lastBody map[string]any
	lastID   any
}

func (s *transferSteps) submit(alias string, from, to uint64) error {
	body, err := s.tc.SignedTransfer(s.tc.Username(alias), s.tc.Fid(from), s.tc.Fid(to), s.tc.NextTimestamp())
	if err != nil {
		return err
	}
	s.lastBody = body
	if err := s.tc.POST("/transfers", body); err != nil {
		return err
	}
	if s.tc.GetLastResponseStatus() == 200 {
		s.lastID, _ = s.tc.GetResponseField("transfer.id")
	}
	return nil
}

func (s *transferSteps) mint(_ context.Context, alias string, to int) error {
	return s.submit(alias, 0, uint64(to))
}

func (s *transferSteps) transfer(_ context.Context, alias string, from, to int) error {
	return s.submit(alias, uint64(from), uint64(to))
}

func (s *transferSteps) burn(_ context.Context, alias string, from int) error {
	return s.submit(alias, uint64(from), 0)
}

func (s *transferSteps) resubmit(context.Context) error {
	if s.lastBody == nil {
		return fmt.Errorf("no transfer submitted yet")
	}
	return s.tc.POST("/transfers", s.lastBody)
}

func (s *transferSteps) currentForFid(_ context.Context, fid int) error {
	return s.tc.GET("/transfers/current?fid=" + strconv.FormatUint(s.tc.Fid(uint64(fid)), 10))
}

func (s *transferSteps) currentForName(_ context.Context, alias string) error {
	return s.tc.GET("/transfers/current?name=" + s.tc.Username(alias))
}

func (s *transferSteps) historyForName(_ context.Context, alias string) error {
	return s.tc.GET("/transfers?name=" + s.tc.Username(alias))
}

func (s *transferSteps) accepted(context.Context) error {
	if status := s.tc.GetLastResponseStatus(); status != 200 {
		return fmt.Errorf("expected transfer to be accepted, got %d: %s", status, s.tc.GetLastResponseBody())
	}
	return nil
}

func (s *transferSteps) rejectedWith(_ context.Context, code string) error {
	if status := s.tc.GetLastResponseStatus(); status != 400 {
		return fmt.Errorf("expected 400, got %d: %s", status, s.tc.GetLastResponseBody())
	}
	got, err := s.tc.GetResponseField("error")
	if err != nil {
		return err
	}
	if got != code {
		return fmt.Errorf("expected error %q, got %v", code, got)
	}
	return nil
}

func (s *transferSteps) currentNameShouldBe(_ context.Context, alias string) error {
	got, err := s.tc.GetResponseField("transfer.username")
	if err != nil {
		return err
	}
	if want := s.tc.Username(alias); got != want {
		return fmt.Errorf("expected current name %q, got %v", want, got)
	}
	return nil
}

func (s *transferSteps) sameTransferAsBefore(context.Context) error {
	got, err := s.tc.GetResponseField("transfer.id")
	if err != nil {
		return err
	}
	if got != s.lastID {
		return fmt.Errorf("expected transfer id %v, got %v", s.lastID, got)
	}
	return nil
}

func (s *transferSteps) historyShouldContain(_ context.Context, n int) error {
	v, err := s.tc.GetResponseField("transfers")
	if err != nil {
		return err
	}
	list, ok := v.([]any)
	if !ok || len(list) != n {
		return fmt.Errorf("expected %d transfers, got %s", n, s.tc.GetLastResponseBody())
	}
	return nil
}
