package extract

import (
	"context"
	"errors"
	"testing"
	"time"

	"docfill/internal/llm"
	"docfill/internal/normalize"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSuggester struct {
	out    map[string]string
	err    error
	calls  int
	gotReq llm.SuggestRequest
}

func (s *stubSuggester) Suggest(_ context.Context, req llm.SuggestRequest) (map[string]string, error) {
	s.calls++
	s.gotReq = req
	return s.out, s.err
}

func TestExtractEmptyPendingSkipsSuggester(t *testing.T) {
	stub := &stubSuggester{out: map[string]string{"[X]": "y"}}
	p := NewPipeline(stub, nil)

	out := p.Extract(context.Background(), "anything at all", nil)
	assert.Empty(t, out)
	assert.Zero(t, stub.calls)
}

func TestExtractUsesSuggesterAndNormalizes(t *testing.T) {
	stub := &stubSuggester{out: map[string]string{
		"[Purchase Amount]": "4000 $",
		"[Company Name]":    "Acme Corp",
	}}
	p := NewPipeline(stub, nil)

	out := p.Extract(context.Background(), "we invest 4000 $ in Acme Corp",
		[]string{"[Purchase Amount]", "[Company Name]"})
	require.Equal(t, 1, stub.calls)
	assert.Equal(t, "$4,000", out["[Purchase Amount]"])
	assert.Equal(t, "Acme Corp", out["[Company Name]"])
}

func TestExtractSendsTypedPending(t *testing.T) {
	stub := &stubSuggester{out: map[string]string{}}
	p := NewPipeline(stub, nil)

	p.Extract(context.Background(), "hello", []string{"[Date of Safe]", "[Purchase Amount]"})
	require.Len(t, stub.gotReq.Pending, 2)
	assert.Equal(t, "DATE", stub.gotReq.Pending[0].Type)
	assert.Equal(t, "MONEY", stub.gotReq.Pending[1].Type)
	assert.NotEmpty(t, stub.gotReq.Pending[0].Hint)
}

func TestExtractFiltersNonPendingAndEmpty(t *testing.T) {
	stub := &stubSuggester{out: map[string]string{
		"[Company Name]":  "Acme Corp",
		"[Investor Name]": "Jane Doe",
		"[State]":         "",
		"[Title]":         "null",
	}}
	p := NewPipeline(stub, nil)

	out := p.Extract(context.Background(), "msg",
		[]string{"[Company Name]", "[State]", "[Title]"})
	assert.Equal(t, map[string]string{"[Company Name]": "Acme Corp"}, out)
}

func TestExtractSuggesterErrorFallsBack(t *testing.T) {
	stub := &stubSuggester{err: errors.New("boom")}
	p := NewPipeline(stub, nil)

	out := p.Extract(context.Background(), "the price is 4000",
		[]string{"[Purchase Amount]"})
	assert.Equal(t, map[string]string{"[Purchase Amount]": "$4,000"}, out)
}

func TestFallbackMoneyScoringPrefersPurchaseKeys(t *testing.T) {
	stub := &stubSuggester{out: map[string]string{}}
	p := NewPipeline(stub, nil)

	out := p.Extract(context.Background(), "4000",
		[]string{"[Purchase Price]", "[Valuation Cap]"})
	assert.Equal(t, map[string]string{"[Purchase Price]": "$4,000"}, out)
}

// A sole pending MONEY key takes the amount directly, even when neither its
// text nor its hint carries a score token.
func TestFallbackMoneySoleKeyAssignedDirectly(t *testing.T) {
	stub := &stubSuggester{out: map[string]string{}}
	p := NewPipeline(stub, nil)

	out := p.Extract(context.Background(), "it's 500000",
		[]string{"[Dollar Figure]"})
	assert.Equal(t, map[string]string{"[Dollar Figure]": "$500,000"}, out)
}

func TestFallbackMoneyAllZeroScoresGoToFirstPending(t *testing.T) {
	stub := &stubSuggester{out: map[string]string{}}
	p := NewPipeline(stub, nil)

	out := p.Extract(context.Background(), "it's 500000",
		[]string{"[Dollar Figure]", "[Dollar Total]"})
	assert.Equal(t, map[string]string{"[Dollar Figure]": "$500,000"}, out)
}

func TestFallbackDateGoesToFirstDateKey(t *testing.T) {
	pinYear(t)
	stub := &stubSuggester{out: nil}
	p := NewPipeline(stub, nil)

	out := p.Extract(context.Background(), "we signed on jan 5",
		[]string{"[Company Name]", "[Date of Safe]", "[Date of Incorporation]"})
	assert.Equal(t, "January 5, 2025", out["[Date of Safe]"])
	assert.NotContains(t, out, "[Date of Incorporation]")
}

func TestFallbackNothingRecognized(t *testing.T) {
	stub := &stubSuggester{out: map[string]string{}}
	p := NewPipeline(stub, nil)

	out := p.Extract(context.Background(), "hello there",
		[]string{"[Company Name]"})
	assert.Empty(t, out)
}

func TestExtractNilSuggesterStillFallsBack(t *testing.T) {
	p := NewPipeline(nil, nil)
	out := p.Extract(context.Background(), "price: 1250.5",
		[]string{"[Purchase Amount]"})
	assert.Equal(t, map[string]string{"[Purchase Amount]": "$1,250.50"}, out)
}

// pinYear fixes the normalizer clock so date fallbacks resolve to 2025.
func pinYear(t *testing.T) {
	t.Helper()
	restore := normalize.SetClock(func() time.Time {
		return time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	})
	t.Cleanup(restore)
}
