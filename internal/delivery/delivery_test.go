package delivery

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jonathan/revops-assessment/internal/catalog"
	"github.com/jonathan/revops-assessment/internal/observability"
	"github.com/jonathan/revops-assessment/internal/types"
)

func sampleSubmission() Submission {
	c := catalog.Default()
	responses := types.Responses{}
	for _, id := range c.QuestionIDs() {
		responses[id] = 1
	}
	scores := types.ScoreSet{
		Sections: map[string]int{
			"foundations": 6, "datamodel": 8, "stack": 6, "lifecycle": 8,
			"pipeline": 6, "campaigns": 5, "reporting": 5, "governance": 5,
		},
		Total: 49,
	}
	sub := NewSubmission(
		types.LeadData{
			Name: "Dana <b>Smith</b>", Title: "VP RevOps", Email: "dana@acme.io", Phone: "555-0100",
			Company: "Acme", Category: "SaaS", Size: "SMB", State: "CA", Zip: "94105",
		},
		scores,
		types.Tier{ID: "emerging", Label: "Emerging Revenue Operations", Color: "#F59E0B"},
		responses,
		types.Report{
			Summary: "Solid middle of the road.",
			Risks:   []types.Insight{{Title: "Risk A", Desc: "Desc A"}, {Title: "Risk B", Desc: "Desc B"}},
			Wins:    []types.Insight{{Title: "Win A", Desc: "Desc C"}, {Title: "Win B", Desc: "Desc D"}},
		},
	)
	sub.ClientIP = "203.0.113.7"
	sub.UserAgent = "test-agent"
	return sub
}

type mockSES struct {
	mu     sync.Mutex
	inputs []*ses.SendEmailInput
	err    error
}

func (m *mockSES) SendEmail(_ context.Context, params *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inputs = append(m.inputs, params)
	if m.err != nil {
		return nil, m.err
	}
	return &ses.SendEmailOutput{}, nil
}

type stubSink struct {
	name  string
	err   error
	panic bool
	calls atomic.Int32
}

func (s *stubSink) Name() string { return s.name }

func (s *stubSink) Deliver(context.Context, Submission) error {
	s.calls.Add(1)
	if s.panic {
		panic("boom")
	}
	return s.err
}

func TestNewSubmission(t *testing.T) {
	sub := sampleSubmission()
	assert.Len(t, sub.ID, 36)
	assert.WithinDuration(t, time.Now(), sub.ReceivedAt, time.Minute)
	assert.NotEqual(t, sub.ID, sampleSubmission().ID)
}

func TestEmailSink_Subject(t *testing.T) {
	sink := NewEmailSink(&mockSES{}, "reports@example.com", "", catalog.Default())
	assert.Equal(t, "Your RevOps Assessment Results - Score: 49/98 (Emerging Revenue Operations)", sink.Subject(sampleSubmission()))
}

func TestEmailSink_Render(t *testing.T) {
	sink := NewEmailSink(&mockSES{}, "reports@example.com", "https://cal.example.com/book", catalog.Default())

	body, err := sink.Render(sampleSubmission())
	require.NoError(t, err)

	assert.Contains(t, body, "49/98")
	assert.Contains(t, body, "Emerging Revenue Operations")
	assert.Contains(t, body, "Solid middle of the road.")
	assert.Contains(t, body, "Data Model &amp; Architecture")
	assert.Contains(t, body, "8/16")
	assert.Contains(t, body, "Risk B")
	assert.Contains(t, body, "Win A")
	assert.Contains(t, body, "https://cal.example.com/book")
	assert.Contains(t, body, "#F59E0B")
	// Lead text is escaped
	assert.Contains(t, body, "Dana &lt;b&gt;Smith&lt;/b&gt;")
	assert.NotContains(t, body, "<b>Smith</b>")
}

func TestEmailSink_Deliver(t *testing.T) {
	client := &mockSES{}
	sink := NewEmailSink(client, "reports@example.com", "", catalog.Default())

	require.NoError(t, sink.Deliver(context.Background(), sampleSubmission()))
	require.Len(t, client.inputs, 1)

	input := client.inputs[0]
	assert.Equal(t, "reports@example.com", *input.Source)
	assert.Equal(t, []string{"dana@acme.io"}, input.Destination.ToAddresses)
	assert.Contains(t, *input.Message.Subject.Data, "49/98")
	assert.Contains(t, *input.Message.Body.Html.Data, "Acme")
	assert.NotContains(t, *input.Message.Body.Html.Data, "Book a Discovery Call")
}

func TestEmailSink_DeliverError(t *testing.T) {
	sink := NewEmailSink(&mockSES{err: errors.New("throttled")}, "reports@example.com", "", catalog.Default())

	err := sink.Deliver(context.Background(), sampleSubmission())
	require.Error(t, err)

	var deliveryErr *Error
	require.True(t, errors.As(err, &deliveryErr))
	assert.Equal(t, EmailSinkName, deliveryErr.Sink)
	assert.Contains(t, err.Error(), "throttled")
}

func TestSafeColor(t *testing.T) {
	assert.Equal(t, "#DC2626", safeColor("#DC2626"))
	assert.Equal(t, "#abc", safeColor("#abc"))
	assert.Equal(t, "#029482", safeColor("red; background: url(x)"))
	assert.Equal(t, "#029482", safeColor("#GGGGGG"))
}

func TestWebhookSink_Payload(t *testing.T) {
	sink := NewWebhookSink("http://unused", catalog.Default(), nil)
	sub := sampleSubmission()
	sub.ReceivedAt = time.Date(2025, 3, 4, 5, 6, 7, 890_000_000, time.UTC)

	payload, err := sink.Payload(sub)
	require.NoError(t, err)

	assert.Equal(t, "2025-03-04T05:06:07.890Z", payload["timestamp"])
	assert.Equal(t, sub.ID, payload["submissionId"])
	assert.Equal(t, "dana@acme.io", payload["email"])
	assert.Equal(t, "94105", payload["zip"])
	assert.Equal(t, 49, payload["totalScore"])
	assert.Equal(t, 6, payload["foundationsScore"])
	assert.Equal(t, 8, payload["datamodelScore"])
	assert.Equal(t, 5, payload["governanceScore"])
	assert.Equal(t, "Solid middle of the road.", payload["aiSummary"])
	assert.Equal(t, `[{"title":"Risk A","desc":"Desc A"},{"title":"Risk B","desc":"Desc B"}]`, payload["aiRisks"])
	assert.Equal(t, "203.0.113.7", payload["ipAddress"])
	assert.Equal(t, "test-agent", payload["userAgent"])

	var responses map[string]int
	require.NoError(t, json.Unmarshal([]byte(payload["responses"].(string)), &responses))
	assert.Len(t, responses, 49)
}

func TestWebhookSink_PayloadUnknownClient(t *testing.T) {
	sub := sampleSubmission()
	sub.ClientIP = ""
	sub.UserAgent = ""

	payload, err := NewWebhookSink("http://unused", catalog.Default(), nil).Payload(sub)
	require.NoError(t, err)
	assert.Equal(t, "unknown", payload["ipAddress"])
	assert.Equal(t, "unknown", payload["userAgent"])
}

func TestWebhookSink_Deliver(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &received)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	sink := NewWebhookSink(server.URL, catalog.Default(), server.Client())
	require.NoError(t, sink.Deliver(context.Background(), sampleSubmission()))

	assert.Equal(t, "Acme", received["company"])
	assert.Equal(t, float64(49), received["totalScore"])
	assert.Equal(t, float64(5), received["campaignsScore"])
}

func TestWebhookSink_Non2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	err := NewWebhookSink(server.URL, catalog.Default(), server.Client()).Deliver(context.Background(), sampleSubmission())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP status 500")
}

func TestDispatcher_SwallowsFailures(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	ok := &stubSink{name: "ok"}
	failing := &stubSink{name: "failing", err: errors.New("down")}
	panicking := &stubSink{name: "panicking", panic: true}

	before := testutil.ToFloat64(observability.DeliveriesTotal.WithLabelValues("failing", "failure"))

	d := NewDispatcher(zap.New(core), time.Second, ok, nil, failing, panicking)
	assert.Equal(t, []string{"ok", "failing", "panicking"}, d.Sinks())

	assert.NotPanics(t, func() {
		d.Dispatch(context.Background(), sampleSubmission())
	})

	assert.Equal(t, int32(1), ok.calls.Load())
	assert.Equal(t, int32(1), failing.calls.Load())
	assert.Equal(t, int32(1), panicking.calls.Load())
	assert.Equal(t, before+1, testutil.ToFloat64(observability.DeliveriesTotal.WithLabelValues("failing", "failure")))
	assert.Equal(t, 2, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}

func TestDispatcher_NoSinks(t *testing.T) {
	d := NewDispatcher(nil, 0)
	assert.Empty(t, d.Sinks())
	assert.NotPanics(t, func() {
		d.Dispatch(context.Background(), sampleSubmission())
	})
}
