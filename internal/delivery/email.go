package delivery

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"

	"github.com/jonathan/revops-assessment/internal/catalog"
	"github.com/jonathan/revops-assessment/internal/types"
)

// EmailSinkName identifies the email sink in logs and metrics.
const EmailSinkName = "email"

//go:embed templates/*.tmpl
var templateFiles embed.FS

var resultsTemplate = template.Must(template.ParseFS(templateFiles, "templates/results.html.tmpl"))

// SESAPI is the subset of the SES client used by EmailSink.
type SESAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// NewSESClient creates an SES client using the default AWS credential chain.
func NewSESClient(ctx context.Context, region string) (*ses.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return ses.NewFromConfig(cfg), nil
}

// EmailSink emails the respondent their results.
type EmailSink struct {
	client     SESAPI
	from       string
	bookingURL string
	catalog    *catalog.Catalog
}

// NewEmailSink creates an email sink sending from the given address.
func NewEmailSink(client SESAPI, from, bookingURL string, c *catalog.Catalog) *EmailSink {
	return &EmailSink{client: client, from: from, bookingURL: bookingURL, catalog: c}
}

// Name implements Sink.
func (e *EmailSink) Name() string {
	return EmailSinkName
}

type sectionRow struct {
	Title string
	Score int
	Max   int
}

type emailView struct {
	Name       string
	Company    string
	Total      int
	Max        int
	TierLabel  string
	TierColor  template.CSS
	Summary    string
	Sections   []sectionRow
	Risks      []types.Insight
	Wins       []types.Insight
	BookingURL string
}

// Subject returns the subject line, which embeds the score and tier.
func (e *EmailSink) Subject(sub Submission) string {
	return fmt.Sprintf("Your RevOps Assessment Results - Score: %d/%d (%s)", sub.Scores.Total, e.catalog.GlobalMax(), sub.Tier.Label)
}

// Render returns the HTML body for sub.
func (e *EmailSink) Render(sub Submission) (string, error) {
	view := emailView{
		Name:       sub.Lead.Name,
		Company:    sub.Lead.Company,
		Total:      sub.Scores.Total,
		Max:        e.catalog.GlobalMax(),
		TierLabel:  sub.Tier.Label,
		TierColor:  template.CSS(safeColor(sub.Tier.Color)),
		Summary:    sub.Report.Summary,
		Risks:      sub.Report.Risks,
		Wins:       sub.Report.Wins,
		BookingURL: e.bookingURL,
	}
	for _, section := range e.catalog.Sections() {
		view.Sections = append(view.Sections, sectionRow{
			Title: section.Title,
			Score: sub.Scores.Section(section.ID),
			Max:   section.MaxScore(),
		})
	}

	var buf bytes.Buffer
	if err := resultsTemplate.Execute(&buf, view); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Deliver implements Sink.
func (e *EmailSink) Deliver(ctx context.Context, sub Submission) error {
	if sub.Lead.Email == "" {
		return &Error{Sink: EmailSinkName, Message: "submission has no recipient"}
	}

	body, err := e.Render(sub)
	if err != nil {
		return &Error{Sink: EmailSinkName, Message: "failed to render template", Cause: err}
	}

	_, err = e.client.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &sestypes.Destination{
			ToAddresses: []string{sub.Lead.Email},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(e.Subject(sub)), Charset: aws.String("UTF-8")},
			Body: &sestypes.Body{
				Html: &sestypes.Content{Data: aws.String(body), Charset: aws.String("UTF-8")},
			},
		},
		Source: aws.String(e.from),
	})
	if err != nil {
		return &Error{Sink: EmailSinkName, Message: "SES send failed", Cause: err}
	}
	return nil
}

// safeColor accepts only #rgb or #rrggbb hex colors.
func safeColor(c string) string {
	if (len(c) != 4 && len(c) != 7) || !strings.HasPrefix(c, "#") {
		return "#029482"
	}
	for _, r := range c[1:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return "#029482"
		}
	}
	return c
}
