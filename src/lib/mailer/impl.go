package mailer

import (
	"acs/src/lib"
	awslib "acs/src/lib/aws"
	"acs/src/types"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
)

var subjects = map[types.NotificationKind]string{
	types.NOTIFY_REQUEST_SUBMITTED: "Your charter quote request was received",
	types.NOTIFY_QUOTE_RECEIVED:    "A new quote has arrived for your flight request",
	types.NOTIFY_BOOKING_CONFIRMED: "Your charter booking is confirmed",
	types.NOTIFY_PAYMENT_RECEIVED:  "We received your payment",
}

func renderBody(kind types.NotificationKind, payload types.JSONB) string {
	body := string(kind)
	for k, v := range payload {
		body += fmt.Sprintf("\n%s: %v", k, v)
	}
	return body
}

// Send delivers one lifecycle notification through the configured transport.
// SES when MAILER_TRANSPORT=ses, plain SMTP otherwise.
func Send(kind types.NotificationKind, recipient string, payload types.JSONB) error {
	subject, ok := subjects[kind]
	if !ok {
		subject = string(kind)
	}
	from := os.Getenv("MAILER_FROM")
	body := renderBody(kind, payload)

	if os.Getenv("MAILER_TRANSPORT") == "ses" {
		return awslib.SESSendMessage(
			aws.String(from),
			&sestypes.Destination{ToAddresses: []string{recipient}},
			&sestypes.Message{
				Subject: &sestypes.Content{Data: aws.String(subject)},
				Body: &sestypes.Body{
					Text: &sestypes.Content{Data: aws.String(body)},
				},
			},
		)
	}
	return lib.SendMail(&lib.SendMailInput{
		From:     from,
		FromName: os.Getenv("MAILER_FROM_NAME"),
		To:       []string{recipient},
		Subject:  subject,
		Body:     body,
	})
}
