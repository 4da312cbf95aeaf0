package messaging

import (
	"context"
	"log"
	"strings"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Notifier delivers a text to a client phone.
type Notifier interface {
	Send(ctx context.Context, to, body string) error
}

// LogNotifier only writes the message to the log.
type LogNotifier struct{}

func (LogNotifier) Send(_ context.Context, to, body string) error {
	log.Printf("notify %s: %s", to, body)
	return nil
}

type messageAPI interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// TwilioNotifier sends SMS, or WhatsApp when the number is in E.164 form.
type TwilioNotifier struct {
	api  messageAPI
	from string
}

func NewTwilioNotifier(accountSID, authToken, from string) *TwilioNotifier {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioNotifier{api: client.Api, from: from}
}

func (n *TwilioNotifier) Send(_ context.Context, to, body string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetBody(body)

	if strings.HasPrefix(to, "+") {
		params.SetTo("whatsapp:" + to)
		params.SetFrom("whatsapp:" + n.from)
	} else {
		params.SetTo(to)
		params.SetFrom(n.from)
	}

	resp, err := n.api.CreateMessage(params)
	if err != nil {
		return err
	}
	if resp != nil && resp.Sid != nil {
		log.Printf("message sent to %s, SID: %s", to, *resp.Sid)
	}
	return nil
}
