package services

import (
	"errors"
	"strings"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Messenger is the outbound channel used for reminders, birthday greetings
// and conversational replies. Implementations decide nothing about timing or
// idempotency; callers own both.
type Messenger interface {
	Send(channel, to, body string) error
}

// ChannelFor picks WhatsApp for E.164 numbers (with '+'), SMS otherwise.
func ChannelFor(phone string) (channel, to string) {
	if strings.HasPrefix(phone, "+") {
		return "whatsapp", "whatsapp:" + phone
	}
	return "sms", phone
}

type TwilioMessenger struct {
	client       *twilio.RestClient
	fromSMS      string
	fromWhatsApp string
}

func NewTwilioMessenger(accountSID, authToken, fromSMS, fromWhatsApp string) *TwilioMessenger {
	return &TwilioMessenger{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
		fromSMS:      fromSMS,
		fromWhatsApp: fromWhatsApp,
	}
}

func (m *TwilioMessenger) Send(channel, to, body string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(body)

	if channel == "whatsapp" {
		params.SetFrom("whatsapp:" + m.fromWhatsApp)
	} else {
		params.SetFrom(m.fromSMS)
	}

	resp, err := m.client.Api.CreateMessage(params)
	if err != nil {
		return err
	}
	if resp.Sid == nil {
		return errors.New("twilio accepted message but returned no SID")
	}
	return nil
}
