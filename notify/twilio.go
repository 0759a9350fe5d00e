package notify

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

type TwilioConfig struct {
	AccountSID     string
	AuthToken      string
	PhoneNumber    string
	WhatsAppNumber string
}

type TwilioNotifier struct {
	client *twilio.RestClient
	cfg    TwilioConfig
}

func NewTwilioNotifier(cfg TwilioConfig) *TwilioNotifier {
	return &TwilioNotifier{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.AccountSID,
			Password: cfg.AuthToken,
		}),
		cfg: cfg,
	}
}

// messageParams addresses the message on the channel that fits phone.
func (n *TwilioNotifier) messageParams(phone, body string) (*twilioApi.CreateMessageParams, string) {
	channel := ChannelFor(phone)
	params := &twilioApi.CreateMessageParams{}
	params.SetBody(body)
	if channel == ChannelWhatsApp {
		params.SetTo("whatsapp:" + phone)
		params.SetFrom("whatsapp:" + n.cfg.WhatsAppNumber)
	} else {
		params.SetTo(phone)
		params.SetFrom(n.cfg.PhoneNumber)
	}
	return params, channel
}

func (n *TwilioNotifier) Send(ctx context.Context, phone, body string) (Delivery, error) {
	if strings.TrimSpace(phone) == "" {
		return Delivery{}, ErrNoRecipient
	}
	if err := ctx.Err(); err != nil {
		return Delivery{}, err
	}

	params, channel := n.messageParams(phone, body)
	resp, err := n.client.Api.CreateMessage(params)
	if err != nil {
		return Delivery{Channel: channel}, fmt.Errorf("twilio %s to %s: %w", channel, phone, err)
	}

	d := Delivery{Channel: channel}
	if resp.Sid != nil {
		d.SID = *resp.Sid
		log.Printf("[NOTIFY] %s sent to %s, SID: %s", channel, phone, d.SID)
	} else {
		log.Printf("[NOTIFY] %s sent to %s, but no SID returned", channel, phone)
	}
	return d, nil
}
