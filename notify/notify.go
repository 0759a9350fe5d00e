package notify

import (
	"context"
	"errors"
	"log"
	"strings"
)

var ErrNoRecipient = errors.New("recipient phone number is empty")

const (
	ChannelSMS      = "sms"
	ChannelWhatsApp = "whatsapp"
)

type Delivery struct {
	Channel string
	SID     string
}

// Notifier sends a text message to a customer.
type Notifier interface {
	Send(ctx context.Context, phone, body string) (Delivery, error)
}

// ChannelFor picks WhatsApp for E.164 numbers and SMS otherwise.
func ChannelFor(phone string) string {
	if strings.HasPrefix(phone, "+") {
		return ChannelWhatsApp
	}
	return ChannelSMS
}

// LogNotifier only logs. It stands in when Twilio is not configured.
type LogNotifier struct{}

func (LogNotifier) Send(_ context.Context, phone, body string) (Delivery, error) {
	if strings.TrimSpace(phone) == "" {
		return Delivery{}, ErrNoRecipient
	}
	channel := ChannelFor(phone)
	log.Printf("[NOTIFY] %s to %s: %s", channel, phone, body)
	return Delivery{Channel: channel}, nil
}
