// services/reminder_service.go
package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"ezpresta-backend/booking"
	"ezpresta-backend/models"
	"ezpresta-backend/notify"
	"ezpresta-backend/repository"
	"ezpresta-backend/utils"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

const DefaultReminderMessage = "Hello [CustomerName], this is a reminder of your [Service] booking on [Date]."

type ReminderService struct {
	orders    repository.OrderRepository
	reminders repository.ReminderRepository
	notifier  notify.Notifier
	daysAhead int
	now       func() time.Time
	cron      *cron.Cron
}

func NewReminderService(orders repository.OrderRepository, reminders repository.ReminderRepository, notifier notify.Notifier, daysAhead int) *ReminderService {
	if daysAhead < 0 {
		daysAhead = 0
	}
	return &ReminderService{
		orders:    orders,
		reminders: reminders,
		notifier:  notifier,
		daysAhead: daysAhead,
		now:       time.Now,
	}
}

// StartScheduler runs SendDailyReminders on the cron spec, e.g. "0 9 * * *".
func (s *ReminderService) StartScheduler(spec string) error {
	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		s.SendDailyReminders(context.Background())
	}); err != nil {
		return err
	}
	c.Start()
	s.cron = c
	log.Printf("[REMINDER] scheduler started (%s)", spec)
	return nil
}

func (s *ReminderService) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

// Window is the span of booking dates reminded on a run at now: from now to
// the end of the day daysAhead days later.
func (s *ReminderService) Window(now time.Time) (time.Time, time.Time) {
	return now, utils.BeginningOfDay(now).AddDate(0, 0, s.daysAhead+1)
}

// SendDailyReminders messages the customers of confirmed orders in the
// window and returns how many messages went out. Orders already reminded are
// skipped.
func (s *ReminderService) SendDailyReminders(ctx context.Context) int {
	log.Println("[REMINDER] starting daily reminder processing")

	from, to := s.Window(s.now())
	orders, err := s.orders.ListByStatusBetween(ctx, booking.StatusConfirmed, from, to)
	if err != nil {
		log.Printf("[REMINDER] failed to fetch orders: %v", err)
		return 0
	}

	templates := map[uuid.UUID]string{}
	sent := 0
	for i := range orders {
		if s.remind(ctx, &orders[i], templates) {
			sent++
		}
	}

	log.Printf("[REMINDER] daily reminder processing completed: %d sent", sent)
	return sent
}

func (s *ReminderService) template(ctx context.Context, ownerID uuid.UUID, templates map[uuid.UUID]string) string {
	if msg, ok := templates[ownerID]; ok {
		return msg
	}
	msg := DefaultReminderMessage
	tmpl, err := s.reminders.ActiveTemplate(ctx, ownerID)
	switch {
	case err == nil && strings.TrimSpace(tmpl.Message) != "":
		msg = tmpl.Message
	case err != nil && !errors.Is(err, repository.ErrNotFound):
		log.Printf("[REMINDER] owner %s: failed to load template: %v", ownerID, err)
	}
	templates[ownerID] = msg
	return msg
}

func (s *ReminderService) remind(ctx context.Context, order *models.Order, templates map[uuid.UUID]string) bool {
	done, err := s.reminders.AlreadySent(ctx, order.ID)
	if err != nil {
		log.Printf("[REMINDER] order %s: failed to check reminder log: %v", order.OrderNumber, err)
		return false
	}
	if done || order.CustomerPhone == "" {
		return false
	}

	message := RenderReminder(s.template(ctx, order.OwnerID, templates), order)
	entry := models.ReminderLog{
		OwnerID:    order.OwnerID,
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		Message:    message,
		Status:     "sent",
		Channel:    notify.ChannelFor(order.CustomerPhone),
		SentAt:     s.now(),
	}

	if _, err := s.notifier.Send(ctx, order.CustomerPhone, message); err != nil {
		log.Printf("[REMINDER] failed to send message to %s: %v", order.CustomerPhone, err)
		entry.Status = "failed"
		entry.ErrorMessage = err.Error()
	} else {
		log.Printf("[REMINDER] order %s: reminder sent, booking in %d day(s)",
			order.OrderNumber, utils.DaysBetween(entry.SentAt, order.SelectedDate))
	}

	if err := s.reminders.Log(ctx, &entry); err != nil {
		log.Printf("[REMINDER] failed to log reminder for order %s: %v", order.OrderNumber, err)
	}
	return entry.Status == "sent"
}

// RenderReminder fills [CustomerName], [Service] and [Date].
func RenderReminder(message string, order *models.Order) string {
	return strings.NewReplacer(
		"[CustomerName]", order.CustomerName,
		"[Service]", order.CatalogName,
		"[Date]", order.SelectedDate.Format("02/01/2006"),
	).Replace(message)
}
