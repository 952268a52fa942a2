package mailservice

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"golang.org/x/exp/rand"

	"github.com/webblog/api/internal/common"
)

const (
	welcomeTemplate = "welcome_email.html"
	maxRetries      = 5
	baseDelay       = 500 * time.Millisecond
)

func NewMailService(mb common.MessageConsumer, cfg Config, logger *slog.Logger) *MailService {
	ctx, cancel := context.WithCancel(context.Background())
	return &MailService{
		mb:     mb,
		m:      NewMailer(cfg, NewTemplate()),
		logger: logger,
		sleep:  time.Sleep,
		ctx:    ctx,
		cancel: cancel,
	}
}

// SendWelcomeEmail consumes user.created events in the background and mails
// each new user. It returns once the consumer is registered.
func (s *MailService) SendWelcomeEmail() error {
	msgs, err := s.mb.Consume(common.UserCreatedKey, common.UserExchange, common.UserCreatedQueue)
	if err != nil {
		return err
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				s.handle(msg)

			case <-s.ctx.Done():
				s.logger.Info("stopping welcome email consumer")
				return
			}
		}
	}()

	return nil
}

// handle acks the delivery once the mail is sent, or after the last retry so
// a bad address cannot block the queue.
func (s *MailService) handle(msg amqp.Delivery) {
	var event common.UserCreatedEvent

	err := json.Unmarshal(msg.Body, &event)
	if err != nil || event.Email == "" {
		s.logger.Error("could not decode user created event", slog.String("body", string(msg.Body)))
		msg.Ack(false)
		return
	}

	data := welcomeData{Username: event.Username}

	// exponential backoff with jitter
	for attempt := 0; attempt < maxRetries; attempt++ {
		err = s.m.send(event.Email, data, welcomeTemplate)
		if err == nil {
			s.logger.Info("welcome email sent", slog.String("email", event.Email))
			msg.Ack(false)
			return
		}

		delay := time.Duration(rand.Int63n(int64(baseDelay) << uint(attempt)))
		s.logger.Info("delaying welcome email", slog.String("email", event.Email), slog.Int("attempt", attempt), slog.Duration("delay", delay))
		s.sleep(delay)
	}

	s.logger.Error("could not send welcome email", slog.String("email", event.Email), slog.String("error", err.Error()))
	msg.Ack(false)
}

// Close stops the consumer and waits for the message in flight.
func (s *MailService) Close() {
	s.cancel()
	s.wg.Wait()
}
