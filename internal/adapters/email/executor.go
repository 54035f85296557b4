// Package email provides the EMAIL task executor adapter, sending
// notifications over SMTP with STARTTLS.
package email

import (
	"context"
	"fmt"
	"net/smtp"
	"os"

	"go.trai.ch/zerr"

	"github.com/Hemant2A2/Wizflow/internal/core/domain"
	"github.com/Hemant2A2/Wizflow/internal/core/ports"
)

const (
	envSenderEmail  = "SENDER_EMAIL"
	envAppPassword  = "APP_PASSWORD"
	envSMTPHost     = "SMTP_HOST"
	envSMTPPort     = "SMTP_PORT"
	defaultSMTPHost = "smtp.gmail.com"
	defaultSMTPPort = "587"
)

var _ ports.Executor = (*Executor)(nil)

// Executor sends task's Subject/EmailBody to every recipient, attempting
// each one independently. A recipient-level failure is logged but never
// fails the task: the task succeeds once every recipient has been
// attempted, reporting how many sends succeeded.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates an EMAIL Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{logger: logger}
}

// Execute sends the resolved subject/body to every recipient in
// task.Recipients and returns {"sent": n} where n is the number of
// recipients the send succeeded for.
func (e *Executor) Execute(ctx context.Context, task domain.Task, _ string) (any, error) {
	sender := os.Getenv(envSenderEmail)
	password := os.Getenv(envAppPassword)
	if sender == "" || password == "" {
		return nil, domain.NewTaskExecutionError(task.ID, zerr.With(domain.ErrMissingField, "task_id", task.ID, "field", "SENDER_EMAIL/APP_PASSWORD"))
	}

	host := envOrDefault(envSMTPHost, defaultSMTPHost)
	port := envOrDefault(envSMTPPort, defaultSMTPPort)
	auth := smtp.PlainAuth("", sender, password, host)
	msg := buildMessage(sender, task.Subject, task.EmailBody)

	sent := 0
	for _, recipient := range task.Recipients {
		select {
		case <-ctx.Done():
			return map[string]any{"sent": sent}, nil
		default:
		}

		if err := smtp.SendMail(host+":"+port, auth, sender, []string{recipient}, msg); err != nil {
			e.logger.Warn(fmt.Sprintf("email: send to %s failed for task %s: %v", recipient, task.ID, err))
			continue
		}
		sent++
	}

	return map[string]any{"sent": sent}, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func buildMessage(from, subject, body string) []byte {
	return []byte("From: " + from + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" +
		body + "\r\n")
}
