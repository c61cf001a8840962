package mailer

import (
	"encoding/json"
	"fmt"

	"alumni_portal_service/pkg/database"
	errprocess "alumni_portal_service/pkg/err"

	"github.com/streadway/amqp"
)

// EmailQueue rabbitmq queue name for email jobs
const EmailQueue = "email_jobs"

// Email job kinds
const (
	KindVerification  = "verification"
	KindPasswordReset = "password_reset"
	KindAdminNotice   = "admin_notice"
)

// EmailJob 寄信工作，由獨立 worker 消費
type EmailJob struct {
	Kind    string `json:"kind"`
	To      string `json:"to"`
	Name    string `json:"name,omitempty"`
	Code    string `json:"code,omitempty"`
	Subject string `json:"subject,omitempty"`
	Body    string `json:"body,omitempty"`
}

// Mailer queue email jobs for async delivery
type Mailer interface {
	SendVerificationCode(to, name, code string) error
	SendPasswordResetCode(to, name, code string) error
	SendAdminNotice(to, subject, body string) error
}

type rabbitMailer struct {
	rabbit database.RabbitRepo
}

// NewRabbitMailer create a rabbitmq backed mailer, declare queue first
func NewRabbitMailer(rabbit database.RabbitRepo) (Mailer, error) {
	// 先宣告 queue，確保 worker 端啟動前訊息不會遺失
	if _, err := rabbit.GetRabbit().QueueDeclare(
		EmailQueue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		return nil, fmt.Errorf("declare queue [%s] failed: %w", EmailQueue, err)
	}

	return &rabbitMailer{rabbit: rabbit}, nil
}

func (m *rabbitMailer) SendVerificationCode(to, name, code string) error {
	return m.publish(EmailJob{
		Kind: KindVerification,
		To:   to,
		Name: name,
		Code: code,
	})
}

func (m *rabbitMailer) SendPasswordResetCode(to, name, code string) error {
	return m.publish(EmailJob{
		Kind: KindPasswordReset,
		To:   to,
		Name: name,
		Code: code,
	})
}

func (m *rabbitMailer) SendAdminNotice(to, subject, body string) error {
	return m.publish(EmailJob{
		Kind:    KindAdminNotice,
		To:      to,
		Subject: subject,
		Body:    body,
	})
}

func (m *rabbitMailer) publish(job EmailJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return errprocess.Set(fmt.Sprintf("marshal email job err: %v", err))
	}

	if err := m.rabbit.Publish("", EmailQueue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         data,
	}); err != nil {
		return errprocess.Set(fmt.Sprintf("publish email job err: %v", err))
	}
	return nil
}
