// Package mail отправляет письма пользователям (подтверждение e-mail, сброс пароля).
package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// DefaultEndpoint - HTTP API почтового сервиса (Resend-совместимый формат).
const DefaultEndpoint = "https://api.resend.com/emails"

type message struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// HTTPMailer отправляет письма через HTTP API с bearer-ключом.
type HTTPMailer struct {
	endpoint string
	apiKey   string
	from     string
	client   *http.Client
}

// NewHTTPMailer создает отправителя. Пустой endpoint означает DefaultEndpoint.
func NewHTTPMailer(endpoint, apiKey, from string) *HTTPMailer {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &HTTPMailer{
		endpoint: endpoint,
		apiKey:   apiKey,
		from:     from,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Send отправляет письмо через HTTP API почтового сервиса.
func (m *HTTPMailer) Send(ctx context.Context, to, subject, html string) error {
	body, err := json.Marshal(message{From: m.from, To: to, Subject: subject, HTML: html})
	if err != nil {
		return fmt.Errorf("не удалось сформировать письмо: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("не удалось создать запрос: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("не удалось отправить письмо на %s: %w", to, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("почтовый сервис ответил %s", resp.Status)
	}
	return nil
}

// LogMailer только пишет письма в лог. Используется, когда ключ API не задан.
type LogMailer struct {
	log *slog.Logger
}

// NewLogMailer создает почтальона, пишущего письма в лог.
func NewLogMailer(log *slog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

// Send пишет письмо в лог.
func (m *LogMailer) Send(_ context.Context, to, subject, html string) error {
	m.log.Info("письмо не отправлено, почтовый ключ не задан", "to", to, "subject", subject, "body", html)
	return nil
}
