package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/empleos-api/pkg/config"
)

// Client implementa notification.Sender contra el gateway SMS externo
// (dispositivos Android registrados, API tipo textbee). Contrato:
//
//	POST <base>/api/v1/gateway/devices/<device-id>/send-sms
//	Headers: Content-Type: application/json, x-api-key: <api-key>
//	Body: {"recipients": ["<phone>"], "message": "<texto>"}
//
// Cualquier respuesta no-2xx o error de transporte se reporta como error;
// el dispatcher lo reduce a "failed".
type Client struct {
	baseURL    string
	deviceID   string
	apiKey     string
	httpClient *http.Client
}

// NewClient construye el cliente del gateway. El timeout del http.Client es
// la última línea de defensa; el dispatcher además acota cada envío con contexto.
func NewClient(cfg config.SMSConfig) *Client {
	timeout := cfg.Timeout()
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		deviceID:   cfg.DeviceID,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type sendSMSRequest struct {
	Recipients []string `json:"recipients"`
	Message    string   `json:"message"`
}

// SendSMS entrega un mensaje a un destinatario a través del gateway.
func (c *Client) SendSMS(ctx context.Context, phone, message string) error {
	if c.baseURL == "" || c.deviceID == "" || c.apiKey == "" {
		return fmt.Errorf("gateway SMS sin credenciales")
	}

	body, err := json.Marshal(sendSMSRequest{
		Recipients: []string{phone},
		Message:    message,
	})
	if err != nil {
		return fmt.Errorf("serializar petición SMS: %w", err)
	}

	endpoint := fmt.Sprintf("%s/api/v1/gateway/devices/%s/send-sms", c.baseURL, c.deviceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("construir petición SMS: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("llamada al gateway SMS: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Leer un fragmento de la respuesta para diagnóstico; el cuerpo puede
		// no ser JSON válido y eso también cuenta como fallo.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("gateway SMS respondió %d: %s", resp.StatusCode, string(snippet))
	}
	return nil
}
