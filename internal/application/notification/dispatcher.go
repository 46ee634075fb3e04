package notification

import (
	"context"

	"github.com/nyaruka/phonenumbers"

	"github.com/jhoicas/empleos-api/pkg/config"
	"github.com/jhoicas/empleos-api/pkg/logger"
)

// Outcome resultado de un despacho. El despacho es best-effort: failed nunca
// revierte ni bloquea la transición que lo originó.
type Outcome string

const (
	OutcomeDelivered Outcome = "delivered"
	OutcomeFailed    Outcome = "failed"
)

// Event evento de ciclo de vida que dispara una notificación. Es efímero:
// se produce al confirmar la transición y se consume aquí, sin persistencia.
type Event struct {
	ApplicationID  string
	NewStatus      string
	Reason         string
	RecipientPhone string
	RecipientName  string
	JobTitle       string
}

// Sender puerto de salida hacia el gateway SMS. La implementación concreta
// vive en infrastructure/sms; para tests se inyecta un fake.
type Sender interface {
	SendSMS(ctx context.Context, phone, message string) error
}

// Dispatcher entrega notificaciones transaccionales al gateway SMS.
// Nunca deja escapar un error más allá de su frontera: cualquier fallo de
// transporte, respuesta no exitosa o configuración ausente se reduce a
// OutcomeFailed.
type Dispatcher struct {
	sender Sender
	cfg    config.SMSConfig
	log    *logger.Logger
}

// NewDispatcher construye el dispatcher. sender puede ser nil cuando el
// gateway no está configurado; todo despacho degrada entonces a failed.
func NewDispatcher(sender Sender, cfg config.SMSConfig, log *logger.Logger) *Dispatcher {
	return &Dispatcher{sender: sender, cfg: cfg, log: log}
}

// Dispatch renderiza la plantilla del evento y la envía al gateway, acotado
// por el timeout configurado. Sin credenciales no intenta I/O de red.
func (d *Dispatcher) Dispatch(event Event) Outcome {
	if d.sender == nil || !d.cfg.Configured() {
		d.log.Warn().
			Str("application_id", event.ApplicationID).
			Str("status", event.NewStatus).
			Msg("gateway SMS sin configurar, notificación descartada")
		return OutcomeFailed
	}

	phone, ok := d.normalizePhone(event.RecipientPhone)
	if !ok {
		d.log.Warn().
			Str("application_id", event.ApplicationID).
			Msg("teléfono del destinatario inválido, notificación descartada")
		return OutcomeFailed
	}

	message := renderMessage(event)

	// Contexto propio, desligado del request entrante: si el cliente aborta
	// después del commit, el envío continúa hasta su timeout.
	ctx, cancel := context.WithTimeout(context.Background(), d.cfg.Timeout())
	defer cancel()

	if err := d.sender.SendSMS(ctx, phone, message); err != nil {
		d.log.Warn().Err(err).
			Str("application_id", event.ApplicationID).
			Str("status", event.NewStatus).
			Msg("envío de SMS falló")
		return OutcomeFailed
	}

	d.log.Info().
		Str("application_id", event.ApplicationID).
		Str("status", event.NewStatus).
		Msg("SMS entregado al gateway")
	return OutcomeDelivered
}

// DispatchAsync ejecuta Dispatch en segundo plano. El resultado se registra
// en el log; el llamador no lo espera.
func (d *Dispatcher) DispatchAsync(event Event) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				d.log.Error().Interface("panic", r).Msg("pánico en despacho de notificación")
			}
		}()
		d.Dispatch(event)
	}()
}

// normalizePhone lleva el teléfono a E.164 con la región por defecto
// configurada. Un número no parseable o inválido descarta el envío.
func (d *Dispatcher) normalizePhone(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	num, err := phonenumbers.Parse(raw, d.cfg.DefaultRegion)
	if err != nil {
		return "", false
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", false
	}
	return phonenumbers.Format(num, phonenumbers.E164), true
}
