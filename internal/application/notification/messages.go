package notification

import (
	"fmt"

	"github.com/jhoicas/empleos-api/internal/domain/entity"
)

// renderMessage arma el texto del SMS según el estado alcanzado.
// Mensajes cortos: los gateways SMS suelen trocear más allá de 160 caracteres.
func renderMessage(event Event) string {
	name := event.RecipientName
	if name == "" {
		name = "candidato"
	}
	switch entity.NormalizeStatus(event.NewStatus) {
	case entity.StatusApplied:
		return fmt.Sprintf("Hola %s, recibimos tu postulación a \"%s\". Te avisaremos de cada avance.", name, event.JobTitle)
	case entity.StatusReviewed:
		return fmt.Sprintf("Hola %s, tu postulación a \"%s\" fue revisada por el empleador.", name, event.JobTitle)
	case entity.StatusAdditionalDocs:
		return fmt.Sprintf("Hola %s, tu postulación a \"%s\" requiere documentos adicionales. Ingresa a la plataforma para aportarlos.", name, event.JobTitle)
	case entity.StatusInterviewScheduled:
		return fmt.Sprintf("Hola %s, el empleador agendó una entrevista para tu postulación a \"%s\". Revisa los detalles en la plataforma.", name, event.JobTitle)
	case entity.StatusInterviewCompleted:
		return fmt.Sprintf("Hola %s, tu entrevista para \"%s\" quedó registrada como completada.", name, event.JobTitle)
	case entity.StatusHired:
		return fmt.Sprintf("¡Felicitaciones %s! Fuiste seleccionado para \"%s\".", name, event.JobTitle)
	case entity.StatusNotProceeding:
		if event.Reason != "" {
			return fmt.Sprintf("Hola %s, tu postulación a \"%s\" no continuará en el proceso. Motivo: %s", name, event.JobTitle, event.Reason)
		}
		return fmt.Sprintf("Hola %s, tu postulación a \"%s\" no continuará en el proceso.", name, event.JobTitle)
	default:
		return fmt.Sprintf("Hola %s, tu postulación a \"%s\" cambió de estado: %s.", name, event.JobTitle, event.NewStatus)
	}
}
