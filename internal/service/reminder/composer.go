package reminder

import (
	"fmt"

	"github.com/vicevalds/carelink/internal/model"
)

// timePhrase maps a timing label to its spoken lead-in. Unknown labels
// fall back to "ahora" so a misconfigured label still produces a usable
// sentence.
func timePhrase(timing string) string {
	switch timing {
	case "1_hour_before":
		return "en una hora"
	case "15_min_before":
		return "en quince minutos"
	default:
		return "ahora"
	}
}

// Compose builds the personalized reminder sentence for an event. It is
// a pure function: no external calls, and missing optional payload
// fields are simply omitted.
func Compose(eventType model.EventType, payload model.EventPayload, timing string, profile *model.Profile) string {
	name := profile.DisplayName()
	phrase := timePhrase(timing)

	switch eventType {
	case model.EventTypeActivity:
		if timing == model.TimingAtTime {
			return fmt.Sprintf("Hola %s, es momento de tu actividad: %s. Espero que tengas un buen día.", name, payload.Title)
		}
		msg := fmt.Sprintf("Hola %s, este es un recordatorio amigable. %s tienes programado: %s", name, phrase, payload.Title)
		if payload.Time != "" {
			msg += fmt.Sprintf(" a las %s", payload.Time)
		}
		return msg + ". Espero que tengas un buen día."

	case model.EventTypeAppointment:
		if timing == model.TimingAtTime {
			return fmt.Sprintf("Hola %s, es el momento de tu cita con %s. No olvides llevar tu documentación médica si es necesario.", name, payload.Doctor)
		}
		msg := fmt.Sprintf("Hola %s, quería recordarte que %s tienes tu cita con %s", name, phrase, payload.Doctor)
		if payload.Time != "" {
			msg += fmt.Sprintf(" a las %s", payload.Time)
		}
		return msg + ". No olvides llevar tu documentación médica si es necesario."

	case model.EventTypeMedication:
		med := payload.Name
		if payload.Dosage != "" {
			med += ", " + payload.Dosage
		}
		if model.IsEscalationTiming(timing) {
			return fmt.Sprintf("Hola %s, aún no he recibido confirmación de que tomaste tu medicamento %s. Por favor, tómalo y confírmame diciendo \"confirmación\" o \"listo\".", name, med)
		}
		if timing == model.TimingAtTime {
			return fmt.Sprintf("Hola %s, es hora de tomar tu medicamento %s. Por favor confírmame cuando lo hayas tomado diciendo \"confirmación\" o \"listo\".", name, med)
		}
		return fmt.Sprintf("Hola %s, %s debes tomar tu medicamento %s. Recuerda mantener tu tratamiento al día.", name, phrase, med)

	default:
		return fmt.Sprintf("Hola %s, tienes un evento programado.", name)
	}
}
