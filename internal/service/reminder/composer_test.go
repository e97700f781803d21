package reminder

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vicevalds/carelink/internal/model"
)

func TestComposeMedication(t *testing.T) {
	profile := &model.Profile{Name: "Elena"}
	payload := model.EventPayload{Name: "Losartán", Dosage: "50mg"}

	t.Run("lead time", func(t *testing.T) {
		msg := Compose(model.EventTypeMedication, payload, "1_hour_before", profile)
		assert.Contains(t, msg, "Hola Elena")
		assert.Contains(t, msg, "en una hora")
		assert.Contains(t, msg, "Losartán, 50mg")
	})

	t.Run("at time asks for confirmation", func(t *testing.T) {
		msg := Compose(model.EventTypeMedication, payload, model.TimingAtTime, profile)
		assert.Contains(t, msg, "es hora de tomar tu medicamento Losartán, 50mg")
		assert.Contains(t, msg, "confirmación")
	})

	t.Run("escalation nags", func(t *testing.T) {
		msg := Compose(model.EventTypeMedication, payload, model.EscalationTiming(2), profile)
		assert.Contains(t, msg, "aún no he recibido confirmación")
		assert.Contains(t, msg, "Losartán, 50mg")
	})

	t.Run("dosage omitted when empty", func(t *testing.T) {
		msg := Compose(model.EventTypeMedication, model.EventPayload{Name: "Losartán"}, model.TimingAtTime, profile)
		assert.Contains(t, msg, "medicamento Losartán.")
		assert.NotContains(t, msg, ", 50mg")
	})
}

func TestComposeAppointment(t *testing.T) {
	profile := &model.Profile{Name: "Elena"}
	payload := model.EventPayload{Doctor: "Dra. Soto", Time: "14:00"}

	msg := Compose(model.EventTypeAppointment, payload, "15_min_before", profile)
	assert.Contains(t, msg, "en quince minutos")
	assert.Contains(t, msg, "Dra. Soto")
	assert.Contains(t, msg, "a las 14:00")

	msg = Compose(model.EventTypeAppointment, payload, model.TimingAtTime, profile)
	assert.Contains(t, msg, "es el momento de tu cita con Dra. Soto")
}

func TestComposeActivity(t *testing.T) {
	profile := &model.Profile{Name: "Elena"}

	msg := Compose(model.EventTypeActivity, model.EventPayload{Title: "Caminata"}, "1_hour_before", profile)
	assert.Contains(t, msg, "en una hora")
	assert.Contains(t, msg, "Caminata")
	assert.NotContains(t, msg, "a las")

	msg = Compose(model.EventTypeActivity, model.EventPayload{Title: "Caminata", Time: "10:30"}, "15_min_before", profile)
	assert.Contains(t, msg, "a las 10:30")
}

func TestComposeFallbacks(t *testing.T) {
	t.Run("nil profile uses neutral address", func(t *testing.T) {
		msg := Compose(model.EventTypeActivity, model.EventPayload{Title: "Caminata"}, model.TimingAtTime, nil)
		assert.Contains(t, msg, "Hola Usuario")
	})

	t.Run("unknown timing label reads as now", func(t *testing.T) {
		msg := Compose(model.EventTypeAppointment, model.EventPayload{Doctor: "Dra. Soto"}, "30_min_before", &model.Profile{Name: "Elena"})
		assert.Contains(t, msg, "ahora")
	})

	t.Run("unknown event type still greets", func(t *testing.T) {
		msg := Compose(model.EventType("exam"), model.EventPayload{}, model.TimingAtTime, &model.Profile{Name: "Elena"})
		assert.Contains(t, msg, "Hola Elena")
	})
}
