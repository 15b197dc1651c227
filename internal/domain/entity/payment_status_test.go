package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/ventas-pro/internal/domain/entity"
)

func TestPaymentStatus_Valid(t *testing.T) {
	casos := []struct {
		status entity.PaymentStatus
		valido bool
	}{
		{entity.PaymentPending, true},
		{entity.PaymentPaid, true},
		{entity.PaymentRefused, true},
		{entity.PaymentCanceled, true},
		{entity.PaymentStatus(""), false},
		{entity.PaymentStatus("pending"), false}, // sensible a mayúsculas
		{entity.PaymentStatus("DEVUELTO"), false},
	}
	for _, c := range casos {
		assert.Equal(t, c.valido, c.status.Valid(), "estado %q", c.status)
	}
}

func TestPaymentStatus_HoldsStock(t *testing.T) {
	// Solo CANCELED suelta la reserva; REFUSED la mantiene.
	assert.True(t, entity.PaymentPending.HoldsStock())
	assert.True(t, entity.PaymentPaid.HoldsStock())
	assert.True(t, entity.PaymentRefused.HoldsStock())
	assert.False(t, entity.PaymentCanceled.HoldsStock())
}
