package dispatch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeronimo114/comcer2/internal/domain/dispatch"
	"github.com/jeronimo114/comcer2/internal/domain/entity"
)

func loteConDosDespachos() *entity.Lote {
	return &entity.Lote{
		Batch: "12345-A",
		Dispatched: []entity.Dispatch{
			{
				IDDestination:   "10",
				NameDestination: "Carnes del Norte",
				DispatchVehicle: entity.Vehicle{Plate: "ABC123"},
				Dispatch:        entity.DispatchCode{Code: "D-001"},
				VehiclesDispatch: []entity.VehicleDispatch{
					{Plate: "ABC123", StartDate: "2025-07-22 06:00:00", EndDate: "2025-07-22 07:10:00"},
				},
			},
			{
				IDDestination:   "20",
				NameDestination: "Frigorífico Sur",
				DispatchVehicle: entity.Vehicle{Plate: "XYZ789"},
				Dispatch:        entity.DispatchCode{Code: "D-002"},
				VehiclesDispatch: []entity.VehicleDispatch{
					{Plate: "XYZ789", StartDate: "2025-07-22 08:00:00", EndDate: "2025-07-22 09:30:00"},
				},
			},
		},
	}
}

func TestIndex_ByDestination(t *testing.T) {
	idx := dispatch.NewIndex(loteConDosDespachos())

	d, ok := idx.ByDestination("20")
	require.True(t, ok)
	assert.Equal(t, dispatch.Detail{Name: "Frigorífico Sur", Plate: "XYZ789", Code: "D-002"}, d)

	_, ok = idx.ByDestination("99")
	assert.False(t, ok)
}

func TestIndex_LoadDates(t *testing.T) {
	idx := dispatch.NewIndex(loteConDosDespachos())

	assert.Equal(t, dispatch.LoadWindow{Start: "2025-07-22 06:00:00", End: "2025-07-22 07:10:00"}, idx.LoadDatesByPlate("ABC123"))
	assert.Equal(t, dispatch.LoadWindow{Start: "?", End: "?"}, idx.LoadDatesByPlate("NOPE00"))

	// Coincidencia de cliente sin importar mayúsculas ni espacios.
	assert.Equal(t, "2025-07-22 08:00:00", idx.LoadDatesByClient("  FRIGORÍFICO SUR ").Start)
	assert.Equal(t, "2025-07-22 08:00:00", idx.LoadDatesByClient("frigorifico  sur").Start)
	assert.Equal(t, dispatch.LoadWindow{Start: "?", End: "?"}, idx.LoadDatesByClient("Otro"))
}

func TestClients(t *testing.T) {
	l := loteConDosDespachos()
	l.Dispatched = append(l.Dispatched, entity.Dispatch{IDDestination: "10", NameDestination: "Carnes del Norte"})

	assert.Equal(t, []string{"Carnes del Norte", "Frigorífico Sur"}, dispatch.Clients(l))
	assert.Equal(t, []string{""}, dispatch.Clients(&entity.Lote{Batch: "1-A"}))
}

func TestIndex_LoteNil(t *testing.T) {
	idx := dispatch.NewIndex(nil)
	_, ok := idx.ByClient("x")
	assert.False(t, ok)
	assert.Equal(t, dispatch.Unknown, idx.LoadDatesByPlate("x").End)
}
