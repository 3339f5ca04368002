// Package dispatch cruza los despachos de un lote con sus vehículos: qué placa y código
// corresponden a cada destino y en qué ventana se cargó cada placa.
package dispatch

import (
	"github.com/jeronimo114/comcer2/internal/domain/entity"
	"github.com/jeronimo114/comcer2/pkg/textnorm"
)

// Unknown se escribe en la hoja cuando no hay fecha de cargue para una placa o cliente.
const Unknown = "?"

// Detail datos del despacho de un destino.
type Detail struct {
	Name  string
	Plate string
	Code  string
}

// LoadWindow inicio y fin del cargue de un vehículo.
type LoadWindow struct {
	Start string
	End   string
}

var unknownWindow = LoadWindow{Start: Unknown, End: Unknown}

// Index búsquedas por destino, cliente y placa sobre los despachos de un lote.
type Index struct {
	byDestination map[string]Detail
	order         []string
	vehicles      []entity.VehicleDispatch
}

// NewIndex construye el índice. Si dos despachos comparten destino gana el último, igual que
// la API cuando reenvía un despacho corregido.
func NewIndex(l *entity.Lote) *Index {
	idx := &Index{byDestination: make(map[string]Detail)}
	if l == nil {
		return idx
	}
	for _, d := range l.Dispatched {
		key := d.IDDestination.String()
		if _, seen := idx.byDestination[key]; !seen {
			idx.order = append(idx.order, key)
		}
		idx.byDestination[key] = Detail{
			Name:  d.NameDestination,
			Plate: d.DispatchVehicle.Plate,
			Code:  d.Dispatch.Code.String(),
		}
		idx.vehicles = append(idx.vehicles, d.VehiclesDispatch...)
	}
	return idx
}

// ByDestination detalle del despacho para el id de destino de un individuo.
func (x *Index) ByDestination(value string) (Detail, bool) {
	d, ok := x.byDestination[value]
	return d, ok
}

// ByClient detalle del despacho cuyo nombre coincide con el cliente (sin distinguir
// mayúsculas, tildes ni espacios).
func (x *Index) ByClient(client string) (Detail, bool) {
	want := textnorm.Fold(client)
	for _, key := range x.order {
		d := x.byDestination[key]
		if textnorm.Fold(d.Name) == want {
			return d, true
		}
	}
	return Detail{}, false
}

// LoadDatesByPlate ventana de cargue del primer vehículo con esa placa; "?" si no existe.
func (x *Index) LoadDatesByPlate(plate string) LoadWindow {
	for _, v := range x.vehicles {
		if v.Plate == plate {
			return LoadWindow{Start: v.StartDate, End: v.EndDate}
		}
	}
	return unknownWindow
}

// LoadDatesByClient ventana de cargue del vehículo asignado al despacho del cliente.
func (x *Index) LoadDatesByClient(client string) LoadWindow {
	d, ok := x.ByClient(client)
	if !ok {
		return unknownWindow
	}
	return x.LoadDatesByPlate(d.Plate)
}

// Clients nombres de destino distintos en orden de aparición. Un lote sin despachos
// produce un único cliente vacío para que igual se genere un archivo.
func Clients(l *entity.Lote) []string {
	if l == nil || len(l.Dispatched) == 0 {
		return []string{""}
	}
	seen := make(map[string]bool, len(l.Dispatched))
	var out []string
	for _, d := range l.Dispatched {
		if seen[d.NameDestination] {
			continue
		}
		seen[d.NameDestination] = true
		out = append(out, d.NameDestination)
	}
	return out
}
