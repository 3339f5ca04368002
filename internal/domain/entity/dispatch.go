package entity

// Dispatch despacho de una porción del lote hacia un cliente destino.
type Dispatch struct {
	IDDestination     Ref               `json:"iddestination"`
	NameDestination   string            `json:"namedestination"`
	QuantityProcessed Measure           `json:"quantityprocessed"`
	QuantityVisceras  Measure           `json:"quantityvisceras"`
	DispatchVehicle   Vehicle           `json:"dispatchvehicle"`
	Dispatch          DispatchCode      `json:"dispatch"`
	VehiclesDispatch  []VehicleDispatch `json:"vehiclesdispatch"`
}

// Vehicle vehículo principal del despacho.
type Vehicle struct {
	Plate string `json:"plate"`
}

// DispatchCode código del documento de despacho.
type DispatchCode struct {
	Code Ref `json:"code"`
}

// VehicleDispatch ventana de cargue de un vehículo.
type VehicleDispatch struct {
	Plate     string `json:"plate"`
	StartDate string `json:"startdate"`
	EndDate   string `json:"enddate"`
}
