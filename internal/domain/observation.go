package domain

import (
	"fmt"
	"time"

	"github.com/ucube/wqi-forecast/pkg/utils"
)

// Sensor column names in the order the model was trained with
const (
	ColumnSS           = "ss"
	ColumnBOD          = "bod"
	ColumnPH           = "ph"
	ColumnTemp         = "temp"
	ColumnDO           = "do"
	ColumnEC           = "ec"
	ColumnNO3N         = "no3_n"
	ColumnTP           = "t_p"
	ColumnTN           = "t_n"
	ColumnChlorophyllA = "chlorophyll_a"
	ColumnCOD          = "cod"
)

// SensorColumns lists every sensor reading column
var SensorColumns = []string{
	ColumnSS, ColumnBOD, ColumnPH, ColumnTemp, ColumnDO, ColumnEC,
	ColumnNO3N, ColumnTP, ColumnTN, ColumnChlorophyllA, ColumnCOD,
}

// SensorDataPoint is one day of sensor readings as received on the wire.
// Pointer fields let validation tell a missing reading apart from zero.
type SensorDataPoint struct {
	DS           *string  `json:"ds" validate:"required"`
	SS           *float64 `json:"ss" validate:"required"`
	BOD          *float64 `json:"bod" validate:"required"`
	PH           *float64 `json:"ph" validate:"required"`
	Temp         *float64 `json:"temp" validate:"required"`
	DO           *float64 `json:"do" validate:"required_without=DOValue"`
	DOValue      *float64 `json:"do_value,omitempty" validate:"required_without=DO"` // emitted by the Java backend
	EC           *float64 `json:"ec" validate:"required"`
	NO3N         *float64 `json:"no3_n" validate:"required"`
	TP           *float64 `json:"t_p" validate:"required"`
	TN           *float64 `json:"t_n" validate:"required"`
	ChlorophyllA *float64 `json:"chlorophyll_a" validate:"required"`
	COD          *float64 `json:"cod" validate:"required"`
}

// SensorObservation is a validated, immutable day of readings
type SensorObservation struct {
	Date     time.Time
	Readings map[string]float64
}

// ToObservation converts a validated data point into an observation.
// The data point must already have passed struct validation.
func (p SensorDataPoint) ToObservation() (SensorObservation, error) {
	if p.DS == nil {
		return SensorObservation{}, fmt.Errorf("ds is required")
	}
	date, err := utils.ParseDate(*p.DS)
	if err != nil {
		return SensorObservation{}, err
	}

	do := p.DO
	if do == nil {
		do = p.DOValue
	}

	values := []*float64{
		p.SS, p.BOD, p.PH, p.Temp, do, p.EC,
		p.NO3N, p.TP, p.TN, p.ChlorophyllA, p.COD,
	}
	readings := make(map[string]float64, len(SensorColumns))
	for i, column := range SensorColumns {
		if values[i] == nil {
			return SensorObservation{}, fmt.Errorf("%s is required", column)
		}
		readings[column] = *values[i]
	}

	return SensorObservation{Date: date, Readings: readings}, nil
}

// ShiftedTo returns a copy of the observation dated at the given day
func (o SensorObservation) ShiftedTo(date time.Time) SensorObservation {
	readings := make(map[string]float64, len(o.Readings))
	for k, v := range o.Readings {
		readings[k] = v
	}
	return SensorObservation{Date: date, Readings: readings}
}

// PredictionRequest is the body accepted by both prediction endpoints.
// Each basin's list is kept raw so that a malformed list fails only that basin.
type PredictionRequest struct {
	AllSensorData map[string]RawObservations `json:"all_sensor_data"`
}

// RawObservations holds one basin's undecoded observation list
type RawObservations []byte

// UnmarshalJSON keeps a copy of the raw bytes
func (r *RawObservations) UnmarshalJSON(data []byte) error {
	*r = append((*r)[0:0], data...)
	return nil
}

// PredictionRecord is one forecasted day
type PredictionRecord struct {
	DS    string  `json:"ds"`
	Yhat  float64 `json:"yhat"`
	Grade string  `json:"WQI_등급"`
}

// BasinPredictions maps a basin name to either []PredictionRecord or an error message
type BasinPredictions map[string]any
