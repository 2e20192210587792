package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/ucube/wqi-forecast/internal/domain"
	"github.com/ucube/wqi-forecast/pkg/utils"
)

// PredictionService turns per-basin sensor payloads into WQI forecasts
type PredictionService struct {
	model    Forecaster
	validate *validator.Validate

	featureNames []string
	basins       []string
	basinColumns map[string]string // basin name -> one-hot column
}

// ModelInfo describes the loaded artifacts
type ModelInfo struct {
	Basins         []string `json:"basins"`
	BasinFeatures  []string `json:"basin_features"`
	RegressorNames []string `json:"regressors"`
}

// NewPredictionService creates a prediction service around a loaded model and encoder
func NewPredictionService(model Forecaster, encoder BasinEncoder) *PredictionService {
	featureNames := encoder.FeatureNames()
	basins := make([]string, 0, len(featureNames))
	basinColumns := make(map[string]string, len(featureNames))
	for _, name := range featureNames {
		basin := name
		if i := strings.LastIndex(name, "_"); i >= 0 {
			basin = name[i+1:]
		}
		basins = append(basins, basin)
		basinColumns[basin] = name
	}

	return &PredictionService{
		model:        model,
		validate:     validator.New(),
		featureNames: featureNames,
		basins:       basins,
		basinColumns: basinColumns,
	}
}

// ModelInfo returns the basins and columns the loaded artifacts expect
func (s *PredictionService) ModelInfo() ModelInfo {
	return ModelInfo{
		Basins:         append([]string(nil), s.basins...),
		BasinFeatures:  append([]string(nil), s.featureNames...),
		RegressorNames: s.model.RegressorNames(),
	}
}

// PredictWithSensors forecasts every supplied observation date for each basin
func (s *PredictionService) PredictWithSensors(ctx context.Context, req domain.PredictionRequest) (domain.BasinPredictions, error) {
	return s.predictAll(ctx, req, func(observations []domain.SensorObservation) []domain.SensorObservation {
		return observations
	})
}

// PredictFuture repeats each basin's last observation for the given number of days
func (s *PredictionService) PredictFuture(ctx context.Context, req domain.PredictionRequest, days int) (domain.BasinPredictions, error) {
	if days < 1 {
		return nil, fmt.Errorf("prediction: days must be positive, got %d", days)
	}

	return s.predictAll(ctx, req, func(observations []domain.SensorObservation) []domain.SensorObservation {
		return FutureObservations(observations[len(observations)-1], days)
	})
}

// FutureObservations copies last for each of the next days calendar days
func FutureObservations(last domain.SensorObservation, days int) []domain.SensorObservation {
	out := make([]domain.SensorObservation, 0, days)
	for i := 1; i <= days; i++ {
		out = append(out, last.ShiftedTo(utils.AddDays(last.Date, i)))
	}
	return out
}

func (s *PredictionService) predictAll(
	ctx context.Context,
	req domain.PredictionRequest,
	expand func([]domain.SensorObservation) []domain.SensorObservation,
) (domain.BasinPredictions, error) {
	predictions := make(domain.BasinPredictions, len(req.AllSensorData))

	for basin, raw := range req.AllSensorData {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("prediction: request cancelled: %w", err)
		}

		records, msg := s.predictBasin(basin, raw, expand)
		if msg != "" {
			log.Printf("Prediction for basin %q failed: %s", basin, msg)
			predictions[basin] = msg
			continue
		}
		predictions[basin] = records
	}

	return predictions, nil
}

// predictBasin returns either records or a human-readable error message
func (s *PredictionService) predictBasin(
	basin string,
	raw domain.RawObservations,
	expand func([]domain.SensorObservation) []domain.SensorObservation,
) ([]domain.PredictionRecord, string) {
	column, ok := s.basinColumns[basin]
	if !ok {
		return nil, fmt.Sprintf("Error: '%s' is not a valid basin name", basin)
	}

	observations, err := s.decodeObservations(raw)
	if err != nil {
		return nil, fmt.Sprintf("Error: failed to convert sensor data - %v", err)
	}
	if len(observations) == 0 {
		return nil, fmt.Sprintf("Error: no sensor data supplied for '%s'", basin)
	}

	frame := s.buildFrame(column, expand(observations))

	forecasts, err := s.model.Predict(frame)
	if err != nil {
		return nil, fmt.Sprintf("Error: model prediction failed - %v", err)
	}

	records := make([]domain.PredictionRecord, 0, len(forecasts))
	for _, f := range forecasts {
		records = append(records, domain.PredictionRecord{
			DS:    utils.FormatDate(f.DS),
			Yhat:  f.Yhat,
			Grade: domain.Classify(f.Yhat),
		})
	}
	return records, ""
}

func (s *PredictionService) decodeObservations(raw domain.RawObservations) ([]domain.SensorObservation, error) {
	var points []domain.SensorDataPoint
	if err := json.Unmarshal(raw, &points); err != nil {
		return nil, err
	}

	observations := make([]domain.SensorObservation, 0, len(points))
	for i, p := range points {
		if err := s.validate.Struct(p); err != nil {
			return nil, fmt.Errorf("observation %d: %w", i, err)
		}
		obs, err := p.ToObservation()
		if err != nil {
			return nil, fmt.Errorf("observation %d: %w", i, err)
		}
		observations = append(observations, obs)
	}
	return observations, nil
}

// buildFrame lays observations out as model rows with the basin's one-hot column set
func (s *PredictionService) buildFrame(basinColumn string, observations []domain.SensorObservation) domain.FeatureFrame {
	frame := make(domain.FeatureFrame, 0, len(observations))
	for _, obs := range observations {
		columns := make(map[string]float64, len(obs.Readings)+len(s.featureNames))
		for k, v := range obs.Readings {
			columns[k] = v
		}
		for _, name := range s.featureNames {
			columns[name] = 0
		}
		columns[basinColumn] = 1

		frame = append(frame, domain.FeatureRow{DS: obs.Date, Columns: columns})
	}
	return frame
}
