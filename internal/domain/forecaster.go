package domain

import "time"

// FeatureRow is one row of the model input frame
type FeatureRow struct {
	DS      time.Time
	Columns map[string]float64
}

// FeatureFrame is the tabular input handed to a Forecaster
type FeatureFrame []FeatureRow

// Forecast is one model output row
type Forecast struct {
	DS   time.Time
	Yhat float64
}

// Forecaster defines the prediction contract of a loaded model
type Forecaster interface {
	// Predict returns one forecast per frame row, in order
	Predict(frame FeatureFrame) ([]Forecast, error)

	// RegressorNames lists the columns the model reads besides ds
	RegressorNames() []string
}

// BasinEncoder describes the fitted categorical encoder for basins
type BasinEncoder interface {
	// FeatureNames returns the one-hot column names, e.g. "수계별_한강"
	FeatureNames() []string
}
