package model

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/goccy/go-json"

	"github.com/ucube/wqi-forecast/internal/domain"
	"github.com/ucube/wqi-forecast/pkg/utils"
)

// ProphetArtifact is the JSON export of a fitted additive Prophet model
// with linear growth.
type ProphetArtifact struct {
	Start         string        `json:"start"`
	TScaleDays    float64       `json:"t_scale_days"`
	YScale        float64       `json:"y_scale"`
	K             float64       `json:"k"`
	M             float64       `json:"m"`
	Changepoints  []float64     `json:"changepoints"`
	Deltas        []float64     `json:"deltas"`
	Seasonalities []Seasonality `json:"seasonalities"`
	Regressors    []Regressor   `json:"regressors"`
}

// Seasonality is a Fourier-series component. Beta holds sin/cos pairs per order.
type Seasonality struct {
	Name         string    `json:"name"`
	Period       float64   `json:"period"`
	FourierOrder int       `json:"fourier_order"`
	Beta         []float64 `json:"beta"`
}

// Regressor is an extra standardized input column
type Regressor struct {
	Name string  `json:"name"`
	Mu   float64 `json:"mu"`
	Std  float64 `json:"std"`
	Beta float64 `json:"beta"`
}

var unixEpoch = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// Prophet implements domain.Forecaster. It is immutable once built.
type Prophet struct {
	artifact ProphetArtifact
	start    time.Time
}

// NewProphet validates an artifact and builds a model from it
func NewProphet(artifact ProphetArtifact) (*Prophet, error) {
	start, err := utils.ParseDate(artifact.Start)
	if err != nil {
		return nil, fmt.Errorf("model: invalid start: %w", err)
	}
	if artifact.TScaleDays <= 0 {
		return nil, fmt.Errorf("model: t_scale_days must be positive, got %v", artifact.TScaleDays)
	}
	if artifact.YScale == 0 {
		return nil, fmt.Errorf("model: y_scale must be non-zero")
	}
	if len(artifact.Changepoints) != len(artifact.Deltas) {
		return nil, fmt.Errorf("model: %d changepoints but %d deltas",
			len(artifact.Changepoints), len(artifact.Deltas))
	}
	for _, s := range artifact.Seasonalities {
		if s.Period <= 0 {
			return nil, fmt.Errorf("model: seasonality %q has non-positive period", s.Name)
		}
		if len(s.Beta) != 2*s.FourierOrder {
			return nil, fmt.Errorf("model: seasonality %q expects %d coefficients, got %d",
				s.Name, 2*s.FourierOrder, len(s.Beta))
		}
	}
	seen := make(map[string]bool, len(artifact.Regressors))
	for _, r := range artifact.Regressors {
		if r.Name == "" {
			return nil, fmt.Errorf("model: regressor with empty name")
		}
		if seen[r.Name] {
			return nil, fmt.Errorf("model: duplicate regressor %q", r.Name)
		}
		seen[r.Name] = true
	}

	return &Prophet{artifact: artifact, start: start}, nil
}

// LoadProphet reads a model artifact from disk
func LoadProphet(path string) (*Prophet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("model: failed to read artifact: %w", err)
	}

	var artifact ProphetArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("model: failed to decode artifact %s: %w", path, err)
	}

	return NewProphet(artifact)
}

// RegressorNames lists the extra columns the model reads
func (p *Prophet) RegressorNames() []string {
	names := make([]string, 0, len(p.artifact.Regressors))
	for _, r := range p.artifact.Regressors {
		names = append(names, r.Name)
	}
	return names
}

// Predict computes yhat for every frame row
func (p *Prophet) Predict(frame domain.FeatureFrame) ([]domain.Forecast, error) {
	if len(frame) == 0 {
		return nil, fmt.Errorf("model: empty frame")
	}

	out := make([]domain.Forecast, 0, len(frame))
	for i, row := range frame {
		regression, err := p.regression(row)
		if err != nil {
			return nil, fmt.Errorf("model: row %d: %w", i, err)
		}

		t := utils.DaysBetween(p.start, row.DS) / p.artifact.TScaleDays
		yhat := (p.trend(t) + p.seasonal(row.DS) + regression) * p.artifact.YScale
		if math.IsNaN(yhat) || math.IsInf(yhat, 0) {
			return nil, fmt.Errorf("model: row %d: prediction is not finite", i)
		}

		out = append(out, domain.Forecast{DS: row.DS, Yhat: yhat})
	}

	return out, nil
}

// trend evaluates the piecewise linear trend at scaled time t
func (p *Prophet) trend(t float64) float64 {
	rate := p.artifact.K
	offset := p.artifact.M
	for j, cp := range p.artifact.Changepoints {
		if cp <= t {
			rate += p.artifact.Deltas[j]
			offset -= cp * p.artifact.Deltas[j]
		}
	}
	return rate*t + offset
}

func (p *Prophet) seasonal(ds time.Time) float64 {
	x := utils.DaysBetween(unixEpoch, ds)

	var total float64
	for _, s := range p.artifact.Seasonalities {
		for n := 1; n <= s.FourierOrder; n++ {
			arg := 2 * math.Pi * float64(n) * x / s.Period
			total += s.Beta[2*(n-1)]*math.Sin(arg) + s.Beta[2*(n-1)+1]*math.Cos(arg)
		}
	}
	return total
}

func (p *Prophet) regression(row domain.FeatureRow) (float64, error) {
	var total float64
	for _, r := range p.artifact.Regressors {
		value, ok := row.Columns[r.Name]
		if !ok {
			return 0, fmt.Errorf("missing regressor column %q", r.Name)
		}
		std := r.Std
		if std == 0 {
			std = 1
		}
		total += r.Beta * (value - r.Mu) / std
	}
	return total, nil
}
