package model

import (
	"errors"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ucube/wqi-forecast/internal/domain"
)

const tolerance = 1e-9

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func row(ds string, columns map[string]float64) domain.FeatureRow {
	return domain.FeatureRow{DS: day(ds), Columns: columns}
}

func mustProphet(t *testing.T, a ProphetArtifact) *Prophet {
	t.Helper()
	p, err := NewProphet(a)
	if err != nil {
		t.Fatalf("NewProphet returned error: %v", err)
	}
	return p
}

func TestPredictConstantTrend(t *testing.T) {
	p := mustProphet(t, ProphetArtifact{Start: "2020-01-01", TScaleDays: 100, YScale: 100, M: 0.5})

	out, err := p.Predict(domain.FeatureFrame{row("2020-01-01", nil), row("2021-06-01", nil)})
	if err != nil {
		t.Fatalf("Predict returned error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 forecasts, got %d", len(out))
	}
	for _, f := range out {
		if math.Abs(f.Yhat-50) > tolerance {
			t.Errorf("expected yhat 50 at %v, got %v", f.DS, f.Yhat)
		}
	}
	if !out[1].DS.Equal(day("2021-06-01")) {
		t.Errorf("forecast date not carried through: %v", out[1].DS)
	}
}

func TestPredictPiecewiseTrend(t *testing.T) {
	// rate 1 until t=0.5, then flat at 0.5
	p := mustProphet(t, ProphetArtifact{
		Start:        "2020-01-01",
		TScaleDays:   10,
		YScale:       100,
		K:            1,
		Changepoints: []float64{0.5},
		Deltas:       []float64{-1},
	})

	out, err := p.Predict(domain.FeatureFrame{row("2020-01-04", nil), row("2020-01-09", nil)})
	if err != nil {
		t.Fatalf("Predict returned error: %v", err)
	}
	if math.Abs(out[0].Yhat-30) > tolerance {
		t.Errorf("expected 30 before changepoint, got %v", out[0].Yhat)
	}
	if math.Abs(out[1].Yhat-50) > tolerance {
		t.Errorf("expected 50 after changepoint, got %v", out[1].Yhat)
	}
}

func TestPredictSeasonality(t *testing.T) {
	p := mustProphet(t, ProphetArtifact{
		Start:      "1970-01-01",
		TScaleDays: 1000,
		YScale:     1,
		Seasonalities: []Seasonality{
			{Name: "quarter", Period: 4, FourierOrder: 1, Beta: []float64{2, 3}},
		},
	})

	// x=1: sin(pi/2)=1, cos(pi/2)=0 ; x=2: sin(pi)=0, cos(pi)=-1
	out, err := p.Predict(domain.FeatureFrame{row("1970-01-02", nil), row("1970-01-03", nil)})
	if err != nil {
		t.Fatalf("Predict returned error: %v", err)
	}
	if math.Abs(out[0].Yhat-2) > tolerance {
		t.Errorf("expected 2, got %v", out[0].Yhat)
	}
	if math.Abs(out[1].Yhat+3) > tolerance {
		t.Errorf("expected -3, got %v", out[1].Yhat)
	}
}

func TestPredictRegressors(t *testing.T) {
	p := mustProphet(t, ProphetArtifact{
		Start:      "2020-01-01",
		TScaleDays: 10,
		YScale:     10,
		Regressors: []Regressor{
			{Name: "bod", Mu: 1, Std: 2, Beta: 0.5},
			{Name: "수계별_한강", Mu: 0, Std: 0, Beta: 1},
		},
	})

	out, err := p.Predict(domain.FeatureFrame{
		row("2020-01-01", map[string]float64{"bod": 5, "수계별_한강": 1}),
	})
	if err != nil {
		t.Fatalf("Predict returned error: %v", err)
	}
	// (0.5*(5-1)/2 + 1*1) * 10
	if math.Abs(out[0].Yhat-20) > tolerance {
		t.Errorf("expected 20, got %v", out[0].Yhat)
	}

	want := []string{"bod", "수계별_한강"}
	got := p.RegressorNames()
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("expected regressors %v, got %v", want, got)
	}
}

func TestPredictMissingRegressor(t *testing.T) {
	p := mustProphet(t, ProphetArtifact{
		Start:      "2020-01-01",
		TScaleDays: 10,
		YScale:     1,
		Regressors: []Regressor{{Name: "cod", Std: 1, Beta: 1}},
	})

	_, err := p.Predict(domain.FeatureFrame{row("2020-01-01", map[string]float64{"bod": 1})})
	if err == nil {
		t.Fatal("expected error for missing regressor")
	}
	if !strings.Contains(err.Error(), `"cod"`) {
		t.Errorf("error should name the missing column: %v", err)
	}
}

func TestPredictEmptyFrame(t *testing.T) {
	p := mustProphet(t, ProphetArtifact{Start: "2020-01-01", TScaleDays: 10, YScale: 1})
	if _, err := p.Predict(nil); err == nil {
		t.Error("expected error for empty frame")
	}
}

func TestNewProphetValidation(t *testing.T) {
	season := func(period float64, order int, beta ...float64) []Seasonality {
		return []Seasonality{{Name: "yearly", Period: period, FourierOrder: order, Beta: beta}}
	}
	base := func() ProphetArtifact {
		return ProphetArtifact{Start: "2020-01-01", TScaleDays: 1, YScale: 1}
	}

	badStart := base()
	badStart.Start = "yesterday"
	zeroT := base()
	zeroT.TScaleDays = 0
	zeroY := base()
	zeroY.YScale = 0
	deltaMismatch := base()
	deltaMismatch.Changepoints = []float64{0.2}
	betaMismatch := base()
	betaMismatch.Seasonalities = season(365.25, 2, 1)
	badPeriod := base()
	badPeriod.Seasonalities = season(0, 0)
	dupRegressor := base()
	dupRegressor.Regressors = []Regressor{{Name: "ss"}, {Name: "ss"}}

	for _, a := range []ProphetArtifact{badStart, zeroT, zeroY, deltaMismatch, betaMismatch, badPeriod, dupRegressor} {
		if _, err := NewProphet(a); err == nil {
			t.Errorf("expected error for artifact %+v", a)
		}
	}
}

func TestLoadProphet(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prophet_model.json")
	body := `{"start":"2020-01-01","t_scale_days":365,"y_scale":100,"k":0,"m":0.8,
		"regressors":[{"name":"ph","mu":7,"std":1,"beta":0}]}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write artifact: %v", err)
	}

	p, err := LoadProphet(path)
	if err != nil {
		t.Fatalf("LoadProphet returned error: %v", err)
	}
	if names := p.RegressorNames(); len(names) != 1 || names[0] != "ph" {
		t.Errorf("unexpected regressors %v", names)
	}

	_, err = LoadProphet(filepath.Join(dir, "missing.json"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}

	broken := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(broken, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write artifact: %v", err)
	}
	if _, err := LoadProphet(broken); err == nil {
		t.Error("expected decode error")
	}
}
