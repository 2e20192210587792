package service

import (
	"github.com/ucube/wqi-forecast/internal/domain"
)

// Forecaster is re-exported from domain for convenience
type Forecaster = domain.Forecaster

// BasinEncoder is re-exported from domain for convenience
type BasinEncoder = domain.BasinEncoder
