package domain

import (
	"context"

	"vesselq/internal/core/trajectory"
	"vesselq/internal/core/verify"
	vdomain "vesselq/internal/services/vessels/domain"
)

// Forecaster projects an already resolved vessel forward. minutes <= 0 takes the default
type Forecaster interface {
	Forecast(ctx context.Context, m vdomain.ResolvedMatch, minutes int) (trajectory.Prediction, error)
}

// Checker verifies the movement that led up to a resolved record
type Checker interface {
	Check(ctx context.Context, m vdomain.ResolvedMatch) verify.Verdict
}

// Ports is the port set the trajectory module exposes
type Ports struct {
	Forecaster Forecaster
	Checker    Checker
}
