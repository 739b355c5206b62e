// Package domain defines the types and ports of the trajectory service
package domain

import (
	"vesselq/internal/core/trajectory"
	"vesselq/internal/core/verify"
	ptime "vesselq/internal/platform/time"
	vdomain "vesselq/internal/services/vessels/domain"
)

// Forecast is a resolved vessel and where it is expected to be
type Forecast struct {
	Match      *vdomain.ResolvedMatch `json:"match"`
	Prediction trajectory.Prediction  `json:"prediction"`
}

// Check is a resolved vessel and the verdict on its recent movement
type Check struct {
	Match   *vdomain.ResolvedMatch `json:"match"`
	Verdict verify.Verdict         `json:"verdict"`
}

// PredictRequest is the body of POST /trajectory/predict
type PredictRequest struct {
	vdomain.VesselRef
	Minutes int         `json:"minutes,omitempty" validate:"omitempty,min=1,max=1440"`
	At      *ptime.Wall `json:"at,omitempty"`
}

// Input converts the request for the resolver
func (r PredictRequest) Input() vdomain.ResolveInput {
	return vdomain.ResolveRequest{VesselRef: r.VesselRef, At: r.At}.Input()
}

// VerifyRequest is the body of POST /trajectory/verify
type VerifyRequest struct {
	vdomain.VesselRef
	At *ptime.Wall `json:"at,omitempty"`
}

// Input converts the request for the resolver
func (r VerifyRequest) Input() vdomain.ResolveInput {
	return vdomain.ResolveRequest{VesselRef: r.VesselRef, At: r.At}.Input()
}
