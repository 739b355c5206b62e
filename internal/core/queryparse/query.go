package queryparse

import (
	"encoding/json"
	"time"

	ptime "vesselq/internal/platform/time"
)

// Intent is what the operator wants done
type Intent string

// Intents; the empty intent means none was recognised
const (
	IntentNone    Intent = ""
	IntentShow    Intent = "SHOW"
	IntentPredict Intent = "PREDICT"
	IntentVerify  Intent = "VERIFY"
)

var intentByBucket = map[string]Intent{
	"show":    IntentShow,
	"predict": IntentPredict,
	"verify":  IntentVerify,
}

// MarshalJSON renders the empty intent as null
func (i Intent) MarshalJSON() ([]byte, error) {
	if i == IntentNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(i))
}

// TimeKind records which rule produced the time fields
type TimeKind string

// Time kinds in resolution order
const (
	TimeAbsolute  TimeKind = "absolute"
	TimeOfDay     TimeKind = "time_of_day"
	TimeRelative  TimeKind = "relative"
	TimeAgo       TimeKind = "ago"
	TimeDuration  TimeKind = "duration"
	TimeMonthDay  TimeKind = "month_day"
	TimeHorizonFB TimeKind = "horizon"
	TimeNone      TimeKind = "none"
)

// Identifiers are the vessel ids written in the query
type Identifiers struct {
	MMSI     *string `json:"mmsi"`
	IMO      *string `json:"imo"`
	CallSign *string `json:"call_sign"`
}

// Empty reports whether no identifier was found
func (id Identifiers) Empty() bool { return id.MMSI == nil && id.IMO == nil && id.CallSign == nil }

// ParsedQuery is the structured reading of one free text question.
// It is never mutated after Parse returns
type ParsedQuery struct {
	RawText         string      `json:"raw_text"`
	Intent          Intent      `json:"intent"`
	VesselName      *string     `json:"vessel_name"`
	NameStage       NameStage   `json:"name_stage,omitempty"`
	Identifiers     Identifiers `json:"identifiers"`
	TimeHorizon     *string     `json:"time_horizon"`
	TimeExpr        *string     `json:"absolute_or_relative_time"`
	EndDateTime     *time.Time  `json:"-"`
	DurationMinutes *int        `json:"duration_minutes"`
	TimeKind        TimeKind    `json:"time_kind"`
}

type wireQuery ParsedQuery

// MarshalJSON renders EndDateTime in the store's wall clock layout
func (q ParsedQuery) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		wireQuery
		EndDateTime *ptime.Wall `json:"end_datetime"`
	}{wireQuery(q), ptime.WallPtr(q.EndDateTime)})
}

// HasVessel reports whether the query names a vessel or carries an MMSI
func (q ParsedQuery) HasVessel() bool { return q.VesselName != nil || q.Identifiers.MMSI != nil }
