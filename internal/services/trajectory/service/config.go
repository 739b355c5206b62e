package service

import (
	"vesselq/internal/core/trajectory"
	"vesselq/internal/core/verify"
)

// Defaults
const (
	DefaultMinutes        = 30
	DefaultSequenceLength = 12
)

// Config tunes prediction and verification
type Config struct {
	Policy         trajectory.Policy
	SequenceLength int
	DefaultMinutes int

	JumpNM         float64
	CourseDeltaDeg float64
	// Window is how many trailing fixes are verified
	Window int
}

func (c Config) withDefaults() Config {
	if c.Policy == "" {
		c.Policy = trajectory.PolicyAuto
	}
	if c.SequenceLength <= 0 {
		c.SequenceLength = DefaultSequenceLength
	}
	if c.DefaultMinutes <= 0 {
		c.DefaultMinutes = DefaultMinutes
	}
	if c.JumpNM <= 0 {
		c.JumpNM = verify.DefaultJumpNM
	}
	if c.CourseDeltaDeg <= 0 {
		c.CourseDeltaDeg = verify.DefaultCourseDeltaDeg
	}
	if c.Window < 2 {
		c.Window = verify.DefaultWindow
	}
	return c
}
