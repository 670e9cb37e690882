// Package schedule implements the Ebbinghaus review scheduler: the pure
// functions that decide when a word is first reviewed and when the next
// review happens after each self-rated recall.
package schedule

import "time"

// Params defines all configurable parameters for the review scheduler.
type Params struct {
	// Offsets is the Ebbinghaus interval table, in days from initial
	// learning. Offsets[0] is always 0 (the moment the word is added).
	Offsets []int

	// ExhaustedInterval is how long to wait once every offset in the table
	// has been earned with a good recall.
	ExhaustedInterval time.Duration

	// PartialRecallDelay applies when the word was only partially
	// remembered (quality 2-3).
	PartialRecallDelay time.Duration

	// ForgotDelay applies when the word was completely forgotten (quality 1).
	ForgotDelay time.Duration

	// RememberedThreshold is the minimum quality that counts as a good
	// recall and advances through the offset table.
	RememberedThreshold int

	// PartialThreshold is the minimum quality that counts as partial recall.
	PartialThreshold int
}

// ParamsConfig allows overriding the default parameters when creating a new
// Params instance. Zero values leave the corresponding default in place.
type ParamsConfig struct {
	Offsets            []int
	ExhaustedInterval  time.Duration
	PartialRecallDelay time.Duration
	ForgotDelay        time.Duration
}

// NewDefaultParams creates a new Params instance with the standard
// Ebbinghaus table and delays.
func NewDefaultParams() *Params {
	return &Params{
		Offsets:             []int{0, 1, 2, 6, 31},
		ExhaustedInterval:   365 * 24 * time.Hour,
		PartialRecallDelay:  12 * time.Hour,
		ForgotDelay:         time.Hour,
		RememberedThreshold: 4,
		PartialThreshold:    2,
	}
}

// NewParams creates a new Params instance with custom configuration.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if len(config.Offsets) > 0 {
		params.Offsets = config.Offsets
	}
	if config.ExhaustedInterval > 0 {
		params.ExhaustedInterval = config.ExhaustedInterval
	}
	if config.PartialRecallDelay > 0 {
		params.PartialRecallDelay = config.PartialRecallDelay
	}
	if config.ForgotDelay > 0 {
		params.ForgotDelay = config.ForgotDelay
	}

	return params
}
