package domain

// Quality is a self-reported recall score given at review time.
// 1 means the word was completely forgotten, 5 means it was fully mastered.
type Quality int

// The recall quality scale presented to the user.
const (
	QualityForgot    Quality = 1 // completely forgot
	QualityVague     Quality = 2 // vague memory
	QualityEffortful Quality = 3 // remembered with effort
	QualityClear     Quality = 4 // remembered clearly
	QualityMastered  Quality = 5 // fully mastered
)

// MinQuality and MaxQuality bound the valid recall quality range.
const (
	MinQuality = QualityForgot
	MaxQuality = QualityMastered
)

// Valid reports whether the quality score is within the 1-5 range.
func (q Quality) Valid() bool {
	return q >= MinQuality && q <= MaxQuality
}

// Mastery converts the quality score to its 0-4 mastery level.
// Mastery always reflects the most recent review, not a running average.
func (q Quality) Mastery() int {
	return int(q) - 1
}
