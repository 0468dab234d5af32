package entity

// Entity is one parsed data row; immutable after creation
type Entity struct {
	Name      string
	Attribute float64
}

// Tier is the color classification of an entity
type Tier uint8

const (
	TierLow Tier = iota
	TierMid
	TierHigh
)

func (t Tier) String() string {
	switch t {
	case TierLow:
		return "low"
	case TierMid:
		return "mid"
	case TierHigh:
		return "high"
	default:
		return "unknown"
	}
}

// Classifier maps an attribute onto a tier
// Each tier includes its lower bound: [0, MidFrom) low, [MidFrom, HighFrom) mid, [HighFrom, ∞) high
type Classifier struct {
	MidFrom  float64 `toml:"mid_from"`
	HighFrom float64 `toml:"high_from"`
}

// DefaultClassifier splits at 100k and 200k
func DefaultClassifier() Classifier {
	return Classifier{MidFrom: 100000, HighFrom: 200000}
}

// Classify returns the tier for attribute a
func (c Classifier) Classify(a float64) Tier {
	switch {
	case a < c.MidFrom:
		return TierLow
	case a < c.HighFrom:
		return TierMid
	default:
		return TierHigh
	}
}
