package domain

// Added distance (km) and time (minutes) a carrier travels off its planned
// route to service a package.
type RouteDeviation struct {
	Distance float64
	Time     float64
}

// Positions inside a FeatureVector. The order is part of the model contract:
// a classifier fitted on one order cannot score another.
const (
	FeatureRouteDeviationDistance = iota
	FeatureRouteDeviationTime
	FeatureTimeCompatibility
	FeatureSizeCompatibility
	FeatureCarrierRating
	FeatureCarrierOnTimeRate
	FeatureCarrierExperience

	FeatureCount
)

// FeatureVector is the fixed-order numeric encoding fed to the classifier.
type FeatureVector [FeatureCount]float64

// Slice returns the vector as a freshly allocated slice.
func (f FeatureVector) Slice() []float64 {
	out := make([]float64, FeatureCount)
	copy(out, f[:])
	return out
}

// Outcome of scoring one package against one carrier.
type MatchResult struct {
	CarrierID      string
	PackageID      string
	MatchScore     float64
	Compensation   float64
	RouteDeviation RouteDeviation
}

// Historical match record used to fit a classifier.
type TrainingExample struct {
	Package Package
	Carrier Carrier
	Success bool
}
