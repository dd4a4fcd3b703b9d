package prediction

// VehicleState tracks one vehicle through a refresh:
// PENDING → FEATURES_BUILT → CACHE_HIT|CACHE_MISS → AI_OK|AI_FAILED|AI_SKIPPED → RECONCILED.
// VEHICLE_FAILED is terminal and does not stop sibling vehicles.
type VehicleState string

const (
	StatePending       VehicleState = "PENDING"
	StateFeaturesBuilt VehicleState = "FEATURES_BUILT"
	StateCacheHit      VehicleState = "CACHE_HIT"
	StateCacheMiss     VehicleState = "CACHE_MISS"
	StateAIOK          VehicleState = "AI_OK"
	StateAIFailed      VehicleState = "AI_FAILED"
	StateAISkipped     VehicleState = "AI_SKIPPED"
	StateReconciled    VehicleState = "RECONCILED"
	StateVehicleFailed VehicleState = "VEHICLE_FAILED"
)

func (s VehicleState) Terminal() bool {
	return s == StateReconciled || s == StateVehicleFailed
}
