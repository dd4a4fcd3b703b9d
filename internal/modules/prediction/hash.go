package prediction

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	types "github.com/yungbote/garage-backend/internal/domain"
)

// VehicleSnapshot is the part of a vehicle that feeds the inputs hash.
type VehicleSnapshot struct {
	ID      uuid.UUID `json:"id"`
	Make    string    `json:"make"`
	Model   string    `json:"model"`
	Year    int       `json:"year"`
	Mileage *int      `json:"mileage"`
}

func SnapshotOf(v *types.Vehicle) VehicleSnapshot {
	if v == nil {
		return VehicleSnapshot{}
	}
	return VehicleSnapshot{
		ID:      v.ID,
		Make:    v.Make,
		Model:   v.Model,
		Year:    v.Year,
		Mileage: v.Mileage,
	}
}

// InputsHash is the hex sha256 of the canonical JSON of the vehicle snapshot and features.
// encoding/json writes struct fields in declaration order and map keys sorted, so equal
// inputs always hash equally.
func InputsHash(v VehicleSnapshot, fs FeatureSet) (string, error) {
	b, err := json.Marshal(struct {
		Vehicle  VehicleSnapshot `json:"vehicle"`
		Features FeatureSet      `json:"features"`
	}{v, fs})
	if err != nil {
		return "", fmt.Errorf("inputs hash: %w", err)
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}

func SuggestionKey(vehicleID uuid.UUID, inputsHash string) string {
	return fmt.Sprintf("pred:v:%s:h:%s", vehicleID, inputsHash)
}

// RefreshCounterKey buckets by the UTC calendar day of now.
func RefreshCounterKey(now time.Time, userID uuid.UUID) string {
	return fmt.Sprintf("refresh_calls:day:%s:%s", now.UTC().Format(dateLayout), userID)
}
