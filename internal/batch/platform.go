package batch

import (
	"strconv"
	"strings"
)

// GenericPlatformID is the fallback for unrecognized vehicle type strings.
const GenericPlatformID uint = 8

// Legacy vehicle_type strings mapped to the fixed platform id table.
var vehicleTypePlatformIDs = map[string]uint{
	"terberg": 1,
	"ca500":   2,
	"t800":    3,
	"aev":     4,
	"truck":   5,
	"van":     6,
	"car":     7,
	"generic": 8,
	"all":     8,
}

// NormalizePlatformRef resolves a vehicle platform reference that may arrive
// as an integer id, a numeric string, or a legacy vehicle_type string.
// Unrecognized strings fall back to the Generic platform. Nil input stays nil.
func NormalizePlatformRef(value interface{}) *uint {
	switch v := value.(type) {
	case nil:
		return nil
	case float64:
		id := uint(v)
		return &id
	case int:
		id := uint(v)
		return &id
	case uint:
		return &v
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil
		}
		if n, err := strconv.Atoi(s); err == nil {
			id := uint(n)
			return &id
		}
		if id, ok := vehicleTypePlatformIDs[strings.ToLower(s)]; ok {
			return &id
		}
		id := GenericPlatformID
		return &id
	default:
		id := GenericPlatformID
		return &id
	}
}
