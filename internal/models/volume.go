package models

import "time"

// SnapshotState describes what a lookup of a volume's source snapshot found
type SnapshotState int

const (
	// SnapshotNone means the volume was not created from a snapshot, so nothing was checked
	SnapshotNone SnapshotState = iota
	// SnapshotFound means the source snapshot still exists
	SnapshotFound
	// SnapshotNotFound means the provider rejected the lookup with a client error
	SnapshotNotFound
	// SnapshotCheckError means the lookup failed for another reason (server fault, network, ...)
	SnapshotCheckError
)

// String returns a short name for the state, used in logs
func (s SnapshotState) String() string {
	switch s {
	case SnapshotNone:
		return "none"
	case SnapshotFound:
		return "found"
	case SnapshotNotFound:
		return "not-found"
	case SnapshotCheckError:
		return "check-error"
	default:
		return "unknown"
	}
}

// VolumeRecord represents one available (unattached) EBS volume
type VolumeRecord struct {
	ID            string
	Name          string
	Region        string
	VolumeType    string
	CreateTime    time.Time
	Status        string
	Size          int // GiB
	SnapshotID    string
	Snapshot      SnapshotState
	MonthlyCost   float64
	PricingSource string // "API", "Cache", "Default", "N/A" or empty when cost estimation is off
}
