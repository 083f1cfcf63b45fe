package conflict

import "github.com/alexanderramin/mangala/internal/domain"

// detectCulturalConflicts runs the cultural rule checks. None of them
// produce conflicts yet; domain.CulturalDetail is reserved for them.
func detectCulturalConflicts(req DetectionRequest) []domain.Conflict {
	var out []domain.Conflict
	out = append(out, checkCeremonySequence(req)...)
	out = append(out, checkAuspiciousTiming(req)...)
	out = append(out, checkVendorAffinity(req)...)
	return out
}

// checkCeremonySequence would verify ceremonies follow traditional order.
func checkCeremonySequence(DetectionRequest) []domain.Conflict { return nil }

// checkAuspiciousTiming would verify ceremonies fall within nakath times.
func checkAuspiciousTiming(DetectionRequest) []domain.Conflict { return nil }

// checkVendorAffinity would verify vendors match the cultural preferences.
func checkVendorAffinity(DetectionRequest) []domain.Conflict { return nil }
