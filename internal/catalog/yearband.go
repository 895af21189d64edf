package catalog

// Band is the release-era classification derived from a release year.
type Band string

const (
	BandOld     Band = "old"      // up to 1999
	BandMiddle  Band = "middle"   // 2000-2009
	BandNew     Band = "new"      // 2010-2019
	BandVeryNew Band = "very-new" // 2020-2024
	BandUnknown Band = "unknown"  // outside every range
)

// ParseBand validates a persisted band string. The empty string is a valid
// "no preference" value.
func ParseBand(value string) (Band, bool) {
	switch Band(value) {
	case "", BandOld, BandMiddle, BandNew, BandVeryNew, BandUnknown:
		return Band(value), true
	default:
		return "", false
	}
}

// ClassifyYear bands an integer release year. ok is false for absent
// (non-positive) years and years beyond the very-new range; such candidates
// are unclassifiable and rejected by the year gate.
func ClassifyYear(year int) (Band, bool) {
	if year <= 0 {
		return BandUnknown, false
	}
	band := ClassifyYearValue(float64(year))
	return band, band != BandUnknown
}

// ClassifyYearValue bands a fractional year value, used for the average
// release year of a renewal session. The ranges are closed on both ends, so
// fractional values falling between two bands (e.g. 1999.5) classify as
// unknown; that gap is part of the banding contract.
func ClassifyYearValue(value float64) Band {
	switch {
	case value <= 1999:
		return BandOld
	case 2000 <= value && value <= 2009:
		return BandMiddle
	case 2010 <= value && value <= 2019:
		return BandNew
	case 2020 <= value && value <= 2024:
		return BandVeryNew
	default:
		return BandUnknown
	}
}
