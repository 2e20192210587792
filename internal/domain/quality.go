package domain

// WQI quality labels
const (
	LabelExcellent  = "Excellent"
	LabelGood       = "Good"
	LabelMedium     = "Medium"
	LabelBad        = "Bad"
	LabelVeryBad    = "Very Bad"
	LabelOutOfRange = "Out of Range"
)

// Classify maps a WQI score to its quality label
func Classify(score float64) string {
	switch {
	case score >= 91 && score <= 100:
		return LabelExcellent
	case score >= 71 && score < 91:
		return LabelGood
	case score >= 51 && score < 71:
		return LabelMedium
	case score >= 26 && score < 51:
		return LabelBad
	case score >= 0 && score < 26:
		return LabelVeryBad
	default:
		// NaN fails every comparison and lands here
		return LabelOutOfRange
	}
}
