package utils

// DifficultyLabel renders a numeric difficulty for display.
func DifficultyLabel(level int) string {
	switch level {
	case 1:
		return "Easy"
	case 2:
		return "Moderate"
	case 3:
		return "Hard"
	default:
		return "Unknown"
	}
}
