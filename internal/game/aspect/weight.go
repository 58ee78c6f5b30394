package aspect

// Weight is the emotional valence an aspect contributes to the ending score.
func Weight(a Aspect) int {
	switch a {
	case Joy:
		return 2
	case Sadness:
		return 0
	case Anger:
		return -2
	case Fear:
		return -1
	case Nostalgia:
		return 1
	case Motivation:
		return 3
	case Melancholy:
		return -2
	case Hatred:
		return -4
	case Vengefulness:
		return -6
	case Elation:
		return 4
	case Anticipation:
		return 2
	case Envy:
		return -3
	case Pride:
		return 1
	case Forgiveness:
		return 6
	default:
		return 0
	}
}
