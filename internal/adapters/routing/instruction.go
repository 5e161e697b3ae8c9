package routing

// Instruction renders an OSRM maneuver as a short English sentence.
func Instruction(maneuverType, modifier, road string) string {
	onto := ""
	if road != "" {
		onto = " onto " + road
	}

	switch maneuverType {
	case "depart":
		if road != "" {
			return "Head out on " + road
		}
		return "Depart"
	case "arrive":
		return "Arrive at destination"
	case "merge":
		return "Merge" + onto
	case "on ramp":
		return "Take the ramp" + onto
	case "off ramp":
		return "Take the exit" + onto
	case "fork":
		if modifier == "" {
			return "Keep going at the fork" + onto
		}
		return "Keep " + modifier + " at the fork" + onto
	case "roundabout", "rotary":
		return "Enter the roundabout and exit" + onto
	case "new name", "continue":
		return "Continue" + onto
	}

	switch modifier {
	case "":
		return "Continue" + onto
	case "straight":
		return "Continue straight" + onto
	case "uturn":
		return "Make a U-turn" + onto
	default:
		return "Turn " + modifier + onto
	}
}
