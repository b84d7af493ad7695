package entity

// Attribute access by name. The update API takes string keys so callers (and
// the persistence mapping) can address fields uniformly; the switch below is
// the single place that knows the key set.

func getAttr(s *State, key string) (any, bool) {
	switch key {
	case "name":
		return s.Name, true
	case "age":
		return s.Age, true
	case "householdId":
		return s.HouseholdID, true
	case "x":
		return s.X, true
	case "y":
		return s.Y, true
	case "currentState":
		return s.Activity, true
	case "targetX":
		if !s.HasTarget {
			return nil, true
		}
		return s.TargetX, true
	case "targetY":
		if !s.HasTarget {
			return nil, true
		}
		return s.TargetY, true
	case "hunger":
		return s.Needs.Hunger, true
	case "thirst":
		return s.Needs.Thirst, true
	case "health":
		return s.Needs.Health, true
	case "titleId":
		return s.TitleID, true
	case "jobType":
		return s.Job.JobType, true
	case "employerId":
		return s.Job.EmployerID, true
	case "employerType":
		return s.Job.EmployerType, true
	case "currentMountId":
		return s.CurrentMountID, true
	}
	return nil, false
}

func setAttr(s *State, key string, v any) bool {
	switch key {
	case "name":
		s.Name = asString(v)
	case "age":
		s.Age = asInt(v)
	case "householdId":
		s.HouseholdID = asString(v)
	case "x":
		s.X = asInt(v)
	case "y":
		s.Y = asInt(v)
	case "currentState":
		s.Activity = asActivity(v)
	case "targetX":
		if v == nil {
			s.HasTarget = false
			s.TargetX = 0
		} else {
			s.TargetX = asInt(v)
			s.HasTarget = true
		}
	case "targetY":
		if v == nil {
			s.HasTarget = false
			s.TargetY = 0
		} else {
			s.TargetY = asInt(v)
			s.HasTarget = true
		}
	case "hunger":
		s.Needs.Hunger = asFloat(v)
	case "thirst":
		s.Needs.Thirst = asFloat(v)
	case "health":
		s.Needs.Health = asFloat(v)
	case "titleId":
		s.TitleID = asString(v)
	case "jobType":
		s.Job.JobType = asString(v)
	case "employerId":
		s.Job.EmployerID = asString(v)
	case "employerType":
		s.Job.EmployerType = asString(v)
	case "currentMountId":
		s.CurrentMountID = asString(v)
	default:
		return false
	}
	return true
}

func asInt(v any) int {
	switch x := v.(type) {
	case int:
		return x
	case int64:
		return int(x)
	case float64:
		return int(x)
	}
	return 0
}

func asFloat(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case int:
		return float64(x)
	case int64:
		return float64(x)
	}
	return 0
}

func asString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case Activity:
		return string(x)
	case []byte:
		return string(x)
	}
	return ""
}

func asActivity(v any) Activity {
	switch x := v.(type) {
	case Activity:
		return x
	case string:
		return Activity(x)
	}
	return ActivityIdle
}
