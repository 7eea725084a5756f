package activity

// DefaultListLimit caps List when no limit is given.
const DefaultListLimit = 50

// ListActivityOptions provides filtering options for listing activity.
type ListActivityOptions struct {
	ProjectKey   string
	SessionID    string
	ActivityType *ActivityType
	Limit        int
	Offset       int
}

func (o ListActivityOptions) matches(entry ActivityEntry) bool {
	if o.ProjectKey != "" && entry.ProjectKey != o.ProjectKey {
		return false
	}
	if o.SessionID != "" && entry.SessionID != o.SessionID {
		return false
	}
	if o.ActivityType != nil && entry.ActivityType != *o.ActivityType {
		return false
	}
	return true
}
