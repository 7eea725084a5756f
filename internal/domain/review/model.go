package review

import (
	"strings"
	"time"
)

// Phase is a workflow phase an asset is reviewed in.
type Phase string

const (
	PhaseModel   Phase = "mdl"
	PhaseRig     Phase = "rig"
	PhaseBuild   Phase = "bld"
	PhaseDesign  Phase = "dsn"
	PhaseLookdev Phase = "ldv"
)

// Phases lists all phases in display order.
func Phases() []Phase {
	return []Phase{PhaseModel, PhaseRig, PhaseBuild, PhaseDesign, PhaseLookdev}
}

// Valid reports whether p is a known phase.
func (p Phase) Valid() bool {
	switch p {
	case PhaseModel, PhaseRig, PhaseBuild, PhaseDesign, PhaseLookdev:
		return true
	default:
		return false
	}
}

// Comment is a single review note.
type Comment struct {
	Language string `json:"language"`
	Text     string `json:"text"`
}

// Info is the review state of one asset in one phase.
type Info struct {
	WorkStatus     string     `json:"work_status"`
	ApprovalStatus string     `json:"approval_status"`
	SubmittedAt    *time.Time `json:"submitted_at_utc,omitempty"`
	Comments       []Comment  `json:"review_comments"`
}

// CommentText joins non-empty comments as "language:\ntext" blocks.
func (i Info) CommentText() string {
	parts := make([]string, 0, len(i.Comments))
	for _, c := range i.Comments {
		if c.Text == "" {
			continue
		}
		parts = append(parts, c.Language+":\n"+c.Text)
	}
	return strings.Join(parts, "\n")
}

// Key builds the composite lookup key "name-relation-phase".
func Key(name, relation string, phase Phase) string {
	return name + "-" + relation + "-" + string(phase)
}

// Lookup maps composite keys to review info. Absent entries are normal.
type Lookup map[string]Info

// Get returns the info for an asset in a phase.
func (l Lookup) Get(name, relation string, phase Phase) (Info, bool) {
	if l == nil {
		return Info{}, false
	}
	info, ok := l[Key(name, relation, phase)]
	return info, ok
}
