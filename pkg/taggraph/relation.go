package taggraph

import "fmt"

// Relation labels a directed edge in the tag graph.
type Relation int

const (
	// RelParent points from an entity to its containing directory.
	RelParent Relation = iota
	// RelChild points from a directory to a directly contained entity.
	RelChild
	// RelHasTag points from an owner (RootTag, File, or Directory) to a tag.
	RelHasTag
	// RelTagAssignedTo points from a tag to an entity it was assigned to.
	// It is the assignment inverse of RelHasTag and is kept as a distinct
	// label so traversals can follow ownership edges without assignment
	// edges (and vice versa).
	RelTagAssignedTo
)

// String returns the serialized relation name.
func (r Relation) String() string {
	switch r {
	case RelParent:
		return "parent"
	case RelChild:
		return "child"
	case RelHasTag:
		return "has_tag"
	case RelTagAssignedTo:
		return "tag_assigned_to"
	default:
		return fmt.Sprintf("relation(%d)", int(r))
	}
}

// ParseRelation converts a serialized relation name back to a [Relation].
func ParseRelation(s string) (Relation, bool) {
	switch s {
	case "parent":
		return RelParent, true
	case "child":
		return RelChild, true
	case "has_tag":
		return RelHasTag, true
	case "tag_assigned_to":
		return RelTagAssignedTo, true
	default:
		return 0, false
	}
}
