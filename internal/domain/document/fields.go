package document

// Indexed attribute names the discovery queries rely on.
const (
	FieldPID        = "pid"
	FieldObjectType = "object_type"
	FieldMemberOf   = "is_member_of_collection"
	FieldChildOf    = "is_child_of"
	FieldTitle      = "title"
)
