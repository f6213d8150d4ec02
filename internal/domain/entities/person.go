package entities

// Role is a part a person played in a workgroup's meetings
type Role string

const (
	RoleHost        Role = "host"
	RoleDocumenter  Role = "documenter"
	RoleParticipant Role = "participant"
)

// Person is derived from meeting attribution and attendance. Key is the identity key
// produced by name normalization; Name is the first-seen display form.
type Person struct {
	Key           string            `json:"key"`
	Name          string            `json:"name"`
	WorkgroupIDs  []string          `json:"workgroup_ids"`
	MeetingIDs    []string          `json:"meeting_ids"`
	ActionItemIDs []string          `json:"action_item_ids"`
	Roles         map[string][]Role `json:"roles"`
}

// HasRole reports whether the person held role in the given workgroup
func (p *Person) HasRole(workgroupID string, role Role) bool {
	for _, r := range p.Roles[workgroupID] {
		if r == role {
			return true
		}
	}
	return false
}

// InWorkgroup reports whether the person took part in any meeting of the workgroup
func (p *Person) InWorkgroup(workgroupID string) bool {
	_, ok := p.Roles[workgroupID]
	return ok
}
