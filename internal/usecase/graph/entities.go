package graph

import (
	"strings"

	"github.com/johnquangdev/meeting-archive/internal/domain/entities"
	"github.com/johnquangdev/meeting-archive/pkg/textnorm"
)

// Entities holds the derived projections of one meeting set
type Entities struct {
	Persons    *entities.Registry[entities.Person]    `json:"persons"`
	Topics     *entities.Registry[entities.Topic]     `json:"topics"`
	Workgroups *entities.Registry[entities.Workgroup] `json:"workgroups"`
}

// TopicsForWorkgroup lists topics the workgroup discussed, in first-seen order
func (e Entities) TopicsForWorkgroup(workgroupID string) []*entities.Topic {
	out := []*entities.Topic{}
	for _, t := range e.Topics.All() {
		if t.DiscussedBy(workgroupID) {
			out = append(out, t)
		}
	}
	return out
}

// PeopleForWorkgroup lists people with any role in the workgroup, in first-seen order
func (e Entities) PeopleForWorkgroup(workgroupID string) []*entities.Person {
	out := []*entities.Person{}
	for _, p := range e.Persons.All() {
		if p.InWorkgroup(workgroupID) {
			out = append(out, p)
		}
	}
	return out
}

type set map[string]struct{}

// add reports whether k was new
func (s set) add(k string) bool {
	if _, ok := s[k]; ok {
		return false
	}
	s[k] = struct{}{}
	return true
}

// appearance is one person attributed to one meeting in a given role
type appearance struct {
	name string
	role entities.Role
	// actionItemID is set for assignees only
	actionItemID string
}

// appearances lists every person attribution of m: host, documenter, people present,
// then action item assignees
func appearances(m *entities.Meeting) []appearance {
	out := make([]appearance, 0, len(m.PeoplePresent)+len(m.ActionItems)+2)
	if m.Host != "" {
		out = append(out, appearance{name: m.Host, role: entities.RoleHost})
	}
	if m.Documenter != "" {
		out = append(out, appearance{name: m.Documenter, role: entities.RoleDocumenter})
	}
	for _, name := range m.PeoplePresent {
		out = append(out, appearance{name: name, role: entities.RoleParticipant})
	}
	for _, a := range m.ActionItems {
		if a.Assignee != "" {
			out = append(out, appearance{name: a.Assignee, role: entities.RoleParticipant, actionItemID: a.ID})
		}
	}
	return out
}

// BuildEntities derives persons, topics and workgroups from meetings. The result only
// depends on the input, so two calls over the same meetings are structurally equal.
func BuildEntities(meetings []entities.Meeting) Entities {
	persons := entities.NewRegistry[entities.Person](textnorm.NameKey)
	topics := entities.NewRegistry[entities.Topic](textnorm.TopicKey)
	workgroups := entities.NewRegistry[entities.Workgroup](strings.TrimSpace)

	seen := set{}
	for i := range meetings {
		m := &meetings[i]

		wg := workgroups.Upsert(m.WorkgroupID, func(key string) *entities.Workgroup {
			return &entities.Workgroup{ID: key, Name: m.WorkgroupName, MeetingIDs: []string{}}
		})
		wg.MeetingCount++
		wg.MeetingIDs = append(wg.MeetingIDs, m.ID)

		for _, ap := range appearances(m) {
			if persons.Key(ap.name) == "" {
				continue
			}
			p := persons.Upsert(ap.name, func(key string) *entities.Person {
				return &entities.Person{
					Key:           key,
					Name:          textnorm.CleanName(ap.name),
					WorkgroupIDs:  []string{},
					MeetingIDs:    []string{},
					ActionItemIDs: []string{},
					Roles:         map[string][]entities.Role{},
				}
			})
			if seen.add("pw\x00" + p.Key + "\x00" + m.WorkgroupID) {
				p.WorkgroupIDs = append(p.WorkgroupIDs, m.WorkgroupID)
			}
			if seen.add("pm\x00" + p.Key + "\x00" + m.ID) {
				p.MeetingIDs = append(p.MeetingIDs, m.ID)
			}
			if seen.add("pr\x00" + p.Key + "\x00" + m.WorkgroupID + "\x00" + string(ap.role)) {
				p.Roles[m.WorkgroupID] = append(p.Roles[m.WorkgroupID], ap.role)
			}
			if ap.actionItemID != "" {
				p.ActionItemIDs = append(p.ActionItemIDs, ap.actionItemID)
			}
		}

		keys := meetingTopicKeys(m)
		for _, name := range m.TopicsCovered {
			key := topics.Key(name)
			if key == "" {
				continue
			}
			t := topics.Upsert(name, func(key string) *entities.Topic {
				return &entities.Topic{
					Key:          key,
					Name:         textnorm.CleanName(name),
					MeetingIDs:   []string{},
					WorkgroupIDs: []string{},
					CoOccurrence: map[string]int{},
				}
			})
			if !seen.add("tm\x00" + key + "\x00" + m.ID) {
				continue
			}
			t.MeetingIDs = append(t.MeetingIDs, m.ID)
			if seen.add("tw\x00" + key + "\x00" + m.WorkgroupID) {
				t.WorkgroupIDs = append(t.WorkgroupIDs, m.WorkgroupID)
			}
			for _, other := range keys {
				if other != key {
					t.CoOccurrence[other]++
				}
			}
		}
	}

	return Entities{Persons: persons, Topics: topics, Workgroups: workgroups}
}

// meetingTopicKeys returns the distinct topic keys of m in order
func meetingTopicKeys(m *entities.Meeting) []string {
	seen := set{}
	keys := make([]string, 0, len(m.TopicsCovered))
	for _, name := range m.TopicsCovered {
		if k := textnorm.TopicKey(name); k != "" && seen.add(k) {
			keys = append(keys, k)
		}
	}
	return keys
}
