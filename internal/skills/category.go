package skills

import "sort"

// CategoryMap groups skill names under topics. It is supplied by the caller;
// skills whose names appear under no topic take no part in interleaving.
type CategoryMap map[string][]string

// CategoriesFromSkills derives a CategoryMap from each skill's Category field.
// Skills without a category are left out.
func CategoriesFromSkills(all []Skill) CategoryMap {
	m := make(CategoryMap)
	for _, s := range all {
		if s.Category == "" {
			continue
		}
		m[s.Category] = append(m[s.Category], s.Name)
	}
	return m
}

// Names returns the topic names in sorted order.
func (m CategoryMap) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Group returns, for every topic, the snapshot skills that belong to it and
// satisfy keep. Topics with no matching skill are omitted. Skills keep the
// order in which the topic lists them.
func (m CategoryMap) Group(all []Skill, keep func(Skill) bool) map[string][]Skill {
	byName := make(map[string]Skill, len(all))
	for _, s := range all {
		byName[s.Name] = s
	}

	groups := make(map[string][]Skill)
	for topic, names := range m {
		for _, name := range names {
			s, ok := byName[name]
			if !ok || (keep != nil && !keep(s)) {
				continue
			}
			groups[topic] = append(groups[topic], s)
		}
	}
	return groups
}
