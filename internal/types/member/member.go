package member

// Label matches the Ghost admin API label shape.
type Label struct {
	Name string `json:"name"`
}

// Member is the content platform's record of a subscribed user, keyed by
// email. This service only ever reads it and writes it back; Ghost owns the
// authoritative copy.
type Member struct {
	ID         string  `json:"id,omitempty"`
	Email      string  `json:"email"`
	Name       string  `json:"name,omitempty"`
	Note       string  `json:"note,omitempty"`
	Labels     []Label `json:"labels"`
	Subscribed bool    `json:"subscribed"`
}

// HasLabel reports whether the member already carries the named label.
func (m Member) HasLabel(name string) bool {
	for _, l := range m.Labels {
		if l.Name == name {
			return true
		}
	}
	return false
}
