package core

// Turn is a single prior conversational exchange supplied as a hint with a
// query. The core reads turns but never stores them; multi-turn memory is a
// collaborator concern.
type Turn struct {
	Role string `json:"role"` // "user" or "assistant"
	Text string `json:"text"`
}

// Query is the immutable input of one orchestration request: the raw user
// text plus optional hints from the transport layer. It is created per
// request, owned by the coordinator for the request's lifetime and discarded
// with the response.
type Query struct {
	Text      string `json:"text"`
	Locale    string `json:"locale,omitempty"`
	MaxBudget int    `json:"max_budget,omitempty"` // upper price bound in rupees, 0 = unset
	Turns     []Turn `json:"turns,omitempty"`
}

// Empty reports whether the query carries no usable text.
func (q Query) Empty() bool {
	for _, r := range q.Text {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}
