package entities

// TaskRequest describes what the user wants done, plus optional structured
// hints. It is a plain value: built once per invocation, never mutated.
type TaskRequest struct {
	Task        string `json:"task"`
	Location    string `json:"location,omitempty"`
	DateTime    string `json:"datetime,omitempty"`
	Preferences string `json:"preferences,omitempty"`
}
