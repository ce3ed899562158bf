package game

// Answer choices on the wire
const (
	ChoiceFlies    = "ud"
	ChoiceNotFlies = "not_ud"
)

// Prompt is one catalog entry: a thing that either flies or does not
type Prompt struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Image string `json:"image,omitempty"`
	Flies bool   `json:"flies"`
}

// CorrectChoice returns the winning answer for a prompt
func CorrectChoice(flies bool) string {
	if flies {
		return ChoiceFlies
	}
	return ChoiceNotFlies
}
