package debate

import "fmt"

// Transcript is the ordered message log of a debate. Insertion order defines
// conversational turn order; roles strictly alternate starting with "user".
type Transcript []Message

// Append adds a message to the end of the transcript. It rejects empty
// content and a role equal to the previous entry's role — the latter is a
// programming error in the caller, not user input.
func (t *Transcript) Append(m Message) error {
	if m.Content == "" {
		return fmt.Errorf("%w: message content is required", ErrValidation)
	}
	if m.Role != RoleUser && m.Role != RoleAssistant {
		return fmt.Errorf("%w: unknown role %q", ErrValidation, m.Role)
	}
	if n := len(*t); n > 0 && (*t)[n-1].Role == m.Role {
		return fmt.Errorf("%w: %q after %q", ErrInvalidRoleSequence, m.Role, m.Role)
	}
	*t = append(*t, m)
	return nil
}

// Tail returns the last n messages in original order. The result is a copy.
func (t Transcript) Tail(n int) []Message {
	if n > len(t) {
		n = len(t)
	}
	out := make([]Message, n)
	copy(out, t[len(t)-n:])
	return out
}

// History returns a defensive copy of the whole transcript, suitable for
// handing to the response generator.
func (t Transcript) History() []Message {
	out := make([]Message, len(t))
	copy(out, t)
	return out
}
