package debate

import "time"

// Stance is the side the AI argues in a debate.
type Stance string

const (
	StanceFor     Stance = "for"
	StanceAgainst Stance = "against"
	StanceNeutral Stance = "neutral"
)

// ParseStance maps any unrecognized value, including the empty string, to
// StanceNeutral.
func ParseStance(s string) Stance {
	switch Stance(s) {
	case StanceFor, StanceAgainst:
		return Stance(s)
	default:
		return StanceNeutral
	}
}

// Debate is a single debate session: a fixed topic and stance, an owner
// reference, and the transcript of alternating turns.
type Debate struct {
	ID        string     `json:"id"`
	Topic     string     `json:"topic"`
	Stance    Stance     `json:"stance"`
	UserID    string     `json:"userId,omitempty"`
	Messages  Transcript `json:"messages"`
	Active    bool       `json:"active"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Summary is the transcript-free projection returned by listings.
type Summary struct {
	ID        string    `json:"id"`
	Topic     string    `json:"topic"`
	Stance    Stance    `json:"stance"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// New constructs an active debate with an empty transcript. The store
// assigns the ID and timestamps on Create.
func New(topic string, stance Stance, userID string) *Debate {
	return &Debate{
		Topic:  topic,
		Stance: stance,
		UserID: userID,
		Active: true,
	}
}

// AppendMessage stamps and appends a message, refreshing UpdatedAt.
func (d *Debate) AppendMessage(role Role, content string) (Message, error) {
	m := NewMessage(role, content)
	if err := d.Messages.Append(m); err != nil {
		return Message{}, err
	}
	d.Touch()
	return m, nil
}

// Close deactivates the debate. Closing an already-closed debate is a no-op
// beyond the timestamp refresh.
func (d *Debate) Close() {
	d.Active = false
	d.Touch()
}

// Touch refreshes UpdatedAt. Every mutating path calls it explicitly.
func (d *Debate) Touch() {
	d.UpdatedAt = time.Now().UTC()
}

// Summarize projects the debate onto its listing form.
func (d *Debate) Summarize() Summary {
	return Summary{
		ID:        d.ID,
		Topic:     d.Topic,
		Stance:    d.Stance,
		Active:    d.Active,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// Clone deep-copies the debate, including its transcript.
func (d *Debate) Clone() *Debate {
	out := *d
	out.Messages = d.Messages.History()
	return &out
}
