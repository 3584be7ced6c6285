package models

// Meeting is a dated session of a group. Movements can only be recorded
// against an open meeting; closing a meeting is final.
type Meeting struct {
	// ID is the unique identifier for the meeting.
	ID int64 `json:"id"`

	// GroupID is the group this meeting belongs to.
	GroupID int64 `json:"group_id"`

	// Date is the meeting date in YYYY-MM-DD form.
	Date string `json:"data"`

	// Location is an optional free-form venue description.
	Location string `json:"local,omitempty"`

	// Notes is an optional free-form note.
	Notes string `json:"notas,omitempty"`

	// Open reports whether the meeting still accepts movements.
	// At most one meeting per group may be open at a time.
	Open bool `json:"aberto"`

	// CreatedAt is the Unix timestamp when the meeting was created.
	CreatedAt int64 `json:"criado_em"`
}
