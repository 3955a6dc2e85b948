package schema

// WaitlistEntryTable represents the 'waitlist_entry' table
type WaitlistEntryTable struct {
	Table          string
	ID             string
	Email          string
	Source         string
	BrevoContactID string
	EmailSent      string
	CreatedAt      string
}

// WaitlistEntry is the schema definition for waitlist_entry
var WaitlistEntry = WaitlistEntryTable{
	Table:          "waitlist_entry",
	ID:             "id",
	Email:          "email",
	Source:         "source",
	BrevoContactID: "brevo_contact_id",
	EmailSent:      "email_sent",
	CreatedAt:      "created_at",
}
