package entities

// Account roles recognised by the registration flow.
const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
)

// Profile represents a user account in the MediPulse system. Profiles are
// created by the web app's auth flow; this service only reads them.
type Profile struct {
	ID        string `gorm:"type:text;primaryKey" json:"id"`
	Email     string `gorm:"unique;not null" json:"email"`
	FullName  string `json:"full_name"`
	Role      string `gorm:"not null" json:"role"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func (Profile) TableName() string { return "profiles" }
