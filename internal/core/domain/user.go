package domain

// Role is the account type reported by the backend for a signed-in principal.
type Role string

const (
	RoleSchool      Role = "school"
	RoleSchoolStaff Role = "school_staff"
)

// AccessLevel is the capability tier a principal holds on the dashboard.
// The zero value means no access at all.
type AccessLevel string

const (
	AccessNone  AccessLevel = ""
	AccessRead  AccessLevel = "read"
	AccessEdit  AccessLevel = "edit"
	AccessAdmin AccessLevel = "admin"
)

// StaffProfile is present only when the account role is RoleSchoolStaff.
type StaffProfile struct {
	PermissionLevel AccessLevel `json:"permission_level"`
}

// UserProfile is the principal returned by the backend's "who am I" endpoint.
// It is fetched fresh per session and cached with a short staleness window;
// it is always replaced wholesale, never mutated in place.
type UserProfile struct {
	ID          string        `json:"id"`
	Username    string        `json:"username"`
	Email       string        `json:"email"`
	IsSuperuser bool          `json:"is_superuser"`
	Type        Role          `json:"user_type"`
	Staff       *StaffProfile `json:"staff_profile,omitempty"`
}

// Credentials is the session pair issued by the backend. Access is the
// short-lived bearer token, Refresh the longer-lived credential used solely
// to obtain a new pair.
type Credentials struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Complete reports whether both halves of the pair are present. A request is
// considered authenticated only when the pair is complete and the access
// token has not expired.
func (c Credentials) Complete() bool {
	return c.Access != "" && c.Refresh != ""
}
