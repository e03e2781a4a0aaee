package domain

// ProfileStatus is the upstream answer to "has this patient completed
// onboarding". Fetched on demand, not persisted by the portal.
type ProfileStatus struct {
	Exists bool
}

// SignupData is the registration payload forwarded to the upstream API.
type SignupData struct {
	Email    string
	Username string
	Password string
	Role     Role
}
