package entity

// UpdatePassword is the transient password-change request. It is validated
// and compared against the stored password, never persisted as-is.
type UpdatePassword struct {
	OldPassword       string
	NewPassword       string
	RepeatNewPassword string
}
