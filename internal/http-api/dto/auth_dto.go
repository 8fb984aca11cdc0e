package dto

// Identity is the authenticated caller extracted from a bearer token.
// SubjectID is the identity provider's object id, not the local user id.
type Identity struct {
	SubjectID   string
	Email       string
	DisplayName string
	Role        string
}
