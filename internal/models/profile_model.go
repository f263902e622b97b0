package models

import "time"

// DefaultPlan is assigned to a profile on its first write only.
const DefaultPlan = "free"

// UserProfile is the document stored per user, keyed by the auth UID.
// Optional fields are pointers so that absent values are written as null.
type UserProfile struct {
	UID         string    `json:"uid" firestore:"-"` // Firebase Auth UID, used as the document ID
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	Email       *string   `json:"email" firestore:"email"`
	DisplayName *string   `json:"displayName" firestore:"displayName"`
	PhotoURL    *string   `json:"photoURL" firestore:"photoURL"`
	Plan        string    `json:"plan" firestore:"plan"`
}

// ProfileUpdate carries the fields of a merge write. Nil fields are left
// untouched in the stored document.
type ProfileUpdate struct {
	Email       *string
	DisplayName *string
	PhotoURL    *string
}

// Fields returns the supplied fields keyed by their document field name.
func (u ProfileUpdate) Fields() map[string]interface{} {
	fields := make(map[string]interface{}, 3)
	if u.Email != nil {
		fields["email"] = *u.Email
	}
	if u.DisplayName != nil {
		fields["displayName"] = *u.DisplayName
	}
	if u.PhotoURL != nil {
		fields["photoURL"] = *u.PhotoURL
	}
	return fields
}

// IsEmpty reports whether the update carries no fields.
func (u ProfileUpdate) IsEmpty() bool {
	return u.Email == nil && u.DisplayName == nil && u.PhotoURL == nil
}

// NullableString returns nil for an empty string.
func NullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
