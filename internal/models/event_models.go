package models

import (
	"encoding/json"
	"time"
)

// AuthEvent is the payload of a user-creation trigger.
type AuthEvent struct {
	UID         string `json:"uid"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	PhotoURL    string `json:"photoURL,omitempty"`
	Metadata    struct {
		CreatedAt      time.Time `json:"createdAt"`
		LastSignedInAt time.Time `json:"lastSignedInAt"`
	} `json:"metadata"`
}

// ProfileUpdate converts the optional fields of the event into a merge update.
func (e AuthEvent) ProfileUpdate() ProfileUpdate {
	return ProfileUpdate{
		Email:       NullableString(e.Email),
		DisplayName: NullableString(e.DisplayName),
		PhotoURL:    NullableString(e.PhotoURL),
	}
}

// authEventEnvelope is the push form of the trigger, {"data": {...}}.
type authEventEnvelope struct {
	Data *AuthEvent `json:"data"`
}

// DecodeAuthEvent accepts either a bare user record or an envelope that wraps
// it under "data".
func DecodeAuthEvent(body []byte) (AuthEvent, error) {
	var env authEventEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return AuthEvent{}, err
	}
	if env.Data != nil {
		return *env.Data, nil
	}

	var event AuthEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return AuthEvent{}, err
	}
	return event, nil
}

// PubSubMessage is the payload of a scheduler tick delivered over Pub/Sub.
type PubSubMessage struct {
	Data       []byte            `json:"data"`
	Attributes map[string]string `json:"attributes,omitempty"`
}
