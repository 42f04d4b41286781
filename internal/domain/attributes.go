package domain

import (
	"time"

	"github.com/google/uuid"
)

// RescueAttributes is the remote case service representation of a rescue.
type RescueAttributes struct {
	Client            string        `json:"client"`
	ClientNick        string        `json:"clientNick,omitempty"`
	ClientLanguage    string        `json:"clientLanguage,omitempty"`
	CommandIdentifier int           `json:"commandIdentifier"`
	CodeRed           bool          `json:"codeRed"`
	Notes             string        `json:"notes"`
	Platform          Platform      `json:"platform,omitempty"`
	System            string        `json:"system,omitempty"`
	Quotes            []Quote       `json:"quotes"`
	Status            RescueStatus  `json:"status"`
	Title             string        `json:"title,omitempty"`
	Outcome           RescueOutcome `json:"outcome,omitempty"`
	Rats              []Responder   `json:"rats"`
	UnidentifiedRats  []string      `json:"unidentifiedRats"`
	FirstLimpetID     string        `json:"firstLimpetId,omitempty"`
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt"`
}

// Attributes captures a consistent snapshot of the rescue in its remote
// representation.
func (r *Rescue) Attributes() RescueAttributes {
	r.mu.Lock()
	defer r.mu.Unlock()

	attrs := RescueAttributes{
		Client:            r.client,
		ClientNick:        r.clientNick,
		ClientLanguage:    r.clientLanguage,
		CommandIdentifier: r.handle,
		CodeRed:           r.codeRed,
		Notes:             r.notes,
		Platform:          r.platform,
		Quotes:            append([]Quote{}, r.quotes...),
		Status:            r.status,
		Title:             r.title,
		Outcome:           r.outcome,
		Rats:              append([]Responder{}, r.rats...),
		UnidentifiedRats:  append([]string{}, r.unidentifiedRats...),
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.updatedAt,
	}
	if r.system != nil {
		attrs.System = r.system.Name
	}
	if r.firstLimpet != nil {
		attrs.FirstLimpetID = r.firstLimpet.ID.String()
	}
	return attrs
}

// RescueFromAttributes reconstructs a rescue from its remote representation.
// Used during the startup board sync; the result is marked synced.
func RescueFromAttributes(id uuid.UUID, attrs RescueAttributes) *Rescue {
	rescue := &Rescue{
		ID:               id,
		CreatedAt:        attrs.CreatedAt,
		handle:           attrs.CommandIdentifier,
		client:           attrs.Client,
		clientNick:       attrs.ClientNick,
		clientLanguage:   attrs.ClientLanguage,
		codeRed:          attrs.CodeRed,
		notes:            attrs.Notes,
		platform:         attrs.Platform,
		quotes:           append([]Quote{}, attrs.Quotes...),
		status:           attrs.Status,
		title:            attrs.Title,
		outcome:          attrs.Outcome,
		rats:             append([]Responder{}, attrs.Rats...),
		unidentifiedRats: append([]string{}, attrs.UnidentifiedRats...),
		jumpCalls:        make(map[string]int),
		synced:           true,
		updatedAt:        attrs.UpdatedAt,
	}
	if rescue.clientNick == "" {
		rescue.clientNick = attrs.Client
	}
	if attrs.System != "" {
		rescue.system = NewStarSystem(attrs.System)
	}
	return rescue
}
