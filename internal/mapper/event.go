// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package mapper

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Paalmessenlien/spondadmin/models"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const defaultEventType = "EVENT"

var (
	eventPushable = models.NewFieldSet(
		"heading", "description", "type", "start_time", "end_time",
		"invite_time", "cancelled", "hidden", "location", "max_accepted",
	)
	eventLocalFields = models.NewFieldSet("admin_notes")
)

// EventMapper maps remote events ("sponds").
type EventMapper struct{}

func NewEventMapper() EventMapper {
	return EventMapper{}
}

func (EventMapper) Kind() models.Kind {
	return models.KindEvents
}

func (EventMapper) New() *models.Event {
	return &models.Event{}
}

func (EventMapper) Pushable() models.FieldSet {
	return eventPushable
}

func (EventMapper) LocalFields() models.FieldSet {
	return eventLocalFields
}

// FromRemote reads an event. id, heading, startTimestamp and endTimestamp
// are required; createdTime and inviteTime are optional but must parse when
// present.
func (EventMapper) FromRemote(rec models.RemoteRecord) (*models.Event, error) {
	r, err := parseObject(rec)
	if err != nil {
		return nil, err
	}
	id, err := externalID(r, "id")
	if err != nil {
		return nil, err
	}
	heading := strings.TrimSpace(r.Get("heading").String())
	if heading == "" {
		return nil, fmt.Errorf("%w: heading", ErrMissingRequiredField)
	}
	start, err := requiredTime(r, "startTimestamp")
	if err != nil {
		return nil, err
	}
	end, err := requiredTime(r, "endTimestamp")
	if err != nil {
		return nil, err
	}
	created, err := optionalTime(r, "createdTime")
	if err != nil {
		return nil, err
	}
	invite, err := optionalTime(r, "inviteTime")
	if err != nil {
		return nil, err
	}
	responses, err := NormalizeResponses(r.Get("responses"))
	if err != nil {
		return nil, err
	}

	e := &models.Event{
		Fields: models.EventFields{
			Heading:     heading,
			Description: r.Get("description").String(),
			Type:        firstString(r, "spondType", "type"),
			StartTime:   start,
			EndTime:     end,
			CreatedTime: created,
			InviteTime:  invite,
			Cancelled:   r.Get("cancelled").Bool(),
			Hidden:      r.Get("hidden").Bool(),
			Location:    eventLocation(r.Get("location")),
			MaxAccepted: int(r.Get("maxAccepted").Int()),
			Responses:   responses,
		},
	}
	if e.Fields.Type == "" {
		e.Fields.Type = defaultEventType
	}
	e.ExternalID = &id
	e.ParentExternalID = models.StringPtr(firstString(r, "recipients.group.id", "groupId"))
	e.RawData = json.RawMessage(rec)
	return e, nil
}

func eventLocation(r gjson.Result) *models.Location {
	if !r.IsObject() {
		return nil
	}
	loc := &models.Location{Address: firstString(r, "address", "feature")}
	if v := r.Get("latitude"); v.Type == gjson.Number {
		lat := v.Float()
		loc.Latitude = &lat
	}
	if v := r.Get("longitude"); v.Type == gjson.Number {
		lng := v.Float()
		loc.Longitude = &lng
	}
	if loc.Address == "" && loc.Latitude == nil && loc.Longitude == nil {
		return nil
	}
	return loc
}

// ToRemote builds the event write payload. A record without an external id
// is addressed to its owning group through recipients.group.id.
func (m EventMapper) ToRemote(e *models.Event, fields models.FieldSet) (models.RemotePayload, error) {
	if fields.Empty() {
		fields = eventPushable
	}
	body := []byte(`{}`)
	var err error
	for _, name := range fields {
		if !eventPushable.Has(name) {
			return nil, notPushable(m.Kind(), e.Payload(), name)
		}
		f := &e.Fields
		switch name {
		case "heading":
			body, err = sjson.SetBytes(body, "heading", f.Heading)
		case "description":
			body, err = sjson.SetBytes(body, "description", f.Description)
		case "type":
			body, err = sjson.SetBytes(body, "spondType", f.Type)
		case "start_time":
			body, err = sjson.SetBytes(body, "startTimestamp", FormatTimestamp(f.StartTime))
		case "end_time":
			body, err = sjson.SetBytes(body, "endTimestamp", FormatTimestamp(f.EndTime))
		case "invite_time":
			if f.InviteTime == nil {
				body, err = sjson.SetRawBytes(body, "inviteTime", []byte("null"))
			} else {
				body, err = sjson.SetBytes(body, "inviteTime", FormatTimestamp(*f.InviteTime))
			}
		case "cancelled":
			body, err = sjson.SetBytes(body, "cancelled", f.Cancelled)
		case "hidden":
			body, err = sjson.SetBytes(body, "hidden", f.Hidden)
		case "max_accepted":
			body, err = sjson.SetBytes(body, "maxAccepted", f.MaxAccepted)
		case "location":
			body, err = setLocation(body, f.Location)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrEncodingPayload, name, err)
		}
	}
	if e.ExternalID == nil && e.ParentExternalID != nil {
		if body, err = sjson.SetBytes(body, "recipients.group.id", *e.ParentExternalID); err != nil {
			return nil, fmt.Errorf("%w: recipients: %w", ErrEncodingPayload, err)
		}
	}
	return models.RemotePayload(body), nil
}

func setLocation(body []byte, loc *models.Location) ([]byte, error) {
	if loc == nil {
		return sjson.SetRawBytes(body, "location", []byte("null"))
	}
	body, err := sjson.SetBytes(body, "location.address", loc.Address)
	if err != nil {
		return nil, err
	}
	if loc.Latitude != nil {
		if body, err = sjson.SetBytes(body, "location.latitude", *loc.Latitude); err != nil {
			return nil, err
		}
	}
	if loc.Longitude != nil {
		if body, err = sjson.SetBytes(body, "location.longitude", *loc.Longitude); err != nil {
			return nil, err
		}
	}
	return body, nil
}

// Validate rejects events without a heading or with an inverted time range.
func (EventMapper) Validate(e *models.Event) error {
	if strings.TrimSpace(e.Fields.Heading) == "" {
		return fmt.Errorf("%w: heading is required", ErrInvalidField)
	}
	if e.Fields.StartTime.IsZero() || e.Fields.EndTime.IsZero() {
		return fmt.Errorf("%w: start_time and end_time are required", ErrInvalidField)
	}
	if e.Fields.EndTime.Before(e.Fields.StartTime) {
		return fmt.Errorf("%w: end_time is before start_time", ErrInvalidField)
	}
	if e.Fields.MaxAccepted < 0 {
		return fmt.Errorf("%w: max_accepted is negative", ErrInvalidField)
	}
	return nil
}

// notPushable distinguishes fields that exist but are read-only upstream
// from names the payload does not have at all.
func notPushable(kind models.Kind, payload any, name string) error {
	if FieldNames(payload).Has(name) {
		return fmt.Errorf("%w: %s.%s", ErrFieldNotPushable, kind, name)
	}
	return fmt.Errorf("%w: %s.%s", ErrUnknownField, kind, name)
}
