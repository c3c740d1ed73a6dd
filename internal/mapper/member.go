// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package mapper

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Paalmessenlien/spondadmin/models"
	"github.com/tidwall/sjson"
)

var memberPushable = models.NewFieldSet(
	"first_name", "last_name", "email", "phone_number", "role_ids", "subgroup_ids",
)

// MemberMapper maps group members. Contact data lives either in a nested
// profile object or at the top level depending on the member's account
// status; the profile wins when both are present.
type MemberMapper struct{}

func NewMemberMapper() MemberMapper {
	return MemberMapper{}
}

func (MemberMapper) Kind() models.Kind {
	return models.KindMembers
}

func (MemberMapper) New() *models.Member {
	return &models.Member{}
}

func (MemberMapper) Pushable() models.FieldSet {
	return memberPushable
}

func (MemberMapper) LocalFields() models.FieldSet {
	return models.FieldSet{}
}

func (MemberMapper) FromRemote(rec models.RemoteRecord) (*models.Member, error) {
	r, err := parseObject(rec)
	if err != nil {
		return nil, err
	}
	id, err := externalID(r, "id", "profile.id")
	if err != nil {
		return nil, err
	}
	first := strings.TrimSpace(firstString(r, "profile.firstName", "firstName"))
	last := strings.TrimSpace(firstString(r, "profile.lastName", "lastName"))
	if first == "" && last == "" {
		return nil, fmt.Errorf("%w: name", ErrMissingRequiredField)
	}
	created, err := optionalTime(r, "createdTime")
	if err != nil {
		return nil, err
	}

	m := &models.Member{
		Fields: models.MemberFields{
			FirstName:         first,
			LastName:          last,
			Email:             firstString(r, "profile.email", "email"),
			PhoneNumber:       firstString(r, "profile.phoneNumber", "phoneNumber"),
			MemberCreatedTime: created,
			RoleIDs:           idSet(r.Get("roles")),
			SubgroupIDs:       idSet(r.Get("subGroups")),
		},
	}
	m.ExternalID = &id
	m.ParentExternalID = models.StringPtr(r.Get("groupId").String())
	m.RawData = json.RawMessage(rec)
	return m, nil
}

func (mm MemberMapper) ToRemote(m *models.Member, fields models.FieldSet) (models.RemotePayload, error) {
	if fields.Empty() {
		fields = memberPushable
	}
	body := []byte(`{}`)
	var err error
	for _, name := range fields {
		f := &m.Fields
		switch name {
		case "first_name":
			body, err = sjson.SetBytes(body, "firstName", f.FirstName)
		case "last_name":
			body, err = sjson.SetBytes(body, "lastName", f.LastName)
		case "email":
			body, err = sjson.SetBytes(body, "email", f.Email)
		case "phone_number":
			body, err = sjson.SetBytes(body, "phoneNumber", f.PhoneNumber)
		case "role_ids":
			body, err = sjson.SetBytes(body, "roles", nonNil(f.RoleIDs))
		case "subgroup_ids":
			body, err = sjson.SetBytes(body, "subGroups", nonNil(f.SubgroupIDs))
		default:
			return nil, notPushable(mm.Kind(), m.Payload(), name)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrEncodingPayload, name, err)
		}
	}
	return models.RemotePayload(body), nil
}

func (MemberMapper) Validate(m *models.Member) error {
	if strings.TrimSpace(m.Fields.FirstName) == "" && strings.TrimSpace(m.Fields.LastName) == "" {
		return fmt.Errorf("%w: first_name or last_name is required", ErrInvalidField)
	}
	return nil
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
