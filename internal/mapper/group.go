// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package mapper

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/Paalmessenlien/spondadmin/models"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

var groupPushable = models.NewFieldSet("name", "description")

// GroupMapper maps remote groups. Roles and subgroups are read-only.
type GroupMapper struct{}

func NewGroupMapper() GroupMapper {
	return GroupMapper{}
}

func (GroupMapper) Kind() models.Kind {
	return models.KindGroups
}

func (GroupMapper) New() *models.Group {
	return &models.Group{}
}

func (GroupMapper) Pushable() models.FieldSet {
	return groupPushable
}

func (GroupMapper) LocalFields() models.FieldSet {
	return models.FieldSet{}
}

func (GroupMapper) FromRemote(rec models.RemoteRecord) (*models.Group, error) {
	r, err := parseObject(rec)
	if err != nil {
		return nil, err
	}
	id, err := externalID(r, "id")
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(r.Get("name").String())
	if name == "" {
		return nil, fmt.Errorf("%w: name", ErrMissingRequiredField)
	}

	g := &models.Group{
		Fields: models.GroupFields{
			Name:        name,
			Description: r.Get("description").String(),
			Roles:       namedRefs(r.Get("roles")),
			Subgroups:   namedRefs(r.Get("subGroups")),
		},
	}
	g.ExternalID = &id
	g.RawData = json.RawMessage(rec)
	return g, nil
}

// namedRefs reads [{"id": ..., "name": ...}] sorted by id. Entries without
// an id are dropped.
func namedRefs(r gjson.Result) []models.NamedRef {
	refs := make([]models.NamedRef, 0)
	r.ForEach(func(_, v gjson.Result) bool {
		id, err := externalID(v, "id")
		if err != nil {
			return true
		}
		refs = append(refs, models.NamedRef{ID: id, Name: v.Get("name").String()})
		return true
	})
	slices.SortFunc(refs, func(a, b models.NamedRef) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return slices.CompactFunc(refs, func(a, b models.NamedRef) bool {
		return a.ID == b.ID
	})
}

func (m GroupMapper) ToRemote(g *models.Group, fields models.FieldSet) (models.RemotePayload, error) {
	if fields.Empty() {
		fields = groupPushable
	}
	body := []byte(`{}`)
	var err error
	for _, name := range fields {
		switch name {
		case "name":
			body, err = sjson.SetBytes(body, "name", g.Fields.Name)
		case "description":
			body, err = sjson.SetBytes(body, "description", g.Fields.Description)
		default:
			return nil, notPushable(m.Kind(), g.Payload(), name)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrEncodingPayload, name, err)
		}
	}
	return models.RemotePayload(body), nil
}

func (GroupMapper) Validate(g *models.Group) error {
	if strings.TrimSpace(g.Fields.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidField)
	}
	return nil
}
