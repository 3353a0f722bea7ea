/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package model

import (
	"encoding/json"
	"time"
)

// OwnerKind tells which directory an OwnerRef points into.
type OwnerKind string

const (
	OwnerUnset   OwnerKind = ""
	OwnerPerson  OwnerKind = "person"
	OwnerOrgUnit OwnerKind = "orgUnit"
)

// OwnerRef is the person or org unit a manual entry belongs to. The zero value is unset.
type OwnerRef struct {
	Kind OwnerKind `json:"kind"`
	ID   string    `json:"id"`
}

// IsSet reports whether the entry has an owner.
func (o OwnerRef) IsSet() bool {
	return o.Kind != OwnerUnset && o.ID != ""
}

// ManualEntry is a curated phonebook entry without a backing account.
type ManualEntry struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	Owner      OwnerRef   `json:"owner"`
	Phone      string     `json:"phone"`
	Note       *string    `json:"note"`
	Building   *string    `json:"building"`
	Room       *string    `json:"room"`
	ExternalID *string    `json:"external_id"`
	Creator    string     `json:"creator"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	ValidFrom  *time.Time `json:"valid_from"`
	ValidUntil *time.Time `json:"valid_until"`
}

// CreateEntryRequest is the body of an entry creation. Name and Phone are required.
type CreateEntryRequest struct {
	Name       string `json:"name" validate:"max=255"`
	Phone      string `json:"phone" validate:"max=200"`
	OwnerRef   string `json:"owner_ref" validate:"max=64"`
	Note       string `json:"note" validate:"max=4000"`
	ExternalID string `json:"external_id" validate:"max=255"`
	Building   string `json:"building" validate:"max=255"`
	Room       string `json:"room" validate:"max=255"`
	ValidFrom  string `json:"valid_from" validate:"max=64"`
	ValidUntil string `json:"valid_until" validate:"max=64"`
}

// UpdateEntryRequest is the body of a partial entry update. Fields left out of
// the body are not Set.
type UpdateEntryRequest struct {
	Name       OptionalString `json:"name"`
	Phone      OptionalString `json:"phone"`
	OwnerRef   OptionalString `json:"owner_ref"`
	Note       OptionalString `json:"note"`
	ExternalID OptionalString `json:"external_id"`
	Building   OptionalString `json:"building"`
	Room       OptionalString `json:"room"`
	ValidFrom  OptionalString `json:"valid_from"`
	ValidUntil OptionalString `json:"valid_until"`
}

// Values returns the present fields as a CreateEntryRequest, absent ones blank.
func (u UpdateEntryRequest) Values() CreateEntryRequest {
	return CreateEntryRequest{
		Name:       u.Name.Value,
		Phone:      u.Phone.Value,
		OwnerRef:   u.OwnerRef.Value,
		Note:       u.Note.Value,
		ExternalID: u.ExternalID.Value,
		Building:   u.Building.Value,
		Room:       u.Room.Value,
		ValidFrom:  u.ValidFrom.Value,
		ValidUntil: u.ValidUntil.Value,
	}
}

// OptionalString remembers whether a JSON field was present. An explicit null
// is present with an empty value.
type OptionalString struct {
	Set   bool
	Value string
}

// Some returns a present OptionalString.
func Some(value string) OptionalString {
	return OptionalString{Set: true, Value: value}
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = ""
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

func (o OptionalString) MarshalJSON() ([]byte, error) {
	if !o.Set {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
