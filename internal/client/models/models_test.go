package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	r, ok := ParseRole("admin")
	assert.True(t, ok)
	assert.Equal(t, RoleAdmin, r)

	r, ok = ParseRole("normal")
	assert.True(t, ok)
	assert.Equal(t, RoleNormal, r)

	_, ok = ParseRole("root")
	assert.False(t, ok)

	_, ok = ParseRole("")
	assert.False(t, ok)
}

func TestRole_Opposite(t *testing.T) {
	assert.Equal(t, RoleNormal, RoleAdmin.Opposite())
	assert.Equal(t, RoleAdmin, RoleNormal.Opposite())
}

func TestEventRecord_DisplayImageURL(t *testing.T) {
	assert.Equal(t, PlaceholderImageURL, EventRecord{}.DisplayImageURL())
	assert.Equal(t, "/static/a.png", EventRecord{ImageURL: "/static/a.png"}.DisplayImageURL())
}

func TestEventRecord_Fields_TrimsTimestamp(t *testing.T) {
	e := EventRecord{ID: "7", Title: "Launch", Description: "d", Date: "2025-01-01T00:00:00", Time: "10:00"}

	assert.Equal(t, EventFields{Title: "Launch", Description: "d", Date: "2025-01-01", Time: "10:00"}, e.Fields())
}

func TestIdentityFromClaims(t *testing.T) {
	id := IdentityFromClaims(Claims{Subject: "a@x.com", Role: RoleNormal})
	assert.Equal(t, Identity{Email: "a@x.com", Role: RoleNormal}, id)
}

func TestID_UnmarshalNumberAndString(t *testing.T) {
	var recs []UserRecord
	err := json.Unmarshal([]byte(`[{"id":7,"name":"A","email":"a@x.com","role":"normal"},{"id":"u-2","role":"admin"}]`), &recs)
	assert.NoError(t, err)
	assert.Equal(t, ID("7"), recs[0].ID)
	assert.Equal(t, ID("u-2"), recs[1].ID)
	assert.Equal(t, RoleAdmin, recs[1].Role)
}

func TestID_UnmarshalRejectsObjects(t *testing.T) {
	var e EventRecord
	assert.Error(t, json.Unmarshal([]byte(`{"id":{"x":1}}`), &e))
}
