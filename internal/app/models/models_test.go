package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOfferingLabel(t *testing.T) {
	o := Offering{Course: "English", Type: "Group"}

	assert.Equal(t, "Group - English", o.Label())
	assert.True(t, o.Matches("English", "Group"))
	assert.False(t, o.Matches("English", "Special"))
}

func TestRegistrationString(t *testing.T) {
	r := Registration{Student: "Asha", Offering: Offering{Course: "English", Type: "Group"}}

	assert.Equal(t, "Asha registered for Group - English", r.String())
}
