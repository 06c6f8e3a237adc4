package user

import (
	"errors"
	"time"

	log "github.com/sirupsen/logrus"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserDataInvalid = errors.New("invalid user data")

type User struct {
	Id          int
	Uid         string
	Username    string
	DisplayName string
	Settings    Settings
}

type ServicePrivilege string

const (
	UnbaptizedPublisher ServicePrivilege = "UNBAPTIZED_PUBLISHER"
	BaptizedPublisher   ServicePrivilege = "BAPTIZED_PUBLISHER"
	AuxiliaryPioneer    ServicePrivilege = "AUXILIARY_PIONEER"
	RegularPioneer      ServicePrivilege = "REGULAR_PIONEER"
	SpecialPioneer      ServicePrivilege = "SPECIAL_PIONEER"
	OtherPrivilege      ServicePrivilege = "OTHER"
)

func (p ServicePrivilege) Valid() bool {
	switch p {
	case UnbaptizedPublisher, BaptizedPublisher, AuxiliaryPioneer, RegularPioneer, SpecialPioneer, OtherPrivilege:
		return true
	}
	return false
}

type Settings struct {
	Timezone         string
	ServicePrivilege ServicePrivilege
	// Activities are the activity type tags the user logs hours against.
	Activities []string
}

// Location resolves the user's timezone, falling back to UTC when it is unknown.
func (s Settings) Location() *time.Location {
	if s.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		log.Warnf("unknown timezone %q, using UTC: %v", s.Timezone, err)
		return time.UTC
	}
	return loc
}
