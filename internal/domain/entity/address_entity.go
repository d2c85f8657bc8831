package entity

import "github.com/google/uuid"

// Address belongs to exactly one User and is created together with it.
// User is a convenience back-reference to the owner; it is never
// authoritative and must always point to the User that currently owns
// the address.
type Address struct {
	ID         uuid.UUID
	Street     string
	City       string
	State      string
	PostalCode string
	Country    string
	IsPrimary  bool
	User       *User
}
