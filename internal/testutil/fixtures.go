package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/salon-server/internal/model"
)

// Date returns the calendar day for a YYYY-MM-DD string and panics on bad input.
func Date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

// UUIDPtr returns a pointer to id.
func UUIDPtr(id uuid.UUID) *uuid.UUID {
	return &id
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}

// ClassicManicure returns an active 30 minute Manicure service.
func ClassicManicure() model.Service {
	return model.Service{
		ID:       uuid.MustParse("7a0b8f0e-4f7c-4a53-9d7e-5a3c2b1d0e01"),
		Name:     "Classic Manicure",
		Category: "Manicure",
		Duration: 30,
		Price:    25,
		IsActive: true,
	}
}

// Staff returns an active STAFF user with the given specialty.
func Staff(name, specialty string) model.User {
	return model.User{
		ID:                uuid.New(),
		Name:              name,
		Email:             name + "@salon.test",
		Role:              model.RoleStaff,
		SpecialtyCategory: specialty,
		IsActive:          true,
	}
}

// Customer returns an active CUSTOMER user.
func Customer(name string) model.User {
	return model.User{
		ID:       uuid.New(),
		Name:     name,
		Email:    name + "@example.test",
		Role:     model.RoleCustomer,
		IsActive: true,
	}
}
