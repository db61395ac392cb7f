package handler

import (
	"time"

	"github.com/dtroode/salon-server/internal/api/grpc/wire"
	"github.com/dtroode/salon-server/internal/model"
)

type categoryView struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

func fromCategories(list []model.Category) []categoryView {
	out := make([]categoryView, 0, len(list))
	for _, c := range list {
		out = append(out, categoryView{Name: c.Name, CreatedAt: c.CreatedAt})
	}
	return out
}

type serviceView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Duration    int       `json:"duration"`
	Price       float64   `json:"price"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func fromService(s model.Service) serviceView {
	return serviceView{
		ID:          s.ID.String(),
		Name:        s.Name,
		Description: s.Description,
		Category:    s.Category,
		Duration:    s.Duration,
		Price:       s.Price,
		IsActive:    s.IsActive,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func fromServices(list []model.Service) []serviceView {
	out := make([]serviceView, 0, len(list))
	for _, s := range list {
		out = append(out, fromService(s))
	}
	return out
}

type userView struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	Phone             string     `json:"phone,omitempty"`
	Role              model.Role `json:"role"`
	SpecialtyCategory string     `json:"specialtyCategory,omitempty"`
	IsActive          bool       `json:"isActive"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

func fromUser(u model.User) userView {
	return userView{
		ID:                u.ID.String(),
		Name:              u.Name,
		Email:             u.Email,
		Phone:             u.Phone,
		Role:              u.Role,
		SpecialtyCategory: u.SpecialtyCategory,
		IsActive:          u.IsActive,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}

func fromUsers(list []model.User) []userView {
	out := make([]userView, 0, len(list))
	for _, u := range list {
		out = append(out, fromUser(u))
	}
	return out
}

type customerDetailsView struct {
	Customer     userView           `json:"customer"`
	Appointments []wire.Appointment `json:"appointments"`
}
