package models

import (
	"time"

	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/domain"
)

// Request модели

// ServiceInput услуга в запросе регистрации
type ServiceInput struct {
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

// RegisterRequest запрос на регистрацию вендора
type RegisterRequest struct {
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	Password     string         `json:"password"`
	Category     string         `json:"category"`
	Location     string         `json:"location"`
	Description  string         `json:"description"`
	Phone        string         `json:"phone"`
	WorkingStart string         `json:"workingStart"` // "09:00"
	WorkingEnd   string         `json:"workingEnd"`   // "18:00"
	Services     []ServiceInput `json:"services"`
}

// LoginRequest запрос на вход вендора
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Response модели

// ServiceResponse услуга вендора
type ServiceResponse struct {
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

// VendorResponse публичные данные вендора
type VendorResponse struct {
	ID           int64             `json:"id"`
	Name         string            `json:"name"`
	Email        string            `json:"email"`
	Category     string            `json:"category"`
	Location     string            `json:"location"`
	Description  string            `json:"description,omitempty"`
	Phone        string            `json:"phone,omitempty"`
	IsOpen       bool              `json:"isOpen"`
	WorkingStart string            `json:"workingStart"`
	WorkingEnd   string            `json:"workingEnd"`
	Services     []ServiceResponse `json:"services"`
	CreatedAt    time.Time         `json:"createdAt"`
}

// AuthResponse ответ на регистрацию или вход
type AuthResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expiresAt"`
	Vendor    *VendorResponse `json:"vendor"`
}

// VendorListResponse публичный справочник открытых вендоров
type VendorListResponse struct {
	Vendors []VendorResponse `json:"vendors"`
}

// ToggleOpenResponse ответ на переключение приема бронирований
type ToggleOpenResponse struct {
	VendorID int64 `json:"vendorId"`
	IsOpen   bool  `json:"isOpen"`
}

// Методы конвертации

// FromDomainVendor конвертирует domain модель в DTO
func FromDomainVendor(v *domain.Vendor) *VendorResponse {
	if v == nil {
		return nil
	}

	services := make([]ServiceResponse, len(v.Services))
	for i, s := range v.Services {
		services[i] = ServiceResponse{
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
			Price:           s.Price,
		}
	}

	return &VendorResponse{
		ID:           v.ID,
		Name:         v.Name,
		Email:        v.Email,
		Category:     v.Category,
		Location:     v.Location,
		Description:  v.Description,
		Phone:        v.Phone,
		IsOpen:       v.IsOpen,
		WorkingStart: v.WorkingHours.Start.String(),
		WorkingEnd:   v.WorkingHours.End.String(),
		Services:     services,
		CreatedAt:    v.CreatedAt,
	}
}

// FromDomainVendorList конвертирует список domain моделей в DTO
func FromDomainVendorList(vendors []*domain.Vendor) *VendorListResponse {
	resp := &VendorListResponse{
		Vendors: make([]VendorResponse, 0, len(vendors)),
	}

	for _, v := range vendors {
		if vr := FromDomainVendor(v); vr != nil {
			resp.Vendors = append(resp.Vendors, *vr)
		}
	}

	return resp
}
