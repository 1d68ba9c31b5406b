package handler

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"

	"github.com/SMR79/Pojistovna-ITnetwork/internal/domain"
)

var validate = validator.New()

// Формат дат во входных формах.
const dateLayout = "2006-01-02"

// PersonRequest — форма застрахованного. Намеренно без тегов validator:
// правила по полям живут в доменном слое, который собирает все нарушения
// сразу, а не отваливается на первом.
type PersonRequest struct {
	Name                      string  `json:"name"`
	Surname                   string  `json:"surname"`
	Email                     string  `json:"email"`
	DateOfBirth               *string `json:"date_of_birth"`
	BirthCertificateNumber    string  `json:"birth_certificate_number"`
	TelephoneNumber           string  `json:"telephone_number"`
	CompanyRegistrationNumber string  `json:"company_registration_number"`
	Address                   string  `json:"address"`
}

// toPersonData переводит форму в доменные значения. Некорректная дата —
// это InvalidInput, а не ошибка валидации записи.
func (r PersonRequest) toPersonData() (domain.PersonData, error) {
	data := domain.PersonData{
		Name:                      r.Name,
		Surname:                   r.Surname,
		Email:                     r.Email,
		BirthCertificateNumber:    r.BirthCertificateNumber,
		TelephoneNumber:           r.TelephoneNumber,
		CompanyRegistrationNumber: r.CompanyRegistrationNumber,
		Address:                   r.Address,
	}
	if r.DateOfBirth != nil && *r.DateOfBirth != "" {
		t, err := time.Parse(dateLayout, *r.DateOfBirth)
		if err != nil {
			return domain.PersonData{}, fmt.Errorf("date_of_birth %q: %w", *r.DateOfBirth, domain.ErrInvalidInput)
		}
		d := datatypes.Date(t)
		data.DateOfBirth = &d
	}
	return data, nil
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RegisterAccountRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}

type CreateStaffRequest struct {
	Username  string `json:"username" validate:"required"`
	Email     string `json:"email" validate:"omitempty,email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password" validate:"required,min=8"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type InsuranceTypeRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active"`
}

type AssignInsuranceRequest struct {
	InsuranceTypeID string `json:"insurance_type_id" validate:"required,uuid"`
	Subject         string `json:"subject"`
	Price           string `json:"price" validate:"required"`
}

type UpdateInsuranceRequest struct {
	Subject  *string `json:"subject"`
	Price    *string `json:"price"`
	IsActive *bool   `json:"is_active"`
	EndDate  *string `json:"end_date"`
}

type AddEventRequest struct {
	InsuranceID  string  `json:"insurance_id" validate:"required,uuid"`
	Description  string  `json:"description" validate:"required"`
	DamageAmount string  `json:"damage_amount" validate:"required"`
	ReportDate   *string `json:"report_date"`
}

type ApproveEventRequest struct {
	PaymentAmount string `json:"payment_amount" validate:"required"`
}

// validationErrorMap переводит ошибки validator.v10 в ту же структуру
// карта поле -> сообщения, что и доменная валидация.
func validationErrorMap(err error) map[string]string {
	out := make(map[string]string)
	if ve, ok := err.(validator.ValidationErrors); ok {
		for _, fieldErr := range ve {
			out[fieldErr.Field()] = fieldErr.Tag()
		}
	}
	return out
}
