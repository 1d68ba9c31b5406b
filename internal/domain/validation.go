package domain

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

var (
	// Rodné číslo: только цифры, 9 или 10 знаков.
	reBirthCertificate = regexp.MustCompile(`^[0-9]{9,10}$`)
	// IČO: ровно 8 цифр.
	reCompanyRegistration = regexp.MustCompile(`^[0-9]{8}$`)
	// Телефон: +420 и ровно 9 цифр.
	reTelephone = regexp.MustCompile(`^\+420[0-9]{9}$`)
	// Имя/фамилия: только буквы (включая диакритику) и пробелы.
	reName  = regexp.MustCompile(`^[\p{L} ]+$`)
	reEmail = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// PersonData — уже распарсенные значения формы застрахованного.
// Презентационный слой передаёт строки/даты, ядро не знает про HTTP.
type PersonData struct {
	Name                      string
	Surname                   string
	Email                     string
	DateOfBirth               *datatypes.Date
	BirthCertificateNumber    string
	TelephoneNumber           string
	CompanyRegistrationNumber string
	Address                   string
}

// PersonLookup — пробные проверки дубликатов перед записью.
// Они только ускоряют обратную связь пользователю; авторитетный
// контроль — уникальные ограничения в хранилище.
type PersonLookup interface {
	// EmailTaken: занят ли email другим застрахованным (excludeID исключается).
	EmailTaken(ctx context.Context, email string, excludeID uuid.UUID) (bool, error)
	// IdentityTaken: существует ли другой застрахованный с той же
	// комбинацией (имя, фамилия, дата рождения).
	IdentityTaken(ctx context.Context, name, surname string, dateOfBirth *datatypes.Date, excludeID uuid.UUID) (bool, error)
}

// ValidatePerson проверяет запись застрахованного:
//   - сначала каждое поле по отдельности, все нарушения накапливаются;
//   - затем, только если поля прошли, проверка дубликата комбинации
//     (имя, фамилия, дата рождения) на уровне всей записи.
//
// Возвращает *ValidationError со всеми нарушениями, ошибку хранилища
// как есть, либо nil.
func ValidatePerson(ctx context.Context, store PersonLookup, d PersonData, excludeID uuid.UUID) error {
	fieldErrs := FieldErrors{}
	conflict := false

	name := strings.TrimSpace(d.Name)
	switch {
	case name == "":
		fieldErrs.Add("name", "name is required")
	case !reName.MatchString(name):
		fieldErrs.Add("name", "name must contain only letters and spaces")
	}

	surname := strings.TrimSpace(d.Surname)
	switch {
	case surname == "":
		fieldErrs.Add("surname", "surname is required")
	case !reName.MatchString(surname):
		fieldErrs.Add("surname", "surname must contain only letters and spaces")
	}

	email := strings.TrimSpace(d.Email)
	switch {
	case email == "":
		fieldErrs.Add("email", "email is required")
	case !reEmail.MatchString(email):
		fieldErrs.Add("email", "enter a valid email address")
	default:
		taken, err := store.EmailTaken(ctx, email, excludeID)
		if err != nil {
			return err
		}
		if taken {
			fieldErrs.Add("email", "insured person with this email already exists")
			conflict = true
		}
	}

	bcn := strings.TrimSpace(d.BirthCertificateNumber)
	switch {
	case bcn == "":
		fieldErrs.Add("birth_certificate_number", "birth certificate number is required")
	case !reBirthCertificate.MatchString(bcn):
		fieldErrs.Add("birth_certificate_number", "birth certificate number must be 9 or 10 digits")
	}

	if phone := strings.TrimSpace(d.TelephoneNumber); phone != "" && !reTelephone.MatchString(phone) {
		fieldErrs.Add("telephone_number", "telephone number must be +420 followed by exactly 9 digits")
	}

	if crn := strings.TrimSpace(d.CompanyRegistrationNumber); crn != "" && !reCompanyRegistration.MatchString(crn) {
		fieldErrs.Add("company_registration_number", "company registration number must be exactly 8 digits")
	}

	// Проверка всей записи выполняется только после того, как поля
	// по отдельности прошли.
	if fieldErrs.Empty() {
		taken, err := store.IdentityTaken(ctx, name, surname, d.DateOfBirth, excludeID)
		if err != nil {
			return err
		}
		if taken {
			fieldErrs.Add(NonFieldKey, "insured person with the same name, surname and date of birth already exists")
			conflict = true
		}
	}

	if fieldErrs.Empty() {
		return nil
	}
	return NewValidationError(fieldErrs, conflict)
}
