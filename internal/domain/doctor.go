package domain

import "strings"

// Doctor is a clinician record served by doctors-api.
// Email is optional but unique when set.
type Doctor struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Specialty string  `json:"specialty"`
	Email     *string `json:"email"`
}

// NewDoctor carries the fields accepted by POST /doctors.
type NewDoctor struct {
	Name      *string `json:"name"`
	Specialty *string `json:"specialty"`
	Email     *string `json:"email"`
}

// Validate checks that name and specialty are present and non-empty.
func (d NewDoctor) Validate() error {
	var missing []string
	if d.Name == nil || strings.TrimSpace(*d.Name) == "" {
		missing = append(missing, "name")
	}
	if d.Specialty == nil || strings.TrimSpace(*d.Specialty) == "" {
		missing = append(missing, "specialty")
	}
	if len(missing) > 0 {
		return NewValidationError("required", missing...)
	}
	return nil
}

// DoctorPatch carries the fields accepted by PUT /doctors/{id}.
type DoctorPatch struct {
	Name      Optional[string] `json:"name"`
	Specialty Optional[string] `json:"specialty"`
	Email     Optional[string] `json:"email"`
}

// Validate rejects a patch that would change nothing.
func (p DoctorPatch) Validate() error {
	_, hasName := p.Name.Get()
	_, hasSpecialty := p.Specialty.Get()
	_, hasEmail := p.Email.Get()
	if !hasName && !hasSpecialty && !hasEmail {
		return ErrEmptyPatch
	}
	return nil
}

// Apply returns a copy of d with the patch merged in.
func (p DoctorPatch) Apply(d Doctor) Doctor {
	if name, ok := p.Name.Get(); ok {
		d.Name = name
	}
	if specialty, ok := p.Specialty.Get(); ok {
		d.Specialty = specialty
	}
	if email, ok := p.Email.Get(); ok {
		d.Email = &email
	}
	return d
}
