package medication

import (
	"reflect"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/kylesnowschwartz/medtrack/schedule"
)

// Form is the add/edit input for a record. Field tags carry the validation
// rules; messages for each rule live in fieldMessages.
type Form struct {
	Name         string `json:"name" validate:"min=2"`
	Dosage       string `json:"dosage" validate:"required"`
	Frequency    string `json:"frequency" validate:"required,frequency"`
	Time         string `json:"time" validate:"required,clock"`
	StartDate    string `json:"startDate" validate:"required,date"`
	EndDate      string `json:"endDate" validate:"omitempty,date"`
	Instructions string `json:"instructions"`
	Color        string `json:"color" validate:"omitempty,color"`
}

// NewForm returns an empty add form with the defaults the dashboard uses:
// once daily, blue, starting on today.
func NewForm(today time.Time) Form {
	return Form{
		Frequency: Frequencies[0],
		StartDate: today.Format(schedule.DateLayout),
		Color:     "blue",
	}
}

// FormFromRecord pre-fills an edit form.
func FormFromRecord(r Record) Form {
	return Form{
		Name:         r.Name,
		Dosage:       r.Dosage,
		Frequency:    r.Frequency,
		Time:         r.Time,
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
		Instructions: r.Instructions,
		Color:        r.Color,
	}
}

// trimmed strips surrounding whitespace from the free-text fields. Validate
// and apply both work on the trimmed form, so a stored record always passes
// the rules it was checked against.
func (f Form) trimmed() Form {
	f.Name = strings.TrimSpace(f.Name)
	f.Dosage = strings.TrimSpace(f.Dosage)
	f.Time = strings.TrimSpace(f.Time)
	f.StartDate = strings.TrimSpace(f.StartDate)
	f.EndDate = strings.TrimSpace(f.EndDate)
	f.Instructions = strings.TrimSpace(f.Instructions)
	return f
}

// apply copies form fields onto r, leaving ID and Taken untouched.
// Times are normalized to HH:MM so "8:00" is stored as "08:00".
func (f Form) apply(r Record) Record {
	f = f.trimmed()
	r.Name = f.Name
	r.Dosage = f.Dosage
	r.Frequency = f.Frequency
	r.Time = f.Time
	if c, err := schedule.ParseClock(f.Time); err == nil {
		r.Time = c.String()
	}
	r.StartDate = f.StartDate
	r.EndDate = f.EndDate
	r.Instructions = f.Instructions
	r.Color = f.Color
	return r
}

// ValidationErrors maps a form field (by its JSON name) to a user-facing
// message.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f + ": " + v[f]
	}
	return "invalid medication: " + strings.Join(parts, "; ")
}

// fieldMessages holds the message for each (field, rule) pair.
var fieldMessages = map[string]map[string]string{
	"name": {
		"min": "Medication name must be at least 2 characters.",
	},
	"dosage": {
		"required": "Dosage is required.",
	},
	"frequency": {
		"required":  "Frequency is required.",
		"frequency": "Frequency must be one of the listed options.",
	},
	"time": {
		"required": "Time is required.",
		"clock":    "Time must be a 24-hour time like 08:00.",
	},
	"startDate": {
		"required": "Start date is required.",
		"date":     "Start date must be a date like 2023-05-01.",
	},
	"endDate": {
		"date":        "End date must be a date like 2023-05-14.",
		"after_start": "End date can't be before the start date.",
	},
	"color": {
		"color": "Color must be one of " + strings.Join(Colors, ", ") + ".",
	},
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names so errors line up with the form.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	mustRegister(v, "clock", func(fl validator.FieldLevel) bool {
		_, err := schedule.ParseClock(fl.Field().String())
		return err == nil
	})
	mustRegister(v, "date", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(schedule.DateLayout, fl.Field().String())
		return err == nil
	})
	mustRegister(v, "frequency", func(fl validator.FieldLevel) bool {
		return slices.Contains(Frequencies, fl.Field().String())
	})
	mustRegister(v, "color", func(fl validator.FieldLevel) bool {
		return slices.Contains(Colors, fl.Field().String())
	})

	v.RegisterStructValidation(func(sl validator.StructLevel) {
		f := sl.Current().Interface().(Form)
		if f.EndDate == "" {
			return
		}
		start, err1 := time.Parse(schedule.DateLayout, f.StartDate)
		end, err2 := time.Parse(schedule.DateLayout, f.EndDate)
		if err1 == nil && err2 == nil && end.Before(start) {
			sl.ReportError(f.EndDate, "endDate", "EndDate", "after_start", "")
		}
	}, Form{})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// Validate checks the trimmed form and returns ValidationErrors describing
// every failing field, or nil.
func (f Form) Validate() error {
	err := validate.Struct(f.trimmed())
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	out := make(ValidationErrors, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := out[field]; seen {
			continue
		}
		msg, ok := fieldMessages[field][fe.Tag()]
		if !ok {
			msg = "Invalid value."
		}
		out[field] = msg
	}
	return out
}
