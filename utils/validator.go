package utils

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
)

// Minimal internal validator driven by `validate:"..."` struct tags. Supports:
// - required
// - emailok (basic local@domain shape)
// - nameok (letters, numbers, underscore, hyphen, 3-32 chars)
// - pwdmin (min length 6)
// - wallet42 (exactly 42 characters; format check only, no checksum)

var (
	reEmailOK = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	reNameOK  = regexp.MustCompile(`^[A-Za-z0-9_\-]{3,32}$`)
)

// ValidateStruct inspects struct tags and returns the first error encountered.
func ValidateStruct(s interface{}) error {
	v := reflect.ValueOf(s)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return errors.New("ValidateStruct expects a struct or pointer to struct")
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("validate")
		if tag == "" {
			continue
		}
		fv := v.Field(i)
		var sval string
		if fv.IsValid() && fv.Kind() == reflect.String {
			sval = fv.String()
		}
		for _, p := range strings.Split(tag, ",") {
			p = strings.TrimSpace(p)
			switch p {
			case "required":
				if sval == "" {
					return errors.New(field.Name + " is required")
				}
			case "emailok":
				if sval != "" && !reEmailOK.MatchString(sval) {
					return errors.New(field.Name + " must be a valid email address")
				}
			case "nameok":
				if sval != "" && !reNameOK.MatchString(sval) {
					return errors.New(field.Name + " must be 3-32 letters, numbers, underscores or hyphens")
				}
			case "pwdmin":
				if len(sval) < 6 {
					return errors.New(field.Name + " must be at least 6 characters")
				}
			case "wallet42":
				if sval != "" && len(sval) != 42 {
					return errors.New(field.Name + " must be exactly 42 characters")
				}
			}
		}
	}
	return nil
}
