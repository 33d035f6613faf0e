package validation

import (
	"reflect"
	"strings"

	"hotelluxury/pkg/model"

	"github.com/go-playground/validator/v10"
)

const ExtraKeysTag = "extra_keys"

// reservedAttributes are store-managed fields a client may never set
// through the pass-through map.
var reservedAttributes = map[string]bool{
	"_id":       true,
	"createdAt": true,
}

// New returns a validator that reports JSON field names and understands
// the extra_keys tag.
func New() (*validator.Validate, error) {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	if err := v.RegisterValidation(ExtraKeysTag, validateExtraKeys); err != nil {
		return nil, err
	}
	return v, nil
}

func validateExtraKeys(fl validator.FieldLevel) bool {
	extra, ok := fl.Field().Interface().(map[string]any)
	if !ok {
		return false
	}
	if len(extra) > model.MaxExtraAttributes {
		return false
	}
	for key := range extra {
		if reservedAttributes[key] || !model.IsSafeAttributeKey(key) {
			return false
		}
	}
	return true
}
