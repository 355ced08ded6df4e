package handler

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

// FormValidator checks bound form structs and reports failures in English,
// naming fields by their form key so the message matches the input the user
// sees.
type FormValidator struct {
	v     *validator.Validate
	trans ut.Translator
}

func NewValidator() *FormValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(formFieldName)

	english := en.New()
	trans, _ := ut.New(english, english).GetTranslator("en")
	// Only fails on a duplicate registration, which cannot happen on a fresh validator.
	_ = entranslations.RegisterDefaultTranslations(v, trans)

	return &FormValidator{v: v, trans: trans}
}

// Validate satisfies echo.Validator.
func (fv *FormValidator) Validate(i any) error {
	err := fv.v.Struct(i)
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fe.Translate(fv.trans))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func formFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return strings.ToLower(f.Name)
	}
	return name
}
