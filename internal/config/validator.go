package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

func newValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := validate.RegisterValidation("readable_dir", isDirReadable); err != nil {
		return nil, nil, fmt.Errorf("failed to register readable_dir validation: %w", err)
	}
	if err := validate.RegisterTranslation("readable_dir", trans, func(ut ut.Translator) error {
		return ut.Add("readable_dir", "{0} must be an existing and readable directory", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("readable_dir", strings.TrimPrefix(fe.Namespace(), "Config."))
		return t
	}); err != nil {
		return nil, nil, fmt.Errorf("failed to register readable_dir translation: %w", err)
	}

	return validate, trans, nil
}

func isDirReadable(fl validator.FieldLevel) bool {
	path := fl.Field().String()
	if path == "" {
		return false
	}

	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if !info.IsDir() {
		return false
	}

	// Owner needs read and execute to list the directory
	return info.Mode().Perm()&0o500 == 0o500
}
