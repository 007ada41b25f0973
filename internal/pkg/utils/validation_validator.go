package utils

import (
	"healthcare-fhir-gateway/internal/pkg/constvars"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var fhirIDPattern = regexp.MustCompile(constvars.RegexFhirID)

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(jsonFieldName)
	validate.RegisterValidation("fhir_id", validateFhirID)
	validate.RegisterValidation("resource_type", validateResourceType)
	validate.RegisterValidation("json_patch_path", validateJSONPatchPath)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// jsonFieldName reports fields by their JSON key so messages match what callers sent.
func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

func validateFhirID(fl validator.FieldLevel) bool {
	return fhirIDPattern.MatchString(fl.Field().String())
}

func validateResourceType(fl validator.FieldLevel) bool {
	return constvars.IsClinicalResourceType(fl.Field().String())
}

func validateJSONPatchPath(fl validator.FieldLevel) bool {
	path := fl.Field().String()
	return path == "" || strings.HasPrefix(path, "/")
}
