package utils

import (
	"errors"
	"fmt"
	"mime/multipart"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// maxImageBytes caps menu and deal photo uploads at 5MB.
const maxImageBytes = 5 << 20

// ValidateFileUpload rejects uploads that are too large or not a photo
// format the storefront can render.
func ValidateFileUpload(fh *multipart.FileHeader) error {
	if fh.Size > maxImageBytes {
		return fmt.Errorf("image is %d bytes, the limit is 5MB", fh.Size)
	}

	switch ct := fh.Header.Get("Content-Type"); ct {
	case "image/jpeg", "image/png", "image/webp":
		return nil
	default:
		return fmt.Errorf("unsupported image type %q, use JPEG, PNG or WebP", ct)
	}
}

// SanitizeValidationError maps binding failures onto messages safe to
// return to the client. Anything that is not a field-level validation
// error (malformed JSON, type mismatches) collapses to a generic message
// so Go struct names never leak.
func SanitizeValidationError(err error) string {
	if err == nil {
		return ""
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return "Invalid request body"
	}

	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			messages = append(messages, field+" is required")
		case "email":
			messages = append(messages, field+" must be a valid email address")
		case "min":
			switch fe.Kind() {
			case reflect.String:
				messages = append(messages, fmt.Sprintf("%s must be at least %s characters", field, fe.Param()))
			case reflect.Slice, reflect.Array, reflect.Map:
				messages = append(messages, fmt.Sprintf("%s must contain at least %s entries", field, fe.Param()))
			default:
				messages = append(messages, fmt.Sprintf("%s must be at least %s", field, fe.Param()))
			}
		default:
			messages = append(messages, field+" is invalid")
		}
	}

	if len(messages) == 0 {
		return "Invalid request body"
	}
	return strings.Join(messages, "; ")
}
