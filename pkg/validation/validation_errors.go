package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-facing labels
var FieldLabels = map[string]string{
	// Ranking fields
	"Title":                    "Title",
	"Position":                 "Position",
	"Description":              "Description",
	"AreaCity":                 "Area City",
	"CriteriaWeights":          "Criteria Weights",
	"ShowCriteriaToApplicants": "Show Criteria To Applicants",

	// Criteria weights
	"Skill":         "Skill Weight",
	"Experience":    "Experience Weight",
	"Education":     "Education Weight",
	"Certification": "Certification Weight",
	"Training":      "Training Weight",
	"Personality":   "Personality Weight",
	"AreaLiving":    "Area Living Weight",

	// Application fields
	"ApplicantName":   "Name",
	"ApplicantEmail":  "Email",
	"ApplicantPhone":  "Phone Number",
	"ApplicantCity":   "City",
	"ResumeSummary":   "Resume Summary",
	"KeySkills":       "Key Skills",
	"ExperienceText":  "Experience",
	"ExperienceYears": "Years of Experience",
	"EducationLevel":  "Education",
	"Certifications":  "Certifications",
	"OCRTranscript":   "Resume Text",
	"Status":          "Status",
	"Notes":           "Notes",
}

// ValidationRules contains units used in min/max messages
var ValidationRules = map[string]map[string]interface{}{
	"ExperienceYears": {"unit": "years"},
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages.
// Wrapped validation errors are unwrapped first.
func FormatValidationErrors(err error) []string {
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	fieldName := e.Field()
	label := getFieldLabel(fieldName)
	tag := e.Tag()
	param := e.Param()

	switch tag {
	case "required":
		return fmt.Sprintf("%s: Is required", label)

	case "min", "gte":
		if unit := ruleUnit(fieldName); unit != "" {
			return fmt.Sprintf("%s: Must be at least %s %s", label, param, unit)
		}
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: Must be at least %s characters", label, param)
		}
		return fmt.Sprintf("%s: Must be at least %s", label, param)

	case "max", "lte":
		if unit := ruleUnit(fieldName); unit != "" {
			return fmt.Sprintf("%s: Must be at most %s %s", label, param, unit)
		}
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: Must be at most %s characters", label, param)
		}
		return fmt.Sprintf("%s: Must be at most %s", label, param)

	case "gt":
		return fmt.Sprintf("%s: Must be greater than %s", label, param)

	case "len":
		return fmt.Sprintf("%s: Must be exactly %s characters", label, param)

	case "oneof":
		return fmt.Sprintf("%s: Must be one of: %s", label, formatOneOfOptions(param))

	case "email":
		return fmt.Sprintf("%s: Invalid email format", label)

	case "url":
		return fmt.Sprintf("%s: Invalid URL format", label)

	case "position":
		return fmt.Sprintf("%s: Unknown position", label)

	case "valid_name":
		return fmt.Sprintf("%s: Only letters, spaces and common punctuation (. ' - /) are allowed", label)

	case "valid_phone":
		return fmt.Sprintf("%s: Invalid phone number (7-15 digits, optional +)", label)

	case "no_emoji":
		return fmt.Sprintf("%s: Must not contain emoji or special symbols", label)

	case "gtefield":
		return fmt.Sprintf("%s: Must be greater than or equal to %s", label, getFieldLabel(param))

	case "ltefield":
		return fmt.Sprintf("%s: Must be less than or equal to %s", label, getFieldLabel(param))

	default:
		return fmt.Sprintf("%s: Validation failed (%s)", label, tag)
	}
}

func ruleUnit(fieldName string) string {
	if rules, ok := ValidationRules[fieldName]; ok {
		if unit, ok := rules["unit"].(string); ok {
			return unit
		}
	}
	return ""
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}

// formatOneOfOptions formats oneof options for display
func formatOneOfOptions(param string) string {
	return strings.Join(strings.Fields(param), ", ")
}
