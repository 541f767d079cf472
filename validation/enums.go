package validation

import (
	"strings"

	"github.com/studentlms/backend/models"
)

// Closed membership checks for every enum-valued field. Rejections
// name the allowed set so clients can correct the value.

var (
	roleValues = []string{
		string(models.RoleStudent), string(models.RoleTutor), string(models.RoleAdmin),
	}
	registrationRoleValues = []string{
		string(models.RoleStudent), string(models.RoleTutor),
	}
	fileTypeValues = []string{
		string(models.FileTypePDF), string(models.FileTypeVideo), string(models.FileTypeNotes),
		string(models.FileTypePastPaper), string(models.FileTypeLink), string(models.FileTypeOther),
	}
	postTypeValues = []string{
		string(models.PostTypeResource), string(models.PostTypeHelpRequest),
		string(models.PostTypeTutorFlyer), string(models.PostTypeAnnouncement),
	}
	requestStatusValues = []string{
		string(models.RequestStatusPending), string(models.RequestStatusInProgress),
		string(models.RequestStatusFulfilled), string(models.RequestStatusClosed),
	}
	preferredFormatValues = []string{
		string(models.FormatPDF), string(models.FormatVideo), string(models.FormatNotes),
		string(models.FormatPastPaper), string(models.FormatAny),
	}
	tutorRequestStatusValues = []string{
		string(models.TutorRequestPending), string(models.TutorRequestMatched),
		string(models.TutorRequestClosed),
	}
)

func checkEnum(field, value string, allowed []string) error {
	for _, v := range allowed {
		if value == v {
			return nil
		}
	}
	return invalidEnum(field, field+" must be one of: "+strings.Join(allowed, ", "))
}

// ValidateRole validates a user role
func ValidateRole(value string) (models.UserRole, error) {
	if err := checkEnum("role", value, roleValues); err != nil {
		return "", err
	}
	return models.UserRole(value), nil
}

// ValidateRegistrationRole validates a role supplied at registration.
// Admin accounts cannot be self-registered.
func ValidateRegistrationRole(value string) (models.UserRole, error) {
	if err := checkEnum("role", value, registrationRoleValues); err != nil {
		return "", err
	}
	return models.UserRole(value), nil
}

// ValidateFileType validates a resource file type
func ValidateFileType(value string) (models.FileType, error) {
	if err := checkEnum("file_type", value, fileTypeValues); err != nil {
		return "", err
	}
	return models.FileType(value), nil
}

// ValidatePostType validates a post type
func ValidatePostType(value string) (models.PostType, error) {
	if err := checkEnum("post_type", value, postTypeValues); err != nil {
		return "", err
	}
	return models.PostType(value), nil
}

// ValidateRequestStatus validates a resource request status
func ValidateRequestStatus(value string) (models.RequestStatus, error) {
	if err := checkEnum("status", value, requestStatusValues); err != nil {
		return "", err
	}
	return models.RequestStatus(value), nil
}

// ValidatePreferredFormat validates a requested resource format
func ValidatePreferredFormat(value string) (models.PreferredFormat, error) {
	if err := checkEnum("preferred_format", value, preferredFormatValues); err != nil {
		return "", err
	}
	return models.PreferredFormat(value), nil
}

// ValidateTutorRequestStatus validates a tutor request status
func ValidateTutorRequestStatus(value string) (models.TutorRequestStatus, error) {
	if err := checkEnum("status", value, tutorRequestStatusValues); err != nil {
		return "", err
	}
	return models.TutorRequestStatus(value), nil
}
