// internal/i18n/keys.go
package i18n

// Translation keys used across handlers and services.
const (
	KeyAuthRequired         = "auth.required"
	KeyAuthMissingFields    = "auth.missing_fields"
	KeyAuthUserNotFound     = "auth.user_not_found"
	KeyAuthWrongPassword    = "auth.wrong_password"
	KeyAuthIDTaken          = "auth.id_taken"
	KeyAuthStudentIDFormat  = "auth.student_id_format"
	KeyAuthTeacherIDFormat  = "auth.teacher_id_format"
	KeyAuthInvalidRole      = "auth.invalid_role"

	KeyUserNotFound      = "user.not_found"
	KeyUserUpdateDenied  = "user.update_denied"
	KeyUserOldPassword   = "user.old_password_wrong"

	KeyStudentListDenied   = "student.list_denied"
	KeyStudentUpdateDenied = "student.update_denied"
	KeyStudentDeleteDenied = "student.delete_denied"
	KeyStudentNotStudent   = "student.not_student"
	KeyStudentDeleted      = "student.deleted"

	KeyArtworkNotFound     = "artwork.not_found"
	KeyArtworkUploadInput  = "artwork.upload_input"
	KeyArtworkUpdateDenied = "artwork.update_denied"
	KeyArtworkDeleteDenied = "artwork.delete_denied"
	KeyArtworkDeleted      = "artwork.deleted"

	KeyExhibitionNotFound     = "exhibition.not_found"
	KeyExhibitionInput        = "exhibition.input"
	KeyExhibitionCreateDenied = "exhibition.create_denied"
	KeyExhibitionUpdateDenied = "exhibition.update_denied"
	KeyExhibitionDeleteDenied = "exhibition.delete_denied"
	KeyExhibitionBadStatus    = "exhibition.bad_status"
	KeyExhibitionDuplicate    = "exhibition.duplicate_member"
	KeyExhibitionBadMember    = "exhibition.bad_member"
	KeyExhibitionDeleted      = "exhibition.deleted"

	KeyAIMissingPrompt  = "ai.missing_prompt"
	KeyAIRateLimited    = "ai.rate_limited"
	KeyAINotConfigured  = "ai.not_configured"
	KeyAIGenerateFailed = "ai.generate_failed"
	KeyAINoneSelected   = "ai.none_selected"
	KeyAISaveFailed     = "ai.save_failed"
	KeyAISaved          = "ai.saved"
	KeyAIDefaultTitle   = "ai.default_title"

	KeyValidationInvalid  = "validation.invalid"
	KeyValidationRequired = "validation.required"
	KeyInternalError      = "error.internal"
)
