// internal/handlers/student.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/artstylelab/backend/internal/i18n"
	"github.com/artstylelab/backend/internal/services"
	"github.com/artstylelab/backend/internal/utils"
)

type StudentHandler struct {
	userService *services.UserService
}

func NewStudentHandler(userService *services.UserService) *StudentHandler {
	return &StudentHandler{userService: userService}
}

// ListStudents handles GET /api/students
func (h *StudentHandler) ListStudents(c *gin.Context) {
	caller := callerID(c, c.Query("user"), c.Query("currentUserId"))

	students, err := h.userService.ListStudents(caller)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, students)
}

type updateStudentBody struct {
	Name          string `json:"name"`
	User          string `json:"user"`
	CurrentUserID string `json:"currentUserId"`
}

// UpdateStudent handles PUT /api/student/:id
func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	var body updateStudentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.BadRequestResponse(c, "", nil)
		return
	}

	caller := callerID(c, body.User, body.CurrentUserID)

	student, err := h.userService.UpdateStudent(caller, c.Param("id"), body.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, student)
}

// DeleteStudent handles DELETE /api/student/:id. The caller id may arrive
// in the JSON body or the query string.
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	var body updateStudentBody
	c.ShouldBindJSON(&body)

	caller := callerID(c, body.User, body.CurrentUserID, c.Query("user"), c.Query("currentUserId"))

	if err := h.userService.DeleteStudent(caller, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	lang := utils.GetLangFromContext(c)
	utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyStudentDeleted)})
}
