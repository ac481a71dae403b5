package handlers

import (
	"net/http"

	appvalidator "apptnu_backend/internal/validator"
	"apptnu_backend/pkg/apperrors"
	"apptnu_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// BaseHandler carries the shared helpers every handler embeds.
type BaseHandler struct {
	Validator *appvalidator.Validator
}

func NewBaseHandler(v *appvalidator.Validator) *BaseHandler {
	return &BaseHandler{Validator: v}
}

// GetDB pulls the request-scoped DB handle placed by DBMiddleware.
func (h *BaseHandler) GetDB(c *gin.Context) *gorm.DB {
	db, exists := c.Get(string(contextkeys.DBContextKey))
	if !exists {
		return nil
	}
	return db.(*gorm.DB)
}

// BindAndValidateJSON binds the JSON body and runs struct validation.
// Writes the error response itself and returns false on failure.
func (h *BaseHandler) BindAndValidateJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid JSON body: "+err.Error()))
		return false
	}
	return h.validate(c, obj)
}

// BindAndValidateQuery binds query params and runs struct validation.
func (h *BaseHandler) BindAndValidateQuery(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid query parameters: "+err.Error()))
		return false
	}
	return h.validate(c, obj)
}

func (h *BaseHandler) validate(c *gin.Context, obj interface{}) bool {
	if err := h.Validator.Validate(obj); err != nil {
		if vErr, ok := err.(*appvalidator.ValidationError); ok {
			apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
		} else {
			apperrors.HandleError(c, apperrors.InternalError(err))
		}
		return false
	}
	return true
}

// HandleServiceError writes the error response for a service failure.
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	apperrors.HandleError(c, err)
}

// CurrentUserID returns the authenticated user's id from the context.
func (h *BaseHandler) CurrentUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authentication required"))
		return "", false
	}
	id, ok := userID.(string)
	if !ok || id == "" {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authentication required"))
		return "", false
	}
	return id, true
}

// OK writes a 200 with the given payload.
func (h *BaseHandler) OK(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, payload)
}

// Created writes a 201 with the given payload.
func (h *BaseHandler) Created(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusCreated, payload)
}
