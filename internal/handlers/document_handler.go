package handlers

import (
	"apptnu_backend/internal/services"
	"apptnu_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type DocumentHandler struct {
	*BaseHandler
	factory *services.Factory
}

func NewDocumentHandler(base *BaseHandler, factory *services.Factory) *DocumentHandler {
	return &DocumentHandler{BaseHandler: base, factory: factory}
}

func (h *DocumentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	documents := rg.Group("/documents")
	{
		documents.POST("/certificate", h.GenerateCertificate)
		documents.POST("/receipt", h.GenerateReceipt)
		documents.POST("/upload", h.Upload)
		documents.GET("", h.ListOwn)
	}
}

// RegisterPublicRoutes mounts the token download. Possession of the token
// is the whole authorization model, so no JWT here.
func (h *DocumentHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/documents/download/:token", h.Download)
}

// GenerateCertificate handles POST /documents/certificate
func (h *DocumentHandler) GenerateCertificate(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	svc := h.factory.For(h.GetDB(c))
	resp, err := svc.Document.GenerateCertificate(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.Created(c, resp)
}

// GenerateReceipt handles POST /documents/receipt
func (h *DocumentHandler) GenerateReceipt(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req dto.GenerateReceiptRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	svc := h.factory.For(h.GetDB(c))
	resp, err := svc.Document.GenerateReceipt(userID, req.PaymentID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.Created(c, resp)
}

// Upload handles POST /documents/upload
func (h *DocumentHandler) Upload(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var input services.UploadDocumentInput
	if !h.BindAndValidateJSON(c, &input) {
		return
	}

	svc := h.factory.For(h.GetDB(c))
	resp, err := svc.Document.UploadDocument(userID, &input)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.Created(c, resp)
}

// ListOwn handles GET /documents
func (h *DocumentHandler) ListOwn(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	svc := h.factory.For(h.GetDB(c))
	documents, err := svc.Document.ListUserDocuments(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, gin.H{"documents": documents})
}

// Download handles GET /documents/download/:token
func (h *DocumentHandler) Download(c *gin.Context) {
	svc := h.factory.For(h.GetDB(c))
	file, err := svc.Document.ResolveDownload(c.Param("token"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+file.FileName+`"`)
	c.Header("Content-Type", file.MimeType)
	c.File(file.Path)
}
