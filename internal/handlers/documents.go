package handlers

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"salescope/internal/models"
	"salescope/internal/store"

	"github.com/labstack/echo/v4"
)

// MaxDocumentSize caps uploaded document binaries at 10 MB.
const MaxDocumentSize = 10 << 20

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".txt":  true,
	".xlsx": true,
	".csv":  true,
	".pptx": true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// UploadDocumentHandler stores a multipart file upload in a deal room
func UploadDocumentHandler(st *store.Store, newID func() string) echo.HandlerFunc {
	return func(c echo.Context) error {
		slug := c.Param("slug")

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "File is required",
			})
		}

		if fileHeader.Size > MaxDocumentSize {
			return c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{
				Error: "File exceeds 10 MB",
			})
		}

		ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
		if !allowedExtensions[ext] {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: fmt.Sprintf("File type %s is not allowed", ext),
			})
		}

		src, err := fileHeader.Open()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error: "Failed to read upload",
			})
		}
		defer src.Close()

		data, err := io.ReadAll(io.LimitReader(src, MaxDocumentSize+1))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error: "Failed to read upload",
			})
		}
		if len(data) > MaxDocumentSize {
			return c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{
				Error: "File exceeds 10 MB",
			})
		}

		docID := newID()
		fileName := "doc-" + docID + ext

		if err := st.SaveDocumentFile(slug, fileName, data); err != nil {
			return workspaceError(c, err, "Failed to store file")
		}

		mimeType := fileHeader.Header.Get("Content-Type")
		if mimeType == "" {
			mimeType = "application/octet-stream"
		}

		doc := models.WorkspaceDocument{
			ID:           docID,
			FileName:     fileName,
			OriginalName: fileHeader.Filename,
			MimeType:     mimeType,
			SizeBytes:    int64(len(data)),
			UploadedAt:   time.Now().UnixMilli(),
		}

		workspace, err := st.AddDocument(slug, doc)
		if err != nil {
			_ = st.DeleteDocumentFile(slug, fileName)
			return workspaceError(c, err, "Failed to save document")
		}
		return c.JSON(http.StatusOK, workspace)
	}
}

// DownloadDocumentHandler serves a stored document as an attachment
func DownloadDocumentHandler(st *store.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		slug := c.Param("slug")
		docID := c.Param("docId")

		workspace, err := st.ReadWorkspace(slug)
		if err != nil {
			return workspaceError(c, err, "Failed to read workspace")
		}

		var doc *models.WorkspaceDocument
		for i := range workspace.Documents {
			if workspace.Documents[i].ID == docID {
				doc = &workspace.Documents[i]
				break
			}
		}
		if doc == nil {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error: "Document not found",
			})
		}

		path, err := st.DocumentFilePath(slug, doc.FileName)
		if err != nil {
			return workspaceError(c, err, "Failed to locate file")
		}

		c.Response().Header().Set(echo.HeaderContentDisposition,
			fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(doc.OriginalName)))
		return c.File(path)
	}
}

// DeleteDocumentHandler removes a document's metadata and its stored binary
func DeleteDocumentHandler(st *store.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		slug := c.Param("slug")

		var req models.DocumentDeleteRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: fmt.Sprintf("Invalid request body: %v", err),
			})
		}

		if strings.TrimSpace(req.DocID) == "" {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "Document id is required",
			})
		}

		workspace, err := st.ReadWorkspace(slug)
		if err != nil {
			return workspaceError(c, err, "Failed to read workspace")
		}

		var fileName string
		for _, doc := range workspace.Documents {
			if doc.ID == req.DocID {
				fileName = doc.FileName
				break
			}
		}
		if fileName == "" {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error: "Document not found",
			})
		}

		workspace, err = st.RemoveDocument(slug, req.DocID)
		if err != nil {
			return workspaceError(c, err, "Failed to delete document")
		}
		if err := st.DeleteDocumentFile(slug, fileName); err != nil {
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error: "Failed to delete file",
			})
		}
		return c.JSON(http.StatusOK, workspace)
	}
}
