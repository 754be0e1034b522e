package http

import "github.com/gofiber/fiber/v2"

// Content types de los archivos exportables.
const (
	contentTypeXLSX      = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF       = "application/pdf"
	contentTypeCSV       = "text/csv; charset=utf-8"
	contentTypeCSVLatin1 = "text/csv; charset=windows-1252"
)

// sendDownload responde un archivo como adjunto descargable.
func sendDownload(c *fiber.Ctx, data []byte, filename, contentType string) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
