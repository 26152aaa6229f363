package middleware

import (
	"bytes"
	"encoding/base64"
	"io"
	"log"
	"time"

	"employee-enrollment/internal/models"
	"employee-enrollment/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const maxAuditBody = 2000

// sealBody encrypts a request body for storage. Without a key nothing is
// stored: enrollment bodies carry bank details.
func sealBody(encryptKey string, body []byte) (string, error) {
	if len(body) == 0 || encryptKey == "" {
		return "", nil
	}
	b, err := util.EncryptAES(encryptKey, body)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// AuditMiddleware stores one AuditLog row per request. Write failures are
// logged and never affect the response.
func AuditMiddleware(db *gorm.DB, encryptKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		// 读取请求体
		var bodyBytes []byte
		if c.Request.Method == "POST" && c.Request.Body != nil {
			bodyBytes, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		}

		// 执行请求
		c.Next()

		entry := models.AuditLog{
			Method:    c.Request.Method,
			Path:      c.Request.URL.Path,
			Query:     c.Request.URL.RawQuery,
			Status:    c.Writer.Status(),
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			LatencyMs: time.Since(start).Milliseconds(),
		}
		if len(bodyBytes) < maxAuditBody {
			// 不存明文
			enc, err := sealBody(encryptKey, bodyBytes)
			if err != nil {
				log.Printf("audit log: encrypt body: %v", err)
			}
			entry.Metadata = enc
		}

		if err := db.Create(&entry).Error; err != nil {
			log.Printf("audit log: %v", err)
		}
	}
}
