package handler

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"employee-enrollment/internal/models"
	"employee-enrollment/internal/service"
	"employee-enrollment/internal/store"
	"employee-enrollment/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BackupHandler 负责工作簿快照相关接口
type BackupHandler struct {
	DB         *gorm.DB
	Service    *service.Service
	BackupDir  string
	EncryptKey string
}

// NewBackupHandler 构造函数；encryptKey 为空时备份以明文 xlsx 保存
func NewBackupHandler(db *gorm.DB, svc *service.Service, backupDir, encryptKey string) *BackupHandler {
	return &BackupHandler{
		DB:         db,
		Service:    svc,
		BackupDir:  backupDir,
		EncryptKey: encryptKey,
	}
}

func backupResp(b *models.Backup) gin.H {
	return gin.H{
		"id":         b.ID,
		"file_name":  b.FileName,
		"size":       b.Size,
		"rows":       b.Rows,
		"encrypted":  b.Encrypted,
		"created_at": b.CreatedAt,
	}
}

// CreateBackup copies the current workbook into the backup directory.
func (h *BackupHandler) CreateBackup(c *gin.Context) {
	exp, err := h.Service.Download()
	if errors.Is(err, store.ErrNotFound) {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, service.MsgNoDatabase)
		return
	}
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to read workbook")
		return
	}

	// 行数仅用于展示，读取失败记为 0
	rows := 0
	if records, err := h.Service.Records(); err == nil {
		rows = len(records)
	}

	if err := os.MkdirAll(h.BackupDir, 0o755); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create backup dir")
		return
	}

	fileName := fmt.Sprintf("backup-%s.xlsx", uuid.New().String())
	data := exp.Data
	encrypted := h.EncryptKey != ""
	if encrypted {
		fileName += ".enc"
		if data, err = util.EncryptAES(h.EncryptKey, exp.Data); err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to encrypt backup")
			return
		}
	}
	filePath := filepath.Join(h.BackupDir, fileName)

	if err := os.WriteFile(filePath, data, 0o600); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to write backup file")
		return
	}

	backup := models.Backup{
		FileName:  fileName,
		FilePath:  filePath,
		Size:      int64(len(data)),
		Rows:      rows,
		Encrypted: encrypted,
	}
	if err := h.DB.Create(&backup).Error; err != nil {
		_ = os.Remove(filePath)
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save backup record")
		return
	}

	util.Success(c, util.Response{
		"backup": backupResp(&backup),
	})
}

// ListBackups 列出已有的备份（最新在前）
func (h *BackupHandler) ListBackups(c *gin.Context) {
	var list []models.Backup
	if err := h.DB.
		Order("created_at DESC, id DESC").
		Find(&list).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query backups")
		return
	}

	items := make([]gin.H, 0, len(list))
	for i := range list {
		items = append(items, backupResp(&list[i]))
	}

	util.Success(c, util.Response{
		"items": items,
	})
}

// DownloadBackup 下载指定备份文件
func (h *BackupHandler) DownloadBackup(c *gin.Context) {
	id := c.Param("id")

	var backup models.Backup
	if err := h.DB.Where("id = ?", id).First(&backup).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "backup not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query backups")
		}
		return
	}

	if !backup.Encrypted {
		if _, err := os.Stat(backup.FilePath); err != nil {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "backup file missing")
			return
		}
		c.Header("Content-Type", store.ContentType)
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", backup.FileName))
		c.File(backup.FilePath)
		return
	}

	// 读文件并解密，下载的始终是可直接打开的 xlsx
	encData, err := os.ReadFile(backup.FilePath)
	if err != nil {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "backup file missing")
		return
	}
	raw, err := util.DecryptAES(h.EncryptKey, encData)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to decrypt backup")
		return
	}
	name := strings.TrimSuffix(backup.FileName, ".enc")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", name))
	c.Data(http.StatusOK, store.ContentType, raw)
}
