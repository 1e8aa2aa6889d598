package handler

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"vidtube/internal/config"

	"github.com/gin-gonic/gin"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// parsePagination 解析并规整分页参数
// 非法或缺失回落默认值，limit 超出上限时收敛到上限
func parsePagination(c *gin.Context) (page, limit int) {
	page = defaultPage
	limit = defaultLimit

	if v := c.Query("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}

	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	if limit > maxLimit {
		limit = maxLimit
	}

	return page, limit
}

// parseIDParam 解析路径中的数字 ID
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// saveUploadedFile 把 multipart 文件落到临时目录，返回本地路径与清理函数
// 调用方必须 defer cleanup，各返回路径都要兜底删除临时文件
func saveUploadedFile(c *gin.Context, file *multipart.FileHeader, maxMB int64) (string, func(), error) {
	if file.Size == 0 || file.Size > maxMB*1024*1024 {
		return "", nil, fmt.Errorf("文件大小无效（不能为空，最大 %dMB）", maxMB)
	}

	tempDir := config.GetUpload().TempDir
	if err := os.MkdirAll(tempDir, 0o755); err != nil {
		return "", nil, fmt.Errorf("创建临时目录失败: %w", err)
	}

	dst := filepath.Join(tempDir, fmt.Sprintf("%d_%s", time.Now().UnixNano(), filepath.Base(file.Filename)))
	if err := c.SaveUploadedFile(file, dst); err != nil {
		return "", nil, fmt.Errorf("保存上传文件失败: %w", err)
	}

	cleanup := func() { _ = os.Remove(dst) }
	return dst, cleanup, nil
}
