// Package storage 保存宠物图片与证件 PDF，返回可公开访问的路径
package storage

import (
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"pet_adoption_server/pkg/constants"
	"pet_adoption_server/pkg/errorx"
	"pet_adoption_server/pkg/util/random"

	"go.uber.org/zap"
)

const (
	UploadURLPrefix   = "/uploads"
	DocumentURLPrefix = "/documents"
)

// FileStore 文件存储接口
type FileStore interface {
	// SaveImage 校验图片类型后保存，返回 /uploads/<file>
	SaveImage(fh *multipart.FileHeader) (string, error)
	// SaveDocument 校验 PDF 后保存，返回 /documents/<file>
	SaveDocument(fh *multipart.FileHeader) (string, error)
	// Remove 按公开路径删除文件，非本存储管理的路径直接忽略
	Remove(publicPath string) error
}

var imageExts = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// LocalStore 本地磁盘存储
type LocalStore struct {
	uploadDir   string
	documentDir string
}

// NewLocalStore 创建本地存储，目录不存在时自动创建
func NewLocalStore(uploadDir, documentDir string) (*LocalStore, error) {
	for _, dir := range []string{uploadDir, documentDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errorx.Wrapf(err, errorx.CodeStorageError, "create dir %s", dir)
		}
	}
	return &LocalStore{uploadDir: uploadDir, documentDir: documentDir}, nil
}

func (s *LocalStore) SaveImage(fh *multipart.FileHeader) (string, error) {
	name, err := s.save(fh, s.uploadDir, func(contentType string) (string, bool) {
		ext, ok := imageExts[contentType]
		if !ok {
			return "", false
		}
		return random.GetTimestampedName("pet", 8) + ext, true
	})
	if err != nil {
		return "", err
	}
	return UploadURLPrefix + "/" + name, nil
}

func (s *LocalStore) SaveDocument(fh *multipart.FileHeader) (string, error) {
	name, err := s.save(fh, s.documentDir, func(contentType string) (string, bool) {
		if contentType != "application/pdf" {
			return "", false
		}
		return random.GetTimestampedName("passport", 8) + ".pdf", true
	})
	if err != nil {
		return "", err
	}
	return DocumentURLPrefix + "/" + name, nil
}

func (s *LocalStore) Remove(publicPath string) error {
	var dir string
	switch {
	case strings.HasPrefix(publicPath, UploadURLPrefix+"/"):
		dir = s.uploadDir
	case strings.HasPrefix(publicPath, DocumentURLPrefix+"/"):
		dir = s.documentDir
	default:
		return nil
	}
	dst := filepath.Join(dir, filepath.Base(publicPath))
	if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
		return errorx.Wrapf(err, errorx.CodeStorageError, "remove %s", dst)
	}
	return nil
}

// save 嗅探前 512 字节判断真实类型，扩展名以嗅探结果为准，不信任客户端文件名
func (s *LocalStore) save(fh *multipart.FileHeader, dstDir string, nameFor func(contentType string) (string, bool)) (string, error) {
	if fh == nil {
		return "", errorx.New(errorx.CodeInvalidParam, "no file provided")
	}
	if fh.Size > constants.FILE_MAX_SIZE {
		return "", errorx.Newf(errorx.CodeInvalidParam, "file too large: %d bytes", fh.Size)
	}

	src, err := fh.Open()
	if err != nil {
		return "", errorx.Wrap(err, errorx.CodeStorageError, "open uploaded file")
	}
	defer src.Close()

	buffer := make([]byte, 512)
	n, err := src.Read(buffer)
	if err != nil && err != io.EOF {
		return "", errorx.Wrap(err, errorx.CodeStorageError, "read uploaded file")
	}
	contentType := http.DetectContentType(buffer[:n])

	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", errorx.Wrap(err, errorx.CodeStorageError, "seek uploaded file")
	}

	name, ok := nameFor(contentType)
	if !ok {
		return "", errorx.Newf(errorx.CodeInvalidParam, "invalid file type: %s", contentType)
	}
	dst := filepath.Join(dstDir, name)

	out, err := os.Create(dst)
	if err != nil {
		return "", errorx.Wrapf(err, errorx.CodeStorageError, "create %s", dst)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		_ = os.Remove(dst)
		return "", errorx.Wrapf(err, errorx.CodeStorageError, "write %s", dst)
	}
	zap.L().Debug("file saved", zap.String("path", dst), zap.String("content_type", contentType))
	return name, nil
}

var _ FileStore = (*LocalStore)(nil)
