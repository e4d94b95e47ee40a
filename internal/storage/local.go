package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileStorageは領収書などのファイル保存の約束。
type FileStorage interface {
	// 保存して公開URLを返す
	Save(ctx context.Context, filename string, content io.Reader, folder string) (string, error)
}

// LocalStorageはローカルディスク実装。
type LocalStorage struct {
	rootDir   string
	publicURL string
}

func NewLocalStorage(rootDir, publicURL string) *LocalStorage {
	return &LocalStorage{
		rootDir:   rootDir,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

func (s *LocalStorage) Save(_ context.Context, filename string, content io.Reader, folder string) (string, error) {
	//拡張子だけ元ファイルから引き継ぎ、名前はuuidで付け直す
	ext := strings.ToLower(filepath.Ext(filename))
	stored := uuid.NewString() + ext

	//folderにパス区切りを入れさせない
	cleanFolder := path.Clean("/" + folder)
	cleanFolder = strings.TrimPrefix(cleanFolder, "/")
	if cleanFolder == "" || strings.Contains(cleanFolder, "..") {
		return "", fmt.Errorf("storage: invalid folder: %s", folder)
	}

	dir := filepath.Join(s.rootDir, filepath.FromSlash(cleanFolder))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	dst, err := os.Create(filepath.Join(dir, stored))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, content); err != nil {
		return "", err
	}

	return s.publicURL + "/uploads/" + cleanFolder + "/" + stored, nil
}
