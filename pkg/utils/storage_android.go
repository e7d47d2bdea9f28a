//go:build android

package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureStorageDir 确保 Android 偏好目录存在并可写
// gdata 在 Android 上使用 /data/data/{package}/ 作为存储路径，但不会预先创建子目录，
// 须在 gdata.Open 之前调用。
func EnsureStorageDir() error {
	app, err := detectAndroidApp()
	if err != nil {
		return fmt.Errorf("failed to detect Android app: %w", err)
	}

	// /data/data/{package}/prefs
	prefsDir := filepath.Join("/data/data", app, "prefs")

	if err := os.MkdirAll(prefsDir, 0755); err != nil {
		return fmt.Errorf("failed to create prefs directory %s: %w", prefsDir, err)
	}

	testFile := filepath.Join(prefsDir, ".write_test")
	if err := os.WriteFile(testFile, []byte("test"), 0644); err != nil {
		return fmt.Errorf("prefs directory %s is not writable: %w", prefsDir, err)
	}
	os.Remove(testFile)

	return nil
}

// detectAndroidApp 检测 Android 应用包名
// 从 /proc/self/cmdline 读取应用标识符
func detectAndroidApp() (string, error) {
	data, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return "", err
	}

	// 移除 null 字节和换行符
	copied := make([]byte, 0, len(data))
	for _, ch := range data {
		switch ch {
		case 0, '\n':
			continue
		}
		copied = append(copied, ch)
	}

	result := string(copied)
	if result == "" {
		return "", fmt.Errorf("got empty output from /proc/self/cmdline")
	}

	return result, nil
}

// GetStoragePath Android 应用数据目录，启动时写入日志
func GetStoragePath() string {
	app, err := detectAndroidApp()
	if err != nil {
		return ""
	}
	return filepath.Join("/data/data", app)
}
