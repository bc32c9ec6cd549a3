package random

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"time"
)

const charset = "abcdefghijklmnopqrstuvwxyz0123456789"

// GetRandomString 生成指定长度的安全随机字符串（小写字母 + 数字）
func GetRandomString(length int) string {
	result := make([]byte, length)
	charsetLen := big.NewInt(int64(len(charset)))
	for i := range result {
		n, err := rand.Int(rand.Reader, charsetLen)
		if err != nil {
			result[i] = 'x'
			continue
		}
		result[i] = charset[n.Int64()]
	}
	return string(result)
}

// GetTimestampedName 生成带毫秒时间戳的唯一文件名主体
// 格式: <prefix>-<毫秒时间戳>-<随机串>，如 pet-1718000000000-k3j9x2m1q
func GetTimestampedName(prefix string, length int) string {
	return prefix + "-" + strconv.FormatInt(time.Now().UnixMilli(), 10) + "-" + GetRandomString(length)
}
