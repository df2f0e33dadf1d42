package hashutil

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/arthur-debert/apphide/pkg/types"
)

// Sum returns the hex SHA-224 digest of data
func Sum(data []byte) string {
	sum := sha256.Sum224(data)
	return hex.EncodeToString(sum[:])
}

// CalculateFileChecksum calculates the SHA-224 checksum of a file.
// The digest is plain lowercase hex so manifests stay readable by
// earlier releases.
func CalculateFileChecksum(fs types.FS, path string) (string, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return "", err
	}
	return Sum(data), nil
}
