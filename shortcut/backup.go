package shortcut

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/carbyne/bvdf/datafile"

	"github.com/klauspost/compress/zstd"
)

// BackupSuffix is the time layout appended to backup file names.
const BackupSuffix = ".20060102150405"

const zstdSuffix = ".zst"

var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedDefault),
	)
	if err != nil {
		panic("shortcut: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("shortcut: zstd decoder initialization failed: " + err.Error())
	}
}

// BackupName returns the name of the backup of path taken at t.
func BackupName(path, dir string, compress bool, t time.Time) string {
	name := path + t.UTC().Format(BackupSuffix)
	if dir != "" {
		name = filepath.Join(dir, filepath.Base(name))
	}
	if compress {
		name += zstdSuffix
	}
	return name
}

// Backup copies the file at path to its backup name, optionally zstd
// compressed, and returns that name.
func Backup(path, dir string, compress bool, t time.Time) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if compress {
		data = zstdEncoder.EncodeAll(data, nil)
	}
	name := BackupName(path, dir, compress, t)
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
	}
	if err := datafile.WriteFile(name, data); err != nil {
		return "", err
	}
	return name, nil
}

func readMaybeCompressed(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, zstdSuffix) {
		return data, nil
	}
	res, err := zstdDecoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decompress %s: %w", path, err)
	}
	return res, nil
}
