package encode

import (
	"testing"

	"github.com/klauspost/compress/zstd"
)

// compress wraps data in a zstd frame without any header validation.
func compress(t *testing.T, data []byte) []byte {
	t.Helper()

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = enc.Close() }()
	return enc.EncodeAll(data, nil)
}
