package compression

import (
	"bytes"
	"compress/zlib"
	"io"

	"seedsynth/infra/utils/logger"
)

const threshold = 1024

// Compress - сжимает только данные больше порога, второй результат - было ли сжатие
func Compress(data []byte) ([]byte, bool, error) {
	if len(data) < threshold {
		return data, false, nil
	}
	var buf bytes.Buffer
	zWriter, err := zlib.NewWriterLevel(&buf, zlib.BestSpeed)
	if err != nil {
		return nil, false, err
	}
	if _, err := zWriter.Write(data); err != nil {
		return nil, false, err
	}
	if err := zWriter.Close(); err != nil {
		return nil, false, err
	}
	return buf.Bytes(), true, nil
}

func DeCompress(data []byte) ([]byte, error) {
	zReader, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := zReader.Close(); err != nil {
			logger.Errorf(err, "failed to close zlib reader")
		}
	}()
	return io.ReadAll(zReader)
}
