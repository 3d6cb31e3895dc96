package entities

import (
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"
)

// ParseHex - переводит строку вида "01 00 0a" в байты.
// Токен может быть с префиксом 0x и содержать несколько байт подряд ("0012")
func ParseHex(s string) ([]byte, error) {
	fields := strings.Fields(s)
	res := make([]byte, 0, len(fields))
	for i, token := range fields {
		token = strings.TrimPrefix(strings.TrimPrefix(token, "0x"), "0X")
		if len(token) == 0 || len(token)%2 != 0 {
			return nil, errors.Wrapf(ErrMalformedHex, "token %d %q has odd length", i, fields[i])
		}
		decoded, err := hex.DecodeString(token)
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedHex, "token %d %q: %v", i, fields[i], err)
		}
		res = append(res, decoded...)
	}
	return res, nil
}

// FormatHex - обратное к ParseHex, "01 00 0a"
func FormatHex(data []byte) string {
	tokens := make([]string, len(data))
	for i, b := range data {
		tokens[i] = hex.EncodeToString([]byte{b})
	}
	return strings.Join(tokens, " ")
}
