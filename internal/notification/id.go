package notification

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// ID は通知の識別子。正の整数で、0は存在しないIDとして扱う。
//
// JSONでは数値と数値文字列（"12"）の両方を受け付ける。
// 数値として解釈できない値は0になり、どのレコードにも一致しない。
type ID int

// ParseID は文字列のIDを整数に正規化する。前後の空白は無視する。
func ParseID(s string) (ID, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, false
	}
	return ID(n), true
}

// UnmarshalJSON は数値または数値文字列をIDとして読み込む。
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id, _ = ParseID(s)
		return nil
	}

	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	if f != float64(int(f)) || f <= 0 {
		*id = 0
		return nil
	}
	*id = ID(int(f))
	return nil
}
