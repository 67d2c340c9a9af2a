package consts

import "errors"

const symbols = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var ErrNotFound = errors.New("not found")

var defaults = struct {
	addr string
}{addr: ":8080"}

var levels = []string{"debug", "info"}

func use() string {
	return symbols + defaults.addr + levels[0]
}
