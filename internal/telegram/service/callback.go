package service

import (
	"fmt"
	"strings"
)

// 回调动作键
const (
	CallbackActionConfirm = "confirm" // 投稿确认：confirm,submit / confirm,cancel
	CallbackActionVote    = "vote"    // 审核投票：vote,<approve|reject>,<pending_id>
	CallbackActionPubVote = "pubvote" // 社区投票：pubvote,<up|down>
	CallbackActionNoop    = "noop"    // 占位按钮
)

// maxCallbackFields 回调数据字段数上限，防御畸形输入
const maxCallbackFields = 8

// EncodeCallback 编码回调数据：逗号分隔，首字段为动作键，其余为位置参数
func EncodeCallback(action string, args ...string) string {
	if len(args) == 0 {
		return action
	}
	return action + "," + strings.Join(args, ",")
}

// ParseCallback 解析并校验回调数据
// 畸形数据（空动作键、空参数、字段数超限）返回错误，调用方记日志后忽略
func ParseCallback(data string) (action string, args []string, err error) {
	if data == "" {
		return "", nil, fmt.Errorf("empty callback data")
	}

	fields := strings.Split(data, ",")
	if len(fields) > maxCallbackFields {
		return "", nil, fmt.Errorf("callback data has too many fields: %d", len(fields))
	}

	for _, field := range fields {
		if field == "" {
			return "", nil, fmt.Errorf("callback data contains empty field: %q", data)
		}
	}

	return fields[0], fields[1:], nil
}
