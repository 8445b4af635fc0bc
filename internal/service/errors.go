package service

import (
	"errors"
)

const (
	BadRequest          = 400
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid      = errors.New("参数错误")
	ErrVideoURLInvalid   = errors.New("无法识别的视频链接")
	ErrProjectNotFound   = errors.New("作品不存在")
	ErrVideoNotFound     = errors.New("视频不存在或不可见")
	ErrSourceUnavailable = errors.New("指标源暂不可用，请稍后重试")
	UnExpectedError      = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:      BadRequest,
	ErrVideoURLInvalid:   BadRequest,
	ErrProjectNotFound:   NotFound,
	ErrVideoNotFound:     NotFound,
	ErrSourceUnavailable: InternalServerError,
	UnExpectedError:      InternalServerError,
}
