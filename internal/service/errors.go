package service

import (
	"errors"
	"fmt"
)

var (
	ErrVideoNotFound     = errors.New("视频不存在")
	ErrVideoNoPermission = errors.New("没有权限操作该视频")
	ErrInvalidAsset      = errors.New("视频资源不存在或不可访问")
	ErrStoreUnavailable  = errors.New("存储服务暂时不可用，请稍后重试")
)

// storeErr 存储层故障统一包装为 ErrStoreUnavailable，保留原始错误
func storeErr(err error) error {
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}
