package service

import apperrors "fosms/backend/pkg/errors"

// ── 业务错误（稳定错误码，Handler 按 Kind 映射 HTTP 状态） ──

var (
	// 认证
	ErrInvalidCredentials = apperrors.New(apperrors.KindUnauthorized, 11001, "邮箱或密码错误")
	ErrIdentityConflict   = apperrors.New(apperrors.KindConflict, 11002, "邮箱或工号已被注册")
	ErrWeakSecret         = apperrors.New(apperrors.KindValidation, 11003, "密码长度不能少于 6 位")

	// 用户
	ErrUserNotFound   = apperrors.New(apperrors.KindNotFound, 20001, "用户不存在")
	ErrInvalidRole    = apperrors.New(apperrors.KindValidation, 10001, "角色取值无效")
	ErrSelfRoleChange = apperrors.New(apperrors.KindForbidden, 10003, "不能修改自己的角色")

	// 排班
	ErrShiftConflict = apperrors.New(apperrors.KindConflict, 30001, "该员工当天已有排班")
	ErrInvalidDate   = apperrors.New(apperrors.KindValidation, 30002, "日期格式无效，应为 YYYY-MM-DD 或 RFC 3339")

	// 换班
	ErrSwapNotFound      = apperrors.New(apperrors.KindNotFound, 40001, "换班申请不存在")
	ErrSwapResolved      = apperrors.New(apperrors.KindConflict, 40002, "换班申请已处理，不能重复处理")
	ErrInvalidSwapAction = apperrors.New(apperrors.KindValidation, 40003, "处理动作只能为 APPROVED 或 REJECTED")
	ErrSelfSwap          = apperrors.New(apperrors.KindValidation, 40004, "不能指定自己为换班同事")
	ErrColleagueNotFound = apperrors.New(apperrors.KindNotFound, 40005, "指定的同事不存在")
	ErrInvalidSwapStatus = apperrors.New(apperrors.KindValidation, 10001, "状态只能为 PENDING、APPROVED 或 REJECTED")
)

// minSecretLength 密码最小长度
const minSecretLength = 6
