package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/sromero1905/elearningfront/pkg/backend"
	pkgerrors "github.com/sromero1905/elearningfront/pkg/errors"
)

// ── 面向用户的文案 ──

const (
	MsgLoginFailed          = "Error al iniciar sesión"
	MsgInvalidResponse      = "Respuesta no válida del servidor"
	MsgNetwork              = "No se pudo conectar con el servidor. Por favor, intenta de nuevo."
	MsgForgotSent           = "Se han enviado instrucciones para restablecer la contraseña"
	MsgForgotFailed         = "Error al restablecer la contraseña"
	MsgResetDone            = "Contraseña restablecida correctamente"
	MsgCourseFailed         = "No se pudo cargar el contenido del curso. Por favor, intenta de nuevo."
	MsgCourseNotFound       = "El curso solicitado no existe."
	MsgCapsulesFailed       = "No se pudieron cargar las cápsulas del curso."
	MsgProfileFailed        = "No se pudo cargar la información del curso. Intente de nuevo más tarde."
	MsgSessionExpired       = "Tu sesión ha expirado. Por favor, inicia sesión de nuevo."
	MsgPasswordMismatch     = "Las contraseñas nuevas no coinciden"
	MsgPasswordTooShort     = "La contraseña debe tener al menos 8 caracteres"
	MsgPasswordRequired     = "Ingresa tu contraseña actual"
	MsgPasswordChanged      = "Contraseña actualizada correctamente"
	MsgPasswordChangeFailed = "Error al cambiar la contraseña"
	MsgEmailPlaceholder     = "sin correo registrado"
	MsgHelpFailed           = "No se pudo cargar el centro de ayuda."
	MsgExportFailed         = "No se pudo generar el archivo."
)

// MinPasswordLength 新密码最小长度
const MinPasswordLength = 8

// classifyUpstream 把上游错误归类为业务错误
// rejected 为上游拒绝时的兜底文案；上游返回了文案时优先使用上游文案
func classifyUpstream(err error, rejected string) error {
	if err == nil {
		return nil
	}

	var apiErr *backend.APIError
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return pkgerrors.New(pkgerrors.ErrUpstreamUnavailable, MsgNetwork)
	case errors.Is(err, backend.ErrUnreachable):
		return pkgerrors.New(pkgerrors.ErrUpstreamUnavailable, MsgNetwork)
	case errors.Is(err, backend.ErrInvalidResponse):
		return pkgerrors.New(pkgerrors.ErrUpstreamInvalid, MsgInvalidResponse)
	case errors.As(err, &apiErr):
		msg := apiErr.Message
		if msg == "" {
			msg = rejected
		}
		return pkgerrors.New(pkgerrors.ErrUpstreamRejected, msg)
	default:
		return pkgerrors.New(pkgerrors.ErrUpstreamUnavailable, rejected)
	}
}

// classifyRead 读取类接口：401/403 视为会话失效，404 视为资源不存在
func classifyRead(err error, fallback string) error {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Status {
		case http.StatusUnauthorized, http.StatusForbidden:
			return pkgerrors.New(pkgerrors.ErrUnauthenticated, MsgSessionExpired)
		case http.StatusNotFound:
			return pkgerrors.New(pkgerrors.ErrNotFound, MsgCourseNotFound)
		default:
			// 读取失败统一使用页面级文案
			return pkgerrors.New(pkgerrors.ErrUpstreamRejected, fallback)
		}
	}
	if errors.Is(err, backend.ErrUnreachable) || errors.Is(err, backend.ErrInvalidResponse) {
		return pkgerrors.New(kindOf(classifyUpstream(err, fallback)), fallback)
	}
	return classifyUpstream(err, fallback)
}

func kindOf(err error) error {
	var e *pkgerrors.Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return pkgerrors.ErrUpstreamUnavailable
}
