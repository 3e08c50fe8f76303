package errors

import (
	"fmt"
	"testing"
)

func TestError_UnwrapAndMessage(t *testing.T) {
	err := New(ErrAuthFailed, "Credenciales inválidas")
	wrapped := fmt.Errorf("login: %w", err)

	if !Is(wrapped, ErrAuthFailed) {
		t.Error("期望 errors.Is 命中 ErrAuthFailed")
	}
	if got := MessageOf(wrapped, "fallback"); got != "Credenciales inválidas" {
		t.Errorf("期望携带的文案，实际 %q", got)
	}
}

func TestMessageOf_Fallback(t *testing.T) {
	if got := MessageOf(ErrUpstreamUnavailable, "Error genérico"); got != "Error genérico" {
		t.Errorf("期望 fallback，实际 %q", got)
	}
	if got := MessageOf(New(ErrNotFound, ""), "No encontrado"); got != "No encontrado" {
		t.Errorf("空文案应使用 fallback，实际 %q", got)
	}
}

func TestError_ErrorString(t *testing.T) {
	if New(ErrValidation, "").Error() != ErrValidation.Error() {
		t.Error("空文案时 Error() 应回退到类别描述")
	}
}
