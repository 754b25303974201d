package usecases_port

import (
	"context"
	"time"
)

type RequestResetCodeUseCasePort interface {
	Execute(ctx context.Context, email string) (time.Time, error)
}

type ResendResetCodeUseCasePort interface {
	Execute(ctx context.Context) (time.Time, error)
}

type VerifyResetCodeUseCasePort interface {
	Execute(ctx context.Context, code string) error
}

type ResetPasswordUseCasePort interface {
	Execute(ctx context.Context, password, confirmation string) error
}
