package session

import (
	"context"
	"io"

	"memepop/internal/domain"
)

type editorUsecase interface {
	Create(ctx context.Context) (*domain.Session, error)
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
	Reset(ctx context.Context, id string) (*domain.Session, error)
	ApplyEdit(ctx context.Context, id string, index int, edit domain.TextEdit) (*domain.Session, error)
	SelectTint(ctx context.Context, id, name string) (*domain.Session, error)
	Mount(ctx context.Context, id string, index int, handle string) error
	Unmount(ctx context.Context, id string, index int) error
	Element(ctx context.Context, id string, index int) (string, bool, error)
}

type previewRenderer interface {
	Render(ctx context.Context, src io.Reader, texts []domain.Text, tint *domain.OverlayColor, format string) (io.Reader, string, error)
}
