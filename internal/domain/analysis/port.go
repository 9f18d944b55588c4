package analysis

import "context"

// Repository port (interface untuk persistence)
type Repository interface {
	Save(ctx context.Context, a *Analysis) error
	Get(ctx context.Context, session string, id ID) (*Analysis, error)
	Latest(ctx context.Context, session string, limit int) ([]*Analysis, error)
	UpdateStatus(ctx context.Context, session string, id ID, status Status) error
}

// TurnRepository port untuk log percakapan; log penuh disimpan,
// windowing 10 turn terakhir urusan composer.
type TurnRepository interface {
	Append(ctx context.Context, t *Turn) error
	List(ctx context.Context, session string, id ID) ([]*Turn, error)
	DeleteBySession(ctx context.Context, session string) error
}

// FailureRepository port untuk catatan kegagalan fatal
type FailureRepository interface {
	Save(ctx context.Context, f *Failure) error
	Latest(ctx context.Context, session string, limit int) ([]*Failure, error)
}

// ArtifactStore port (interface untuk penyimpanan artefak transcript/audio)
type ArtifactStore interface {
	Upload(ctx context.Context, localPath, key string) (string, error)
	UploadAndCleanup(ctx context.Context, localPath, key string) (string, error)
}
