package savedfilter

import (
	"context"
	"errors"
)

var (
	ErrNotOwner = errors.New("preset belongs to another reviewer")
	ErrNoName   = errors.New("preset name is required")
)

type PresetService interface {
	CreatePreset(ctx context.Context, preset *Preset) error
	GetPreset(ctx context.Context, id string) (*Preset, error)
	UpdatePreset(ctx context.Context, reviewerID string, preset *Preset) error
	DeletePreset(ctx context.Context, id string, reviewerID string) error
	ListPresets(ctx context.Context, reviewerID string) ([]Preset, error)
}

type PresetServiceImpl struct {
	Repo PresetRepository
}

func NewPresetService(repo PresetRepository) PresetService {
	return &PresetServiceImpl{Repo: repo}
}

// CreatePreset saves a preset. Marking it default demotes any existing
// default first, so the invariant holds without a unique index.
func (s *PresetServiceImpl) CreatePreset(ctx context.Context, preset *Preset) error {
	if preset.Name == "" {
		return ErrNoName
	}
	if preset.IsDefault {
		if err := s.Repo.ClearDefault(ctx, preset.ReviewerID); err != nil {
			return err
		}
	}
	return s.Repo.Create(ctx, preset)
}

func (s *PresetServiceImpl) GetPreset(ctx context.Context, id string) (*Preset, error) {
	return s.Repo.Get(ctx, id)
}

func (s *PresetServiceImpl) UpdatePreset(ctx context.Context, reviewerID string, preset *Preset) error {
	if preset.Name == "" {
		return ErrNoName
	}
	existing, err := s.Repo.Get(ctx, preset.ID.Hex())
	if err != nil {
		return err
	}
	if existing.ReviewerID != reviewerID {
		return ErrNotOwner
	}
	if preset.IsDefault && !existing.IsDefault {
		if err := s.Repo.ClearDefault(ctx, reviewerID); err != nil {
			return err
		}
	}
	return s.Repo.Update(ctx, preset)
}

func (s *PresetServiceImpl) DeletePreset(ctx context.Context, id string, reviewerID string) error {
	preset, err := s.Repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if preset.ReviewerID != reviewerID {
		return ErrNotOwner
	}
	return s.Repo.Delete(ctx, id)
}

func (s *PresetServiceImpl) ListPresets(ctx context.Context, reviewerID string) ([]Preset, error) {
	return s.Repo.FindByReviewer(ctx, reviewerID)
}
