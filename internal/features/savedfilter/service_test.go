package savedfilter

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakePresetRepo struct {
	presets       map[string]*Preset
	clearDefaults int
}

func newFakePresetRepo() *fakePresetRepo {
	return &fakePresetRepo{presets: make(map[string]*Preset)}
}

func (r *fakePresetRepo) Create(ctx context.Context, p *Preset) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	cp := *p
	r.presets[p.ID.Hex()] = &cp
	return nil
}

func (r *fakePresetRepo) Get(ctx context.Context, id string) (*Preset, error) {
	p, ok := r.presets[id]
	if !ok {
		return nil, errors.New("not found")
	}
	cp := *p
	return &cp, nil
}

func (r *fakePresetRepo) Update(ctx context.Context, p *Preset) error {
	existing, ok := r.presets[p.ID.Hex()]
	if !ok {
		return errors.New("not found")
	}
	p.ReviewerID = existing.ReviewerID
	cp := *p
	r.presets[p.ID.Hex()] = &cp
	return nil
}

func (r *fakePresetRepo) Delete(ctx context.Context, id string) error {
	delete(r.presets, id)
	return nil
}

func (r *fakePresetRepo) FindByReviewer(ctx context.Context, reviewerID string) ([]Preset, error) {
	var out []Preset
	for _, p := range r.presets {
		if p.ReviewerID == reviewerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePresetRepo) ClearDefault(ctx context.Context, reviewerID string) error {
	r.clearDefaults++
	for _, p := range r.presets {
		if p.ReviewerID == reviewerID {
			p.IsDefault = false
		}
	}
	return nil
}

func TestCreatePresetRequiresName(t *testing.T) {
	s := NewPresetService(newFakePresetRepo())
	err := s.CreatePreset(context.Background(), &Preset{ReviewerID: "rev-1"})
	if !errors.Is(err, ErrNoName) {
		t.Errorf("err = %v, want ErrNoName", err)
	}
}

func TestCreateDefaultDemotesExisting(t *testing.T) {
	repo := newFakePresetRepo()
	s := NewPresetService(repo)
	ctx := context.Background()

	first := &Preset{Name: "urgent only", ReviewerID: "rev-1", IsDefault: true}
	if err := s.CreatePreset(ctx, first); err != nil {
		t.Fatalf("create: %v", err)
	}
	second := &Preset{Name: "over budget", ReviewerID: "rev-1", IsDefault: true}
	if err := s.CreatePreset(ctx, second); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, _ := repo.Get(ctx, first.ID.Hex())
	if got.IsDefault {
		t.Error("previous default was not demoted")
	}
	got, _ = repo.Get(ctx, second.ID.Hex())
	if !got.IsDefault {
		t.Error("new preset lost its default flag")
	}
}

func TestDeletePresetChecksOwnership(t *testing.T) {
	repo := newFakePresetRepo()
	s := NewPresetService(repo)
	ctx := context.Background()

	p := &Preset{Name: "mine", ReviewerID: "rev-1"}
	if err := s.CreatePreset(ctx, p); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := s.DeletePreset(ctx, p.ID.Hex(), "rev-2"); !errors.Is(err, ErrNotOwner) {
		t.Errorf("delete by non-owner = %v, want ErrNotOwner", err)
	}
	if _, err := repo.Get(ctx, p.ID.Hex()); err != nil {
		t.Error("preset deleted despite ownership failure")
	}

	if err := s.DeletePreset(ctx, p.ID.Hex(), "rev-1"); err != nil {
		t.Errorf("delete by owner: %v", err)
	}
}

func TestUpdatePresetChecksOwnership(t *testing.T) {
	repo := newFakePresetRepo()
	s := NewPresetService(repo)
	ctx := context.Background()

	p := &Preset{Name: "mine", ReviewerID: "rev-1"}
	if err := s.CreatePreset(ctx, p); err != nil {
		t.Fatalf("create: %v", err)
	}

	p.Name = "renamed"
	if err := s.UpdatePreset(ctx, "rev-2", p); !errors.Is(err, ErrNotOwner) {
		t.Errorf("update by non-owner = %v, want ErrNotOwner", err)
	}
	if err := s.UpdatePreset(ctx, "rev-1", p); err != nil {
		t.Errorf("update by owner: %v", err)
	}
}
