package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/yashir5686/disha-portal/ent"
	"github.com/yashir5686/disha-portal/ent/userprofile"
)

// profileRepo implements ProfileRepo using the ent client.
type profileRepo struct {
	client *ent.Client
}

func (r *profileRepo) Get(ctx context.Context, userID string) (*UserProfile, error) {
	p, err := r.client.UserProfile.Query().
		Where(userprofile.UserID(userID)).
		Only(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query profile: %w", err)
	}
	return entProfileToProfile(p)
}

func (r *profileRepo) Save(ctx context.Context, userID string, patch ProfilePatch) error {
	existing, err := r.client.UserProfile.Query().
		Where(userprofile.UserID(userID)).
		Only(ctx)
	if err != nil && !ent.IsNotFound(err) {
		return fmt.Errorf("query profile: %w", err)
	}

	recMap, err := recommendationToMap(patch.Recommendation)
	if err != nil {
		return fmt.Errorf("marshal recommendation: %w", err)
	}

	if ent.IsNotFound(err) {
		create := r.client.UserProfile.Create().SetUserID(userID)
		if patch.Email != nil {
			create.SetEmail(*patch.Email)
		}
		if patch.Name != nil {
			create.SetName(*patch.Name)
		}
		if patch.Grade != nil {
			create.SetGrade(*patch.Grade)
		}
		if patch.Stream != nil {
			create.SetStream(*patch.Stream)
		}
		if recMap != nil {
			create.SetRecommendation(recMap)
		}
		if _, err := create.Save(ctx); err != nil {
			return fmt.Errorf("create profile: %w", err)
		}
		return nil
	}

	update := existing.Update()
	if patch.Email != nil {
		update.SetEmail(*patch.Email)
	}
	if patch.Name != nil {
		update.SetName(*patch.Name)
	}
	if patch.Grade != nil {
		update.SetGrade(*patch.Grade)
	}
	if patch.Stream != nil {
		update.SetStream(*patch.Stream)
	}
	if recMap != nil {
		update.SetRecommendation(recMap)
	}
	if _, err := update.Save(ctx); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

func (r *profileRepo) ClearRecommendation(ctx context.Context, userID string) error {
	existing, err := r.client.UserProfile.Query().
		Where(userprofile.UserID(userID)).
		Only(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("query profile: %w", err)
	}

	if _, err := existing.Update().ClearRecommendation().Save(ctx); err != nil {
		return fmt.Errorf("clear recommendation: %w", err)
	}
	return nil
}

// recommendationToMap converts raw recommendation JSON to the map form ent
// stores. Returns nil for an empty patch field.
func recommendationToMap(raw json.RawMessage) (map[string]any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// entProfileToProfile converts an ent UserProfile to a store UserProfile.
func entProfileToProfile(p *ent.UserProfile) (*UserProfile, error) {
	out := &UserProfile{
		UserID:    p.UserID,
		Email:     p.Email,
		Name:      p.Name,
		Grade:     p.Grade,
		Stream:    p.Stream,
		UpdatedAt: p.UpdatedAt,
	}
	if len(p.Recommendation) > 0 {
		b, err := json.Marshal(p.Recommendation)
		if err != nil {
			return nil, fmt.Errorf("marshal recommendation: %w", err)
		}
		out.Recommendation = b
	}
	return out, nil
}
