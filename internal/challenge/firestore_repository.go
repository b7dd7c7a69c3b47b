package challenge

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	statesCollection = "challenge_states"
	sharesCollection = "share_events"
)

type firestoreRepository struct {
	client *firestore.Client
}

// NewFirestoreRepository creates a new Firestore repository
func NewFirestoreRepository(client *firestore.Client) Repository {
	return &firestoreRepository{client: client}
}

func (r *firestoreRepository) Load(ctx context.Context, userID string) (*ChallengeState, error) {
	doc, err := r.client.Collection(statesCollection).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrStateNotFound
		}
		return nil, err
	}

	var state ChallengeState
	if err := doc.DataTo(&state); err != nil {
		return nil, fmt.Errorf("unmarshal challenge state: %w", err)
	}
	if state.Entries == nil {
		state.Entries = []Entry{}
	}
	if state.UnlockedBadges == nil {
		state.UnlockedBadges = []string{}
	}
	return &state, nil
}

func (r *firestoreRepository) Save(ctx context.Context, userID string, state *ChallengeState) error {
	_, err := r.client.Collection(statesCollection).Doc(userID).Set(ctx, state)
	return err
}

func (r *firestoreRepository) Delete(ctx context.Context, userID string) error {
	_, err := r.client.Collection(statesCollection).Doc(userID).Delete(ctx)
	return err
}

func (r *firestoreRepository) RecordShare(ctx context.Context, share ShareEvent) error {
	_, err := r.client.Collection(sharesCollection).Doc(share.ID).Set(ctx, share)
	return err
}

func (r *firestoreRepository) CountShares(ctx context.Context, userID string) (int, error) {
	iter := r.client.Collection(sharesCollection).
		Where("user_id", "==", userID).
		Documents(ctx)

	count := 0
	for {
		_, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, err
		}
		count++
	}
	return count, nil
}
