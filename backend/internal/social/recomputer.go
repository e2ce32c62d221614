package social

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"sociograph/backend/internal/constants"
	"sociograph/backend/internal/graph"
	apperrors "sociograph/backend/pkg/errors"
	"sociograph/backend/pkg/logger"
)

// Recomputer rebuilds the SIMILAR_CONTENT edge set from scratch after every
// post creation. Cost is O(U² · average vocabulary size) over all users with
// content; the full rebuild trades that cost for an always-consistent edge
// set with no incremental drift. This is the system's dominant scalability
// ceiling and only holds up at small user counts.
type Recomputer struct {
	store          SimilarityStore
	minCommonWords int
	logger         *zap.Logger
}

// NewRecomputer creates a recomputer with the given shared-vocabulary
// threshold. Thresholds below 1 fall back to the default.
func NewRecomputer(store SimilarityStore, minCommonWords int) *Recomputer {
	if minCommonWords < 1 {
		minCommonWords = constants.DefaultMinCommonWords
	}
	return &Recomputer{
		store:          store,
		minCommonWords: minCommonWords,
		logger:         logger.Get(),
	}
}

// Recompute runs a full similarity rebuild. Failures are logged and
// swallowed: a failed rebuild must never fail the post creation that
// triggered it, and it is not retried.
func (rc *Recomputer) Recompute(ctx context.Context) {
	if err := rc.recompute(ctx); err != nil {
		rc.logger.Error("Similarity rebuild failed", zap.Error(err))
	}
}

func (rc *Recomputer) recompute(ctx context.Context) error {
	users, err := rc.store.FetchAllUsersWithPostContent(ctx)
	if err != nil {
		return apperrors.NewRecomputeFailed("fetch", err)
	}

	// An edge set needs at least two participants; leave the store untouched
	if len(users) < 2 {
		return nil
	}

	vocabularies := make(map[string]map[string]struct{}, len(users))
	userIDs := make([]string, 0, len(users))
	for _, u := range users {
		vocabularies[u.UserID] = buildVocabulary(u.Contents)
		userIDs = append(userIDs, u.UserID)
	}

	// Full replace: drop the entire relation before rebuilding
	if err := rc.store.ClearSimilarityEdges(ctx); err != nil {
		return apperrors.NewRecomputeFailed("clear", err)
	}

	var edges []graph.SimilarityEdge
	for i := 0; i < len(userIDs); i++ {
		for j := i + 1; j < len(userIDs); j++ {
			common := countCommonWords(vocabularies[userIDs[i]], vocabularies[userIDs[j]])
			if common >= rc.minCommonWords {
				edges = append(edges,
					graph.SimilarityEdge{SourceID: userIDs[i], TargetID: userIDs[j]},
					graph.SimilarityEdge{SourceID: userIDs[j], TargetID: userIDs[i]},
				)
			}
		}
	}

	if len(edges) > 0 {
		if err := rc.store.WriteSimilarityEdges(ctx, edges); err != nil {
			return apperrors.NewRecomputeFailed("write", err)
		}
	}

	rc.logger.Debug("Similarity edges rebuilt",
		zap.Int("users", len(users)),
		zap.Int("edges", len(edges)),
	)
	return nil
}

// buildVocabulary joins a user's post contents with single spaces and
// materializes the distinct lowercase whitespace-delimited tokens
func buildVocabulary(contents []string) map[string]struct{} {
	joined := strings.Join(contents, " ")
	vocabulary := make(map[string]struct{})
	for _, word := range strings.Fields(strings.ToLower(joined)) {
		vocabulary[word] = struct{}{}
	}
	return vocabulary
}

func countCommonWords(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	count := 0
	for word := range a {
		if _, ok := b[word]; ok {
			count++
		}
	}
	return count
}
