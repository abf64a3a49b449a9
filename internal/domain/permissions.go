package domain

import (
	"context"
	"fmt"
)

func canModify(actor Actor, ownerID int64) bool {
	return actor.Staff || actor.ID == ownerID
}

// canView allows the owner, staff, and followers of the owner.
func canView(ctx context.Context, graph FollowGraph, actor Actor, ownerID int64) (bool, error) {
	if canModify(actor, ownerID) {
		return true, nil
	}
	ok, err := graph.HasEdge(ctx, actor.ID, ownerID)
	if err != nil {
		return false, fmt.Errorf("check follow edge: %w", err)
	}
	return ok, nil
}
