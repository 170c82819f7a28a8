package query

import (
	"context"

	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/domain/shared"
	"github.com/openlearn/coredata/internal/platform/mlog"
	"github.com/openlearn/coredata/internal/platform/mtrace"
)

// NavigationNode is one entry in a rendered navigation tree. The
// original deployment's navigation is backed by its own
// navigation_page/navigation_container tables, which this spec's
// persistence layout (§6) does not define; this query instead walks the
// existing page tree, the grounded simplification described in
// DESIGN.md.
type NavigationNode struct {
	PageID   uuid.UUID
	Label    string
	Children []NavigationNode
}

// Navigation renders instance's page tree as a navigation structure
// (spec §6 NavigationQuery, simplified per DESIGN.md).
func (uc *UseCase) Navigation(ctx context.Context, instance shared.Instance) ([]NavigationNode, error) {
	logger := mlog.FromContext(ctx)
	tracer := mtrace.FromContext(ctx)

	ctx, span := tracer.Start(ctx, "query.navigation")
	defer span.End()

	logger.Infof("rendering navigation for instance %s", instance)

	roots, err := uc.PageRepo.ByInstance(ctx, instance)
	if err != nil {
		return nil, err
	}

	out := make([]NavigationNode, 0, len(roots))

	for _, id := range roots {
		node, err := uc.navigationSubtree(ctx, id)
		if err != nil {
			return nil, err
		}

		out = append(out, *node)
	}

	return out, nil
}

func (uc *UseCase) navigationSubtree(ctx context.Context, pageID uuid.UUID) (*NavigationNode, error) {
	p, err := uc.PageRepo.Find(ctx, pageID)
	if err != nil {
		return nil, err
	}

	label := ""

	if p.CurrentRevisionID != nil {
		if rev, err := uc.PageRevisionRepo.Find(ctx, *p.CurrentRevisionID); err == nil {
			label = rev.Title
		}
	}

	childIDs, err := uc.PageRepo.Children(ctx, &pageID)
	if err != nil {
		return nil, err
	}

	children := make([]NavigationNode, 0, len(childIDs))

	for _, childID := range childIDs {
		child, err := uc.navigationSubtree(ctx, childID)
		if err != nil {
			return nil, err
		}

		children = append(children, *child)
	}

	return &NavigationNode{PageID: pageID, Label: label, Children: children}, nil
}
