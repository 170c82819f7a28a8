package query

import (
	"context"

	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/platform/mlog"
	"github.com/openlearn/coredata/internal/platform/mtrace"
)

// VocabularyNode is one taxonomy term's structured position in the
// vocabulary tree, for the external SKOS/RDF vocabulary exporter to
// render — serialization itself is out of scope (spec §5; spec §6
// VocabularyTaxonomyQuery).
type VocabularyNode struct {
	TermID   uuid.UUID
	Name     string
	Children []uuid.UUID
}

// VocabularyTaxonomy walks the taxonomy tree under rootID and returns
// each visited term's immediate children, breadth-first.
func (uc *UseCase) VocabularyTaxonomy(ctx context.Context, rootID uuid.UUID) ([]VocabularyNode, error) {
	logger := mlog.FromContext(ctx)
	tracer := mtrace.FromContext(ctx)

	ctx, span := tracer.Start(ctx, "query.vocabulary_taxonomy")
	defer span.End()

	logger.Infof("walking vocabulary taxonomy from %s", rootID)

	var out []VocabularyNode

	queue := []uuid.UUID{rootID}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		term, err := uc.TaxonomyRepo.Find(ctx, id)
		if err != nil {
			return nil, err
		}

		childIDs, err := uc.TaxonomyRepo.Children(ctx, id)
		if err != nil {
			return nil, err
		}

		out = append(out, VocabularyNode{TermID: id, Name: term.Name, Children: childIDs})
		queue = append(queue, childIDs...)
	}

	return out, nil
}
